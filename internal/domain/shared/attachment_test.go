package shared

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseAttachment(t *testing.T) {
	a, ok := ParseAttachment("image:screen.png")
	assert.True(t, ok)
	assert.Equal(t, AttachmentImage, a.Kind)
	assert.Equal(t, "screen.png", a.Name)
	assert.Equal(t, "image:screen.png", a.Body())

	a, ok = ParseAttachment("file:report:v2.pdf")
	assert.True(t, ok)
	assert.Equal(t, "report:v2.pdf", a.Name)

	for _, body := range []string{"hello", "image:", "note: call me", ""} {
		_, ok := ParseAttachment(body)
		assert.False(t, ok, body)
	}
}

func TestStoredName(t *testing.T) {
	assert.Equal(t, "42-screen.png", StoredName(42, "screen.png"))
	assert.True(t, HasStoredPrefix(42, "42-screen.png"))
	assert.False(t, HasStoredPrefix(4, "42-screen.png"))
}

package tool

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func smtpSpec() Spec {
	return Spec{Tool: "smtp", Name: "Relay", Server: "10.0.0.5", Port: 25}
}

func TestNewTool_Validates(t *testing.T) {
	_, err := NewTool(smtpSpec())
	require.NoError(t, err)

	bad := smtpSpec()
	bad.Port = 70000
	_, err = NewTool(bad)
	assert.Error(t, err)

	bad = smtpSpec()
	bad.Server = " "
	_, err = NewTool(bad)
	assert.Error(t, err)
}

func TestTool_DeployLifecycle(t *testing.T) {
	tl, err := NewTool(smtpSpec())
	require.NoError(t, err)
	assert.False(t, tl.Active())

	tl.Deploy("pulling image")
	assert.True(t, tl.Deploying())
	tl.Deployed("listening on 25")
	assert.False(t, tl.Deploying())
	assert.True(t, tl.Active())
	assert.Equal(t, "pulling image\nlistening on 25", tl.Logs())
}

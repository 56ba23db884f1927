// Package shared provides value types used by several aggregates.
package shared

import (
	"fmt"
	"strings"
)

// AttachmentKind is the prefix of a body that references an uploaded blob.
type AttachmentKind string

const (
	AttachmentImage AttachmentKind = "image"
	AttachmentFile  AttachmentKind = "file"
)

// Attachment is a body of the form "image:<name>" or "file:<name>".
type Attachment struct {
	Kind AttachmentKind
	Name string
}

func ParseAttachment(body string) (Attachment, bool) {
	kind, name, ok := strings.Cut(body, ":")
	if !ok || name == "" {
		return Attachment{}, false
	}
	switch AttachmentKind(kind) {
	case AttachmentImage, AttachmentFile:
		return Attachment{Kind: AttachmentKind(kind), Name: name}, true
	}
	return Attachment{}, false
}

// Body renders the attachment back into a message body.
func (a Attachment) Body() string {
	return string(a.Kind) + ":" + a.Name
}

// StoredName is the blob name after it has been tied to its row: <id>-<name>.
func StoredName(id uint, name string) string {
	return fmt.Sprintf("%d-%s", id, name)
}

// HasStoredPrefix reports whether name already carries the <id>- prefix.
func HasStoredPrefix(id uint, name string) bool {
	return strings.HasPrefix(name, fmt.Sprintf("%d-", id))
}

package common

import (
	"context"
	"io"

	"github.com/deskhub/deskhub/internal/domain/shared"
)

type Transactor interface {
	RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// Sanitizer strips markup from user-supplied bodies before they are stored.
type Sanitizer interface {
	Sanitize(s string) string
}

// FileStore keeps uploaded blobs. Save returns the attachment marker for
// the stored blob; Rename ties it to the row that references it by
// prefixing the row ID.
type FileStore interface {
	Save(ctx context.Context, name string, r io.Reader) (shared.Attachment, error)
	Rename(ctx context.Context, name string, containerID uint) (string, error)
}

// TieAttachment renames the blob referenced by body, if any, and returns
// the rewritten body. Other bodies are returned unchanged.
func TieAttachment(ctx context.Context, store FileStore, body string, containerID uint) (string, error) {
	att, ok := shared.ParseAttachment(body)
	if !ok || store == nil || shared.HasStoredPrefix(containerID, att.Name) {
		return body, nil
	}
	name, err := store.Rename(ctx, att.Name, containerID)
	if err != nil {
		return "", err
	}
	att.Name = name
	return att.Body(), nil
}

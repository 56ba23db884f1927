// Package storage keeps uploaded attachment blobs on local disk.
package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"

	"github.com/deskhub/deskhub/internal/domain/shared"
	"github.com/deskhub/deskhub/internal/shared/errors"
	"github.com/deskhub/deskhub/internal/shared/logger"
)

const defaultMaxSize = 10 << 20

// LocalFileStore writes blobs under one directory. A saved blob is named
// <uuid>_<original base name>; once tied to a row it becomes
// <rowID>-<uuid>_<name>.
type LocalFileStore struct {
	dir     string
	maxSize int64
	allowed map[string]struct{}
	logger  logger.Interface
}

// NewLocalFileStore creates dir if needed. An empty allowed list accepts
// every detected type.
func NewLocalFileStore(dir string, maxSizeMB int, allowed []string, log logger.Interface) (*LocalFileStore, error) {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}
	maxSize := int64(maxSizeMB) << 20
	if maxSize <= 0 {
		maxSize = defaultMaxSize
	}
	set := make(map[string]struct{}, len(allowed))
	for _, m := range allowed {
		set[strings.ToLower(m)] = struct{}{}
	}
	return &LocalFileStore{dir: dir, maxSize: maxSize, allowed: set, logger: log}, nil
}

// Save stores r and returns the marker to put in a message body. Images
// get the image: kind, everything else file:.
func (s *LocalFileStore) Save(ctx context.Context, name string, r io.Reader) (shared.Attachment, error) {
	base := cleanName(name)
	if base == "" {
		return shared.Attachment{}, errors.NewValidationError("file name is required")
	}

	content, err := io.ReadAll(io.LimitReader(r, s.maxSize+1))
	if err != nil {
		return shared.Attachment{}, fmt.Errorf("failed to read upload: %w", err)
	}
	if int64(len(content)) > s.maxSize {
		return shared.Attachment{}, errors.NewValidationError(fmt.Sprintf("file exceeds %d bytes", s.maxSize))
	}
	if len(content) == 0 {
		return shared.Attachment{}, errors.NewValidationError("file is empty")
	}

	detected := mimetype.Detect(content)
	if !s.accepts(detected) {
		s.logger.Warnw("rejected upload with disallowed type", "detected_mime", detected.String(), "filename", base)
		return shared.Attachment{}, errors.NewValidationError("file type is not allowed")
	}

	stored := uuid.NewString() + "_" + base
	if err := ctx.Err(); err != nil {
		return shared.Attachment{}, err
	}
	if err := os.WriteFile(filepath.Join(s.dir, stored), content, 0o640); err != nil {
		return shared.Attachment{}, fmt.Errorf("failed to save upload: %w", err)
	}

	kind := shared.AttachmentFile
	if strings.HasPrefix(detected.String(), "image/") {
		kind = shared.AttachmentImage
	}
	return shared.Attachment{Kind: kind, Name: stored}, nil
}

func (s *LocalFileStore) accepts(m *mimetype.MIME) bool {
	if len(s.allowed) == 0 {
		return true
	}
	for ; m != nil; m = m.Parent() {
		if _, ok := s.allowed[m.String()]; ok {
			return true
		}
	}
	return false
}

// Rename ties a saved blob to its row by prefixing the row ID.
func (s *LocalFileStore) Rename(ctx context.Context, name string, containerID uint) (string, error) {
	if cleanName(name) != name {
		return "", errors.NewValidationError("invalid file name")
	}
	renamed := shared.StoredName(containerID, name)
	if err := os.Rename(filepath.Join(s.dir, name), filepath.Join(s.dir, renamed)); err != nil {
		return "", fmt.Errorf("failed to rename upload: %w", err)
	}
	return renamed, nil
}

// Open returns the blob and its detected content type.
func (s *LocalFileStore) Open(ctx context.Context, name string) (*os.File, string, error) {
	if cleanName(name) != name {
		return nil, "", errors.NewNotFoundError("file not found")
	}
	path := filepath.Join(s.dir, name)
	m, err := mimetype.DetectFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, "", errors.NewNotFoundError("file not found")
		}
		return nil, "", fmt.Errorf("failed to inspect upload: %w", err)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, "", fmt.Errorf("failed to open upload: %w", err)
	}
	return f, m.String(), nil
}

// cleanName keeps the base name and refuses names that would leave dir.
func cleanName(name string) string {
	base := filepath.Base(filepath.Clean("/" + name))
	if base == "/" || base == "." || strings.ContainsAny(base, `\:`) {
		return ""
	}
	return base
}

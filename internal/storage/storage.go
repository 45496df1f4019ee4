package storage

import (
	"context"
	"errors"
	"io"
	"mime"
	"path/filepath"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
)

var tracer = otel.Tracer("luckyticket-storage")

var (
	ErrNotFound    = errors.New("blob not found")
	ErrInvalidName = errors.New("invalid blob name")
)

// FileStore keeps blobs under flat, generated names.
type FileStore interface {
	Save(ctx context.Context, name string, data []byte) error
	Remove(ctx context.Context, name string) error
	Open(ctx context.Context, name string) (*Object, error)
}

// Object is an open blob. Callers must Close it.
type Object struct {
	io.ReadCloser
	Size        int64
	ContentType string
	ModTime     time.Time
}

// ValidName reports whether name is a single path element usable as a blob key.
func ValidName(name string) bool {
	if name == "" || name == "." || name == ".." {
		return false
	}
	if strings.ContainsAny(name, `/\`) || strings.ContainsRune(name, 0) {
		return false
	}
	return filepath.Base(name) == name
}

func contentTypeFor(name string) string {
	if ct := mime.TypeByExtension(filepath.Ext(name)); ct != "" {
		return ct
	}
	return "application/octet-stream"
}

package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// LocalStore writes blobs into a single directory on disk.
type LocalStore struct {
	dir string
}

func NewLocalStore(dir string) *LocalStore {
	return &LocalStore{dir: dir}
}

func (s *LocalStore) Dir() string { return s.dir }

// Path returns the on-disk location of name.
func (s *LocalStore) Path(name string) string {
	return filepath.Join(s.dir, name)
}

// Save creates the directory when missing, then writes data to dir/name.
func (s *LocalStore) Save(ctx context.Context, name string, data []byte) error {
	_, span := tracer.Start(ctx, "local.save",
		trace.WithAttributes(
			attribute.String("blob", name),
			attribute.Int("size_bytes", len(data)),
		),
	)
	defer span.End()

	if !ValidName(name) {
		return ErrInvalidName
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to create upload directory: %w", err)
	}
	if err := os.WriteFile(s.Path(name), data, 0o644); err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to write file: %w", err)
	}
	return nil
}

func (s *LocalStore) Remove(ctx context.Context, name string) error {
	_, span := tracer.Start(ctx, "local.remove", trace.WithAttributes(attribute.String("blob", name)))
	defer span.End()

	if !ValidName(name) {
		return ErrInvalidName
	}
	if err := os.Remove(s.Path(name)); err != nil {
		span.RecordError(err)
		if errors.Is(err, fs.ErrNotExist) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to remove file: %w", err)
	}
	return nil
}

func (s *LocalStore) Open(ctx context.Context, name string) (*Object, error) {
	_, span := tracer.Start(ctx, "local.open", trace.WithAttributes(attribute.String("blob", name)))
	defer span.End()

	if !ValidName(name) {
		return nil, ErrInvalidName
	}
	f, err := os.Open(s.Path(name))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrNotFound
		}
		span.RecordError(err)
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	info, err := f.Stat()
	if err != nil {
		_ = f.Close()
		span.RecordError(err)
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}
	if info.IsDir() {
		_ = f.Close()
		return nil, ErrNotFound
	}
	return &Object{
		ReadCloser:  f,
		Size:        info.Size(),
		ContentType: contentTypeFor(name),
		ModTime:     info.ModTime(),
	}, nil
}

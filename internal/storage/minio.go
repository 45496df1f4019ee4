package storage

import (
	"bytes"
	"context"
	"fmt"
	"net/http"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// MinIOStore keeps blobs as objects in one bucket.
type MinIOStore struct {
	client     *minio.Client
	bucketName string
}

type MinIOOptions struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

// NewMinIOStore connects and makes sure the bucket exists.
func NewMinIOStore(ctx context.Context, opts MinIOOptions, log *logrus.Logger) (*MinIOStore, error) {
	client, err := minio.New(opts.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(opts.AccessKey, opts.SecretKey, ""),
		Secure: opts.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create MinIO client: %w", err)
	}

	exists, err := client.BucketExists(ctx, opts.Bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket existence: %w", err)
	}
	if !exists {
		log.WithField("bucket", opts.Bucket).Info("Creating bucket")
		if err := client.MakeBucket(ctx, opts.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("failed to create bucket: %w", err)
		}
	}

	return &MinIOStore{client: client, bucketName: opts.Bucket}, nil
}

func (s *MinIOStore) Save(ctx context.Context, name string, data []byte) error {
	ctx, span := tracer.Start(ctx, "minio.save",
		trace.WithAttributes(
			attribute.String("blob", name),
			attribute.Int("size_bytes", len(data)),
		),
	)
	defer span.End()

	if !ValidName(name) {
		return ErrInvalidName
	}
	_, err := s.client.PutObject(ctx, s.bucketName, name, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: contentTypeFor(name),
	})
	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to upload object: %w", err)
	}
	return nil
}

func (s *MinIOStore) Remove(ctx context.Context, name string) error {
	ctx, span := tracer.Start(ctx, "minio.remove", trace.WithAttributes(attribute.String("blob", name)))
	defer span.End()

	if !ValidName(name) {
		return ErrInvalidName
	}
	if err := s.client.RemoveObject(ctx, s.bucketName, name, minio.RemoveObjectOptions{}); err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to delete object: %w", err)
	}
	return nil
}

func (s *MinIOStore) Open(ctx context.Context, name string) (*Object, error) {
	ctx, span := tracer.Start(ctx, "minio.open", trace.WithAttributes(attribute.String("blob", name)))
	defer span.End()

	if !ValidName(name) {
		return nil, ErrInvalidName
	}
	obj, err := s.client.GetObject(ctx, s.bucketName, name, minio.GetObjectOptions{})
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to get object: %w", err)
	}
	// GetObject is lazy; Stat surfaces a missing key.
	info, err := obj.Stat()
	if err != nil {
		_ = obj.Close()
		if minio.ToErrorResponse(err).StatusCode == http.StatusNotFound {
			return nil, ErrNotFound
		}
		span.RecordError(err)
		return nil, fmt.Errorf("failed to stat object: %w", err)
	}

	ct := info.ContentType
	if ct == "" {
		ct = contentTypeFor(name)
	}
	return &Object{
		ReadCloser:  obj,
		Size:        info.Size,
		ContentType: ct,
		ModTime:     info.LastModified,
	}, nil
}

package blob

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// MinioStore implements Store using a MinIO (or any S3-compatible) backend.
// Identifiers are UUID object keys; the original filename is kept in user
// metadata and the content type on the object itself.
type MinioStore struct {
	client *minio.Client
	bucket string
}

// NewMinioStore creates a MinIO client, ensures the bucket exists, and
// returns a ready-to-use MinioStore.
func NewMinioStore(endpoint, accessKey, secretKey, bucket string, useSSL bool, log *slog.Logger) (*MinioStore, error) {
	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("create minio client: %w", err)
	}

	ctx := context.Background()

	exists, err := client.BucketExists(ctx, bucket)
	if err != nil {
		return nil, fmt.Errorf("check bucket existence: %w", err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("create bucket %q: %w", bucket, err)
		}
		log.Info("blob: created bucket", "bucket", bucket)
	}

	return &MinioStore{client: client, bucket: bucket}, nil
}

// Upload streams r to the bucket under a fresh UUID key.
func (s *MinioStore) Upload(ctx context.Context, r io.Reader, info Info) (string, error) {
	id := uuid.NewString()

	opts := minio.PutObjectOptions{ContentType: info.ContentType}
	if info.Filename != "" {
		opts.UserMetadata = map[string]string{"Filename": info.Filename}
	}

	// Size is unknown for multipart uploads; -1 makes the client buffer.
	if _, err := s.client.PutObject(ctx, s.bucket, id, r, -1, opts); err != nil {
		return "", &StoreError{Backend: "minio", Op: "upload", ID: id, Err: err}
	}
	return id, nil
}

// Download opens the object stream together with its stored metadata.
func (s *MinioStore) Download(ctx context.Context, id string) (io.ReadCloser, *Info, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, nil, ErrInvalidID
	}

	stat, err := s.client.StatObject(ctx, s.bucket, id, minio.StatObjectOptions{})
	if err != nil {
		if minio.ToErrorResponse(err).Code == "NoSuchKey" {
			return nil, nil, ErrNotFound
		}
		return nil, nil, &StoreError{Backend: "minio", Op: "download", ID: id, Err: err}
	}

	obj, err := s.client.GetObject(ctx, s.bucket, id, minio.GetObjectOptions{})
	if err != nil {
		return nil, nil, &StoreError{Backend: "minio", Op: "download", ID: id, Err: err}
	}

	return obj, &Info{
		Filename:    stat.UserMetadata["Filename"],
		ContentType: stat.ContentType,
		Size:        stat.Size,
	}, nil
}

// Exists reports whether an object with the key is present in the bucket.
func (s *MinioStore) Exists(ctx context.Context, id string) (bool, error) {
	if _, err := uuid.Parse(id); err != nil {
		return false, ErrInvalidID
	}

	_, err := s.client.StatObject(ctx, s.bucket, id, minio.StatObjectOptions{})
	if err != nil {
		if minio.ToErrorResponse(err).Code == "NoSuchKey" {
			return false, nil
		}
		return false, &StoreError{Backend: "minio", Op: "exists", ID: id, Err: err}
	}
	return true, nil
}

// Delete removes the object; S3 removal of an absent key already succeeds.
func (s *MinioStore) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return ErrInvalidID
	}

	if err := s.client.RemoveObject(ctx, s.bucket, id, minio.RemoveObjectOptions{}); err != nil {
		return &StoreError{Backend: "minio", Op: "delete", ID: id, Err: err}
	}
	return nil
}

package blob

import (
	"context"
	"errors"
	"fmt"
	"io"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/gridfs"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// GridFSStore implements Store on a MongoDB GridFS bucket. Identifiers are
// hex-encoded ObjectIDs assigned by the bucket at upload time.
//
// The v1 driver's gridfs API is not context-aware, so in-flight transfers do
// not observe cancellation. Callers must not assume non-blocking behavior.
type GridFSStore struct {
	bucket *gridfs.Bucket
}

// gridfsMeta is the metadata document stored alongside each file.
type gridfsMeta struct {
	ContentType string `bson:"contentType,omitempty"`
}

// NewGridFSStore creates a Store backed by the default GridFS bucket of db.
func NewGridFSStore(db *mongo.Database) (*GridFSStore, error) {
	bucket, err := gridfs.NewBucket(db)
	if err != nil {
		return nil, fmt.Errorf("create gridfs bucket: %w", err)
	}
	return &GridFSStore{bucket: bucket}, nil
}

// Upload streams r into a new GridFS file and returns its ObjectID as hex.
func (s *GridFSStore) Upload(_ context.Context, r io.Reader, info Info) (string, error) {
	opts := options.GridFSUpload()
	if info.ContentType != "" {
		opts.SetMetadata(bson.D{{Key: "contentType", Value: info.ContentType}})
	}

	us, err := s.bucket.OpenUploadStream(info.Filename, opts)
	if err != nil {
		return "", &StoreError{Backend: "gridfs", Op: "upload", ID: info.Filename, Err: err}
	}

	if _, err := io.Copy(us, r); err != nil {
		_ = us.Abort()
		return "", &StoreError{Backend: "gridfs", Op: "upload", ID: info.Filename, Err: err}
	}
	if err := us.Close(); err != nil {
		return "", &StoreError{Backend: "gridfs", Op: "upload", ID: info.Filename, Err: err}
	}

	oid, ok := us.FileID.(primitive.ObjectID)
	if !ok {
		return "", &StoreError{Backend: "gridfs", Op: "upload", ID: info.Filename,
			Err: fmt.Errorf("unexpected file id type %T", us.FileID)}
	}
	return oid.Hex(), nil
}

// Download opens a stream over the blob and returns it with the stored metadata.
func (s *GridFSStore) Download(_ context.Context, id string) (io.ReadCloser, *Info, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, nil, ErrInvalidID
	}

	ds, err := s.bucket.OpenDownloadStream(oid)
	if errors.Is(err, gridfs.ErrFileNotFound) {
		return nil, nil, ErrNotFound
	}
	if err != nil {
		return nil, nil, &StoreError{Backend: "gridfs", Op: "download", ID: id, Err: err}
	}

	file := ds.GetFile()
	var meta gridfsMeta
	if len(file.Metadata) > 0 {
		// Metadata is best-effort: a file without a contentType document is
		// served through the filename heuristics instead.
		_ = bson.Unmarshal(file.Metadata, &meta)
	}

	return ds, &Info{
		Filename:    file.Name,
		ContentType: meta.ContentType,
		Size:        file.Length,
	}, nil
}

// Exists reports whether a file with the identifier is present in the bucket.
func (s *GridFSStore) Exists(ctx context.Context, id string) (bool, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return false, ErrInvalidID
	}

	cursor, err := s.bucket.Find(bson.M{"_id": oid})
	if err != nil {
		return false, &StoreError{Backend: "gridfs", Op: "exists", ID: id, Err: err}
	}
	defer cursor.Close(ctx)

	found := cursor.Next(ctx)
	if err := cursor.Err(); err != nil {
		return false, &StoreError{Backend: "gridfs", Op: "exists", ID: id, Err: err}
	}
	return found, nil
}

// Delete removes the file and its chunks; deleting an absent file is a no-op.
func (s *GridFSStore) Delete(_ context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrInvalidID
	}

	err = s.bucket.Delete(oid)
	if errors.Is(err, gridfs.ErrFileNotFound) {
		return nil
	}
	if err != nil {
		return &StoreError{Backend: "gridfs", Op: "delete", ID: id, Err: err}
	}
	return nil
}

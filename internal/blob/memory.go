package blob

import (
	"bytes"
	"context"
	"io"
	"sync"

	"github.com/google/uuid"
)

// MemoryStore is an in-memory Store used in tests and local development.
type MemoryStore struct {
	mu    sync.RWMutex
	blobs map[string]memoryBlob
}

type memoryBlob struct {
	data []byte
	info Info
}

// NewMemoryStore creates an empty in-memory blob store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{blobs: make(map[string]memoryBlob)}
}

// Upload buffers r fully and stores it under a fresh UUID key.
func (s *MemoryStore) Upload(_ context.Context, r io.Reader, info Info) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", &StoreError{Backend: "memory", Op: "upload", ID: info.Filename, Err: err}
	}

	id := uuid.NewString()
	info.Size = int64(len(data))

	s.mu.Lock()
	defer s.mu.Unlock()
	s.blobs[id] = memoryBlob{data: data, info: info}
	return id, nil
}

// Download returns a reader over the stored bytes and a copy of the metadata.
func (s *MemoryStore) Download(_ context.Context, id string) (io.ReadCloser, *Info, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, nil, ErrInvalidID
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	b, ok := s.blobs[id]
	if !ok {
		return nil, nil, ErrNotFound
	}

	info := b.info
	return io.NopCloser(bytes.NewReader(b.data)), &info, nil
}

// Exists reports whether a blob is stored under the identifier.
func (s *MemoryStore) Exists(_ context.Context, id string) (bool, error) {
	if _, err := uuid.Parse(id); err != nil {
		return false, ErrInvalidID
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.blobs[id]
	return ok, nil
}

// Delete removes the blob; absent identifiers are a no-op.
func (s *MemoryStore) Delete(_ context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return ErrInvalidID
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.blobs, id)
	return nil
}

// Len reports the number of stored blobs. Test helper.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.blobs)
}

package post

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryStore is an in-memory Store used in tests and local development.
type MemoryStore struct {
	mu    sync.RWMutex
	posts map[string]Post
	// seq breaks ordering ties between posts created within the same clock
	// tick, so list output stays deterministic.
	seq map[string]int
	clk int
}

// NewMemoryStore creates an empty in-memory post store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{posts: make(map[string]Post), seq: make(map[string]int)}
}

// Insert assigns a UUID and creation timestamp and stores a copy of the post.
func (s *MemoryStore) Insert(_ context.Context, p *Post) (*Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p.ID = uuid.NewString()
	p.CreatedAt = time.Now().UTC()
	if p.MediaIDs == nil {
		p.MediaIDs = []string{}
	}

	s.clk++
	s.seq[p.ID] = s.clk
	s.posts[p.ID] = *p
	return p, nil
}

// Get fetches a post by identifier.
func (s *MemoryStore) Get(_ context.Context, id string) (*Post, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.posts[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &p, nil
}

// ListAll returns every post, newest-created first.
func (s *MemoryStore) ListAll(ctx context.Context) ([]Post, error) {
	return s.list(func(Post) bool { return true }), nil
}

// ListByAuthor returns the author's posts, newest-created first.
func (s *MemoryStore) ListByAuthor(_ context.Context, userID string) ([]Post, error) {
	return s.list(func(p Post) bool { return p.UserID == userID }), nil
}

func (s *MemoryStore) list(keep func(Post) bool) []Post {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []Post{}
	for _, p := range s.posts {
		if keep(p) {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return s.seq[out[i].ID] > s.seq[out[j].ID]
	})
	return out
}

// Update replaces content and attachments after verifying ownership.
func (s *MemoryStore) Update(_ context.Context, id, userID, content string, mediaIDs []string) (*Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.posts[id]
	if !ok {
		return nil, ErrNotFound
	}
	if p.UserID != userID {
		return nil, ErrForbidden
	}

	if mediaIDs == nil {
		mediaIDs = []string{}
	}
	p.Content = content
	p.MediaIDs = mediaIDs
	s.posts[id] = p
	return &p, nil
}

// Delete removes the record after verifying ownership.
func (s *MemoryStore) Delete(_ context.Context, id, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.posts[id]
	if !ok {
		return ErrNotFound
	}
	if p.UserID != userID {
		return ErrForbidden
	}

	delete(s.posts, id)
	delete(s.seq, id)
	return nil
}

package post

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/feedline/service/internal/blob"
)

// Upload is one media attachment supplied with a create or update request.
type Upload struct {
	Reader      io.Reader
	Filename    string
	ContentType string
}

// Service contains the business logic for posts and their media attachments.
type Service struct {
	store Store
	blobs blob.Store
	log   *slog.Logger
}

// NewService creates a new post Service.
func NewService(store Store, blobs blob.Store, log *slog.Logger) *Service {
	return &Service{store: store, blobs: blobs, log: log}
}

// Create uploads the attachments and inserts the post record. Attachment
// order is stable: images in the order supplied, then the video.
//
// A failed upload aborts the whole operation; blobs uploaded before the
// failure are cleaned up best-effort so no persisted post ever references a
// blob that was never created.
func (s *Service) Create(ctx context.Context, userID, content string, images []Upload, video *Upload) (*Post, error) {
	if userID == "" {
		return nil, fmt.Errorf("%w: userId is required", ErrInvalidArgument)
	}

	uploads := images
	if video != nil {
		uploads = append(append([]Upload{}, images...), *video)
	}

	mediaIDs, err := s.uploadAll(ctx, uploads)
	if err != nil {
		return nil, err
	}

	p, err := s.store.Insert(ctx, &Post{UserID: userID, Content: content, MediaIDs: mediaIDs})
	if err != nil {
		s.cleanupBlobs(ctx, mediaIDs)
		return nil, err
	}

	s.log.Info("post created", "postId", p.ID, "userId", userID, "attachments", len(mediaIDs))
	return p, nil
}

// GetAll returns every post, newest first.
func (s *Service) GetAll(ctx context.Context) ([]Post, error) {
	return s.store.ListAll(ctx)
}

// GetByAuthor returns the user's posts, newest first.
func (s *Service) GetByAuthor(ctx context.Context, userID string) ([]Post, error) {
	return s.store.ListByAuthor(ctx, userID)
}

// Update uploads any new images and replaces the post's content and
// attachment list. Previously attached blobs are not deleted; replaced
// attachments are left orphaned in the blob store.
func (s *Service) Update(ctx context.Context, postID, userID, content string, images []Upload) (*Post, error) {
	mediaIDs, err := s.uploadAll(ctx, images)
	if err != nil {
		return nil, err
	}

	p, err := s.store.Update(ctx, postID, userID, content, mediaIDs)
	if err != nil {
		s.cleanupBlobs(ctx, mediaIDs)
		return nil, err
	}

	s.log.Info("post updated", "postId", postID, "userId", userID, "attachments", len(mediaIDs))
	return p, nil
}

// Delete removes the post record and then its attachment blobs. Record and
// blob deletion are not atomic: an interruption in between leaves orphaned
// blobs behind, which is an accepted cost.
func (s *Service) Delete(ctx context.Context, postID, userID string) error {
	p, err := s.store.Get(ctx, postID)
	if err != nil {
		return err
	}
	if p.UserID != userID {
		return ErrForbidden
	}

	if err := s.store.Delete(ctx, postID, userID); err != nil {
		return err
	}

	for _, id := range p.MediaIDs {
		if err := s.blobs.Delete(ctx, id); err != nil {
			s.log.Warn("failed to delete attachment blob", "postId", postID, "mediaId", id, "error", err)
		}
	}

	s.log.Info("post deleted", "postId", postID, "userId", userID)
	return nil
}

// uploadAll uploads each attachment sequentially, preserving order. On
// failure the already-uploaded blobs are cleaned up and the failure returned.
func (s *Service) uploadAll(ctx context.Context, uploads []Upload) ([]string, error) {
	mediaIDs := []string{}
	for _, u := range uploads {
		id, err := s.blobs.Upload(ctx, u.Reader, blob.Info{
			Filename:    u.Filename,
			ContentType: u.ContentType,
		})
		if err != nil {
			s.cleanupBlobs(ctx, mediaIDs)
			return nil, fmt.Errorf("upload attachment %q: %w", u.Filename, err)
		}
		mediaIDs = append(mediaIDs, id)
	}
	return mediaIDs, nil
}

// cleanupBlobs best-effort deletes blobs that ended up unreferenced.
func (s *Service) cleanupBlobs(ctx context.Context, ids []string) {
	for _, id := range ids {
		if err := s.blobs.Delete(ctx, id); err != nil {
			s.log.Warn("failed to clean up blob", "mediaId", id, "error", err)
		}
	}
}

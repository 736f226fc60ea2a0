// Package post manages user posts and their persistence.
package post

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Post is a user-authored text entry optionally carrying media references.
// MediaIDs preserves insertion order, which is the display order.
type Post struct {
	ID        string    `bson:"_id,omitempty" json:"id"`
	UserID    string    `bson:"userId" json:"userId"`
	Content   string    `bson:"content" json:"content"`
	MediaIDs  []string  `bson:"mediaIds" json:"mediaIds"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
}

// ErrNotFound is returned when no post exists for the given identifier.
var ErrNotFound = errors.New("post not found")

// ErrForbidden is returned when a mutation is attempted by a user who does
// not own the post.
var ErrForbidden = errors.New("post does not belong to user")

// ErrInvalidArgument is returned when required input is missing or malformed.
var ErrInvalidArgument = errors.New("invalid argument")

// Store is the persistence abstraction over post records.
type Store interface {
	// Insert assigns an identifier and creation timestamp and stores the post.
	Insert(ctx context.Context, p *Post) (*Post, error)
	// Get fetches a post by identifier.
	Get(ctx context.Context, id string) (*Post, error)
	// ListAll returns every post, newest-created first.
	ListAll(ctx context.Context) ([]Post, error)
	// ListByAuthor returns the author's posts, newest-created first.
	ListByAuthor(ctx context.Context, userID string) ([]Post, error)
	// Update replaces content and attachment list after an ownership check,
	// preserving identifier, author, and creation timestamp.
	Update(ctx context.Context, id, userID, content string, mediaIDs []string) (*Post, error)
	// Delete removes the record after the same ownership check.
	Delete(ctx context.Context, id, userID string) error
}

// MongoStore implements Store on a MongoDB collection. Single-document writes
// are atomic; there is no multi-document transaction spanning post and blob
// operations.
type MongoStore struct {
	posts *mongo.Collection
}

// NewMongoStore creates a Store over the "posts" collection of db.
func NewMongoStore(db *mongo.Database) *MongoStore {
	return &MongoStore{posts: db.Collection("posts")}
}

// Insert stores the post with a fresh ObjectID and server-assigned timestamp.
func (s *MongoStore) Insert(ctx context.Context, p *Post) (*Post, error) {
	p.ID = primitive.NewObjectID().Hex()
	p.CreatedAt = time.Now().UTC()
	if p.MediaIDs == nil {
		p.MediaIDs = []string{}
	}

	if _, err := s.posts.InsertOne(ctx, p); err != nil {
		return nil, fmt.Errorf("insert post: %w", err)
	}
	return p, nil
}

// Get fetches a post by identifier.
func (s *MongoStore) Get(ctx context.Context, id string) (*Post, error) {
	p := &Post{}
	err := s.posts.FindOne(ctx, bson.M{"_id": id}).Decode(p)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get post: %w", err)
	}
	return p, nil
}

// ListAll returns every post, newest-created first.
func (s *MongoStore) ListAll(ctx context.Context) ([]Post, error) {
	return s.list(ctx, bson.M{})
}

// ListByAuthor returns the author's posts, newest-created first.
func (s *MongoStore) ListByAuthor(ctx context.Context, userID string) ([]Post, error) {
	return s.list(ctx, bson.M{"userId": userID})
}

func (s *MongoStore) list(ctx context.Context, filter bson.M) ([]Post, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := s.posts.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	defer cursor.Close(ctx)

	posts := []Post{}
	if err := cursor.All(ctx, &posts); err != nil {
		return nil, fmt.Errorf("decode posts: %w", err)
	}
	return posts, nil
}

// Update replaces content and attachments after verifying ownership.
func (s *MongoStore) Update(ctx context.Context, id, userID, content string, mediaIDs []string) (*Post, error) {
	p, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if p.UserID != userID {
		return nil, ErrForbidden
	}

	if mediaIDs == nil {
		mediaIDs = []string{}
	}
	_, err = s.posts.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"content": content, "mediaIds": mediaIDs}},
	)
	if err != nil {
		return nil, fmt.Errorf("update post: %w", err)
	}

	p.Content = content
	p.MediaIDs = mediaIDs
	return p, nil
}

// Delete removes the record after verifying ownership.
func (s *MongoStore) Delete(ctx context.Context, id, userID string) error {
	p, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if p.UserID != userID {
		return ErrForbidden
	}

	if _, err := s.posts.DeleteOne(ctx, bson.M{"_id": id}); err != nil {
		return fmt.Errorf("delete post: %w", err)
	}
	return nil
}

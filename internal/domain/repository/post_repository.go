package repository

import (
	"context"

	"github.com/oksasatya/pixelgram/internal/domain/entity"
)

// PostRepository defines post persistence plus the like edge set.
// Read methods hydrate Author and LikesCount; Comments are attached by the
// application layer.
type PostRepository interface {
	Create(ctx context.Context, p *entity.Post) error
	GetByID(ctx context.Context, id string) (*entity.Post, error)
	// ListRecent returns the newest posts across all users, newest first.
	ListRecent(ctx context.Context, limit int) ([]entity.Post, error)
	// ListByUser returns all posts by one user, newest first.
	ListByUser(ctx context.Context, userID string) ([]entity.Post, error)
	// Feed returns the newest posts authored by userID or anyone userID
	// follows, newest first.
	Feed(ctx context.Context, userID string, limit int) ([]entity.Post, error)
	// Delete removes the post together with its comments and likes in one
	// transaction. ErrNotFound when the post row is absent.
	Delete(ctx context.Context, id string) error

	// Like inserts the (post, user) edge and returns the resulting like
	// count. ErrDuplicate when the user already liked the post.
	Like(ctx context.Context, postID, userID string) (int, error)
	// Unlike removes the edge and returns the resulting like count.
	// ErrNotFound when the user had not liked the post.
	Unlike(ctx context.Context, postID, userID string) (int, error)
	Likers(ctx context.Context, postID string) ([]entity.Profile, error)
}

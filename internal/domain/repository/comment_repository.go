package repository

import (
	"context"

	"github.com/oksasatya/pixelgram/internal/domain/entity"
)

// CommentRepository defines comment persistence.
type CommentRepository interface {
	Create(ctx context.Context, c *entity.Comment) error
	GetByID(ctx context.Context, id string) (*entity.Comment, error)
	// ListByPost returns comments for a post, newest first, hydrated with
	// author profiles. limit <= 0 means no cap.
	ListByPost(ctx context.Context, postID string, limit int) ([]entity.Comment, error)
	Delete(ctx context.Context, id string) error
}

package application

import (
	"context"
	"errors"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/pixelgram/internal/domain/entity"
	"github.com/oksasatya/pixelgram/internal/domain/repository"
	"github.com/oksasatya/pixelgram/pkg/apperr"
)

// CommentService implements adding, listing and deleting comments.
type CommentService struct {
	Comments repository.CommentRepository
	Posts    repository.PostRepository
	Logger   *logrus.Logger
}

func NewCommentService(comments repository.CommentRepository, posts repository.PostRepository, logger *logrus.Logger) *CommentService {
	return &CommentService{Comments: comments, Posts: posts, Logger: logger}
}

// Add creates a comment by callerID on postID.
func (s *CommentService) Add(ctx context.Context, callerID, postID, text string) (*entity.Comment, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, apperr.BadRequest("comment text is required")
	}
	if len(text) > entity.MaxCommentLen {
		return nil, apperr.BadRequest("comment cannot exceed 500 characters")
	}
	if _, err := s.Posts.GetByID(ctx, postID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.NotFound("post not found")
		}
		return nil, err
	}
	c := &entity.Comment{PostID: postID, UserID: callerID, Text: text}
	if err := s.Comments.Create(ctx, c); err != nil {
		return nil, err
	}
	return s.Comments.GetByID(ctx, c.ID)
}

// ListForPost returns a post's comments, newest first, uncapped.
func (s *CommentService) ListForPost(ctx context.Context, postID string) ([]entity.Comment, error) {
	return s.Comments.ListByPost(ctx, postID, 0)
}

// Delete removes a comment owned by callerID, detaching it from its post.
func (s *CommentService) Delete(ctx context.Context, callerID, commentID string) error {
	c, err := s.Comments.GetByID(ctx, commentID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperr.NotFound("comment not found")
		}
		return err
	}
	if c.UserID != callerID {
		return apperr.Forbidden("you can only delete your own comments")
	}
	return s.Comments.Delete(ctx, commentID)
}

package application

import (
	"context"
	"errors"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/pixelgram/internal/domain/entity"
	"github.com/oksasatya/pixelgram/internal/domain/repository"
	"github.com/oksasatya/pixelgram/internal/infrastructure/imagestore"
	"github.com/oksasatya/pixelgram/pkg/apperr"
)

const (
	feedLimit    = 50
	exploreLimit = 100
	// feedCommentLimit caps the comments attached to each feed entry.
	feedCommentLimit = 2
)

// ImageStore is the external image storage collaborator.
type ImageStore interface {
	UploadInline(ctx context.Context, ownerID, dataURI string) (imagestore.Uploaded, error)
	Delete(ctx context.Context, objectKey string) error
}

// PostService implements post creation, listing, feeds, likes and the
// cascading delete.
type PostService struct {
	Posts    repository.PostRepository
	Comments repository.CommentRepository
	Images   ImageStore
	Logger   *logrus.Logger
}

func NewPostService(posts repository.PostRepository, comments repository.CommentRepository, images ImageStore, logger *logrus.Logger) *PostService {
	return &PostService{Posts: posts, Comments: comments, Images: images, Logger: logger}
}

type CreatePostInput struct {
	ImageURL string
	Caption  string
}

// Create persists a post for ownerID. Inline-encoded payloads are routed
// through the image store first; plain URLs are stored as-is with no
// deletion handle.
func (s *PostService) Create(ctx context.Context, ownerID string, in CreatePostInput) (*entity.Post, error) {
	imageURL := in.ImageURL
	objectKey := ""
	if imagestore.IsInline(in.ImageURL) {
		if s.Images == nil {
			return nil, apperr.UploadFailed(errors.New("image storage not configured"))
		}
		up, err := s.Images.UploadInline(ctx, ownerID, in.ImageURL)
		if err != nil {
			return nil, apperr.UploadFailed(err)
		}
		imageURL = up.URL
		objectKey = up.ObjectKey
	}

	p := &entity.Post{
		UserID:         ownerID,
		ImageURL:       imageURL,
		ImageObjectKey: objectKey,
		Caption:        strings.TrimSpace(in.Caption),
	}
	if err := s.Posts.Create(ctx, p); err != nil {
		return nil, err
	}
	return s.Posts.GetByID(ctx, p.ID)
}

// Feed returns the newest posts by userID and everyone userID follows, each
// with its most recent comments attached.
func (s *PostService) Feed(ctx context.Context, userID string) ([]entity.Post, error) {
	posts, err := s.Posts.Feed(ctx, userID, feedLimit)
	if err != nil {
		return nil, err
	}
	for i := range posts {
		comments, err := s.Comments.ListByPost(ctx, posts[i].ID, feedCommentLimit)
		if err != nil {
			return nil, err
		}
		posts[i].Comments = comments
	}
	return posts, nil
}

// Explore returns the newest posts across all users.
func (s *PostService) Explore(ctx context.Context) ([]entity.Post, error) {
	return s.Posts.ListRecent(ctx, exploreLimit)
}

// Get returns one post with all its comments, newest first.
func (s *PostService) Get(ctx context.Context, id string) (*entity.Post, error) {
	p, err := s.Posts.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.NotFound("post not found")
		}
		return nil, err
	}
	comments, err := s.Comments.ListByPost(ctx, id, 0)
	if err != nil {
		return nil, err
	}
	p.Comments = comments
	return p, nil
}

// ListByUser returns all posts by one user, newest first.
func (s *PostService) ListByUser(ctx context.Context, userID string) ([]entity.Post, error) {
	return s.Posts.ListByUser(ctx, userID)
}

// Delete removes a post owned by callerID. The stored image is deleted
// first; a storage failure aborts the operation before any database write.
// The comment and like rows go in the same transaction as the post row.
func (s *PostService) Delete(ctx context.Context, callerID, postID string) error {
	p, err := s.Posts.GetByID(ctx, postID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperr.NotFound("post not found")
		}
		return err
	}
	if p.UserID != callerID {
		return apperr.Forbidden("you can only delete your own posts")
	}
	if p.ImageObjectKey != "" {
		if err := s.Images.Delete(ctx, p.ImageObjectKey); err != nil {
			return apperr.UploadFailed(err)
		}
	}
	return s.Posts.Delete(ctx, postID)
}

// Like records callerID's like and returns the resulting count.
func (s *PostService) Like(ctx context.Context, callerID, postID string) (int, error) {
	if _, err := s.Posts.GetByID(ctx, postID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return 0, apperr.NotFound("post not found")
		}
		return 0, err
	}
	n, err := s.Posts.Like(ctx, postID, callerID)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return 0, apperr.BadRequest("post already liked")
		}
		return 0, err
	}
	return n, nil
}

// Unlike removes callerID's like and returns the resulting count.
func (s *PostService) Unlike(ctx context.Context, callerID, postID string) (int, error) {
	if _, err := s.Posts.GetByID(ctx, postID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return 0, apperr.NotFound("post not found")
		}
		return 0, err
	}
	n, err := s.Posts.Unlike(ctx, postID, callerID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return 0, apperr.BadRequest("post not liked yet")
		}
		return 0, err
	}
	return n, nil
}

// Likers expands the like set into profile summaries.
func (s *PostService) Likers(ctx context.Context, postID string) ([]entity.Profile, error) {
	if _, err := s.Posts.GetByID(ctx, postID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.NotFound("post not found")
		}
		return nil, err
	}
	return s.Posts.Likers(ctx, postID)
}

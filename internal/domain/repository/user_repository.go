package repository

import (
	"context"

	"github.com/oksasatya/pixelgram/internal/domain/entity"
)

// UserRepository defines user persistence plus the follow edge set.
// Follow/Unfollow are atomic at the database level: the uniqueness check and
// the mutation are a single statement, so concurrent identical requests
// cannot double-apply.
type UserRepository interface {
	Create(ctx context.Context, u *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	// ExistsByEmailOrUsername reports whether any user matches either field
	// (case-sensitive exact match, OR semantics).
	ExistsByEmailOrUsername(ctx context.Context, email, username string) (bool, error)
	Update(ctx context.Context, u *entity.User) error

	Stats(ctx context.Context, userID string) (entity.UserStats, error)

	// Follow inserts the (follower, target) edge. ErrDuplicate when the edge
	// already exists.
	Follow(ctx context.Context, followerID, targetID string) error
	// Unfollow removes the edge. ErrNotFound when it was absent.
	Unfollow(ctx context.Context, followerID, targetID string) error
	Followers(ctx context.Context, userID string) ([]entity.Profile, error)
	Following(ctx context.Context, userID string) ([]entity.Profile, error)
}

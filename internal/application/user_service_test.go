package application

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/pixelgram/internal/domain/entity"
	"github.com/oksasatya/pixelgram/pkg/apperr"
	"github.com/oksasatya/pixelgram/pkg/helpers"
)

func newUserService(users *memUsers) *UserService {
	posts := newMemPosts(users)
	jwt := helpers.NewJWTManager("test-secret", time.Hour)
	return NewUserService(users, posts, jwt, nil)
}

func TestRegister(t *testing.T) {
	users := newMemUsers()
	svc := newUserService(users)
	ctx := context.Background()

	sess, err := svc.Register(ctx, RegisterInput{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "password123",
		FullName: "Alice",
	})
	require.NoError(t, err)
	require.NotNil(t, sess.User)
	assert.NotEmpty(t, sess.User.ID)
	assert.NotEmpty(t, sess.Token)
	assert.True(t, sess.ExpiresAt.After(time.Now()))
	// the stored password must be a hash, not the plaintext
	assert.NotEqual(t, "password123", sess.User.Password)
	assert.True(t, helpers.CompareHashAndPassword(sess.User.Password, "password123"))
}

func TestRegisterDuplicateIdentity(t *testing.T) {
	users := newMemUsers()
	users.add("alice", "alice@example.com")
	svc := newUserService(users)
	ctx := context.Background()

	cases := []struct {
		name     string
		username string
		email    string
	}{
		{"same email", "other", "alice@example.com"},
		{"same username", "alice", "other@example.com"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Register(ctx, RegisterInput{Username: tc.username, Email: tc.email, Password: "password123"})
			require.Error(t, err)
			assert.Equal(t, http.StatusBadRequest, apperr.StatusOf(err))
			assert.Contains(t, err.Error(), "already exists")
		})
	}
}

func TestLogin(t *testing.T) {
	users := newMemUsers()
	svc := newUserService(users)
	ctx := context.Background()

	_, err := svc.Register(ctx, RegisterInput{Username: "alice", Email: "alice@example.com", Password: "password123"})
	require.NoError(t, err)

	sess, err := svc.Login(ctx, "alice@example.com", "password123")
	require.NoError(t, err)
	assert.NotEmpty(t, sess.Token)

	_, err = svc.Login(ctx, "alice@example.com", "wrongpass")
	assert.Equal(t, http.StatusUnauthorized, apperr.StatusOf(err))

	_, err = svc.Login(ctx, "nobody@example.com", "password123")
	assert.Equal(t, http.StatusUnauthorized, apperr.StatusOf(err))
}

// brokenUsers simulates an unreachable database on lookup by email.
type brokenUsers struct {
	*memUsers
}

func (b *brokenUsers) GetByEmail(context.Context, string) (*entity.User, error) {
	return nil, errors.New("connection refused")
}

func TestLoginRepositoryFailureIsNot401(t *testing.T) {
	users := newMemUsers()
	svc := newUserService(users)
	svc.Users = &brokenUsers{memUsers: users}

	_, err := svc.Login(context.Background(), "alice@example.com", "password123")
	require.Error(t, err)
	assert.Equal(t, http.StatusInternalServerError, apperr.StatusOf(err))
}

func TestSearchUsersWithoutBackend(t *testing.T) {
	users := newMemUsers()
	svc := newUserService(users) // no ES client configured

	res, err := svc.SearchUsers(context.Background(), "alice", 10)
	require.NoError(t, err)
	assert.Empty(t, res)
}

func TestUpdateProfile(t *testing.T) {
	users := newMemUsers()
	alice := users.add("alice", "alice@example.com")
	bob := users.add("bob", "bob@example.com")
	svc := newUserService(users)
	ctx := context.Background()

	// only your own profile
	_, err := svc.UpdateProfile(ctx, bob.ID, alice.ID, UpdateProfileInput{Bio: "hacked"})
	assert.Equal(t, http.StatusForbidden, apperr.StatusOf(err))

	// partial update keeps untouched fields
	updated, err := svc.UpdateProfile(ctx, alice.ID, alice.ID, UpdateProfileInput{Bio: "photos of cats"})
	require.NoError(t, err)
	assert.Equal(t, "photos of cats", updated.Bio)
	assert.Equal(t, "alice", updated.Username)

	// username collision
	_, err = svc.UpdateProfile(ctx, alice.ID, alice.ID, UpdateProfileInput{Username: "bob"})
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, apperr.StatusOf(err))
	assert.Contains(t, err.Error(), "username already taken")
}

func TestFollowRules(t *testing.T) {
	users := newMemUsers()
	alice := users.add("alice", "alice@example.com")
	bob := users.add("bob", "bob@example.com")
	svc := newUserService(users)
	ctx := context.Background()

	err := svc.Follow(ctx, alice.ID, alice.ID)
	assert.Equal(t, http.StatusBadRequest, apperr.StatusOf(err))
	assert.Contains(t, err.Error(), "cannot follow yourself")

	err = svc.Follow(ctx, alice.ID, "user-999")
	assert.Equal(t, http.StatusNotFound, apperr.StatusOf(err))

	require.NoError(t, svc.Follow(ctx, alice.ID, bob.ID))

	err = svc.Follow(ctx, alice.ID, bob.ID)
	assert.Equal(t, http.StatusBadRequest, apperr.StatusOf(err))
	assert.Contains(t, err.Error(), "already following")
}

func TestFollowIsOneDirectional(t *testing.T) {
	users := newMemUsers()
	alice := users.add("alice", "alice@example.com")
	bob := users.add("bob", "bob@example.com")
	svc := newUserService(users)
	ctx := context.Background()

	require.NoError(t, svc.Follow(ctx, alice.ID, bob.ID))

	bobFollowers, err := svc.Followers(ctx, bob.ID)
	require.NoError(t, err)
	require.Len(t, bobFollowers, 1)
	assert.Equal(t, "alice", bobFollowers[0].Username)

	aliceFollowing, err := svc.Following(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, aliceFollowing, 1)
	assert.Equal(t, "bob", aliceFollowing[0].Username)

	// the reverse edge does not exist
	aliceFollowers, err := svc.Followers(ctx, alice.ID)
	require.NoError(t, err)
	assert.Empty(t, aliceFollowers)
}

func TestUnfollow(t *testing.T) {
	users := newMemUsers()
	alice := users.add("alice", "alice@example.com")
	bob := users.add("bob", "bob@example.com")
	svc := newUserService(users)
	ctx := context.Background()

	err := svc.Unfollow(ctx, alice.ID, bob.ID)
	assert.Equal(t, http.StatusBadRequest, apperr.StatusOf(err))
	assert.Contains(t, err.Error(), "not following")

	require.NoError(t, svc.Follow(ctx, alice.ID, bob.ID))
	require.NoError(t, svc.Unfollow(ctx, alice.ID, bob.ID))

	following, err := svc.Following(ctx, alice.ID)
	require.NoError(t, err)
	assert.Empty(t, following)
}

func TestPublicProfileCounts(t *testing.T) {
	users := newMemUsers()
	alice := users.add("alice", "alice@example.com")
	bob := users.add("bob", "bob@example.com")
	carol := users.add("carol", "carol@example.com")
	svc := newUserService(users)
	ctx := context.Background()

	require.NoError(t, svc.Follow(ctx, bob.ID, alice.ID))
	require.NoError(t, svc.Follow(ctx, carol.ID, alice.ID))
	require.NoError(t, svc.Follow(ctx, alice.ID, bob.ID))

	u, stats, err := svc.PublicProfile(ctx, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice", u.Username)
	assert.Equal(t, 2, stats.Followers)
	assert.Equal(t, 1, stats.Following)

	_, _, err = svc.PublicProfile(ctx, "user-999")
	assert.Equal(t, http.StatusNotFound, apperr.StatusOf(err))
}

func TestMeIncludesOwnPosts(t *testing.T) {
	users := newMemUsers()
	alice := users.add("alice", "alice@example.com")
	posts := newMemPosts(users)
	jwt := helpers.NewJWTManager("test-secret", time.Hour)
	svc := NewUserService(users, posts, jwt, nil)
	ctx := context.Background()

	require.NoError(t, posts.Create(ctx, postFor(alice.ID, "first")))
	require.NoError(t, posts.Create(ctx, postFor(alice.ID, "second")))

	u, mine, err := svc.Me(ctx, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, alice.ID, u.ID)
	require.Len(t, mine, 2)
	assert.Equal(t, "second", mine[0].Caption) // newest first
}

package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/pixelgram/internal/domain/entity"
	"github.com/oksasatya/pixelgram/internal/domain/repository"
	"github.com/oksasatya/pixelgram/pkg/helpers"
)

// stubUsers satisfies repository.UserRepository; only GetByID matters here.
type stubUsers struct {
	users map[string]*entity.User
}

func (s *stubUsers) GetByID(_ context.Context, id string) (*entity.User, error) {
	u, ok := s.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return u, nil
}

func (s *stubUsers) Create(context.Context, *entity.User) error { return nil }
func (s *stubUsers) GetByEmail(context.Context, string) (*entity.User, error) {
	return nil, repository.ErrNotFound
}
func (s *stubUsers) ExistsByEmailOrUsername(context.Context, string, string) (bool, error) {
	return false, nil
}
func (s *stubUsers) Update(context.Context, *entity.User) error { return nil }
func (s *stubUsers) Stats(context.Context, string) (entity.UserStats, error) {
	return entity.UserStats{}, nil
}
func (s *stubUsers) Follow(context.Context, string, string) error   { return nil }
func (s *stubUsers) Unfollow(context.Context, string, string) error { return nil }
func (s *stubUsers) Followers(context.Context, string) ([]entity.Profile, error) {
	return nil, nil
}
func (s *stubUsers) Following(context.Context, string) ([]entity.Profile, error) {
	return nil, nil
}

var _ repository.UserRepository = (*stubUsers)(nil)

func newAuthRouter(users repository.UserRepository, jwt *helpers.JWTManager) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/protected", Auth(users, jwt), func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString(CtxUserIDKey))
	})
	return r
}

func TestAuthMissingToken(t *testing.T) {
	jwt := helpers.NewJWTManager("secret", time.Hour)
	r := newAuthRouter(&stubUsers{}, jwt)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "missing access token")
}

func TestAuthMalformedHeader(t *testing.T) {
	jwt := helpers.NewJWTManager("secret", time.Hour)
	r := newAuthRouter(&stubUsers{}, jwt)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Token abc")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthInvalidToken(t *testing.T) {
	jwt := helpers.NewJWTManager("secret", time.Hour)
	r := newAuthRouter(&stubUsers{}, jwt)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "invalid access token")
}

func TestAuthDeletedUser(t *testing.T) {
	jwt := helpers.NewJWTManager("secret", time.Hour)
	token, _, err := jwt.Generate("user-gone")
	require.NoError(t, err)
	r := newAuthRouter(&stubUsers{}, jwt)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "user no longer exists")
}

func TestAuthValidToken(t *testing.T) {
	jwt := helpers.NewJWTManager("secret", time.Hour)
	token, _, err := jwt.Generate("user-1")
	require.NoError(t, err)

	users := &stubUsers{users: map[string]*entity.User{
		"user-1": {ID: "user-1", Username: "alice"},
	}}
	r := newAuthRouter(users, jwt)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "user-1", w.Body.String())
}

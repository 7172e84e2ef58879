package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/pixelgram/internal/container"
	"github.com/oksasatya/pixelgram/internal/domain/repository"
	handlers "github.com/oksasatya/pixelgram/internal/interface/http"
	"github.com/oksasatya/pixelgram/internal/interface/middleware"
)

// UserModule wires user HTTP handlers and the auth guard into routes.
// Public: register, login, profile by id, followers/following.
// Protected: me, search, profile update, follow/unfollow.
type UserModule struct {
	Handler *handlers.UserHandler
	Users   repository.UserRepository
}

func NewUserModule(h *handlers.UserHandler, users repository.UserRepository) *UserModule {
	return &UserModule{Handler: h, Users: users}
}

func (m *UserModule) Register(rg *gin.RouterGroup) {
	registerLimiter := middleware.RateLimit(container.GetRedis(), 10, time.Minute, middleware.KeyByIPAndPath(), nil)
	loginLimiter := middleware.RateLimit(container.GetRedis(), 10, time.Minute, middleware.KeyByIPAndPath(), nil)

	rg.POST("/users/register", registerLimiter, m.Handler.Register)
	rg.POST("/users/login", loginLimiter, m.Handler.Login)

	rg.GET("/users/:id", m.Handler.GetProfile)
	rg.GET("/users/:id/followers", m.Handler.Followers)
	rg.GET("/users/:id/following", m.Handler.Following)

	auth := rg.Group("/")
	auth.Use(middleware.Auth(m.Users, container.GetJWT()))
	auth.Use(middleware.RateLimit(container.GetRedis(), 300, time.Minute, middleware.KeyByUserID(), nil))
	{
		auth.GET("/users/me", m.Handler.Me)
		auth.GET("/users/search", m.Handler.Search)
		auth.PUT("/users/:id", m.Handler.UpdateProfile)
		auth.POST("/users/:id/follow", m.Handler.Follow)
		auth.DELETE("/users/:id/follow", m.Handler.Unfollow)
	}
}

package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/pixelgram/internal/container"
	"github.com/oksasatya/pixelgram/internal/domain/repository"
	handlers "github.com/oksasatya/pixelgram/internal/interface/http"
	"github.com/oksasatya/pixelgram/internal/interface/middleware"
)

// PostModule wires post HTTP handlers into routes.
// Public: explore list, post by id, likers, a user's posts.
// Protected: create, feed, delete, like/unlike.
type PostModule struct {
	Handler *handlers.PostHandler
	Users   repository.UserRepository
}

func NewPostModule(h *handlers.PostHandler, users repository.UserRepository) *PostModule {
	return &PostModule{Handler: h, Users: users}
}

func (m *PostModule) Register(rg *gin.RouterGroup) {
	rg.GET("/posts", m.Handler.List)
	rg.GET("/posts/:id", m.Handler.Get)
	rg.GET("/posts/:id/likes", m.Handler.Likes)
	rg.GET("/users/:id/posts", m.Handler.ListByUser)

	auth := rg.Group("/")
	auth.Use(middleware.Auth(m.Users, container.GetJWT()))
	auth.Use(middleware.RateLimit(container.GetRedis(), 300, time.Minute, middleware.KeyByUserID(), nil))
	{
		auth.POST("/posts", m.Handler.Create)
		auth.GET("/posts/feed", m.Handler.Feed)
		auth.DELETE("/posts/:id", m.Handler.Delete)
		auth.POST("/posts/:id/like", m.Handler.Like)
		auth.DELETE("/posts/:id/like", m.Handler.Unlike)
	}
}

package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/pixelgram/internal/container"
	"github.com/oksasatya/pixelgram/internal/domain/repository"
	handlers "github.com/oksasatya/pixelgram/internal/interface/http"
	"github.com/oksasatya/pixelgram/internal/interface/middleware"
)

// CommentModule wires comment HTTP handlers into routes.
// Public: list a post's comments. Protected: add, delete.
type CommentModule struct {
	Handler *handlers.CommentHandler
	Users   repository.UserRepository
}

func NewCommentModule(h *handlers.CommentHandler, users repository.UserRepository) *CommentModule {
	return &CommentModule{Handler: h, Users: users}
}

func (m *CommentModule) Register(rg *gin.RouterGroup) {
	rg.GET("/posts/:id/comments", m.Handler.List)

	auth := rg.Group("/")
	auth.Use(middleware.Auth(m.Users, container.GetJWT()))
	auth.Use(middleware.RateLimit(container.GetRedis(), 300, time.Minute, middleware.KeyByUserID(), nil))
	{
		auth.POST("/posts/:id/comments", m.Handler.Add)
		auth.DELETE("/comments/:id", m.Handler.Delete)
	}
}

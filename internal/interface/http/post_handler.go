package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/pixelgram/internal/application"
	"github.com/oksasatya/pixelgram/internal/interface/middleware"
	"github.com/oksasatya/pixelgram/pkg/response"
	"github.com/oksasatya/pixelgram/pkg/validation"
)

type PostHandler struct {
	Svc    *application.PostService
	Logger *logrus.Logger
}

func NewPostHandler(svc *application.PostService, logger *logrus.Logger) *PostHandler {
	return &PostHandler{Svc: svc, Logger: logger}
}

type createPostRequest struct {
	ImageURL string `json:"imageUrl" binding:"required"`
	Caption  string `json:"caption" binding:"max=2200"`
}

// Create POST /api/posts
func (h *PostHandler) Create(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)
	var req createPostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	p, err := h.Svc.Create(c.Request.Context(), uid, application.CreatePostInput{
		ImageURL: req.ImageURL,
		Caption:  req.Caption,
	})
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"post": postJSON(p)}, "post created successfully")
}

// Feed GET /api/posts/feed
func (h *PostHandler) Feed(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)
	posts, err := h.Svc.Feed(c.Request.Context(), uid)
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"posts": postsJSON(posts)}, "feed retrieved successfully")
}

// List GET /api/posts
func (h *PostHandler) List(c *gin.Context) {
	posts, err := h.Svc.Explore(c.Request.Context())
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"posts": postsJSON(posts)}, "posts retrieved successfully")
}

// Get GET /api/posts/:id
func (h *PostHandler) Get(c *gin.Context) {
	p, err := h.Svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"post": postJSON(p)}, "post retrieved successfully")
}

// ListByUser GET /api/users/:id/posts
func (h *PostHandler) ListByUser(c *gin.Context) {
	posts, err := h.Svc.ListByUser(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"posts": postsJSON(posts)}, "user posts retrieved successfully")
}

// Delete DELETE /api/posts/:id
func (h *PostHandler) Delete(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)
	if err := h.Svc.Delete(c.Request.Context(), uid, c.Param("id")); err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{}, "post deleted successfully")
}

// Like POST /api/posts/:id/like
func (h *PostHandler) Like(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)
	n, err := h.Svc.Like(c.Request.Context(), uid, c.Param("id"))
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"likesCount": n}, "post liked successfully")
}

// Unlike DELETE /api/posts/:id/like
func (h *PostHandler) Unlike(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)
	n, err := h.Svc.Unlike(c.Request.Context(), uid, c.Param("id"))
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"likesCount": n}, "post unliked successfully")
}

// Likes GET /api/posts/:id/likes
func (h *PostHandler) Likes(c *gin.Context) {
	likers, err := h.Svc.Likers(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"likes": likers}, "likes retrieved successfully")
}

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

type CommentHandler struct {
	Svc    *application.CommentService
	Logger *logrus.Logger
}

func NewCommentHandler(svc *application.CommentService, logger *logrus.Logger) *CommentHandler {
	return &CommentHandler{Svc: svc, Logger: logger}
}

type addCommentRequest struct {
	Text string `json:"text" binding:"required,max=500"`
}

// Add POST /api/posts/:id/comments
func (h *CommentHandler) Add(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)
	var req addCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	cm, err := h.Svc.Add(c.Request.Context(), uid, c.Param("id"), req.Text)
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"comment": commentJSON(cm)}, "comment added successfully")
}

// List GET /api/posts/:id/comments
func (h *CommentHandler) List(c *gin.Context) {
	comments, err := h.Svc.ListForPost(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{
		"comments": commentsJSON(comments),
		"count":    len(comments),
	}, "comments retrieved successfully")
}

// Delete DELETE /api/comments/:id
func (h *CommentHandler) Delete(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)
	if err := h.Svc.Delete(c.Request.Context(), uid, c.Param("id")); err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{}, "comment deleted successfully")
}

package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/pixelgram/internal/application"
	"github.com/oksasatya/pixelgram/internal/interface/middleware"
	"github.com/oksasatya/pixelgram/pkg/response"
	"github.com/oksasatya/pixelgram/pkg/validation"
)

type UserHandler struct {
	Svc    *application.UserService
	Logger *logrus.Logger
}

func NewUserHandler(svc *application.UserService, logger *logrus.Logger) *UserHandler {
	return &UserHandler{Svc: svc, Logger: logger}
}

type registerRequest struct {
	Username string `json:"username" binding:"required,username"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,pwd"`
	FullName string `json:"fullName"`
	Bio      string `json:"bio" binding:"max=500"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type updateProfileRequest struct {
	FullName string `json:"fullName"`
	Bio      string `json:"bio" binding:"max=500"`
	Username string `json:"username" binding:"omitempty,username"`
}

// Register POST /api/users/register
func (h *UserHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	sess, err := h.Svc.Register(c.Request.Context(), application.RegisterInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
		FullName: req.FullName,
		Bio:      req.Bio,
	})
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{
		"user":  userJSON(sess.User),
		"token": sess.Token,
	}, "user registered successfully")
}

// Login POST /api/users/login
func (h *UserHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	sess, err := h.Svc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{
		"user":  userJSON(sess.User),
		"token": sess.Token,
	}, "login successful")
}

// Me GET /api/users/me
func (h *UserHandler) Me(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)
	u, posts, err := h.Svc.Me(c.Request.Context(), uid)
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	user := userJSON(u)
	user["posts"] = postsJSON(posts)
	response.Success(c, http.StatusOK, gin.H{"user": user}, "user profile retrieved")
}

// Search GET /api/users/search?q=&size=
func (h *UserHandler) Search(c *gin.Context) {
	q := c.Query("q")
	if q == "" {
		response.Fail(c, http.StatusBadRequest, "query parameter q is required", nil)
		return
	}
	size, _ := strconv.Atoi(c.DefaultQuery("size", "10"))
	res, err := h.Svc.SearchUsers(c.Request.Context(), q, size)
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"users": res}, "users retrieved")
}

// GetProfile GET /api/users/:id
func (h *UserHandler) GetProfile(c *gin.Context) {
	u, stats, err := h.Svc.PublicProfile(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"user": gin.H{
		"id":             u.ID,
		"username":       u.Username,
		"fullName":       u.FullName,
		"bio":            u.Bio,
		"profilePicture": u.ProfilePicture,
		"followersCount": stats.Followers,
		"followingCount": stats.Following,
		"postsCount":     stats.Posts,
	}}, "user profile retrieved")
}

// UpdateProfile PUT /api/users/:id
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)
	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	u, err := h.Svc.UpdateProfile(c.Request.Context(), uid, c.Param("id"), application.UpdateProfileInput{
		FullName: req.FullName,
		Bio:      req.Bio,
		Username: req.Username,
	})
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"user": userJSON(u)}, "profile updated successfully")
}

// Follow POST /api/users/:id/follow
func (h *UserHandler) Follow(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)
	if err := h.Svc.Follow(c.Request.Context(), uid, c.Param("id")); err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{}, "user followed successfully")
}

// Unfollow DELETE /api/users/:id/follow
func (h *UserHandler) Unfollow(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)
	if err := h.Svc.Unfollow(c.Request.Context(), uid, c.Param("id")); err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{}, "user unfollowed successfully")
}

// Followers GET /api/users/:id/followers
func (h *UserHandler) Followers(c *gin.Context) {
	followers, err := h.Svc.Followers(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"followers": followers}, "followers retrieved")
}

// Following GET /api/users/:id/following
func (h *UserHandler) Following(c *gin.Context) {
	following, err := h.Svc.Following(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"following": following}, "following retrieved")
}

package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/pixelgram/internal/domain/entity"
	"github.com/oksasatya/pixelgram/pkg/apperr"
	"github.com/oksasatya/pixelgram/pkg/response"
)

// fail is the single boundary translating service errors into the failure
// envelope. Unclassified errors surface as 500 and are logged with their
// cause; classified ones carry their own status and message.
func fail(c *gin.Context, logger *logrus.Logger, err error) {
	e := apperr.From(err)
	if e.Status >= http.StatusInternalServerError && logger != nil {
		logger.WithError(err).WithFields(logrus.Fields{
			"request_id": c.GetString("request_id"),
			"path":       c.FullPath(),
		}).Error("request failed")
	}
	response.Fail(c, e.Status, e.Message, nil)
}

// userJSON renders a user record without the password field.
func userJSON(u *entity.User) gin.H {
	return gin.H{
		"id":             u.ID,
		"username":       u.Username,
		"email":          u.Email,
		"fullName":       u.FullName,
		"bio":            u.Bio,
		"profilePicture": u.ProfilePicture,
		"createdAt":      u.CreatedAt,
	}
}

func postJSON(p *entity.Post) gin.H {
	out := gin.H{
		"id":         p.ID,
		"user":       p.Author,
		"imageUrl":   p.ImageURL,
		"caption":    p.Caption,
		"likesCount": p.LikesCount,
		"createdAt":  p.CreatedAt,
	}
	if p.Comments != nil {
		out["comments"] = commentsJSON(p.Comments)
	}
	return out
}

func postsJSON(posts []entity.Post) []gin.H {
	out := make([]gin.H, 0, len(posts))
	for i := range posts {
		out = append(out, postJSON(&posts[i]))
	}
	return out
}

func commentJSON(c *entity.Comment) gin.H {
	return gin.H{
		"id":        c.ID,
		"post":      c.PostID,
		"user":      c.Author,
		"text":      c.Text,
		"createdAt": c.CreatedAt,
	}
}

func commentsJSON(comments []entity.Comment) []gin.H {
	out := make([]gin.H, 0, len(comments))
	for i := range comments {
		out = append(out, commentJSON(&comments[i]))
	}
	return out
}

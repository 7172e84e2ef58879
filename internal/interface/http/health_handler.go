package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oksasatya/pixelgram/pkg/response"
)

type HealthHandler struct {
	Pool *pgxpool.Pool
}

func NewHealthHandler(pool *pgxpool.Pool) *HealthHandler {
	return &HealthHandler{Pool: pool}
}

// Check GET /api/healthcheck. Always answers; a failing database ping is
// reported in the body, not as a request failure.
func (h *HealthHandler) Check(c *gin.Context) {
	db := "ok"
	if h.Pool != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := h.Pool.Ping(ctx); err != nil {
			db = "unreachable"
		}
	}
	response.Success(c, http.StatusOK, gin.H{"database": db}, "API is running")
}

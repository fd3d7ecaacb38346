package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/studentdesk/studentdesk/internal/app/models/dto"
	"github.com/studentdesk/studentdesk/internal/db"
)

// HealthController reports store connectivity and bootstrap outcome
type HealthController struct {
	pool      *pgxpool.Pool
	bootstrap *db.BootstrapStatus
}

// NewHealthController creates a new HealthController
func NewHealthController(pool *pgxpool.Pool, bootstrap *db.BootstrapStatus) *HealthController {
	return &HealthController{
		pool:      pool,
		bootstrap: bootstrap,
	}
}

// Health performs a live round trip to the store. Bootstrap failure alone does
// not fail the check; an unreachable store does.
func (c *HealthController) Health(ctx *gin.Context) {
	var one int
	err := c.pool.QueryRow(ctx.Request.Context(), `SELECT 1`).Scan(&one)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, dto.HealthResponse{
			Status:      "error",
			Database:    "disconnected",
			Initialized: c.bootstrap.Initialized,
			Error:       err.Error(),
		})
		return
	}

	ctx.JSON(http.StatusOK, dto.HealthResponse{
		Status:      "ok",
		Database:    "connected",
		Initialized: c.bootstrap.Initialized,
	})
}

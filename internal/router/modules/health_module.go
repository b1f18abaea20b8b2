package modules

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taskdeck/taskdeck/config"
)

// HealthModule exposes a public liveness endpoint that also reports
// database connectivity.
type HealthModule struct {
	Cfg  *config.Config
	Pool *pgxpool.Pool
}

func NewHealthModule(cfg *config.Config, pool *pgxpool.Pool) *HealthModule {
	return &HealthModule{Cfg: cfg, Pool: pool}
}

func (m *HealthModule) Register(rg *gin.RouterGroup) {
	rg.GET("/health", m.health)
}

func (m *HealthModule) health(c *gin.Context) {
	dbStatus := "connected"
	if m.Pool != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := m.Pool.Ping(ctx); err != nil {
			dbStatus = "unreachable"
		}
	}
	c.JSON(http.StatusOK, gin.H{
		"status": "healthy",
		"app":    m.Cfg.AppName,
		"env":    m.Cfg.Env,
		"services": gin.H{
			"api":      "up",
			"database": dbStatus,
		},
	})
}

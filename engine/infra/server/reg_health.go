package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/labelforge/labelforge/engine/infra/server/router"
	"github.com/labelforge/labelforge/engine/infra/server/routes"
	"github.com/labelforge/labelforge/pkg/version"
)

const (
	healthProbeKey     = "_health/probe"
	healthProbeTimeout = 2 * time.Second
)

// CreateHealthHandler reports build information and whether the store
// answers.
func CreateHealthHandler(server *Server) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), healthProbeTimeout)
		defer cancel()
		storeReady := true
		if _, err := server.store.Exists(ctx, healthProbeKey); err != nil {
			storeReady = false
		}
		status := "healthy"
		code := http.StatusOK
		if !storeReady {
			status = "not_ready"
			code = http.StatusServiceUnavailable
		}
		c.JSON(code, gin.H{
			"data": gin.H{
				"status":  status,
				"version": version.Get(),
				"storage": gin.H{"driver": server.config.Storage.Driver, "ready": storeReady},
			},
			"message": "Success",
		})
	}
}

func registerHealth(r *gin.Engine, server *Server) {
	handler := CreateHealthHandler(server)
	r.GET(routes.Health(), handler)
	r.GET(routes.HealthVersioned(), handler)
	if server.monitoring != nil && server.monitoring.Path() != "" {
		r.GET(server.monitoring.Path(), gin.WrapH(server.monitoring.ExporterHandler()))
	}
	r.NoRoute(func(c *gin.Context) {
		router.RespondProblemWithCode(c, http.StatusNotFound, router.ErrNotFoundCode, "route not found")
	})
}

package server

import (
	"github.com/gin-gonic/gin"
	"github.com/labelforge/labelforge/engine/infra/server/middleware/ratelimit"
	"github.com/labelforge/labelforge/engine/infra/server/middleware/size"
	"github.com/labelforge/labelforge/engine/infra/server/routes"
	projectrouter "github.com/labelforge/labelforge/engine/project/router"
)

// RegisterRoutes mounts health, metrics and every domain router on r.
func RegisterRoutes(r *gin.Engine, server *Server) {
	registerHealth(r, server)
	throttle := ratelimit.Middleware(server.config.Server.RateLimit)
	limit := size.BodySizeLimiter(server.config.Server.MaxUploadBytes)
	r.POST(routes.PostProject(), throttle, limit, projectrouter.CreateProject)
	api := r.Group(routes.Base())
	api.Use(throttle, limit)
	projectrouter.Register(api)
}

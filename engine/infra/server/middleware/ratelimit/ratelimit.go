package ratelimit

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/labelforge/labelforge/engine/infra/server/router"
	"github.com/labelforge/labelforge/pkg/config"
	"github.com/ulule/limiter/v3"
	mgin "github.com/ulule/limiter/v3/drivers/middleware/gin"
	"github.com/ulule/limiter/v3/drivers/store/memory"
)

const storePrefix = "labelforge:ratelimit"

// Middleware limits requests per client IP using an in-process store.
// It passes every request through when cfg.Limit is zero.
func Middleware(cfg config.RateLimitConfig) gin.HandlerFunc {
	if cfg.Limit <= 0 || cfg.Period <= 0 {
		return func(c *gin.Context) { c.Next() }
	}
	store := memory.NewStoreWithOptions(limiter.StoreOptions{
		Prefix:          storePrefix,
		CleanUpInterval: limiter.DefaultCleanUpInterval,
	})
	instance := limiter.New(store, limiter.Rate{Period: cfg.Period, Limit: cfg.Limit})
	return mgin.NewMiddleware(
		instance,
		mgin.WithLimitReachedHandler(func(c *gin.Context) {
			router.RespondProblemWithCode(c, http.StatusTooManyRequests, router.ErrTooManyRequestsCode,
				"rate limit exceeded")
		}),
		mgin.WithErrorHandler(func(c *gin.Context, err error) {
			router.RespondWithServerError(c, router.ErrInternalCode, "rate limiter failure", err)
		}),
	)
}

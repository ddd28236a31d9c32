package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"kilo-share/internal/handler/httperr"
	"kilo-share/internal/pkg/config"
	"kilo-share/internal/pkg/errs"

	"github.com/gin-gonic/gin"
)

var errRateLimited = errs.New("rate limit exceeded")

type Limiter interface {
	Allow(ctx context.Context, key string, limit int64, window time.Duration) (bool, int64, error)
}

// RateLimit counts requests per client IP. A limiter failure lets the request
// through.
func RateLimit(l Limiter, cfg config.RedisConfig) gin.HandlerFunc {
	if !cfg.RateLimitEnabled || l == nil {
		return func(c *gin.Context) { c.Next() }
	}
	limit := cfg.RateLimitCount
	return func(c *gin.Context) {
		allowed, n, err := l.Allow(c.Request.Context(), c.ClientIP(), limit, cfg.RateLimitWindow)
		if err != nil {
			slog.WarnContext(c.Request.Context(), "rate limiter unavailable", "error", err.Error())
			c.Next()
			return
		}

		c.Header("X-RateLimit-Limit", strconv.FormatInt(limit, 10))
		c.Header("X-RateLimit-Remaining", strconv.FormatInt(max(0, limit-n), 10))
		if !allowed {
			c.Header("Retry-After", strconv.Itoa(int(cfg.RateLimitWindow.Seconds())))
			httperr.AbortWithError(c, http.StatusTooManyRequests, errRateLimited, "Too many requests", nil)
			return
		}
		c.Next()
	}
}

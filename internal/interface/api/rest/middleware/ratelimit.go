package middleware

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"file-drop-api/internal/application/ports"
	"file-drop-api/pkg/rate"
)

// RateLimit guards one endpoint with its declared rates, keyed by client IP.
// A limiter backend failure admits the request: the limiter protects the
// service, it must not become its single point of failure.
func RateLimit(
	limiter ports.RateLimiter,
	endpoint string,
	rates []rate.Rate,
	logger *zap.Logger,
	mCounter *prometheus.CounterVec,
) gin.HandlerFunc {
	return func(c *gin.Context) {
		allowed, exceeded, err := limiter.Allow(c.Request.Context(), c.ClientIP(), endpoint, rates)
		if err != nil {
			logger.Warn("rate limiter unavailable, admitting request",
				zap.String("endpoint", endpoint),
				zap.Error(err),
			)
			c.Next()
			return
		}

		if !allowed {
			if mCounter != nil {
				mCounter.WithLabelValues("rate_limited_total").Inc()
			}
			c.Header("Retry-After", fmt.Sprintf("%d", int(exceeded.Window.Seconds())))
			c.AbortWithStatusJSON(
				http.StatusTooManyRequests,
				gin.H{"error": fmt.Sprintf("rate limit exceeded: %d per %s", exceeded.Limit, exceeded.Window)},
			)
			return
		}

		c.Next()
	}
}

package middleware

import (
	"fmt"
	"strconv"
	"time"

	redisStore "ameen-storefront/internal/adapter/storage/redis"
	"ameen-storefront/pkg/apperror"
	"ameen-storefront/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// RateLimitRule defines a rate limit for an endpoint group.
type RateLimitRule struct {
	Limit  int64
	Window time.Duration
}

// DefaultRateLimitRules returns the per-group rate limits. The storefront is
// single-tenant, so limits are keyed by client IP.
func DefaultRateLimitRules() map[string]RateLimitRule {
	return map[string]RateLimitRule{
		"products":      {Limit: 60, Window: time.Minute},
		"purchases":     {Limit: 30, Window: time.Minute},
		"downloads":     {Limit: 60, Window: time.Minute},
		"wallet":        {Limit: 60, Window: time.Minute},
		"withdrawals":   {Limit: 10, Window: time.Minute},
		"reports":       {Limit: 30, Window: time.Minute},
		"notifications": {Limit: 60, Window: time.Minute},
		"assistant":     {Limit: 20, Window: time.Minute},
	}
}

// RateLimiter creates a rate-limiting middleware for a given endpoint group.
func RateLimiter(store *redisStore.RateLimitStore, group string, rule RateLimitRule, log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := fmt.Sprintf("%s:%s", c.ClientIP(), group)

		result, err := store.Allow(c.Request.Context(), key, rule.Limit, rule.Window)
		if err != nil {
			log.Warn().Err(err).Str("group", group).Msg("rate limit check failed, allowing request (degraded mode)")
			c.Next()
			return
		}

		// Always set rate limit headers
		c.Header("X-RateLimit-Limit", strconv.FormatInt(result.Limit, 10))
		c.Header("X-RateLimit-Remaining", strconv.FormatInt(result.Remaining, 10))
		c.Header("X-RateLimit-Reset", strconv.FormatInt(result.ResetAt, 10))

		if !result.Allowed {
			retryAfter := result.ResetAt - time.Now().Unix()
			if retryAfter < 1 {
				retryAfter = 1
			}
			c.Header("Retry-After", strconv.FormatInt(retryAfter, 10))
			response.Error(c, apperror.ErrRateLimitExceeded())
			c.Abort()
			return
		}

		c.Next()
	}
}

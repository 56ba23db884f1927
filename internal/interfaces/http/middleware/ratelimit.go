package middleware

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/deskhub/deskhub/internal/shared/constants"
	"github.com/deskhub/deskhub/internal/shared/logger"
	"github.com/deskhub/deskhub/internal/shared/utils"
)

type Limiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}

// RateLimiter keys hits by the authenticated actor, or by client IP for
// tokens without an actor.
type RateLimiter struct {
	limiter Limiter
	logger  logger.Interface
}

func NewRateLimiter(limiter Limiter, logger logger.Interface) *RateLimiter {
	return &RateLimiter{limiter: limiter, logger: logger}
}

func (rl *RateLimiter) Limit() gin.HandlerFunc {
	return func(c *gin.Context) {
		key := "ip:" + c.ClientIP()
		if id := c.GetUint(constants.ContextKeyUserID); id != 0 {
			key = fmt.Sprintf("actor:%d", id)
		}

		allowed, err := rl.limiter.Allow(c.Request.Context(), key)
		if err != nil {
			// Redis being down must not block traffic
			rl.logger.Warnw("rate limiter unavailable", "key", key, "error", err)
			c.Next()
			return
		}
		if !allowed {
			utils.ErrorResponse(c, http.StatusTooManyRequests, "rate limit exceeded, please try again later")
			c.Abort()
			return
		}
		c.Next()
	}
}

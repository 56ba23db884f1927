package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/deskhub/deskhub/internal/shared/constants"
	"github.com/deskhub/deskhub/internal/shared/logger"
)

// Logger writes one line per request. Websocket upgrades are logged when
// the connection closes, so their latency is the session length.
func Logger(log logger.Interface) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		status := c.Writer.Status()

		args := []any{
			"method", c.Request.Method,
			"route", route,
			"path", c.Request.URL.Path,
			"status", status,
			"latency_ms", time.Since(start).Milliseconds(),
			"client_ip", c.ClientIP(),
		}
		if requestID := c.GetString(constants.ContextKeyRequestID); requestID != "" {
			args = append(args, "request_id", requestID)
		}
		if caller := Caller(c); caller.ActorID != 0 {
			args = append(args, "actor_id", caller.ActorID)
		} else if caller.Admin {
			args = append(args, "admin", true)
		}
		if len(c.Errors) > 0 {
			args = append(args, "error", c.Errors.String())
		}

		switch {
		case status >= 500:
			log.Errorw("request failed", args...)
		case status >= 400:
			log.Warnw("request rejected", args...)
		default:
			log.Debugw("request served", args...)
		}
	}
}

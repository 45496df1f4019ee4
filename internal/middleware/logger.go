package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"luckyticket/internal/pkg/response"
)

const requestIDKey = "request_id"

// RequestID propagates X-Request-ID or assigns a fresh one.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := requestIDHeader(c)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(requestIDKey, id)
		c.Writer.Header().Set("X-Request-ID", id)
		c.Next()
	}
}

// RequestLogger writes one line per request.
func RequestLogger(log *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		entry := requestEntry(log, c, start)
		switch status := c.Writer.Status(); {
		case status >= http.StatusInternalServerError:
			entry.Error("request")
		case status >= http.StatusBadRequest:
			entry.Warn("request")
		default:
			entry.Info("request")
		}
	}
}

// ErrorLogger logs handler errors and recovers from panics. The stack goes to
// the log only; the client gets a generic 500.
func ErrorLogger(log *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		defer func() {
			if recovered := recover(); recovered != nil {
				requestEntry(log, c, start).
					WithField("error", fmt.Sprintf("%v", recovered)).
					WithField("stack", string(debug.Stack())).
					Error("panic recovered")
				response.AbortWithError(c, http.StatusInternalServerError, response.CodeInternal, "server error")
				return
			}

			for _, err := range c.Errors {
				entry := requestEntry(log, c, start).
					WithField("error_type", fmt.Sprintf("%v", err.Type)).
					WithError(err.Err)
				if err.Meta != nil {
					entry = entry.WithField("meta", err.Meta)
				}
				entry.Error("request error")
			}
		}()

		c.Next()
	}
}

func requestEntry(log *logrus.Logger, c *gin.Context, start time.Time) *logrus.Entry {
	return log.WithFields(logrus.Fields{
		"status":     c.Writer.Status(),
		"method":     c.Request.Method,
		"path":       c.Request.URL.Path,
		"query":      c.Request.URL.RawQuery,
		"client_ip":  c.ClientIP(),
		"request_id": requestID(c),
		"latency":    time.Since(start).String(),
	})
}

func requestID(c *gin.Context) string {
	if id := c.GetString(requestIDKey); id != "" {
		return id
	}
	return requestIDHeader(c)
}

func requestIDHeader(c *gin.Context) string {
	return c.GetHeader("X-Request-ID")
}

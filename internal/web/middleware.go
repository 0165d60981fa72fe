package web

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type requestIDKey struct{}

// RequestIDMiddleware reuses X-Request-Id when sent, otherwise assigns a
// new one, echoes it back and logs one line per request.
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		rid := c.GetHeader("X-Request-Id")
		if strings.TrimSpace(rid) == "" {
			rid = uuid.NewString()
		}

		c.Set("request_id", rid)
		ctx := context.WithValue(c.Request.Context(), requestIDKey{}, rid)
		c.Request = c.Request.WithContext(ctx)
		c.Writer.Header().Set("X-Request-Id", rid)

		start := time.Now()
		c.Next()

		log.Printf(
			"[req] id=%s method=%s path=%s status=%d latency=%s",
			rid,
			c.Request.Method,
			c.Request.URL.Path,
			c.Writer.Status(),
			time.Since(start),
		)
	}
}

// GetRequestID extracts the request ID from a standard context.
func GetRequestID(ctx context.Context) string {
	if rid, ok := ctx.Value(requestIDKey{}).(string); ok {
		return rid
	}
	return ""
}

// visitRecorder is the write side of the visitor store.
type visitRecorder interface {
	Record(ctx context.Context, ip, userAgent, path string) error
}

const recordTimeout = 5 * time.Second

var untrackedPrefixes = []string{"/static/", "/admin", "/favicon", "/privacy", "/health"}

func tracked(path string) bool {
	for _, prefix := range untrackedPrefixes {
		if strings.HasPrefix(path, prefix) {
			return false
		}
	}
	return true
}

// VisitorTrackingMiddleware records page views in the background. Static
// assets, admin and health pages are skipped, and so is anyone sending
// DNT: 1.
func VisitorTrackingMiddleware(rec visitRecorder) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		if !tracked(path) || c.GetHeader("DNT") == "1" {
			c.Next()
			return
		}

		ip, ua := c.ClientIP(), c.GetHeader("User-Agent")
		rid := GetRequestID(c.Request.Context())
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), recordTimeout)
			defer cancel()
			if err := rec.Record(ctx, ip, ua, path); err != nil {
				log.Printf("Error recording visitor (req=%s): %v", rid, err)
			}
		}()
		c.Next()
	}
}

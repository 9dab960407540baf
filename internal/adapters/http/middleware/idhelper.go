package middleware

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// maxIDLength bounds inbound ids so clients cannot bloat every log line.
const maxIDLength = 128

// idMiddlewareConfig describes one propagated id header.
type idMiddlewareConfig struct {
	headerName string
	contextKey string

	// contextEnrichers run in order on the request context.
	contextEnrichers []func(ctx context.Context, id string) context.Context
}

// createIDMiddleware reuses an inbound id when it is acceptable and mints a
// UUID otherwise. The id is echoed on the response and stored in both the
// gin and the request context.
func createIDMiddleware(cfg idMiddlewareConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(cfg.headerName)
		if !acceptableID(id) {
			id = uuid.NewString()
		}

		c.Set(cfg.contextKey, id)
		c.Header(cfg.headerName, id)

		ctx := c.Request.Context()
		for _, enrich := range cfg.contextEnrichers {
			ctx = enrich(ctx, id)
		}

		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// acceptableID admits short ids made of printable ASCII, which keeps
// forged newlines and escape sequences out of text logs.
func acceptableID(id string) bool {
	if id == "" || len(id) > maxIDLength {
		return false
	}

	for i := range len(id) {
		if id[i] < 0x21 || id[i] > 0x7e {
			return false
		}
	}

	return true
}

func getIDFromContext(c *gin.Context, key string) string {
	if id, ok := c.Get(key); ok {
		if s, ok := id.(string); ok {
			return s
		}
	}

	return ""
}

package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RootHandler lists the API collections, like a browsable API root.
type RootHandler struct {
	prefix string
}

// NewRootHandler creates a root handler for collections mounted under prefix.
func NewRootHandler(prefix string) *RootHandler {
	return &RootHandler{prefix: prefix}
}

// Index handles GET /api/.
func (h *RootHandler) Index(c *gin.Context) {
	base := requestScheme(c) + "://" + c.Request.Host + h.prefix

	c.JSON(http.StatusOK, gin.H{
		"authors": base + "/authors/",
		"quotes":  base + "/quotes/",
	})
}

// requestScheme honours X-Forwarded-Proto from a fronting proxy.
func requestScheme(c *gin.Context) string {
	if proto := c.GetHeader("X-Forwarded-Proto"); proto == "http" || proto == "https" {
		return proto
	}

	if c.Request.TLS != nil {
		return "https"
	}

	return "http"
}

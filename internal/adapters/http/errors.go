package http

import (
	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/quote-lab/internal/adapters/http/dto"
)

// noRoute answers unknown paths with the error envelope instead of gin's
// plain-text 404.
func noRoute(c *gin.Context) {
	dto.AbortWithCode(c, dto.ErrorCodeNotFound, "not found")
}

// noMethod answers a known path called with an unsupported method.
func noMethod(c *gin.Context) {
	dto.AbortWithCode(c, dto.ErrorCodeMethodNotAllowed, "method \""+c.Request.Method+"\" not allowed")
}

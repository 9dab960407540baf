package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/quote-lab/internal/adapters/http/dto"
	"github.com/jsamuelsen/quote-lab/internal/auth"
	"github.com/jsamuelsen/quote-lab/internal/domain"
	"github.com/jsamuelsen/quote-lab/internal/platform/logging"
)

// SessionConfig describes the session cookie.
type SessionConfig struct {
	CookieName string
	Secure     bool
}

// AuthHandler serves the login gate.
type AuthHandler struct {
	superuser *auth.Superuser
	tokens    *auth.TokenManager
	session   SessionConfig
}

// NewAuthHandler creates a new auth handler. A nil superuser disables
// password login; Bearer and gateway authentication still work.
func NewAuthHandler(superuser *auth.Superuser, tokens *auth.TokenManager, session SessionConfig) *AuthHandler {
	return &AuthHandler{
		superuser: superuser,
		tokens:    tokens,
		session:   session,
	}
}

// Login handles POST /api/auth/login. On success it sets the session cookie
// and also returns the token for Bearer clients.
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := dto.BindAndValidate(c, &req); err != nil {
		dto.HandleError(c, err)
		return
	}

	ctx := c.Request.Context()
	logger := logging.FromContext(ctx)

	if h.superuser == nil {
		dto.HandleError(c, domain.NewForbiddenError("login", "password login is disabled"))
		return
	}

	if err := h.superuser.Authenticate(req.Username, req.Password); err != nil {
		logger.WarnContext(ctx, "login rejected", slog.String("username", req.Username))
		dto.HandleError(c, domain.NewForbiddenError("login", "invalid username or password"))

		return
	}

	token, err := h.tokens.Generate(req.Username)
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	ttl := h.tokens.TTL()

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.session.CookieName, token, int(ttl.Seconds()), "/", "", h.session.Secure, true)

	logger.InfoContext(ctx, "login succeeded", slog.String("username", req.Username))

	c.JSON(http.StatusOK, dto.LoginResponse{
		Token:     token,
		ExpiresIn: int64(ttl.Seconds()),
	})
}

// Logout handles POST /api/auth/logout by expiring the session cookie.
// Tokens already issued stay valid until they expire.
func (h *AuthHandler) Logout(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.session.CookieName, "", -1, "/", "", h.session.Secure, true)
	c.Status(http.StatusNoContent)
}

// RegisterAuthRoutes registers the login gate on rg. These routes are
// reachable without credentials.
func (h *AuthHandler) RegisterAuthRoutes(rg *gin.RouterGroup) {
	a := rg.Group("/auth")
	a.POST("/login", h.Login)
	a.POST("/logout", h.Logout)
}

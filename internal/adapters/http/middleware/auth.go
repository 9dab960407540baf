package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/quote-lab/internal/adapters/http/dto"
	"github.com/jsamuelsen/quote-lab/internal/auth"
	"github.com/jsamuelsen/quote-lab/internal/domain"
	"github.com/jsamuelsen/quote-lab/internal/platform/config"
	"github.com/jsamuelsen/quote-lab/internal/platform/logging"
)

const (
	// ContextKeyClaims is the gin context key for storing extracted claims.
	ContextKeyClaims = "claims"

	defaultSubjectHeader = "X-User-ID"
	bearerPrefix         = "Bearer "
)

// Credential sources, in the order they are tried.
const (
	SourceSession = "session"
	SourceBearer  = "bearer"
	SourceGateway = "gateway"
)

// Claims identifies the authenticated caller.
type Claims struct {
	// Subject is the username or gateway subject.
	Subject string

	// Source is how the caller authenticated.
	Source string
}

// TokenValidator verifies session tokens.
type TokenValidator interface {
	Validate(token string) (*auth.Claims, error)
}

// AuthGate admits requests that carry a valid session cookie, a valid
// Bearer token, or a gateway subject header when the gateway is trusted.
type AuthGate struct {
	tokens        TokenValidator
	cookieName    string
	subjectHeader string
	trustGateway  bool
}

// NewAuthGate creates an AuthGate from the auth config.
func NewAuthGate(cfg *config.AuthConfig, tokens TokenValidator) *AuthGate {
	g := &AuthGate{
		tokens:        tokens,
		subjectHeader: defaultSubjectHeader,
	}

	if cfg != nil {
		g.cookieName = cfg.Session.CookieName
		g.trustGateway = cfg.TrustGatewayHeaders

		if cfg.SubjectHeader != "" {
			g.subjectHeader = cfg.SubjectHeader
		}
	}

	return g
}

// Authenticate resolves the caller's claims. It returns nil when no
// credential is present or none is valid.
func (g *AuthGate) Authenticate(c *gin.Context) *Claims {
	if g.tokens != nil {
		if g.cookieName != "" {
			if token, err := c.Cookie(g.cookieName); err == nil && token != "" {
				if claims, err := g.tokens.Validate(token); err == nil {
					return &Claims{Subject: claims.Username, Source: SourceSession}
				}
			}
		}

		if header := c.GetHeader("Authorization"); strings.HasPrefix(header, bearerPrefix) {
			token := strings.TrimSpace(strings.TrimPrefix(header, bearerPrefix))
			if claims, err := g.tokens.Validate(token); err == nil {
				return &Claims{Subject: claims.Username, Source: SourceBearer}
			}
		}
	}

	if g.trustGateway {
		if subject := strings.TrimSpace(c.GetHeader(g.subjectHeader)); subject != "" {
			return &Claims{Subject: subject, Source: SourceGateway}
		}
	}

	return nil
}

// RequireAuth returns middleware that rejects unauthenticated requests
// with 403 before any handler runs. Admitted requests get the subject on
// their request logger.
func (g *AuthGate) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := g.Authenticate(c)
		if claims == nil {
			dto.AbortWithError(c, domain.NewForbiddenError(c.Request.Method+" "+c.FullPath(), ""))
			return
		}

		c.Set(ContextKeyClaims, claims)
		ctx := ContextWithClaims(c.Request.Context(), claims)
		c.Request = c.Request.WithContext(logging.WithSubject(ctx, claims.Subject, claims.Source))
		c.Next()
	}
}

// GetClaims retrieves claims from the gin context, falling back to the
// request context. Returns nil if claims are not present.
func GetClaims(c *gin.Context) *Claims {
	if claims, exists := c.Get(ContextKeyClaims); exists {
		if cl, ok := claims.(*Claims); ok {
			return cl
		}
	}

	if c.Request == nil {
		return nil
	}

	return ClaimsFromContext(c.Request.Context())
}

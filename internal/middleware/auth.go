package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/jonathasfrontend/API-a-Sal-o-de-Beleza/internal/auth"
	"github.com/jonathasfrontend/API-a-Sal-o-de-Beleza/internal/httperr"
)

const (
	ContextIdentity = "identity"
)

func AuthMiddleware(tokens *auth.TokenIssuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			httperr.Unauthorized(c, "missing_authorization_header", "Authorization header is required")
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			httperr.Unauthorized(c, "invalid_authorization_header", "Expected a bearer token")
			return
		}

		identity, err := tokens.Parse(parts[1])
		if err != nil {
			httperr.Unauthorized(c, "invalid_token", "Invalid or expired token")
			return
		}

		c.Set(ContextIdentity, identity)
		c.Next()
	}
}

// RequirePermission only checks membership; the token already carries
// the caller's full capability set.
func RequirePermission(p auth.Permission) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := IdentityFrom(c)
		if !ok || !identity.Can(p) {
			httperr.Forbidden(c, "forbidden", "Missing permission "+string(p))
			return
		}
		c.Next()
	}
}

func IdentityFrom(c *gin.Context) (auth.Identity, bool) {
	v, ok := c.Get(ContextIdentity)
	if !ok {
		return auth.Identity{}, false
	}
	id, ok := v.(auth.Identity)
	return id, ok
}

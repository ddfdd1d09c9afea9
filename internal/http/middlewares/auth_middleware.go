package middlewares

import (
	"errors"
	"net/http"
	"strings"

	"recipehub/internal/auth"

	"github.com/gin-gonic/gin"
)

// Keep this small interface so tests can fake it easily.
type TokenVerifier interface {
	Verify(token string) (*auth.Claims, error)
}

type AuthMiddleware struct {
	jwt TokenVerifier
}

func NewAuthMiddleware(jwt TokenVerifier) *AuthMiddleware {
	return &AuthMiddleware{jwt: jwt}
}

const (
	ctxUserIDKey = "auth.userID"
	ctxLoginKey  = "auth.login"
)

// RequireAuth is a single-shot gate: no token -> 401, missing signing secret
// -> 500 (server misconfiguration, not the client's fault), failed
// verification -> 403. Verified identity is stashed on the gin context.
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": gin.H{
					"code":    "unauthorized",
					"message": "Missing or invalid Authorization header",
				},
			})
			return
		}

		raw := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer"))
		if raw == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": gin.H{
					"code":    "unauthorized",
					"message": "Missing or invalid access token",
				},
			})
			return
		}

		claims, err := m.jwt.Verify(raw)
		if err != nil {
			if errors.Is(err, auth.ErrMissingSecret) {
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
					"error": gin.H{
						"code":    "server_misconfigured",
						"message": "Signing secret is not configured",
					},
				})
				return
			}

			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error": gin.H{
					"code":    "forbidden",
					"message": "Invalid or expired access token",
				},
			})
			return
		}

		// Stash useful bits of identity on the context
		WithIdentity(c, claims.UserID, claims.Login)

		c.Next()
	}
}

// WithIdentity stashes a verified identity on the context the same way
// RequireAuth does. Handlers read it back through the helpers below.
func WithIdentity(c *gin.Context, userID int64, login string) {
	c.Set(ctxUserIDKey, userID)
	c.Set(ctxLoginKey, login)
}

// Optional helpers so handlers don't need to know the magic keys.

func UserIDFromContext(c *gin.Context) (int64, bool) {
	v, ok := c.Get(ctxUserIDKey)
	if !ok {
		return 0, false
	}
	id, ok := v.(int64)
	return id, ok
}

func LoginFromContext(c *gin.Context) (string, bool) {
	v, ok := c.Get(ctxLoginKey)
	if !ok {
		return "", false
	}
	login, ok := v.(string)
	return login, ok
}

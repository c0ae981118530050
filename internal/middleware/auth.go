// Package middleware provides HTTP middleware for the POS service.
package middleware

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/GunarsK-portfolio/pos-service/internal/models"
	"github.com/GunarsK-portfolio/pos-service/internal/service"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Context keys set by Authenticate.
const (
	ContextUsername = "username"
	ContextRole     = "role"
)

// Authenticate validates the bearer token in the Authorization header.
// A missing token is answered with 401, an invalid or expired one with 403.
func Authenticate(jwtService service.JWTService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := ExtractBearerToken(c.GetHeader("Authorization"))
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"message": "missing bearer token",
			})
			return
		}

		claims, err := jwtService.ValidateToken(token)
		if err != nil {
			logger.Debug("rejected token", zap.Error(err), zap.String("path", c.FullPath()))
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"message": "invalid or expired token",
			})
			return
		}

		c.Set(ContextUsername, claims.Username)
		c.Set(ContextRole, claims.Role)
		c.Next()
	}
}

// Authorize allows the request through only when the authenticated role is
// one of roles. It must run after Authenticate.
func Authorize(roles ...models.Role) gin.HandlerFunc {
	allowed := make(map[models.Role]struct{}, len(roles))
	names := make([]string, 0, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
		names = append(names, string(r))
	}
	denied := fmt.Sprintf("access denied: requires role %s", strings.Join(names, " or "))

	return func(c *gin.Context) {
		role, ok := GetRole(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": denied})
			return
		}
		if _, ok := allowed[role]; !ok {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": denied})
			return
		}
		c.Next()
	}
}

// ExtractBearerToken returns the token from an "Authorization: Bearer <token>"
// header value, or "" when the header does not have that shape.
func ExtractBearerToken(header string) string {
	parts := strings.Fields(header)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return parts[1]
}

// GetUsername returns the authenticated username.
func GetUsername(c *gin.Context) (string, bool) {
	v, ok := c.Get(ContextUsername)
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// GetRole returns the authenticated role.
func GetRole(c *gin.Context) (models.Role, bool) {
	v, ok := c.Get(ContextRole)
	if !ok {
		return "", false
	}
	r, ok := v.(models.Role)
	return r, ok
}

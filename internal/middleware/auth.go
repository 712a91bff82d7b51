package middleware

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/wingops/wingscore/internal/service"
	"github.com/wingops/wingscore/pkg/token"
)

type AuthMiddleware struct {
	codec     token.Codec
	adminAuth service.AdminAuthService
}

func NewAuthMiddleware(codec token.Codec, adminAuth service.AdminAuthService) *AuthMiddleware {
	return &AuthMiddleware{
		codec:     codec,
		adminAuth: adminAuth,
	}
}

// bearerToken pulls the credential out of the Authorization header.
func bearerToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return ""
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) == 2 && parts[0] == "Bearer" {
		return parts[1]
	}

	return ""
}

// RequireAuth authenticates a user session token. Missing, malformed, forged
// and expired tokens all produce the same 401.
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := bearerToken(c)
		if tokenString == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "authorization required"})
			c.Abort()
			return
		}

		identity, err := m.codec.Verify(tokenString)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			c.Abort()
			return
		}

		c.Set("user_id", fmt.Sprintf("%d", identity.UserID))
		c.Set("identity", identity)
		c.Next()
	}
}

// RequireAdmin authenticates an admin shared secret and records the resolved
// tier and wing for downstream handlers.
func (m *AuthMiddleware) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		secret := bearerToken(c)
		if secret == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "authorization required"})
			c.Abort()
			return
		}

		tier, wing, ok := m.adminAuth.Resolve(secret)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			c.Abort()
			return
		}

		c.Set("admin_tier", tier)
		if wing != nil {
			c.Set("admin_wing", *wing)
		}
		c.Next()
	}
}

// AdminContext reads what RequireAdmin stored.
func AdminContext(c *gin.Context) (service.Tier, *string) {
	tierVal, _ := c.Get("admin_tier")
	tier, _ := tierVal.(service.Tier)

	var wing *string
	if wingVal, exists := c.Get("admin_wing"); exists {
		if w, ok := wingVal.(string); ok {
			wing = &w
		}
	}

	return tier, wing
}

package middleware

import (
	"context"
	"net/http"
	"strings"

	fbauth "firebase.google.com/go/v4/auth"
	"github.com/gin-gonic/gin"

	"github.com/earthstream/projects-backend/internal/auth"
)

// FirebaseAuthMiddleware verifies the bearer ID token and stores the caller
// principal (the Firebase UID) in the context.
func FirebaseAuthMiddleware(authClient *fbauth.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"ok": false, "error": "missing authorization token"})
			c.Abort()
			return
		}

		decodedToken, err := authClient.VerifyIDToken(context.Background(), token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"ok": false, "error": "invalid token"})
			c.Abort()
			return
		}

		c.Set(auth.CtxPrincipal, decodedToken.UID)
		c.Next()
	}
}

// HeaderAuthMiddleware trusts the X-Principal header as the caller identity.
// Only for local development and tests, where no Firebase project exists.
func HeaderAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		principal := strings.TrimSpace(c.GetHeader("X-Principal"))
		if principal == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"ok": false, "error": "missing X-Principal header"})
			c.Abort()
			return
		}

		c.Set(auth.CtxPrincipal, principal)
		c.Next()
	}
}

// extractToken extracts the Bearer token from the Authorization header
func extractToken(c *gin.Context) string {
	bearerToken := c.GetHeader("Authorization")
	if len(bearerToken) > 7 && strings.HasPrefix(bearerToken, "Bearer ") {
		return bearerToken[7:]
	}
	return ""
}

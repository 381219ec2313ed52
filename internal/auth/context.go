package auth

import (
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	// CtxPrincipal is the gin context key holding the authenticated caller.
	CtxPrincipal = "principal"
)

// Principal extracts the caller identity from the Gin context. It is set by
// the auth middleware; empty means unauthenticated.
func Principal(c *gin.Context) string {
	return strings.TrimSpace(c.GetString(CtxPrincipal))
}

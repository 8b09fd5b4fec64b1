package auth

import (
	"net/http"
	"strings"

	"firebase.google.com/go/v4/auth"
	"github.com/gin-gonic/gin"
)

// RequireUser validates the Bearer ID token and stashes the caller's
// identity claims in the gin context. Requests without a valid token are
// rejected with 401.
func RequireUser(verifier TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"ok": false, "error": "missing authorization token"})
			c.Abort()
			return
		}

		decoded, err := verifier.VerifyIDToken(c.Request.Context(), token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"ok": false, "error": "invalid token"})
			c.Abort()
			return
		}

		setClaims(c, decoded)
		c.Next()
	}
}

// DevUser stands in for RequireUser when no Firebase credentials are
// configured. Identity comes from headers with demo fallbacks.
// Use this ONLY for development/testing.
func DevUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		uid := strings.TrimSpace(c.GetHeader("X-User-Id"))
		if uid == "" {
			uid = "demo-user"
		}
		email := strings.TrimSpace(c.GetHeader("X-User-Email"))
		if email == "" {
			email = "demo@plantkeeper.local"
		}

		c.Set(CtxUID, uid)
		c.Set(CtxEmail, email)
		c.Set(CtxName, c.GetHeader("X-User-Name"))
		c.Set(CtxPhoto, c.GetHeader("X-User-Photo"))
		c.Next()
	}
}

func setClaims(c *gin.Context, decoded *auth.Token) {
	c.Set(CtxUID, decoded.UID)

	if email, ok := decoded.Claims["email"].(string); ok {
		c.Set(CtxEmail, email)
	}
	if name, ok := decoded.Claims["name"].(string); ok {
		c.Set(CtxName, name)
	}
	if photo, ok := decoded.Claims["picture"].(string); ok {
		c.Set(CtxPhoto, photo)
	}
}

// extractToken extracts the Bearer token from the Authorization header.
func extractToken(c *gin.Context) string {
	bearerToken := c.GetHeader("Authorization")
	if len(bearerToken) > 7 && strings.HasPrefix(bearerToken, "Bearer ") {
		return bearerToken[7:]
	}
	return ""
}

package auth

import (
	"strings"

	"github.com/gin-gonic/gin"
)

// Context keys set by the auth middleware.
const (
	CtxUID   = "firebase_uid"
	CtxEmail = "user_email"
	CtxName  = "user_name"
	CtxPhoto = "user_photo"
)

// UserUID extracts the Firebase UID set by RequireUser.
func UserUID(c *gin.Context) string {
	return strings.TrimSpace(c.GetString(CtxUID))
}

// UserEmail extracts the verified email set by RequireUser.
func UserEmail(c *gin.Context) string {
	return strings.TrimSpace(c.GetString(CtxEmail))
}

// UserName extracts the display name claim, if present.
func UserName(c *gin.Context) string {
	return strings.TrimSpace(c.GetString(CtxName))
}

// UserPhoto extracts the avatar claim, if present.
func UserPhoto(c *gin.Context) string {
	return strings.TrimSpace(c.GetString(CtxPhoto))
}

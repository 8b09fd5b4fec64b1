package http

import (
	"net/http"
	"strings"

	fbauth "firebase.google.com/go/v4/auth"
	"github.com/gin-gonic/gin"

	"github.com/plantkeeper/plantkeeper-backend/internal/auth"
	"github.com/plantkeeper/plantkeeper-backend/internal/session"
	"github.com/plantkeeper/plantkeeper-backend/internal/users"
)

// createSession verifies the ID token the SPA obtained from the identity
// provider and publishes the signed-in identity to the session gate. The
// profile row is upserted as a side effect.
func (h *Handler) createSession(c *gin.Context) {
	var req createSessionReq
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Token) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	if h.verifier == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"ok": false, "error": "identity provider not configured"})
		return
	}

	decoded, err := h.verifier.VerifyIDToken(c.Request.Context(), req.Token)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"ok": false, "error": "invalid token"})
		return
	}

	identity := identityFromToken(decoded)

	if _, err := h.users.EnsureUser(c.Request.Context(), users.UpsertUser{
		FirebaseUID: identity.UID,
		Email:       identity.Email,
		DisplayName: identity.DisplayName,
		PhotoURL:    identity.PhotoURL,
	}); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "ensure user: " + err.Error()})
		return
	}

	h.bus.Publish(identity)

	c.JSON(http.StatusOK, gin.H{"ok": true, "session": h.gate.Current()})
}

// deleteSession publishes a signed-out state.
func (h *Handler) deleteSession(c *gin.Context) {
	h.bus.Publish(nil)
	c.JSON(http.StatusOK, gin.H{"ok": true, "session": h.gate.Current()})
}

// getSession returns the gate snapshot synchronously.
func (h *Handler) getSession(c *gin.Context) {
	c.JSON(http.StatusOK, h.gate.Current())
}

// guardCheck exposes the requireSession policy for a navigation target.
func (h *Handler) guardCheck(c *gin.Context) {
	target := c.Query("target")
	if target == "" {
		target = "/"
	}
	c.JSON(http.StatusOK, h.gate.Require(target))
}

// me returns the caller's stored profile.
func (h *Handler) me(c *gin.Context) {
	uid := auth.UserUID(c)
	p, err := h.users.GetByUID(c.Request.Context(), uid)
	if err != nil {
		if err == users.ErrNotFound {
			c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "profile not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "profile": p})
}

// updateProfile changes the display name and avatar, both upstream and in
// the local profile row, then publishes the refreshed identity so open
// sessions observe the change.
func (h *Handler) updateProfile(c *gin.Context) {
	var req updateProfileReq
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.DisplayName) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	uid := auth.UserUID(c)

	if h.updater != nil {
		upd := (&fbauth.UserToUpdate{}).DisplayName(req.DisplayName)
		if req.PhotoURL != "" {
			upd = upd.PhotoURL(req.PhotoURL)
		}
		if _, err := h.updater.UpdateUser(c.Request.Context(), uid, upd); err != nil {
			c.JSON(http.StatusBadGateway, gin.H{"ok": false, "error": "provider update failed: " + err.Error()})
			return
		}
	}

	if err := h.users.UpdateProfile(c.Request.Context(), uid, req.DisplayName, req.PhotoURL); err != nil && err != users.ErrNotFound {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}

	if current, ok := h.bus.Current(); ok && current != nil && current.UID == uid {
		refreshed := *current
		refreshed.DisplayName = req.DisplayName
		if req.PhotoURL != "" {
			refreshed.PhotoURL = req.PhotoURL
		}
		h.bus.Publish(&refreshed)
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func identityFromToken(decoded *fbauth.Token) *session.Identity {
	id := &session.Identity{UID: decoded.UID}
	if email, ok := decoded.Claims["email"].(string); ok {
		id.Email = email
	}
	if name, ok := decoded.Claims["name"].(string); ok {
		id.DisplayName = name
	}
	if photo, ok := decoded.Claims["picture"].(string); ok {
		id.PhotoURL = photo
	}
	return id
}

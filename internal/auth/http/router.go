package http

import "github.com/gin-gonic/gin"

// Register attaches session and profile routes. The session endpoints are
// public; the profile endpoints sit behind the guard chain (session gate +
// token auth).
func (h *Handler) Register(r gin.IRouter, guards ...gin.HandlerFunc) {
	r.POST("/session", h.createSession)
	r.DELETE("/session", h.deleteSession)
	r.GET("/session", h.getSession)
	r.GET("/session/guard", h.guardCheck)

	me := r.Group("/me")
	me.Use(guards...)
	me.GET("", h.me)
	me.PUT("/profile", h.updateProfile)
}

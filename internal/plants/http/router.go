package http

import "github.com/gin-gonic/gin"

// Register attaches the plant routes. Reads are public, matching the
// original application's unauthenticated catalog; mutating routes and the
// owner-scoped views sit behind the guard chain (session gate + token auth).
func (h *Handler) Register(r gin.IRouter, guards ...gin.HandlerFunc) {
	r.GET("/plants", h.list)
	r.GET("/plants/view", h.view)
	r.GET("/plants/:id", h.get)

	r.POST("/plants", chain(guards, h.create)...)
	r.PUT("/plants/:id", chain(guards, h.update)...)
	r.DELETE("/plants/:id", chain(guards, h.remove)...)

	my := r.Group("/my-plants")
	my.Use(guards...)
	my.GET("", h.myList)
	my.GET("/view", h.myView)
}

func chain(guards []gin.HandlerFunc, final gin.HandlerFunc) []gin.HandlerFunc {
	out := make([]gin.HandlerFunc, 0, len(guards)+1)
	out = append(out, guards...)
	return append(out, final)
}

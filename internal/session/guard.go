package session

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Guard is the gin adapter for Require: it maps the three guard outcomes
// onto HTTP. Pending asks the client to retry shortly, a denied check
// returns the login redirect payload with the original target, and an
// authenticated session falls through to the protected handler.
func Guard(g *Gate) gin.HandlerFunc {
	return func(c *gin.Context) {
		out := g.Require(c.Request.URL.Path)

		switch out.Decision {
		case DecisionPending:
			c.Header("Retry-After", "1")
			c.JSON(http.StatusServiceUnavailable, out)
			c.Abort()
		case DecisionRedirect:
			c.JSON(http.StatusUnauthorized, out)
			c.Abort()
		default:
			c.Next()
		}
	}
}

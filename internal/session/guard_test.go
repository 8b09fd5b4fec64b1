package session

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func guardedRouter(g *Gate) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	protected := r.Group("/my-plants")
	protected.Use(Guard(g))
	protected.GET("", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	return r
}

func TestGuard_PendingReturns503(t *testing.T) {
	g := NewGate(NewBroadcaster(), "/login")
	require.NoError(t, g.Start())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/my-plants", nil)
	guardedRouter(g).ServeHTTP(w, req)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Equal(t, "1", w.Header().Get("Retry-After"))
}

func TestGuard_UnauthenticatedRedirectsToLoginWithTarget(t *testing.T) {
	bus := NewBroadcaster()
	g := NewGate(bus, "/login")
	require.NoError(t, g.Start())
	bus.Publish(nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/my-plants", nil)
	guardedRouter(g).ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)

	var out Outcome
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	assert.Equal(t, DecisionRedirect, out.Decision)
	assert.Equal(t, "/login", out.RedirectTo)
	assert.Equal(t, "/my-plants", out.From)
}

func TestGuard_AuthenticatedPassesThrough(t *testing.T) {
	bus := NewBroadcaster()
	g := NewGate(bus, "/login")
	require.NoError(t, g.Start())
	bus.Publish(&Identity{UID: "u1"})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/my-plants", nil)
	guardedRouter(g).ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

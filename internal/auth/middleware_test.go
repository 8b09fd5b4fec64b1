package auth

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	fbauth "firebase.google.com/go/v4/auth"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeVerifier struct {
	token *fbauth.Token
	err   error
}

func (f *fakeVerifier) VerifyIDToken(context.Context, string) (*fbauth.Token, error) {
	return f.token, f.err
}

func claimsRouter(mw gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/whoami", mw, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"uid":   UserUID(c),
			"email": UserEmail(c),
			"name":  UserName(c),
		})
	})
	return r
}

func TestRequireUser_MissingToken(t *testing.T) {
	r := claimsRouter(RequireUser(&fakeVerifier{}))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/whoami", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireUser_InvalidToken(t *testing.T) {
	r := claimsRouter(RequireUser(&fakeVerifier{err: errors.New("expired")}))

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer bad-token")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireUser_SetsClaims(t *testing.T) {
	r := claimsRouter(RequireUser(&fakeVerifier{token: &fbauth.Token{
		UID: "uid-1",
		Claims: map[string]interface{}{
			"email": "a@x.com",
			"name":  "Ada",
		},
	}}))

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer good-token")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"uid":"uid-1","email":"a@x.com","name":"Ada"}`, w.Body.String())
}

func TestRequireUser_RejectsMalformedAuthorizationHeader(t *testing.T) {
	r := claimsRouter(RequireUser(&fakeVerifier{token: &fbauth.Token{UID: "uid-1"}}))

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestDevUser_HeaderAndFallbacks(t *testing.T) {
	r := claimsRouter(DevUser())

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("X-User-Id", "uid-9")
	req.Header.Set("X-User-Email", "dev@x.com")
	req.Header.Set("X-User-Name", "Dev")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"uid":"uid-9","email":"dev@x.com","name":"Dev"}`, w.Body.String())

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/whoami", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"uid":"demo-user","email":"demo@plantkeeper.local","name":""}`, w.Body.String())
}

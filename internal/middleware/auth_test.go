package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"skillpath_backend/internal/session"
	"skillpath_backend/internal/util"
)

type stubAuth map[string]*util.Claims

func (s stubAuth) Authenticate(_ context.Context, token string) (*util.Claims, error) {
	if token == "revoked" {
		return nil, util.ErrTokenRevoked
	}
	if c, ok := s[token]; ok {
		return c, nil
	}
	return nil, errors.New("bad token")
}

func newRouter(mw gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/", mw, func(c *gin.Context) {
		c.JSON(http.StatusOK, session.FromContext(c))
	})
	return r
}

func serve(r http.Handler, auth string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

var auth = stubAuth{"good": {UserID: 5, Name: "Jane Doe", Email: "jane@example.com"}}

func TestAuthMiddleware(t *testing.T) {
	r := newRouter(AuthMiddleware(auth))

	tests := []struct {
		name   string
		header string
		code   int
		body   string
	}{
		{"missing", "", http.StatusUnauthorized, "Not authenticated"},
		{"wrong scheme", "Basic good", http.StatusUnauthorized, "Not authenticated"},
		{"invalid", "Bearer nope", http.StatusUnauthorized, "Invalid or expired token"},
		{"revoked", "Bearer revoked", http.StatusUnauthorized, "Token has been revoked"},
		{"valid", "Bearer good", http.StatusOK, `"loggedIn":true`},
		{"lower case scheme", "bearer good", http.StatusOK, `"userId":5`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := serve(r, tt.header)
			assert.Equal(t, tt.code, w.Code)
			assert.Contains(t, w.Body.String(), tt.body)
		})
	}
}

func TestSessionMiddleware(t *testing.T) {
	r := newRouter(SessionMiddleware(auth))

	w := serve(r, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"loggedIn":false}`, w.Body.String())

	w = serve(r, "Bearer nope")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"loggedIn":false}`, w.Body.String())

	w = serve(r, "Bearer good")
	assert.JSONEq(t, `{"userId":5,"name":"Jane Doe","email":"jane@example.com","loggedIn":true}`, w.Body.String())
}

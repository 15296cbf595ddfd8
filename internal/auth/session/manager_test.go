package session

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/smallbiznis/orderhub/internal/config"
	"github.com/stretchr/testify/assert"
)

func newContext(configure func(*http.Request)) *gin.Context {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	req := httptest.NewRequest(http.MethodGet, "/api/orders", nil)
	configure(req)
	c.Request = req
	return c
}

func TestReadTokenPrefersBearer(t *testing.T) {
	m := NewManager(config.Config{})
	c := newContext(func(r *http.Request) {
		r.Header.Set("Authorization", "bearer header-token")
		r.AddCookie(&http.Cookie{Name: DefaultCookieName, Value: "cookie-token"})
	})

	token, ok := m.ReadToken(c)
	assert.True(t, ok)
	assert.Equal(t, "header-token", token)
}

func TestReadTokenFallsBackToCookie(t *testing.T) {
	m := NewManager(config.Config{AuthSessionCookie: "sess"})
	c := newContext(func(r *http.Request) {
		r.Header.Set("Authorization", "Basic abc")
		r.AddCookie(&http.Cookie{Name: "sess", Value: "cookie-token"})
	})

	token, ok := m.ReadToken(c)
	assert.True(t, ok)
	assert.Equal(t, "cookie-token", token)
}

func TestReadTokenMissing(t *testing.T) {
	m := NewManager(config.Config{})
	c := newContext(func(r *http.Request) {
		r.Header.Set("Authorization", "Bearer ")
	})

	_, ok := m.ReadToken(c)
	assert.False(t, ok)
}

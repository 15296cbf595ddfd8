package session

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/smallbiznis/orderhub/internal/config"
)

const DefaultCookieName = "_sid"

// Manager reads the caller's token from the Authorization header or the session cookie.
type Manager struct {
	cookieName string
}

func NewManager(cfg config.Config) *Manager {
	name := strings.TrimSpace(cfg.AuthSessionCookie)
	if name == "" {
		name = DefaultCookieName
	}
	return &Manager{cookieName: name}
}

func (m *Manager) CookieName() string {
	return m.cookieName
}

// ReadToken prefers a Bearer token over the cookie.
func (m *Manager) ReadToken(c *gin.Context) (string, bool) {
	if header := strings.TrimSpace(c.GetHeader("Authorization")); header != "" {
		scheme, value, ok := strings.Cut(header, " ")
		if ok && strings.EqualFold(scheme, "Bearer") && strings.TrimSpace(value) != "" {
			return strings.TrimSpace(value), true
		}
	}

	token, err := c.Cookie(m.cookieName)
	if err != nil {
		return "", false
	}
	if strings.TrimSpace(token) == "" {
		return "", false
	}
	return token, true
}

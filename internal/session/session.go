// Package session holds the authenticated user's state: the access key the
// backend resolved, the role it resolved to, and the user's identity. The
// session is created at login, read on every request, and destroyed at
// logout or on any backend 401/403. The web app carries it in a signed
// cookie, the CLI in a file under the user config dir.
package session

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// CookieName is the cookie carrying the signed web session.
const CookieName = "aztek_session"

// Session is the explicit session object passed into views and into the API
// client's request construction.
type Session struct {
	AccessKey string `json:"accessKey"`
	Role      Role   `json:"role"`
	UserID    string `json:"userId"`
	UserName  string `json:"userName"`

	// ServerURL is persisted by the CLI session file only; the web app
	// gets its backend URL from configuration.
	ServerURL string `json:"serverUrl,omitempty"`
}

type claims struct {
	AccessKey string `json:"accessKey"`
	Role      string `json:"role"`
	UserName  string `json:"userName"`
	jwt.RegisteredClaims
}

// Manager signs and validates web session tokens.
type Manager struct {
	secret []byte
	ttl    time.Duration
}

func NewManager(secret string, ttl time.Duration) *Manager {
	return &Manager{secret: []byte(secret), ttl: ttl}
}

// TTL returns the configured session lifetime.
func (m *Manager) TTL() time.Duration {
	return m.ttl
}

// Issue signs s into a token for the session cookie.
func (m *Manager) Issue(s *Session) (string, error) {
	now := time.Now()
	c := claims{
		AccessKey: s.AccessKey,
		Role:      string(s.Role),
		UserName:  s.UserName,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   s.UserID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, c)
	return token.SignedString(m.secret)
}

// Validate parses a session token back into a Session. Any tampering,
// expiry, or unknown role invalidates the whole session.
func (m *Manager) Validate(tokenString string) (*Session, error) {
	token, err := jwt.ParseWithClaims(tokenString, &claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method")
		}
		return m.secret, nil
	})
	if err != nil {
		return nil, err
	}

	c, ok := token.Claims.(*claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid session token")
	}

	role := ParseRole(c.Role)
	if !role.Valid() {
		return nil, fmt.Errorf("unknown role %q in session token", c.Role)
	}

	return &Session{
		AccessKey: c.AccessKey,
		Role:      role,
		UserID:    c.Subject,
		UserName:  c.UserName,
	}, nil
}

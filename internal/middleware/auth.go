package middleware

import (
	"time"

	"github.com/Arfushs/AztekAuditSystemFrontend/internal/session"
	"github.com/Arfushs/AztekAuditSystemFrontend/pkg/logger"
	"github.com/gofiber/fiber/v2"
)

const sessionKey = "currentSession"

// Guard verifies on every protected view that the session matches the
// view's required role.
type Guard struct {
	Sessions *session.Manager
}

func NewGuard(sessions *session.Manager) *Guard {
	return &Guard{Sessions: sessions}
}

// RequireRole admits only sessions with exactly the given role. Missing or
// invalid sessions are torn down and sent to the login view; a valid
// session with a different role is sent to its own home instead.
func (g *Guard) RequireRole(role session.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		s, ok := g.resolve(c)
		if !ok {
			return c.Redirect("/login", fiber.StatusFound)
		}

		switch s.Role {
		case session.RoleAdmin, session.RoleInspector, session.RoleReporter:
			if s.Role != role {
				logger.Warn(c, "role_mismatch", map[string]interface{}{
					"path":     c.Path(),
					"required": string(role),
					"actual":   string(s.Role),
				})
				return c.Redirect(s.Role.Home(), fiber.StatusFound)
			}
		default:
			ClearSessionCookie(c)
			return c.Redirect("/login", fiber.StatusFound)
		}

		c.Locals(sessionKey, s)
		c.Locals("userID", s.UserID)
		return c.Next()
	}
}

// RequireAuth admits any valid session, whatever its role. Used for the
// shared download route.
func (g *Guard) RequireAuth(c *fiber.Ctx) error {
	s, ok := g.resolve(c)
	if !ok {
		return c.Redirect("/login", fiber.StatusFound)
	}
	c.Locals(sessionKey, s)
	c.Locals("userID", s.UserID)
	return c.Next()
}

// RedirectIfAuthenticated sends an already logged-in user from the login
// view to their role's home.
func (g *Guard) RedirectIfAuthenticated(c *fiber.Ctx) error {
	if s, ok := g.resolve(c); ok {
		return c.Redirect(s.Role.Home(), fiber.StatusFound)
	}
	return c.Next()
}

func (g *Guard) resolve(c *fiber.Ctx) (*session.Session, bool) {
	token := c.Cookies(session.CookieName)
	if token == "" {
		return nil, false
	}
	s, err := g.Sessions.Validate(token)
	if err != nil {
		logger.Warn(c, "session_invalid", map[string]interface{}{
			"path":  c.Path(),
			"error": err.Error(),
		})
		ClearSessionCookie(c)
		return nil, false
	}
	return s, true
}

// CurrentSession returns the session a guard stored on the request.
func CurrentSession(c *fiber.Ctx) *session.Session {
	if s, ok := c.Locals(sessionKey).(*session.Session); ok {
		return s
	}
	return nil
}

// SetSessionCookie attaches a signed session token to the response.
func SetSessionCookie(c *fiber.Ctx, token string, ttl time.Duration) {
	c.Cookie(&fiber.Cookie{
		Name:     session.CookieName,
		Value:    token,
		Expires:  time.Now().Add(ttl),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
		Path:     "/",
	})
}

// ClearSessionCookie destroys the web session.
func ClearSessionCookie(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     session.CookieName,
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
		Path:     "/",
	})
}

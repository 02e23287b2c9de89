package handlers

import (
	"strings"

	"github.com/Arfushs/AztekAuditSystemFrontend/internal/api"
	"github.com/Arfushs/AztekAuditSystemFrontend/internal/middleware"
	"github.com/Arfushs/AztekAuditSystemFrontend/internal/session"
	"github.com/Arfushs/AztekAuditSystemFrontend/pkg/logger"
	"github.com/gofiber/fiber/v2"
)

type AuthHandler struct {
	*Base
}

func NewAuthHandler(base *Base) *AuthHandler {
	return &AuthHandler{Base: base}
}

func (h *AuthHandler) ShowLogin(c *fiber.Ctx) error {
	return render(c, "login", fiber.Map{})
}

// Login exchanges an access key for a backend identity and issues the
// signed session cookie. A rejected key reveals nothing about which keys
// exist.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	accessKey := strings.TrimSpace(c.FormValue("accessKey"))
	if accessKey == "" {
		return redirectError(c, "/login", "Access key is required")
	}

	client := api.NewClient(h.BackendURL, "")
	resp, err := client.Login(accessKey)
	if err != nil {
		if api.IsAuthError(err) {
			logger.Warn(c, "login_rejected", map[string]interface{}{
				"ip": c.IP(),
			})
			return redirectError(c, "/login", "Invalid access key")
		}
		logger.Error(c, "login_backend_failed", err, nil)
		return redirectError(c, "/login", "Could not reach the backend, try again")
	}

	role := session.ParseRole(resp.Role)
	if !role.Valid() {
		logger.Error(c, "login_unknown_role", nil, map[string]interface{}{
			"role": resp.Role,
		})
		return redirectError(c, "/login", "Invalid access key")
	}

	s := &session.Session{
		AccessKey: accessKey,
		Role:      role,
		UserID:    resp.User.ID,
		UserName:  resp.User.Name,
	}
	token, err := h.Sessions.Issue(s)
	if err != nil {
		logger.Error(c, "session_issue_failed", err, nil)
		return redirectError(c, "/login", "Could not start a session, try again")
	}

	middleware.SetSessionCookie(c, token, h.Sessions.TTL())
	logger.InfoWithUser(c, s.UserID, "login_success", map[string]interface{}{
		"role": string(role),
	})
	return c.Redirect(role.Home(), fiber.StatusFound)
}

func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	if s := middleware.CurrentSession(c); s != nil {
		logger.InfoWithUser(c, s.UserID, "logout", nil)
	}
	middleware.ClearSessionCookie(c)
	return c.Redirect("/login", fiber.StatusFound)
}

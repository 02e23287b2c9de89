package middleware

import (
	"time"

	"github.com/Arfushs/AztekAuditSystemFrontend/pkg/logger"
	"github.com/gofiber/fiber/v2"
)

func RequestLogger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		requestID := logger.GenerateRequestID()
		c.Locals("requestID", requestID)

		err := c.Next()

		details := map[string]interface{}{
			"method":      c.Method(),
			"path":        c.Path(),
			"status_code": c.Response().StatusCode(),
			"latency_ms":  time.Since(start).Milliseconds(),
			"ip":          c.IP(),
			"request_id":  requestID,
		}

		userID := logger.GetUserIDFromContext(c)
		switch {
		case c.Response().StatusCode() >= 400 && userID != nil:
			logger.ErrorWithUser(c, *userID, "http_request", err, details)
		case c.Response().StatusCode() >= 400:
			logger.Error(c, "http_request", err, details)
		case userID != nil:
			logger.InfoWithUser(c, *userID, "http_request", details)
		default:
			logger.Info(c, "http_request", details)
		}

		return err
	}
}

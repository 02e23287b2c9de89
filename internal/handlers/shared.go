package handlers

import (
	"fmt"

	"github.com/Arfushs/AztekAuditSystemFrontend/internal/api"
	"github.com/Arfushs/AztekAuditSystemFrontend/internal/middleware"
	"github.com/Arfushs/AztekAuditSystemFrontend/pkg/logger"
	"github.com/gofiber/fiber/v2"
)

type SharedHandler struct {
	*Base
}

func NewSharedHandler(base *Base) *SharedHandler {
	return &SharedHandler{Base: base}
}

// Download streams a report's raw or final archive from the backend to
// the browser without buffering it.
func (h *SharedHandler) Download(c *fiber.Ctx) error {
	s := middleware.CurrentSession(c)
	id := c.Params("id")

	subfolder, err := api.ParseSubfolder(c.Query("subfolder"))
	if err != nil {
		return redirectError(c, s.Role.Home(), "Unknown download type")
	}

	client := h.Client(s)

	name, err := client.ReportNameByID(id)
	if err != nil || name == "" {
		if api.IsAuthError(err) {
			return failBackend(c, s.Role.Home(), err)
		}
		name = id
	}

	body, err := client.DownloadReportArchive(id, subfolder)
	if err != nil {
		return failBackend(c, s.Role.Home(), err)
	}

	logger.InfoWithUser(c, s.UserID, "archive_download", map[string]interface{}{
		"report_id": id,
		"subfolder": string(subfolder),
	})

	filename := fmt.Sprintf("%s_report_%s_files.zip", name, subfolder)
	c.Set(fiber.HeaderContentType, "application/zip")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	return c.SendStream(body)
}

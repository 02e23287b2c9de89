package handlers

import (
	"fmt"

	"github.com/Arfushs/AztekAuditSystemFrontend/internal/api"
	"github.com/Arfushs/AztekAuditSystemFrontend/internal/bulkops"
	"github.com/Arfushs/AztekAuditSystemFrontend/internal/listview"
	"github.com/Arfushs/AztekAuditSystemFrontend/internal/middleware"
	"github.com/Arfushs/AztekAuditSystemFrontend/pkg/logger"
	"github.com/gofiber/fiber/v2"
)

type ReporterHandler struct {
	*Base
	Bulk *bulkops.Orchestrator
}

func NewReporterHandler(base *Base, bulk *bulkops.Orchestrator) *ReporterHandler {
	return &ReporterHandler{Base: base, Bulk: bulk}
}

func (h *ReporterHandler) Reports(c *fiber.Ctx) error {
	s := middleware.CurrentSession(c)
	reports, err := h.Client(s).AssignedReports(s.UserID)
	if err != nil {
		return failBackend(c, "/reporter", err)
	}

	q := queryFromRequest(c)
	page := listview.Reports(reports, q)

	return render(c, "reporter_reports", fiber.Map{
		"Title":      "Assigned reports",
		"Query":      queryView(q),
		"Page":       page,
		"Pagination": paginationFor("/reporter", q, page),
	})
}

func (h *ReporterHandler) ReportDetail(c *fiber.Ctx) error {
	id := c.Params("id")
	s := middleware.CurrentSession(c)
	client := h.Client(s)

	reports, err := client.AssignedReports(s.UserID)
	if err != nil {
		return failBackend(c, "/reporter", err)
	}
	report, ok := findReport(reports, id)
	if !ok {
		return redirectError(c, "/reporter", "Report not found")
	}

	names, err := h.Bulk.Listing(client, bulkops.SpaceFinal, id)
	if err != nil {
		return failBackend(c, "/reporter", err)
	}

	q := queryFromRequest(c)
	page := listview.Files(names, q)
	base := "/reporter/reports/" + id

	return render(c, "report_detail", fiber.Map{
		"Title":      report.Name,
		"Report":     report,
		"Space":      "final",
		"BaseURL":    base,
		"BackURL":    "/reporter",
		"Page":       page,
		"Pagination": paginationFor(base, q, page),
	})
}

func (h *ReporterHandler) Upload(c *fiber.Ctx) error {
	s := middleware.CurrentSession(c)
	id := c.Params("id")
	back := "/reporter/reports/" + id

	files, closeAll, err := multipartUploads(c)
	if err != nil {
		return redirectError(c, back, err.Error())
	}
	defer closeAll()

	_, err = h.Bulk.Upload(h.Client(s), bulkops.SpaceFinal, id, files)
	if err != nil {
		switch err {
		case bulkops.ErrNoFiles:
			return redirectError(c, back, "Pick at least one file")
		case bulkops.ErrBatchInFlight:
			return redirectError(c, back, "Another upload or delete is still running for this report")
		}
		return failBackend(c, back, err)
	}

	logger.InfoWithUser(c, s.UserID, "final_files_uploaded", map[string]interface{}{
		"report_id": id,
		"count":     len(files),
	})
	return redirectFlash(c, back, fmt.Sprintf("Uploaded %d file(s)", len(files)))
}

func (h *ReporterHandler) DeleteFiles(c *fiber.Ctx) error {
	s := middleware.CurrentSession(c)
	id := c.Params("id")
	back := "/reporter/reports/" + id

	names := formValues(c, "files")
	result, _, err := h.Bulk.Delete(h.Client(s), bulkops.SpaceFinal, id, names)
	if err != nil {
		switch err {
		case bulkops.ErrNoFiles:
			return redirectError(c, back, "Select at least one file")
		case bulkops.ErrBatchInFlight:
			return redirectError(c, back, "Another upload or delete is still running for this report")
		}
		return failBackend(c, back, err)
	}

	logger.InfoWithUser(c, s.UserID, "final_files_deleted", map[string]interface{}{
		"report_id": id,
		"requested": len(names),
		"failed":    len(result.Failed),
	})
	if !result.AllSucceeded() {
		for _, f := range result.Failed {
			if api.IsAuthError(f.Err) {
				return failBackend(c, back, f.Err)
			}
		}
		return redirectError(c, back, result.Summary())
	}
	return redirectFlash(c, back, result.Summary())
}

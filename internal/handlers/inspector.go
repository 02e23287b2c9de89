package handlers

import (
	"fmt"
	"strings"

	"github.com/Arfushs/AztekAuditSystemFrontend/internal/api"
	"github.com/Arfushs/AztekAuditSystemFrontend/internal/bulkops"
	"github.com/Arfushs/AztekAuditSystemFrontend/internal/listview"
	"github.com/Arfushs/AztekAuditSystemFrontend/internal/middleware"
	"github.com/Arfushs/AztekAuditSystemFrontend/pkg/logger"
	"github.com/gofiber/fiber/v2"
)

type InspectorHandler struct {
	*Base
	Bulk *bulkops.Orchestrator
}

func NewInspectorHandler(base *Base, bulk *bulkops.Orchestrator) *InspectorHandler {
	return &InspectorHandler{Base: base, Bulk: bulk}
}

func (h *InspectorHandler) Reports(c *fiber.Ctx) error {
	s := middleware.CurrentSession(c)
	reports, err := h.Client(s).MyReports(s.UserID)
	if err != nil {
		return failBackend(c, "/inspector", err)
	}

	q := queryFromRequest(c)
	page := listview.Reports(reports, q)

	return render(c, "inspector_reports", fiber.Map{
		"Title":      "My reports",
		"Query":      queryView(q),
		"Page":       page,
		"Pagination": paginationFor("/inspector", q, page),
	})
}

func (h *InspectorHandler) CreateReport(c *fiber.Ctx) error {
	s := middleware.CurrentSession(c)
	name := strings.TrimSpace(c.FormValue("name"))
	if name == "" {
		return redirectError(c, "/inspector", "Report name is required")
	}

	if err := h.Client(s).CreateReport(name, s.UserID); err != nil {
		return failBackend(c, "/inspector", err)
	}

	logger.InfoWithUser(c, s.UserID, "report_created", map[string]interface{}{
		"name": name,
	})
	return redirectFlash(c, "/inspector", "Report "+name+" created")
}

func (h *InspectorHandler) ReportDetail(c *fiber.Ctx) error {
	id := c.Params("id")
	s := middleware.CurrentSession(c)
	client := h.Client(s)

	reports, err := client.MyReports(s.UserID)
	if err != nil {
		return failBackend(c, "/inspector", err)
	}
	report, ok := findReport(reports, id)
	if !ok {
		return redirectError(c, "/inspector", "Report not found")
	}

	names, err := h.Bulk.Listing(client, bulkops.SpaceRaw, id)
	if err != nil {
		return failBackend(c, "/inspector", err)
	}

	q := queryFromRequest(c)
	page := listview.Files(names, q)
	base := "/inspector/reports/" + id

	return render(c, "report_detail", fiber.Map{
		"Title":      report.Name,
		"Report":     report,
		"Space":      "raw",
		"BaseURL":    base,
		"BackURL":    "/inspector",
		"Page":       page,
		"Pagination": paginationFor(base, q, page),
	})
}

func (h *InspectorHandler) Upload(c *fiber.Ctx) error {
	s := middleware.CurrentSession(c)
	id := c.Params("id")
	back := "/inspector/reports/" + id

	files, closeAll, err := multipartUploads(c)
	if err != nil {
		return redirectError(c, back, err.Error())
	}
	defer closeAll()

	_, err = h.Bulk.Upload(h.Client(s), bulkops.SpaceRaw, id, files)
	if err != nil {
		switch err {
		case bulkops.ErrNoFiles:
			return redirectError(c, back, "Pick at least one file")
		case bulkops.ErrBatchInFlight:
			return redirectError(c, back, "Another upload or delete is still running for this report")
		}
		return failBackend(c, back, err)
	}

	logger.InfoWithUser(c, s.UserID, "raw_files_uploaded", map[string]interface{}{
		"report_id": id,
		"count":     len(files),
	})
	return redirectFlash(c, back, fmt.Sprintf("Uploaded %d file(s)", len(files)))
}

func (h *InspectorHandler) DeleteFiles(c *fiber.Ctx) error {
	s := middleware.CurrentSession(c)
	id := c.Params("id")
	back := "/inspector/reports/" + id

	names := formValues(c, "files")
	result, _, err := h.Bulk.Delete(h.Client(s), bulkops.SpaceRaw, id, names)
	if err != nil {
		switch err {
		case bulkops.ErrNoFiles:
			return redirectError(c, back, "Select at least one file")
		case bulkops.ErrBatchInFlight:
			return redirectError(c, back, "Another upload or delete is still running for this report")
		}
		return failBackend(c, back, err)
	}

	logger.InfoWithUser(c, s.UserID, "raw_files_deleted", map[string]interface{}{
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

func findReport(reports []api.Report, id string) (api.Report, bool) {
	for _, r := range reports {
		if r.ID == id {
			return r, true
		}
	}
	return api.Report{}, false
}

// multipartUploads pulls the posted files out of the request and wraps
// them for streaming. The returned closer must run after the upload.
func multipartUploads(c *fiber.Ctx) ([]api.UploadFile, func(), error) {
	form, err := c.MultipartForm()
	if err != nil {
		return nil, nil, fmt.Errorf("pick at least one file")
	}
	headers := form.File["files"]
	if len(headers) == 0 {
		return nil, nil, fmt.Errorf("pick at least one file")
	}

	files := make([]api.UploadFile, 0, len(headers))
	var closers []func() error
	closeAll := func() {
		for _, fn := range closers {
			fn()
		}
	}
	for _, header := range headers {
		f, err := header.Open()
		if err != nil {
			closeAll()
			return nil, nil, fmt.Errorf("could not read %s", header.Filename)
		}
		closers = append(closers, f.Close)
		files = append(files, api.UploadFile{Name: header.Filename, Content: f})
	}
	return files, closeAll, nil
}

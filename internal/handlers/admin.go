package handlers

import (
	"strings"

	"github.com/Arfushs/AztekAuditSystemFrontend/internal/api"
	"github.com/Arfushs/AztekAuditSystemFrontend/internal/assign"
	"github.com/Arfushs/AztekAuditSystemFrontend/internal/listview"
	"github.com/Arfushs/AztekAuditSystemFrontend/internal/middleware"
	"github.com/Arfushs/AztekAuditSystemFrontend/internal/session"
	"github.com/Arfushs/AztekAuditSystemFrontend/pkg/logger"
	"github.com/gofiber/fiber/v2"
)

type AdminHandler struct {
	*Base
}

func NewAdminHandler(base *Base) *AdminHandler {
	return &AdminHandler{Base: base}
}

type adminStats struct {
	Total      int
	Draft      int
	Pending    int
	Assigned   int
	Finalized  int
	Unassigned int
	Inspectors int
	Reporters  int
}

func (h *AdminHandler) Dashboard(c *fiber.Ctx) error {
	s := middleware.CurrentSession(c)
	client := h.Client(s)

	reports, err := client.GetAllReports()
	if err != nil {
		return failBackend(c, "/admin", err)
	}
	users, err := client.GetAllUsers()
	if err != nil {
		return failBackend(c, "/admin", err)
	}

	stats := adminStats{Total: len(reports)}
	for _, r := range reports {
		switch r.Status {
		case api.StatusDraft:
			stats.Draft++
		case api.StatusPending:
			stats.Pending++
		case api.StatusAssigned:
			stats.Assigned++
		case api.StatusFinalized:
			stats.Finalized++
		}
		if r.Unassigned() {
			stats.Unassigned++
		}
	}
	for _, u := range users {
		switch session.ParseRole(u.Role) {
		case session.RoleInspector:
			stats.Inspectors++
		case session.RoleReporter:
			stats.Reporters++
		}
	}

	return render(c, "admin_dashboard", fiber.Map{
		"Title": "Dashboard",
		"Stats": stats,
	})
}

func (h *AdminHandler) Users(c *fiber.Ctx) error {
	s := middleware.CurrentSession(c)
	users, err := h.Client(s).GetAllUsers()
	if err != nil {
		return failBackend(c, "/admin", err)
	}

	var inspectors, reporters []api.User
	for _, u := range users {
		switch session.ParseRole(u.Role) {
		case session.RoleInspector:
			inspectors = append(inspectors, u)
		case session.RoleReporter:
			reporters = append(reporters, u)
		}
	}

	return render(c, "admin_users", fiber.Map{
		"Title":      "Users",
		"Inspectors": inspectors,
		"Reporters":  reporters,
	})
}

func (h *AdminHandler) CreateUser(c *fiber.Ctx) error {
	s := middleware.CurrentSession(c)
	name := strings.TrimSpace(c.FormValue("name"))
	role := session.ParseRole(c.FormValue("role"))

	if name == "" {
		return redirectError(c, "/admin/users", "Name is required")
	}

	client := h.Client(s)
	var err error
	switch role {
	case session.RoleInspector:
		err = client.CreateInspector(name)
	case session.RoleReporter:
		err = client.CreateReporter(name)
	default:
		return redirectError(c, "/admin/users", "Unknown role")
	}
	if err != nil {
		return failBackend(c, "/admin/users", err)
	}

	logger.InfoWithUser(c, s.UserID, "user_created", map[string]interface{}{
		"name": name,
		"role": string(role),
	})
	return redirectFlash(c, "/admin/users", "Created "+role.Label()+" "+name)
}

func (h *AdminHandler) DeleteUser(c *fiber.Ctx) error {
	s := middleware.CurrentSession(c)
	id := c.Params("id")
	role := session.ParseRole(c.FormValue("role"))

	client := h.Client(s)
	var err error
	switch role {
	case session.RoleInspector:
		err = client.DeleteInspector(id)
	case session.RoleReporter:
		err = client.DeleteReporter(id)
	default:
		return redirectError(c, "/admin/users", "Unknown role")
	}
	if err != nil {
		return failBackend(c, "/admin/users", err)
	}

	logger.InfoWithUser(c, s.UserID, "user_deleted", map[string]interface{}{
		"deleted_id": id,
		"role":       string(role),
	})
	return redirectFlash(c, "/admin/users", "User deleted")
}

type reportRow struct {
	Report        api.Report
	InspectorName string
	ReporterName  string
}

func (h *AdminHandler) Reports(c *fiber.Ctx) error {
	s := middleware.CurrentSession(c)
	client := h.Client(s)

	reports, err := client.GetAllReports()
	if err != nil {
		return failBackend(c, "/admin", err)
	}
	users, err := client.GetAllUsers()
	if err != nil {
		return failBackend(c, "/admin", err)
	}

	names := make(map[string]string, len(users))
	for _, u := range users {
		names[u.ID] = u.Name
	}

	q := queryFromRequest(c)
	page := listview.Reports(reports, q)

	rows := make([]reportRow, 0, len(page.Items))
	for _, r := range page.Items {
		row := reportRow{Report: r}
		if name, ok := names[r.InspectorID]; ok {
			row.InspectorName = name
		} else {
			row.InspectorName = "Unknown"
		}
		if r.Unassigned() {
			row.ReporterName = "Unassigned"
		} else if name, ok := names[r.ReporterID]; ok {
			row.ReporterName = name
		} else {
			row.ReporterName = "Unknown"
		}
		rows = append(rows, row)
	}

	return render(c, "admin_reports", fiber.Map{
		"Title":      "All reports",
		"Query":      queryView(q),
		"Page":       page,
		"TotalAll":   len(reports),
		"Rows":       rows,
		"Pagination": paginationFor("/admin/reports", q, page),
	})
}

func (h *AdminHandler) AssignBoard(c *fiber.Ctx) error {
	s := middleware.CurrentSession(c)
	board, err := assign.New(h.Client(s)).Load()
	if err != nil {
		return failBackend(c, "/admin", err)
	}

	search := c.Query("search")
	return render(c, "admin_assign", fiber.Map{
		"Title":      "Assign reports",
		"Unassigned": assign.FilterUnassigned(board.Unassigned, search),
		"Reporters":  board.Reporters,
		"Search":     search,
		"Expanded":   c.Query("expanded"),
	})
}

func (h *AdminHandler) Assign(c *fiber.Ctx) error {
	s := middleware.CurrentSession(c)
	reporterID := strings.TrimSpace(c.FormValue("reporterId"))
	reportIDs := formValues(c, "reportIds")

	outcome, err := assign.New(h.Client(s)).Assign(reporterID, reportIDs)
	if err != nil {
		switch err {
		case assign.ErrNoSelection:
			return redirectError(c, "/admin/assign", "Select at least one report")
		case assign.ErrNoReporter:
			return redirectError(c, "/admin/assign", "Select a reporter")
		}
		return failBackend(c, "/admin/assign", err)
	}

	logger.InfoWithUser(c, s.UserID, "reports_assigned", map[string]interface{}{
		"reporter_id": reporterID,
		"requested":   len(reportIDs),
		"failed":      len(outcome.Failed),
	})
	if !outcome.AllSucceeded() {
		for _, f := range outcome.Failed {
			if api.IsAuthError(f.Err) {
				return failBackend(c, "/admin/assign", f.Err)
			}
		}
		return redirectError(c, "/admin/assign", outcome.Summary("assigned"))
	}
	return redirectFlash(c, "/admin/assign", outcome.Summary("assigned"))
}

func (h *AdminHandler) Unassign(c *fiber.Ctx) error {
	s := middleware.CurrentSession(c)
	reportIDs := formValues(c, "reportIds")

	outcome, err := assign.New(h.Client(s)).Unassign(reportIDs)
	if err != nil {
		if err == assign.ErrNoSelection {
			return redirectError(c, "/admin/assign", "Select at least one report")
		}
		return failBackend(c, "/admin/assign", err)
	}

	logger.InfoWithUser(c, s.UserID, "reports_unassigned", map[string]interface{}{
		"requested": len(reportIDs),
		"failed":    len(outcome.Failed),
	})
	if !outcome.AllSucceeded() {
		for _, f := range outcome.Failed {
			if api.IsAuthError(f.Err) {
				return failBackend(c, "/admin/assign", f.Err)
			}
		}
		return redirectError(c, "/admin/assign", outcome.Summary("unassigned"))
	}
	return redirectFlash(c, "/admin/assign", outcome.Summary("unassigned"))
}

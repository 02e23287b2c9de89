// Package web holds the embedded HTML views for the server-rendered
// front-end.
package web

import (
	"embed"
	"html/template"
	"io/fs"
	"net/http"
	"time"

	"github.com/Arfushs/AztekAuditSystemFrontend/internal/api"
	"github.com/Arfushs/AztekAuditSystemFrontend/internal/session"
	"github.com/gofiber/template/html/v2"
)

//go:embed templates
var files embed.FS

// Engine builds the fiber template engine over the embedded views.
func Engine() *html.Engine {
	content, err := fs.Sub(files, "templates")
	if err != nil {
		panic(err)
	}

	engine := html.NewFileSystem(http.FS(content), ".html")
	engine.AddFuncMap(template.FuncMap{
		"formatDate":  formatDate,
		"statusText":  statusText,
		"statusClass": statusClass,
		"roleLabel":   roleLabel,
	})
	return engine
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return "—"
	}
	return t.Format("02 Jan 2006 15:04")
}

func statusText(s api.Status) string {
	switch s {
	case api.StatusDraft:
		return "Draft"
	case api.StatusPending:
		return "Pending"
	case api.StatusAssigned:
		return "Assigned"
	case api.StatusFinalized:
		return "Finalized"
	default:
		return "Unknown"
	}
}

func statusClass(s api.Status) string {
	switch s {
	case api.StatusDraft:
		return "status-draft"
	case api.StatusPending:
		return "status-pending"
	case api.StatusAssigned:
		return "status-assigned"
	case api.StatusFinalized:
		return "status-finalized"
	default:
		return "status-unknown"
	}
}

func roleLabel(r session.Role) string {
	return r.Label()
}

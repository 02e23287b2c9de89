package handlers

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/Arfushs/AztekAuditSystemFrontend/internal/api"
	"github.com/Arfushs/AztekAuditSystemFrontend/internal/listview"
	"github.com/Arfushs/AztekAuditSystemFrontend/internal/middleware"
	"github.com/Arfushs/AztekAuditSystemFrontend/internal/selection"
	"github.com/Arfushs/AztekAuditSystemFrontend/internal/session"
	"github.com/Arfushs/AztekAuditSystemFrontend/pkg/logger"
	"github.com/gofiber/fiber/v2"
)

// Base carries the dependencies every page handler shares. Each request
// gets its own API client bound to the session's access key.
type Base struct {
	BackendURL string
	Sessions   *session.Manager
}

func (b *Base) Client(s *session.Session) *api.Client {
	return api.NewClient(b.BackendURL, s.AccessKey)
}

// viewQuery is the filter state echoed back into list templates. Plain
// strings so templates can compare option values with eq.
type viewQuery struct {
	Search string
	Status string
	Sort   string
}

// pageLink is one numbered entry in the pagination window.
type pageLink struct {
	Number  int
	URL     string
	Current bool
}

type pagination struct {
	PrevURL string
	NextURL string
	Window  []pageLink
}

// queryFromRequest reads the list controls off the request. Unknown
// values fall back to defaults rather than erroring.
func queryFromRequest(c *fiber.Ctx) listview.Query {
	page, _ := strconv.Atoi(c.Query("page", "1"))
	return listview.Query{
		Search: c.Query("search"),
		Status: listview.ParseStatusFilter(c.Query("status")),
		Sort:   listview.ParseSortOption(c.Query("sort")),
		Page:   page,
	}
}

func queryView(q listview.Query) viewQuery {
	return viewQuery{
		Search: q.Search,
		Status: string(q.Status),
		Sort:   string(q.Sort),
	}
}

// listURL rebuilds the current list URL with a different page number so
// filters survive pagination clicks.
func listURL(path string, q listview.Query, page int) string {
	v := url.Values{}
	if q.Search != "" {
		v.Set("search", q.Search)
	}
	if q.Status != listview.StatusAll {
		v.Set("status", string(q.Status))
	}
	if q.Sort != listview.SortNewest {
		v.Set("sort", string(q.Sort))
	}
	if page > 1 {
		v.Set("page", strconv.Itoa(page))
	}
	if enc := v.Encode(); enc != "" {
		return path + "?" + enc
	}
	return path
}

func paginationFor[T any](path string, q listview.Query, page listview.Page[T]) pagination {
	p := pagination{}
	if page.HasPrev() {
		p.PrevURL = listURL(path, q, page.Page-1)
	}
	if page.HasNext() {
		p.NextURL = listURL(path, q, page.Page+1)
	}
	for _, n := range listview.PageWindow(page.Page, page.TotalPages) {
		p.Window = append(p.Window, pageLink{
			Number:  n,
			URL:     listURL(path, q, n),
			Current: n == page.Page,
		})
	}
	return p
}

// render merges the session and any flash messages into the view model
// and renders the page inside the main layout.
func render(c *fiber.Ctx, name string, data fiber.Map) error {
	if data == nil {
		data = fiber.Map{}
	}
	if s := middleware.CurrentSession(c); s != nil {
		data["Session"] = s
	}
	if flash := c.Query("flash"); flash != "" {
		data["Flash"] = flash
	}
	if msg := c.Query("error"); msg != "" {
		data["Error"] = msg
	}
	return c.Render(name, data, "layouts/main")
}

// redirectFlash sends the browser to path with a one-shot notice in the
// query string.
func redirectFlash(c *fiber.Ctx, path, flash string) error {
	return c.Redirect(path+"?flash="+url.QueryEscape(flash), fiber.StatusFound)
}

func redirectError(c *fiber.Ctx, path, msg string) error {
	return c.Redirect(path+"?error="+url.QueryEscape(msg), fiber.StatusFound)
}

// failBackend handles an API error on a page request. Auth failures tear
// the web session down; anything else surfaces on the current page.
func failBackend(c *fiber.Ctx, backTo string, err error) error {
	if api.IsAuthError(err) {
		logger.Warn(c, "backend_session_rejected", map[string]interface{}{
			"path":  c.Path(),
			"error": err.Error(),
		})
		middleware.ClearSessionCookie(c)
		return c.Redirect("/login", fiber.StatusFound)
	}
	details := map[string]interface{}{"path": c.Path()}
	if userID := logger.GetUserIDFromContext(c); userID != nil {
		logger.ErrorWithUser(c, *userID, "backend_request_failed", err, details)
	} else {
		logger.Error(c, "backend_request_failed", err, details)
	}
	return redirectError(c, backTo, "Backend request failed: "+err.Error())
}

// formValues returns every posted value for a key, deduplicated through a
// selection set. fiber's FormValue only yields the first value, which
// loses multi-checkbox selections.
func formValues(c *fiber.Ctx, key string) []string {
	var vals []string
	if form, err := c.MultipartForm(); err == nil && form != nil {
		vals = form.Value[key]
	} else {
		c.Request().PostArgs().VisitAll(func(k, v []byte) {
			if string(k) == key {
				vals = append(vals, string(v))
			}
		})
	}

	picked := selection.New()
	for _, v := range vals {
		if trimmed := strings.TrimSpace(v); trimmed != "" && !picked.Has(trimmed) {
			picked.Toggle(trimmed)
		}
	}
	return picked.Names()
}

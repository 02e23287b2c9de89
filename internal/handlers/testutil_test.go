package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/Arfushs/AztekAuditSystemFrontend/internal/api"
	"github.com/Arfushs/AztekAuditSystemFrontend/internal/bulkops"
	"github.com/Arfushs/AztekAuditSystemFrontend/internal/middleware"
	"github.com/Arfushs/AztekAuditSystemFrontend/internal/session"
	"github.com/Arfushs/AztekAuditSystemFrontend/pkg/logger"
	"github.com/Arfushs/AztekAuditSystemFrontend/web"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

var loggerOnce sync.Once

// fakeBackend is an in-memory stand-in for the remote REST backend.
type fakeBackend struct {
	mu         sync.Mutex
	keys       map[string]api.User // access key -> identity
	reports    []api.Report
	rawFiles   map[string][]string
	finalFiles map[string][]string
}

func newFakeBackend() *fakeBackend {
	now := time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)
	return &fakeBackend{
		keys: map[string]api.User{
			"AK-adm": {ID: "adm", Name: "Root", Role: "admin"},
			"AK-ins": {ID: "ins", Name: "Jane", Role: "inspector"},
			"AK-rep": {ID: "rep", Name: "Sam", Role: "reporter"},
		},
		reports: []api.Report{
			{ID: "r1", Name: "Audit North", Status: api.StatusPending, CreatedAt: now, InspectorID: "ins"},
			{ID: "r2", Name: "Audit South", Status: api.StatusAssigned, CreatedAt: now.Add(time.Hour), InspectorID: "ins", ReporterID: "rep", RawReportPath: "/raw/r2"},
		},
		rawFiles: map[string][]string{
			"r1": {"scan.pdf", "notes.txt"},
			"r2": {"walkthrough.pdf"},
		},
		finalFiles: map[string][]string{
			"r2": {"final.pdf"},
		},
	}
}

func (b *fakeBackend) authorize(r *http.Request) (api.User, bool) {
	u, ok := b.keys[r.Header.Get(api.AccessKeyHeader)]
	return u, ok
}

func (b *fakeBackend) handler(t *testing.T) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		defer b.mu.Unlock()

		if r.URL.Path == "/api/login" {
			var body map[string]string
			_ = json.NewDecoder(r.Body).Decode(&body)
			u, ok := b.keys[body["accessKey"]]
			if !ok {
				w.WriteHeader(http.StatusUnauthorized)
				_ = json.NewEncoder(w).Encode(map[string]string{"error": "invalid access key"})
				return
			}
			_ = json.NewEncoder(w).Encode(api.LoginResponse{Success: true, Role: u.Role, User: u})
			return
		}

		user, ok := b.authorize(r)
		if !ok {
			w.WriteHeader(http.StatusUnauthorized)
			_ = json.NewEncoder(w).Encode(map[string]string{"error": "unauthorized"})
			return
		}

		switch {
		case r.URL.Path == "/api/admins/get-all-users":
			users := make([]api.User, 0, len(b.keys))
			for _, u := range b.keys {
				users = append(users, u)
			}
			_ = json.NewEncoder(w).Encode(users)

		case r.URL.Path == "/api/admins/get-all-reports":
			_ = json.NewEncoder(w).Encode(b.reports)

		case r.URL.Path == "/api/admins/assign-report-to-reporter":
			reportID := r.URL.Query().Get("reportId")
			for i := range b.reports {
				if b.reports[i].ID == reportID {
					b.reports[i].ReporterID = r.URL.Query().Get("reporterId")
					b.reports[i].Status = api.StatusAssigned
				}
			}
			w.WriteHeader(http.StatusOK)

		case r.URL.Path == "/api/admins/unassign-report":
			reportID := r.URL.Query().Get("reportId")
			for i := range b.reports {
				if b.reports[i].ID == reportID {
					b.reports[i].ReporterID = ""
					b.reports[i].Status = api.StatusPending
				}
			}
			w.WriteHeader(http.StatusOK)

		case r.URL.Path == "/api/inspectors/my-reports":
			mine := []api.Report{}
			for _, rep := range b.reports {
				if rep.InspectorID == r.URL.Query().Get("inspectorId") {
					mine = append(mine, rep)
				}
			}
			_ = json.NewEncoder(w).Encode(mine)

		case r.URL.Path == "/api/inspectors/create-report":
			b.reports = append(b.reports, api.Report{
				ID:          "new",
				Name:        r.URL.Query().Get("reportName"),
				Status:      api.StatusDraft,
				InspectorID: r.URL.Query().Get("inspectorId"),
				CreatedAt:   time.Now(),
			})
			w.WriteHeader(http.StatusOK)

		case strings.HasPrefix(r.URL.Path, "/api/inspectors/report-files/"):
			id := strings.TrimPrefix(r.URL.Path, "/api/inspectors/report-files/")
			_ = json.NewEncoder(w).Encode(map[string][]string{"rawFiles": b.rawFiles[id]})

		case r.URL.Path == "/api/inspectors/upload-raw-files":
			if err := r.ParseMultipartForm(1 << 20); err != nil {
				t.Errorf("parsing multipart form: %v", err)
			}
			id := r.URL.Query().Get("reportId")
			for _, fh := range r.MultipartForm.File["files"] {
				b.rawFiles[id] = append(b.rawFiles[id], fh.Filename)
			}
			w.WriteHeader(http.StatusOK)

		case strings.HasPrefix(r.URL.Path, "/api/inspectors/delete-file/"):
			id := strings.TrimPrefix(r.URL.Path, "/api/inspectors/delete-file/")
			b.rawFiles[id] = remove(b.rawFiles[id], r.URL.Query().Get("fileName"))
			w.WriteHeader(http.StatusOK)

		case r.URL.Path == "/api/reporters/my-assigned-reports":
			mine := []api.Report{}
			for _, rep := range b.reports {
				if rep.ReporterID == r.URL.Query().Get("reporterId") {
					mine = append(mine, rep)
				}
			}
			_ = json.NewEncoder(w).Encode(mine)

		case strings.HasPrefix(r.URL.Path, "/api/reporters/report-files/"):
			id := strings.TrimPrefix(r.URL.Path, "/api/reporters/report-files/")
			_ = json.NewEncoder(w).Encode(map[string][]string{"finalFiles": b.finalFiles[id]})

		case r.URL.Path == "/api/reporters/upload-final-files":
			if err := r.ParseMultipartForm(1 << 20); err != nil {
				t.Errorf("parsing multipart form: %v", err)
			}
			id := r.URL.Query().Get("reportId")
			for _, fh := range r.MultipartForm.File["files"] {
				b.finalFiles[id] = append(b.finalFiles[id], fh.Filename)
			}
			w.WriteHeader(http.StatusOK)

		case strings.HasPrefix(r.URL.Path, "/api/reporters/delete-final-file/"):
			id := strings.TrimPrefix(r.URL.Path, "/api/reporters/delete-final-file/")
			b.finalFiles[id] = remove(b.finalFiles[id], r.URL.Query().Get("fileName"))
			w.WriteHeader(http.StatusOK)

		case r.URL.Path == "/api/shared/download-reports":
			w.Header().Set("Content-Type", "application/zip")
			_, _ = w.Write([]byte("zip bytes"))

		case r.URL.Path == "/api/shared/get-report-name-by-id":
			for _, rep := range b.reports {
				if rep.ID == r.URL.Query().Get("reportId") {
					_, _ = w.Write([]byte(rep.Name))
					return
				}
			}
			w.WriteHeader(http.StatusNotFound)

		default:
			t.Errorf("unexpected backend request %s %s (user %s)", r.Method, r.URL.Path, user.ID)
			w.WriteHeader(http.StatusNotFound)
		}
	})
}

func remove(names []string, name string) []string {
	kept := names[:0]
	for _, n := range names {
		if n != name {
			kept = append(kept, n)
		}
	}
	return kept
}

type testEnv struct {
	app      *fiber.App
	backend  *fakeBackend
	sessions *session.Manager
}

// setupTestEnv wires the full web app against a fake backend, mirroring
// the server's route table.
func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()
	loggerOnce.Do(logger.Init)

	backend := newFakeBackend()
	server := httptest.NewServer(backend.handler(t))
	t.Cleanup(server.Close)

	sessions := session.NewManager("test-secret", time.Hour)
	guard := middleware.NewGuard(sessions)
	bulk := bulkops.New()
	base := &Base{BackendURL: server.URL, Sessions: sessions}

	authHandler := NewAuthHandler(base)
	adminHandler := NewAdminHandler(base)
	inspectorHandler := NewInspectorHandler(base, bulk)
	reporterHandler := NewReporterHandler(base, bulk)
	sharedHandler := NewSharedHandler(base)

	app := fiber.New(fiber.Config{Views: web.Engine()})
	app.Use(recover.New())

	app.Get("/login", guard.RedirectIfAuthenticated, authHandler.ShowLogin)
	app.Post("/login", guard.RedirectIfAuthenticated, authHandler.Login)
	app.Post("/logout", authHandler.Logout)

	admin := app.Group("/admin", guard.RequireRole(session.RoleAdmin))
	admin.Get("/", adminHandler.Dashboard)
	admin.Get("/users", adminHandler.Users)
	admin.Post("/users", adminHandler.CreateUser)
	admin.Post("/users/:id/delete", adminHandler.DeleteUser)
	admin.Get("/reports", adminHandler.Reports)
	admin.Get("/assign", adminHandler.AssignBoard)
	admin.Post("/assign", adminHandler.Assign)
	admin.Post("/unassign", adminHandler.Unassign)

	inspector := app.Group("/inspector", guard.RequireRole(session.RoleInspector))
	inspector.Get("/", inspectorHandler.Reports)
	inspector.Post("/reports", inspectorHandler.CreateReport)
	inspector.Get("/reports/:id", inspectorHandler.ReportDetail)
	inspector.Post("/reports/:id/upload", inspectorHandler.Upload)
	inspector.Post("/reports/:id/delete-files", inspectorHandler.DeleteFiles)

	reporter := app.Group("/reporter", guard.RequireRole(session.RoleReporter))
	reporter.Get("/", reporterHandler.Reports)
	reporter.Get("/reports/:id", reporterHandler.ReportDetail)
	reporter.Post("/reports/:id/upload", reporterHandler.Upload)
	reporter.Post("/reports/:id/delete-files", reporterHandler.DeleteFiles)

	app.Get("/reports/:id/download", guard.RequireAuth, sharedHandler.Download)

	return &testEnv{app: app, backend: backend, sessions: sessions}
}

// sessionCookie issues a signed cookie value for the given identity.
func (env *testEnv) sessionCookie(t *testing.T, accessKey string, role session.Role, userID, userName string) string {
	t.Helper()
	token, err := env.sessions.Issue(&session.Session{
		AccessKey: accessKey,
		Role:      role,
		UserID:    userID,
		UserName:  userName,
	})
	if err != nil {
		t.Fatalf("issuing session token: %v", err)
	}
	return token
}

func withSession(req *http.Request, token string) *http.Request {
	req.AddCookie(&http.Cookie{Name: session.CookieName, Value: token})
	return req
}

package bulkops

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/Arfushs/AztekAuditSystemFrontend/internal/api"
)

// fakeBackend is a minimal file-endpoint backend holding raw file names
// for a single report.
type fakeBackend struct {
	mu       sync.Mutex
	files    []string
	failOn   map[string]int // file name -> status to fail deletes with
	listings int
	deletes  int
}

func (b *fakeBackend) handler(t *testing.T) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		defer b.mu.Unlock()

		switch {
		case r.Method == http.MethodGet && strings.HasPrefix(r.URL.Path, "/api/inspectors/report-files/"):
			b.listings++
			_ = json.NewEncoder(w).Encode(map[string][]string{"rawFiles": b.files})

		case r.Method == http.MethodPost && r.URL.Path == "/api/inspectors/upload-raw-files":
			if err := r.ParseMultipartForm(1 << 20); err != nil {
				t.Errorf("parsing multipart form: %v", err)
			}
			for _, fh := range r.MultipartForm.File["files"] {
				b.files = append(b.files, fh.Filename)
			}
			w.WriteHeader(http.StatusOK)

		case r.Method == http.MethodDelete && strings.HasPrefix(r.URL.Path, "/api/inspectors/delete-file/"):
			b.deletes++
			name := r.URL.Query().Get("fileName")
			if status, ok := b.failOn[name]; ok {
				w.WriteHeader(status)
				return
			}
			kept := b.files[:0]
			for _, f := range b.files {
				if f != name {
					kept = append(kept, f)
				}
			}
			b.files = kept
			w.WriteHeader(http.StatusOK)

		default:
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	})
}

func TestUpload(t *testing.T) {
	t.Run("uploads in one batch and returns the fresh listing", func(t *testing.T) {
		backend := &fakeBackend{files: []string{"old.pdf"}}
		server := httptest.NewServer(backend.handler(t))
		defer server.Close()

		client := api.NewClient(server.URL, "AK-1")
		listing, err := New().Upload(client, SpaceRaw, "r1", []api.UploadFile{
			{Name: "a.pdf", Content: strings.NewReader("a")},
			{Name: "b.pdf", Content: strings.NewReader("b")},
		})
		if err != nil {
			t.Fatalf("Upload() returned error: %v", err)
		}
		if len(listing) != 3 {
			t.Errorf("expected 3 files after upload, got %v", listing)
		}
	})

	t.Run("empty batch is rejected locally", func(t *testing.T) {
		client := api.NewClient("http://localhost:1", "AK-1")
		if _, err := New().Upload(client, SpaceRaw, "r1", nil); !errors.Is(err, ErrNoFiles) {
			t.Errorf("expected ErrNoFiles, got %v", err)
		}
	})
}

func TestDelete(t *testing.T) {
	t.Run("deletes run per file and the listing is refetched", func(t *testing.T) {
		backend := &fakeBackend{files: []string{"a.pdf", "b.pdf", "c.pdf"}}
		server := httptest.NewServer(backend.handler(t))
		defer server.Close()

		client := api.NewClient(server.URL, "AK-1")
		result, listing, err := New().Delete(client, SpaceRaw, "r1", []string{"a.pdf", "c.pdf"})
		if err != nil {
			t.Fatalf("Delete() returned error: %v", err)
		}
		if !result.AllSucceeded() {
			t.Errorf("expected full success, got %+v", result)
		}
		if backend.deletes != 2 {
			t.Errorf("expected 2 delete requests, got %d", backend.deletes)
		}
		if len(listing) != 1 || listing[0] != "b.pdf" {
			t.Errorf("expected refreshed listing [b.pdf], got %v", listing)
		}
	})

	t.Run("partial failure reports each file and still refetches", func(t *testing.T) {
		backend := &fakeBackend{
			files:  []string{"a.pdf", "b.pdf"},
			failOn: map[string]int{"b.pdf": http.StatusInternalServerError},
		}
		server := httptest.NewServer(backend.handler(t))
		defer server.Close()

		client := api.NewClient(server.URL, "AK-1")
		result, listing, err := New().Delete(client, SpaceRaw, "r1", []string{"a.pdf", "b.pdf"})
		if err != nil {
			t.Fatalf("Delete() returned error: %v", err)
		}
		if len(result.Succeeded) != 1 || result.Succeeded[0] != "a.pdf" {
			t.Errorf("expected a.pdf to succeed, got %v", result.Succeeded)
		}
		if len(result.Failed) != 1 || result.Failed[0].Name != "b.pdf" {
			t.Errorf("expected b.pdf to fail, got %+v", result.Failed)
		}
		if backend.listings != 1 {
			t.Errorf("expected the listing refetch despite the failure, got %d fetches", backend.listings)
		}
		if len(listing) != 1 || listing[0] != "b.pdf" {
			t.Errorf("expected listing [b.pdf], got %v", listing)
		}
	})

	t.Run("empty selection is rejected locally", func(t *testing.T) {
		client := api.NewClient("http://localhost:1", "AK-1")
		if _, _, err := New().Delete(client, SpaceRaw, "r1", nil); !errors.Is(err, ErrNoFiles) {
			t.Errorf("expected ErrNoFiles, got %v", err)
		}
	})
}

func TestBatchGuard(t *testing.T) {
	t.Run("second batch on the same namespace is refused", func(t *testing.T) {
		release := make(chan struct{})
		started := make(chan struct{})
		var once sync.Once
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodDelete {
				once.Do(func() { close(started) })
				<-release
			}
			_ = json.NewEncoder(w).Encode(map[string][]string{"rawFiles": {}})
		}))
		defer server.Close()

		client := api.NewClient(server.URL, "AK-1")
		orch := New()

		done := make(chan struct{})
		go func() {
			defer close(done)
			_, _, _ = orch.Delete(client, SpaceRaw, "r1", []string{"a.pdf"})
		}()

		<-started
		_, _, err := orch.Delete(client, SpaceRaw, "r1", []string{"b.pdf"})
		if !errors.Is(err, ErrBatchInFlight) {
			t.Errorf("expected ErrBatchInFlight, got %v", err)
		}

		close(release)
		<-done

		// The namespace frees up once the first batch settles.
		if _, _, err := orch.Delete(client, SpaceRaw, "r1", []string{"c.pdf"}); err != nil {
			t.Errorf("expected batch to run after settle, got %v", err)
		}
	})

	t.Run("different namespaces do not block each other", func(t *testing.T) {
		orch := New()
		if err := orch.begin(SpaceRaw, "r1"); err != nil {
			t.Fatalf("begin raw: %v", err)
		}
		defer orch.end(SpaceRaw, "r1")

		if err := orch.begin(SpaceFinal, "r1"); err != nil {
			t.Errorf("final namespace should be free: %v", err)
		}
		orch.end(SpaceFinal, "r1")

		if err := orch.begin(SpaceRaw, "r2"); err != nil {
			t.Errorf("other report should be free: %v", err)
		}
		orch.end(SpaceRaw, "r2")
	})
}

func TestBatchResultSummary(t *testing.T) {
	t.Run("success names the count", func(t *testing.T) {
		r := &BatchResult{Succeeded: []string{"a", "b"}}
		if got := r.Summary(); got != "2 file(s) deleted" {
			t.Errorf("unexpected summary %q", got)
		}
	})

	t.Run("failures name the files", func(t *testing.T) {
		r := &BatchResult{
			Succeeded: []string{"a"},
			Failed:    []ItemFailure{{Name: "b", Err: errors.New("boom")}},
		}
		if got := r.Summary(); got != "1 file(s) deleted, 1 failed: b" {
			t.Errorf("unexpected summary %q", got)
		}
	})
}

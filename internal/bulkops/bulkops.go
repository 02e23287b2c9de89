// Package bulkops coordinates multi-file upload and delete against a
// report's file namespace. Uploads travel as one multipart request; deletes
// fan out one request per file, run concurrently, and are settled jointly
// before the authoritative listing is re-fetched from the backend. Local
// state is never trusted after a batch — partial failure means the client's
// view cannot be assumed consistent.
package bulkops

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/Arfushs/AztekAuditSystemFrontend/internal/api"
)

// Space selects which file namespace of a report a batch operates on.
type Space string

const (
	SpaceRaw   Space = "raw"
	SpaceFinal Space = "final"
)

// ErrBatchInFlight is returned when a batch targets a report namespace that
// already has one in flight; the triggering control stays disabled until
// the running batch settles.
var ErrBatchInFlight = errors.New("a file operation is already in progress for this report")

// ErrNoFiles is returned for an empty upload or delete batch.
var ErrNoFiles = errors.New("no files selected")

// ItemFailure records one failed request within a batch.
type ItemFailure struct {
	Name string
	Err  error
}

// BatchResult is the per-item outcome of a delete batch.
type BatchResult struct {
	Succeeded []string
	Failed    []ItemFailure
}

// AllSucceeded reports whether every request in the batch succeeded.
func (r *BatchResult) AllSucceeded() bool {
	return len(r.Failed) == 0
}

// Summary renders the outcome for the user, naming the files that failed.
func (r *BatchResult) Summary() string {
	if r.AllSucceeded() {
		return fmt.Sprintf("%d file(s) deleted", len(r.Succeeded))
	}
	names := make([]string, len(r.Failed))
	for i, f := range r.Failed {
		names[i] = f.Name
	}
	return fmt.Sprintf("%d file(s) deleted, %d failed: %s",
		len(r.Succeeded), len(r.Failed), strings.Join(names, ", "))
}

// Orchestrator runs upload/delete batches and guards each report namespace
// against overlapping batches.
type Orchestrator struct {
	mu       sync.Mutex
	inFlight map[string]struct{}
}

func New() *Orchestrator {
	return &Orchestrator{inFlight: make(map[string]struct{})}
}

func batchKey(space Space, reportID string) string {
	return string(space) + "/" + reportID
}

func (o *Orchestrator) begin(space Space, reportID string) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	key := batchKey(space, reportID)
	if _, busy := o.inFlight[key]; busy {
		return ErrBatchInFlight
	}
	o.inFlight[key] = struct{}{}
	return nil
}

func (o *Orchestrator) end(space Space, reportID string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	delete(o.inFlight, batchKey(space, reportID))
}

// Upload submits all files in a single multipart request, then re-fetches
// and returns the file listing. On failure the prior listing stands and no
// per-file bookkeeping is attempted: the backend call is all-or-nothing.
func (o *Orchestrator) Upload(client *api.Client, space Space, reportID string, files []api.UploadFile) ([]string, error) {
	if len(files) == 0 {
		return nil, ErrNoFiles
	}
	if err := o.begin(space, reportID); err != nil {
		return nil, err
	}
	defer o.end(space, reportID)

	var err error
	switch space {
	case SpaceFinal:
		err = client.UploadFinalFiles(reportID, files)
	default:
		err = client.UploadRawFiles(reportID, files)
	}
	if err != nil {
		return nil, fmt.Errorf("uploading files: %w", err)
	}

	return o.listing(client, space, reportID)
}

// Delete issues one delete request per name, concurrently, waits for all of
// them to settle, and then re-fetches the listing regardless of outcome.
// Per-item results land in the BatchResult; the returned error only covers
// the final listing fetch.
func (o *Orchestrator) Delete(client *api.Client, space Space, reportID string, names []string) (*BatchResult, []string, error) {
	if len(names) == 0 {
		return nil, nil, ErrNoFiles
	}
	if err := o.begin(space, reportID); err != nil {
		return nil, nil, err
	}
	defer o.end(space, reportID)

	errs := make([]error, len(names))
	var wg sync.WaitGroup
	for i, name := range names {
		wg.Add(1)
		go func(i int, name string) {
			defer wg.Done()
			switch space {
			case SpaceFinal:
				errs[i] = client.DeleteFinalFile(reportID, name)
			default:
				errs[i] = client.DeleteRawFile(reportID, name)
			}
		}(i, name)
	}
	wg.Wait()

	result := &BatchResult{}
	for i, name := range names {
		if errs[i] != nil {
			result.Failed = append(result.Failed, ItemFailure{Name: name, Err: errs[i]})
		} else {
			result.Succeeded = append(result.Succeeded, name)
		}
	}

	listing, err := o.listing(client, space, reportID)
	return result, listing, err
}

// Listing fetches the authoritative file list for a report namespace.
func (o *Orchestrator) Listing(client *api.Client, space Space, reportID string) ([]string, error) {
	return o.listing(client, space, reportID)
}

func (o *Orchestrator) listing(client *api.Client, space Space, reportID string) ([]string, error) {
	var (
		names []string
		err   error
	)
	switch space {
	case SpaceFinal:
		names, err = client.FinalReportFiles(reportID)
	default:
		names, err = client.RawReportFiles(reportID)
	}
	if err != nil {
		return nil, fmt.Errorf("loading file listing: %w", err)
	}
	return names, nil
}

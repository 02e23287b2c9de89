// Package assign implements the admin's batch assignment workflow: a board
// of unassigned reports on one side and reporters (each with their current
// report list) on the other. Assign and unassign commit as one request per
// report, fired concurrently and settled jointly; the board is reloaded
// from the backend after every commit instead of patching local state.
package assign

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/Arfushs/AztekAuditSystemFrontend/internal/api"
	"github.com/Arfushs/AztekAuditSystemFrontend/internal/session"
)

// ErrNoSelection is returned when a commit has no selected reports.
var ErrNoSelection = errors.New("no reports selected")

// ErrNoReporter is returned when an assign commit has no target reporter.
var ErrNoReporter = errors.New("no reporter selected")

// Workflow runs assignment operations against the backend.
type Workflow struct {
	client *api.Client
}

func New(client *api.Client) *Workflow {
	return &Workflow{client: client}
}

// ReporterEntry is one reporter with the reports currently assigned to them.
type ReporterEntry struct {
	User    api.User
	Reports []api.Report
}

func (r ReporterEntry) ReportCount() int {
	return len(r.Reports)
}

// Board is one consistent snapshot of the assignment state.
type Board struct {
	Unassigned []api.Report
	Reporters  []ReporterEntry
}

// Load cross-references all reports against all reporters. The unassigned
// panel keys off a missing reporterId, not off status, so a backend that
// violates the status/reporter invariant still renders sensibly.
func (w *Workflow) Load() (*Board, error) {
	users, err := w.client.GetAllUsers()
	if err != nil {
		return nil, fmt.Errorf("loading users: %w", err)
	}
	reports, err := w.client.GetAllReports()
	if err != nil {
		return nil, fmt.Errorf("loading reports: %w", err)
	}

	board := &Board{}
	for _, r := range reports {
		if r.Unassigned() {
			board.Unassigned = append(board.Unassigned, r)
		}
	}
	for _, u := range users {
		if session.Role(u.Role) != session.RoleReporter {
			continue
		}
		entry := ReporterEntry{User: u}
		for _, r := range reports {
			if r.ReporterID == u.ID {
				entry.Reports = append(entry.Reports, r)
			}
		}
		board.Reporters = append(board.Reporters, entry)
	}
	return board, nil
}

// FilterUnassigned applies the free-text search over the unassigned panel
// only; it never touches selections.
func FilterUnassigned(reports []api.Report, term string) []api.Report {
	if term == "" {
		return reports
	}
	lower := strings.ToLower(term)
	filtered := make([]api.Report, 0, len(reports))
	for _, r := range reports {
		if strings.Contains(strings.ToLower(r.Name), lower) {
			filtered = append(filtered, r)
		}
	}
	return filtered
}

// ItemFailure records one failed request within a commit.
type ItemFailure struct {
	ReportID string
	Err      error
}

// Outcome is the per-report result of an assign or unassign commit.
type Outcome struct {
	Done   []string
	Failed []ItemFailure
}

func (o *Outcome) AllSucceeded() bool {
	return len(o.Failed) == 0
}

// Summary renders the outcome for the user.
func (o *Outcome) Summary(verb string) string {
	if o.AllSucceeded() {
		return fmt.Sprintf("%d report(s) %s", len(o.Done), verb)
	}
	return fmt.Sprintf("%d report(s) %s, %d failed", len(o.Done), verb, len(o.Failed))
}

// Assign attaches every selected report to the reporter, one request per
// report, concurrently. Callers clear both selection sets and reload the
// board afterwards regardless of per-request outcomes.
func (w *Workflow) Assign(reporterID string, reportIDs []string) (*Outcome, error) {
	if reporterID == "" {
		return nil, ErrNoReporter
	}
	if len(reportIDs) == 0 {
		return nil, ErrNoSelection
	}
	return w.commit(reportIDs, func(reportID string) error {
		return w.client.AssignReport(reporterID, reportID)
	})
}

// Unassign detaches every selected report from its reporter.
func (w *Workflow) Unassign(reportIDs []string) (*Outcome, error) {
	if len(reportIDs) == 0 {
		return nil, ErrNoSelection
	}
	return w.commit(reportIDs, w.client.UnassignReport)
}

func (w *Workflow) commit(reportIDs []string, op func(reportID string) error) (*Outcome, error) {
	errs := make([]error, len(reportIDs))
	var wg sync.WaitGroup
	for i, id := range reportIDs {
		wg.Add(1)
		go func(i int, id string) {
			defer wg.Done()
			errs[i] = op(id)
		}(i, id)
	}
	wg.Wait()

	outcome := &Outcome{}
	for i, id := range reportIDs {
		if errs[i] != nil {
			outcome.Failed = append(outcome.Failed, ItemFailure{ReportID: id, Err: errs[i]})
		} else {
			outcome.Done = append(outcome.Done, id)
		}
	}
	return outcome, nil
}

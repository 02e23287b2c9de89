// Package listview turns a raw collection into the currently visible page.
// It is a pure in-memory transform: free-text search and status filter are
// ANDed, then one of six sort keys orders the survivors, then the result is
// cut into pages. The engine never fails; bad inputs normalize to defaults.
package listview

import (
	"sort"
	"strings"

	"github.com/Arfushs/AztekAuditSystemFrontend/internal/api"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// DefaultPageSize is used whenever a query does not name a page size.
const DefaultPageSize = 10

// SortOption selects the ordering of a report list.
type SortOption string

const (
	SortNewest         SortOption = "newest"
	SortOldest         SortOption = "oldest"
	SortNameAsc        SortOption = "name-asc"
	SortNameDesc       SortOption = "name-desc"
	SortStatusPriority SortOption = "status-priority"
	SortStatusReverse  SortOption = "status-reverse"
)

// SortOptions lists every recognized sort key, in menu order.
var SortOptions = []SortOption{
	SortNewest, SortOldest, SortNameAsc, SortNameDesc, SortStatusPriority, SortStatusReverse,
}

// ParseSortOption maps a user-supplied value to a sort key, falling back to
// newest-first.
func ParseSortOption(s string) SortOption {
	for _, opt := range SortOptions {
		if SortOption(s) == opt {
			return opt
		}
	}
	return SortNewest
}

// StatusFilter is either a single report status or StatusAll.
type StatusFilter string

// StatusAll disables status filtering.
const StatusAll StatusFilter = "all"

// ParseStatusFilter maps a user-supplied value to a status filter, falling
// back to StatusAll.
func ParseStatusFilter(s string) StatusFilter {
	for _, st := range api.Statuses {
		if StatusFilter(s) == StatusFilter(st) {
			return StatusFilter(s)
		}
	}
	return StatusAll
}

// Query is the full set of recognized list options.
type Query struct {
	Search   string
	Status   StatusFilter
	Sort     SortOption
	Page     int
	PageSize int
}

func (q Query) normalize() Query {
	if q.Status == "" {
		q.Status = StatusAll
	}
	if q.Sort == "" {
		q.Sort = SortNewest
	}
	if q.Page < 1 {
		q.Page = 1
	}
	if q.PageSize < 1 {
		q.PageSize = DefaultPageSize
	}
	return q
}

// Page is the visible slice of a filtered, sorted collection.
type Page[T any] struct {
	Items         []T
	TotalFiltered int
	TotalPages    int
	Page          int
	PageSize      int
}

func (p Page[T]) HasPrev() bool { return p.Page > 1 }
func (p Page[T]) HasNext() bool { return p.Page < p.TotalPages }

// First and Last are the 1-based positions of the visible items within the
// filtered set, for "showing 11-20 of 34" captions.
func (p Page[T]) First() int {
	if p.TotalFiltered == 0 {
		return 0
	}
	return (p.Page-1)*p.PageSize + 1
}

func (p Page[T]) Last() int {
	last := p.Page * p.PageSize
	if last > p.TotalFiltered {
		last = p.TotalFiltered
	}
	return last
}

// The two status orderings use independent rank tables, both sorted
// descending by rank. They are distinct total orders, not mirror images.
var statusPriority = map[api.Status]int{
	api.StatusFinalized: 4,
	api.StatusAssigned:  3,
	api.StatusPending:   2,
	api.StatusDraft:     1,
}

var statusReverse = map[api.Status]int{
	api.StatusDraft:     4,
	api.StatusPending:   3,
	api.StatusAssigned:  2,
	api.StatusFinalized: 1,
}

// Reports produces the visible page of a report collection.
func Reports(reports []api.Report, q Query) Page[api.Report] {
	q = q.normalize()

	filtered := make([]api.Report, 0, len(reports))
	for _, r := range reports {
		if !matchesSearch(r.Name, q.Search) {
			continue
		}
		if q.Status != StatusAll && StatusFilter(r.Status) != q.Status {
			continue
		}
		filtered = append(filtered, r)
	}

	sortReports(filtered, q.Sort)
	return paginate(filtered, q)
}

// Files produces the visible page of a file-name listing. File names carry
// no timestamps or statuses, so only search and the name orderings apply;
// other sort keys keep the backend's order.
func Files(names []string, q Query) Page[string] {
	q = q.normalize()

	filtered := make([]string, 0, len(names))
	for _, name := range names {
		if matchesSearch(name, q.Search) {
			filtered = append(filtered, name)
		}
	}

	switch q.Sort {
	case SortNameAsc, SortNameDesc:
		cl := newCollator()
		sort.SliceStable(filtered, func(i, j int) bool {
			if q.Sort == SortNameAsc {
				return cl.CompareString(filtered[i], filtered[j]) < 0
			}
			return cl.CompareString(filtered[j], filtered[i]) < 0
		})
	}

	return paginate(filtered, q)
}

func matchesSearch(name, term string) bool {
	if term == "" {
		return true
	}
	return strings.Contains(strings.ToLower(name), strings.ToLower(term))
}

// newCollator builds a fresh locale-aware, case-insensitive collator per
// sort; a collate.Collator is not safe for concurrent use.
func newCollator() *collate.Collator {
	return collate.New(language.Und, collate.IgnoreCase)
}

func sortReports(reports []api.Report, opt SortOption) {
	// SliceStable keeps input order for equal keys on every branch.
	switch opt {
	case SortNewest:
		sort.SliceStable(reports, func(i, j int) bool {
			return reports[i].CreatedAt.After(reports[j].CreatedAt)
		})
	case SortOldest:
		sort.SliceStable(reports, func(i, j int) bool {
			return reports[i].CreatedAt.Before(reports[j].CreatedAt)
		})
	case SortNameAsc:
		cl := newCollator()
		sort.SliceStable(reports, func(i, j int) bool {
			return cl.CompareString(reports[i].Name, reports[j].Name) < 0
		})
	case SortNameDesc:
		cl := newCollator()
		sort.SliceStable(reports, func(i, j int) bool {
			return cl.CompareString(reports[j].Name, reports[i].Name) < 0
		})
	case SortStatusPriority:
		sort.SliceStable(reports, func(i, j int) bool {
			return statusPriority[reports[i].Status] > statusPriority[reports[j].Status]
		})
	case SortStatusReverse:
		sort.SliceStable(reports, func(i, j int) bool {
			return statusReverse[reports[i].Status] > statusReverse[reports[j].Status]
		})
	}
}

// paginate clamps the requested page into [1, totalPages] on every
// recompute, so a shrinking filtered set can never leave the view on a
// stale empty page.
func paginate[T any](filtered []T, q Query) Page[T] {
	totalPages := (len(filtered) + q.PageSize - 1) / q.PageSize
	if totalPages < 1 {
		totalPages = 1
	}

	page := q.Page
	if page > totalPages {
		page = totalPages
	}

	start := (page - 1) * q.PageSize
	end := start + q.PageSize
	if start > len(filtered) {
		start = len(filtered)
	}
	if end > len(filtered) {
		end = len(filtered)
	}

	return Page[T]{
		Items:         filtered[start:end],
		TotalFiltered: len(filtered),
		TotalPages:    totalPages,
		Page:          page,
		PageSize:      q.PageSize,
	}
}

// PageWindow returns at most five page numbers centered on the current
// page, for the numbered pagination strip.
func PageWindow(current, total int) []int {
	n := total
	if n > 5 {
		n = 5
	}
	window := make([]int, 0, n)
	for i := 0; i < n; i++ {
		var page int
		switch {
		case total <= 5:
			page = i + 1
		case current <= 3:
			page = i + 1
		case current > total-3:
			page = total - 4 + i
		default:
			page = current - 2 + i
		}
		window = append(window, page)
	}
	return window
}

// Package selection implements the checked-set semantics shared by the
// file lists and the assignment board: toggling an item flips it, and the
// "select all" action is all-or-nothing over the currently visible items.
package selection

import "sort"

// Set is a set of selected item identifiers (file names or report ids).
type Set map[string]struct{}

func New(items ...string) Set {
	s := make(Set, len(items))
	for _, item := range items {
		s[item] = struct{}{}
	}
	return s
}

func (s Set) Has(item string) bool {
	_, ok := s[item]
	return ok
}

// Toggle flips the membership of item. Toggling twice is a no-op.
func (s Set) Toggle(item string) {
	if s.Has(item) {
		delete(s, item)
	} else {
		s[item] = struct{}{}
	}
}

// ToggleAll implements the all-or-nothing select-all: if every visible item
// is already selected the selection is cleared entirely, otherwise all
// visible items become selected.
func (s Set) ToggleAll(visible []string) {
	if len(visible) > 0 && s.AllSelected(visible) {
		s.Clear()
		return
	}
	for _, item := range visible {
		s[item] = struct{}{}
	}
}

// AllSelected reports whether every visible item is in the set. An empty
// visible slice yields false, so select-all over nothing selects nothing.
func (s Set) AllSelected(visible []string) bool {
	if len(visible) == 0 {
		return false
	}
	for _, item := range visible {
		if !s.Has(item) {
			return false
		}
	}
	return true
}

func (s Set) Clear() {
	for item := range s {
		delete(s, item)
	}
}

func (s Set) Len() int {
	return len(s)
}

// Names returns the selected items in a stable order.
func (s Set) Names() []string {
	names := make([]string, 0, len(s))
	for item := range s {
		names = append(names, item)
	}
	sort.Strings(names)
	return names
}

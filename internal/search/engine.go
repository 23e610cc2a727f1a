package search

import (
	"github.com/productbazar/bazaaradmin/internal/api"
	"github.com/productbazar/bazaaradmin/internal/roles"
)

// Source is the read side of the user directory.
type Source interface {
	All() []api.User
	Get(id string) (api.User, bool)
	Has(id string) bool
}

// Engine owns the query, the role selector, the filtered projection (as ids)
// and the suggestion dropdown. query and role follow the input; the
// projection is only ever computed from appliedQuery and appliedRole, which
// a debounced run promotes.
type Engine struct {
	query  string
	role   roles.Role
	pinned string

	appliedQuery string
	appliedRole  roles.Role

	filtered  []string
	dropdown  Dropdown
	debounce  Debouncer
	searching bool
}

func NewEngine() *Engine {
	return &Engine{dropdown: NewDropdown()}
}

func (e *Engine) Query() string {
	return e.query
}

func (e *Engine) Role() roles.Role {
	return e.role
}

// AppliedQuery is the query the current projection was computed from.
func (e *Engine) AppliedQuery() string {
	return e.appliedQuery
}

// Searching is true between an input change and the debounced run.
func (e *Engine) Searching() bool {
	return e.searching
}

// Pinned returns the id the list is narrowed to after a committed
// suggestion, or "".
func (e *Engine) Pinned() string {
	return e.pinned
}

// SetQuery records a keystroke and returns the sequence number of the
// trailing run it schedules.
func (e *Engine) SetQuery(q string) uint64 {
	e.query = q
	e.searching = true
	return e.debounce.Bump()
}

// SetRole changes the role selector; "" means all roles.
func (e *Engine) SetRole(r roles.Role) uint64 {
	e.role = r
	e.searching = true
	return e.debounce.Bump()
}

// Fire runs the filter for seq if it is still the latest scheduled run.
func (e *Engine) Fire(seq uint64, src Source) bool {
	if !e.debounce.Fire(seq) {
		return false
	}
	e.appliedQuery, e.appliedRole = e.query, e.role
	e.pinned = ""
	e.run(src)
	e.dropdown.Set(SuggestIDs(e.appliedQuery, e.filtered))
	e.searching = false
	return true
}

// Apply recomputes the projection from the last debounced query and role,
// without touching the suggestions. A pending run is left pending.
func (e *Engine) Apply(src Source) {
	e.run(src)
}

func (e *Engine) run(src Source) {
	if e.pinned != "" {
		if src.Has(e.pinned) {
			e.filtered = []string{e.pinned}
		} else {
			e.pinned = ""
			e.filtered = nil
		}
		return
	}
	matched := Filter(src.All(), e.appliedQuery, e.appliedRole)
	ids := make([]string, len(matched))
	for i, u := range matched {
		ids[i] = u.ID
	}
	e.filtered = ids
}

// Commit narrows the list to the user with id, replaces the query with the
// user's display name and clears the suggestions. Any pending run is dropped.
func (e *Engine) Commit(id string, src Source) bool {
	u, ok := src.Get(id)
	if !ok {
		return false
	}
	e.debounce.Cancel()
	e.query = u.DisplayName()
	e.appliedQuery, e.appliedRole = e.query, e.role
	e.pinned = id
	e.filtered = []string{id}
	e.dropdown.Set(nil)
	e.searching = false
	return true
}

// CancelPending drops a scheduled run, as on unmount.
func (e *Engine) CancelPending() {
	e.debounce.Cancel()
	e.searching = false
}

// FilteredIDs returns the projection as ids.
func (e *Engine) FilteredIDs() []string {
	return append([]string(nil), e.filtered...)
}

// Filtered resolves the projection through src.
func (e *Engine) Filtered(src Source) []api.User {
	out := make([]api.User, 0, len(e.filtered))
	for _, id := range e.filtered {
		if u, ok := src.Get(id); ok {
			out = append(out, u)
		}
	}
	return out
}

// Suggestions resolves the dropdown items through src.
func (e *Engine) Suggestions(src Source) []Suggestion {
	ids := e.dropdown.Items()
	out := make([]Suggestion, 0, len(ids))
	for _, id := range ids {
		if u, ok := src.Get(id); ok {
			out = append(out, Project(u))
		}
	}
	return out
}

// Dropdown exposes the keyboard model of the suggestion list.
func (e *Engine) Dropdown() *Dropdown {
	return &e.dropdown
}

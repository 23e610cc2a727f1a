package console

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/productbazar/bazaaradmin/internal/api"
	"github.com/productbazar/bazaaradmin/internal/roles"
	"github.com/productbazar/bazaaradmin/internal/search"
	"github.com/productbazar/bazaaradmin/pkg/logger"
)

// SetQuery records a keystroke in the search box and schedules the
// debounced filter run.
func (m *Model) SetQuery(q string) tea.Cmd {
	if !m.mounted {
		return nil
	}
	seq := m.engine.SetQuery(q)
	return m.after(search.DebounceDelay, debounceMsg{seq: seq})
}

// SetRoleFilter changes the role selector; "" selects all roles.
func (m *Model) SetRoleFilter(r roles.Role) tea.Cmd {
	if !m.mounted {
		return nil
	}
	seq := m.engine.SetRole(r)
	return m.after(search.DebounceDelay, debounceMsg{seq: seq})
}

func (m *Model) Query() string {
	return m.engine.Query()
}

func (m *Model) RoleFilter() roles.Role {
	return m.engine.Role()
}

func (m *Model) Searching() bool {
	return m.engine.Searching()
}

// Filtered returns the users currently listed.
func (m *Model) Filtered() []api.User {
	return m.engine.Filtered(m.dir)
}

// RoleCount is the number of loaded users holding r as primary role, or all
// users when r is "".
func (m *Model) RoleCount(r roles.Role) int {
	if r == "" {
		return m.dir.Len()
	}
	return m.dir.CountByRole(r)
}

func (m *Model) Suggestions() []search.Suggestion {
	return m.engine.Suggestions(m.dir)
}

func (m *Model) SuggestionsOpen() bool {
	return m.engine.Dropdown().Open()
}

func (m *Model) ActiveSuggestion() int {
	return m.engine.Dropdown().Active()
}

func (m *Model) SuggestDown() {
	m.engine.Dropdown().Down()
}

func (m *Model) SuggestUp() {
	m.engine.Dropdown().Up()
}

func (m *Model) SuggestEscape() {
	m.engine.Dropdown().Escape()
}

// ClickOutside closes the dropdown without committing.
func (m *Model) ClickOutside() {
	m.engine.Dropdown().Close()
}

// SuggestEnter commits the active suggestion, if any.
func (m *Model) SuggestEnter() bool {
	id, ok := m.engine.Dropdown().Enter()
	if !ok {
		return false
	}
	return m.CommitSuggestion(id)
}

// CommitSuggestion narrows the list to id and selects it.
func (m *Model) CommitSuggestion(id string) bool {
	if !m.mounted || !m.engine.Commit(id, m.dir) {
		return false
	}
	return m.Select(id)
}

// Select makes id the current selection, discarding any draft.
func (m *Model) Select(id string) bool {
	if !m.mounted || !m.dir.Has(id) {
		return false
	}
	m.sel.choose(id, m.Narrow())
	return true
}

// Selected resolves the current selection through the directory.
func (m *Model) Selected() (api.User, bool) {
	if m.sel.Mode == Idle || m.sel.ID == "" {
		return api.User{}, false
	}
	return m.dir.Get(m.sel.ID)
}

// Selection returns a copy of the selection state.
func (m *Model) Selection() Selection {
	s := m.sel
	if s.DraftSecondary != nil {
		s.DraftSecondary = s.DraftSecondary.Clone()
	}
	return s
}

// Back returns to the list in the narrow layout.
func (m *Model) Back() {
	m.sel.DetailVisible = false
}

func (m *Model) ToggleCapabilities() {
	if m.sel.Mode != Idle {
		m.sel.ShowCapabilities = !m.sel.ShowCapabilities
	}
}

// BeginEdit enters edit mode with drafts initialised from the selected user.
func (m *Model) BeginEdit() bool {
	if m.sel.Mode != Viewing {
		return false
	}
	u, ok := m.dir.Get(m.sel.ID)
	if !ok {
		return false
	}
	m.sel.beginEdit(u)
	return true
}

// CancelEdit drops the draft. Refused while a mutation is in flight.
func (m *Model) CancelEdit() bool {
	if m.sel.Mode != Editing || m.submitting {
		return false
	}
	m.sel.endEdit()
	return true
}

func (m *Model) SetDraftPrimary(r roles.Role) bool {
	if m.sel.Mode != Editing || m.submitting || !r.Known() {
		return false
	}
	m.sel.DraftPrimary = r
	return true
}

// ToggleDraftSecondary flips r in the draft set. Only the secondary options
// may be toggled.
func (m *Model) ToggleDraftSecondary(r roles.Role) bool {
	if m.sel.Mode != Editing || m.submitting || !r.IsSecondaryOption() {
		return false
	}
	m.sel.DraftSecondary.Toggle(r)
	return true
}

// CopyID puts the selected user's id on the clipboard.
func (m *Model) CopyID() tea.Cmd {
	u, ok := m.Selected()
	if !ok || m.copyText == nil {
		return nil
	}
	if err := m.copyText(u.ID); err != nil {
		logger.Error("clipboard_copy_failed", err, nil)
		return m.setError(fmt.Sprintf("Could not copy user ID: %v", err))
	}
	return m.setSuccess("User ID copied to clipboard")
}

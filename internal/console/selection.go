package console

import (
	"github.com/productbazar/bazaaradmin/internal/api"
	"github.com/productbazar/bazaaradmin/internal/roles"
)

// Mode is the detail panel state.
type Mode int

const (
	Idle Mode = iota
	Viewing
	Editing
)

func (m Mode) String() string {
	switch m {
	case Idle:
		return "idle"
	case Viewing:
		return "viewing"
	case Editing:
		return "editing"
	default:
		return "unknown"
	}
}

// Selection references the chosen user by id. Epoch increases on every
// choice so late mutation results can tell whether they still apply.
type Selection struct {
	ID    string
	Epoch uint64
	Mode  Mode

	DraftPrimary   roles.Role
	DraftSecondary *roles.Set

	DetailVisible    bool
	ShowCapabilities bool
}

func (s *Selection) choose(id string, narrow bool) {
	s.ID = id
	s.Epoch++
	s.Mode = Viewing
	s.DraftPrimary = ""
	s.DraftSecondary = nil
	s.ShowCapabilities = false
	if narrow {
		s.DetailVisible = true
	}
}

func (s *Selection) beginEdit(u api.User) {
	s.Mode = Editing
	s.DraftPrimary = u.Role
	s.DraftSecondary = roles.NewSet(u.SecondaryRoles...)
}

func (s *Selection) endEdit() {
	s.Mode = Viewing
	s.DraftPrimary = ""
	s.DraftSecondary = nil
}

func (s *Selection) clear() {
	epoch := s.Epoch
	*s = Selection{Epoch: epoch + 1}
}

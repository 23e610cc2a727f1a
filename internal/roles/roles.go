package roles

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
)

// Role identifies a ProductBazar role. Values outside the catalogue are
// carried through untouched; the server is authoritative about legality.
type Role string

const (
	User         Role = "user"
	StartupOwner Role = "startupOwner"
	Investor     Role = "investor"
	Agency       Role = "agency"
	Freelancer   Role = "freelancer"
	Jobseeker    Role = "jobseeker"
	Maker        Role = "maker"
	Admin        Role = "admin"
)

var ErrUnknownRole = errors.New("unknown role")

// Meta is the presentation metadata for a role.
type Meta struct {
	Label string
	Icon  string
	Tint  string
}

var primaryOrder = []Role{User, StartupOwner, Investor, Agency, Freelancer, Jobseeker, Maker, Admin}

var secondaryOrder = []Role{StartupOwner, Investor, Agency, Freelancer, Jobseeker, Maker}

var catalogue = map[Role]Meta{
	User:         {Label: "User", Icon: "👤", Tint: "#6B7280"},
	StartupOwner: {Label: "Startup Owner", Icon: "🚀", Tint: "#7C3AED"},
	Investor:     {Label: "Investor", Icon: "💰", Tint: "#059669"},
	Agency:       {Label: "Agency", Icon: "🏢", Tint: "#2563EB"},
	Freelancer:   {Label: "Freelancer", Icon: "💼", Tint: "#D97706"},
	Jobseeker:    {Label: "Job Seeker", Icon: "🔍", Tint: "#0891B2"},
	Maker:        {Label: "Maker", Icon: "🛠", Tint: "#DB2777"},
	Admin:        {Label: "Admin", Icon: "🛡", Tint: "#DC2626"},
}

// All returns the eight primary roles in catalogue order.
func All() []Role {
	out := make([]Role, len(primaryOrder))
	copy(out, primaryOrder)
	return out
}

// SecondaryOptions returns the six roles that may be granted as secondary roles.
func SecondaryOptions() []Role {
	out := make([]Role, len(secondaryOrder))
	copy(out, secondaryOrder)
	return out
}

// Meta returns the presentation metadata for r, falling back to a generic
// entry derived from the identifier for roles outside the catalogue.
func (r Role) Meta() Meta {
	if m, ok := catalogue[r]; ok {
		return m
	}
	label := Humanize(string(r))
	if label == "" {
		label = "Unknown"
	}
	return Meta{Label: label, Icon: "•", Tint: "#9CA3AF"}
}

func (r Role) Label() string {
	return r.Meta().Label
}

func (r Role) String() string {
	return string(r)
}

// Known reports whether r is one of the eight catalogue roles.
func (r Role) Known() bool {
	_, ok := catalogue[r]
	return ok
}

// IsSecondaryOption reports whether r can be toggled as a secondary role.
func (r Role) IsSecondaryOption() bool {
	for _, s := range secondaryOrder {
		if s == r {
			return true
		}
	}
	return false
}

// Parse accepts a role identifier or its label, case-insensitively.
func Parse(s string) (Role, error) {
	needle := strings.ToLower(strings.TrimSpace(s))
	for _, r := range primaryOrder {
		if strings.ToLower(string(r)) == needle || strings.ToLower(r.Label()) == needle {
			return r, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownRole, s)
}

// HasAdmin reports whether admin is held as the primary role or among the
// secondary roles.
func HasAdmin(primary Role, secondary []Role) bool {
	if primary == Admin {
		return true
	}
	for _, r := range secondary {
		if r == Admin {
			return true
		}
	}
	return false
}

// Humanize turns a camelCase identifier into a capitalised phrase:
// "canCreateProducts" becomes "Can create products".
func Humanize(id string) string {
	if id == "" {
		return ""
	}
	var b strings.Builder
	for i, r := range id {
		switch {
		case i == 0:
			b.WriteRune(unicode.ToUpper(r))
		case unicode.IsUpper(r):
			b.WriteRune(' ')
			b.WriteRune(unicode.ToLower(r))
		case r == '_' || r == '-':
			b.WriteRune(' ')
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

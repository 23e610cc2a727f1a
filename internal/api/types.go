package api

import (
	"strings"
	"time"

	"github.com/productbazar/bazaaradmin/internal/roles"
)

// User mirrors the backend user record as returned by the admin endpoints.
type User struct {
	ID                 string          `json:"id"`
	FirstName          string          `json:"firstName,omitempty"`
	LastName           string          `json:"lastName,omitempty"`
	Email              string          `json:"email,omitempty"`
	Phone              string          `json:"phone,omitempty"`
	IsEmailVerified    bool            `json:"isEmailVerified"`
	IsPhoneVerified    bool            `json:"isPhoneVerified"`
	ProfilePictureURL  string          `json:"profilePictureUrl,omitempty"`
	Role               roles.Role      `json:"role"`
	SecondaryRoles     []roles.Role    `json:"secondaryRoles"`
	RoleCapabilities   map[string]bool `json:"roleCapabilities,omitempty"`
	CompanyName        string          `json:"companyName,omitempty"`
	Address            *Address        `json:"address,omitempty"`
	CreatedAt          *time.Time      `json:"createdAt,omitempty"`
	IsProfileCompleted bool            `json:"isProfileCompleted"`
}

// Address holds the display-only location of a user.
type Address struct {
	City    string `json:"city,omitempty"`
	Country string `json:"country,omitempty"`
}

// FullName joins first and last name, trimming missing parts.
func (u User) FullName() string {
	return strings.TrimSpace(strings.TrimSpace(u.FirstName) + " " + strings.TrimSpace(u.LastName))
}

// DisplayName falls back through full name, email, phone and "Unnamed User".
func (u User) DisplayName() string {
	switch {
	case u.FullName() != "":
		return u.FullName()
	case u.Email != "":
		return u.Email
	case u.Phone != "":
		return u.Phone
	default:
		return "Unnamed User"
	}
}

// IsAdmin reports whether the user holds admin as primary or secondary role.
func (u User) IsAdmin() bool {
	return roles.HasAdmin(u.Role, u.SecondaryRoles)
}

func (u User) City() string {
	if u.Address == nil {
		return ""
	}
	return u.Address.City
}

func (u User) Country() string {
	if u.Address == nil {
		return ""
	}
	return u.Address.Country
}

// Location renders "City, Country" with whichever parts are present.
func (u User) Location() string {
	parts := make([]string, 0, 2)
	if c := u.City(); c != "" {
		parts = append(parts, c)
	}
	if c := u.Country(); c != "" {
		parts = append(parts, c)
	}
	return strings.Join(parts, ", ")
}

// Clone returns a deep copy so callers may modify slices and maps freely.
func (u User) Clone() User {
	out := u
	if u.SecondaryRoles != nil {
		out.SecondaryRoles = append([]roles.Role(nil), u.SecondaryRoles...)
	}
	if u.RoleCapabilities != nil {
		out.RoleCapabilities = make(map[string]bool, len(u.RoleCapabilities))
		for k, v := range u.RoleCapabilities {
			out.RoleCapabilities[k] = v
		}
	}
	if u.Address != nil {
		addr := *u.Address
		out.Address = &addr
	}
	if u.CreatedAt != nil {
		ts := *u.CreatedAt
		out.CreatedAt = &ts
	}
	return out
}

// UserList is the data payload of GET /admin/users/all.
type UserList struct {
	Users []User `json:"users"`
}

// CurrentUser is the data payload of GET /auth/me.
type CurrentUser struct {
	User User `json:"user"`
}

// UpdateRoleRequest is the body of PUT /admin/users/{id}/role.
type UpdateRoleRequest struct {
	Role roles.Role `json:"role"`
}

// UpdateSecondaryRolesRequest is the body of PUT /admin/users/{id}/secondary-roles.
type UpdateSecondaryRolesRequest struct {
	SecondaryRoles []roles.Role `json:"secondaryRoles"`
}

package search

import (
	"unicode/utf8"

	"github.com/productbazar/bazaaradmin/internal/api"
	"github.com/productbazar/bazaaradmin/internal/roles"
)

const (
	// MaxSuggestions caps the type-ahead list.
	MaxSuggestions = 5
	// MinSuggestQuery is the shortest debounced query that opens suggestions.
	MinSuggestQuery = 2
)

// Suggestion is the projection of a user shown in the type-ahead dropdown.
type Suggestion struct {
	ID                string     `json:"id"`
	DisplayName       string     `json:"displayName"`
	Email             string     `json:"email,omitempty"`
	Phone             string     `json:"phone,omitempty"`
	ProfilePictureURL string     `json:"profilePictureUrl,omitempty"`
	Role              roles.Role `json:"role"`
}

// Project builds the suggestion view of u.
func Project(u api.User) Suggestion {
	return Suggestion{
		ID:                u.ID,
		DisplayName:       u.DisplayName(),
		Email:             u.Email,
		Phone:             u.Phone,
		ProfilePictureURL: u.ProfilePictureURL,
		Role:              u.Role,
	}
}

// SuggestIDs returns the ids of the first MaxSuggestions filtered users when
// query is long enough, and nil otherwise.
func SuggestIDs(query string, filtered []string) []string {
	if utf8.RuneCountInString(query) < MinSuggestQuery {
		return nil
	}
	n := len(filtered)
	if n > MaxSuggestions {
		n = MaxSuggestions
	}
	out := make([]string, n)
	copy(out, filtered[:n])
	return out
}

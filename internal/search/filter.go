package search

import (
	"strings"

	"github.com/productbazar/bazaaradmin/internal/api"
	"github.com/productbazar/bazaaradmin/internal/roles"
)

// Tokenize lowercases and trims q and splits it on whitespace.
func Tokenize(q string) []string {
	return strings.Fields(strings.ToLower(strings.TrimSpace(q)))
}

// searchable returns the lowercased fields a query token may match.
func searchable(u api.User) []string {
	return []string{
		strings.ToLower(u.FirstName + " " + u.LastName),
		strings.ToLower(u.Email),
		strings.ToLower(u.Phone),
		strings.ToLower(string(u.Role)),
		strings.ToLower(u.CompanyName),
		strings.ToLower(u.City()),
		strings.ToLower(u.Country()),
	}
}

// Matches reports whether every token is a substring of at least one
// searchable field of u, and whether u's primary role equals role when role
// is non-empty.
func Matches(u api.User, tokens []string, role roles.Role) bool {
	if role != "" && u.Role != role {
		return false
	}
	if len(tokens) == 0 {
		return true
	}
	fields := searchable(u)
	for _, tok := range tokens {
		found := false
		for _, f := range fields {
			if strings.Contains(f, tok) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// Filter returns the users matching query and role, preserving input order.
func Filter(users []api.User, query string, role roles.Role) []api.User {
	tokens := Tokenize(query)
	out := make([]api.User, 0, len(users))
	for _, u := range users {
		if Matches(u, tokens, role) {
			out = append(out, u)
		}
	}
	return out
}

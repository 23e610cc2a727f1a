package console

import (
	"context"

	"github.com/productbazar/bazaaradmin/internal/api"
	"github.com/productbazar/bazaaradmin/internal/roles"
)

// SessionMsg carries the result of a current-user fetch. The host may also
// send one whenever the session changes.
type SessionMsg struct {
	User *api.User
	Err  error
}

type usersLoadedMsg struct {
	ctx   context.Context
	users []api.User
	err   error
}

type debounceMsg struct {
	seq uint64
}

// MutationKind distinguishes the two role mutations.
type MutationKind int

const (
	MutationPrimary MutationKind = iota
	MutationSecondary
)

func (k MutationKind) String() string {
	if k == MutationPrimary {
		return "primary"
	}
	return "secondary"
}

type mutationDoneMsg struct {
	mount     context.Context
	kind      MutationKind
	userID    string
	epoch     uint64
	role      roles.Role
	secondary []roles.Role
	err       error
}

type bannerKind int

const (
	bannerSuccess bannerKind = iota
	bannerError
)

type bannerExpiredMsg struct {
	kind bannerKind
	seq  uint64
}

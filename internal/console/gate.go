package console

import "github.com/productbazar/bazaaradmin/internal/api"

// Session is the current-user context the console is mounted under.
type Session struct {
	User        *api.User
	Initialized bool
}

// GateState is the outcome of the admin check.
type GateState int

const (
	GateLoading GateState = iota
	GateDenied
	GateOpen
)

func (g GateState) String() string {
	switch g {
	case GateLoading:
		return "loading"
	case GateDenied:
		return "denied"
	case GateOpen:
		return "open"
	default:
		return "unknown"
	}
}

// Evaluate opens the gate only for an initialised session whose user holds
// admin as primary or secondary role. The server re-verifies every call.
func Evaluate(s Session) GateState {
	if !s.Initialized {
		return GateLoading
	}
	if s.User == nil || !s.User.IsAdmin() {
		return GateDenied
	}
	return GateOpen
}

package credential

import "time"

// State is a step of the credential lifecycle.
type State int

const (
	StateAbsent State = iota
	StateValid
	StateExpired
	StateRefreshing
	StateNeedsInteractiveAuth
)

func (s State) String() string {
	switch s {
	case StateAbsent:
		return "absent"
	case StateValid:
		return "valid"
	case StateExpired:
		return "expired"
	case StateRefreshing:
		return "refreshing"
	case StateNeedsInteractiveAuth:
		return "needs_interactive_auth"
	default:
		return "unknown"
	}
}

// Classify returns the lifecycle state of a loaded credential.
// A credential lacking a required scope can only be fixed by a new consent.
func Classify(c *Credential, required []string, now time.Time) State {
	switch {
	case c == nil:
		return StateAbsent
	case !c.HasScopes(required):
		return StateNeedsInteractiveAuth
	case c.Valid(now):
		return StateValid
	case c.RefreshToken != "":
		return StateExpired
	default:
		return StateNeedsInteractiveAuth
	}
}

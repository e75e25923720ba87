package workflow

import (
	"time"

	"github.com/jshacar-hms/requesthelp/internal/model"
)

// State is the position of one help request in its lifecycle. States are
// visited strictly in order; Done is terminal and a session is never reused.
type State int

const (
	StateIdle State = iota
	StateAwaitingEmail
	StateValidatingEmail
	StateAwaitingConfirmation
	StateDispatching
	StateDone
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateAwaitingEmail:
		return "awaiting_email"
	case StateValidatingEmail:
		return "validating_email"
	case StateAwaitingConfirmation:
		return "awaiting_confirmation"
	case StateDispatching:
		return "dispatching"
	case StateDone:
		return "done"
	default:
		return "unknown"
	}
}

// promptKind tracks which prompt a session is waiting on, so a choice
// response routes to the right edge. The retry-ack prompt is an explicit
// edge of AwaitingEmail rather than a nested callback.
type promptKind int

const (
	promptNone promptKind = iota
	promptEmail
	promptRetryAck
	promptConfirm
)

// session is one in-flight help request. Owned exclusively by the engine
// loop; never touched from another goroutine.
type session struct {
	model.Session
	state   State
	pending promptKind
}

// Clock supplies the current instant. Injected so the business-hours
// decision is deterministic under test.
type Clock func() time.Time

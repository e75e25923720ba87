package dispatch

import (
	"fmt"

	"github.com/jshacar-hms/requesthelp/internal/model"
)

// Error reports a failed dispatch attempt on one channel. A zero StatusCode
// means the transport itself failed before any HTTP status was received; a
// non-zero StatusCode with Detail covers non-success responses and success
// responses whose body could not be parsed.
type Error struct {
	Channel    model.Channel
	StatusCode int
	Detail     string
	Err        error
}

func (e *Error) Error() string {
	switch {
	case e.Err != nil:
		return fmt.Sprintf("%s dispatch: %v", e.Channel, e.Err)
	case e.Detail != "":
		return fmt.Sprintf("%s dispatch: status %d: %s", e.Channel, e.StatusCode, e.Detail)
	default:
		return fmt.Sprintf("%s dispatch: status %d", e.Channel, e.StatusCode)
	}
}

func (e *Error) Unwrap() error { return e.Err }

// UserMessage is the text shown on the device when a ticket dispatch fails.
// Status-bearing failures surface the code so the user can report it; pure
// transport failures get the generic wording.
func (e *Error) UserMessage() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("Status code: %d", e.StatusCode)
	}
	return "Unable to create ticket"
}

// Package ui defines the contracts between the help-request workflow and
// whatever surface renders its prompts — the room device's touch panel in
// production, a terminal panel in development.
package ui

import "time"

// Choice is one labeled option in a choice prompt. Options are presented in
// order; responses carry the option's index.
type Choice struct {
	Label string
}

// Prompter renders prompts. Every prompt except plain messages carries the
// correlation ID of the session that asked for it, and the surface must echo
// that ID back on the matching response so concurrent sessions never cross.
type Prompter interface {
	ShowTextInput(correlationID, title, text string) error
	ShowChoice(correlationID, title, text string, choices []Choice) error
	ShowMessage(title, text string, duration time.Duration) error
}

// Responder receives the user's answers. Implemented by the workflow engine;
// called by prompt surfaces from whatever goroutine their event source runs
// on.
type Responder interface {
	SubmitText(correlationID, text string)
	SelectChoice(correlationID string, index int)
}

// Package workflow implements the help-request state machine: panel press,
// email prompt and validation loop, business-hours confirmation, and the
// fan-out to the notification channels.
//
// The engine is a single event loop. External surfaces post trigger and
// prompt-response events; dispatch calls run in their own goroutines and
// post completion events back. All session state lives in the loop
// goroutine, so concurrent help requests never share mutable state and no
// locks are needed.
package workflow

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/jshacar-hms/requesthelp/internal/device"
	"github.com/jshacar-hms/requesthelp/internal/dispatch"
	"github.com/jshacar-hms/requesthelp/internal/email"
	"github.com/jshacar-hms/requesthelp/internal/hours"
	"github.com/jshacar-hms/requesthelp/internal/model"
	"github.com/jshacar-hms/requesthelp/internal/ui"
)

// Prompt wording shown on the panel.
const (
	emailPromptTitle = "Request Help - Enter Email"
	emailPromptText  = "Please enter your email:"

	emailErrorTitle = "Email Error"
	emailErrorText  = "Email is invalid, please try again."

	confirmTitle = "Request Help - Confirm"
	confirmText  = "This will notify Media Services of an urgent issue in the room. " +
		"Are you sure you want to report an issue and request a technician?"

	afterHoursTitle = "Request Help - After Hours"
	afterHoursText  = "It is currently outside of operational hours. You can still submit " +
		"a ticket and a technician will review during the next business day and follow up with you."
)

// Choice indices within the confirmation prompts.
const (
	choiceConfirm = 0
	choiceCancel  = 1
)

// Engine events, one type per external occurrence. The loop is the only
// reader; surfaces and dispatch goroutines are writers.
type event interface{}

type triggerEvent struct{}

type identityEvent struct {
	ident model.DeviceIdentity
	err   error
}

type textEvent struct {
	id   string
	text string
}

type choiceEvent struct {
	id    string
	index int
}

type chatResultEvent struct {
	id      string
	outcome model.NotificationOutcome
}

type ticketResultEvent struct {
	id      string
	outcome model.NotificationOutcome
}

// Engine orchestrates every active help request. It implements ui.Responder
// for the prompt surfaces.
type Engine struct {
	prompter   ui.Prompter
	identity   device.IdentitySource
	dispatcher dispatch.Dispatcher
	clock      Clock
	window     hours.TimeWindow
	logger     *slog.Logger

	events   chan event
	sessions map[string]*session
}

// NewEngine wires the engine's collaborators. A nil clock means time.Now.
func NewEngine(
	prompter ui.Prompter,
	identity device.IdentitySource,
	dispatcher dispatch.Dispatcher,
	window hours.TimeWindow,
	clock Clock,
	logger *slog.Logger,
) *Engine {
	if clock == nil {
		clock = time.Now
	}
	return &Engine{
		prompter:   prompter,
		identity:   identity,
		dispatcher: dispatcher,
		clock:      clock,
		window:     window,
		logger:     logger,
		events:     make(chan event, 64),
		sessions:   make(map[string]*session),
	}
}

// Run drives the event loop until ctx is canceled.
func (e *Engine) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case ev := <-e.events:
			e.handle(ctx, ev)
		}
	}
}

func (e *Engine) post(ctx context.Context, ev event) {
	select {
	case e.events <- ev:
	case <-ctx.Done():
	}
}

// Trigger starts a new help request. Safe to call from any goroutine; rapid
// repeated triggers each get their own isolated session.
func (e *Engine) Trigger() {
	e.events <- triggerEvent{}
}

// SubmitText delivers a text input response for the given correlation ID.
func (e *Engine) SubmitText(correlationID, text string) {
	e.events <- textEvent{id: correlationID, text: text}
}

// SelectChoice delivers a choice prompt response for the given correlation ID.
func (e *Engine) SelectChoice(correlationID string, index int) {
	e.events <- choiceEvent{id: correlationID, index: index}
}

func (e *Engine) handle(ctx context.Context, ev event) {
	switch ev := ev.(type) {
	case triggerEvent:
		e.handleTrigger(ctx)
	case identityEvent:
		e.handleIdentity(ev)
	case textEvent:
		e.handleText(ev)
	case choiceEvent:
		e.handleChoice(ctx, ev)
	case chatResultEvent:
		e.handleChatResult(ev)
	case ticketResultEvent:
		e.handleTicketResult(ev)
	}
}

// handleTrigger fetches the device snapshot off the loop; the session is
// created when the identity event arrives.
func (e *Engine) handleTrigger(ctx context.Context) {
	e.logger.Info("help button pressed")
	go func() {
		ident, err := e.identity.Snapshot(ctx)
		e.post(ctx, identityEvent{ident: ident, err: err})
	}()
}

func (e *Engine) handleIdentity(ev identityEvent) {
	if ev.err != nil {
		e.logger.Error("device identity unavailable", "error", ev.err)
		e.showMessage("Error", "Unable to start a help request.", 10*time.Second)
		return
	}

	sess := &session{
		Session: model.Session{
			ID:         uuid.New().String(),
			Device:     ev.ident,
			AfterHours: hours.IsAfterHours(e.clock(), e.window),
		},
		state:   StateAwaitingEmail,
		pending: promptEmail,
	}
	e.sessions[sess.ID] = sess

	e.logger.Info("help request started",
		"session", sess.ID,
		"room", sess.Device.DisplayName,
		"after_hours", sess.AfterHours,
	)
	e.promptEmail(sess)
}

func (e *Engine) handleText(ev textEvent) {
	sess, ok := e.sessions[ev.id]
	if !ok || sess.state != StateAwaitingEmail || sess.pending != promptEmail {
		e.logger.Debug("dropping unmatched text response", "correlation_id", ev.id)
		return
	}

	sess.state = StateValidatingEmail
	if !email.IsValid(ev.text) {
		// Back to the email edge via the retry-ack prompt. Unbounded by
		// design; the panel must always offer a recovery path.
		sess.state = StateAwaitingEmail
		sess.pending = promptRetryAck
		e.showChoice(sess, emailErrorTitle, emailErrorText, []ui.Choice{{Label: "OK"}})
		return
	}

	sess.UserEmail = ev.text
	sess.state = StateAwaitingConfirmation
	sess.pending = promptConfirm
	e.logger.Info("email address entered", "session", sess.ID, "email", sess.UserEmail)

	if sess.AfterHours {
		e.showChoice(sess, afterHoursTitle, afterHoursText,
			[]ui.Choice{{Label: "Submit Ticket"}, {Label: "Cancel"}})
	} else {
		e.showChoice(sess, confirmTitle, confirmText,
			[]ui.Choice{{Label: "Report the issue"}, {Label: "Cancel"}})
	}
}

func (e *Engine) handleChoice(ctx context.Context, ev choiceEvent) {
	sess, ok := e.sessions[ev.id]
	if !ok {
		e.logger.Debug("dropping unmatched choice response", "correlation_id", ev.id)
		return
	}

	switch sess.pending {
	case promptRetryAck:
		sess.pending = promptEmail
		e.promptEmail(sess)

	case promptConfirm:
		switch ev.index {
		case choiceConfirm:
			sess.state = StateDispatching
			sess.pending = promptNone
			e.dispatchSession(ctx, sess)
		case choiceCancel:
			e.logger.Info("operation canceled by user", "session", sess.ID)
			e.finish(sess)
		}

	default:
		e.logger.Debug("dropping choice response with no pending prompt", "correlation_id", ev.id)
	}
}

// dispatchSession fans out to the notification channels. Chat is attempted
// only during business hours and only ever logged; the ticket outcome drives
// the terminal message. Dispatch runs to completion even if the engine is
// shutting down, so the goroutines get a context detached from cancelation.
func (e *Engine) dispatchSession(ctx context.Context, sess *session) {
	s := sess.Session
	dctx := context.WithoutCancel(ctx)

	if !s.AfterHours {
		go func() {
			e.post(ctx, chatResultEvent{id: s.ID, outcome: e.dispatcher.SendChatNotification(dctx, s)})
		}()
	}
	go func() {
		e.post(ctx, ticketResultEvent{id: s.ID, outcome: e.dispatcher.CreateTicket(dctx, s)})
	}()
}

func (e *Engine) handleChatResult(ev chatResultEvent) {
	if ev.outcome.Success {
		e.logger.Info("chat notification sent", "session", ev.id)
		return
	}
	// Best-effort channel: failure is a log record, never a user message.
	e.logger.Warn("chat notification failed", "session", ev.id, "error", ev.outcome.Error)
}

func (e *Engine) handleTicketResult(ev ticketResultEvent) {
	sess, ok := e.sessions[ev.id]
	if !ok || sess.state != StateDispatching {
		e.logger.Debug("dropping unmatched ticket result", "correlation_id", ev.id)
		return
	}

	if ev.outcome.Success {
		text := "A technician has been requested. ServiceNow ticket created: " + ev.outcome.Reference
		if sess.AfterHours {
			// Follow-up is deferred to the next business day.
			text = "ServiceNow ticket created: " + ev.outcome.Reference
		}
		e.logger.Info("ticket created", "session", sess.ID, "number", ev.outcome.Reference)
		e.showMessage("Success", text, 0)
	} else {
		e.showMessage("Error", ev.outcome.Error, 10*time.Second)
	}
	e.finish(sess)
}

func (e *Engine) finish(sess *session) {
	sess.state = StateDone
	delete(e.sessions, sess.ID)
	e.logger.Debug("session finished", "session", sess.ID)
}

func (e *Engine) promptEmail(sess *session) {
	if err := e.prompter.ShowTextInput(sess.ID, emailPromptTitle, emailPromptText); err != nil {
		e.logger.Error("email prompt failed", "session", sess.ID, "error", err)
	}
}

func (e *Engine) showChoice(sess *session, title, text string, choices []ui.Choice) {
	if err := e.prompter.ShowChoice(sess.ID, title, text, choices); err != nil {
		e.logger.Error("choice prompt failed", "session", sess.ID, "error", err)
	}
}

func (e *Engine) showMessage(title, text string, duration time.Duration) {
	if err := e.prompter.ShowMessage(title, text, duration); err != nil {
		e.logger.Error("message display failed", "error", err)
	}
}

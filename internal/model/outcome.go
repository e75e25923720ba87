package model

// Channel identifies one of the two notification targets.
type Channel string

const (
	ChannelChat   Channel = "chat"
	ChannelTicket Channel = "ticket"
)

// NotificationOutcome is the result of a single dispatch attempt.
type NotificationOutcome struct {
	Channel Channel
	Success bool
	// Reference is the ticket number on a successful ticket dispatch.
	Reference string
	// Error holds the user-displayable failure detail when Success is false.
	Error string
}

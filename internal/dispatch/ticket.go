package dispatch

import (
	"fmt"

	"github.com/jshacar-hms/requesthelp/internal/model"
)

// TicketRequest is the ServiceNow incident payload. Built deterministically
// from a Session and consumed within a single CreateTicket call; it has no
// lifecycle of its own.
type TicketRequest struct {
	CallerID         string `json:"caller_id"`
	ServiceOffering  string `json:"u_service_offering"`
	Category         string `json:"category"`
	ContactType      string `json:"contact_type"`
	AssignmentGroup  string `json:"assignment_group"`
	Impact           string `json:"impact"`
	Urgency          string `json:"urgency"`
	ShortDescription string `json:"short_description"`
	Description      string `json:"description"`
}

// NewTicketRequest derives the incident fields from the session.
func NewTicketRequest(s model.Session) TicketRequest {
	return TicketRequest{
		CallerID:         s.UserEmail,
		ServiceOffering:  "In-Room AV Technology",
		Category:         "Troubleshoot",
		ContactType:      "User self-service",
		AssignmentGroup:  "SN All Media",
		Impact:           "2",
		Urgency:          "2",
		ShortDescription: fmt.Sprintf("Issue in %s reported by %s", s.Device.DisplayName, s.UserEmail),
		Description: fmt.Sprintf("Customer - %s\nRoom Name - %s\nIP Address - %s\nSoftware - %s\nDevice Serial - %s",
			s.UserEmail, s.Device.DisplayName, s.Device.IPAddress, s.Device.SoftwareVersion, s.Device.SerialNumber),
	}
}

package model

// DeviceIdentity is the read-only snapshot of the room device the service
// fronts. Fetched once per help request, never refreshed mid-session.
type DeviceIdentity struct {
	DisplayName     string
	SerialNumber    string
	IPAddress       string
	SoftwareVersion string
}

// Session is the in-memory record of one help request, from panel press to
// terminal state. Each trigger creates a fresh Session; nothing is shared
// between concurrent requests.
type Session struct {
	// ID correlates every prompt and response belonging to this request.
	ID string

	Device DeviceIdentity

	// AfterHours is computed once, at trigger time, and never recomputed.
	AfterHours bool

	// UserEmail is set only after the address passes validation.
	UserEmail string
}

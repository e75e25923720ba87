// Package device is the boundary to the room device itself: reading its
// identity attributes and driving its on-screen prompts over HTTP.
package device

import (
	"context"

	"github.com/jshacar-hms/requesthelp/internal/model"
)

// IdentitySource provides the read-only device snapshot taken at the start
// of each help request.
type IdentitySource interface {
	Snapshot(ctx context.Context) (model.DeviceIdentity, error)
}

// StaticIdentity is an IdentitySource with fixed values, used by the console
// front end and by tests.
type StaticIdentity struct {
	Identity model.DeviceIdentity
}

func (s StaticIdentity) Snapshot(ctx context.Context) (model.DeviceIdentity, error) {
	return s.Identity, nil
}

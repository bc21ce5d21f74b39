package ports

import (
	"context"

	"cozify-client/internal/domain/model"
)

// HubAPI is the hub endpoint surface. Requests route either directly to the
// hub's LAN address or through the cloud relay according to the route's
// Remote flag. Non-success responses surface as *model.APIError; a zero
// status code marks a connection-level failure.
type HubAPI interface {
	// HubInfo queries a hub's identity over its unauthenticated local
	// endpoint. Used during discovery, before any token exists.
	HubInfo(ctx context.Context, host string) (*model.HubInfo, error)
	// TZ fetches the hub timezone. The cheapest authenticated call, used as
	// the ping probe.
	TZ(ctx context.Context, route model.Route) (string, error)
	// Devices fetches the full live device snapshot.
	Devices(ctx context.Context, route model.Route) (model.DeviceMap, error)
	// CommandState pushes a partial state patch to one device.
	CommandState(ctx context.Context, route model.Route, deviceID string, state model.DeviceState) error
	// CommandOn turns one device on.
	CommandOn(ctx context.Context, route model.Route, deviceID string) error
	// CommandOff turns one device off.
	CommandOff(ctx context.Context, route model.Route, deviceID string) error
}

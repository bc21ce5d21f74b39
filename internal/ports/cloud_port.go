package ports

import "context"

// CloudAPI is the vendor cloud relay endpoint surface. Every call maps 1:1
// to one HTTP request; non-success responses surface as *model.APIError.
type CloudAPI interface {
	// RequestLogin asks the cloud to email a one-time passcode.
	RequestLogin(ctx context.Context, email string) error
	// EmailLogin exchanges email plus passcode for an opaque remote token.
	EmailLogin(ctx context.Context, email, otp string) (string, error)
	// LANIPs lists the LAN addresses of hubs registered to the caller's
	// network. Validity depends on the request's origin ip matching the
	// hub's registered network.
	LANIPs(ctx context.Context) ([]string, error)
	// HubKeys returns the map of hub id to hub token authorized for the
	// account behind the remote token.
	HubKeys(ctx context.Context, remoteToken string) (map[string]string, error)
	// RefreshSession exchanges a still-valid remote token for a renewed one.
	RefreshSession(ctx context.Context, remoteToken string) (string, error)
}

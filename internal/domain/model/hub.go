package model

// HubRecord is the persisted per-hub state. Records are keyed by the stable
// vendor-assigned hub id; the human-readable name is only a lookup alias.
type HubRecord struct {
	HubID      string
	Name       string
	Host       string // empty when the hub is only known remotely
	Token      string
	Remote     bool // traffic routed through the cloud relay
	AutoRemote bool // remote flag auto-managed on connectivity failure
}

// HubInfo is the identity a hub reports about itself on its unauthenticated
// info endpoint.
type HubInfo struct {
	HubID   string `json:"hubId"`
	Name    string `json:"name"`
	Version string `json:"version,omitempty"`
}

// Route carries everything needed to reach one hub for a single request.
// It is built once by the hub session resolver before any device or command
// operation and not mutated afterwards.
type Route struct {
	HubID      string
	Host       string
	HubToken   string
	CloudToken string
	Remote     bool
	AutoRemote bool
}

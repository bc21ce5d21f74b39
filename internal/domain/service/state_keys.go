package service

// Persisted state layout. One Cloud section, one Hubs section holding the
// default-hub pointer, and one Hubs.<hubId> section per known hub.
const (
	sectionCloud     = "Cloud"
	sectionHubs      = "Hubs"
	hubSectionPrefix = "Hubs."

	keyEmail       = "email"
	keyRemoteToken = "remotetoken"

	keyDefault    = "default"
	keyHubName    = "hubname"
	keyHost       = "host"
	keyHubToken   = "hubtoken"
	keyRemote     = "remote"
	keyAutoRemote = "autoremote"
)

func hubSection(hubID string) string {
	return hubSectionPrefix + hubID
}

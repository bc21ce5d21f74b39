package service

import (
	"cozify-client/internal/domain/model"
)

// requestParams is the caller-supplied partial parameter set for one
// operation. Anything left unset is filled from persisted state by Resolve.
type requestParams struct {
	hubID      string
	hubName    string
	host       *string
	hubToken   *string
	cloudToken *string
	remote     *bool
	autoRemote *bool
}

// RequestOption overrides one resolved route parameter for a single call.
type RequestOption func(*requestParams)

// WithHubID targets a hub by id. Takes precedence over WithHubName and the
// default hub.
func WithHubID(hubID string) RequestOption {
	return func(p *requestParams) { p.hubID = hubID }
}

// WithHubName targets a hub by its human-readable name. Takes precedence
// over the default hub.
func WithHubName(name string) RequestOption {
	return func(p *requestParams) { p.hubName = name }
}

// WithHost overrides the hub's LAN address.
func WithHost(host string) RequestOption {
	return func(p *requestParams) { p.host = &host }
}

// WithHubToken overrides the stored hub token.
func WithHubToken(token string) RequestOption {
	return func(p *requestParams) { p.hubToken = &token }
}

// WithCloudToken overrides the stored remote token used for relay routing.
func WithCloudToken(token string) RequestOption {
	return func(p *requestParams) { p.cloudToken = &token }
}

// WithRemote forces the request through (or away from) the cloud relay.
func WithRemote(remote bool) RequestOption {
	return func(p *requestParams) { p.remote = &remote }
}

// WithAutoRemote overrides the auto-managed remote fallback for this call.
func WithAutoRemote(auto bool) RequestOption {
	return func(p *requestParams) { p.autoRemote = &auto }
}

// Resolve builds the immutable route for one request. Hub precedence is
// explicit id, then explicit name, then the default hub. Every field not
// explicitly supplied is filled from persisted state. Resolution is a
// precondition for all device and command operations.
func (s *HubSession) Resolve(opts ...RequestOption) (model.Route, error) {
	var p requestParams
	for _, opt := range opts {
		opt(&p)
	}

	hubID := p.hubID
	if hubID == "" && p.hubName != "" {
		id, err := s.HubID(p.hubName)
		if err != nil {
			return model.Route{}, err
		}
		hubID = id
	}
	if hubID == "" {
		id, err := s.Default()
		if err != nil {
			return model.Route{}, err
		}
		hubID = id
	}

	route := model.Route{HubID: hubID}

	if p.remote != nil {
		route.Remote = *p.remote
	} else {
		remote, err := s.Remote(hubID)
		if err != nil {
			return model.Route{}, err
		}
		route.Remote = remote
	}

	if p.autoRemote != nil {
		route.AutoRemote = *p.autoRemote
	} else {
		auto, err := s.AutoRemote(hubID)
		if err != nil {
			return model.Route{}, err
		}
		route.AutoRemote = auto
	}

	if p.hubToken != nil {
		route.HubToken = *p.hubToken
	} else {
		token, err := s.Token(hubID)
		if err != nil {
			return model.Route{}, err
		}
		route.HubToken = token
	}

	if p.cloudToken != nil {
		route.CloudToken = *p.cloudToken
	} else {
		// May be empty when never authenticated; only relay routing needs it.
		token, _ := s.state.Get(sectionCloud, keyRemoteToken)
		route.CloudToken = token
	}

	if p.host != nil {
		route.Host = *p.host
	} else {
		// May be empty when the hub is only known remotely.
		host, _ := s.state.Get(hubSection(hubID), keyHost)
		route.Host = host
	}

	return route, nil
}

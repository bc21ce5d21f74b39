package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/rs/zerolog"

	"cozify-client/internal/domain/model"
	"cozify-client/internal/ports"
)

// Reauthenticator mints a fresh hub token when a ping is rejected. The
// session coordinator implements it; hub and cloud managers never call each
// other directly.
type Reauthenticator interface {
	Reauthenticate(ctx context.Context) (bool, error)
}

// HubSession owns per-hub persisted state: tokens, reachability flags and
// the default-hub pointer. All reads and writes go through the injected
// state repository; every mutation is committed immediately.
type HubSession struct {
	api    ports.HubAPI
	state  ports.StateRepository
	reauth Reauthenticator
	log    zerolog.Logger
}

// NewHubSession creates a hub session manager. The reauthenticator is
// installed later by the coordinator.
func NewHubSession(api ports.HubAPI, state ports.StateRepository, log zerolog.Logger) *HubSession {
	return &HubSession{
		api:   api,
		state: state,
		log:   log.With().Str("component", "hub").Logger(),
	}
}

func (s *HubSession) setReauthenticator(r Reauthenticator) {
	s.reauth = r
}

// Default returns the id of the default hub. ErrDefaultHubUnset when no hub
// has ever been discovered.
func (s *HubSession) Default() (string, error) {
	id, ok := s.state.Get(sectionHubs, keyDefault)
	if !ok || id == "" {
		return "", model.ErrDefaultHubUnset
	}
	return id, nil
}

// SetDefault points the default-hub pointer at the given hub id.
func (s *HubSession) SetDefault(hubID string) error {
	if !s.Exists(hubID) {
		return fmt.Errorf("%w: %s", model.ErrHubNotFound, hubID)
	}
	s.state.Set(sectionHubs, keyDefault, hubID)
	return s.state.Commit()
}

// Exists reports whether a hub section is present in state.
func (s *HubSession) Exists(hubID string) bool {
	for _, section := range s.state.Sections(hubSectionPrefix) {
		if section == hubSection(hubID) {
			return true
		}
	}
	return false
}

// HubID looks a hub id up by the hub's human-readable name, scanning all
// persisted hub sections.
func (s *HubSession) HubID(name string) (string, error) {
	for _, section := range s.state.Sections(hubSectionPrefix) {
		if stored, ok := s.state.Get(section, keyHubName); ok && stored == name {
			return section[len(hubSectionPrefix):], nil
		}
	}
	return "", fmt.Errorf("%w: %s", model.ErrHubNotFound, name)
}

// Name returns the stored human-readable name of a hub.
func (s *HubSession) Name(hubID string) (string, error) {
	return s.getAttr(hubID, keyHubName)
}

// Host returns the stored LAN address of a hub. Possibly empty when the hub
// was only ever reached remotely, and possibly stale while the hub is
// remote.
func (s *HubSession) Host(hubID string) (string, error) {
	return s.getAttr(hubID, keyHost)
}

// Token returns the stored hub token.
func (s *HubSession) Token(hubID string) (string, error) {
	return s.getAttr(hubID, keyHubToken)
}

// SetToken stores a new hub token.
func (s *HubSession) SetToken(hubID, token string) error {
	return s.setAttr(hubID, keyHubToken, token)
}

// Remote reports whether traffic to the hub is routed through the cloud
// relay. Defaults to false, persisted on first read.
func (s *HubSession) Remote(hubID string) (bool, error) {
	return s.getBoolAttr(hubID, keyRemote, false)
}

// SetRemote flips the relay-routing flag and persists it.
func (s *HubSession) SetRemote(hubID string, remote bool) error {
	return s.setAttr(hubID, keyRemote, strconv.FormatBool(remote))
}

// AutoRemote reports whether the remote flag is auto-managed on failure.
// Defaults to true, persisted on first read.
func (s *HubSession) AutoRemote(hubID string) (bool, error) {
	return s.getBoolAttr(hubID, keyAutoRemote, true)
}

// SetAutoRemote flips the auto-management flag and persists it.
func (s *HubSession) SetAutoRemote(hubID string, auto bool) error {
	return s.setAttr(hubID, keyAutoRemote, strconv.FormatBool(auto))
}

// Record returns the full persisted record of a hub.
func (s *HubSession) Record(hubID string) (model.HubRecord, error) {
	name, err := s.Name(hubID)
	if err != nil {
		return model.HubRecord{}, err
	}
	token, _ := s.state.Get(hubSection(hubID), keyHubToken)
	host, _ := s.state.Get(hubSection(hubID), keyHost)
	remote, err := s.Remote(hubID)
	if err != nil {
		return model.HubRecord{}, err
	}
	auto, err := s.AutoRemote(hubID)
	if err != nil {
		return model.HubRecord{}, err
	}
	return model.HubRecord{
		HubID:      hubID,
		Name:       name,
		Host:       host,
		Token:      token,
		Remote:     remote,
		AutoRemote: auto,
	}, nil
}

// TZ fetches the timezone of the resolved hub, e.g. "Europe/Helsinki".
func (s *HubSession) TZ(ctx context.Context, opts ...RequestOption) (string, error) {
	route, err := s.Resolve(opts...)
	if err != nil {
		return "", err
	}
	return s.api.TZ(ctx, route)
}

// Ping validates the working combination of host, token and remote flag with
// a cheap timezone call.
//
// A 401/403 rejection with autorefresh enabled delegates to the coordinator
// for a transparent re-authentication and reports its outcome. A
// 503/504/connection-level failure with autoremote enabled flips the hub to
// relay routing and persists it; the probe itself is not retried and false
// is returned so the caller reissues. Every other failure propagates.
func (s *HubSession) Ping(ctx context.Context, autorefresh bool, opts ...RequestOption) (bool, error) {
	route, err := s.Resolve(opts...)
	if err != nil {
		return false, err
	}

	// No local address known: this hub can only be reached via the relay.
	if !route.Remote && route.AutoRemote && route.Host == "" {
		if err := s.SetRemote(route.HubID, true); err != nil {
			return false, err
		}
		route.Remote = true
		s.log.Debug().Str("hub_id", route.HubID).Msg("no local host known, flipped hub to remote")
	}

	_, err = s.api.TZ(ctx, route)
	if err == nil {
		return true, nil
	}

	var apiErr *model.APIError
	if !errors.As(err, &apiErr) {
		return false, err
	}
	switch apiErr.StatusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		if autorefresh && s.reauth != nil {
			s.log.Warn().Str("hub_id", route.HubID).Msg("hub token expired, attempting renewal")
			ok, rerr := s.reauth.Reauthenticate(ctx)
			if rerr == nil && ok {
				return true, nil
			}
			if rerr != nil {
				s.log.Warn().Err(rerr).Msg("hub token renewal failed")
			}
		}
		s.log.Warn().Err(apiErr).Str("hub_id", route.HubID).Msg("hub ping rejected")
		return false, nil
	case http.StatusServiceUnavailable, http.StatusGatewayTimeout, 0:
		if route.AutoRemote {
			if serr := s.SetRemote(route.HubID, true); serr != nil {
				return false, serr
			}
			s.log.Warn().Err(apiErr).Str("hub_id", route.HubID).
				Msg("hub unreachable, flipped to remote routing")
		} else {
			s.log.Warn().Err(apiErr).Str("hub_id", route.HubID).Msg("hub unreachable")
		}
		return false, nil
	default:
		// Unrecognized failure, raise and let it burn.
		return false, err
	}
}

// storeRecord persists a discovered hub. Called by the cloud session during
// discovery via the coordinator.
func (s *HubSession) storeRecord(info *model.HubInfo, host, token string) error {
	section := hubSection(info.HubID)
	s.state.Set(section, keyHubName, info.Name)
	s.state.Set(section, keyHost, host)
	s.state.Set(section, keyHubToken, token)
	if _, ok := s.state.Get(sectionHubs, keyDefault); !ok {
		s.state.Set(sectionHubs, keyDefault, info.HubID)
	}
	return s.state.Commit()
}

func (s *HubSession) getAttr(hubID, key string) (string, error) {
	section := hubSection(hubID)
	if !s.Exists(hubID) {
		return "", fmt.Errorf("%w: %s", model.ErrHubNotFound, hubID)
	}
	v, ok := s.state.Get(section, key)
	if !ok {
		return "", fmt.Errorf("cozify: attribute %s not set for hub %s", key, hubID)
	}
	return v, nil
}

func (s *HubSession) setAttr(hubID, key, value string) error {
	if !s.Exists(hubID) {
		return fmt.Errorf("%w: %s", model.ErrHubNotFound, hubID)
	}
	s.state.Set(hubSection(hubID), key, value)
	return s.state.Commit()
}

// getBoolAttr reads a boolean attribute, storing and committing the default
// on first access.
func (s *HubSession) getBoolAttr(hubID, key string, def bool) (bool, error) {
	section := hubSection(hubID)
	if !s.Exists(hubID) {
		return false, fmt.Errorf("%w: %s", model.ErrHubNotFound, hubID)
	}
	v, ok := s.state.Get(section, key)
	if !ok {
		s.state.Set(section, key, strconv.FormatBool(def))
		if err := s.state.Commit(); err != nil {
			return false, err
		}
		return def, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("cozify: attribute %s of hub %s is not a boolean: %q", key, hubID, v)
	}
	return b, nil
}

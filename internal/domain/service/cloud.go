package service

import (
	"context"
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"cozify-client/internal/domain/model"
	"cozify-client/internal/ports"
)

// CloudSession owns the email, one-time-passcode and remote-token lifecycle
// against the cloud relay. Auth flow: email -> OTP -> remote token ->
// hub discovery (lan ip + hub keys -> per-hub token).
type CloudSession struct {
	api    ports.CloudAPI
	hubAPI ports.HubAPI
	state  ports.StateRepository
	prompt ports.Prompter
	log    zerolog.Logger
}

// NewCloudSession creates a cloud session manager.
func NewCloudSession(api ports.CloudAPI, hubAPI ports.HubAPI, state ports.StateRepository, prompt ports.Prompter, log zerolog.Logger) *CloudSession {
	return &CloudSession{
		api:    api,
		hubAPI: hubAPI,
		state:  state,
		prompt: prompt,
		log:    log.With().Str("component", "cloud").Logger(),
	}
}

// Email returns the account email, prompting for it exactly once and
// persisting it before anything else happens.
func (s *CloudSession) Email(ctx context.Context) (string, error) {
	if email, ok := s.state.Get(sectionCloud, keyEmail); ok && email != "" {
		return email, nil
	}
	email, err := s.prompt.Email(ctx)
	if err != nil {
		return "", err
	}
	s.state.Set(sectionCloud, keyEmail, email)
	if err := s.state.Commit(); err != nil {
		return "", err
	}
	return email, nil
}

// Token returns the stored remote token, if any.
func (s *CloudSession) Token() (string, bool) {
	token, ok := s.state.Get(sectionCloud, keyRemoteToken)
	return token, ok && token != ""
}

// EstablishRemoteToken runs the email -> OTP -> remote token exchange and
// persists the result. A rejected email or passcode poisons all later
// attempts, so the cloud section is reset before the error is surfaced.
func (s *CloudSession) EstablishRemoteToken(ctx context.Context) error {
	email, err := s.Email(ctx)
	if err != nil {
		return err
	}

	if err := s.api.RequestLogin(ctx, email); err != nil {
		var apiErr *model.APIError
		if errors.As(err, &apiErr) {
			// A bogus email shafts all future attempts, better to reset.
			if rerr := s.ResetState(); rerr != nil {
				s.log.Error().Err(rerr).Msg("state reset failed")
			}
		}
		return err
	}

	// Passcodes have a very short lifetime and are never stored.
	otp, err := s.prompt.OTP(ctx)
	if err != nil {
		return err
	}
	if otp == "" {
		s.log.Error().Msg("one-time passcode unavailable, possibly running non-interactively")
		return model.ErrAuthentication
	}

	token, err := s.api.EmailLogin(ctx, email, otp)
	if err != nil {
		var apiErr *model.APIError
		if errors.As(err, &apiErr) {
			s.log.Error().Err(err).Msg("one-time passcode authentication failed")
			if rerr := s.ResetState(); rerr != nil {
				s.log.Error().Err(rerr).Msg("state reset failed")
			}
		}
		return err
	}

	s.state.Set(sectionCloud, keyRemoteToken, token)
	return s.state.Commit()
}

// DiscoverHubs fetches the account's LAN addresses and authorized hub keys,
// verifies each reachable hub's identity against the key map and persists a
// record for it via the hub session. A hub not linked to the account is a
// soft failure: the cloud section is wiped and false returned without error.
func (s *CloudSession) DiscoverHubs(ctx context.Context, hubs *HubSession) (bool, error) {
	token, ok := s.Token()
	if !ok {
		return false, model.ErrNotAuthenticated
	}

	ips, err := s.api.LANIPs(ctx)
	if err != nil {
		return false, err
	}
	if len(ips) == 0 {
		return false, model.ErrNoLANIP
	}

	keys, err := s.api.HubKeys(ctx, token)
	if err != nil {
		return false, err
	}

	for _, ip := range ips {
		info, err := s.hubAPI.HubInfo(ctx, ip)
		if err != nil {
			return false, err
		}
		hubToken, authorized := keys[info.HubID]
		if !authorized {
			email, _ := s.state.Get(sectionCloud, keyEmail)
			s.log.Error().Str("hub", info.Name).Str("email", email).
				Msg("hub is not linked to the given account")
			if rerr := s.ResetState(); rerr != nil {
				return false, rerr
			}
			return false, nil
		}
		if err := hubs.storeRecord(info, ip, hubToken); err != nil {
			return false, err
		}
		s.log.Info().Str("hub", info.Name).Str("hub_id", info.HubID).Msg("hub discovered")
	}
	return true, nil
}

// ResetState clears the cloud account section to allow a full retry of
// authentication. Hub records are untouched.
func (s *CloudSession) ResetState() error {
	s.state.DeleteSection(sectionCloud)
	return s.state.Commit()
}

// Ping checks the stored remote token's validity with a cheap call. A 401
// means not authenticated and returns false; every other non-success status
// propagates.
func (s *CloudSession) Ping(ctx context.Context) (bool, error) {
	token, ok := s.Token()
	if !ok {
		return false, nil
	}
	// TODO(hub-keys-probe): find a cheaper endpoint than the full key map.
	if _, err := s.api.HubKeys(ctx, token); err != nil {
		if model.IsStatus(err, http.StatusUnauthorized) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// Refresh exchanges the current remote token for a renewed one and persists
// it. A 401 means the token is beyond refresh and returns false; the caller
// must fully re-authenticate. Every other failure propagates.
func (s *CloudSession) Refresh(ctx context.Context) (bool, error) {
	token, ok := s.Token()
	if !ok {
		return false, nil
	}
	renewed, err := s.api.RefreshSession(ctx, token)
	if err != nil {
		if model.IsStatus(err, http.StatusUnauthorized) {
			// Too late, the token is already dead.
			return false, nil
		}
		return false, err
	}
	s.state.Set(sectionCloud, keyRemoteToken, renewed)
	if err := s.state.Commit(); err != nil {
		return false, err
	}
	return true, nil
}

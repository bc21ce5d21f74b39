package service

import (
	"context"

	"github.com/rs/zerolog"
)

// AuthOptions control how much of the cached session state is trusted.
// A true flag means trust-but-verify: the cached token is probed with a
// cheap liveness call instead of taken at face value, and kept when the
// probe passes. A false flag forces a full re-validation of that tier.
// Missing tokens always force re-authentication regardless of the flags.
type AuthOptions struct {
	TrustCloud bool
	TrustHub   bool
}

// DefaultAuthOptions trusts both tiers.
func DefaultAuthOptions() AuthOptions {
	return AuthOptions{TrustCloud: true, TrustHub: true}
}

// Coordinator owns both session managers and the reauthentication policy.
// The managers never call each other: hub ping delegates token renewal here,
// and hub discovery during cloud authentication runs through here, so the
// ping -> refresh -> authenticate -> discovery chain has a single owner.
type Coordinator struct {
	cloud *CloudSession
	hubs  *HubSession
	log   zerolog.Logger
}

// NewCoordinator wires the managers together and installs itself as the hub
// session's reauthenticator.
func NewCoordinator(cloud *CloudSession, hubs *HubSession, log zerolog.Logger) *Coordinator {
	c := &Coordinator{
		cloud: cloud,
		hubs:  hubs,
		log:   log.With().Str("component", "coordinator").Logger(),
	}
	hubs.setReauthenticator(c)
	return c
}

// Authenticate orchestrates the full chain: ensure an email is known, mint a
// remote token when the current one is missing or fails its probe, then
// discover hubs and mint hub tokens when those are missing or fail theirs.
// Returns false without error on the soft failure of a hub not linked to
// the account.
func (c *Coordinator) Authenticate(ctx context.Context, opts AuthOptions) (bool, error) {
	if _, err := c.cloud.Email(ctx); err != nil {
		return false, err
	}

	needRemote, err := c.needRemoteToken(ctx, opts.TrustCloud)
	if err != nil {
		return false, err
	}
	if needRemote {
		if err := c.cloud.EstablishRemoteToken(ctx); err != nil {
			return false, err
		}
	}

	needHub, err := c.needHubToken(ctx, opts.TrustHub)
	if err != nil {
		return false, err
	}
	if needHub {
		return c.cloud.DiscoverHubs(ctx, c.hubs)
	}
	return true, nil
}

// Reauthenticate is the hub ping recovery path: the cached hub token was
// rejected, so re-run authentication without trusting the hub tier. One
// implicit retry; if this fails the ping reports failure.
func (c *Coordinator) Reauthenticate(ctx context.Context) (bool, error) {
	return c.Authenticate(ctx, AuthOptions{TrustCloud: true, TrustHub: false})
}

func (c *Coordinator) needRemoteToken(ctx context.Context, trust bool) (bool, error) {
	if !trust {
		return true, nil
	}
	if _, ok := c.cloud.Token(); !ok {
		return true, nil
	}
	ok, err := c.cloud.Ping(ctx)
	if err != nil {
		return false, err
	}
	return !ok, nil
}

func (c *Coordinator) needHubToken(ctx context.Context, trust bool) (bool, error) {
	if !trust {
		return true, nil
	}
	hubID, err := c.hubs.Default()
	if err != nil {
		return true, nil
	}
	if _, err := c.hubs.Token(hubID); err != nil {
		return true, nil
	}
	// Probe without autorefresh: renewal is exactly what a failed probe
	// triggers one level up.
	ok, err := c.hubs.Ping(ctx, false)
	if err != nil {
		return false, err
	}
	return !ok, nil
}

// Package cozify is a client for the vendor's two-tier smart-home HTTP API:
// the cloud relay for account authentication and remote access, and the
// local hub for device discovery and control. The facade re-exports the core
// types and wires the default adapters; the pieces live under internal and
// can be composed differently through the service constructors.
package cozify

import (
	"context"

	"github.com/rs/zerolog"

	"cozify-client/internal/adapters/input/prompt"
	"cozify-client/internal/adapters/output/cloudapi"
	"cozify-client/internal/adapters/output/hubapi"
	"cozify-client/internal/adapters/output/statestore"
	"cozify-client/internal/domain/model"
	"cozify-client/internal/domain/service"
	"cozify-client/internal/ports"
)

// Re-export core domain types for external use.
type (
	// Capability is a device feature tag.
	Capability = model.Capability
	// CapabilitySet is the set of tags a device declares.
	CapabilitySet = model.CapabilitySet
	// Device is one entry of a hub device snapshot.
	Device = model.Device
	// DeviceState holds a device's mutable field-value pairs.
	DeviceState = model.DeviceState
	// DeviceMap is a device snapshot keyed by device id.
	DeviceMap = model.DeviceMap
	// Filter selects devices by capability tags.
	Filter = model.Filter
	// Route is the resolved per-request hub addressing.
	Route = model.Route
	// HubRecord is the persisted per-hub state.
	HubRecord = model.HubRecord
	// APIError is a non-success endpoint response.
	APIError = model.APIError
	// RangeError is an out-of-bounds command parameter.
	RangeError = model.RangeError
	// AuthOptions control how much cached session state is trusted.
	AuthOptions = service.AuthOptions
	// RequestOption overrides one resolved route parameter.
	RequestOption = service.RequestOption
	// StateRepository is the persisted key-value session store.
	StateRepository = ports.StateRepository
	// Prompter solicits credentials from the user.
	Prompter = ports.Prompter
)

// Commonly used capability tags; the full set lives in the internal model.
const (
	CapabilityOnOff       = model.CapabilityOnOff
	CapabilityBrightness  = model.CapabilityBrightness
	CapabilityColorHS     = model.CapabilityColorHS
	CapabilityColorTemp   = model.CapabilityColorTemp
	CapabilityTemperature = model.CapabilityTemperature
	CapabilityHumidity    = model.CapabilityHumidity
)

// Sentinel errors.
var (
	ErrAuthentication   = model.ErrAuthentication
	ErrNotAuthenticated = model.ErrNotAuthenticated
	ErrDefaultHubUnset  = model.ErrDefaultHubUnset
	ErrHubNotFound      = model.ErrHubNotFound
	ErrDeviceNotFound   = model.ErrDeviceNotFound
	ErrNotEligible      = model.ErrNotEligible
)

// Request options.
var (
	WithHubID      = service.WithHubID
	WithHubName    = service.WithHubName
	WithHost       = service.WithHost
	WithRemote     = service.WithRemote
	WithAutoRemote = service.WithAutoRemote
)

// FilterFor is shorthand for a single-capability filter.
func FilterFor(c Capability) Filter { return model.FilterFor(c) }

// Client bundles the session managers, device model and command composer
// wired against the default HTTP adapters and a state repository.
type Client struct {
	Cloud    *service.CloudSession
	Hubs     *service.HubSession
	Devices  *service.Devices
	Commands *service.Commands

	coordinator *service.Coordinator
}

// config collects New's optional pieces.
type config struct {
	state   ports.StateRepository
	prompt  ports.Prompter
	cloud   ports.CloudAPI
	hub     ports.HubAPI
	log     zerolog.Logger
	haveLog bool
}

// ClientOption configures New.
type ClientOption func(*config)

// WithStateRepository replaces the on-disk state store, e.g. with
// an in-memory one.
func WithStateRepository(s ports.StateRepository) ClientOption {
	return func(c *config) { c.state = s }
}

// WithPrompter replaces the stdin credential prompter.
func WithPrompter(p ports.Prompter) ClientOption {
	return func(c *config) { c.prompt = p }
}

// WithCloudAPI replaces the cloud relay transport.
func WithCloudAPI(api ports.CloudAPI) ClientOption {
	return func(c *config) { c.cloud = api }
}

// WithHubAPI replaces the hub transport.
func WithHubAPI(api ports.HubAPI) ClientOption {
	return func(c *config) { c.hub = api }
}

// WithLogger sets the base logger. Defaults to a disabled logger.
func WithLogger(log zerolog.Logger) ClientOption {
	return func(c *config) { c.log = log; c.haveLog = true }
}

// New creates a fully wired client persisting session state at statePath.
// statePath is ignored when WithStateRepository is given.
func New(statePath string, opts ...ClientOption) (*Client, error) {
	var cfg config
	for _, opt := range opts {
		opt(&cfg)
	}
	if !cfg.haveLog {
		cfg.log = zerolog.Nop()
	}
	if cfg.state == nil {
		repo, err := statestore.NewYAMLRepository(statePath)
		if err != nil {
			return nil, err
		}
		cfg.state = repo
	}
	if cfg.prompt == nil {
		cfg.prompt = prompt.NewStdin()
	}
	if cfg.cloud == nil {
		cfg.cloud = cloudapi.NewClient()
	}
	if cfg.hub == nil {
		cfg.hub = hubapi.NewClient()
	}

	cloud := service.NewCloudSession(cfg.cloud, cfg.hub, cfg.state, cfg.prompt, cfg.log)
	hubs := service.NewHubSession(cfg.hub, cfg.state, cfg.log)
	devices := service.NewDevices(hubs, cfg.hub, cfg.log)
	commands := service.NewCommands(hubs, devices, cfg.hub, cfg.log)

	return &Client{
		Cloud:       cloud,
		Hubs:        hubs,
		Devices:     devices,
		Commands:    commands,
		coordinator: service.NewCoordinator(cloud, hubs, cfg.log),
	}, nil
}

// Authenticate runs the full authentication chain with the given trust
// flags. See service.Coordinator.
func (c *Client) Authenticate(ctx context.Context, opts AuthOptions) (bool, error) {
	return c.coordinator.Authenticate(ctx, opts)
}

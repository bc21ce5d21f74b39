package service

import (
	"context"
	"fmt"
	"math"

	"github.com/rs/zerolog"

	"cozify-client/internal/domain/model"
	"cozify-client/internal/ports"
)

// Commands composes and dispatches device state mutations. Each operation
// establishes eligibility through the device model, builds a minimal patch
// from a cleaned copy of the current state and issues exactly one hub call.
// Nothing is retried and no local state is kept.
type Commands struct {
	hubs    *HubSession
	devices *Devices
	api     ports.HubAPI
	log     zerolog.Logger
}

// NewCommands creates the command composer.
func NewCommands(hubs *HubSession, devices *Devices, api ports.HubAPI, log zerolog.Logger) *Commands {
	return &Commands{
		hubs:    hubs,
		devices: devices,
		api:     api,
		log:     log.With().Str("component", "commands").Logger(),
	}
}

// Toggle reverses the power state of a device declaring ON_OFF.
func (c *Commands) Toggle(ctx context.Context, deviceID string, opts ...RequestOption) error {
	route, err := c.hubs.Resolve(opts...)
	if err != nil {
		return err
	}
	devs, err := c.devices.Devices(ctx, model.FilterFor(model.CapabilityOnOff), opts...)
	if err != nil {
		return err
	}
	dev, ok := devs[deviceID]
	if !ok {
		return fmt.Errorf("%w: %s", model.ErrNotEligible, deviceID)
	}
	isOn, _ := dev.State[model.StateKeyIsOn].(bool)
	patch := dev.State.Cleaned()
	patch[model.StateKeyIsOn] = !isOn
	return c.api.CommandState(ctx, route, deviceID, patch)
}

// On turns on a device declaring ON_OFF.
func (c *Commands) On(ctx context.Context, deviceID string, opts ...RequestOption) error {
	route, err := c.hubs.Resolve(opts...)
	if err != nil {
		return err
	}
	ok, err := c.devices.Eligible(ctx, deviceID, model.FilterFor(model.CapabilityOnOff), nil, nil, opts...)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: %s", model.ErrNotEligible, deviceID)
	}
	return c.api.CommandOn(ctx, route, deviceID)
}

// Off turns off a device declaring ON_OFF.
func (c *Commands) Off(ctx context.Context, deviceID string, opts ...RequestOption) error {
	route, err := c.hubs.Resolve(opts...)
	if err != nil {
		return err
	}
	ok, err := c.devices.Eligible(ctx, deviceID, model.FilterFor(model.CapabilityOnOff), nil, nil, opts...)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: %s", model.ErrNotEligible, deviceID)
	}
	return c.api.CommandOff(ctx, route, deviceID)
}

// ReplaceState pushes a stored state back out to a device, for example to
// restore a scene. Read-only fields are stripped from the patch; the input
// map is not modified.
func (c *Commands) ReplaceState(ctx context.Context, deviceID string, state model.DeviceState, opts ...RequestOption) error {
	route, err := c.hubs.Resolve(opts...)
	if err != nil {
		return err
	}
	ok, err := c.devices.Exists(ctx, deviceID, nil, nil, opts...)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: %s", model.ErrDeviceNotFound, deviceID)
	}
	patch := make(model.DeviceState, len(state))
	patch.Merge(state)
	for _, key := range model.VolatileStateKeys {
		delete(patch, key)
	}
	return c.api.CommandState(ctx, route, deviceID, patch)
}

// LightTemperature sets the color temperature of a light in Kelvin. Bounds
// are the device-reported minTemperature/maxTemperature, not fixed
// constants. transitionMsec of zero means an instant change.
func (c *Commands) LightTemperature(ctx context.Context, deviceID string, temperature float64, transitionMsec int, opts ...RequestOption) error {
	route, err := c.hubs.Resolve(opts...)
	if err != nil {
		return err
	}
	state := model.DeviceState{}
	ok, err := c.devices.Eligible(ctx, deviceID, model.FilterFor(model.CapabilityColorTemp), nil, state, opts...)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: %s", model.ErrNotEligible, deviceID)
	}
	low, okLow := state.Float(model.StateKeyMinTemperature)
	high, okHigh := state.Float(model.StateKeyMaxTemperature)
	if !okLow || !okHigh {
		return fmt.Errorf("cozify: device %s does not report temperature bounds", deviceID)
	}
	if err := model.InRange("Temperature", &temperature, low, high); err != nil {
		return err
	}
	patch := state.Cleaned()
	patch[model.StateKeyColorMode] = "ct"
	patch[model.StateKeyTemperature] = temperature
	patch[model.StateKeyTransitionMsec] = transitionMsec
	return c.api.CommandState(ctx, route, deviceID, patch)
}

// LightBrightness sets the brightness of a light, in the range [0, 1].
func (c *Commands) LightBrightness(ctx context.Context, deviceID string, brightness float64, opts ...RequestOption) error {
	if err := model.InRange("Brightness", &brightness, 0.0, 1.0); err != nil {
		return err
	}
	route, err := c.hubs.Resolve(opts...)
	if err != nil {
		return err
	}
	state := model.DeviceState{}
	ok, err := c.devices.Eligible(ctx, deviceID, model.FilterFor(model.CapabilityBrightness), nil, state, opts...)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: %s", model.ErrNotEligible, deviceID)
	}
	patch := state.Cleaned()
	patch[model.StateKeyBrightness] = brightness
	return c.api.CommandState(ctx, route, deviceID, patch)
}

// LightColor sets hue and saturation of a light. Hue is in the range
// [0, 2π], saturation in [0, 1]. Out-of-range values fail before any
// network call is made.
func (c *Commands) LightColor(ctx context.Context, deviceID string, hue, saturation float64, opts ...RequestOption) error {
	if err := model.InRange("Hue", &hue, 0.0, math.Pi*2); err != nil {
		return err
	}
	if err := model.InRange("Saturation", &saturation, 0.0, 1.0); err != nil {
		return err
	}
	route, err := c.hubs.Resolve(opts...)
	if err != nil {
		return err
	}
	state := model.DeviceState{}
	ok, err := c.devices.Eligible(ctx, deviceID, model.FilterFor(model.CapabilityColorHS), nil, state, opts...)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: %s", model.ErrNotEligible, deviceID)
	}
	patch := state.Cleaned()
	patch[model.StateKeyColorMode] = "hs"
	patch[model.StateKeyHue] = hue
	patch[model.StateKeySaturation] = saturation
	return c.api.CommandState(ctx, route, deviceID, patch)
}

package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"cozify-client/internal/domain/model"
	"cozify-client/internal/ports"
)

// Devices fetches live device snapshots from a hub and answers capability
// and reachability questions about them. Nothing is cached across calls; the
// optional devs/state arguments only scope repeated lookups to one logical
// operation.
type Devices struct {
	hubs *HubSession
	api  ports.HubAPI
	log  zerolog.Logger
}

// NewDevices creates the device model service.
func NewDevices(hubs *HubSession, api ports.HubAPI, log zerolog.Logger) *Devices {
	return &Devices{
		hubs: hubs,
		api:  api,
		log:  log.With().Str("component", "devices").Logger(),
	}
}

// Devices fetches the live snapshot of the resolved hub and applies the
// capability filter.
func (d *Devices) Devices(ctx context.Context, filter model.Filter, opts ...RequestOption) (model.DeviceMap, error) {
	route, err := d.hubs.Resolve(opts...)
	if err != nil {
		return nil, err
	}
	devs, err := d.api.Devices(ctx, route)
	if err != nil {
		return nil, err
	}
	return model.FilterDevices(devs, filter), nil
}

// Exists reports whether the device is present. devs may carry a snapshot
// already fetched by the caller; when nil one is fetched live. A non-nil
// state accumulator is updated with the device's state on a hit so repeated
// checks against the same device skip further lookups.
func (d *Devices) Exists(ctx context.Context, deviceID string, devs model.DeviceMap, state model.DeviceState, opts ...RequestOption) (bool, error) {
	if devs == nil {
		var err error
		devs, err = d.Devices(ctx, model.Filter{}, opts...)
		if err != nil {
			return false, err
		}
	}
	dev, ok := devs[deviceID]
	if !ok {
		return false, nil
	}
	if state != nil {
		state.Merge(dev.State)
		d.log.Debug().Str("device_id", deviceID).Msg("implicitly returning device state")
	}
	return true, nil
}

// Reachable reports the device's reachable state field. An absent device is
// an error, not false.
func (d *Devices) Reachable(ctx context.Context, deviceID string, devs model.DeviceMap, state model.DeviceState, opts ...RequestOption) (bool, error) {
	if devs == nil {
		var err error
		devs, err = d.Devices(ctx, model.Filter{}, opts...)
		if err != nil {
			return false, err
		}
	}
	if state == nil {
		state = model.DeviceState{}
	}
	ok, err := d.Exists(ctx, deviceID, devs, state, opts...)
	if err != nil {
		return false, err
	}
	if !ok {
		return false, fmt.Errorf("%w: %s", model.ErrDeviceNotFound, deviceID)
	}
	return state.Reachable(), nil
}

// Eligible reports whether the device exists and passes the capability
// filter. The pre-fetched snapshot, if any, still gets filtered.
func (d *Devices) Eligible(ctx context.Context, deviceID string, filter model.Filter, devs model.DeviceMap, state model.DeviceState, opts ...RequestOption) (bool, error) {
	if devs == nil {
		var err error
		devs, err = d.Devices(ctx, filter, opts...)
		if err != nil {
			return false, err
		}
	} else {
		devs = model.FilterDevices(devs, filter)
	}
	dev, ok := devs[deviceID]
	if !ok {
		return false, nil
	}
	if state != nil {
		state.Merge(dev.State)
		d.log.Debug().Str("device_id", deviceID).Msg("implicitly returning device state")
	}
	return true, nil
}

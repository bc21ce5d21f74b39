package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func snapshot() DeviceMap {
	return DeviceMap{
		"lamp": {
			ID:           "lamp",
			Name:         "Hall Lamp",
			Capabilities: NewCapabilitySet(CapabilityOnOff, CapabilityBrightness, CapabilityColorTemp),
			State:        DeviceState{"isOn": true, "reachable": true},
		},
		"strip": {
			ID:           "strip",
			Name:         "TV Strip",
			Capabilities: NewCapabilitySet(CapabilityOnOff, CapabilityBrightness, CapabilityColorHS),
			State:        DeviceState{"isOn": false, "reachable": true},
		},
		"sensor": {
			ID:           "sensor",
			Name:         "Bedroom Sensor",
			Capabilities: NewCapabilitySet(CapabilityTemperature, CapabilityHumidity),
			State:        DeviceState{"reachable": false},
		},
	}
}

func TestFilterDevices_NoFilter(t *testing.T) {
	devs := snapshot()
	assert.Len(t, FilterDevices(devs, Filter{}), 3)
}

func TestFilterDevices_Single(t *testing.T) {
	devs := FilterDevices(snapshot(), FilterFor(CapabilityColorHS))
	assert.Len(t, devs, 1)
	assert.Contains(t, devs, "strip")
}

func TestFilterDevices_AnyVsAll(t *testing.T) {
	f := Filter{Capabilities: []Capability{CapabilityBrightness, CapabilityColorTemp}}

	// OR: any intersection counts
	or := FilterDevices(snapshot(), f)
	assert.Len(t, or, 2)
	assert.Contains(t, or, "lamp")
	assert.Contains(t, or, "strip")

	// AND: full subset required
	f.MatchAll = true
	and := FilterDevices(snapshot(), f)
	assert.Len(t, and, 1)
	assert.Contains(t, and, "lamp")
}

func TestFilterDevices_AllNoMatch(t *testing.T) {
	f := Filter{
		Capabilities: []Capability{CapabilityTemperature, CapabilityOnOff},
		MatchAll:     true,
	}
	assert.Empty(t, FilterDevices(snapshot(), f))
}

func TestCleaned_PreservesTypeNullsRest(t *testing.T) {
	state := DeviceState{
		"type":       "MULTI_SENSOR",
		"isOn":       true,
		"brightness": 0.5,
		"nested": map[string]any{
			"type":  "inner",
			"value": 42,
		},
	}
	clean := state.Cleaned()

	assert.Equal(t, "MULTI_SENSOR", clean["type"])
	assert.Nil(t, clean["isOn"])
	assert.Nil(t, clean["brightness"])
	nested := clean["nested"].(map[string]any)
	assert.Equal(t, "inner", nested["type"])
	assert.Nil(t, nested["value"])

	// original untouched
	assert.Equal(t, true, state["isOn"])
}

func TestCleaned_Idempotent(t *testing.T) {
	state := DeviceState{
		"type": "LAMP",
		"isOn": true,
		"sub":  map[string]any{"hue": 1.0},
	}
	once := state.Cleaned()
	twice := once.Cleaned()
	assert.Equal(t, once, twice)
}

func TestInRange(t *testing.T) {
	assert.NoError(t, InRange("Hue", nil, 0, 1))

	v := 0.0
	assert.NoError(t, InRange("Hue", &v, 0, 1))
	v = 1.0
	assert.NoError(t, InRange("Hue", &v, 0, 1))

	v = -0.01
	err := InRange("Hue", &v, 0, 1)
	var rangeErr *RangeError
	assert.ErrorAs(t, err, &rangeErr)
	assert.Equal(t, "Hue", rangeErr.Field)

	v = 1.01
	assert.Error(t, InRange("Hue", &v, 0, 1))
}

func TestParseCapabilitySet_DropsUnknown(t *testing.T) {
	set := ParseCapabilitySet([]string{"ON_OFF", "BRIGHTNESS", "FLUX_DRIVE"})
	assert.Len(t, set, 2)
	assert.True(t, set.Contains(CapabilityOnOff))
	assert.False(t, set.Contains(Capability("FLUX_DRIVE")))
}

func TestAPIError_IsStatus(t *testing.T) {
	err := error(&APIError{StatusCode: 401, Body: "expired"})
	assert.True(t, IsStatus(err, 401))
	assert.True(t, IsStatus(err, 401, 403))
	assert.False(t, IsStatus(err, 503))
	assert.False(t, IsStatus(nil, 401))

	conn := error(&APIError{Err: assert.AnError})
	assert.True(t, IsStatus(conn, 0))
}

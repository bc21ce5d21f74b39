package model

// Well-known device state fields. State semantics are vendor-defined; only
// the fields the command composer touches are named here.
const (
	StateKeyType           = "type"
	StateKeyIsOn           = "isOn"
	StateKeyBrightness     = "brightness"
	StateKeyHue            = "hue"
	StateKeySaturation     = "saturation"
	StateKeyColorMode      = "colorMode"
	StateKeyTemperature    = "temperature"
	StateKeyMinTemperature = "minTemperature"
	StateKeyMaxTemperature = "maxTemperature"
	StateKeyTransitionMsec = "transitionMsec"
	StateKeyReachable      = "reachable"
	StateKeyLastSeen       = "lastSeen"
)

// VolatileStateKeys are read-only fields that never belong in an outgoing
// state patch.
var VolatileStateKeys = []string{
	StateKeyLastSeen,
	StateKeyReachable,
	StateKeyMaxTemperature,
	StateKeyMinTemperature,
}

// DeviceState is the mutable state sub-object of a device, field semantics
// vendor-defined.
type DeviceState map[string]any

// Cleaned returns a copy of the state with every value nulled out except
// type fields, recursing into nested objects. The result is a sparse patch
// base that only communicates explicitly set changes. The receiver is not
// modified.
func (s DeviceState) Cleaned() DeviceState {
	out := make(DeviceState, len(s))
	for k, v := range s {
		if k == StateKeyType {
			out[k] = v
			continue
		}
		if nested, ok := v.(map[string]any); ok {
			out[k] = map[string]any(DeviceState(nested).Cleaned())
		} else {
			out[k] = nil
		}
	}
	return out
}

// Merge copies all fields of other into s, overwriting existing keys.
func (s DeviceState) Merge(other DeviceState) {
	for k, v := range other {
		s[k] = v
	}
}

// Reachable reports the value of the reachable field, false when absent.
func (s DeviceState) Reachable() bool {
	v, _ := s[StateKeyReachable].(bool)
	return v
}

// Float returns the named field as a float64.
func (s DeviceState) Float(key string) (float64, bool) {
	switch v := s[key].(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	}
	return 0, false
}

// Device is one entry of a hub device snapshot.
type Device struct {
	ID           string
	Name         string
	Capabilities CapabilitySet
	State        DeviceState
}

// DeviceMap is a full device snapshot keyed by device id, as returned live
// by a hub. Snapshots are never cached across calls.
type DeviceMap map[string]*Device

// Filter selects devices by declared capability tags. An empty filter
// matches every device. With MatchAll set a device must declare every listed
// capability, otherwise any single match suffices.
type Filter struct {
	Capabilities []Capability
	MatchAll     bool
}

// FilterFor is shorthand for a single-capability filter.
func FilterFor(c Capability) Filter {
	return Filter{Capabilities: []Capability{c}}
}

// Empty reports whether the filter matches unconditionally.
func (f Filter) Empty() bool {
	return len(f.Capabilities) == 0
}

// Matches reports whether a capability set passes the filter.
func (f Filter) Matches(set CapabilitySet) bool {
	if f.Empty() {
		return true
	}
	if f.MatchAll {
		return set.ContainsAll(f.Capabilities)
	}
	return set.ContainsAny(f.Capabilities)
}

// FilterDevices returns the subset of devs passing the filter. The input map
// is not modified.
func FilterDevices(devs DeviceMap, f Filter) DeviceMap {
	if f.Empty() {
		return devs
	}
	out := make(DeviceMap)
	for id, d := range devs {
		if f.Matches(d.Capabilities) {
			out[id] = d
		}
	}
	return out
}

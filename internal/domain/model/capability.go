package model

// Capability is a device feature tag as reported by the hub. The set of
// values is closed; tags the hub reports that are not listed here are
// dropped during decoding.
type Capability string

const (
	CapabilityAlert            Capability = "ALERT"
	CapabilityBass             Capability = "BASS"
	CapabilityBatteryU         Capability = "BATTERY_U"
	CapabilityBrightness       Capability = "BRIGHTNESS"
	CapabilityColorHS          Capability = "COLOR_HS"
	CapabilityColorLoop        Capability = "COLOR_LOOP"
	CapabilityColorTemp        Capability = "COLOR_TEMP"
	CapabilityContact          Capability = "CONTACT"
	CapabilityControlLight     Capability = "CONTROL_LIGHT"
	CapabilityControlPower     Capability = "CONTROL_POWER"
	CapabilityDevice           Capability = "DEVICE"
	CapabilityDimmerControl    Capability = "DIMMER_CONTROL"
	CapabilityGenerateAlert    Capability = "GENERATE_ALERT"
	CapabilityHueSwitch        Capability = "HUE_SWITCH"
	CapabilityHumidity         Capability = "HUMIDITY"
	CapabilityIdentify         Capability = "IDENTIFY"
	CapabilityIkeaRC           Capability = "IKEA_RC"
	CapabilityLoudness         Capability = "LOUDNESS"
	CapabilityLux              Capability = "LUX"
	CapabilityMoisture         Capability = "MOISTURE"
	CapabilityMotion           Capability = "MOTION"
	CapabilityMute             Capability = "MUTE"
	CapabilityNext             Capability = "NEXT"
	CapabilityOnOff            Capability = "ON_OFF"
	CapabilityPause            Capability = "PAUSE"
	CapabilityPlay             Capability = "PLAY"
	CapabilityPrevious         Capability = "PREVIOUS"
	CapabilityPushNotification Capability = "PUSH_NOTIFICATION"
	CapabilityRemoteControl    Capability = "REMOTE_CONTROL"
	CapabilitySeek             Capability = "SEEK"
	CapabilitySmoke            Capability = "SMOKE"
	CapabilityStop             Capability = "STOP"
	CapabilityTemperature      Capability = "TEMPERATURE"
	CapabilityTransition       Capability = "TRANSITION"
	CapabilityTreble           Capability = "TREBLE"
	CapabilityTwilight         Capability = "TWILIGHT"
	CapabilityUpgrade          Capability = "UPGRADE"
	CapabilityUserPresence     Capability = "USER_PRESENCE"
	CapabilityVolume           Capability = "VOLUME"
)

var knownCapabilities = map[Capability]struct{}{
	CapabilityAlert: {}, CapabilityBass: {}, CapabilityBatteryU: {},
	CapabilityBrightness: {}, CapabilityColorHS: {}, CapabilityColorLoop: {},
	CapabilityColorTemp: {}, CapabilityContact: {}, CapabilityControlLight: {},
	CapabilityControlPower: {}, CapabilityDevice: {}, CapabilityDimmerControl: {},
	CapabilityGenerateAlert: {}, CapabilityHueSwitch: {}, CapabilityHumidity: {},
	CapabilityIdentify: {}, CapabilityIkeaRC: {}, CapabilityLoudness: {},
	CapabilityLux: {}, CapabilityMoisture: {}, CapabilityMotion: {},
	CapabilityMute: {}, CapabilityNext: {}, CapabilityOnOff: {},
	CapabilityPause: {}, CapabilityPlay: {}, CapabilityPrevious: {},
	CapabilityPushNotification: {}, CapabilityRemoteControl: {}, CapabilitySeek: {},
	CapabilitySmoke: {}, CapabilityStop: {}, CapabilityTemperature: {},
	CapabilityTransition: {}, CapabilityTreble: {}, CapabilityTwilight: {},
	CapabilityUpgrade: {}, CapabilityUserPresence: {}, CapabilityVolume: {},
}

// ParseCapability returns the matching capability tag, or false for labels
// outside the known set.
func ParseCapability(s string) (Capability, bool) {
	c := Capability(s)
	_, ok := knownCapabilities[c]
	return c, ok
}

// CapabilitySet is the set of feature tags a device declares.
type CapabilitySet map[Capability]struct{}

// NewCapabilitySet builds a set from the given tags.
func NewCapabilitySet(caps ...Capability) CapabilitySet {
	set := make(CapabilitySet, len(caps))
	for _, c := range caps {
		set[c] = struct{}{}
	}
	return set
}

// ParseCapabilitySet builds a set from raw labels, silently dropping unknown
// ones.
func ParseCapabilitySet(labels []string) CapabilitySet {
	set := make(CapabilitySet, len(labels))
	for _, l := range labels {
		if c, ok := ParseCapability(l); ok {
			set[c] = struct{}{}
		}
	}
	return set
}

// Contains reports whether the set declares the given capability.
func (s CapabilitySet) Contains(c Capability) bool {
	_, ok := s[c]
	return ok
}

// ContainsAny reports whether at least one of the given capabilities is
// declared.
func (s CapabilitySet) ContainsAny(caps []Capability) bool {
	for _, c := range caps {
		if s.Contains(c) {
			return true
		}
	}
	return false
}

// ContainsAll reports whether every one of the given capabilities is
// declared. An empty argument list matches.
func (s CapabilitySet) ContainsAll(caps []Capability) bool {
	for _, c := range caps {
		if !s.Contains(c) {
			return false
		}
	}
	return true
}

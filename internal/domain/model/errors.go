package model

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by the client.
var (
	// ErrAuthentication means no usable one-time passcode could be obtained,
	// for example when running non-interactively. Fatal for the attempt.
	ErrAuthentication = errors.New("cozify: one-time passcode unavailable, authentication cannot succeed")

	// ErrNotAuthenticated means an operation needed a remote token and none
	// is stored.
	ErrNotAuthenticated = errors.New("cozify: no remote token stored, authenticate first")

	// ErrDefaultHubUnset means no default hub has ever been set.
	ErrDefaultHubUnset = errors.New("cozify: default hub not known, authenticate first")

	// ErrHubNotFound means the referenced hub does not exist in state.
	ErrHubNotFound = errors.New("cozify: hub not found")

	// ErrDeviceNotFound means the referenced device is absent from the hub
	// snapshot.
	ErrDeviceNotFound = errors.New("cozify: device not found")

	// ErrNotEligible means the device is absent or lacks the capability an
	// operation requires.
	ErrNotEligible = errors.New("cozify: device not found or not eligible for action")

	// ErrNoLANIP means the cloud returned no LAN ip for the account, usually
	// an unregistered hub.
	ErrNoLANIP = errors.New("cozify: no LAN ip returned, is your hub registered?")
)

// APIError is a non-success response from a cloud or hub endpoint. A zero
// StatusCode marks a network-level failure where no response was received.
type APIError struct {
	StatusCode int
	Body       string
	Err        error // underlying transport error, if any
}

func (e *APIError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("cozify: connection failure: %v", e.Err)
	}
	return fmt.Sprintf("cozify: API error %d: %s", e.StatusCode, e.Body)
}

func (e *APIError) Unwrap() error { return e.Err }

// IsStatus reports whether err is an APIError carrying one of the given
// status codes.
func IsStatus(err error, codes ...int) bool {
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		return false
	}
	for _, c := range codes {
		if apiErr.StatusCode == c {
			return true
		}
	}
	return false
}

// RangeError is a command parameter outside its declared bounds. No network
// call is attempted when one is raised.
type RangeError struct {
	Field string
	Value float64
	Low   float64
	High  float64
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("cozify: %s value %v is out of bounds: [%v, %v]", e.Field, e.Value, e.Low, e.High)
}

// InRange validates value against inclusive bounds and returns a RangeError
// when violated. A nil value is always valid and means the field is left
// unchanged.
func InRange(field string, value *float64, low, high float64) error {
	if value == nil {
		return nil
	}
	if *value < low || *value > high {
		return &RangeError{Field: field, Value: *value, Low: low, High: high}
	}
	return nil
}

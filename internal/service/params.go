package service

import "time"

// Credentials carries the device token presented with a request (x-auth-token).
type Credentials struct {
	AuthToken string
}

// RegisterParams is the input of device registration.
type RegisterParams struct {
	DeviceID string
	Name     string
	Location string
}

// SetRelayParams addresses one relay of a device.
// RelayNumber 0 means the request did not name a relay (legacy single-relay form).
type SetRelayParams struct {
	DeviceID    string
	RelayNumber int
	State       string
}

// ReadingParams is a telemetry sample as received; nil means the field was absent.
type ReadingParams struct {
	DeviceID     string
	Temperature  *float64
	Humidity     *float64
	SoilMoisture *float64
}

// LogFilter narrows the relay command log by time range and device.
type LogFilter struct {
	From     time.Time // inclusive; zero means no lower bound
	To       time.Time // inclusive; zero means no upper bound
	DeviceID string
}

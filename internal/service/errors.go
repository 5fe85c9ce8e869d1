package service

import (
	"errors"
	"fmt"
)

// Error categories. Handlers map these to HTTP status codes with errors.Is.
var (
	ErrValidation     = errors.New("validation failed")
	ErrUnauthorized   = errors.New("unauthorized")
	ErrNotFound       = errors.New("not found")
	ErrConflict       = errors.New("conflict")
	ErrInfrastructure = errors.New("internal error")
)

// Device identity errors.
var (
	ErrMissingCredentials = fmt.Errorf("%w: authentication required", ErrUnauthorized)
	ErrInvalidCredentials = fmt.Errorf("%w: invalid device credentials", ErrUnauthorized)
	ErrStoreUnavailable   = fmt.Errorf("%w: credential store unavailable", ErrInfrastructure)

	ErrDeviceIDRequired  = fmt.Errorf("%w: device ID is required", ErrValidation)
	ErrAlreadyRegistered = fmt.Errorf("%w: device ID already registered", ErrConflict)
	ErrDeviceNotFound    = fmt.Errorf("%w: device not found", ErrNotFound)
)

// Relay and telemetry input errors.
var (
	ErrRelayStateRequired = fmt.Errorf("%w: relay state is required", ErrValidation)
	ErrMissingReading     = fmt.Errorf("%w: temperature and humidity are required", ErrValidation)
	ErrReadingOutOfRange  = fmt.Errorf("%w: reading out of sensor range", ErrValidation)
)

// Operator account errors.
var (
	ErrInvalidLogin  = fmt.Errorf("%w: invalid credentials", ErrUnauthorized)
	ErrInvalidToken  = fmt.Errorf("%w: invalid or expired token", ErrUnauthorized)
	ErrUsernameTaken = fmt.Errorf("%w: username already taken", ErrConflict)
)

// infra wraps an unexpected collaborator failure so it maps to a 500.
func infra(err error) error {
	return fmt.Errorf("%w: %w", ErrInfrastructure, err)
}

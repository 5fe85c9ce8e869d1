package service

import (
	"context"
	"fmt"
	"strings"

	"iot_backend/internal/models"
	"iot_backend/internal/repository"
)

// DeviceAuthService checks device tokens against the credential store.
type DeviceAuthService struct {
	devices repository.DeviceRepo
}

func NewDeviceAuthService(devices repository.DeviceRepo) *DeviceAuthService {
	return &DeviceAuthService{devices: devices}
}

// Authenticate returns the device whose id and token both match exactly.
// The id is normalized the same way Register stores it.
// A store failure is reported as ErrStoreUnavailable, never as a credential error.
func (s *DeviceAuthService) Authenticate(ctx context.Context, deviceID, token string) (*models.Device, error) {
	deviceID = normalizeDeviceID(deviceID)
	if deviceID == "" || strings.TrimSpace(token) == "" {
		return nil, ErrMissingCredentials
	}
	d, err := s.devices.FindByIDAndToken(ctx, deviceID, token)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}
	if d == nil {
		return nil, ErrInvalidCredentials
	}
	return d, nil
}

// normalizeDeviceID is the one form of a device id used for storage and lookups.
func normalizeDeviceID(id string) string {
	return strings.TrimSpace(id)
}

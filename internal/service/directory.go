package service

import (
	"context"

	"iot_backend/internal/models"
	"iot_backend/internal/repository"
)

// DirectoryService is the operator view of registered devices.
type DirectoryService struct {
	devices repository.DeviceRepo
}

func NewDirectoryService(devices repository.DeviceRepo) *DirectoryService {
	return &DirectoryService{devices: devices}
}

func (s *DirectoryService) ListDevices(ctx context.Context) ([]models.Device, error) {
	list, err := s.devices.List(ctx)
	if err != nil {
		return nil, infra(err)
	}
	return list, nil
}

func (s *DirectoryService) GetDevice(ctx context.Context, deviceID string) (*models.Device, error) {
	deviceID = normalizeDeviceID(deviceID)
	if deviceID == "" {
		return nil, ErrDeviceIDRequired
	}
	d, err := s.devices.FindByID(ctx, deviceID)
	if err != nil {
		return nil, infra(err)
	}
	if d == nil {
		return nil, ErrDeviceNotFound
	}
	d.AuthToken = ""
	return d, nil
}

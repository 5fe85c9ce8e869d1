package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"iot_backend/internal/models"
	"iot_backend/internal/repository"
)

// tokenBytes is the entropy of a device token; hex doubles it to 64 chars.
const tokenBytes = 32

// RegistrarService issues device tokens. Registering a known device id
// rotates its token and leaves name and location untouched.
type RegistrarService struct {
	devices  repository.DeviceRepo
	now      func() time.Time
	newToken func() (string, error)
}

func NewRegistrarService(devices repository.DeviceRepo) *RegistrarService {
	return &RegistrarService{devices: devices, now: time.Now, newToken: generateToken}
}

func (s *RegistrarService) Register(ctx context.Context, p RegisterParams) (models.DeviceCredential, bool, error) {
	deviceID := normalizeDeviceID(p.DeviceID)
	if deviceID == "" {
		return models.DeviceCredential{}, false, ErrDeviceIDRequired
	}

	token, err := s.newToken()
	if err != nil {
		return models.DeviceCredential{}, false, infra(fmt.Errorf("generate token: %w", err))
	}

	d, created, err := s.devices.UpsertWithNewToken(ctx, models.Device{
		DeviceID:  deviceID,
		AuthToken: token,
		Name:      strings.TrimSpace(p.Name),
		Location:  strings.TrimSpace(p.Location),
		LastSeen:  s.now(),
	})
	switch {
	case errors.Is(err, repository.ErrDuplicateDevice):
		return models.DeviceCredential{}, false, ErrAlreadyRegistered
	case err != nil:
		return models.DeviceCredential{}, false, infra(err)
	}
	return d.Credential(), created, nil
}

func generateToken() (string, error) {
	b := make([]byte, tokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

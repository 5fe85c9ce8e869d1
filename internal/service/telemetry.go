package service

import (
	"context"
	"fmt"

	"iot_backend/internal/models"
	"iot_backend/internal/repository"
)

const (
	defaultHistoryLimit = 100
	maxHistoryLimit     = 1000
)

// Sensor ranges accepted on ingest.
const (
	minTemperature = -40.0
	maxTemperature = 80.0
	minPercent     = 0.0
	maxPercent     = 100.0
)

// TelemetryService validates, stores and mirrors device readings.
type TelemetryService struct {
	auth     DeviceAuthenticator
	readings repository.TelemetryRepo
	sink     TelemetrySink
}

// NewTelemetryService builds the service. sink may be nil.
func NewTelemetryService(auth DeviceAuthenticator, readings repository.TelemetryRepo, sink TelemetrySink) *TelemetryService {
	return &TelemetryService{auth: auth, readings: readings, sink: sink}
}

func (s *TelemetryService) Record(ctx context.Context, p ReadingParams, creds Credentials) (models.Reading, error) {
	d, err := s.auth.Authenticate(ctx, p.DeviceID, creds.AuthToken)
	if err != nil {
		return models.Reading{}, err
	}
	if err := validateReading(p); err != nil {
		return models.Reading{}, err
	}

	rd, err := s.readings.Append(ctx, models.Reading{
		DeviceID:     d.DeviceID,
		Temperature:  *p.Temperature,
		Humidity:     *p.Humidity,
		SoilMoisture: p.SoilMoisture,
	})
	if err != nil {
		return models.Reading{}, infra(err)
	}
	if s.sink != nil {
		s.sink.WriteReading(rd)
	}
	return rd, nil
}

// Latest returns the newest reading of the device, or nil when it has none.
func (s *TelemetryService) Latest(ctx context.Context, deviceID string, creds Credentials) (*models.Reading, error) {
	d, err := s.auth.Authenticate(ctx, deviceID, creds.AuthToken)
	if err != nil {
		return nil, err
	}
	rd, err := s.readings.Latest(ctx, d.DeviceID)
	if err != nil {
		return nil, infra(err)
	}
	return rd, nil
}

// History returns up to limit readings, newest first. A non-positive limit
// selects the default and larger limits are capped.
func (s *TelemetryService) History(ctx context.Context, deviceID string, limit int, creds Credentials) ([]models.Reading, error) {
	d, err := s.auth.Authenticate(ctx, deviceID, creds.AuthToken)
	if err != nil {
		return nil, err
	}
	list, err := s.readings.History(ctx, d.DeviceID, clampLimit(limit))
	if err != nil {
		return nil, infra(err)
	}
	return list, nil
}

func clampLimit(limit int) int {
	switch {
	case limit <= 0:
		return defaultHistoryLimit
	case limit > maxHistoryLimit:
		return maxHistoryLimit
	default:
		return limit
	}
}

func validateReading(p ReadingParams) error {
	if p.Temperature == nil || p.Humidity == nil {
		return ErrMissingReading
	}
	if err := checkRange("temperature", *p.Temperature, minTemperature, maxTemperature); err != nil {
		return err
	}
	if err := checkRange("humidity", *p.Humidity, minPercent, maxPercent); err != nil {
		return err
	}
	if p.SoilMoisture != nil {
		return checkRange("soilMoisture", *p.SoilMoisture, minPercent, maxPercent)
	}
	return nil
}

func checkRange(field string, v, lo, hi float64) error {
	if v < lo || v > hi {
		return fmt.Errorf("%w: %s %.2f not in [%g, %g]", ErrReadingOutOfRange, field, v, lo, hi)
	}
	return nil
}

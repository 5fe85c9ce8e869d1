package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"iot_backend/internal/models"
	"iot_backend/internal/repository"
)

// EventLogService reads the relay command log.
type EventLogService struct {
	eventRepo repository.EventRepo
}

func NewEventLogService(eventRepo repository.EventRepo) *EventLogService {
	return &EventLogService{eventRepo: eventRepo}
}

var errInvalidTimeRange = fmt.Errorf("%w: invalid time range: from must be <= to", ErrValidation)

// normalizeToUTC returns t in UTC, preserving zero time values.
func normalizeToUTC(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	return t.UTC()
}

// normalizeAndValidateFilter prepares query parameters and validates the time range.
func normalizeAndValidateFilter(f LogFilter) (time.Time, time.Time, string, error) {
	from := normalizeToUTC(f.From)
	to := normalizeToUTC(f.To)

	if !from.IsZero() && !to.IsZero() && from.After(to) {
		return time.Time{}, time.Time{}, "", errInvalidTimeRange
	}

	return from, to, strings.TrimSpace(f.DeviceID), nil
}

func (s *EventLogService) List(ctx context.Context, f LogFilter) ([]models.RelayEvent, error) {
	from, to, deviceID, err := normalizeAndValidateFilter(f)
	if err != nil {
		return nil, err
	}
	events, err := s.eventRepo.List(ctx, from, to, deviceID)
	if err != nil {
		return nil, infra(err)
	}
	return events, nil
}

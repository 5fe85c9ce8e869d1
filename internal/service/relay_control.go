package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"iot_backend/internal/logger"
	"iot_backend/internal/models"
	"iot_backend/internal/relay"
	"iot_backend/internal/repository"
)

// RelayControlService gates the relay machine behind device authentication.
type RelayControlService struct {
	auth      DeviceAuthenticator
	machine   *relay.Machine
	events    repository.EventRepo
	publisher RelayPublisher
	log       *logger.Logger
	now       func() time.Time
}

// NewRelayControlService builds the service. events, publisher and log may be nil.
func NewRelayControlService(
	auth DeviceAuthenticator,
	machine *relay.Machine,
	events repository.EventRepo,
	publisher RelayPublisher,
	log *logger.Logger,
) *RelayControlService {
	return &RelayControlService{
		auth:      auth,
		machine:   machine,
		events:    events,
		publisher: publisher,
		log:       log.Named("relay"),
		now:       time.Now,
	}
}

// Topology returns the relay layout enforced for every device.
func (s *RelayControlService) Topology() relay.Topology { return s.machine.Topology() }

// GetStatus returns the relay state of an authenticated device.
func (s *RelayControlService) GetStatus(ctx context.Context, deviceID string, creds Credentials) (relay.State, error) {
	d, err := s.auth.Authenticate(ctx, deviceID, creds.AuthToken)
	if err != nil {
		return relay.State{}, err
	}
	return s.machine.Get(d.DeviceID), nil
}

// SetStatus switches one relay of an authenticated device and returns the full state.
// The command log append and the MQTT publish run while the device is still
// locked, so the last retained message always matches the latest state.
func (s *RelayControlService) SetStatus(ctx context.Context, p SetRelayParams, creds Credentials) (relay.State, error) {
	d, err := s.auth.Authenticate(ctx, p.DeviceID, creds.AuthToken)
	if err != nil {
		return relay.State{}, err
	}
	if p.State == "" {
		return relay.State{}, ErrRelayStateRequired
	}

	n := p.RelayNumber
	if n == 0 {
		n = 1
	}
	st, err := s.machine.SetThen(d.DeviceID, p.RelayNumber, p.State, func(st relay.State) {
		s.record(ctx, d.DeviceID, n, st)
		s.publish(ctx, d.DeviceID, st)
	})
	if err != nil {
		if errors.Is(err, relay.ErrInvalidState) || errors.Is(err, relay.ErrInvalidRelayIndex) {
			return relay.State{}, fmt.Errorf("%w: %w", ErrValidation, err)
		}
		return relay.State{}, infra(err)
	}
	return st, nil
}

// record appends the change to the command log. Failures are logged only.
func (s *RelayControlService) record(ctx context.Context, deviceID string, n int, st relay.State) {
	if s.events == nil {
		return
	}
	err := s.events.Append(ctx, models.RelayEvent{
		OccurredAt: s.now(),
		DeviceID:   deviceID,
		Relay:      n,
		State:      string(st.Relay(n)),
	})
	if err != nil && s.log != nil {
		s.log.Warnw("relay_event_append_failed", "device_id", deviceID, "relay", n, "error", err)
	}
}

// publish pushes the new state to the device. Failures are logged only.
func (s *RelayControlService) publish(ctx context.Context, deviceID string, st relay.State) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.PublishRelayState(ctx, deviceID, st); err != nil && s.log != nil {
		s.log.Warnw("relay_publish_failed", "device_id", deviceID, "error", err)
	}
}

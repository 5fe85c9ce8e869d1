package service

import (
	"context"
	"sync"
	"time"

	"iot_backend/internal/models"
	"iot_backend/internal/relay"
)

// fakeDeviceRepo is an in-memory repository.DeviceRepo.
type fakeDeviceRepo struct {
	mu      sync.Mutex
	devices map[string]models.Device

	findErr   error
	upsertErr error
	listErr   error

	findCalls int
}

func newFakeDeviceRepo(devs ...models.Device) *fakeDeviceRepo {
	f := &fakeDeviceRepo{devices: map[string]models.Device{}}
	for _, d := range devs {
		f.devices[d.DeviceID] = d
	}
	return f
}

func (f *fakeDeviceRepo) FindByID(_ context.Context, deviceID string) (*models.Device, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.findErr != nil {
		return nil, f.findErr
	}
	d, ok := f.devices[deviceID]
	if !ok {
		return nil, nil
	}
	return &d, nil
}

func (f *fakeDeviceRepo) FindByIDAndToken(_ context.Context, deviceID, token string) (*models.Device, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.findCalls++
	if f.findErr != nil {
		return nil, f.findErr
	}
	d, ok := f.devices[deviceID]
	if !ok || d.AuthToken != token {
		return nil, nil
	}
	return &d, nil
}

func (f *fakeDeviceRepo) UpsertWithNewToken(_ context.Context, d models.Device) (*models.Device, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.upsertErr != nil {
		return nil, false, f.upsertErr
	}
	existing, ok := f.devices[d.DeviceID]
	if !ok {
		d.CreatedAt = d.LastSeen
		f.devices[d.DeviceID] = d
		return &d, true, nil
	}
	existing.AuthToken = d.AuthToken
	existing.LastSeen = d.LastSeen
	f.devices[d.DeviceID] = existing
	return &existing, false, nil
}

func (f *fakeDeviceRepo) List(context.Context) ([]models.Device, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := make([]models.Device, 0, len(f.devices))
	for _, d := range f.devices {
		d.AuthToken = ""
		out = append(out, d)
	}
	return out, nil
}

// fakeEventRepo captures appended relay events and List arguments.
type fakeEventRepo struct {
	mu        sync.Mutex
	appended  []models.RelayEvent
	appendErr error

	// List capture
	gotCtx      context.Context
	gotFrom     time.Time
	gotTo       time.Time
	gotDeviceID string
	events      []models.RelayEvent
	err         error
	calls       int
}

func (f *fakeEventRepo) Append(_ context.Context, e models.RelayEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.appendErr != nil {
		return f.appendErr
	}
	f.appended = append(f.appended, e)
	return nil
}

func (f *fakeEventRepo) List(ctx context.Context, from, to time.Time, deviceID string) ([]models.RelayEvent, error) {
	f.calls++
	f.gotCtx = ctx
	f.gotFrom = from
	f.gotTo = to
	f.gotDeviceID = deviceID
	return f.events, f.err
}

// fakeTelemetryRepo stores readings in insertion order.
type fakeTelemetryRepo struct {
	readings  []models.Reading
	appendErr error
	gotLimit  int
}

func (f *fakeTelemetryRepo) Append(_ context.Context, r models.Reading) (models.Reading, error) {
	if f.appendErr != nil {
		return models.Reading{}, f.appendErr
	}
	r.ID = "r-1"
	r.Timestamp = time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC)
	f.readings = append(f.readings, r)
	return r, nil
}

func (f *fakeTelemetryRepo) Latest(_ context.Context, deviceID string) (*models.Reading, error) {
	for i := len(f.readings) - 1; i >= 0; i-- {
		if f.readings[i].DeviceID == deviceID {
			r := f.readings[i]
			return &r, nil
		}
	}
	return nil, nil
}

func (f *fakeTelemetryRepo) History(_ context.Context, deviceID string, limit int) ([]models.Reading, error) {
	f.gotLimit = limit
	var out []models.Reading
	for i := len(f.readings) - 1; i >= 0 && len(out) < limit; i-- {
		if f.readings[i].DeviceID == deviceID {
			out = append(out, f.readings[i])
		}
	}
	return out, nil
}

// fakePublisher records published states, latest per device and in arrival order.
type fakePublisher struct {
	mu        sync.Mutex
	published map[string]relay.State
	history   map[string][]relay.State
	err       error
}

func (f *fakePublisher) PublishRelayState(_ context.Context, deviceID string, st relay.State) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.published == nil {
		f.published = map[string]relay.State{}
		f.history = map[string][]relay.State{}
	}
	f.published[deviceID] = st
	f.history[deviceID] = append(f.history[deviceID], st)
	return f.err
}

func (f *fakePublisher) sent(deviceID string) []relay.State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]relay.State(nil), f.history[deviceID]...)
}

// fakeSink records mirrored readings.
type fakeSink struct {
	written []models.Reading
}

func (f *fakeSink) WriteReading(r models.Reading) { f.written = append(f.written, r) }

func ptr(v float64) *float64 { return &v }

package handlers

import (
	"context"
	"net/http"
	"sync"
	"time"

	"iot_backend/internal/models"
	"iot_backend/internal/relay"
	"iot_backend/internal/service"

	"github.com/gin-gonic/gin"
)

// ---- Service Mocks ----

type mockAuth struct {
	signUpID      int
	signUpErr     error
	genTokenToken string
	genTokenErr   error
	parseID       int
	parseErr      error

	lastSignUpUsername string
	lastSignUpPassword string
	lastGenUsername    string
	lastGenPassword    string
	lastParseToken     string
}

func (m *mockAuth) SignUp(_ context.Context, username, password string) (int, error) {
	m.lastSignUpUsername = username
	m.lastSignUpPassword = password
	return m.signUpID, m.signUpErr
}
func (m *mockAuth) GenerateToken(_ context.Context, username, password string) (string, error) {
	m.lastGenUsername = username
	m.lastGenPassword = password
	return m.genTokenToken, m.genTokenErr
}
func (m *mockAuth) ParseToken(token string) (int, error) {
	m.lastParseToken = token
	return m.parseID, m.parseErr
}

type mockRegistrar struct {
	cred    models.DeviceCredential
	created bool
	err     error
	last    service.RegisterParams
}

func (m *mockRegistrar) Register(_ context.Context, p service.RegisterParams) (models.DeviceCredential, bool, error) {
	m.last = p
	return m.cred, m.created, m.err
}

type mockDirectory struct {
	devices []models.Device
	device  *models.Device
	err     error
	lastID  string
}

func (m *mockDirectory) ListDevices(context.Context) ([]models.Device, error) {
	return m.devices, m.err
}
func (m *mockDirectory) GetDevice(_ context.Context, deviceID string) (*models.Device, error) {
	m.lastID = deviceID
	return m.device, m.err
}

type mockRelay struct {
	mu    sync.Mutex
	topo  relay.Topology
	state relay.State
	err   error

	getErr error // overrides err for GetStatus when set

	lastDeviceID string
	lastCreds    service.Credentials
	lastSet      service.SetRelayParams
	getCalls     int
	setCalls     int
}

func (m *mockRelay) Topology() relay.Topology { return m.topo }
func (m *mockRelay) GetStatus(_ context.Context, deviceID string, creds service.Credentials) (relay.State, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.getCalls++
	m.lastDeviceID = deviceID
	m.lastCreds = creds
	if m.getErr != nil {
		return relay.State{}, m.getErr
	}
	return m.state, m.err
}
func (m *mockRelay) SetStatus(_ context.Context, p service.SetRelayParams, creds service.Credentials) (relay.State, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.setCalls++
	m.lastSet = p
	m.lastCreds = creds
	return m.state, m.err
}

// failGets makes later GetStatus calls return err (a rotated token, for example).
func (m *mockRelay) failGets(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.getErr = err
}

func (m *mockRelay) creds() service.Credentials {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lastCreds
}

type mockTelemetry struct {
	reading   models.Reading
	latest    *models.Reading
	history   []models.Reading
	err       error
	lastP     service.ReadingParams
	lastLimit int
	lastCreds service.Credentials
}

func (m *mockTelemetry) Record(_ context.Context, p service.ReadingParams, creds service.Credentials) (models.Reading, error) {
	m.lastP = p
	m.lastCreds = creds
	return m.reading, m.err
}
func (m *mockTelemetry) Latest(_ context.Context, _ string, creds service.Credentials) (*models.Reading, error) {
	m.lastCreds = creds
	return m.latest, m.err
}
func (m *mockTelemetry) History(_ context.Context, _ string, limit int, creds service.Credentials) ([]models.Reading, error) {
	m.lastLimit = limit
	m.lastCreds = creds
	return m.history, m.err
}

type mockEventLog struct {
	resp         []models.RelayEvent
	err          error
	lastFrom     time.Time
	lastTo       time.Time
	lastDeviceID string
}

func (m *mockEventLog) List(_ context.Context, f service.LogFilter) ([]models.RelayEvent, error) {
	m.lastFrom = f.From
	m.lastTo = f.To
	m.lastDeviceID = f.DeviceID
	return m.resp, m.err
}

// ---- Shared Test Helpers ----

func newTestRouter(s *service.Service) *gin.Engine {
	h := NewHandler(s, nil)
	gin.SetMode(gin.TestMode)
	return h.InitRoutes()
}

func authHeader(token string) http.Header {
	h := http.Header{}
	if token != "" {
		h.Set("Authorization", "Bearer "+token)
	}
	return h
}

func deviceHeader(token string) http.Header {
	h := http.Header{}
	if token != "" {
		h.Set(headerAuthToken, token)
	}
	return h
}

// relayState builds a snapshot with the given relays switched on.
func relayState(count int, on ...int) relay.State {
	m := relay.NewMachine(relay.Topology{RelayCount: count})
	st := m.Get("x")
	for _, n := range on {
		st, _ = m.Set("x", n, "on")
	}
	return st
}

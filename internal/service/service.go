package service

import (
	"context"
	"time"

	"iot_backend/internal/logger"
	"iot_backend/internal/models"
	"iot_backend/internal/relay"
	"iot_backend/internal/repository"
)

// Authorization covers operator accounts (sign-up, sign-in, JWT parsing).
type Authorization interface {
	SignUp(ctx context.Context, username, password string) (int, error)
	GenerateToken(ctx context.Context, username, password string) (string, error)
	ParseToken(accessToken string) (int, error)
}

// DeviceAuthenticator validates a device id / token pair.
type DeviceAuthenticator interface {
	Authenticate(ctx context.Context, deviceID, token string) (*models.Device, error)
}

// Registrar issues and rotates device tokens.
type Registrar interface {
	Register(ctx context.Context, p RegisterParams) (cred models.DeviceCredential, created bool, err error)
}

// DeviceDirectory is the read-only, token-free view of registered devices.
type DeviceDirectory interface {
	ListDevices(ctx context.Context) ([]models.Device, error)
	GetDevice(ctx context.Context, deviceID string) (*models.Device, error)
}

// RelayControl reads and switches relays on behalf of an authenticated device.
type RelayControl interface {
	GetStatus(ctx context.Context, deviceID string, creds Credentials) (relay.State, error)
	SetStatus(ctx context.Context, p SetRelayParams, creds Credentials) (relay.State, error)
	Topology() relay.Topology
}

// Telemetry ingests and serves sensor readings.
type Telemetry interface {
	Record(ctx context.Context, p ReadingParams, creds Credentials) (models.Reading, error)
	Latest(ctx context.Context, deviceID string, creds Credentials) (*models.Reading, error)
	History(ctx context.Context, deviceID string, limit int, creds Credentials) ([]models.Reading, error)
}

// EventLog exposes the relay command log.
type EventLog interface {
	List(ctx context.Context, f LogFilter) ([]models.RelayEvent, error)
}

// RelayPublisher pushes a device's new relay state to the device (MQTT).
type RelayPublisher interface {
	PublishRelayState(ctx context.Context, deviceID string, st relay.State) error
}

// TelemetrySink mirrors accepted readings to a time-series store (InfluxDB).
type TelemetrySink interface {
	WriteReading(r models.Reading)
}

type Service struct {
	Authorization
	DeviceAuthenticator
	Registrar
	DeviceDirectory
	RelayControl
	Telemetry
	EventLog
}

// Deps are the collaborators that do not come from the repository layer.
// Publisher and Sink may be nil when MQTT or InfluxDB are disabled.
type Deps struct {
	Machine    *relay.Machine
	Publisher  RelayPublisher
	Sink       TelemetrySink
	Log        *logger.Logger
	SigningKey string
	TokenTTL   time.Duration
}

// NewService wires repositories and runtime collaborators into the services.
func NewService(repos *repository.Repository, deps Deps) *Service {
	deviceAuth := NewDeviceAuthService(repos.Devices)
	return &Service{
		Authorization:       NewAuthService(repos.Auth, deps.SigningKey, deps.TokenTTL),
		DeviceAuthenticator: deviceAuth,
		Registrar:           NewRegistrarService(repos.Devices),
		DeviceDirectory:     NewDirectoryService(repos.Devices),
		RelayControl:        NewRelayControlService(deviceAuth, deps.Machine, repos.EventRepo, deps.Publisher, deps.Log),
		Telemetry:           NewTelemetryService(deviceAuth, repos.Telemetry, deps.Sink),
		EventLog:            NewEventLogService(repos.EventRepo),
	}
}

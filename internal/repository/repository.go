package repository

import (
	"context"
	"database/sql"
	"time"

	"iot_backend/internal/models"
)

// DeviceRepo is the credential store for registered devices.
type DeviceRepo interface {
	FindByID(ctx context.Context, deviceID string) (*models.Device, error)
	FindByIDAndToken(ctx context.Context, deviceID, token string) (*models.Device, error)
	// UpsertWithNewToken creates d, or replaces the token and last_seen of the
	// existing row with the same device id. created reports which path ran.
	UpsertWithNewToken(ctx context.Context, d models.Device) (dev *models.Device, created bool, err error)
	List(ctx context.Context) ([]models.Device, error)
}

// TelemetryRepo stores sensor readings.
type TelemetryRepo interface {
	Append(ctx context.Context, r models.Reading) (models.Reading, error)
	Latest(ctx context.Context, deviceID string) (*models.Reading, error)
	History(ctx context.Context, deviceID string, limit int) ([]models.Reading, error)
}

// EventRepo is the append-only relay command log.
type EventRepo interface {
	Append(ctx context.Context, e models.RelayEvent) error
	List(ctx context.Context, from, to time.Time, deviceID string) ([]models.RelayEvent, error)
}

// Authorization stores operator accounts.
type Authorization interface {
	Create(ctx context.Context, username, hash string) (int, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
}

type Repository struct {
	Devices   DeviceRepo
	Telemetry TelemetryRepo
	EventRepo EventRepo
	Auth      Authorization
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{
		Devices:   NewDeviceSQLite(db),
		Telemetry: NewTelemetrySQLite(db),
		EventRepo: NewEventSQLite(db),
		Auth:      NewUserRepository(db),
	}
}

// timeLayout is fixed-width so stored timestamps sort lexically.
const timeLayout = "2006-01-02 15:04:05.000000"

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

type rowScanner interface {
	Scan(dest ...any) error
}

package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"iot_backend/internal/models"

	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// ErrDuplicateDevice is returned when an insert hits the device_id uniqueness constraint.
var ErrDuplicateDevice = errors.New("device already registered")

type DeviceSQLite struct {
	db *sql.DB
}

func NewDeviceSQLite(db *sql.DB) *DeviceSQLite {
	return &DeviceSQLite{db: db}
}

var _ DeviceRepo = (*DeviceSQLite)(nil)

const (
	selectDeviceSQL = `SELECT device_id, auth_token, name, location, last_seen, created_at FROM devices`

	selectDeviceByIDSQL         = selectDeviceSQL + ` WHERE device_id = ?`
	selectDeviceByIDAndTokenSQL = selectDeviceSQL + ` WHERE device_id = ? AND auth_token = ?`

	insertDeviceSQL = `INSERT INTO devices (device_id, auth_token, name, location, last_seen, created_at) VALUES (?, ?, ?, ?, ?, ?)`

	rotateDeviceTokenSQL = `UPDATE devices SET auth_token = ?, last_seen = ? WHERE device_id = ?`

	listDevicesSQL = `SELECT device_id, name, location, last_seen, created_at FROM devices ORDER BY device_id ASC`
)

func scanDevice(row rowScanner) (*models.Device, error) {
	var (
		d              models.Device
		name, location sql.NullString
	)
	if err := row.Scan(&d.DeviceID, &d.AuthToken, &name, &location, &d.LastSeen, &d.CreatedAt); err != nil {
		return nil, err
	}
	d.Name = name.String
	d.Location = location.String
	d.LastSeen = d.LastSeen.UTC()
	d.CreatedAt = d.CreatedAt.UTC()
	return &d, nil
}

// FindByID returns (nil, nil) when the device does not exist.
func (r *DeviceSQLite) FindByID(ctx context.Context, deviceID string) (*models.Device, error) {
	d, err := scanDevice(r.db.QueryRowContext(ctx, selectDeviceByIDSQL, deviceID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("select device %q: %w", deviceID, err)
	}
	return d, nil
}

// FindByIDAndToken matches both columns exactly. Returns (nil, nil) on mismatch.
func (r *DeviceSQLite) FindByIDAndToken(ctx context.Context, deviceID, token string) (*models.Device, error) {
	d, err := scanDevice(r.db.QueryRowContext(ctx, selectDeviceByIDAndTokenSQL, deviceID, token))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("select device %q by token: %w", deviceID, err)
	}
	return d, nil
}

// UpsertWithNewToken runs lookup and insert-or-rotate in one transaction.
// On rotation only auth_token and last_seen change.
func (r *DeviceSQLite) UpsertWithNewToken(ctx context.Context, d models.Device) (*models.Device, bool, error) {
	now := d.LastSeen
	if now.IsZero() {
		now = time.Now()
	}
	// stored precision is microseconds
	now = now.UTC().Truncate(time.Microsecond)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, false, fmt.Errorf("begin upsert device %q: %w", d.DeviceID, err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	existing, err := scanDevice(tx.QueryRowContext(ctx, selectDeviceByIDSQL, d.DeviceID))
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, false, fmt.Errorf("select device %q: %w", d.DeviceID, err)
	}

	var (
		out     *models.Device
		created bool
	)
	if existing == nil {
		if _, err := tx.ExecContext(ctx, insertDeviceSQL,
			d.DeviceID,
			d.AuthToken,
			nullString(d.Name),
			nullString(d.Location),
			formatTime(now),
			formatTime(now),
		); err != nil {
			if isUniqueViolation(err) {
				return nil, false, fmt.Errorf("insert device %q: %w", d.DeviceID, ErrDuplicateDevice)
			}
			return nil, false, fmt.Errorf("insert device %q: %w", d.DeviceID, err)
		}
		d.LastSeen, d.CreatedAt = now, now
		out, created = &d, true
	} else {
		res, err := tx.ExecContext(ctx, rotateDeviceTokenSQL, d.AuthToken, formatTime(now), d.DeviceID)
		if err != nil {
			return nil, false, fmt.Errorf("rotate token for device %q: %w", d.DeviceID, err)
		}
		if n, err := res.RowsAffected(); err != nil {
			return nil, false, fmt.Errorf("rotate token for device %q: %w", d.DeviceID, err)
		} else if n != 1 {
			return nil, false, fmt.Errorf("rotate token for device %q: %d rows affected", d.DeviceID, n)
		}
		existing.AuthToken = d.AuthToken
		existing.LastSeen = now
		out = existing
	}

	if err := tx.Commit(); err != nil {
		return nil, false, fmt.Errorf("commit upsert device %q: %w", d.DeviceID, err)
	}
	return out, created, nil
}

// List returns every device without its token, ordered by device id.
func (r *DeviceSQLite) List(ctx context.Context) ([]models.Device, error) {
	rows, err := r.db.QueryContext(ctx, listDevicesSQL)
	if err != nil {
		return nil, fmt.Errorf("list devices: %w", err)
	}
	defer rows.Close()

	out := make([]models.Device, 0, 16)
	for rows.Next() {
		var (
			d              models.Device
			name, location sql.NullString
		)
		if err := rows.Scan(&d.DeviceID, &name, &location, &d.LastSeen, &d.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan device: %w", err)
		}
		d.Name = name.String
		d.Location = location.String
		d.LastSeen = d.LastSeen.UTC()
		d.CreatedAt = d.CreatedAt.UTC()
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list devices: %w", err)
	}
	return out, nil
}

// isUniqueViolation recognizes SQLite UNIQUE/PRIMARY KEY constraint failures.
func isUniqueViolation(err error) bool {
	var se *sqlite.Error
	if errors.As(err, &se) {
		switch se.Code() {
		case sqlite3.SQLITE_CONSTRAINT_UNIQUE, sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
			return true
		}
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}

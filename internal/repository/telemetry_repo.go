package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"iot_backend/internal/models"

	"github.com/google/uuid"
)

type TelemetrySQLite struct {
	db *sql.DB
}

func NewTelemetrySQLite(db *sql.DB) *TelemetrySQLite { return &TelemetrySQLite{db: db} }

var _ TelemetryRepo = (*TelemetrySQLite)(nil)

const (
	insertReadingSQL = `INSERT INTO telemetry (id, device_id, temperature, humidity, soil_moisture, recorded_at) VALUES (?, ?, ?, ?, ?, ?)`

	selectReadingsSQL = `SELECT id, device_id, temperature, humidity, soil_moisture, recorded_at FROM telemetry WHERE device_id = ? ORDER BY recorded_at DESC`

	selectLatestReadingSQL = selectReadingsSQL + ` LIMIT 1`
	selectHistorySQL       = selectReadingsSQL + ` LIMIT ?`
)

func scanReading(row rowScanner) (models.Reading, error) {
	var (
		r    models.Reading
		soil sql.NullFloat64
	)
	if err := row.Scan(&r.ID, &r.DeviceID, &r.Temperature, &r.Humidity, &soil, &r.Timestamp); err != nil {
		return models.Reading{}, err
	}
	if soil.Valid {
		v := soil.Float64
		r.SoilMoisture = &v
	}
	r.Timestamp = r.Timestamp.UTC()
	return r, nil
}

// Append stores r, assigning an id and a UTC timestamp when they are empty.
func (r *TelemetrySQLite) Append(ctx context.Context, rd models.Reading) (models.Reading, error) {
	if rd.ID == "" {
		rd.ID = uuid.NewString()
	}
	if rd.Timestamp.IsZero() {
		rd.Timestamp = time.Now()
	}
	rd.Timestamp = rd.Timestamp.UTC().Truncate(time.Microsecond)

	var soil sql.NullFloat64
	if rd.SoilMoisture != nil {
		soil = sql.NullFloat64{Float64: *rd.SoilMoisture, Valid: true}
	}

	if _, err := r.db.ExecContext(ctx, insertReadingSQL,
		rd.ID,
		rd.DeviceID,
		rd.Temperature,
		rd.Humidity,
		soil,
		formatTime(rd.Timestamp),
	); err != nil {
		return models.Reading{}, fmt.Errorf("insert reading for %q: %w", rd.DeviceID, err)
	}
	return rd, nil
}

// Latest returns the newest reading for deviceID, or (nil, nil) if there is none.
func (r *TelemetrySQLite) Latest(ctx context.Context, deviceID string) (*models.Reading, error) {
	rd, err := scanReading(r.db.QueryRowContext(ctx, selectLatestReadingSQL, deviceID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("select latest reading for %q: %w", deviceID, err)
	}
	return &rd, nil
}

// History returns up to limit readings for deviceID, newest first.
func (r *TelemetrySQLite) History(ctx context.Context, deviceID string, limit int) ([]models.Reading, error) {
	rows, err := r.db.QueryContext(ctx, selectHistorySQL, deviceID, limit)
	if err != nil {
		return nil, fmt.Errorf("select readings for %q: %w", deviceID, err)
	}
	defer rows.Close()

	out := make([]models.Reading, 0, limit)
	for rows.Next() {
		rd, err := scanReading(rows)
		if err != nil {
			return nil, fmt.Errorf("scan reading: %w", err)
		}
		out = append(out, rd)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("select readings for %q: %w", deviceID, err)
	}
	return out, nil
}

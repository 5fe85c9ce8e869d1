package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"iot_backend/internal/models"

	"github.com/google/uuid"
)

type EventSQLite struct {
	db *sql.DB
}

func NewEventSQLite(db *sql.DB) *EventSQLite { return &EventSQLite{db: db} }

var _ EventRepo = (*EventSQLite)(nil)

const insertRelayEventSQL = `INSERT INTO relay_events (id, occurred_at, device_id, relay, state) VALUES (?, ?, ?, ?, ?)`

// Append inserts a relay event. EventID and OccurredAt are filled in when empty.
func (r *EventSQLite) Append(ctx context.Context, e models.RelayEvent) error {
	if e.EventID == "" {
		e.EventID = uuid.NewString()
	}
	if e.OccurredAt.IsZero() {
		e.OccurredAt = time.Now()
	}

	_, err := r.db.ExecContext(ctx, insertRelayEventSQL,
		e.EventID,
		formatTime(e.OccurredAt),
		e.DeviceID,
		e.Relay,
		strings.ToLower(e.State),
	)
	if err != nil {
		return fmt.Errorf("insert relay event for %q: %w", e.DeviceID, err)
	}
	return nil
}

// List returns events in [from, to] (zero bounds are open) optionally for one device, oldest first.
func (r *EventSQLite) List(ctx context.Context, from, to time.Time, deviceID string) ([]models.RelayEvent, error) {
	var (
		conds []string
		args  []any
	)

	if !from.IsZero() {
		conds = append(conds, "occurred_at >= ?")
		args = append(args, formatTime(from))
	}
	if !to.IsZero() {
		conds = append(conds, "occurred_at <= ?")
		args = append(args, formatTime(to))
	}
	if deviceID = strings.TrimSpace(deviceID); deviceID != "" {
		conds = append(conds, "device_id = ?")
		args = append(args, deviceID)
	}

	q := `SELECT id, occurred_at, device_id, relay, state FROM relay_events`
	if len(conds) > 0 {
		q += " WHERE " + strings.Join(conds, " AND ")
	}
	q += " ORDER BY occurred_at ASC"

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("list relay events: %w", err)
	}
	defer rows.Close()

	out := make([]models.RelayEvent, 0, 64)
	for rows.Next() {
		var ev models.RelayEvent
		if err := rows.Scan(&ev.EventID, &ev.OccurredAt, &ev.DeviceID, &ev.Relay, &ev.State); err != nil {
			return nil, fmt.Errorf("scan relay event: %w", err)
		}
		ev.OccurredAt = ev.OccurredAt.UTC()
		out = append(out, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list relay events: %w", err)
	}
	return out, nil
}

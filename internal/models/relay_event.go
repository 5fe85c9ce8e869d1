package models

import "time"

// RelayEvent is one applied relay change.
type RelayEvent struct {
	EventID    string    `json:"eventId"`
	OccurredAt time.Time `json:"occurredAt"`
	DeviceID   string    `json:"deviceId"`
	Relay      int       `json:"relay"` // 1-based relay number
	State      string    `json:"state"` // on | off
}

package models

import "time"

// Reading is a single telemetry sample pushed by a device.
type Reading struct {
	ID           string    `json:"id"`
	DeviceID     string    `json:"deviceId"`
	Temperature  float64   `json:"temperature"`            // °C
	Humidity     float64   `json:"humidity"`               // %
	SoilMoisture *float64  `json:"soilMoisture,omitempty"` // %, optional sensor
	Timestamp    time.Time `json:"timestamp"`
}

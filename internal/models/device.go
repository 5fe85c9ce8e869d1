package models

import "time"

// Device is a registered endpoint and its credential.
type Device struct {
	DeviceID  string    `json:"deviceId"`
	AuthToken string    `json:"-"` // only revealed through DeviceCredential
	Name      string    `json:"name,omitempty"`
	Location  string    `json:"location,omitempty"`
	LastSeen  time.Time `json:"lastSeen"`
	CreatedAt time.Time `json:"createdAt"`
}

// DeviceCredential is returned once, right after register/rotate.
type DeviceCredential struct {
	DeviceID  string `json:"deviceId"`
	AuthToken string `json:"authToken"`
	Name      string `json:"name,omitempty"`
	Location  string `json:"location,omitempty"`
}

// Credential returns the plaintext projection of d.
func (d Device) Credential() DeviceCredential {
	return DeviceCredential{
		DeviceID:  d.DeviceID,
		AuthToken: d.AuthToken,
		Name:      d.Name,
		Location:  d.Location,
	}
}

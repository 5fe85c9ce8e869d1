package mqtt

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"iot_backend/internal/relay"
)

// relayCommand is the retained payload on <prefix>/devices/<id>/relay/set.
// Its relay/relays shape matches the HTTP status body.
type relayCommand struct {
	DeviceID  string                 `json:"deviceId"`
	Relay     relay.Value            `json:"relay,omitempty"`
	Relays    map[string]relay.Value `json:"relays,omitempty"`
	UpdatedAt time.Time              `json:"updatedAt"`
}

func newRelayCommand(deviceID string, st relay.State, at time.Time) relayCommand {
	cmd := relayCommand{DeviceID: deviceID, UpdatedAt: at.UTC()}
	if st.Single() {
		cmd.Relay = st.Relay(1)
	} else {
		cmd.Relays = st.Named()
	}
	return cmd
}

// PublishRelayState sends the full relay state of deviceID as a retained
// message, so a device that reconnects receives its latest command.
func (c *Client) PublishRelayState(ctx context.Context, deviceID string, st relay.State) error {
	if !validTopicLevel(deviceID) {
		return fmt.Errorf("%w: device id %q", ErrInvalidTopic, deviceID)
	}
	payload, err := json.Marshal(newRelayCommand(deviceID, st, c.now()))
	if err != nil {
		return fmt.Errorf("marshal relay command: %w", err)
	}
	return c.Publish(ctx, c.topics.RelayCommand(deviceID), payload, true)
}

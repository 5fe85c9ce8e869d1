package mqtt

import (
	"context"
	"errors"
	"fmt"
	"time"

	"iot_backend/internal/config"
	"iot_backend/internal/logger"

	pahomqtt "github.com/eclipse/paho.mqtt.golang"
)

const (
	connectTimeout    = 10 * time.Second
	publishTimeout    = 5 * time.Second
	keepAlive         = 60 * time.Second
	disconnectQuiesce = 250 // milliseconds
)

var (
	ErrDisabled         = errors.New("mqtt: disabled in configuration")
	ErrConnectionFailed = errors.New("mqtt: connection failed")
	ErrNotConnected     = errors.New("mqtt: client not connected")
	ErrPublishFailed    = errors.New("mqtt: publish failed")
	ErrInvalidTopic     = errors.New("mqtt: invalid topic")
)

// Client publishes relay commands to devices over MQTT.
// Safe for concurrent use; paho serialises writes on the connection.
type Client struct {
	client pahomqtt.Client
	qos    byte
	topics Topics
	log    *logger.Logger
	now    func() time.Time
}

// Connect dials the broker from cfg. It returns ErrDisabled when MQTT is off
// so callers can run without a broker.
func Connect(cfg config.MQTTConfig, log *logger.Logger) (*Client, error) {
	if !cfg.Enabled {
		return nil, ErrDisabled
	}

	c := &Client{
		qos:    byte(cfg.QoS),
		topics: Topics{Prefix: cfg.TopicPrefix},
		log:    log.Named("mqtt"),
		now:    time.Now,
	}
	c.client = pahomqtt.NewClient(c.clientOptions(cfg))

	token := c.client.Connect()
	if !token.WaitTimeout(connectTimeout) {
		return nil, fmt.Errorf("%w: timeout after %v", ErrConnectionFailed, connectTimeout)
	}
	if err := token.Error(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConnectionFailed, err)
	}
	return c, nil
}

func (c *Client) clientOptions(cfg config.MQTTConfig) *pahomqtt.ClientOptions {
	opts := pahomqtt.NewClientOptions().
		AddBroker(cfg.Broker).
		SetClientID(cfg.ClientID).
		SetCleanSession(true).
		SetAutoReconnect(true).
		SetConnectTimeout(connectTimeout).
		SetKeepAlive(keepAlive).
		SetBinaryWill(c.topics.Status(), statusPayload(false), c.qos, true)

	if cfg.Username != "" {
		opts.SetUsername(cfg.Username)
		opts.SetPassword(cfg.Password)
	}

	opts.SetOnConnectHandler(func(pc pahomqtt.Client) {
		pc.Publish(c.topics.Status(), c.qos, true, statusPayload(true))
		if c.log != nil {
			c.log.Infow("mqtt_connected", "broker", cfg.Broker)
		}
	})
	opts.SetConnectionLostHandler(func(_ pahomqtt.Client, err error) {
		if c.log != nil {
			c.log.Warnw("mqtt_connection_lost", "error", err)
		}
	})
	return opts
}

// Publish sends payload to topic and waits for the broker acknowledgement,
// bounded by ctx and publishTimeout.
func (c *Client) Publish(ctx context.Context, topic string, payload []byte, retained bool) error {
	if topic == "" {
		return ErrInvalidTopic
	}
	if !c.client.IsConnected() {
		return ErrNotConnected
	}

	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	token := c.client.Publish(topic, c.qos, retained, payload)
	select {
	case <-token.Done():
		if err := token.Error(); err != nil {
			return fmt.Errorf("%w: %s: %w", ErrPublishFailed, topic, err)
		}
		return nil
	case <-ctx.Done():
		return fmt.Errorf("%w: %s: %w", ErrPublishFailed, topic, ctx.Err())
	}
}

// IsConnected reports the paho connection state.
func (c *Client) IsConnected() bool {
	return c != nil && c.client != nil && c.client.IsConnected()
}

// Close marks the backend offline and disconnects. Safe on a nil client.
func (c *Client) Close() error {
	if c == nil || c.client == nil {
		return nil
	}
	if c.client.IsConnected() {
		token := c.client.Publish(c.topics.Status(), c.qos, true, statusPayload(false))
		token.WaitTimeout(publishTimeout)
	}
	c.client.Disconnect(disconnectQuiesce)
	return nil
}

func statusPayload(online bool) []byte {
	if online {
		return []byte(`{"online":true}`)
	}
	return []byte(`{"online":false}`)
}

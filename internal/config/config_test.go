package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "config.yml"), []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return dir
}

func TestLoad_FromFile(t *testing.T) {
	dir := writeConfig(t, `
port: "8081"
log:
  level: debug
db:
  path: /tmp/iot.db
relay:
  count: 1
auth:
  signing_key: secret
  token_ttl: 30m
mqtt:
  enabled: true
  broker: tcp://broker:1883
  qos: 2
influx:
  enabled: true
  bucket: readings
`)

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Port != "8081" || cfg.Log.Level != "debug" || cfg.DB.Path != "/tmp/iot.db" {
		t.Fatalf("unexpected basics: %+v", cfg)
	}
	if cfg.Relay.Count != 1 {
		t.Fatalf("relay.count: got %d", cfg.Relay.Count)
	}
	if cfg.Auth.TokenTTL != 30*time.Minute {
		t.Fatalf("auth.token_ttl: got %v", cfg.Auth.TokenTTL)
	}
	if !cfg.MQTT.Enabled || cfg.MQTT.Broker != "tcp://broker:1883" || cfg.MQTT.QoS != 2 {
		t.Fatalf("unexpected mqtt: %+v", cfg.MQTT)
	}
	if cfg.MQTT.TopicPrefix != "iot" {
		t.Fatalf("mqtt.topic_prefix default: got %q", cfg.MQTT.TopicPrefix)
	}
	if !cfg.Influx.Enabled || cfg.Influx.Bucket != "readings" {
		t.Fatalf("unexpected influx: %+v", cfg.Influx)
	}
	if cfg.HTTP.IdleTimeout != 60*time.Second {
		t.Fatalf("http.idle_timeout default: got %v", cfg.HTTP.IdleTimeout)
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	dir := writeConfig(t, `
relay:
  count: 4
auth:
  signing_key: from-file
`)
	t.Setenv("IOT_RELAY_COUNT", "2")
	t.Setenv("IOT_AUTH_SIGNING_KEY", "from-env")

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Relay.Count != 2 {
		t.Fatalf("relay.count: got %d, want 2", cfg.Relay.Count)
	}
	if cfg.Auth.SigningKey != "from-env" {
		t.Fatalf("auth.signing_key: got %q", cfg.Auth.SigningKey)
	}
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	t.Setenv("IOT_AUTH_SIGNING_KEY", "k")
	cfg, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Port != "3000" || cfg.Relay.Count != 4 || cfg.DB.Path != "app.db" {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
}

func TestValidate(t *testing.T) {
	valid := Config{Relay: RelayConfig{Count: 4}, Auth: AuthConfig{SigningKey: "k"}, MQTT: MQTTConfig{QoS: 1}}

	cases := []struct {
		name   string
		mutate func(c *Config)
		want   error
	}{
		{"ok", func(c *Config) {}, nil},
		{"relay zero", func(c *Config) { c.Relay.Count = 0 }, ErrInvalidRelayCount},
		{"relay five", func(c *Config) { c.Relay.Count = 5 }, ErrInvalidRelayCount},
		{"blank key", func(c *Config) { c.Auth.SigningKey = "  " }, ErrMissingSigningKey},
		{"qos three", func(c *Config) { c.MQTT.QoS = 3 }, ErrInvalidQoS},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := valid
			tc.mutate(&c)
			err := c.Validate()
			if tc.want == nil {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tc.want) {
				t.Fatalf("got %v, want %v", err, tc.want)
			}
		})
	}
}

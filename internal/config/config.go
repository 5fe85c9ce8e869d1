package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// EnvPrefix namespaces environment overrides, e.g. IOT_DB_PATH.
const EnvPrefix = "IOT"

// Config is the full runtime configuration.
type Config struct {
	Port   string       `mapstructure:"port"`
	Log    LogConfig    `mapstructure:"log"`
	DB     DBConfig     `mapstructure:"db"`
	HTTP   HTTPConfig   `mapstructure:"http"`
	Relay  RelayConfig  `mapstructure:"relay"`
	Auth   AuthConfig   `mapstructure:"auth"`
	MQTT   MQTTConfig   `mapstructure:"mqtt"`
	Influx InfluxConfig `mapstructure:"influx"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

type DBConfig struct {
	Path string `mapstructure:"path"`
}

type HTTPConfig struct {
	ReadHeaderTimeout time.Duration `mapstructure:"read_header_timeout"`
	WriteTimeout      time.Duration `mapstructure:"write_timeout"`
	IdleTimeout       time.Duration `mapstructure:"idle_timeout"`
}

// RelayConfig selects the relay topology: 1 for the legacy single relay, up to 4.
type RelayConfig struct {
	Count int `mapstructure:"count"`
}

// AuthConfig configures operator JWTs.
type AuthConfig struct {
	SigningKey string        `mapstructure:"signing_key"`
	TokenTTL   time.Duration `mapstructure:"token_ttl"`
}

// MQTTConfig configures the broker used to push relay commands to devices.
type MQTTConfig struct {
	Enabled     bool   `mapstructure:"enabled"`
	Broker      string `mapstructure:"broker"` // e.g. tcp://localhost:1883
	ClientID    string `mapstructure:"client_id"`
	Username    string `mapstructure:"username"`
	Password    string `mapstructure:"password"`
	QoS         int    `mapstructure:"qos"`
	TopicPrefix string `mapstructure:"topic_prefix"`
}

// InfluxConfig configures the optional telemetry time-series mirror.
type InfluxConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	URL     string `mapstructure:"url"`
	Token   string `mapstructure:"token"`
	Org     string `mapstructure:"org"`
	Bucket  string `mapstructure:"bucket"`
}

var (
	ErrInvalidRelayCount = errors.New("relay.count must be between 1 and 4")
	ErrMissingSigningKey = errors.New("auth.signing_key is required")
	ErrInvalidQoS        = errors.New("mqtt.qos must be 0, 1 or 2")
)

func setDefaults(v *viper.Viper) {
	v.SetDefault("port", "3000")
	v.SetDefault("log.level", "info")
	v.SetDefault("db.path", "app.db")
	v.SetDefault("http.read_header_timeout", 10*time.Second)
	v.SetDefault("http.write_timeout", 10*time.Second)
	v.SetDefault("http.idle_timeout", 60*time.Second)
	v.SetDefault("relay.count", 4)
	v.SetDefault("auth.signing_key", "")
	v.SetDefault("auth.token_ttl", time.Hour)
	v.SetDefault("mqtt.enabled", false)
	v.SetDefault("mqtt.broker", "tcp://localhost:1883")
	v.SetDefault("mqtt.client_id", "iot-backend")
	v.SetDefault("mqtt.username", "")
	v.SetDefault("mqtt.password", "")
	v.SetDefault("mqtt.qos", 1)
	v.SetDefault("mqtt.topic_prefix", "iot")
	v.SetDefault("influx.enabled", false)
	v.SetDefault("influx.url", "http://localhost:8086")
	v.SetDefault("influx.token", "")
	v.SetDefault("influx.org", "")
	v.SetDefault("influx.bucket", "telemetry")
}

// Load reads <dir>/config.yml, applies IOT_* environment overrides and validates the result.
// A missing file is not an error: defaults and environment still apply.
func Load(dir string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.AddConfigPath(dir)
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks values that would otherwise fail later at wiring time.
func (c *Config) Validate() error {
	if c.Relay.Count < 1 || c.Relay.Count > 4 {
		return fmt.Errorf("%w: got %d", ErrInvalidRelayCount, c.Relay.Count)
	}
	if strings.TrimSpace(c.Auth.SigningKey) == "" {
		return ErrMissingSigningKey
	}
	if c.MQTT.QoS < 0 || c.MQTT.QoS > 2 {
		return fmt.Errorf("%w: got %d", ErrInvalidQoS, c.MQTT.QoS)
	}
	return nil
}

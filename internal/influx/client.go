package influx

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"iot_backend/internal/config"
	"iot_backend/internal/logger"
	"iot_backend/internal/models"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api"
	"github.com/influxdata/influxdb-client-go/v2/api/write"
)

const (
	connectTimeout = 10 * time.Second
	batchSize      = 100
	flushInterval  = 1000 // milliseconds

	measurement = "telemetry"
)

var (
	ErrDisabled         = errors.New("influxdb: disabled in configuration")
	ErrConnectionFailed = errors.New("influxdb: connection failed")
)

// Client mirrors telemetry readings into InfluxDB through the batching,
// non-blocking write API. Write failures are logged asynchronously.
type Client struct {
	client   influxdb2.Client
	writeAPI api.WriteAPI
	log      *logger.Logger

	mu        sync.RWMutex
	connected bool
}

// Connect pings the server and prepares the write API for cfg.Org/cfg.Bucket.
func Connect(cfg config.InfluxConfig, log *logger.Logger) (*Client, error) {
	if !cfg.Enabled {
		return nil, ErrDisabled
	}

	client := influxdb2.NewClientWithOptions(
		cfg.URL,
		cfg.Token,
		influxdb2.DefaultOptions().
			SetBatchSize(batchSize).
			SetFlushInterval(flushInterval),
	)

	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()

	healthy, err := client.Ping(ctx)
	if err != nil {
		client.Close()
		return nil, fmt.Errorf("%w: ping failed: %w", ErrConnectionFailed, err)
	}
	if !healthy {
		client.Close()
		return nil, fmt.Errorf("%w: server not healthy", ErrConnectionFailed)
	}

	c := &Client{
		client:    client,
		writeAPI:  client.WriteAPI(cfg.Org, cfg.Bucket),
		log:       log.Named("influx"),
		connected: true,
	}
	go c.handleWriteErrors(c.writeAPI.Errors())
	return c, nil
}

func (c *Client) handleWriteErrors(errs <-chan error) {
	for err := range errs {
		if c.log != nil {
			c.log.Warnw("influx_write_failed", "error", err)
		}
	}
}

// IsConnected reports whether the client accepts writes.
func (c *Client) IsConnected() bool {
	if c == nil {
		return false
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.connected
}

// WriteReading queues r for the next batch. It never blocks on the network.
func (c *Client) WriteReading(r models.Reading) {
	if !c.IsConnected() {
		return
	}
	c.writeAPI.WritePoint(readingPoint(r))
}

// Close flushes pending points and releases the client. Safe on a nil client.
func (c *Client) Close() error {
	if c == nil || c.client == nil {
		return nil
	}
	c.mu.Lock()
	c.connected = false
	c.mu.Unlock()

	c.writeAPI.Flush()
	c.client.Close()
	return nil
}

// readingPoint maps a reading to the telemetry measurement, tagged by device.
func readingPoint(r models.Reading) *write.Point {
	fields := map[string]interface{}{
		"temperature": r.Temperature,
		"humidity":    r.Humidity,
	}
	if r.SoilMoisture != nil {
		fields["soil_moisture"] = *r.SoilMoisture
	}
	ts := r.Timestamp
	if ts.IsZero() {
		ts = time.Now()
	}
	return write.NewPoint(measurement, map[string]string{"device_id": r.DeviceID}, fields, ts)
}

package influx

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"iot_backend/internal/config"
	"iot_backend/internal/logger"
	"iot_backend/internal/models"
)

func TestReadingPoint(t *testing.T) {
	soil := 31.0
	ts := time.Date(2025, 4, 2, 9, 30, 0, 0, time.UTC)
	p := readingPoint(models.Reading{DeviceID: "D1", Temperature: 21.5, Humidity: 40, SoilMoisture: &soil, Timestamp: ts})

	if p.Name() != "telemetry" {
		t.Fatalf("measurement = %q", p.Name())
	}
	if !p.Time().Equal(ts) {
		t.Fatalf("time = %v; want %v", p.Time(), ts)
	}
	tags := p.TagList()
	if len(tags) != 1 || tags[0].Key != "device_id" || tags[0].Value != "D1" {
		t.Fatalf("unexpected tags: %+v", tags)
	}

	fields := map[string]interface{}{}
	for _, f := range p.FieldList() {
		fields[f.Key] = f.Value
	}
	if fields["temperature"] != 21.5 || fields["humidity"] != 40.0 || fields["soil_moisture"] != 31.0 {
		t.Fatalf("unexpected fields: %v", fields)
	}
}

func TestReadingPoint_WithoutSoilMoisture(t *testing.T) {
	p := readingPoint(models.Reading{DeviceID: "D1", Temperature: 1, Humidity: 2})
	for _, f := range p.FieldList() {
		if f.Key == "soil_moisture" {
			t.Fatalf("soil_moisture must be omitted when absent")
		}
	}
	if p.Time().IsZero() {
		t.Fatalf("zero timestamp should default to now")
	}
}

func TestConnect_Disabled(t *testing.T) {
	_, err := Connect(config.InfluxConfig{Enabled: false}, nil)
	if !errors.Is(err, ErrDisabled) {
		t.Fatalf("Connect() error = %v, want ErrDisabled", err)
	}
}

func TestConnect_Unhealthy(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	_, err := Connect(config.InfluxConfig{Enabled: true, URL: srv.URL, Token: "t", Org: "o", Bucket: "b"}, nil)
	if !errors.Is(err, ErrConnectionFailed) {
		t.Fatalf("Connect() error = %v, want ErrConnectionFailed", err)
	}
}

func TestWriteReading_FlushedOnClose(t *testing.T) {
	var (
		mu   sync.Mutex
		body strings.Builder
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/ping":
			w.WriteHeader(http.StatusNoContent)
		case "/api/v2/write":
			b, _ := io.ReadAll(r.Body)
			mu.Lock()
			body.Write(b)
			mu.Unlock()
			w.WriteHeader(http.StatusNoContent)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	c, err := Connect(config.InfluxConfig{Enabled: true, URL: srv.URL, Token: "t", Org: "o", Bucket: "b"}, logger.Nop())
	if err != nil {
		t.Fatalf("Connect: %v", err)
	}
	if !c.IsConnected() {
		t.Fatalf("IsConnected() = false after Connect()")
	}

	c.WriteReading(models.Reading{DeviceID: "D1", Temperature: 21.5, Humidity: 40, Timestamp: time.Now()})
	if err := c.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	deadline := time.Now().Add(2 * time.Second)
	for {
		mu.Lock()
		got := body.String()
		mu.Unlock()
		if strings.Contains(got, "telemetry,device_id=D1") && strings.Contains(got, "temperature=21.5") {
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("point not written, body=%q", got)
		}
		time.Sleep(10 * time.Millisecond)
	}

	// writes after Close are dropped
	c.WriteReading(models.Reading{DeviceID: "D2"})
}

func TestNilClientIsSafe(t *testing.T) {
	var c *Client
	c.WriteReading(models.Reading{DeviceID: "D1"})
	if err := c.Close(); err != nil {
		t.Fatalf("Close on nil client: %v", err)
	}
}

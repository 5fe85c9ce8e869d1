package handlers

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"iot_backend/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// Send/receive timing configuration and message size limits.
const (
	writeWait        = 10 * time.Second
	pongWait         = 60 * time.Second
	pingPeriod       = (pongWait * 9) / 10
	maxMsgSize       = 1 << 12 // 4 KB
	defaultInterval  = 1 * time.Second
	maxInterval      = 10 * time.Second
	maxIntervalMilli = 10_000 // 10s in ms

	wsTypeRelayState = "relay_state"
	wsTypeError      = "error"
)

// Envelope used for WebSocket messages.
type wsEnvelope struct {
	Type  string      `json:"type"`
	Data  interface{} `json:"data,omitempty"`
	Error string      `json:"error,omitempty"`
}

// Devices connect from firmware, not browsers, so the origin is not checked.
var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// @Summary      Relay state stream
// @Description  WebSocket upgrade. Pushes {"type":"relay_state","data":{...}} on connect and every interval (default 1s, max 10s). The stream ends when the token stops being valid.
// @Tags         relay
// @Param        x-auth-token  header  string  true   "Device token"
// @Param        deviceId      query   string  true   "Device ID"
// @Param        interval      query   string  false  "Push interval, e.g. 2s"
// @Param        interval_ms   query   int     false  "Push interval in milliseconds"
// @Success      101
// @Failure      401  {object}  errorResponse
// @Router       /api/relay/ws [get]
func (h *Handler) relayStream(c *gin.Context) {
	deviceID := c.Query("deviceId")
	creds := deviceCredentials(c)
	interval := h.parseInterval(c)

	// Reject before upgrading so the client sees a plain HTTP status.
	if _, err := h.services.GetStatus(c.Request.Context(), deviceID, creds); err != nil {
		h.respondError(c, "ws_auth_failed", err, "device_id", deviceID)
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		if h.log != nil {
			h.log.Errorw("ws_upgrade_failed", "err", err)
		}
		return
	}
	defer func() { _ = conn.Close() }()

	conn.SetReadLimit(maxMsgSize)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	// Reader goroutine to handle control frames and detect disconnects.
	done := make(chan struct{})
	go h.startReader(conn, done)

	ticker := time.NewTicker(interval)
	ping := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		ping.Stop()
	}()

	ctx := c.Request.Context()
	if err := h.sendState(ctx, conn, deviceID, creds); err != nil {
		if h.log != nil {
			h.log.Infow("ws_write_failed_initial", "device_id", deviceID, "err", err)
		}
		return
	}

	for {
		select {
		case <-done:
			return
		case <-ctx.Done():
			return
		case <-ping.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				if h.log != nil {
					h.log.Infow("ws_ping_failed", "err", err)
				}
				return
			}
		case <-ticker.C:
			if err := h.sendState(ctx, conn, deviceID, creds); err != nil {
				if h.log != nil {
					h.log.Infow("ws_write_failed", "device_id", deviceID, "err", err)
				}
				return
			}
		}
	}
}

// Helper: parseInterval reads ?interval=2s or ?interval_ms=2000 with bounds.
func (h *Handler) parseInterval(c *gin.Context) time.Duration {
	if s := c.Query("interval"); s != "" {
		if d, err := time.ParseDuration(s); err == nil && d > 0 && d <= maxInterval {
			return d
		}
	}

	if ms := c.Query("interval_ms"); ms != "" {
		if v, err := strconv.Atoi(ms); err == nil && v > 0 && v <= maxIntervalMilli {
			return time.Duration(v) * time.Millisecond
		}
	}

	return defaultInterval
}

// Helper: startReader drains incoming messages to handle control frames and detect closure.
func (h *Handler) startReader(conn *websocket.Conn, done chan<- struct{}) {
	defer close(done)
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if h.log != nil {
				h.log.Infow("ws_read_closed", "err", err)
			}
			return
		}
	}
}

// Helper: sendState re-authenticates and writes the current relay state.
// A rotated token gets one error frame and the stream is closed.
func (h *Handler) sendState(ctx context.Context, conn *websocket.Conn, deviceID string, creds service.Credentials) error {
	st, err := h.services.GetStatus(ctx, deviceID, creds)
	_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
	if err != nil {
		_ = conn.WriteJSON(wsEnvelope{Type: wsTypeError, Error: publicMessage(err)})
		return err
	}
	return conn.WriteJSON(wsEnvelope{Type: wsTypeRelayState, Data: relayBody(deviceID, st)})
}

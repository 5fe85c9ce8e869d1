package handlers

import (
	"errors"
	"net/http"
	"strings"

	"iot_backend/internal/relay"
	"iot_backend/internal/service"

	"github.com/gin-gonic/gin"
)

var errRelayNumberRange = errors.New("relayNumber must be at least 1")

// RelayControlRequest accepts both the legacy single-relay form
// {"deviceId","relay"} and the indexed form {"deviceId","relayNumber","state"}.
type RelayControlRequest struct {
	DeviceID    string `json:"deviceId" example:"greenhouse-01"`
	Relay       string `json:"relay,omitempty" example:"on"`
	RelayNumber *int   `json:"relayNumber,omitempty" example:"2"`
	State       string `json:"state,omitempty" example:"off"`
}

// params resolves the two request forms into one service call.
func (r RelayControlRequest) params() (service.SetRelayParams, error) {
	p := service.SetRelayParams{DeviceID: strings.TrimSpace(r.DeviceID), State: r.State}
	if p.State == "" {
		p.State = r.Relay
	}
	if r.RelayNumber != nil {
		if *r.RelayNumber < 1 {
			return p, errRelayNumberRange
		}
		p.RelayNumber = *r.RelayNumber
	}
	return p, nil
}

// @Summary      Switch a relay
// @Description  Requires x-auth-token of the device. Responds with the full relay state: "relay" for single-relay deployments, "relays" otherwise.
// @Tags         relay
// @Accept       json
// @Produce      json
// @Param        x-auth-token  header    string               true  "Device token"
// @Param        body          body      RelayControlRequest  true  "Relay command"
// @Success      200           {object}  map[string]interface{}  "success, deviceId, relay|relays"
// @Failure      400           {object}  errorResponse
// @Failure      401           {object}  errorResponse
// @Failure      500           {object}  errorResponse
// @Router       /api/relay/control [post]
func (h *Handler) controlRelay(c *gin.Context) {
	var req RelayControlRequest
	if ok := h.bindJSONOrBadRequest(c, &req); !ok {
		return
	}
	p, err := req.params()
	if err != nil {
		h.badRequest(c, relay.ErrInvalidRelayIndex.Error(), err)
		return
	}

	st, err := h.services.SetStatus(c.Request.Context(), p, deviceCredentials(c))
	if err != nil {
		h.respondError(c, "relay_set_failed", err, "device_id", p.DeviceID, "relay", p.RelayNumber)
		return
	}
	if h.log != nil {
		h.log.Infow("relay_set", "device_id", p.DeviceID, "relay", p.RelayNumber, "state", st.Named())
	}
	c.JSON(http.StatusOK, relayBody(p.DeviceID, st))
}

// @Summary      Read relay state
// @Description  The device ID comes from the path or the deviceId query parameter.
// @Tags         relay
// @Produce      json
// @Param        x-auth-token  header    string  true   "Device token"
// @Param        deviceId      path      string  false  "Device ID"
// @Param        deviceId      query     string  false  "Device ID"
// @Success      200           {object}  map[string]interface{}  "success, deviceId, relay|relays"
// @Failure      401           {object}  errorResponse
// @Failure      500           {object}  errorResponse
// @Router       /api/relay/status/{deviceId} [get]
// @Router       /api/relay/status [get]
func (h *Handler) relayStatus(c *gin.Context) {
	deviceID := c.Param("deviceId")
	if deviceID == "" {
		deviceID = c.Query("deviceId")
	}
	deviceID = strings.TrimSpace(deviceID)

	st, err := h.services.GetStatus(c.Request.Context(), deviceID, deviceCredentials(c))
	if err != nil {
		h.respondError(c, "relay_get_failed", err, "device_id", deviceID)
		return
	}
	c.JSON(http.StatusOK, relayBody(deviceID, st))
}

package handlers

import (
	"net/http"
	"strconv"

	"iot_backend/internal/service"

	"github.com/gin-gonic/gin"
)

// ReadingRequest is the body of POST /api/data.
type ReadingRequest struct {
	DeviceID     string   `json:"deviceId" example:"greenhouse-01"`
	Temperature  *float64 `json:"temperature" example:"21.5"`
	Humidity     *float64 `json:"humidity" example:"48"`
	SoilMoisture *float64 `json:"soilMoisture,omitempty" example:"35"`
}

// @Summary      Push a telemetry reading
// @Description  temperature in [-40, 80], humidity and soilMoisture in [0, 100].
// @Tags         telemetry
// @Accept       json
// @Produce      json
// @Param        x-auth-token  header    string          true  "Device token"
// @Param        body          body      ReadingRequest  true  "Reading"
// @Success      201           {object}  map[string]interface{}  "success, data"
// @Failure      400           {object}  errorResponse
// @Failure      401           {object}  errorResponse
// @Failure      500           {object}  errorResponse
// @Router       /api/data [post]
func (h *Handler) postReading(c *gin.Context) {
	var req ReadingRequest
	if ok := h.bindJSONOrBadRequest(c, &req); !ok {
		return
	}

	rd, err := h.services.Record(c.Request.Context(), service.ReadingParams{
		DeviceID:     req.DeviceID,
		Temperature:  req.Temperature,
		Humidity:     req.Humidity,
		SoilMoisture: req.SoilMoisture,
	}, deviceCredentials(c))
	if err != nil {
		h.respondError(c, "telemetry_record_failed", err, "device_id", req.DeviceID)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "data": rd})
}

// @Summary      Latest reading of a device
// @Tags         telemetry
// @Produce      json
// @Param        x-auth-token  header    string  true  "Device token"
// @Param        deviceId      query     string  true  "Device ID"
// @Success      200           {object}  map[string]interface{}  "success, data (null when the device has no readings)"
// @Failure      401           {object}  errorResponse
// @Failure      500           {object}  errorResponse
// @Router       /api/data/latest [get]
func (h *Handler) latestReading(c *gin.Context) {
	deviceID := c.Query("deviceId")
	rd, err := h.services.Latest(c.Request.Context(), deviceID, deviceCredentials(c))
	if err != nil {
		h.respondError(c, "telemetry_latest_failed", err, "device_id", deviceID)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": rd})
}

// @Summary      Reading history of a device
// @Description  Newest first. limit defaults to 100 and is capped at 1000.
// @Tags         telemetry
// @Produce      json
// @Param        x-auth-token  header    string  true   "Device token"
// @Param        deviceId      query     string  true   "Device ID"
// @Param        limit         query     int     false  "Maximum number of readings"
// @Success      200           {object}  map[string]interface{}  "success, count, data"
// @Failure      400           {object}  errorResponse
// @Failure      401           {object}  errorResponse
// @Failure      500           {object}  errorResponse
// @Router       /api/data [get]
func (h *Handler) readingHistory(c *gin.Context) {
	deviceID := c.Query("deviceId")

	limit := 0
	if s := c.Query("limit"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil {
			h.badRequest(c, "invalid 'limit'; use a positive integer", err)
			return
		}
		limit = v
	}

	list, err := h.services.History(c.Request.Context(), deviceID, limit, deviceCredentials(c))
	if err != nil {
		h.respondError(c, "telemetry_history_failed", err, "device_id", deviceID)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "count": len(list), "data": list})
}

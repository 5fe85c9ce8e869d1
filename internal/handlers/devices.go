package handlers

import (
	"net/http"

	"iot_backend/internal/service"

	"github.com/gin-gonic/gin"
)

// RegisterDeviceRequest is the body of POST /api/devices/register.
type RegisterDeviceRequest struct {
	DeviceID string `json:"deviceId" example:"greenhouse-01"`
	Name     string `json:"name,omitempty" example:"Greenhouse pump"`
	Location string `json:"location,omitempty" example:"North wing"`
}

// @Summary      Register a device or rotate its token
// @Description  Issues a fresh 64-char hex token. Re-registering an existing deviceId invalidates the previous token; name and location are kept.
// @Tags         devices
// @Accept       json
// @Produce      json
// @Param        body  body      RegisterDeviceRequest   true  "Device"
// @Success      201   {object}  map[string]interface{}  "success, device{deviceId, authToken, name, location}"
// @Failure      400   {object}  errorResponse
// @Failure      500   {object}  errorResponse
// @Router       /api/devices/register [post]
func (h *Handler) registerDevice(c *gin.Context) {
	var req RegisterDeviceRequest
	if ok := h.bindJSONOrBadRequest(c, &req); !ok {
		return
	}

	cred, created, err := h.services.Register(c.Request.Context(), service.RegisterParams{
		DeviceID: req.DeviceID,
		Name:     req.Name,
		Location: req.Location,
	})
	if err != nil {
		h.respondError(c, "device_register_failed", err, "device_id", req.DeviceID)
		return
	}

	if h.log != nil {
		h.log.Infow("device_registered", "device_id", cred.DeviceID, "created", created)
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "device": cred})
}

// @Summary      List registered devices
// @Tags         devices
// @Produce      json
// @Success      200  {object}  map[string]interface{}  "success, count, devices"
// @Failure      401  {object}  errorResponse
// @Failure      500  {object}  errorResponse
// @Router       /api/devices/count [get]
// @Security     BearerAuth
func (h *Handler) countDevices(c *gin.Context) {
	devices, err := h.services.ListDevices(c.Request.Context())
	if err != nil {
		h.respondError(c, "devices_list_failed", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"count":   len(devices),
		"devices": devices,
	})
}

// @Summary      Get a device
// @Tags         devices
// @Produce      json
// @Param        deviceId  path      string  true  "Device ID"
// @Success      200       {object}  map[string]interface{}  "success, device"
// @Failure      401       {object}  errorResponse
// @Failure      404       {object}  errorResponse
// @Failure      500       {object}  errorResponse
// @Router       /api/devices/{deviceId} [get]
// @Security     BearerAuth
func (h *Handler) getDevice(c *gin.Context) {
	id := c.Param("deviceId")
	d, err := h.services.GetDevice(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, "device_get_failed", err, "device_id", id)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "device": d})
}

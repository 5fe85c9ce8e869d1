package handlers

import (
	"errors"
	"net/http"
	"time"

	"iot_backend/internal/relay"
	"iot_backend/internal/service"

	"github.com/gin-gonic/gin"
)

const (
	headerAuthToken = "x-auth-token"

	errInternal    = "internal server error"
	errInvalidBody = "invalid request body"
)

// errorResponse is the body of every failed request.
type errorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// statusFor maps a service error category to its HTTP status.
func statusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, service.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrConflict):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// publicMessage is the error text a client may see.
func publicMessage(err error) string {
	if statusFor(err) == http.StatusInternalServerError {
		return errInternal
	}
	return err.Error()
}

// respondError renders err with the status of its category. Infrastructure
// errors are logged and replaced by a generic message.
func (h *Handler) respondError(c *gin.Context, logKey string, err error, kv ...interface{}) {
	code := statusFor(err)
	if code == http.StatusInternalServerError {
		if h.log != nil {
			h.log.Errorw(logKey, append([]interface{}{"err", err}, kv...)...)
		}
		c.AbortWithStatusJSON(code, errorResponse{Error: errInternal})
		return
	}
	if h.log != nil {
		h.log.Infow(logKey, append([]interface{}{"err", err, "status", code}, kv...)...)
	}
	c.AbortWithStatusJSON(code, errorResponse{Error: publicMessage(err)})
}

func (h *Handler) badRequest(c *gin.Context, msg string, details error) {
	body := errorResponse{Error: msg}
	if details != nil {
		body.Details = details.Error()
	}
	c.AbortWithStatusJSON(http.StatusBadRequest, body)
}

// bindJSONOrBadRequest tries to bind the request body into dst and writes a 400 JSON on failure.
// Returns false if the request was already handled (aborted), true otherwise.
func (h *Handler) bindJSONOrBadRequest(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		if h.log != nil {
			h.log.Infow("bad_request_body", "path", c.FullPath(), "err", err)
		}
		h.badRequest(c, errInvalidBody, err)
		return false
	}
	return true
}

// deviceCredentials reads the device token header.
func deviceCredentials(c *gin.Context) service.Credentials {
	return service.Credentials{AuthToken: c.GetHeader(headerAuthToken)}
}

// relayBody renders a relay state: "relay" for a single-relay topology,
// "relays" keyed relay1..relayN otherwise.
func relayBody(deviceID string, st relay.State) gin.H {
	body := gin.H{"success": true, "deviceId": deviceID}
	if st.Single() {
		body["relay"] = st.Relay(1)
	} else {
		body["relays"] = st.Named()
	}
	return body
}

// @Summary      API banner
// @Tags         system
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       / [get]
func (h *Handler) root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "IoT Backend API is running"})
}

// @Summary      Health check
// @Tags         system
// @Produce      json
// @Success      200  {object}  map[string]interface{}  "status, timestamp"
// @Router       /api/health [get]
func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "UP",
		"timestamp": time.Now().UTC(),
	})
}

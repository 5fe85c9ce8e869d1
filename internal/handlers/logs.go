package handlers

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"iot_backend/internal/service"

	"github.com/gin-gonic/gin"
)

const (
	errFromInvalid = "invalid 'from' time; use RFC3339, 'YYYY-MM-DD HH:MM:SS' or YYYY-MM-DD"
	errToInvalid   = "invalid 'to' time; use RFC3339, 'YYYY-MM-DD HH:MM:SS' or YYYY-MM-DD"

	layoutDateTime = "2006-01-02 15:04:05"
	layoutDate     = "2006-01-02"
)

// isDateOnly reports whether the query string represents a date without time component.
func isDateOnly(s string) bool {
	return !strings.ContainsAny(s, "T ")
}

// @Summary      Relay command log
// @Description  Applied relay changes, oldest first. If 'to' is date-only, it is treated as end-of-day inclusive (23:59:59.999999999Z).
// @Tags         relay
// @Produce      json
// @Param        from      query     string  false  "Start of range (RFC3339, 'YYYY-MM-DD HH:MM:SS', or 'YYYY-MM-DD')"  example(2025-08-01)
// @Param        to        query     string  false  "End of range (RFC3339, 'YYYY-MM-DD HH:MM:SS', or 'YYYY-MM-DD'). Date-only treated as end of day."  example(2025-08-31)
// @Param        deviceId  query     string  false  "Only events of this device"
// @Success      200       {object}  map[string]interface{}  "success, count, events"
// @Failure      400       {object}  errorResponse
// @Failure      401       {object}  errorResponse
// @Failure      500       {object}  errorResponse
// @Router       /api/relay/logs [get]
// @Security     BearerAuth
func (h *Handler) getLogs(c *gin.Context) {
	var (
		from     time.Time
		to       time.Time
		deviceID = strings.TrimSpace(c.Query("deviceId"))
		err      error
	)
	if qs := c.Query("from"); qs != "" {
		from, err = parseQueryTime(qs)
		if err != nil {
			h.badRequest(c, errFromInvalid, nil)
			return
		}
	}
	// If the user didn't include a time component, treat "to" as the end of that day.
	if qs := c.Query("to"); qs != "" {
		to, err = parseQueryTime(qs)
		if err != nil {
			h.badRequest(c, errToInvalid, nil)
			return
		}
		if isDateOnly(qs) {
			to = to.Add(24*time.Hour - time.Nanosecond).UTC()
		}
	}

	events, err := h.services.EventLog.List(c.Request.Context(), service.LogFilter{
		From:     from,
		To:       to,
		DeviceID: deviceID,
	})
	if err != nil {
		h.respondError(c, "relay_logs_list_failed", err, "from", from, "to", to, "device_id", deviceID)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"count":   len(events),
		"events":  events,
	})
}

func parseQueryTime(s string) (time.Time, error) {
	// Try multiple accepted formats, normalizing to UTC.
	for _, layout := range []string{time.RFC3339, layoutDateTime, layoutDate} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf(
		"invalid time format %q, expected one of: "+
			"RFC3339 (e.g. 2025-08-27T15:04:05Z), "+
			"'YYYY-MM-DD HH:MM:SS', "+
			"'YYYY-MM-DD'",
		s,
	)
}

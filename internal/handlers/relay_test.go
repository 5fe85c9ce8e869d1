package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"iot_backend/internal/relay"
	"iot_backend/internal/service"
)

func doJSON(t *testing.T, r http.Handler, method, path, body string, hdr http.Header) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	for k, vv := range hdr {
		for _, v := range vv {
			req.Header.Add(k, v)
		}
	}
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func TestRelayControlRequest_Params(t *testing.T) {
	two, zero := 2, 0
	cases := []struct {
		name    string
		req     RelayControlRequest
		want    service.SetRelayParams
		wantErr bool
	}{
		{"legacy form", RelayControlRequest{DeviceID: "D1", Relay: "ON"}, service.SetRelayParams{DeviceID: "D1", State: "ON"}, false},
		{"indexed form", RelayControlRequest{DeviceID: "D1", RelayNumber: &two, State: "off"}, service.SetRelayParams{DeviceID: "D1", RelayNumber: 2, State: "off"}, false},
		{"state wins over relay", RelayControlRequest{DeviceID: "D1", Relay: "on", State: "off"}, service.SetRelayParams{DeviceID: "D1", State: "off"}, false},
		{"explicit zero", RelayControlRequest{DeviceID: "D1", RelayNumber: &zero, State: "on"}, service.SetRelayParams{}, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := tc.req.params()
			if (err != nil) != tc.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tc.wantErr)
			}
			if !tc.wantErr && got != tc.want {
				t.Fatalf("params = %+v, want %+v", got, tc.want)
			}
		})
	}
}

func TestControlRelay_MultiRelayResponse(t *testing.T) {
	rel := &mockRelay{state: relayState(4, 2)}
	r := newTestRouter(&service.Service{RelayControl: rel})

	w := doJSON(t, r, http.MethodPost, "/api/relay/control", `{"deviceId":"D1","relayNumber":2,"state":"on"}`, deviceHeader("tok"))
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
	var out struct {
		Success  bool              `json:"success"`
		DeviceID string            `json:"deviceId"`
		Relay    *string           `json:"relay"`
		Relays   map[string]string `json:"relays"`
	}
	_ = json.Unmarshal(w.Body.Bytes(), &out)
	if !out.Success || out.DeviceID != "D1" || out.Relay != nil {
		t.Fatalf("unexpected body: %s", w.Body.String())
	}
	want := map[string]string{"relay1": "off", "relay2": "on", "relay3": "off", "relay4": "off"}
	for k, v := range want {
		if out.Relays[k] != v {
			t.Fatalf("%s=%q want %q (body %s)", k, out.Relays[k], v, w.Body.String())
		}
	}
	if rel.lastCreds.AuthToken != "tok" || rel.lastSet.RelayNumber != 2 || rel.lastSet.State != "on" {
		t.Fatalf("unexpected call: creds=%+v params=%+v", rel.lastCreds, rel.lastSet)
	}
}

func TestControlRelay_LegacySingleRelay(t *testing.T) {
	rel := &mockRelay{state: relayState(1, 1)}
	r := newTestRouter(&service.Service{RelayControl: rel})

	for _, path := range []string{"/api/relay/control", "/api/relay/status"} {
		w := doJSON(t, r, http.MethodPost, path, `{"deviceId":"D1","relay":"on"}`, deviceHeader("tok"))
		if w.Code != http.StatusOK {
			t.Fatalf("%s status=%d body=%s", path, w.Code, w.Body.String())
		}
		var out map[string]any
		_ = json.Unmarshal(w.Body.Bytes(), &out)
		if out["relay"] != "on" || out["deviceId"] != "D1" || out["success"] != true {
			t.Fatalf("%s unexpected body: %s", path, w.Body.String())
		}
		if _, ok := out["relays"]; ok {
			t.Fatalf("%s single relay body must not carry relays", path)
		}
	}
}

func TestControlRelay_ErrorMapping(t *testing.T) {
	cases := []struct {
		name string
		body string
		err  error
		code int
	}{
		{"bad json", `{"deviceId":"D1",`, nil, http.StatusBadRequest},
		{"relayNumber zero", `{"deviceId":"D1","relayNumber":0,"state":"on"}`, nil, http.StatusBadRequest},
		{"missing token", `{"deviceId":"D1","relay":"on"}`, service.ErrMissingCredentials, http.StatusUnauthorized},
		{"bad token", `{"deviceId":"D1","relay":"on"}`, service.ErrInvalidCredentials, http.StatusUnauthorized},
		{"bad state", `{"deviceId":"D1","relay":"maybe"}`, errors.Join(service.ErrValidation, relay.ErrInvalidState), http.StatusBadRequest},
		{"store down", `{"deviceId":"D1","relay":"on"}`, service.ErrStoreUnavailable, http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rel := &mockRelay{err: tc.err}
			r := newTestRouter(&service.Service{RelayControl: rel})
			w := doJSON(t, r, http.MethodPost, "/api/relay/control", tc.body, deviceHeader("tok"))
			if w.Code != tc.code {
				t.Fatalf("status=%d want %d body=%s", w.Code, tc.code, w.Body.String())
			}
			var out errorResponse
			if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
				t.Fatalf("error body not JSON: %v", err)
			}
			if out.Success || out.Error == "" {
				t.Fatalf("unexpected error body: %s", w.Body.String())
			}
		})
	}
}

func TestRelayStatus_PathAndQuery(t *testing.T) {
	rel := &mockRelay{state: relayState(4, 1, 4)}
	r := newTestRouter(&service.Service{RelayControl: rel})

	for _, path := range []string{"/api/relay/status/D1", "/api/relay/status?deviceId=D1"} {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, path, nil)
		req.Header = deviceHeader("tok")
		r.ServeHTTP(w, req)
		if w.Code != http.StatusOK {
			t.Fatalf("%s status=%d body=%s", path, w.Code, w.Body.String())
		}
		if rel.lastDeviceID != "D1" || rel.lastCreds.AuthToken != "tok" {
			t.Fatalf("%s unexpected call: %q %+v", path, rel.lastDeviceID, rel.lastCreds)
		}
		var out struct {
			Relays map[string]string `json:"relays"`
		}
		_ = json.Unmarshal(w.Body.Bytes(), &out)
		if out.Relays["relay1"] != "on" || out.Relays["relay4"] != "on" || out.Relays["relay2"] != "off" {
			t.Fatalf("%s unexpected body: %s", path, w.Body.String())
		}
	}
}

func TestRelayStatus_Unauthenticated(t *testing.T) {
	rel := &mockRelay{err: service.ErrMissingCredentials}
	r := newTestRouter(&service.Service{RelayControl: rel})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/relay/status/D1", nil))
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}

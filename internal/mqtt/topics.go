package mqtt

import "strings"

const defaultTopicPrefix = "iot"

// Topics builds the topic names this backend publishes to.
//
//	<prefix>/devices/<deviceId>/relay/set   retained relay command
//	<prefix>/backend/status                 retained online/offline marker (LWT)
type Topics struct {
	Prefix string
}

func (t Topics) root() string {
	p := strings.Trim(strings.TrimSpace(t.Prefix), "/")
	if p == "" {
		return defaultTopicPrefix
	}
	return p
}

// RelayCommand is the topic a device subscribes to for its relay state.
func (t Topics) RelayCommand(deviceID string) string {
	return t.root() + "/devices/" + deviceID + "/relay/set"
}

// Status carries the backend's availability.
func (t Topics) Status() string {
	return t.root() + "/backend/status"
}

// validTopicLevel reports whether s can be used as a single topic level.
// Wildcards and separators are not allowed in published topic names.
func validTopicLevel(s string) bool {
	return s != "" && !strings.ContainsAny(s, "+#/\x00")
}

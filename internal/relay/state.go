package relay

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// MaxRelays is the largest number of relays a single device can expose.
const MaxRelays = 4

// Value is the position of one relay.
type Value string

const (
	Off Value = "off"
	On  Value = "on"
)

var (
	ErrInvalidState      = errors.New(`relay state must be either "on" or "off"`)
	ErrInvalidRelayIndex = errors.New("relay number out of range")
	ErrInvalidTopology   = errors.New("relay count must be between 1 and 4")
)

// ParseValue accepts "on"/"off" in any letter case and returns the normalized value.
func ParseValue(s string) (Value, error) {
	switch v := Value(strings.ToLower(s)); v {
	case On, Off:
		return v, nil
	default:
		return "", ErrInvalidState
	}
}

// Topology describes how many relays every device carries.
// A count of 1 is the legacy single-relay shape.
type Topology struct {
	RelayCount int
}

// NewTopology validates count and returns the topology.
func NewTopology(count int) (Topology, error) {
	if count < 1 || count > MaxRelays {
		return Topology{}, fmt.Errorf("%w: got %d", ErrInvalidTopology, count)
	}
	return Topology{RelayCount: count}, nil
}

// Single reports whether devices expose exactly one relay.
func (t Topology) Single() bool { return t.RelayCount == 1 }

// resolveIndex maps a 1-based relay number to a slice index.
// Zero means the caller did not address a relay and selects relay 1.
func (t Topology) resolveIndex(n int) (int, error) {
	if n == 0 {
		return 0, nil
	}
	if n < 1 || n > t.RelayCount {
		return 0, fmt.Errorf("%w: %d not in 1..%d", ErrInvalidRelayIndex, n, t.RelayCount)
	}
	return n - 1, nil
}

// State is an immutable snapshot of a device's relays.
type State struct {
	values []Value
}

func newState(values []Value) State {
	cp := make([]Value, len(values))
	copy(cp, values)
	return State{values: cp}
}

func defaultValues(count int) []Value {
	vs := make([]Value, count)
	for i := range vs {
		vs[i] = Off
	}
	return vs
}

// Len returns the number of relays in the snapshot.
func (s State) Len() int { return len(s.values) }

// Single reports whether the snapshot comes from a single-relay topology.
func (s State) Single() bool { return len(s.values) == 1 }

// Relay returns relay n (1-based). Unknown relays read as Off.
func (s State) Relay(n int) Value {
	if n < 1 || n > len(s.values) {
		return Off
	}
	return s.values[n-1]
}

// Named returns the relays keyed relay1..relayN.
func (s State) Named() map[string]Value {
	out := make(map[string]Value, len(s.values))
	for i, v := range s.values {
		out[RelayName(i+1)] = v
	}
	return out
}

// RelayName returns the wire key for relay n, e.g. "relay2".
func RelayName(n int) string {
	return "relay" + strconv.Itoa(n)
}

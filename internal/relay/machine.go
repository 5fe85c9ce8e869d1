package relay

import "sync"

// Machine owns the relay state of every device in the process.
// Writes for one device are serialized by that device's mutex;
// different devices never contend.
type Machine struct {
	topo    Topology
	devices sync.Map // deviceID -> *entry
}

type entry struct {
	mu     sync.Mutex
	values []Value
}

// NewMachine returns an empty machine; every device starts all-off.
func NewMachine(topo Topology) *Machine {
	return &Machine{topo: topo}
}

// Topology returns the relay layout the machine enforces.
func (m *Machine) Topology() Topology { return m.topo }

// Get returns the current state for deviceID, or all-off if it was never set.
func (m *Machine) Get(deviceID string) State {
	v, ok := m.devices.Load(deviceID)
	if !ok {
		return State{values: defaultValues(m.topo.RelayCount)}
	}
	e := v.(*entry)
	e.mu.Lock()
	defer e.mu.Unlock()
	return newState(e.values)
}

// Set switches relay n (1-based, 0 = relay 1) of deviceID to desired and
// returns the full updated state. Invalid input leaves the state untouched.
func (m *Machine) Set(deviceID string, n int, desired string) (State, error) {
	return m.SetThen(deviceID, n, desired, nil)
}

// SetThen is Set followed by after, which runs before the device is unlocked.
// Callbacks for one device therefore see states in the order they were produced.
// after must not call back into the machine for the same device.
func (m *Machine) SetThen(deviceID string, n int, desired string, after func(State)) (State, error) {
	val, err := ParseValue(desired)
	if err != nil {
		return State{}, err
	}
	idx, err := m.topo.resolveIndex(n)
	if err != nil {
		return State{}, err
	}

	e := m.entry(deviceID)
	e.mu.Lock()
	defer e.mu.Unlock()
	e.values[idx] = val
	st := newState(e.values)
	if after != nil {
		after(st)
	}
	return st, nil
}

func (m *Machine) entry(deviceID string) *entry {
	if v, ok := m.devices.Load(deviceID); ok {
		return v.(*entry)
	}
	v, _ := m.devices.LoadOrStore(deviceID, &entry{values: defaultValues(m.topo.RelayCount)})
	return v.(*entry)
}

package hyperspec

// Event is a synchronous notification source. Handlers run in registration
// order when Trigger is called. Events are not safe for concurrent use:
// the UI event loop serializes delivery, and all recomputation happens on
// the goroutine that mutates the trigger object.
type Event struct {
	conns []*Connection
}

// NewEvent returns an event with no handlers.
func NewEvent() *Event { return &Event{} }

// Connection represents one registered handler.
type Connection struct {
	ev *Event
	fn func()
}

// Connect registers fn and returns its connection handle.
func (e *Event) Connect(fn func()) *Connection {
	c := &Connection{ev: e, fn: fn}
	e.conns = append(e.conns, c)
	return c
}

// Trigger runs every connected handler in registration order.
func (e *Event) Trigger() {
	// Copy first: a handler may disconnect itself or connect others.
	conns := make([]*Connection, len(e.conns))
	copy(conns, e.conns)
	for _, c := range conns {
		if c.ev != nil {
			c.fn()
		}
	}
}

// ConnectionCount returns the number of live handlers.
func (e *Event) ConnectionCount() int { return len(e.conns) }

// Disconnect removes the handler from its event. Disconnecting twice is a
// no-op.
func (c *Connection) Disconnect() {
	if c.ev == nil {
		return
	}
	for i, other := range c.ev.conns {
		if other == c {
			c.ev.conns = append(c.ev.conns[:i], c.ev.conns[i+1:]...)
			break
		}
	}
	c.ev = nil
}

// SignalEvents holds the events a signal exposes.
type SignalEvents struct {
	// DataChanged fires after the signal's values are updated in place.
	DataChanged *Event
}

func newSignalEvents() *SignalEvents {
	return &SignalEvents{DataChanged: NewEvent()}
}

// AxesEvents holds the events an axes manager exposes.
type AxesEvents struct {
	// AnyAxisChanged fires when any axis of the signal is replaced or
	// rescaled, including when a derived signal is rebuilt over a new
	// spectral sub-range.
	AnyAxisChanged *Event
}

func newAxesEvents() *AxesEvents {
	return &AxesEvents{AnyAxisChanged: NewEvent()}
}

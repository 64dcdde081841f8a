package spanmap

import (
	"github.com/bob-anderson-ok/SpanMapViewer/hyperspec"
)

// Recompute produces the current value of a derived signal.
type Recompute func() (*hyperspec.Signal, error)

// Binding is a persistent dataflow link from an event source to a derived
// signal. It is built in one of two modes:
//
//   - Bind: the output is a new linked signal whose data and axes are
//     replaced on every event (the shape may change between updates).
//   - BindInPlace: the output is an existing signal whose backing array is
//     overwritten on every event (the identity is preserved, so viewers
//     keep their state).
//
// A recompute failure during event dispatch has no caller to report to;
// the binding records it and leaves the previous output untouched.
type Binding struct {
	// Out is the signal the binding keeps up to date.
	Out *hyperspec.Signal

	inPlace bool
	f       Recompute
	conn    *hyperspec.Connection
	err     error
}

// Bind evaluates f once to create a linked output signal, then re-evaluates
// it on every trigger of event, replacing the output's data and axes. The
// replacement fires the output's AnyAxisChanged, so further bindings can
// chain off it.
func Bind(f Recompute, event *hyperspec.Event) (*Binding, error) {
	initial, err := f()
	if err != nil {
		return nil, err
	}
	b := &Binding{Out: initial, f: f}
	b.conn = event.Connect(b.update)
	return b, nil
}

// BindInPlace evaluates f once into out's existing backing array, then
// re-evaluates on every trigger of event. Out keeps its identity; each
// update fires out's DataChanged.
func BindInPlace(f Recompute, event *hyperspec.Event, out *hyperspec.Signal) (*Binding, error) {
	b := &Binding{Out: out, inPlace: true, f: f}
	if err := b.evalOnce(); err != nil {
		return nil, err
	}
	b.conn = event.Connect(b.update)
	return b, nil
}

func (b *Binding) evalOnce() error {
	res, err := b.f()
	if err != nil {
		return err
	}
	if b.inPlace {
		return b.Out.UpdateInPlace(res)
	}
	b.Out.ReplaceFrom(res)
	return nil
}

func (b *Binding) update() {
	b.err = b.evalOnce()
}

// Err returns the error from the most recent event-driven recompute, or
// nil if it succeeded.
func (b *Binding) Err() error { return b.err }

// Close disconnects the binding from its event source. The output signal
// keeps its last value but stops updating.
func (b *Binding) Close() {
	if b.conn != nil {
		b.conn.Disconnect()
		b.conn = nil
	}
}

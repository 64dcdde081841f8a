package hyperspec

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEventDeliveryOrder(t *testing.T) {
	ev := NewEvent()

	var order []int
	ev.Connect(func() { order = append(order, 1) })
	ev.Connect(func() { order = append(order, 2) })
	ev.Connect(func() { order = append(order, 3) })

	ev.Trigger()
	ev.Trigger()

	assert.Equal(t, []int{1, 2, 3, 1, 2, 3}, order)
}

func TestEventDisconnect(t *testing.T) {
	ev := NewEvent()

	var a, b int
	connA := ev.Connect(func() { a++ })
	ev.Connect(func() { b++ })

	ev.Trigger()
	connA.Disconnect()
	connA.Disconnect() // second call is a no-op
	ev.Trigger()

	assert.Equal(t, 1, a)
	assert.Equal(t, 2, b)
	assert.Equal(t, 1, ev.ConnectionCount())
}

func TestEventHandlerDisconnectsItself(t *testing.T) {
	ev := NewEvent()

	var fired int
	var conn *Connection
	conn = ev.Connect(func() {
		fired++
		conn.Disconnect()
	})

	ev.Trigger()
	ev.Trigger()

	assert.Equal(t, 1, fired)
	assert.Equal(t, 0, ev.ConnectionCount())
}

package spanmap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSpanROIValidation(t *testing.T) {
	_, err := NewSpanROI(10, 5)
	require.Error(t, err)

	_, err = NewSpanROI(5, 5)
	require.Error(t, err)

	span, err := NewSpanROI(5, 10)
	require.NoError(t, err)
	lo, hi := span.Range()
	assert.Equal(t, 5.0, lo)
	assert.Equal(t, 10.0, hi)
	assert.Equal(t, 5.0, span.Width())
}

func TestSetRangeFiresChanged(t *testing.T) {
	span, err := NewSpanROI(0, 1)
	require.NoError(t, err)

	var fired int
	span.Events.Changed.Connect(func() { fired++ })

	require.NoError(t, span.SetRange(2, 4))
	assert.Equal(t, 1, fired)

	lo, hi := span.Range()
	assert.Equal(t, 2.0, lo)
	assert.Equal(t, 4.0, hi)

	// A rejected range neither mutates nor notifies.
	require.Error(t, span.SetRange(4, 2))
	assert.Equal(t, 1, fired)
	lo, hi = span.Range()
	assert.Equal(t, 2.0, lo)
	assert.Equal(t, 4.0, hi)
}

func TestWidgetRemove(t *testing.T) {
	span, err := NewSpanROI(0, 1)
	require.NoError(t, err)

	w1 := span.AddWidget(nil, "red")
	w2 := span.AddWidget(nil, "green")
	assert.Len(t, span.Widgets(), 2)

	w1.Remove()
	w1.Remove() // idempotent
	require.Len(t, span.Widgets(), 1)
	assert.Equal(t, w2, span.Widgets()[0])
}

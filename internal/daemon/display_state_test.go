package daemon

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDisplayStatusString(t *testing.T) {
	tests := []struct {
		status   DisplayStatus
		expected string
	}{
		{DisplayStatusPending, "pending"},
		{DisplayStatusActive, "active"},
		{DisplayStatusDismissed, "dismissed"},
		{DisplayStatusClosed, "closed"},
		{DisplayStatus(42), "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.status.String())
		})
	}
}

func TestSourceIndex_ReRegisterMovesDBusID(t *testing.T) {
	_, src, _ := newTestSource(t, &fakeClient{})
	idx := NewSourceIndex()

	idx.Register(src, 10)
	idx.Register(src, 11)

	assert.Nil(t, idx.GetByDBusID(10))
	state := idx.GetByDBusID(11)
	require.NotNil(t, state)
	assert.Same(t, src, state.Source)
	assert.Equal(t, 1, idx.Count())
}

func TestSourceIndex_StatusAndRemove(t *testing.T) {
	_, src, _ := newTestSource(t, &fakeClient{})
	idx := NewSourceIndex()
	idx.Register(src, 5)

	idx.SetStatus(src.ID(), DisplayStatusDismissed)
	state := idx.GetBySourceID(src.ID())
	require.NotNil(t, state)
	assert.Equal(t, DisplayStatusDismissed, state.Status)
	assert.False(t, state.ClosedAt.IsZero())
	assert.Equal(t, 0, idx.ActiveCount())

	idx.Remove(src.ID())
	assert.Equal(t, 0, idx.Count())
	assert.Nil(t, idx.GetByDBusID(5))
}

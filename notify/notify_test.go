package notify

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCenter_AutoDismiss(t *testing.T) {
	c := NewCenter(20 * time.Millisecond)

	n := c.Success("Cliente creado exitosamente")
	current, ok := c.Current()
	require.True(t, ok)
	assert.Equal(t, n.ID, current.ID)
	assert.Equal(t, KindSuccess, current.Kind)

	require.Eventually(t, func() bool {
		_, visible := c.Current()
		return !visible
	}, time.Second, 5*time.Millisecond)
}

func TestCenter_ReplaceCancelsPreviousTimer(t *testing.T) {
	c := NewCenter(300 * time.Millisecond)

	first := c.Success("first")
	time.Sleep(150 * time.Millisecond)
	second := c.Error("second")

	// past the first deadline, well before the second
	time.Sleep(200 * time.Millisecond)
	current, ok := c.Current()
	require.True(t, ok)
	assert.Equal(t, second.ID, current.ID)
	assert.NotEqual(t, first.ID, current.ID)
	assert.False(t, c.Dismiss(first.ID))
}

func TestCenter_DismissEarly(t *testing.T) {
	c := NewCenter(time.Hour)

	var mu sync.Mutex
	var events []bool
	c.OnChange(func(n Notification, visible bool) {
		mu.Lock()
		events = append(events, visible)
		mu.Unlock()
	})

	n := c.Error("Error al guardar el cliente")
	assert.True(t, c.Dismiss(n.ID))
	assert.False(t, c.Dismiss(n.ID))

	_, ok := c.Current()
	assert.False(t, ok)

	mu.Lock()
	assert.Equal(t, []bool{true, false}, events)
	mu.Unlock()
}

func TestCenter_Close(t *testing.T) {
	c := NewCenter(time.Hour)
	c.Success("x")
	c.Close()

	_, ok := c.Current()
	assert.False(t, ok)

	c.Success("ignored")
	_, ok = c.Current()
	assert.False(t, ok)
}

func TestNewCenter_DefaultDuration(t *testing.T) {
	assert.Equal(t, DefaultDuration, NewCenter(0).Duration())
	assert.Equal(t, time.Second, NewCenter(time.Second).Duration())
	assert.Equal(t, "error", KindError.String())
	assert.Equal(t, "success", KindSuccess.String())
}

package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestManagerGetOrCreate(t *testing.T) {
	m := NewManager(30*time.Minute, zap.NewNop())

	id, s := m.GetOrCreate("")
	require.NotEmpty(t, id)
	require.NotNil(t, s)
	assert.Equal(t, 1, m.Len())

	// Same cookie resolves the same session.
	sameID, same := m.GetOrCreate(id)
	assert.Equal(t, id, sameID)
	assert.Same(t, s, same)
	assert.Equal(t, 1, m.Len())

	// An unknown cookie gets a fresh session under a new ID.
	otherID, other := m.GetOrCreate("deadbeefdeadbeefdeadbeefdeadbeef")
	assert.NotEqual(t, "deadbeefdeadbeefdeadbeefdeadbeef", otherID)
	assert.NotSame(t, s, other)
	assert.Equal(t, 2, m.Len())
}

func TestManagerSweep(t *testing.T) {
	m := NewManager(10*time.Millisecond, zap.NewNop())

	id, _ := m.GetOrCreate("")
	m.sweep(time.Now().Add(time.Second))
	assert.Equal(t, 0, m.Len())

	// A swept ID behaves like an unknown cookie.
	newID, _ := m.GetOrCreate(id)
	assert.NotEqual(t, id, newID)
}

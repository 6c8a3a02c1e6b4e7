package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetAndGet(t *testing.T) {
	t.Parallel()

	c := New(time.Minute)
	c.Set("report", 42)

	got, ok := c.Get("report")
	require.True(t, ok)
	assert.Equal(t, 42, got)
}

func TestGetMiss(t *testing.T) {
	t.Parallel()

	c := New(time.Minute)
	_, ok := c.Get("absent")
	assert.False(t, ok)
}

func TestExpiry(t *testing.T) {
	t.Parallel()

	current := time.Date(2026, time.March, 15, 12, 0, 0, 0, time.UTC)
	c := New(30 * time.Second)
	c.now = func() time.Time { return current }

	c.Set("report", "stale soon")

	current = current.Add(30 * time.Second)
	_, ok := c.Get("report")
	assert.True(t, ok, "entry at exactly ttl is still live")

	current = current.Add(time.Second)
	_, ok = c.Get("report")
	assert.False(t, ok)

	// Expired entries are removed, not just hidden.
	assert.Empty(t, c.entries)
}

func TestSetResetsTTL(t *testing.T) {
	t.Parallel()

	current := time.Date(2026, time.March, 15, 12, 0, 0, 0, time.UTC)
	c := New(30 * time.Second)
	c.now = func() time.Time { return current }

	c.Set("report", 1)
	current = current.Add(20 * time.Second)
	c.Set("report", 2)
	current = current.Add(20 * time.Second)

	got, ok := c.Get("report")
	require.True(t, ok)
	assert.Equal(t, 2, got)
}

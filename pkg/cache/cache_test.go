package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTTLCacheSetGet(t *testing.T) {
	c := NewTTLCache[string, int](time.Minute, 0, 0)
	defer c.Stop()

	c.Set("a", 1)
	v, ok := c.Get("a")
	assert.True(t, ok)
	assert.Equal(t, 1, v)

	_, ok = c.Get("missing")
	assert.False(t, ok)

	c.Delete("a")
	_, ok = c.Get("a")
	assert.False(t, ok)
}

func TestTTLCacheExpiry(t *testing.T) {
	c := NewTTLCache[string, string](time.Millisecond, 0, 0)
	defer c.Stop()

	c.Set("k", "v")
	c.SetWithTTL("forever", "v", 0)
	time.Sleep(5 * time.Millisecond)

	_, ok := c.Get("k")
	assert.False(t, ok)
	_, ok = c.Get("forever")
	assert.True(t, ok)

	c.DeleteExpired()
	assert.Equal(t, 1, c.Count())
}

func TestTTLCacheEvictsClosestToExpiry(t *testing.T) {
	c := NewTTLCache[string, int](time.Hour, 0, 2)
	defer c.Stop()

	c.SetWithTTL("short", 1, time.Minute)
	c.SetWithTTL("forever", 2, 0)
	c.SetWithTTL("long", 3, 2*time.Hour)

	assert.Equal(t, 2, c.Count())
	_, ok := c.Get("short")
	assert.False(t, ok)
	_, ok = c.Get("forever")
	assert.True(t, ok)
}

func TestTTLCacheClearAndStop(t *testing.T) {
	c := NewTTLCache[int, int](time.Minute, time.Millisecond, 10)
	c.Set(1, 1)
	c.Clear()
	assert.Zero(t, c.Count())

	c.Stop()
	c.Stop()
}

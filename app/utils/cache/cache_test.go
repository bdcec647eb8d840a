package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPathCacheSetGet(t *testing.T) {
	c := NewPathCache(time.Minute)

	c.Set("/", "payload")

	value, ok := c.Get("/")
	require.True(t, ok)
	assert.Equal(t, "payload", value)
}

func TestPathCacheMiss(t *testing.T) {
	c := NewPathCache(time.Minute)

	_, ok := c.Get("/missing")
	assert.False(t, ok)
}

func TestPathCacheExpiry(t *testing.T) {
	c := NewPathCache(time.Millisecond)

	c.Set("/", "payload")
	time.Sleep(5 * time.Millisecond)

	_, ok := c.Get("/")
	assert.False(t, ok)
}

func TestPathCacheInvalidate(t *testing.T) {
	c := NewPathCache(time.Minute)

	c.Set("/", "home")
	c.Set("/admin/products", "list")

	c.Invalidate("/", "/never-set")

	_, ok := c.Get("/")
	assert.False(t, ok)
	_, ok = c.Get("/admin/products")
	assert.True(t, ok)
	assert.Equal(t, 1, c.Len())
}

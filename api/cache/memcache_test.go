package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMemCacheGetSet(t *testing.T) {
	mc := NewMemCache(time.Minute)
	defer mc.Close()

	assert.Nil(t, mc.Get("missing"))

	mc.Set("rankings:men", 42, time.Minute)
	assert.Equal(t, 42, mc.Get("rankings:men"))

	mc.Delete("rankings:men")
	assert.Nil(t, mc.Get("rankings:men"))
}

func TestMemCacheExpires(t *testing.T) {
	mc := NewMemCache(time.Minute)
	defer mc.Close()

	mc.Set("short", "value", 10*time.Millisecond)
	time.Sleep(20 * time.Millisecond)

	assert.Nil(t, mc.Get("short"))
}

func TestMemCacheCleanupWorker(t *testing.T) {
	mc := NewMemCache(10 * time.Millisecond)
	defer mc.Close()

	mc.Set("short", "value", time.Millisecond)

	assert.Eventually(t, func() bool {
		_, exists := mc.memoryCache.Load("short")
		return !exists
	}, time.Second, 10*time.Millisecond)
}

package httpapi

import (
	"log/slog"
	"testing"
	"time"

	"github.com/dmitrijs2005/memorymap/internal/models"
	"github.com/dmitrijs2005/memorymap/internal/share"
	"github.com/stretchr/testify/assert"
)

func TestNormalizePath(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"/health/live", "/health/live"},
		{"/metrics", "/metrics"},
		{"/shared-memories/1,2,3", "/shared-memories/{ids}"},
		{"/shared-memories/9", "/shared-memories/{ids}"},
		{"/wp-admin", "other"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, normalizePath(tt.in), tt.in)
	}
}

func TestLevelFor(t *testing.T) {
	assert.Equal(t, slog.LevelInfo, levelFor(200))
	assert.Equal(t, slog.LevelInfo, levelFor(304))
	assert.Equal(t, slog.LevelWarn, levelFor(404))
	assert.Equal(t, slog.LevelError, levelFor(503))
}

func TestViewCache(t *testing.T) {
	a := models.ShareDescriptor{RecordIDs: []int64{3, 1}, Token: "x"}
	b := models.ShareDescriptor{RecordIDs: []int64{1, 3}, Token: "x"}
	other := models.ShareDescriptor{RecordIDs: []int64{1, 3}, Token: "y"}

	assert.Equal(t, cacheKey(1, a), cacheKey(1, b))
	assert.NotEqual(t, cacheKey(1, a), cacheKey(1, other))
	assert.NotEqual(t, cacheKey(1, a), cacheKey(2, a))

	c := newViewCache(2, time.Minute)
	_, ok := c.get(1, a)
	assert.False(t, ok)

	c.add(1, a, share.View{})
	_, ok = c.get(1, b)
	assert.True(t, ok)
	assert.Equal(t, 1, c.len())

	_, ok = c.get(2, b)
	assert.False(t, ok, "a new stored state misses")

	var disabled *viewCache
	assert.Nil(t, newViewCache(0, time.Minute))
	disabled.add(1, a, share.View{})
	_, ok = disabled.get(1, a)
	assert.False(t, ok)
	assert.Equal(t, 0, disabled.len())
}

package cache_test

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-AvailabilityService/internal/cache"
	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/pkg/logger"
)

type recorder struct {
	hits, misses int
}

func (r *recorder) RecordCacheLookup(hit bool) {
	if hit {
		r.hits++
		return
	}
	r.misses++
}

func TestNilCacheIsDisabled(t *testing.T) {
	t.Parallel()

	var c *cache.Cache
	ctx := context.Background()

	assert.False(t, c.IsAvailable())
	_, gen, ok := c.GetSchedule(ctx, 1)
	assert.False(t, ok)
	assert.Zero(t, gen)
	c.SetSchedule(ctx, domain.NewMentorSchedule(1), gen)
	c.Invalidate(ctx, 1)
	assert.NoError(t, c.Close())
}

func TestUnreachableRedisFallsBack(t *testing.T) {
	t.Parallel()

	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
	rec := &recorder{}
	c := cache.NewWithClient(client, time.Minute, logger.NewNop(), rec)
	t.Cleanup(func() { _ = c.Close() })

	assert.True(t, c.IsAvailable())

	_, _, ok := c.GetSchedule(context.Background(), 7)
	assert.False(t, ok)
	assert.Equal(t, 1, rec.misses)

	// после ошибки кэш не обращается к Redis до истечения паузы
	assert.False(t, c.IsAvailable())
	_, _, ok = c.GetSchedule(context.Background(), 7)
	assert.False(t, ok)
	assert.Equal(t, 1, rec.misses)
}

package redis_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gatherly/notify/pkg/redis"
)

func TestConnect(t *testing.T) {
	t.Parallel()

	t.Run("invalid connection string", func(t *testing.T) {
		t.Parallel()

		_, err := redis.Connect(context.Background(), redis.Config{
			ConnectionURL: "not-a-url",
		})
		require.Error(t, err)
		assert.ErrorIs(t, err, redis.ErrInvalidConnString)
	})

	t.Run("unreachable server fails after retries", func(t *testing.T) {
		t.Parallel()

		_, err := redis.Connect(context.Background(), redis.Config{
			ConnectionURL: "redis://127.0.0.1:1", // nothing listens here
			RetryAttempts: 2,
			RetryInterval: 10 * time.Millisecond,
		})
		require.Error(t, err)
		assert.ErrorIs(t, err, redis.ErrFailedToConnect)
	})

	t.Run("cancelled context aborts retries", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := redis.Connect(ctx, redis.Config{
			ConnectionURL: "redis://127.0.0.1:1",
			RetryAttempts: 3,
			RetryInterval: time.Minute,
		})
		require.Error(t, err)
		assert.ErrorIs(t, err, redis.ErrFailedToConnect)
	})
}

package async

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAsync_Await(t *testing.T) {
	fut := Async(context.Background(), 21, func(_ context.Context, n int) (int, error) {
		return n * 2, nil
	})

	got, err := fut.Await()
	require.NoError(t, err)
	assert.Equal(t, 42, got)
	assert.True(t, fut.Done())
}

func TestAsync_PropagatesError(t *testing.T) {
	wantErr := errors.New("boom")

	fut := Async(context.Background(), struct{}{}, func(context.Context, struct{}) (struct{}, error) {
		return struct{}{}, wantErr
	})

	_, err := fut.Await()
	assert.ErrorIs(t, err, wantErr)
}

func TestAsync_PreCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	ran := false
	fut := Async(ctx, struct{}{}, func(context.Context, struct{}) (struct{}, error) {
		ran = true
		return struct{}{}, nil
	})

	_, err := fut.Await()
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, ran, "fn must not run when the context is already cancelled")
}

func TestFuture_AwaitWithTimeout(t *testing.T) {
	release := make(chan struct{})
	fut := Async(context.Background(), struct{}{}, func(context.Context, struct{}) (struct{}, error) {
		<-release
		return struct{}{}, nil
	})

	_, err := fut.AwaitWithTimeout(10 * time.Millisecond)
	assert.ErrorIs(t, err, ErrTimeout)
	assert.False(t, fut.Done())

	close(release)
	_, err = fut.AwaitWithTimeout(time.Second)
	assert.NoError(t, err)
}

package retry_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/guardline/guardline/internal/platform/retry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errTransient = errors.New("transient")

func fastPolicy() retry.Policy {
	return retry.Policy{
		MaxAttempts:      3,
		InitialBackoff:   time.Millisecond,
		RateLimitBackoff: 2 * time.Millisecond,
	}
}

func alwaysRetry(error) retry.Action { return retry.Retry }

func TestDo_SucceedsFirstAttempt(t *testing.T) {
	calls := 0
	got, err := retry.Do(context.Background(), fastPolicy(), alwaysRetry, func() (int, error) {
		calls++
		return 42, nil
	})

	require.NoError(t, err)
	assert.Equal(t, 42, got)
	assert.Equal(t, 1, calls)
}

func TestDo_RetriesThenSucceeds(t *testing.T) {
	calls := 0
	got, err := retry.Do(context.Background(), fastPolicy(), alwaysRetry, func() (string, error) {
		calls++
		if calls < 3 {
			return "", errTransient
		}
		return "ok", nil
	})

	require.NoError(t, err)
	assert.Equal(t, "ok", got)
	assert.Equal(t, 3, calls)
}

func TestDo_StopIsPermanent(t *testing.T) {
	calls := 0
	_, err := retry.Do(context.Background(), fastPolicy(), func(error) retry.Action { return retry.Stop }, func() (int, error) {
		calls++
		return 0, errTransient
	})

	require.Error(t, err)
	assert.Equal(t, 1, calls)

	var permanent *retry.PermanentError
	assert.True(t, errors.As(err, &permanent))
	assert.True(t, errors.Is(err, errTransient))
}

func TestDo_ExhaustsAttempts(t *testing.T) {
	calls := 0
	_, err := retry.Do(context.Background(), fastPolicy(), alwaysRetry, func() (int, error) {
		calls++
		return 0, errTransient
	})

	require.Error(t, err)
	assert.Equal(t, 3, calls)
	assert.Contains(t, err.Error(), "failed after 3 attempts")
	assert.True(t, errors.Is(err, errTransient))
}

func TestDo_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	p := fastPolicy()
	p.InitialBackoff = time.Minute

	done := make(chan error, 1)
	go func() {
		_, err := retry.Do(ctx, p, alwaysRetry, func() (int, error) { return 0, errTransient })
		done <- err
	}()

	cancel()

	select {
	case err := <-done:
		assert.True(t, errors.Is(err, context.Canceled))
	case <-time.After(5 * time.Second):
		t.Fatal("retry did not honor context cancellation")
	}
}

func TestDo_OnRetryCallback(t *testing.T) {
	var attempts []int
	p := fastPolicy()
	p.OnRetry = func(attempt int, err error, backoff time.Duration) {
		attempts = append(attempts, attempt)
	}

	_, err := retry.Do(context.Background(), p, alwaysRetry, func() (int, error) { return 0, errTransient })

	require.Error(t, err)
	// Called for every failed attempt except the last.
	assert.Equal(t, []int{1, 2}, attempts)
}

func TestDo_RateLimitUsesLongerBackoff(t *testing.T) {
	var backoffs []time.Duration
	p := fastPolicy()
	p.OnRetry = func(attempt int, err error, backoff time.Duration) {
		backoffs = append(backoffs, backoff)
	}

	_, err := retry.Do(context.Background(), p, func(error) retry.Action { return retry.After }, func() (int, error) {
		return 0, errTransient
	})

	require.Error(t, err)
	require.NotEmpty(t, backoffs)
	assert.Equal(t, p.RateLimitBackoff, backoffs[0])
}

func TestDoVoid(t *testing.T) {
	calls := 0
	err := retry.DoVoid(context.Background(), fastPolicy(), alwaysRetry, func() error {
		calls++
		if calls < 2 {
			return errTransient
		}
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 2, calls)
}

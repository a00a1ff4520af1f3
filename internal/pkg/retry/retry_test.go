//go:build unit

package retry_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"grillbox/internal/pkg/clock"
	"grillbox/internal/pkg/retry"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errTransient = errors.New("transient")

func TestDo(t *testing.T) {
	errFatal := errors.New("fatal")
	retryable := func(err error) bool { return !errors.Is(err, errFatal) }

	tests := []struct {
		name      string
		attempts  int
		failures  []error
		wantErr   error
		wantCalls int
	}{
		{name: "first call succeeds", attempts: 3, wantCalls: 1},
		{name: "succeeds on last attempt", attempts: 3, failures: []error{errTransient, errTransient}, wantCalls: 3},
		{name: "attempts exhausted", attempts: 3, failures: []error{errTransient, errTransient, errTransient}, wantErr: errTransient, wantCalls: 3},
		{name: "non-retryable stops at once", attempts: 3, failures: []error{errFatal}, wantErr: errFatal, wantCalls: 1},
		{name: "zero attempts still calls once", attempts: 0, failures: []error{errTransient}, wantErr: errTransient, wantCalls: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clk := clock.NewMockClock(time.Unix(0, 0))
			calls := 0
			err := retry.Do(context.Background(), clk, retry.Policy{Attempts: tt.attempts, BaseDelay: 100 * time.Millisecond}, retryable,
				func(_ context.Context, attempt int) error {
					assert.Equal(t, calls, attempt)
					calls++
					if attempt < len(tt.failures) {
						return tt.failures[attempt]
					}
					return nil
				})

			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, tt.wantCalls, calls)
			assert.Len(t, clk.Waits(), max(tt.wantCalls-1, 0))
		})
	}
}

func TestDo_StopsWhenContextDone(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	calls := 0
	err := retry.Do(ctx, blockingClock{}, retry.Policy{Attempts: 5, BaseDelay: time.Second}, nil,
		func(context.Context, int) error {
			calls++
			cancel()
			return errTransient
		})

	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, calls)
}

func TestBackoff(t *testing.T) {
	base := 100 * time.Millisecond
	for attempt := range 4 {
		want := time.Duration(1<<attempt) * base
		got := retry.Backoff(attempt, base)
		assert.GreaterOrEqual(t, got, want)
		assert.LessOrEqual(t, got, want+want/5)
	}
	assert.Zero(t, retry.Backoff(3, 0))
}

type blockingClock struct{}

func (blockingClock) Now() time.Time { return time.Unix(0, 0) }

func (blockingClock) After(time.Duration) <-chan time.Time { return nil }

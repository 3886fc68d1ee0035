package retryutil

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestDoRetriesUpToBudget(t *testing.T) {
	p := Policy{MaxRetries: 3, InitialWait: time.Millisecond, StepWait: time.Millisecond}

	var attempts int
	err := p.Do(context.Background(), func() error {
		attempts++
		return fmt.Errorf("transient")
	})
	require.Error(t, err)
	require.Equal(t, 4, attempts)
}

func TestDoStopsOnSuccess(t *testing.T) {
	p := Policy{MaxRetries: 3, InitialWait: time.Millisecond, StepWait: time.Millisecond}

	var attempts int
	err := p.Do(context.Background(), func() error {
		attempts++
		if attempts < 2 {
			return fmt.Errorf("transient")
		}
		return nil
	})
	require.NoError(t, err)
	require.Equal(t, 2, attempts)
}

func TestDoStopsOnPermanent(t *testing.T) {
	p := Policy{MaxRetries: 3, InitialWait: time.Millisecond, StepWait: time.Millisecond}

	var attempts int
	err := p.Do(context.Background(), func() error {
		attempts++
		return Permanent(fmt.Errorf("no point"))
	})
	require.Error(t, err)
	require.Equal(t, 1, attempts)
}

func TestDoStopsOnCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	p := Policy{MaxRetries: 10, InitialWait: time.Millisecond, StepWait: time.Millisecond}
	var attempts int
	err := p.Do(ctx, func() error {
		attempts++
		return fmt.Errorf("transient")
	})
	require.Error(t, err)
	require.LessOrEqual(t, attempts, 1)
}

func TestIncrementalWait(t *testing.T) {
	b := &incrementalBackOff{policy: Policy{InitialWait: time.Second, StepWait: 2 * time.Second}}
	require.Equal(t, 1*time.Second, b.NextBackOff())
	require.Equal(t, 3*time.Second, b.NextBackOff())
	require.Equal(t, 5*time.Second, b.NextBackOff())
	b.Reset()
	require.Equal(t, 1*time.Second, b.NextBackOff())
}

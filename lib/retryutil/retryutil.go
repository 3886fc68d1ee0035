// Package retryutil centralizes bounded-retry schedules so callers
// configure "how many times / how long" once instead of on every
// call site.
package retryutil

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// Policy is a bounded retry schedule with an incremental wait:
// attempt n sleeps InitialWait + n*StepWait. MaxRetries bounds the
// number of retries after the first attempt.
type Policy struct {
	MaxRetries  uint64
	InitialWait time.Duration
	StepWait    time.Duration
}

func (p Policy) new() backoff.BackOff {
	return backoff.WithMaxRetries(&incrementalBackOff{policy: p}, p.MaxRetries)
}

// Do runs op, retrying on error according to the policy. Wrap an
// error with Permanent to stop retrying immediately.
func (p Policy) Do(ctx context.Context, op func() error) error {
	return backoff.Retry(op, backoff.WithContext(p.new(), ctx))
}

// Permanent marks an error as non-retryable.
func Permanent(err error) error {
	return backoff.Permanent(err)
}

type incrementalBackOff struct {
	policy  Policy
	attempt uint64
}

func (b *incrementalBackOff) NextBackOff() time.Duration {
	wait := b.policy.InitialWait + time.Duration(b.attempt)*b.policy.StepWait
	b.attempt++
	return wait
}

func (b *incrementalBackOff) Reset() {
	b.attempt = 0
}

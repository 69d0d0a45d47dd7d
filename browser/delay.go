package browser

import (
	"context"
	"math/rand"
	"time"
)

// Sleep waits for d or until ctx is canceled.
func Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// SleepBetween waits a uniformly random duration in [minD, maxD].
func SleepBetween(ctx context.Context, minD, maxD time.Duration) error {
	return DelayPolicy{Min: minD, Max: maxD}.Sleep(ctx)
}

// DelayPolicy bounds the randomized inter-request delay used to throttle
// the target and to let asynchronous UI settle.
type DelayPolicy struct {
	Min time.Duration
	Max time.Duration
}

// NewDelayPolicy builds a policy from millisecond bounds, fixing inverted
// ranges instead of failing.
func NewDelayPolicy(minMs, maxMs int) DelayPolicy {
	minD := time.Duration(minMs) * time.Millisecond
	maxD := time.Duration(maxMs) * time.Millisecond
	if maxD < minD {
		maxD = minD
	}
	return DelayPolicy{Min: minD, Max: maxD}
}

// Sleep waits a uniformly random duration in [Min, Max].
func (p DelayPolicy) Sleep(ctx context.Context) error {
	d := p.Min
	if span := p.Max - p.Min; span > 0 {
		d += time.Duration(rand.Int63n(int64(span) + 1))
	}
	return Sleep(ctx, d)
}

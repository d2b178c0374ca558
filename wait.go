package resalloc

import (
	"context"
	"fmt"
	"math"
	"time"
)

// ForeverInterval is the sleep increment of a Forever wait.
const ForeverInterval = time.Second

// maxTimerSeconds is the longest whole-second span a time.Duration holds.
const maxTimerSeconds = uint64(math.MaxInt64 / int64(time.Second))

// WaitPolicy is either a fixed number of seconds or forever.
type WaitPolicy struct {
	Forever bool
	Seconds uint64
}

func FixedSeconds(n uint64) WaitPolicy { return WaitPolicy{Seconds: n} }

func Forever() WaitPolicy { return WaitPolicy{Forever: true} }

func (p WaitPolicy) String() string {
	if p.Forever {
		return "indefinitely"
	}
	return fmt.Sprintf("for %d second(s)", p.Seconds)
}

// Wait blocks according to policy. A fixed wait returns nil once the
// time has passed; a Forever wait only returns when ctx is done.
func Wait(ctx context.Context, policy WaitPolicy) error {
	if policy.Forever {
		return Tick(ctx, ForeverInterval, func() error { return nil })
	}

	// Longer waits are split into maximal timers.
	remaining := policy.Seconds
	for {
		chunk := min(remaining, maxTimerSeconds)
		if err := sleep(ctx, time.Duration(chunk)*time.Second); err != nil {
			return err
		}
		if remaining -= chunk; remaining == 0 {
			return nil
		}
	}
}

func sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// Tick calls f every interval until ctx is done or f returns an error.
func Tick(ctx context.Context, interval time.Duration, f func() error) error {
	timer := time.NewTimer(interval)
	defer timer.Stop()

	for ctx.Err() == nil {
		if err := f(); err != nil {
			return err
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.C:
			timer.Reset(interval)
		}
	}

	return ctx.Err()
}

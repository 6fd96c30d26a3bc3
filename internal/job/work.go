package job

import (
	"context"
	"errors"
)

// ErrFailed is the error reported by work configured to fail.
var ErrFailed = errors.New("work failed")

// Work runs a dispatched task. advance is called once per consumed tick;
// the returned value is the number of ticks the work actually ran.
type Work func(ctx context.Context, advance func()) (int64, error)

// Burst returns work that runs for exactly n ticks, or stops early when
// ctx is cancelled.
func Burst(n int64) Work {
	return func(ctx context.Context, advance func()) (int64, error) {
		var ran int64
		for ran < n {
			if err := ctx.Err(); err != nil {
				return ran, err
			}
			advance()
			ran++
		}
		return ran, nil
	}
}

// Failing returns work that runs for n ticks and then reports err.
func Failing(n int64, err error) Work {
	burst := Burst(n)
	return func(ctx context.Context, advance func()) (int64, error) {
		ran, berr := burst(ctx, advance)
		if berr != nil {
			return ran, berr
		}
		return ran, err
	}
}

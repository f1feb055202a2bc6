// Package elapsed measures how long a block of code takes to run and hands
// back both the elapsed time and whatever the block returned.
//
//	d, sum := elapsed.MeasureTime(func() uint64 {
//		var s uint64
//		for i := uint64(0); i < 10_000; i++ {
//			s += i
//		}
//		return s
//	})
//	fmt.Println("elapsed =", d) // elapsed = 3.21 μs
//	fmt.Println("sum =", sum)   // sum = 49995000
//
// The time.Duration type in the standard library already prints itself in a
// human-readable form, so new code can usually call time.Since directly.
package elapsed

import (
	"time"

	"github.com/psantana5/elapsed/internal/observe"
)

// Duration is an elapsed span that formats itself with Format when printed.
type Duration time.Duration

// String returns the span scaled to ns, μs, ms or s with two decimals
func (d Duration) String() string {
	return Format(time.Duration(d))
}

// Std returns the raw time.Duration
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// Seconds returns the span as floating point seconds
func (d Duration) Seconds() float64 {
	return time.Duration(d).Seconds()
}

// MeasureTime runs block once on the calling goroutine and returns how long
// it took together with its result. A panic in block is not recovered.
func MeasureTime[T any](block func() T) (Duration, T) {
	timing := observe.NewTiming()
	result := block()
	timing.Complete()
	return Duration(timing.Duration()), result
}

// MeasureTimeErr is MeasureTime for blocks that can fail. A non-nil error
// from block is returned as is, with zero values for the duration and result.
func MeasureTimeErr[T any](block func() (T, error)) (Duration, T, error) {
	timing := observe.NewTiming()
	result, err := block()
	timing.Complete()
	if err != nil {
		var zero T
		return 0, zero, err
	}
	return Duration(timing.Duration()), result, nil
}

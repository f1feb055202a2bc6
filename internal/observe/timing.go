package observe

import "time"

// Timing records start/end timestamps only.
// Both readings come from time.Now, so Sub uses the monotonic clock.
type Timing struct {
	StartedAt   time.Time
	CompletedAt time.Time
}

// NewTiming creates timing with current start time
func NewTiming() *Timing {
	return &Timing{
		StartedAt: time.Now(),
	}
}

// Complete records completion time. Only the first call counts.
func (t *Timing) Complete() {
	if t.CompletedAt.IsZero() {
		t.CompletedAt = time.Now()
	}
}

// Running reports whether Complete has not been called yet
func (t *Timing) Running() bool {
	return t.CompletedAt.IsZero()
}

// Duration returns execution duration, never negative
func (t *Timing) Duration() time.Duration {
	var d time.Duration
	if t.Running() {
		d = time.Since(t.StartedAt)
	} else {
		d = t.CompletedAt.Sub(t.StartedAt)
	}
	if d < 0 {
		return 0
	}
	return d
}

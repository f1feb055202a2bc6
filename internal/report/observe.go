package report

import (
	"time"

	"github.com/psantana5/elapsed/pkg/elapsed"
)

// Observe times block with elapsed.MeasureTime and records the result under
// label. If block panics the panic is recorded and then re-raised as is.
func Observe[T any](rec *Recorder, label string, block func() T) (elapsed.Duration, T) {
	start := time.Now()
	completed := false
	defer func() {
		if completed {
			return
		}
		if v := recover(); v != nil {
			res := NewResult(label, start, time.Now())
			res.SetPanic(v)
			rec.Record(res)
			panic(v)
		}
	}()

	d, v := elapsed.MeasureTime(block)
	completed = true
	rec.Record(NewResultFromDuration(label, start, d))
	return d, v
}

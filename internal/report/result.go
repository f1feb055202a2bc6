package report

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/psantana5/elapsed/internal/logging"
	"github.com/psantana5/elapsed/pkg/elapsed"
)

// Outcome of a timed block
type Outcome string

const (
	OutcomeOK    Outcome = "ok"
	OutcomeError Outcome = "error"
	OutcomePanic Outcome = "panic"
)

// Result is one measurement. Build it once, then record or log it.
type Result struct {
	ID    string `json:"id" yaml:"id"`
	Label string `json:"label" yaml:"label"`

	StartTime time.Time        `json:"start_time" yaml:"start_time"`
	EndTime   time.Time        `json:"end_time" yaml:"end_time"`
	Duration  elapsed.Duration `json:"-" yaml:"-"`
	Elapsed   string           `json:"elapsed" yaml:"elapsed"`
	Seconds   float64          `json:"elapsed_seconds" yaml:"elapsed_seconds"`

	Outcome  Outcome `json:"outcome" yaml:"outcome"`
	Error    string  `json:"error,omitempty" yaml:"error,omitempty"`
	ExitCode int     `json:"exit_code" yaml:"exit_code"`
	Signal   string  `json:"signal,omitempty" yaml:"signal,omitempty"`
}

// NewResult creates a successful result spanning start to end
func NewResult(label string, start, end time.Time) *Result {
	d := end.Sub(start)
	if d < 0 {
		d = 0
	}
	return newResult(label, start, end, elapsed.Duration(d))
}

// NewResultFromDuration is NewResult for callers that already hold the
// monotonic duration and only need wall-clock stamps for display.
func NewResultFromDuration(label string, start time.Time, d elapsed.Duration) *Result {
	return newResult(label, start, start.Add(d.Std()), d)
}

func newResult(label string, start, end time.Time, d elapsed.Duration) *Result {
	return &Result{
		ID:        uuid.NewString(),
		Label:     label,
		StartTime: start,
		EndTime:   end,
		Duration:  d,
		Elapsed:   d.String(),
		Seconds:   d.Seconds(),
		Outcome:   OutcomeOK,
	}
}

// SetError marks the result failed. A nil error leaves it untouched.
func (r *Result) SetError(err error) {
	if err == nil {
		return
	}
	r.Outcome = OutcomeError
	r.Error = err.Error()
}

// SetPanic marks the result as ended by a panic with value v
func (r *Result) SetPanic(v interface{}) {
	r.Outcome = OutcomePanic
	r.Error = fmt.Sprint(v)
}

// SetExitCode records a process exit code; non-zero marks the result failed
func (r *Result) SetExitCode(code int) {
	r.ExitCode = code
	if code != 0 && r.Outcome == OutcomeOK {
		r.Outcome = OutcomeError
		r.Error = fmt.Sprintf("exit status %d", code)
	}
}

// SetSignal records that the process was killed by signal, with the
// shell-style exit code (128+signo) it maps to
func (r *Result) SetSignal(signal string, code int) {
	r.ExitCode = code
	r.Signal = signal
	r.Outcome = OutcomeError
	r.Error = "signal: " + signal
}

// Summary is the one-line human-readable form
func (r *Result) Summary() string {
	s := fmt.Sprintf("BLOCK %s | outcome=%s | elapsed=%s", r.Label, r.Outcome, r.Elapsed)
	if r.ExitCode != 0 {
		s += fmt.Sprintf(" | exit=%d", r.ExitCode)
	}
	if r.Signal != "" {
		s += " | signal=" + r.Signal
	}
	return s + " | id=" + r.ID
}

// LogSummary writes Summary at DEBUG, WARN when the block failed and ERROR
// when it panicked. Successful runs are already printed by the caller.
func (r *Result) LogSummary(logger *logging.Logger) {
	logger = logger.WithField("label", r.Label)
	fields := map[string]interface{}{"elapsed_seconds": r.Seconds}
	if r.Error != "" {
		fields["error"] = r.Error
	}
	switch r.Outcome {
	case OutcomeOK:
		logger.Debug(r.Summary(), fields)
	case OutcomePanic:
		logger.Error(r.Summary(), fields)
	default:
		logger.Warn(r.Summary(), fields)
	}
}

package report

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/psantana5/elapsed/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errLoad = errors.New("load failed")

func TestNewResult(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	res := NewResult("sum", start, start.Add(1500*time.Millisecond))

	assert.NotEmpty(t, res.ID)
	assert.Equal(t, "1.50 s", res.Elapsed)
	assert.Equal(t, 1.5, res.Seconds)
	assert.Equal(t, OutcomeOK, res.Outcome)

	other := NewResult("sum", start, start)
	assert.NotEqual(t, res.ID, other.ID, "ids must be unique")
}

func TestNewResultClampsNegative(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 1, 0, time.UTC)
	res := NewResult("clock-step", start, start.Add(-time.Second))
	assert.Equal(t, "0.00 ns", res.Elapsed)
}

func TestResultOutcomes(t *testing.T) {
	now := time.Now()

	res := NewResult("a", now, now)
	res.SetError(nil)
	assert.Equal(t, OutcomeOK, res.Outcome)

	res.SetError(errLoad)
	assert.Equal(t, OutcomeError, res.Outcome)
	assert.Equal(t, "load failed", res.Error)

	res = NewResult("b", now, now)
	res.SetPanic("kaboom")
	assert.Equal(t, OutcomePanic, res.Outcome)
	assert.Equal(t, "kaboom", res.Error)

	res = NewResult("c", now, now)
	res.SetExitCode(3)
	assert.Equal(t, OutcomeError, res.Outcome)
	assert.Equal(t, 3, res.ExitCode)
	assert.Contains(t, res.Summary(), "exit=3")
}

func TestLogSummary(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.NewLogger(logging.DEBUG, false)
	logger.SetOutput(&buf)

	start := time.Now()
	res := NewResult("sum", start, start.Add(227810*time.Nanosecond))
	res.LogSummary(logger)

	out := buf.String()
	assert.Contains(t, out, "DEBUG: BLOCK sum | outcome=ok | elapsed=227.81 μs")
	assert.Contains(t, out, res.ID)

	buf.Reset()
	res.SetError(errLoad)
	res.LogSummary(logger)
	assert.Contains(t, buf.String(), "WARN: BLOCK sum | outcome=error")

	buf.Reset()
	res.SetPanic("kaboom")
	res.LogSummary(logger)
	assert.Contains(t, buf.String(), "ERROR: BLOCK sum | outcome=panic")
}

func TestLogSummarySuccessHiddenAtInfo(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.NewLogger(logging.INFO, false)
	logger.SetOutput(&buf)

	now := time.Now()
	NewResult("sum", now, now.Add(time.Millisecond)).LogSummary(logger)
	assert.Empty(t, buf.String())
}

func TestSetSignal(t *testing.T) {
	now := time.Now()
	res := NewResult("sleep", now, now.Add(time.Second))
	res.SetSignal("terminated", 143)

	assert.Equal(t, OutcomeError, res.Outcome)
	assert.Equal(t, 143, res.ExitCode)
	assert.Equal(t, "signal: terminated", res.Error)
	assert.Contains(t, res.Summary(), "exit=143 | signal=terminated")
}

func TestRecorder(t *testing.T) {
	rec := NewRecorder()
	now := time.Now()

	rec.Record(NewResult("sum", now, now.Add(time.Millisecond)))
	rec.Record(NewResult("sum", now, now.Add(2*time.Millisecond)))
	failed := NewResult("sum", now, now.Add(time.Millisecond))
	failed.SetError(errLoad)
	rec.Record(failed)

	assert.Equal(t, 2.0, testutil.ToFloat64(rec.blocks.WithLabelValues("sum", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(rec.blocks.WithLabelValues("sum", "error")))
	assert.Equal(t, 1, testutil.CollectAndCount(rec.duration))
}

func TestObserve(t *testing.T) {
	rec := NewRecorder()

	d, sum := Observe(rec, "sum", func() int {
		total := 0
		for i := 0; i < 10_000; i++ {
			total += i
		}
		return total
	})

	assert.Equal(t, 49995000, sum)
	assert.GreaterOrEqual(t, d.Std(), time.Duration(0))
	assert.Equal(t, 1.0, testutil.ToFloat64(rec.blocks.WithLabelValues("sum", "ok")))
}

func TestObservePanic(t *testing.T) {
	rec := NewRecorder()

	assert.PanicsWithValue(t, "kaboom", func() {
		Observe(rec, "explode", func() int { panic("kaboom") })
	})
	assert.Equal(t, 1.0, testutil.ToFloat64(rec.blocks.WithLabelValues("explode", "panic")))
}

func TestWriteTextfile(t *testing.T) {
	rec := NewRecorder()
	now := time.Now()
	rec.Record(NewResult("sum", now, now.Add(time.Millisecond)))

	var buf bytes.Buffer
	require.NoError(t, WriteTextfile(&buf, rec.Registry()))

	out := buf.String()
	assert.Contains(t, out, "# TYPE elapsed_blocks_total counter")
	assert.Contains(t, out, `elapsed_blocks_total{label="sum",outcome="ok"} 1`)
	assert.Contains(t, out, "# TYPE elapsed_block_duration_seconds histogram")
	assert.Contains(t, out, `elapsed_block_duration_seconds_count{label="sum"} 1`)
}

func TestWriteTextfileAtomic(t *testing.T) {
	rec := NewRecorder()
	now := time.Now()
	rec.Record(NewResult("job", now, now.Add(time.Second)))

	dir := t.TempDir()
	path := filepath.Join(dir, "elapsed.prom")
	require.NoError(t, WriteTextfileAtomic(path, rec.Registry()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(data), `elapsed_blocks_total{label="job",outcome="ok"} 1`))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp file left behind")
}

package cmd

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/psantana5/elapsed/pkg/elapsed"
)

var formatPrecision int

var formatCmd = &cobra.Command{
	Use:   "format <duration>...",
	Short: "Format durations the way elapsed prints them",
	Long: `Each argument is either a Go duration string (1.5s, 227.81µs, 3m) or a bare
integer number of nanoseconds. Negative values must follow "--" so they are
not read as flags.

Example:
  elapsed format 227810
  elapsed format --precision 3 1.5s 42ns
  elapsed format -o table 1ms 2ms
  elapsed format -- -1500`,
	Args: cobra.MinimumNArgs(1),
	RunE: runFormat,
}

func init() {
	rootCmd.AddCommand(formatCmd)
	formatCmd.Flags().IntVarP(&formatPrecision, "precision", "p", elapsed.DefaultPrecision, "fractional digits")
}

// FormattedDuration is one row of format output
type FormattedDuration struct {
	Input       string `json:"input" yaml:"input"`
	Nanoseconds int64  `json:"nanoseconds" yaml:"nanoseconds"`
	Formatted   string `json:"formatted" yaml:"formatted"`
}

func runFormat(cmd *cobra.Command, args []string) error {
	rows := make([]FormattedDuration, 0, len(args))
	for _, arg := range args {
		d, err := parseDuration(arg)
		if err != nil {
			return err
		}
		rows = append(rows, FormattedDuration{
			Input:       arg,
			Nanoseconds: int64(d),
			Formatted:   elapsed.FormatPrecision(d, formatPrecision),
		})
	}

	out := cmd.OutOrStdout()
	switch currentOutput() {
	case "json":
		return writeJSON(out, rows)
	case "yaml":
		return writeYAML(out, rows)
	case "table":
		table := make([][]any, 0, len(rows))
		for _, r := range rows {
			table = append(table, []any{r.Input, strconv.FormatInt(r.Nanoseconds, 10), r.Formatted})
		}
		return writeTable(out, []any{"Input", "Nanoseconds", "Formatted"}, table)
	default:
		for _, r := range rows {
			fmt.Fprintln(out, r.Formatted)
		}
		return nil
	}
}

func parseDuration(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if ns, err := strconv.ParseInt(s, 10, 64); err == nil {
		return time.Duration(ns), nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("invalid duration %q: %w", s, err)
	}
	return d, nil
}

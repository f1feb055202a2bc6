package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/psantana5/elapsed/internal/report"
)

// version is set at build time with -ldflags "-X .../cmd.version=..."
var version = "dev"

var (
	demoLabel       string
	demoMetricsFile string
)

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Time the sum of 0..9999 in-process",
	Long: `Demo sums the integers 0 through 9999 inside the elapsed process and prints
how long that took. With --metrics-file the measurement is also written as
Prometheus textfile metrics.

Example:
  elapsed demo
  elapsed demo --label sum --metrics-file /tmp/demo.prom`,
	Args: cobra.NoArgs,
	RunE: runDemo,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), version)
	},
}

func init() {
	rootCmd.AddCommand(demoCmd)
	rootCmd.AddCommand(versionCmd)

	demoCmd.Flags().StringVarP(&demoLabel, "label", "l", "sum", "label for metrics")
	demoCmd.Flags().StringVar(&demoMetricsFile, "metrics-file", "", "write Prometheus textfile metrics to this path")
}

func runDemo(cmd *cobra.Command, args []string) error {
	rec := report.NewRecorder()
	d, sum := report.Observe(rec, demoLabel, func() uint64 {
		var s uint64
		for i := uint64(0); i < 10_000; i++ {
			s += i
		}
		return s
	})

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "elapsed = %s\n", d)
	fmt.Fprintf(out, "sum = %d\n", sum)

	if demoMetricsFile != "" {
		if err := report.WriteTextfileAtomic(demoMetricsFile, rec.Registry()); err != nil {
			return fmt.Errorf("failed to write metrics file: %w", err)
		}
	}
	return nil
}

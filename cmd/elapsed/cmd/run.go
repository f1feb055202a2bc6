package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/psantana5/elapsed/internal/report"
	"github.com/psantana5/elapsed/internal/runner"
	"github.com/psantana5/elapsed/internal/tracing"
)

var runLabel string

var runCmd = &cobra.Command{
	Use:   "run [flags] -- <command> [args...]",
	Short: "Run a command once and report how long it took",
	Long: `Run executes the command exactly once, forwarding stdin, stdout and stderr,
then reports the elapsed wall-clock time. The exit code of elapsed mirrors the
command's exit code.

Example:
  elapsed run -- sleep 0.1
  elapsed run --label backup -o json -- ./backup.sh
  elapsed run --metrics-file /var/lib/node_exporter/backup.prom -- ./backup.sh`,
	Args: cobra.MinimumNArgs(1),
	RunE: runCommand,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVarP(&runLabel, "label", "l", "", "label for logs and metrics (default: command name)")
	runCmd.Flags().String("metrics-file", "", "write Prometheus textfile metrics to this path")
	runCmd.Flags().String("trace-endpoint", "", "OTLP HTTP endpoint (host:port) to export a span to")
	runCmd.Flags().String("environment", "development", "deployment environment attached to spans")

	viper.BindPFlag("metrics_file", runCmd.Flags().Lookup("metrics-file"))
	viper.BindPFlag("trace_endpoint", runCmd.Flags().Lookup("trace-endpoint"))
	viper.BindPFlag("environment", runCmd.Flags().Lookup("environment"))
}

func runCommand(cmd *cobra.Command, args []string) error {
	logger, err := newLogger()
	if err != nil {
		return err
	}
	defer logger.Close()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var provider *tracing.Provider
	if endpoint := viper.GetString("trace_endpoint"); endpoint != "" {
		provider, err = tracing.InitTracer(tracing.Config{
			ServiceName:    "elapsed",
			ServiceVersion: version,
			Environment:    viper.GetString("environment"),
			OTLPEndpoint:   endpoint,
			Enabled:        true,
		})
		if err != nil {
			return err
		}
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := provider.Shutdown(shutdownCtx); err != nil {
				logger.Error(fmt.Sprintf("Failed to flush spans: %v", err))
			}
		}()
	}

	logger.Debug("Running command", map[string]interface{}{"command": args[0], "args": args[1:]})

	result, err := runner.Run(ctx, runner.Options{
		Label:  runLabel,
		Stdin:  cmd.InOrStdin(),
		Stdout: cmd.OutOrStdout(),
		Stderr: cmd.ErrOrStderr(),
		Tracer: provider,
	}, args[0], args[1:])
	if err != nil {
		return err
	}

	result.LogSummary(logger)

	if path := viper.GetString("metrics_file"); path != "" {
		rec := report.NewRecorder()
		rec.Record(result)
		if err := report.WriteTextfileAtomic(path, rec.Registry()); err != nil {
			return fmt.Errorf("failed to write metrics file: %w", err)
		}
	}

	if err := printResult(cmd.ErrOrStderr(), result); err != nil {
		return err
	}

	if result.ExitCode != 0 {
		return &ExitCodeError{Code: result.ExitCode}
	}
	return nil
}

// printResult goes to stderr so it never mixes with the command's stdout
func printResult(w io.Writer, r *report.Result) error {
	switch currentOutput() {
	case "json":
		return writeJSON(w, r)
	case "yaml":
		return writeYAML(w, r)
	case "table":
		return writeTable(w,
			[]any{"Label", "Elapsed", "Outcome", "Exit"},
			[][]any{{r.Label, r.Elapsed, string(r.Outcome), fmt.Sprint(r.ExitCode)}},
		)
	default:
		_, err := fmt.Fprintf(w, "elapsed = %s\n", r.Elapsed)
		return err
	}
}

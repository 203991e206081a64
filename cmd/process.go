package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"srtpost/internal/report"
	"srtpost/internal/worker"
)

var processCmd = &cobra.Command{
	Use:   "process <file|dir>...",
	Short: "Post-process SRT files in place or into another location",
	Long: `Process rewrites each SRT file through the cleanup pipeline. Directories
are searched recursively for files with the configured extensions. Files are
rewritten in place unless --output or --output-dir is given.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runProcess,
}

var (
	output      string
	outputDir   string
	dryRun      bool
	jobs        int
	noLock      bool
	processSubs subtitleFlags
)

func init() {
	processCmd.Flags().StringVarP(&output, "output", "o", "", "output SRT path (single input only)")
	processCmd.Flags().StringVar(&outputDir, "output-dir", "", "write results into this directory instead of in place")
	processCmd.Flags().BoolVarP(&dryRun, "dry-run", "n", false, "run the pipeline without writing files")
	processCmd.Flags().IntVarP(&jobs, "jobs", "j", 0, "files processed concurrently (default from config)")
	processCmd.Flags().BoolVar(&noLock, "no-lock", false, "do not take a lock file for in-place rewrites")
	processSubs.register(processCmd)

	rootCmd.AddCommand(processCmd)
}

func runProcess(cmd *cobra.Command, args []string) error {
	settings := cfg.Subtitles
	if err := processSubs.apply(cmd, &settings); err != nil {
		return err
	}

	opts := worker.Options{
		Inputs:     args,
		OutputPath: output,
		OutputDir:  outputDir,
		DryRun:     dryRun,
		Jobs:       cfg.Worker.Jobs,
		Extensions: cfg.Worker.Extensions,
		Lock:       cfg.Worker.Lock && !noLock,
		Settings:   &settings,
	}
	if cmd.Flags().Changed("jobs") {
		if jobs < 1 {
			return fmt.Errorf("--jobs must be at least 1, got %d", jobs)
		}
		opts.Jobs = jobs
	}

	// Setup signal handling for graceful cancellation.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	results, err := worker.Run(ctx, opts)
	if !quiet && len(results) > 0 {
		fmt.Fprintln(cmd.OutOrStdout(), report.Summary(results))
	}
	if err != nil {
		return err
	}

	if !quiet {
		slog.Info("done", "files", len(results))
	}
	return nil
}

package cmd

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"srtpost/internal/report"
	"srtpost/internal/worker"
)

// errNotClean is returned by check --strict when any file needs attention.
var errNotClean = errors.New("subtitles need attention")

var checkCmd = &cobra.Command{
	Use:   "check <file|dir>...",
	Short: "Report what processing would change without writing anything",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runCheck,
}

var (
	strict    bool
	checkSubs subtitleFlags
)

func init() {
	checkCmd.Flags().BoolVar(&strict, "strict", false, "exit with an error when any file has warnings")
	checkSubs.register(checkCmd)

	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	settings := cfg.Subtitles
	if err := checkSubs.apply(cmd, &settings); err != nil {
		return err
	}

	results, err := worker.Run(context.Background(), worker.Options{
		Inputs:     args,
		DryRun:     true,
		Jobs:       cfg.Worker.Jobs,
		Extensions: cfg.Worker.Extensions,
		Settings:   &settings,
	})

	out := cmd.OutOrStdout()
	dirty := 0
	for _, r := range results {
		if r.Report == nil {
			continue
		}
		if !r.Report.Clean() {
			dirty++
		}
		fmt.Fprintf(out, "%s\n%s\n\n", filepath.Base(r.Input), report.Details(r.Report))
	}
	if err != nil {
		return err
	}
	if strict && dirty > 0 {
		return fmt.Errorf("%w: %d of %d files", errNotClean, dirty, len(results))
	}
	return nil
}

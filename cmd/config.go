package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"srtpost/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the srtpost configuration file",
	// Skip loading the current configuration so a broken file can be replaced.
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		setupLogging(os.Stderr)
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Write a sample configuration with every default",
	Long: `Init writes a commented TOML configuration listing every setting and its
default value. Without a path the sample is printed to stdout.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runConfigInit,
}

var force bool

func init() {
	configInitCmd.Flags().BoolVarP(&force, "force", "f", false, "overwrite an existing file")
	configCmd.AddCommand(configInitCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	sample := config.SampleConfig()
	if len(args) == 0 {
		_, err := fmt.Fprint(cmd.OutOrStdout(), sample)
		return err
	}

	path := args[0]
	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	} else if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("stat %s: %w", path, err)
	}

	if err := os.WriteFile(path, []byte(sample), 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	slog.Info("config written", "path", path)
	return nil
}

package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

var (
	cfgFile string
	verbose bool

	// Loaded configuration
	cfg *Config
)

var rootCmd = &cobra.Command{
	Use:   "lingmatch",
	Short: "Compute similarity and accommodation scores between texts",
	Long: `lingmatch compares numeric feature representations of texts: rows against
group means, named baseline profiles, row selections, external matrices,
every other row (pairwise), or adjacent speaker turns (sequential).`,
}

// Execute is the entry point called by main.main()
func Execute() {
	cobra.OnInitialize(loadConfig)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ~/.lingmatch/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug output")
}

func loadConfig() {
	c, err := Load(cfgFile)
	if err != nil {
		// Non-fatal: commands that don't need config still run.
		fmt.Fprintf(os.Stderr, "Warning: failed to load config: %v\n", err)
		c = DefaultConfig()
	}
	cfg = c
}

func logLevel() slog.Level {
	if verbose {
		return slog.LevelDebug
	}
	return slog.LevelWarn
}

func newSlogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel()}))
}

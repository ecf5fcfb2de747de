package cmd

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/Araon/Steno/internal/config"
)

var (
	verbose    bool
	quiet      bool
	configFile string
)

var rootCmd = &cobra.Command{
	Use:   "steno",
	Short: "Turn speech transcripts into styled, animated lyric-style captions",
	Long: `Steno converts word-level speech transcripts into time-aligned, line-wrapped,
styled caption documents ready for rendering as animated on-screen text. It can
also drive the full flow from a media file: audio extraction, speech-to-text,
and caption generation.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		setupLogging()
	},
}

func setupLogging() {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	if quiet {
		level = slog.LevelError
	}

	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	slog.SetDefault(slog.New(handler))
}

// loadConfig returns the file config when --config is set, defaults otherwise.
func loadConfig() (*config.Config, error) {
	if configFile == "" {
		return config.Default(), nil
	}
	return config.Load(configFile)
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose logging")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "suppress non-error output")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "path to YAML config file")
}

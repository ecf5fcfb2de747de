package cmd

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Araon/Steno/internal/caption"
	"github.com/Araon/Steno/internal/config"
	"github.com/Araon/Steno/internal/tagger"
)

var captionCmd = &cobra.Command{
	Use:   "caption <transcript.json>",
	Short: "Generate styled captions from a word-level transcript",
	Long: `Generate a styled caption document from a transcript JSON file containing
word-level timestamps. The pipeline normalizes timing, segments words into
phrases, wraps display lines, and assigns emphasis, style, and animation.`,
	Args: cobra.ExactArgs(1),
	RunE: runCaption,
}

var (
	captionOutput    string
	maxWords         int
	minWords         int
	pauseThreshold   float64
	maxCharsPerLine  int
	defaultAnimation string
	varyAnimations   bool
	emphasize        bool
	themeName        string
)

func init() {
	defaults := config.Default().Captions

	captionCmd.Flags().StringVarP(&captionOutput, "output", "o", "", "output JSON path (default: <input>.captions.json)")
	captionCmd.Flags().IntVar(&maxWords, "max-words", defaults.MaxWordsPerCaption, "maximum words per caption")
	captionCmd.Flags().IntVar(&minWords, "min-words", defaults.MinWordsPerCaption, "minimum words per caption (soft limit)")
	captionCmd.Flags().Float64Var(&pauseThreshold, "pause", defaults.PauseThreshold, "pause threshold in seconds for phrase breaks")
	captionCmd.Flags().IntVar(&maxCharsPerLine, "max-chars", defaults.MaxCharsPerLine, "character budget per display line")
	captionCmd.Flags().StringVar(&defaultAnimation, "animation", defaults.DefaultAnimation, "default animation: none, fade-in, scale-in, word-by-word, typewriter")
	captionCmd.Flags().BoolVar(&varyAnimations, "vary-animations", defaults.VaryAnimations, "cycle animations across captions")
	captionCmd.Flags().BoolVar(&emphasize, "emphasize", defaults.EmphasizeKeywords, "mark emphasis words via lexical tagging")
	captionCmd.Flags().StringVar(&themeName, "theme", defaults.Theme, "settings theme: "+strings.Join(caption.ThemeNames(), ", "))

	rootCmd.AddCommand(captionCmd)
}

// captionOptionsFromFlags merges config-file values with explicitly set flags.
func captionOptionsFromFlags(cmd *cobra.Command, base config.CaptionOptions) config.CaptionOptions {
	opts := base
	if cmd.Flags().Changed("max-words") {
		opts.MaxWordsPerCaption = maxWords
	}
	if cmd.Flags().Changed("min-words") {
		opts.MinWordsPerCaption = minWords
	}
	if cmd.Flags().Changed("pause") {
		opts.PauseThreshold = pauseThreshold
	}
	if cmd.Flags().Changed("max-chars") {
		opts.MaxCharsPerLine = maxCharsPerLine
	}
	if cmd.Flags().Changed("animation") {
		opts.DefaultAnimation = defaultAnimation
	}
	if cmd.Flags().Changed("vary-animations") {
		opts.VaryAnimations = varyAnimations
	}
	if cmd.Flags().Changed("emphasize") {
		opts.EmphasizeKeywords = emphasize
	}
	if cmd.Flags().Changed("theme") {
		opts.Theme = themeName
	}
	return opts
}

func runCaption(cmd *cobra.Command, args []string) error {
	inputPath := args[0]

	data, err := os.ReadFile(inputPath)
	if err != nil {
		return fmt.Errorf("read transcript: %w", err)
	}

	var transcript caption.Transcript
	if err := json.Unmarshal(data, &transcript); err != nil {
		return fmt.Errorf("parse transcript: %w", err)
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	opts := captionOptionsFromFlags(cmd, cfg.Captions)

	doc, err := caption.Generate(&transcript, tagger.NewProse(), &opts)
	if err != nil {
		return err
	}

	outputPath := captionOutput
	if outputPath == "" {
		base := strings.TrimSuffix(inputPath, filepath.Ext(inputPath))
		outputPath = base + ".captions.json"
	}

	out, err := json.MarshalIndent(doc, "", "    ")
	if err != nil {
		return fmt.Errorf("encode captions: %w", err)
	}
	if err := os.WriteFile(outputPath, out, 0644); err != nil {
		return fmt.Errorf("write captions: %w", err)
	}

	if !quiet {
		slog.Info("caption document saved", "path", outputPath, "captions", len(doc.Captions))
	}
	return nil
}

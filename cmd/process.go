package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/Araon/Steno/internal/config"
	"github.com/Araon/Steno/internal/tagger"
	"github.com/Araon/Steno/internal/worker"
)

var processCmd = &cobra.Command{
	Use:   "process <input-file>",
	Short: "Transcribe a media file and generate styled captions",
	Long: `Process an audio or video file end to end: extract a mono 16kHz waveform,
transcribe it with the speech-to-text engine, and run the caption pipeline on
the result. Long inputs are split into chunks and transcribed concurrently.`,
	Args: cobra.ExactArgs(1),
	RunE: runProcess,
}

var (
	processOutput  string
	language       string
	noAsync        bool
	maxConcurrent  int
	maxRetries     int
	rateLimit      int
	splitDuration  int
	saveTranscript bool
	sttURL         string
)

func init() {
	defaults := config.Default()

	processCmd.Flags().StringVarP(&processOutput, "output", "o", "", "output captions path (default: <input>.captions.json)")
	processCmd.Flags().StringVarP(&language, "language", "l", "auto", "language hint (e.g. en), or auto")
	processCmd.Flags().BoolVar(&noAsync, "no-async", false, "disable concurrent chunk processing")
	processCmd.Flags().IntVarP(&maxConcurrent, "max-concurrent", "j", defaults.MaxConcurrentChunks, "max concurrent engine uploads")
	processCmd.Flags().IntVar(&maxRetries, "max-retries", defaults.MaxRetries, "max retries per chunk")
	processCmd.Flags().IntVar(&rateLimit, "rate-limit", defaults.APIRateLimitPerMin, "engine requests per minute")
	processCmd.Flags().IntVar(&splitDuration, "split-duration", defaults.SplitDurationMin, "audio split threshold in minutes")
	processCmd.Flags().BoolVar(&saveTranscript, "save-transcript", false, "save transcript JSON alongside captions")
	processCmd.Flags().StringVar(&sttURL, "stt-url", defaults.STTBaseURL, "speech-to-text engine base URL")

	// Caption tuning flags shared with the caption command.
	processCmd.Flags().IntVar(&maxWords, "max-words", defaults.Captions.MaxWordsPerCaption, "maximum words per caption")
	processCmd.Flags().IntVar(&minWords, "min-words", defaults.Captions.MinWordsPerCaption, "minimum words per caption (soft limit)")
	processCmd.Flags().Float64Var(&pauseThreshold, "pause", defaults.Captions.PauseThreshold, "pause threshold in seconds for phrase breaks")
	processCmd.Flags().IntVar(&maxCharsPerLine, "max-chars", defaults.Captions.MaxCharsPerLine, "character budget per display line")
	processCmd.Flags().StringVar(&defaultAnimation, "animation", defaults.Captions.DefaultAnimation, "default animation")
	processCmd.Flags().BoolVar(&varyAnimations, "vary-animations", defaults.Captions.VaryAnimations, "cycle animations across captions")
	processCmd.Flags().BoolVar(&emphasize, "emphasize", defaults.Captions.EmphasizeKeywords, "mark emphasis words via lexical tagging")
	processCmd.Flags().StringVar(&themeName, "theme", defaults.Captions.Theme, "settings theme")

	rootCmd.AddCommand(processCmd)
}

func runProcess(cmd *cobra.Command, args []string) error {
	inputPath := args[0]

	absPath, err := filepath.Abs(inputPath)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}

	if _, err := os.Stat(absPath); os.IsNotExist(err) {
		return fmt.Errorf("file not found: %s", inputPath)
	}

	ext := strings.ToLower(filepath.Ext(absPath))
	validExts := map[string]bool{
		".mp3": true, ".m4a": true, ".wav": true, ".flac": true,
		".ogg": true, ".aac": true, ".mp4": true, ".mov": true,
		".mkv": true, ".avi": true, ".flv": true, ".webm": true,
		".m4v": true,
	}
	if !validExts[ext] {
		return fmt.Errorf("unsupported file type: %s", ext)
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	captionOpts := captionOptionsFromFlags(cmd, cfg.Captions)

	// Setup signal handling for graceful cancellation.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	opts := worker.Options{
		InputPath:        absPath,
		OutputPath:       processOutput,
		Language:         language,
		NoAsync:          noAsync,
		MaxConcurrent:    maxConcurrent,
		MaxRetries:       maxRetries,
		RateLimitPerMin:  rateLimit,
		SplitDurationMin: splitDuration,
		SaveTranscript:   saveTranscript,
		STTBaseURL:       sttURL,
		Captions:         &captionOpts,
		Tagger:           tagger.NewProse(),
	}

	if err := worker.Run(ctx, opts); err != nil {
		return err
	}

	if !quiet {
		slog.Info("done")
	}
	return nil
}

package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/Araon/Steno/internal/caption"
	"github.com/Araon/Steno/internal/config"
	"github.com/Araon/Steno/internal/ffmpeg"
	"github.com/Araon/Steno/internal/stt"
)

// applyTimeOffset adds an offset (in seconds) to all word timestamps, rounding
// to millisecond precision.
func applyTimeOffset(words []caption.TimedWord, offsetSec float64) {
	for i := range words {
		words[i].Start = math.Round((words[i].Start+offsetSec)*1000) / 1000
		words[i].End = math.Round((words[i].End+offsetSec)*1000) / 1000
	}
}

// Options configures the worker.
type Options struct {
	InputPath        string
	OutputPath       string
	Language         string
	NoAsync          bool
	MaxConcurrent    int
	MaxRetries       int
	RateLimitPerMin  int
	SplitDurationMin int
	SaveTranscript   bool
	STTBaseURL       string
	Captions         *config.CaptionOptions
	Tagger           caption.Tagger

	client *stt.Client
}

// Run orchestrates the end-to-end flow: probe, extract audio, transcribe
// (chunked and concurrent for long inputs), run the caption pipeline, and
// write the caption document.
func Run(ctx context.Context, opts Options) error {
	if err := opts.Captions.Validate(); err != nil {
		return fmt.Errorf("caption options: %w", err)
	}
	opts.client = stt.NewClient(opts.STTBaseURL)

	inputPath := opts.InputPath

	outputPath := opts.OutputPath
	if outputPath == "" {
		base := strings.TrimSuffix(inputPath, filepath.Ext(inputPath))
		outputPath = base + ".captions.json"
	}

	slog.Info("processing file", "input", filepath.Base(inputPath))

	info := ffmpeg.LogMediaInfo(ctx, inputPath)
	duration := 0.0
	if info != nil {
		duration = info.Duration
	}

	splitDurationSec := opts.SplitDurationMin * 60
	workingPath := inputPath

	// Decode video input into a mono 16kHz waveform for the speech engine.
	ext := filepath.Ext(inputPath)
	if ffmpeg.IsVideoExtension(ext) && ffmpeg.Available() {
		base := strings.TrimSuffix(filepath.Base(inputPath), ext)
		tempAudioFile := filepath.Join(filepath.Dir(inputPath), "temp_audio_"+base+".wav")
		if err := ffmpeg.ExtractAudio(ctx, inputPath, tempAudioFile); err != nil {
			return fmt.Errorf("extract audio: %w", err)
		}
		workingPath = tempAudioFile
		defer os.Remove(tempAudioFile)
	}

	var combined *caption.Transcript

	if duration > float64(splitDurationSec) && ffmpeg.Available() {
		slog.Info("file duration exceeds split threshold, splitting",
			"duration_min", int(duration/60), "threshold_min", opts.SplitDurationMin)

		chunks, err := ffmpeg.SplitAudio(ctx, workingPath, filepath.Dir(workingPath), splitDurationSec)
		if err != nil {
			return fmt.Errorf("split audio: %w", err)
		}
		defer cleanupChunks(chunks)

		slog.Info("split into chunks", "count", len(chunks))

		if !opts.NoAsync && len(chunks) > 1 {
			combined, err = processConcurrent(ctx, chunks, splitDurationSec, opts)
		} else {
			combined, err = processSequential(ctx, chunks, splitDurationSec, opts)
		}
		if err != nil {
			return err
		}
	} else {
		slog.Info("processing as single file")
		transcript, err := transcribeWithProgress(ctx, workingPath, opts)
		if err != nil {
			return fmt.Errorf("transcribe: %w", err)
		}
		combined = transcript
	}

	if combined == nil || len(combined.Words) == 0 {
		return fmt.Errorf("empty transcript received")
	}
	if combined.Duration == 0 {
		if duration > 0 {
			combined.Duration = duration
		} else {
			combined.Duration = combined.Words[len(combined.Words)-1].End
		}
	}

	if opts.SaveTranscript {
		transcriptPath := strings.TrimSuffix(outputPath, filepath.Ext(outputPath)) + ".transcript.json"
		if err := saveJSON(transcriptPath, combined); err != nil {
			slog.Warn("failed to save transcript", "err", err)
		} else {
			slog.Info("transcript saved", "path", transcriptPath)
		}
	}

	slog.Info("generating captions", "words", len(combined.Words))
	doc, err := caption.Generate(combined, opts.Tagger, opts.Captions)
	if err != nil {
		return fmt.Errorf("generate captions: %w", err)
	}

	if err := saveJSON(outputPath, doc); err != nil {
		return fmt.Errorf("write caption document: %w", err)
	}

	slog.Info("caption document saved", "path", outputPath, "captions", len(doc.Captions))
	return nil
}

func transcribeWithProgress(ctx context.Context, path string, opts Options) (*caption.Transcript, error) {
	progress := func(read, total int64) {
		pct := 0.0
		if total > 0 {
			pct = math.Min(float64(read)/float64(total)*100, 100)
		}
		slog.Debug("upload progress", "percent", fmt.Sprintf("%.1f%%", pct))
	}

	return opts.client.Transcribe(ctx, path, opts.Language, progress)
}

func saveJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "    ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func cleanupChunks(chunks []string) {
	for _, chunk := range chunks {
		if err := os.Remove(chunk); err != nil && !os.IsNotExist(err) {
			slog.Debug("cleanup chunk", "file", filepath.Base(chunk), "err", err)
		}
	}
	slog.Debug("temp chunk cleanup complete")
}

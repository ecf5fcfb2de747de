// Package ffmpeg wraps the external media tool used for audio extraction and
// probing. The caption core only ever consumes its outputs.
package ffmpeg

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
)

// Speech engines expect mono 16kHz PCM input.
const (
	sampleRate = 16000
	channels   = 1
)

// MediaInfo holds duration, resolution, and frame-rate metadata from ffprobe.
type MediaInfo struct {
	Duration  float64
	Width     int
	Height    int
	FrameRate float64
	Codec     string
}

// Available returns true if ffmpeg is on the PATH.
func Available() bool {
	_, err := exec.LookPath("ffmpeg")
	return err == nil
}

// probeOutput mirrors ffprobe JSON structure.
type probeOutput struct {
	Format struct {
		Duration string `json:"duration"`
	} `json:"format"`
	Streams []struct {
		CodecType    string `json:"codec_type"`
		CodecName    string `json:"codec_name"`
		Width        int    `json:"width"`
		Height       int    `json:"height"`
		AvgFrameRate string `json:"avg_frame_rate"`
	} `json:"streams"`
}

// ProbeMedia uses ffprobe to read duration, resolution, and frame rate.
func ProbeMedia(ctx context.Context, path string) (*MediaInfo, error) {
	if _, err := exec.LookPath("ffprobe"); err != nil {
		return nil, fmt.Errorf("ffprobe not found: %w", err)
	}

	cmd := exec.CommandContext(ctx,
		"ffprobe",
		"-v", "error",
		"-show_entries", "stream=codec_type,codec_name,width,height,avg_frame_rate:format=duration",
		"-of", "json",
		path,
	)

	out, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("ffprobe failed: %w", err)
	}

	var probe probeOutput
	if err := json.Unmarshal(out, &probe); err != nil {
		return nil, fmt.Errorf("ffprobe JSON parse error: %w", err)
	}

	info := &MediaInfo{Codec: "N/A"}
	info.Duration, _ = strconv.ParseFloat(probe.Format.Duration, 64)

	for _, s := range probe.Streams {
		switch s.CodecType {
		case "video":
			info.Width = s.Width
			info.Height = s.Height
			info.FrameRate = parseFrameRate(s.AvgFrameRate)
		case "audio":
			if s.CodecName != "" {
				info.Codec = s.CodecName
			}
		}
	}

	return info, nil
}

// parseFrameRate converts ffprobe's rational form (e.g. "30000/1001") to fps.
func parseFrameRate(s string) float64 {
	num, den, found := strings.Cut(s, "/")
	if !found {
		v, _ := strconv.ParseFloat(s, 64)
		return v
	}
	n, err1 := strconv.ParseFloat(num, 64)
	d, err2 := strconv.ParseFloat(den, 64)
	if err1 != nil || err2 != nil || d == 0 {
		return 0
	}
	return n / d
}

// ExtractAudio decodes the audio stream into a mono 16kHz PCM WAV file.
func ExtractAudio(ctx context.Context, inputPath, outputPath string) error {
	slog.Info("extracting audio", "input", filepath.Base(inputPath), "output", filepath.Base(outputPath))

	cmd := exec.CommandContext(ctx,
		"ffmpeg", "-i", inputPath,
		"-vn",
		"-acodec", "pcm_s16le",
		"-ar", strconv.Itoa(sampleRate),
		"-ac", strconv.Itoa(channels),
		"-y",
		outputPath,
	)

	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("ffmpeg extract audio failed: %w\n%s", err, string(out))
	}
	return nil
}

// SplitAudio splits an audio file into segments of segmentSec seconds.
// Returns the sorted list of chunk file paths.
func SplitAudio(ctx context.Context, audioPath string, outputDir string, segmentSec int) ([]string, error) {
	baseName := strings.TrimSuffix(filepath.Base(audioPath), filepath.Ext(audioPath))
	outputTemplate := filepath.Join(outputDir, baseName+"_chunk_%03d.wav")

	slog.Info("splitting audio", "file", filepath.Base(audioPath), "segment_sec", segmentSec)

	cmd := exec.CommandContext(ctx,
		"ffmpeg", "-i", audioPath,
		"-f", "segment",
		"-segment_time", strconv.Itoa(segmentSec),
		"-acodec", "pcm_s16le",
		"-ar", strconv.Itoa(sampleRate),
		"-ac", strconv.Itoa(channels),
		"-y",
		outputTemplate,
	)

	if out, err := cmd.CombinedOutput(); err != nil {
		return nil, fmt.Errorf("ffmpeg split failed: %w\n%s", err, string(out))
	}

	pattern := filepath.Join(outputDir, baseName+"_chunk_*.wav")
	matches, err := filepath.Glob(pattern)
	if err != nil {
		return nil, fmt.Errorf("glob chunk files: %w", err)
	}
	if len(matches) == 0 {
		return nil, fmt.Errorf("ffmpeg produced no chunk files")
	}

	sort.Strings(matches)
	return matches, nil
}

// IsVideoExtension returns true for common video file extensions.
func IsVideoExtension(ext string) bool {
	switch strings.ToLower(ext) {
	case ".mp4", ".mkv", ".mov", ".avi", ".flv", ".webm", ".m4v":
		return true
	}
	return false
}

// LogMediaInfo logs file size and media information, returning what ffprobe
// found (nil when the file cannot be inspected).
func LogMediaInfo(ctx context.Context, path string) *MediaInfo {
	stat, err := os.Stat(path)
	if err != nil {
		slog.Warn("cannot stat file", "path", path, "err", err)
		return nil
	}

	sizeMB := float64(stat.Size()) / (1024 * 1024)
	msg := fmt.Sprintf("file size: %.2f MB", sizeMB)

	info, err := ProbeMedia(ctx, path)
	if err == nil && info != nil {
		minutes := int(info.Duration) / 60
		seconds := int(info.Duration) % 60
		msg += fmt.Sprintf(" | duration: %02d:%02d | codec: %s", minutes, seconds, info.Codec)
		if info.Width > 0 {
			msg += fmt.Sprintf(" | %dx%d @ %.2f fps", info.Width, info.Height, info.FrameRate)
		}
	}

	slog.Info(msg)
	return info
}

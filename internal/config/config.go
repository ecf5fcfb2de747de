package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// CaptionOptions holds the tunables for the caption pipeline.
type CaptionOptions struct {
	MaxWordsPerCaption int     `yaml:"max_words_per_caption"`
	MinWordsPerCaption int     `yaml:"min_words_per_caption"`
	PauseThreshold     float64 `yaml:"pause_threshold"`
	MaxCharsPerLine    int     `yaml:"max_chars_per_line"`
	DefaultAnimation   string  `yaml:"default_animation"`
	VaryAnimations     bool    `yaml:"vary_animations"`
	EmphasizeKeywords  bool    `yaml:"emphasize_keywords"`
	Theme              string  `yaml:"theme"`
}

// Validate rejects invalid options before the pipeline runs.
func (o *CaptionOptions) Validate() error {
	if o.MaxWordsPerCaption < 1 {
		return fmt.Errorf("max_words_per_caption must be >= 1, got %d", o.MaxWordsPerCaption)
	}
	if o.MinWordsPerCaption < 1 {
		return fmt.Errorf("min_words_per_caption must be >= 1, got %d", o.MinWordsPerCaption)
	}
	if o.MinWordsPerCaption > o.MaxWordsPerCaption {
		return fmt.Errorf("min_words_per_caption (%d) exceeds max_words_per_caption (%d)",
			o.MinWordsPerCaption, o.MaxWordsPerCaption)
	}
	if o.MaxCharsPerLine < 1 {
		return fmt.Errorf("max_chars_per_line must be >= 1, got %d", o.MaxCharsPerLine)
	}
	if o.PauseThreshold <= 0 {
		return fmt.Errorf("pause_threshold must be positive, got %g", o.PauseThreshold)
	}
	return nil
}

// Config holds the full application configuration.
type Config struct {
	Captions CaptionOptions `yaml:"captions"`

	// Speech-to-text engine.
	STTBaseURL          string `yaml:"stt_url"`
	SplitDurationMin    int    `yaml:"split_duration_min"`
	MaxConcurrentChunks int    `yaml:"max_concurrent_chunks"`
	MaxRetries          int    `yaml:"max_retries"`
	APIRateLimitPerMin  int    `yaml:"api_rate_limit_per_min"`

	// HTTP server.
	ListenAddr string `yaml:"listen_addr"`
	StorageDir string `yaml:"storage_dir"`
}

// Default returns a Config with the built-in defaults.
func Default() *Config {
	return &Config{
		Captions: CaptionOptions{
			MaxWordsPerCaption: 4,
			MinWordsPerCaption: 2,
			PauseThreshold:     0.5,
			MaxCharsPerLine:    30,
			DefaultAnimation:   "scale-in",
			VaryAnimations:     true,
			EmphasizeKeywords:  true,
			Theme:              "default",
		},
		STTBaseURL:          "http://localhost:9000",
		SplitDurationMin:    90,
		MaxConcurrentChunks: 3,
		MaxRetries:          3,
		APIRateLimitPerMin:  30,
		ListenAddr:          ":8000",
		StorageDir:          "./storage",
	}
}

// Load reads a YAML config file over the defaults. Missing keys keep their
// default values.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	return cfg, nil
}

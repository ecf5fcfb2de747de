// Package server exposes the caption pipeline over HTTP: transcription,
// caption generation, end-to-end processing, and stored-video retrieval.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/Araon/Steno/internal/caption"
	"github.com/Araon/Steno/internal/config"
	"github.com/Araon/Steno/internal/ffmpeg"
	"github.com/Araon/Steno/internal/stt"
)

const apiVersion = "0.1.0"

// maxUploadMemory bounds multipart form memory usage; larger files spill to disk.
const maxUploadMemory = 32 << 20

var allowedVideoExts = map[string]bool{
	".mp4": true, ".mov": true, ".avi": true,
	".mkv": true, ".webm": true, ".m4v": true,
}

// Server wires the collaborators behind the HTTP surface.
type Server struct {
	cfg    *config.Config
	tagger caption.Tagger
	stt    *stt.Client
	store  *VideoStore
	start  time.Time
}

// New builds a server from configuration and an injected tagger.
func New(cfg *config.Config, tagger caption.Tagger) (*Server, error) {
	store, err := NewVideoStore(filepath.Join(cfg.StorageDir, "videos"))
	if err != nil {
		return nil, err
	}

	return &Server{
		cfg:    cfg,
		tagger: tagger,
		stt:    stt.NewClient(cfg.STTBaseURL),
		store:  store,
		start:  time.Now(),
	}, nil
}

// Handler returns the route table.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("POST /api/transcribe", s.handleTranscribe)
	mux.HandleFunc("POST /api/captions", s.handleCaptions)
	mux.HandleFunc("POST /api/process", s.handleProcess)
	mux.HandleFunc("GET /api/videos/{id}", s.handleGetVideo)
	mux.HandleFunc("DELETE /api/videos/{id}", s.handleDeleteVideo)
	return mux
}

// Run serves until the context is cancelled, then shuts down gracefully.
func Run(ctx context.Context, cfg *config.Config, tagger caption.Tagger) error {
	s, err := New(cfg, tagger)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:    cfg.ListenAddr,
		Handler: s.Handler(),
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()
	slog.Info("server listening", "addr", cfg.ListenAddr)

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Warn("encode response", "err", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"detail": msg})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"version": apiVersion,
		"uptime":  time.Since(s.start).Seconds(),
	})
}

type captionsRequest struct {
	Transcript         caption.Transcript `json:"transcript"`
	MaxWordsPerCaption *int               `json:"maxWordsPerCaption,omitempty"`
	DefaultAnimation   string             `json:"defaultAnimation,omitempty"`
	Theme              string             `json:"theme,omitempty"`
}

type captionsResponse struct {
	Captions       *caption.Document `json:"captions"`
	ProcessingTime float64           `json:"processingTime"`
}

// handleCaptions runs the pipeline on a caller-supplied transcript.
func (s *Server) handleCaptions(w http.ResponseWriter, r *http.Request) {
	started := time.Now()

	var req captionsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid request body: %v", err))
		return
	}

	opts := s.captionOptions(req.MaxWordsPerCaption, req.DefaultAnimation, req.Theme)
	doc, err := caption.Generate(&req.Transcript, s.tagger, &opts)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, captionsResponse{
		Captions:       doc,
		ProcessingTime: float64(time.Since(started).Milliseconds()),
	})
}

type transcribeResponse struct {
	Transcript     *caption.Transcript `json:"transcript"`
	ProcessingTime float64             `json:"processingTime"`
}

// handleTranscribe extracts audio from an uploaded video and transcribes it.
func (s *Server) handleTranscribe(w http.ResponseWriter, r *http.Request) {
	started := time.Now()

	file, header, err := s.uploadedVideo(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	defer file.Close()

	ext := strings.ToLower(filepath.Ext(header.Filename))
	tmpVideo, err := saveTemp(file, ext)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	defer os.Remove(tmpVideo)

	transcript, err := s.extractAndTranscribe(r.Context(), tmpVideo, r.FormValue("language"))
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, transcribeResponse{
		Transcript:     transcript,
		ProcessingTime: float64(time.Since(started).Milliseconds()),
	})
}

type processResponse struct {
	Transcript     *caption.Transcript `json:"transcript"`
	Captions       *caption.Document   `json:"captions"`
	ProcessingTime float64             `json:"processingTime"`
	VideoID        string              `json:"videoId"`
	VideoDuration  float64             `json:"videoDuration"`
}

// handleProcess is the end-to-end operation: store the video, transcribe,
// and generate captions in one request.
func (s *Server) handleProcess(w http.ResponseWriter, r *http.Request) {
	started := time.Now()

	file, header, err := s.uploadedVideo(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	defer file.Close()

	ext := strings.ToLower(filepath.Ext(header.Filename))
	videoID, videoPath, err := s.store.Save(ext, file)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	slog.Info("stored video", "id", videoID)

	fail := func(status int, msg string) {
		s.store.Delete(videoID)
		writeError(w, status, msg)
	}

	videoDuration := 0.0
	if info, err := ffmpeg.ProbeMedia(r.Context(), videoPath); err == nil {
		videoDuration = info.Duration
	}

	transcript, err := s.extractAndTranscribe(r.Context(), videoPath, r.FormValue("language"))
	if err != nil {
		fail(http.StatusInternalServerError, err.Error())
		return
	}

	var maxWords *int
	if v := r.FormValue("maxWordsPerCaption"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			fail(http.StatusBadRequest, "maxWordsPerCaption must be an integer")
			return
		}
		maxWords = &n
	}

	opts := s.captionOptions(maxWords, r.FormValue("defaultAnimation"), r.FormValue("theme"))
	doc, err := caption.Generate(transcript, s.tagger, &opts)
	if err != nil {
		fail(http.StatusBadRequest, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, processResponse{
		Transcript:     transcript,
		Captions:       doc,
		ProcessingTime: float64(time.Since(started).Milliseconds()),
		VideoID:        videoID,
		VideoDuration:  videoDuration,
	})
}

func (s *Server) handleGetVideo(w http.ResponseWriter, r *http.Request) {
	path, ok := s.store.Find(r.PathValue("id"))
	if !ok {
		writeError(w, http.StatusNotFound, "video not found")
		return
	}
	http.ServeFile(w, r, path)
}

func (s *Server) handleDeleteVideo(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := s.store.Delete(id); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			writeError(w, http.StatusNotFound, "video not found")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	slog.Info("deleted video", "id", id)
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted", "videoId": id})
}

// captionOptions copies the configured defaults and applies per-request overrides.
func (s *Server) captionOptions(maxWords *int, animation, theme string) config.CaptionOptions {
	opts := s.cfg.Captions
	if maxWords != nil {
		opts.MaxWordsPerCaption = *maxWords
	}
	if animation != "" {
		opts.DefaultAnimation = animation
	}
	if theme != "" {
		opts.Theme = theme
	}
	return opts
}

// uploadedVideo pulls the "file" part from a multipart request and validates
// its extension.
func (s *Server) uploadedVideo(r *http.Request) (multipart.File, *multipart.FileHeader, error) {
	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		return nil, nil, fmt.Errorf("invalid multipart form: %w", err)
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		return nil, nil, fmt.Errorf("missing file upload: %w", err)
	}

	if header.Filename == "" {
		file.Close()
		return nil, nil, fmt.Errorf("no filename provided")
	}

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if !allowedVideoExts[ext] {
		file.Close()
		return nil, nil, fmt.Errorf("invalid file type: %s", ext)
	}

	return file, header, nil
}

// saveTemp writes an upload to a temp file and returns its path.
func saveTemp(r io.Reader, ext string) (string, error) {
	f, err := os.CreateTemp("", "steno_upload_*"+ext)
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		os.Remove(f.Name())
		return "", fmt.Errorf("write temp file: %w", err)
	}
	return f.Name(), nil
}

// extractAndTranscribe decodes the media into a mono waveform and runs the
// speech engine on it.
func (s *Server) extractAndTranscribe(ctx context.Context, mediaPath, language string) (*caption.Transcript, error) {
	audioPath := strings.TrimSuffix(mediaPath, filepath.Ext(mediaPath)) + "_audio.wav"
	if err := ffmpeg.ExtractAudio(ctx, mediaPath, audioPath); err != nil {
		return nil, fmt.Errorf("extract audio: %w", err)
	}
	defer os.Remove(audioPath)

	transcript, err := s.stt.Transcribe(ctx, audioPath, language, nil)
	if err != nil {
		return nil, fmt.Errorf("transcribe: %w", err)
	}
	return transcript, nil
}

package stt

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/Araon/Steno/internal/caption"
)

func writeTempAudio(t *testing.T, size int) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "audio.wav")
	if err := os.WriteFile(path, bytes.Repeat([]byte{0x42}, size), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestTranscribe_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/transcribe" {
			t.Errorf("path = %q, want /transcribe", r.URL.Path)
		}
		if err := r.ParseMultipartForm(32 << 20); err != nil {
			t.Errorf("parse multipart: %v", err)
		}
		if r.FormValue("word_timestamps") != "true" {
			t.Error("word_timestamps field missing")
		}
		if r.FormValue("language") != "en" {
			t.Errorf("language = %q, want en", r.FormValue("language"))
		}
		if _, header, err := r.FormFile("file"); err != nil {
			t.Errorf("file part: %v", err)
		} else if header.Filename != "audio.wav" {
			t.Errorf("filename = %q", header.Filename)
		}

		json.NewEncoder(w).Encode(caption.Transcript{
			Language: "en",
			Words: []caption.TimedWord{
				{Text: "hello", Start: 0, End: 0.4},
			},
		})
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	transcript, err := c.Transcribe(context.Background(), writeTempAudio(t, 4096), "en", nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(transcript.Words) != 1 || transcript.Words[0].Text != "hello" {
		t.Errorf("transcript = %+v", transcript)
	}
}

func TestTranscribe_AutoLanguageOmitted(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(32 << 20); err != nil {
			t.Errorf("parse multipart: %v", err)
		}
		if _, ok := r.MultipartForm.Value["language"]; ok {
			t.Error("language field must be omitted for auto detection")
		}
		json.NewEncoder(w).Encode(caption.Transcript{})
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	if _, err := c.Transcribe(context.Background(), writeTempAudio(t, 64), "auto", nil); err != nil {
		t.Fatal(err)
	}
}

func TestTranscribe_EngineError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model not loaded", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	if _, err := c.Transcribe(context.Background(), writeTempAudio(t, 64), "", nil); err == nil {
		t.Fatal("expected error for non-200 response")
	}
}

func TestTranscribe_FailedRequestReleasesWriter(t *testing.T) {
	// A large enough body that the writer goroutine is still mid-copy when
	// the connection fails; each failed request must not strand it.
	path := writeTempAudio(t, 1<<20)
	c := NewClient("http://127.0.0.1:1")

	before := runtime.NumGoroutine()

	for i := 0; i < 20; i++ {
		if _, err := c.Transcribe(context.Background(), path, "", nil); err == nil {
			t.Fatal("expected connection error")
		}
	}

	// Exited goroutines take a moment to be reaped.
	after := runtime.NumGoroutine()
	for i := 0; i < 100 && after > before+2; i++ {
		time.Sleep(10 * time.Millisecond)
		after = runtime.NumGoroutine()
	}

	if after > before+2 {
		t.Errorf("goroutines grew from %d to %d across failed uploads", before, after)
	}
}

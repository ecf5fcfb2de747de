// Package stt is a thin client for the external speech-to-text engine, which
// turns an audio file into word-level timed candidates with confidence scores.
package stt

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/Araon/Steno/internal/caption"
)

const uploadTimeout = 30 * time.Minute

// ProgressFunc is called with (bytesRead, totalBytes) during upload.
type ProgressFunc func(bytesRead, totalBytes int64)

// progressReader wraps an io.Reader and reports progress.
type progressReader struct {
	reader   io.Reader
	total    int64
	read     int64
	callback ProgressFunc
}

func (pr *progressReader) Read(p []byte) (int, error) {
	n, err := pr.reader.Read(p)
	pr.read += int64(n)
	if pr.callback != nil {
		pr.callback(pr.read, pr.total)
	}
	return n, err
}

// Client talks to a whisper-server style transcription endpoint.
type Client struct {
	BaseURL string
	HTTP    *http.Client
}

// NewClient creates a client for the given engine base URL.
func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		HTTP:    &http.Client{Timeout: uploadTimeout},
	}
}

// mimeFromExt returns the MIME type for common audio extensions.
func mimeFromExt(ext string) string {
	switch strings.ToLower(ext) {
	case ".wav":
		return "audio/wav"
	case ".mp3":
		return "audio/mp3"
	case ".m4a":
		return "audio/m4a"
	case ".flac":
		return "audio/flac"
	case ".ogg":
		return "audio/ogg"
	default:
		return "application/octet-stream"
	}
}

// Transcribe uploads an audio file and returns the word-level transcript.
func (c *Client) Transcribe(ctx context.Context, filePath, language string, progress ProgressFunc) (*caption.Transcript, error) {
	f, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer f.Close()

	stat, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat file: %w", err)
	}
	fileSize := stat.Size()

	// Build multipart form body using a pipe. Closing the read half on every
	// exit unblocks the writer goroutine when the request fails before the
	// body is fully consumed.
	pr, pw := io.Pipe()
	defer pr.Close()
	mw := multipart.NewWriter(pw)

	errCh := make(chan error, 1)
	go func() {
		defer pw.Close()
		defer mw.Close()

		if err := mw.WriteField("word_timestamps", "true"); err != nil {
			errCh <- err
			return
		}
		if language != "" && strings.ToLower(language) != "auto" {
			if err := mw.WriteField("language", language); err != nil {
				errCh <- err
				return
			}
		}

		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename="%s"`, filepath.Base(filePath)))
		h.Set("Content-Type", mimeFromExt(filepath.Ext(filePath)))
		part, err := mw.CreatePart(h)
		if err != nil {
			errCh <- err
			return
		}

		if _, err := io.Copy(part, f); err != nil {
			errCh <- err
			return
		}

		errCh <- nil
	}()

	// Estimate total size: file size + ~1KB form overhead.
	body := &progressReader{
		reader:   pr,
		total:    fileSize + 1024,
		callback: progress,
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/transcribe", body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Accept", "application/json")

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	if writeErr := <-errCh; writeErr != nil {
		return nil, fmt.Errorf("multipart write error: %w", writeErr)
	}

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("engine returned status %d: %s", resp.StatusCode, string(respBody))
	}

	var transcript caption.Transcript
	if err := json.NewDecoder(resp.Body).Decode(&transcript); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	return &transcript, nil
}

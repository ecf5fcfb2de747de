package server

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// VideoStore keeps uploaded videos on disk under generated IDs so a renderer
// can fetch them later.
type VideoStore struct {
	dir string
}

// NewVideoStore creates the storage directory if needed.
func NewVideoStore(dir string) (*VideoStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create storage dir: %w", err)
	}
	return &VideoStore{dir: dir}, nil
}

// Save writes the video to disk and returns its generated ID and path.
func (vs *VideoStore) Save(ext string, r io.Reader) (id, path string, err error) {
	id = uuid.New().String()
	path = filepath.Join(vs.dir, id+ext)

	f, err := os.Create(path)
	if err != nil {
		return "", "", fmt.Errorf("create video file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		os.Remove(path)
		return "", "", fmt.Errorf("write video file: %w", err)
	}
	return id, path, nil
}

// Find returns the stored path for an ID, matching any extension.
func (vs *VideoStore) Find(id string) (string, bool) {
	matches, err := filepath.Glob(filepath.Join(vs.dir, id+".*"))
	if err != nil || len(matches) == 0 {
		return "", false
	}
	return matches[0], true
}

// Delete removes all files stored under an ID.
func (vs *VideoStore) Delete(id string) error {
	matches, err := filepath.Glob(filepath.Join(vs.dir, id+".*"))
	if err != nil {
		return err
	}
	if len(matches) == 0 {
		return os.ErrNotExist
	}
	for _, m := range matches {
		if err := os.Remove(m); err != nil {
			return err
		}
	}
	return nil
}

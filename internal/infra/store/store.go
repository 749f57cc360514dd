// Package store persists the user progress record as a JSON file.
// Default location is ~/.quack/ducktyper_user.json; QUACK_HOME moves the
// directory and DUCKTYPER_PROGRESS_FILE overrides the full path.
// One file per user, owned exclusively by one process at a time.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"

	"github.com/quackverse/ducktyper/internal/domain"
)

// progressFileName is the default file name under the quack home.
const progressFileName = "ducktyper_user.json"

// envOverrides are the environment knobs for the progress location.
type envOverrides struct {
	Home         string `env:"QUACK_HOME"`
	ProgressFile string `env:"DUCKTYPER_PROGRESS_FILE"`
}

// FileStore loads and saves UserProgress at a fixed path.
type FileStore struct {
	path string
}

// New creates a store for the given path.
func New(path string) *FileStore {
	return &FileStore{path: path}
}

// NewDefault creates a store at the default (env-overridable) path.
func NewDefault() *FileStore {
	return New(DefaultPath())
}

// Path returns the backing file path.
func (s *FileStore) Path() string { return s.path }

// DefaultPath resolves the progress file location from the environment.
func DefaultPath() string {
	var overrides envOverrides
	if err := env.Parse(&overrides); err != nil {
		log.Printf("[store] WARNING: parse env overrides: %v", err)
	}
	if overrides.ProgressFile != "" {
		return overrides.ProgressFile
	}
	return filepath.Join(QuackHome(overrides.Home), progressFileName)
}

// QuackHome returns the quack data directory, preferring the override.
func QuackHome(override string) string {
	if override != "" {
		return override
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".quack")
}

// Load reads the progress record. A missing or corrupt file yields
// (nil, nil) so the caller starts fresh; corruption is logged.
func (s *FileStore) Load() (*domain.UserProgress, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read progress: %w", err)
	}

	var progress domain.UserProgress
	if err := json.Unmarshal(data, &progress); err != nil {
		log.Printf("[store] WARNING: %v (%s), starting fresh", domain.ErrProgressCorrupt, s.path)
		return nil, nil
	}
	if progress.Metadata == nil {
		progress.Metadata = map[string]any{}
	}
	return &progress, nil
}

// Save writes the record atomically: temp file in the same directory,
// then rename over the target.
func (s *FileStore) Save(progress *domain.UserProgress) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0700); err != nil {
		return fmt.Errorf("create progress dir: %w", err)
	}

	data, err := json.MarshalIndent(progress, "", "  ")
	if err != nil {
		return fmt.Errorf("encode progress: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".ducktyper_user-*.json")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("write progress: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("close temp file: %w", err)
	}

	if err := os.Rename(tmpPath, s.path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("replace progress file: %w", err)
	}
	return nil
}

// Reset deletes the backing file. Missing file is not an error.
func (s *FileStore) Reset() error {
	err := os.Remove(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}

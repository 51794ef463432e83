package progress

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

var (
	// ErrNotExist: no progress file yet, caller gets defaults.
	ErrNotExist = errors.New("user progress file does not exist")
	// ErrCorrupt: file is there but does not parse, caller gets defaults.
	ErrCorrupt = errors.New("user progress file corrupt")
)

// Store persists UserProgress as a pretty printed JSON file.
type Store struct {
	path  string
	mutex sync.Mutex
}

func NewStore(path string) *Store {
	return &Store{path: path}
}

// Load reads the progress file and merges recognized keys over defaults.
// On ErrNotExist / ErrCorrupt the returned progress is still usable, it
// holds the defaults; the error tells the caller which case it was.
func (s *Store) Load() (*UserProgress, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	progress := DefaultProgress()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return progress, ErrNotExist
		}
		return progress, fmt.Errorf("read user progress: %w", err)
	}

	if err := json.Unmarshal(data, progress); err != nil {
		return DefaultProgress(), fmt.Errorf("%w: %s", ErrCorrupt, err)
	}

	return progress, nil
}

func (s *Store) Save(progress *UserProgress) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	data, err := json.MarshalIndent(progress, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal user progress: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create user data dir: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("write user progress: %w", err)
	}

	return nil
}

package videos

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	log "github.com/sirupsen/logrus"
)

// Reserved mapping keys for videos that are not tied to one exercise.
const (
	IntroKey          = "__intro__"
	GettingStartedKey = "__getting_started__"
)

var ErrMappingNotFound = errors.New("video mapping not found")

// MappingStore keeps the exercise id -> video target map in a single JSON
// file. A target is either an external URL or a path to an uploaded file.
type MappingStore struct {
	path  string
	mutex sync.RWMutex
}

func NewMappingStore(path string) *MappingStore {
	return &MappingStore{
		path: path,
	}
}

// load reads the whole map. A missing or broken file yields an empty map,
// the mapping is reconstructible by re-linking videos in the admin panel.
func (s *MappingStore) load() map[string]string {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			log.Errorf("video mapping [%s]: read: %s", s.path, err)
		}
		return map[string]string{}
	}

	var mapping map[string]string
	if err := json.Unmarshal(data, &mapping); err != nil {
		log.Errorf("video mapping [%s]: unmarshal: %s", s.path, err)
		return map[string]string{}
	}
	if mapping == nil {
		mapping = map[string]string{}
	}
	return mapping
}

func (s *MappingStore) save(mapping map[string]string) error {
	data, err := json.MarshalIndent(mapping, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal video mapping: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("create video mapping dir: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0644); err != nil {
		return fmt.Errorf("write video mapping: %w", err)
	}
	return nil
}

func (s *MappingStore) All() map[string]string {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return s.load()
}

func (s *MappingStore) Get(exerciseID string) (string, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	target, ok := s.load()[exerciseID]
	if !ok {
		return "", fmt.Errorf("%s: %w", exerciseID, ErrMappingNotFound)
	}
	return target, nil
}

func (s *MappingStore) Set(exerciseID, target string) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	mapping := s.load()
	mapping[exerciseID] = target
	return s.save(mapping)
}

func (s *MappingStore) Delete(exerciseID string) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	mapping := s.load()
	if _, ok := mapping[exerciseID]; !ok {
		return fmt.Errorf("%s: %w", exerciseID, ErrMappingNotFound)
	}
	delete(mapping, exerciseID)
	return s.save(mapping)
}

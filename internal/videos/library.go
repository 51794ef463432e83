package videos

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"
)

var ErrVideoNotFound = errors.New("video not found")

// VideoFile is one community-contributed video for an exercise. Rating is a
// running average over all votes, a like counts as 5 and a dislike as 1, so
// disliking never removes a vote, it only drags the average down.
type VideoFile struct {
	Path       string  `json:"path"`
	Uploader   string  `json:"uploader"`
	Rating     float64 `json:"rating"`
	Votes      int     `json:"votes"`
	Flagged    bool    `json:"flagged"`
	UploadedAt string  `json:"uploaded_at"`
}

type LibraryEntry struct {
	ExerciseKey string       `json:"exercise_key"`
	Files       []*VideoFile `json:"files"`
}

const (
	RatingLike    = 5
	RatingDislike = 1
)

// Library is the shared exercise video catalog, persisted as a JSON list of
// per-exercise entries.
type Library struct {
	path  string
	mutex sync.RWMutex
	now   func() time.Time
}

func NewLibrary(path string) *Library {
	return &Library{
		path: path,
		now:  time.Now,
	}
}

func (l *Library) load() []*LibraryEntry {
	data, err := os.ReadFile(l.path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			log.Errorf("video library [%s]: read: %s", l.path, err)
		}
		return nil
	}

	var entries []*LibraryEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		log.Errorf("video library [%s]: unmarshal: %s", l.path, err)
		return nil
	}
	return entries
}

func (l *Library) save(entries []*LibraryEntry) error {
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal video library: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(l.path), 0755); err != nil {
		return fmt.Errorf("create video library dir: %w", err)
	}
	if err := os.WriteFile(l.path, data, 0644); err != nil {
		return fmt.Errorf("write video library: %w", err)
	}
	return nil
}

func (l *Library) AddVideo(exerciseKey, path, uploader string) error {
	l.mutex.Lock()
	defer l.mutex.Unlock()

	entries := l.load()

	var entry *LibraryEntry
	for _, e := range entries {
		if e.ExerciseKey == exerciseKey {
			entry = e
			break
		}
	}
	if entry == nil {
		entry = &LibraryEntry{
			ExerciseKey: exerciseKey,
			Files:       []*VideoFile{},
		}
		entries = append(entries, entry)
	}

	entry.Files = append(entry.Files, &VideoFile{
		Path:       path,
		Uploader:   uploader,
		UploadedAt: l.now().Format(time.RFC3339),
	})

	return l.save(entries)
}

// Rate records one vote for a video. The new rating is the running average
// of all votes so far: rating = (rating*(votes-1) + delta) / votes.
func (l *Library) Rate(exerciseKey, path string, delta float64) error {
	l.mutex.Lock()
	defer l.mutex.Unlock()

	entries := l.load()
	for _, entry := range entries {
		if entry.ExerciseKey != exerciseKey {
			continue
		}
		for _, video := range entry.Files {
			if video.Path != path {
				continue
			}
			video.Votes++
			video.Rating = ((video.Rating * float64(video.Votes-1)) + delta) / float64(video.Votes)
			return l.save(entries)
		}
	}
	return fmt.Errorf("%s [%s]: %w", exerciseKey, path, ErrVideoNotFound)
}

func (l *Library) Flag(exerciseKey, path string) error {
	l.mutex.Lock()
	defer l.mutex.Unlock()

	entries := l.load()
	for _, entry := range entries {
		if entry.ExerciseKey != exerciseKey {
			continue
		}
		for _, video := range entry.Files {
			if video.Path != path {
				continue
			}
			video.Flagged = true
			return l.save(entries)
		}
	}
	return fmt.Errorf("%s [%s]: %w", exerciseKey, path, ErrVideoNotFound)
}

// VideosFor returns the videos of one exercise, best rated first.
func (l *Library) VideosFor(exerciseKey string) []*VideoFile {
	l.mutex.RLock()
	defer l.mutex.RUnlock()

	var videos []*VideoFile
	for _, entry := range l.load() {
		if entry.ExerciseKey == exerciseKey {
			videos = entry.Files
			break
		}
	}

	sort.SliceStable(videos, func(i, j int) bool {
		return videos[i].Rating > videos[j].Rating
	})
	return videos
}

// TopVideos returns at most limit best rated videos for an exercise.
func (l *Library) TopVideos(exerciseKey string, limit int) []*VideoFile {
	videos := l.VideosFor(exerciseKey)
	if len(videos) > limit {
		videos = videos[:limit]
	}
	return videos
}

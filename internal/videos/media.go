package videos

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/hourglassfit/hourglass/internal/telemetry/tracing"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

const (
	// MaxVideoMB is the default upload size limit, used when the config
	// does not set one.
	MaxVideoMB    = 50
	MaxVideoBytes = MaxVideoMB * 1024 * 1024
)

var ErrVideoTooBig = errors.New("video exceeds the upload size limit")

// MediaStore keeps uploaded video files on disk in a single flat directory.
// Files are named {slug}_{timestamp}_{original name}, so the newest video
// of an exercise is found by scanning for the slug prefix.
type MediaStore struct {
	dir      string
	maxBytes int64
	mutex    sync.Mutex
	now      func() time.Time
}

func NewMediaStore(dir string, maxMB int) (*MediaStore, error) {
	if dir == "" {
		return nil, errors.New("media dir cannot be empty")
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create media dir: %w", err)
	}
	if maxMB <= 0 {
		maxMB = MaxVideoMB
	}
	return &MediaStore{
		dir:      dir,
		maxBytes: int64(maxMB) * 1024 * 1024,
		now:      time.Now,
	}, nil
}

// Save writes the uploaded video to disk and returns its path.
func (m *MediaStore) Save(ctx context.Context, slug, filename string, size int64, file io.Reader) (_ string, err error) {
	_, span := tracing.GlobalTracer.Start(ctx, "mediaStore.save")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	span.SetAttributes(attribute.String("video.slug", slug))
	span.SetAttributes(attribute.Int64("video.size", size))

	if size > m.maxBytes {
		return "", ErrVideoTooBig
	}
	if strings.Contains(filename, "..") || strings.ContainsAny(filename, "/\\") {
		return "", errors.New("invalid file name")
	}

	timestamp := m.now().Format("20060102_150405")
	newFilePath := filepath.Join(m.dir, fmt.Sprintf("%s_%s_%s", slug, timestamp, filename))

	log.Debugf("media store: saving video: %s", newFilePath)

	m.mutex.Lock()
	defer m.mutex.Unlock()

	dst, err := os.Create(newFilePath)
	if err != nil {
		return "", err
	}
	defer dst.Close()

	// LimitReader guards against a lying Content-Length
	if _, err := io.Copy(dst, io.LimitReader(file, m.maxBytes+1)); err != nil {
		return "", err
	}

	info, err := dst.Stat()
	if err != nil {
		return "", err
	}
	if info.Size() > m.maxBytes {
		if removeErr := os.Remove(newFilePath); removeErr != nil {
			log.Errorf("media store: remove oversized video: %s", removeErr)
		}
		return "", ErrVideoTooBig
	}

	return newFilePath, nil
}

// FindLatest returns the most recently modified video of an exercise.
func (m *MediaStore) FindLatest(ctx context.Context, slug string) (_ string, err error) {
	_, span := tracing.GlobalTracer.Start(ctx, "mediaStore.findLatest")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	entries, err := os.ReadDir(m.dir)
	if err != nil {
		return "", fmt.Errorf("read media dir: %w", err)
	}

	var (
		latestPath string
		latestMod  time.Time
	)
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasPrefix(entry.Name(), slug+"_") {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if latestPath == "" || info.ModTime().After(latestMod) {
			latestPath = filepath.Join(m.dir, entry.Name())
			latestMod = info.ModTime()
		}
	}

	if latestPath == "" {
		return "", fmt.Errorf("%s: %w", slug, ErrVideoNotFound)
	}
	return latestPath, nil
}

func (m *MediaStore) Delete(ctx context.Context, path string) (err error) {
	_, span := tracing.GlobalTracer.Start(ctx, "mediaStore.delete")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	absDir, err := filepath.Abs(m.dir)
	if err != nil {
		return err
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	if !strings.HasPrefix(absPath, absDir+string(os.PathSeparator)) {
		return fmt.Errorf("path outside media dir: %s", path)
	}

	log.Debugf("media store: deleting video: %s", absPath)

	if err := os.Remove(absPath); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("%s: %w", path, ErrVideoNotFound)
		}
		return err
	}
	return nil
}

package session

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/matzehuels/perfwall/pkg/raster"
	"github.com/matzehuels/perfwall/pkg/wall"
)

// FileStore is a file-based session store for the CLI. Each session is one
// JSON file; the image is embedded as PNG.
type FileStore struct {
	mu      sync.RWMutex
	baseDir string
	ttl     time.Duration
}

// record is the on-disk form of a session.
type record struct {
	ID        string      `json:"id"`
	Params    wall.Params `json:"params"`
	Image     []byte      `json:"image,omitempty"` // PNG
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}

// NewFileStore creates a file-based session store.
// If baseDir is empty, defaults to ~/.config/perfwall/sessions/.
// A ttl <= 0 uses [DefaultTTL].
func NewFileStore(baseDir string, ttl time.Duration) (*FileStore, error) {
	if baseDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("get home dir: %w", err)
		}
		baseDir = filepath.Join(home, ".config", "perfwall", "sessions")
	}
	if err := os.MkdirAll(baseDir, 0o700); err != nil {
		return nil, fmt.Errorf("create session dir: %w", err)
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &FileStore{baseDir: baseDir, ttl: ttl}, nil
}

func (f *FileStore) sessionPath(id string) string {
	return filepath.Join(f.baseDir, filepath.Base(id)+".json")
}

func (f *FileStore) Get(_ context.Context, id string) (*Session, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()

	path := f.sessionPath(id)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, notFound(id)
		}
		return nil, fmt.Errorf("read session file: %w", err)
	}

	var rec record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("parse session: %w", err)
	}
	if time.Since(rec.UpdatedAt) > f.ttl {
		os.Remove(path)
		return nil, notFound(id)
	}

	s := &Session{id: rec.ID, params: rec.Params, createdAt: rec.CreatedAt, updatedAt: rec.UpdatedAt}
	if len(rec.Image) > 0 {
		img, _, err := raster.DecodeBytes(rec.Image)
		if err != nil {
			return nil, fmt.Errorf("decode session image: %w", err)
		}
		s.image = img
	}
	return s, nil
}

func (f *FileStore) Set(_ context.Context, s *Session) error {
	s.mu.Lock()
	rec := record{ID: s.id, Params: s.params, CreatedAt: s.createdAt, UpdatedAt: s.updatedAt}
	img := s.image
	s.mu.Unlock()

	if img != nil {
		var buf bytes.Buffer
		if err := raster.EncodePNG(&buf, img); err != nil {
			return fmt.Errorf("encode session image: %w", err)
		}
		rec.Image = buf.Bytes()
	}
	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if err := os.WriteFile(f.sessionPath(rec.ID), data, 0o600); err != nil {
		return fmt.Errorf("write session file: %w", err)
	}
	return nil
}

func (f *FileStore) Delete(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := os.Remove(f.sessionPath(id)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove session file: %w", err)
	}
	return nil
}

func (f *FileStore) Cleanup(_ context.Context) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	entries, err := os.ReadDir(f.baseDir)
	if err != nil {
		return 0, fmt.Errorf("read session dir: %w", err)
	}

	n := 0
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".json" {
			continue
		}
		path := filepath.Join(f.baseDir, entry.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		var rec struct {
			UpdatedAt time.Time `json:"updated_at"`
		}
		if err := json.Unmarshal(data, &rec); err != nil {
			continue
		}
		if time.Since(rec.UpdatedAt) > f.ttl {
			if os.Remove(path) == nil {
				n++
			}
		}
	}
	return n, nil
}

// Latest returns the most recently updated live session, or
// ErrCodeSessionNotFound when there is none.
func (f *FileStore) Latest(ctx context.Context) (*Session, error) {
	f.mu.RLock()
	entries, err := os.ReadDir(f.baseDir)
	f.mu.RUnlock()
	if err != nil {
		return nil, fmt.Errorf("read session dir: %w", err)
	}

	var best *Session
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || filepath.Ext(name) != ".json" {
			continue
		}
		s, err := f.Get(ctx, strings.TrimSuffix(name, ".json"))
		if err != nil {
			continue
		}
		if best == nil || s.updatedAt.After(best.updatedAt) {
			best = s
		}
	}
	if best == nil {
		return nil, notFound("latest")
	}
	return best, nil
}

// Path returns the base directory for session files.
func (f *FileStore) Path() string {
	return f.baseDir
}

var _ Store = (*FileStore)(nil)

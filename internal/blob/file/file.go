package file

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
)

// Store persists every key as a JSON file under a base directory.
type Store struct {
	mu       sync.Mutex
	basePath string

	createTemp func(dir, pattern string) (*os.File, error)
}

// New creates a Store and ensures the base directory exists.
func New(basePath string) (*Store, error) {
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, fmt.Errorf("create storage directory %s: %w", basePath, err)
	}
	return &Store{basePath: basePath, createTemp: os.CreateTemp}, nil
}

// sanitizeKey makes a key safe for use as a filename.
func sanitizeKey(key string) string {
	r := strings.NewReplacer("/", "_", "\\", "_", ":", "-", "..", "_")
	return r.Replace(key)
}

func (s *Store) path(key string) string {
	return filepath.Join(s.basePath, sanitizeKey(key)+".json")
}

func (s *Store) Get(_ context.Context, key string) ([]byte, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, err := os.ReadFile(s.path(key))
	if errors.Is(err, os.ErrNotExist) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("read %s: %w", key, err)
	}
	return data, true, nil
}

func (s *Store) Set(_ context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.write(key, value)
}

// SetMany stages every value in a temp file before the first rename, so a
// failed write leaves all keys untouched. The renames themselves run one key
// at a time in key order.
func (s *Store) SetMany(ctx context.Context, values map[string][]byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	keys := slices.Sorted(maps.Keys(values))
	staged := make([]string, 0, len(keys))
	defer func() {
		for _, tmp := range staged {
			os.Remove(tmp)
		}
	}()
	for _, k := range keys {
		if err := ctx.Err(); err != nil {
			return err
		}
		tmp, err := s.stage(k, values[k])
		if err != nil {
			return err
		}
		staged = append(staged, tmp)
	}
	for i, k := range keys {
		if err := os.Rename(staged[i], s.path(k)); err != nil {
			return fmt.Errorf("rename %s: %w", k, err)
		}
	}
	return nil
}

func (s *Store) Delete(_ context.Context, keys ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, k := range keys {
		if err := os.Remove(s.path(k)); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("remove %s: %w", k, err)
		}
	}
	return nil
}

// write replaces the file atomically through a temp file in the same directory.
func (s *Store) write(key string, value []byte) error {
	tmp, err := s.stage(key, value)
	if err != nil {
		return err
	}
	defer os.Remove(tmp)

	if err := os.Rename(tmp, s.path(key)); err != nil {
		return fmt.Errorf("rename %s: %w", key, err)
	}
	return nil
}

// stage writes value to a temp file next to its destination and returns the
// temp file's path.
func (s *Store) stage(key string, value []byte) (string, error) {
	tmp, err := s.createTemp(s.basePath, ".tmp-*")
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}
	if _, err := tmp.Write(value); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return "", fmt.Errorf("write %s: %w", key, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return "", fmt.Errorf("close %s: %w", key, err)
	}
	return tmp.Name(), nil
}

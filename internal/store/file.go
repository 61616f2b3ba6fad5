package store

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// FileKV keeps all keys in one JSON document. Every write rewrites the file
// through a temporary file and a rename.
type FileKV struct {
	path string

	mu     sync.Mutex
	values map[string]string
}

// OpenFileKV opens or creates the JSON store at path
func OpenFileKV(path string) (*FileKV, error) {
	if path == "" {
		return nil, fmt.Errorf("store path cannot be empty")
	}

	kv := &FileKV{path: path, values: make(map[string]string)}

	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		return kv, nil
	case err != nil:
		return nil, fmt.Errorf("failed to read store file: %w", err)
	}

	if len(data) > 0 {
		var values map[string]string
		if err := json.Unmarshal(data, &values); err != nil {
			kv.setAside(err)
			return kv, nil
		}
		if values != nil {
			kv.values = values
		}
	}
	return kv, nil
}

// setAside moves an unreadable store file out of the way so that the next
// write starts a fresh document. The old file is kept for inspection.
func (f *FileKV) setAside(parseErr error) {
	dest := fmt.Sprintf("%s.corrupt-%s", f.path, time.Now().Format("20060102-150405"))
	if err := os.Rename(f.path, dest); err != nil {
		slog.Error("Ignoring corrupt store file", "path", f.path, "error", parseErr, "rename_error", err)
		return
	}
	slog.Error("Moved corrupt store file aside", "path", f.path, "moved_to", dest, "error", parseErr)
}

// Path returns the file backing the store
func (f *FileKV) Path() string {
	return f.path
}

func (f *FileKV) Get(key string) (string, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.values[key]
	return v, ok, nil
}

func (f *FileKV) Set(key, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	prev, existed := f.values[key]
	f.values[key] = value
	if err := f.flush(); err != nil {
		if existed {
			f.values[key] = prev
		} else {
			delete(f.values, key)
		}
		return err
	}
	return nil
}

func (f *FileKV) Delete(key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	prev, existed := f.values[key]
	if !existed {
		return nil
	}
	delete(f.values, key)
	if err := f.flush(); err != nil {
		f.values[key] = prev
		return err
	}
	return nil
}

func (f *FileKV) Close() error {
	return nil
}

func (f *FileKV) flush() error {
	data, err := json.MarshalIndent(f.values, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode store: %w", err)
	}

	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create store directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".store-*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write store: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write store: %w", err)
	}

	// The store holds the API key
	if err := os.Chmod(tmp.Name(), 0600); err != nil {
		return fmt.Errorf("failed to set store permissions: %w", err)
	}

	if err := os.Rename(tmp.Name(), f.path); err != nil {
		return fmt.Errorf("failed to replace store file: %w", err)
	}
	return nil
}

package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// FileStore persists state as a single JSON document on disk, one top-level
// field per key. It is the default backend.
type FileStore struct {
	path string
	data map[string]json.RawMessage
}

// NewFileStore opens (or creates) the state file at path.
func NewFileStore(path string) (*FileStore, error) {
	fs := &FileStore{
		path: path,
		data: make(map[string]json.RawMessage),
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return fs, nil
		}
		return nil, fmt.Errorf("failed to read state file: %w", err)
	}

	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &fs.data); err != nil {
			return nil, fmt.Errorf("failed to parse state file %s: %w", path, err)
		}
	}

	return fs, nil
}

// Load implements Store.
func (fs *FileStore) Load(key string, v any) error {
	raw, ok := fs.data[key]
	if !ok {
		return ErrKeyNotFound
	}
	return json.Unmarshal(raw, v)
}

// Save implements Store. The whole document is rewritten atomically via a
// temp file rename.
func (fs *FileStore) Save(key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", key, err)
	}
	fs.data[key] = raw

	doc, err := json.MarshalIndent(fs.data, "", "  ")
	if err != nil {
		return err
	}

	dir := filepath.Dir(fs.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, ".state-*.json")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(doc); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}

	return os.Rename(tmpName, fs.path)
}

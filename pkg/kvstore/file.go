package kvstore

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/shashiranjanraj/vyapar/pkg/crypt"
	"github.com/shashiranjanraj/vyapar/pkg/logger"
)

// File persists keys as a single JSON document on disk. Each write rewrites
// the whole document through a temp file + rename, so a crash never leaves a
// half-written store behind. When a secret is configured the document is
// encrypted at rest with AES-GCM.
type File struct {
	mu     sync.Mutex
	path   string
	secret string
	data   map[string]string
}

// OpenFile loads (or lazily creates) the store at path. An unreadable or
// corrupt document is treated as empty: the operator just logs in again.
func OpenFile(path, secret string) (*File, error) {
	f := &File{path: path, secret: secret, data: make(map[string]string)}

	raw, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return f, nil
	}
	if err != nil {
		return nil, fmt.Errorf("kvstore: read %s: %w", path, err)
	}

	if secret != "" {
		plain, derr := crypt.Decrypt(secret, string(raw))
		if derr != nil {
			logger.Warn("kvstore: cannot decrypt store, starting empty", "path", path)
			return f, nil
		}
		raw = plain
	}

	if err := json.Unmarshal(raw, &f.data); err != nil {
		logger.Warn("kvstore: corrupt store, starting empty", "path", path)
		f.data = make(map[string]string)
	}
	return f, nil
}

func (f *File) Get(key string) (string, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.data[key]
	return v, ok
}

func (f *File) Set(key, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.data[key] = value
	return f.flush()
}

func (f *File) Delete(key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.data[key]; !ok {
		return nil
	}
	delete(f.data, key)
	return f.flush()
}

// flush writes the document atomically. Caller holds f.mu.
func (f *File) flush() error {
	raw, err := json.Marshal(f.data)
	if err != nil {
		return fmt.Errorf("kvstore: marshal: %w", err)
	}

	if f.secret != "" {
		enc, err := crypt.Encrypt(f.secret, raw)
		if err != nil {
			return err
		}
		raw = []byte(enc)
	}

	if err := os.MkdirAll(filepath.Dir(f.path), 0o700); err != nil {
		return fmt.Errorf("kvstore: mkdir: %w", err)
	}

	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o600); err != nil {
		return fmt.Errorf("kvstore: write %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, f.path); err != nil {
		return fmt.Errorf("kvstore: rename: %w", err)
	}
	return nil
}

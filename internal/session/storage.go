package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/nfrund/healthtrack/internal/domain"
	"github.com/spf13/afero"
)

// Record is the durable half of a session. Token and User are always written
// and cleared together.
type Record struct {
	Token string              `json:"token"`
	User  *domain.UserProfile `json:"user,omitempty"`
}

// Storage persists the session record across process restarts or page loads.
// Load returns a zero Record and no error when nothing is stored.
type Storage interface {
	Load() (Record, error)
	Save(rec Record) error
	Clear() error
}

// MemoryStorage keeps the record in memory. It backs tests and one-shot runs.
type MemoryStorage struct {
	mu  sync.Mutex
	rec Record
}

func (m *MemoryStorage) Load() (Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return Record{Token: m.rec.Token, User: m.rec.User.Clone()}, nil
}

func (m *MemoryStorage) Save(rec Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rec = Record{Token: rec.Token, User: rec.User.Clone()}
	return nil
}

func (m *MemoryStorage) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rec = Record{}
	return nil
}

// FileStorage keeps the record as a JSON file, readable only by its owner.
type FileStorage struct {
	fs   afero.Fs
	path string
}

// NewFileStorage stores the record at path on fs.
func NewFileStorage(fs afero.Fs, path string) *FileStorage {
	return &FileStorage{fs: fs, path: path}
}

// Path returns the file the record is kept in.
func (f *FileStorage) Path() string {
	return f.path
}

func (f *FileStorage) Load() (Record, error) {
	data, err := afero.ReadFile(f.fs, f.path)
	if errors.Is(err, os.ErrNotExist) {
		return Record{}, nil
	}
	if err != nil {
		return Record{}, fmt.Errorf("read session file: %w", err)
	}

	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return Record{}, fmt.Errorf("decode session file %s: %w", f.path, err)
	}
	if rec.Token == "" {
		return Record{}, nil
	}
	return rec, nil
}

// Save writes to a temporary sibling and renames it over the record, so a
// crash never leaves a token without its user.
func (f *FileStorage) Save(rec Record) error {
	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	if err := f.fs.MkdirAll(filepath.Dir(f.path), 0o700); err != nil {
		return fmt.Errorf("create session dir: %w", err)
	}
	tmp := f.path + ".tmp"
	if err := afero.WriteFile(f.fs, tmp, data, 0o600); err != nil {
		return fmt.Errorf("write session file: %w", err)
	}
	if err := f.fs.Rename(tmp, f.path); err != nil {
		_ = f.fs.Remove(tmp)
		return fmt.Errorf("replace session file: %w", err)
	}
	return nil
}

func (f *FileStorage) Clear() error {
	if err := f.fs.Remove(f.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove session file: %w", err)
	}
	return nil
}

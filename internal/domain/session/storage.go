package session

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync"
)

// Saved is the credential and identity persisted between runs, the
// equivalent of the browser's session-scoped storage.
type Saved struct {
	Token    string   `json:"token"`
	User     Identity `json:"user"`
	UserType UserType `json:"userType"`
}

type Storage interface {
	Load() (Saved, bool, error)
	Save(Saved) error
	Clear() error
}

type fileStorage struct {
	mu   sync.Mutex
	path string
}

func NewFileStorage(path string) Storage {
	return &fileStorage{path: path}
}

func (f *fileStorage) Load() (Saved, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	data, err := os.ReadFile(f.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Saved{}, false, nil
		}
		return Saved{}, false, err
	}
	var saved Saved
	if err := json.Unmarshal(data, &saved); err != nil {
		// A corrupt session file is the same as no session.
		return Saved{}, false, nil
	}
	if saved.Token == "" {
		return Saved{}, false, nil
	}
	return saved, true, nil
}

func (f *fileStorage) Save(saved Saved) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	data, err := json.Marshal(saved)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(f.path); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return err
		}
	}
	return os.WriteFile(f.path, data, 0o600)
}

func (f *fileStorage) Clear() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := os.Remove(f.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

type memoryStorage struct {
	mu    sync.Mutex
	saved Saved
	set   bool
}

// NewMemoryStorage keeps the session in process memory only. Used by tests
// and by embedders that do not want credentials on disk.
func NewMemoryStorage() Storage {
	return &memoryStorage{}
}

func (m *memoryStorage) Load() (Saved, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saved, m.set, nil
}

func (m *memoryStorage) Save(saved Saved) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saved = saved
	m.set = true
	return nil
}

func (m *memoryStorage) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saved = Saved{}
	m.set = false
	return nil
}

package session

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
)

// Profile is the cached user identity stored alongside the token.
type Profile struct {
	UserName string `json:"userName"`
	Email    string `json:"email"`
}

// Store is the durable session capability: get/set/clear token and
// profile. It is passed explicitly to whoever needs credentials rather
// than being reached for as ambient global state.
type Store interface {
	// Token returns the stored bearer token, empty when logged out.
	Token() string
	// Profile returns the cached user profile, nil when logged out.
	Profile() *Profile
	// Save persists the token and profile. Called only at login.
	Save(token string, profile Profile) error
	// Clear wipes the session. Called unconditionally at logout.
	Clear() error
}

type fileState struct {
	AuthToken string   `json:"authToken"`
	UserData  *Profile `json:"userData,omitempty"`
}

// FileStore keeps the session in a JSON file under the user config
// dir, the CLI analog of the browser's durable local storage. The file
// is re-read on every access so concurrent CLI invocations observe
// logins and logouts from each other.
type FileStore struct {
	path string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (s *FileStore) load() fileState {
	var st fileState
	raw, err := os.ReadFile(s.path)
	if err != nil {
		return st
	}
	_ = json.Unmarshal(raw, &st)
	return st
}

func (s *FileStore) Token() string {
	return s.load().AuthToken
}

func (s *FileStore) Profile() *Profile {
	return s.load().UserData
}

func (s *FileStore) Save(token string, profile Profile) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return err
	}
	raw, err := json.Marshal(fileState{AuthToken: token, UserData: &profile})
	if err != nil {
		return err
	}
	// 0600: the token is a credential.
	return os.WriteFile(s.path, raw, 0o600)
}

func (s *FileStore) Clear() error {
	err := os.Remove(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

// MemoryStore is an in-memory Store for tests.
type MemoryStore struct {
	mu      sync.Mutex
	token   string
	profile *Profile
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

func (s *MemoryStore) Profile() *Profile {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.profile
}

func (s *MemoryStore) Save(token string, profile Profile) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	s.profile = &profile
	return nil
}

func (s *MemoryStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	s.profile = nil
	return nil
}

// Package session persists the identity of the signed-in vendor between runs.
package session

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

// Provider reports the acting vendor, if any. Implementations must return
// the current value on every call; callers rely on reading it fresh.
type Provider interface {
	ActorID() (string, bool)
}

type sessionFile struct {
	ActorID    string    `json:"actor_id"`
	SignedInAt time.Time `json:"signed_in_at"`
}

// FileStore keeps the session in a small JSON file (0600).
type FileStore struct {
	path string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (s *FileStore) Path() string { return s.path }

// ActorID reads the session file. A missing, unreadable or empty session
// reports absent.
func (s *FileStore) ActorID() (string, bool) {
	sf, err := load(s.path)
	if err != nil {
		return "", false
	}
	id := strings.TrimSpace(sf.ActorID)
	return id, id != ""
}

// SignIn records actorID as the acting vendor.
func (s *FileStore) SignIn(actorID string) error {
	actorID = strings.TrimSpace(actorID)
	if actorID == "" {
		return fmt.Errorf("actor id required")
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("mkdir session dir: %w", err)
	}
	return save(s.path, sessionFile{ActorID: actorID, SignedInAt: time.Now().UTC()})
}

// SignOut removes the session. Signing out without a session is not an error.
func (s *FileStore) SignOut() error {
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

func load(path string) (sessionFile, error) {
	var sf sessionFile
	data, err := os.ReadFile(path)
	if err != nil {
		return sf, err
	}
	if err := json.Unmarshal(data, &sf); err != nil {
		return sf, fmt.Errorf("parse session: %w", err)
	}
	return sf, nil
}

func save(path string, sf sessionFile) error {
	data, err := json.MarshalIndent(sf, "", "  ")
	if err != nil {
		return err
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

// Memory is an in-process Provider. The zero value has no actor.
type Memory struct {
	mu    sync.Mutex
	actor string
}

func NewMemory(actorID string) *Memory {
	return &Memory{actor: actorID}
}

func (m *Memory) ActorID() (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.actor, m.actor != ""
}

func (m *Memory) SignIn(actorID string) error {
	actorID = strings.TrimSpace(actorID)
	if actorID == "" {
		return fmt.Errorf("actor id required")
	}
	m.mu.Lock()
	m.actor = actorID
	m.mu.Unlock()
	return nil
}

func (m *Memory) SignOut() error {
	m.mu.Lock()
	m.actor = ""
	m.mu.Unlock()
	return nil
}

package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/xvierd/habit-cli/internal/domain"
	"github.com/xvierd/habit-cli/internal/ports"
)

const profileFile = "profile.json"

// jsonStore implements ports.Storage with plain JSON files in one directory.
type jsonStore struct {
	dir string
	mu  sync.RWMutex
}

var _ ports.Storage = (*jsonStore)(nil)

// NewJSON creates a file-backed storage rooted at dir.
func NewJSON(dir string) (ports.Storage, error) {
	s := &jsonStore{dir: dir}
	if err := s.Migrate(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *jsonStore) Snapshots() ports.SnapshotRepository { return jsonSnapshots{s} }
func (s *jsonStore) Profiles() ports.ProfileRepository   { return jsonProfiles{s} }
func (s *jsonStore) Close() error                        { return nil }

// Migrate makes sure the data directory exists.
func (s *jsonStore) Migrate() error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}
	return nil
}

func (s *jsonStore) path(name string) string {
	return filepath.Join(s.dir, name)
}

// read returns nil data when the file does not exist.
func (s *jsonStore) read(name string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	data, err := os.ReadFile(s.path(name))
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	return data, err
}

func (s *jsonStore) write(name string, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return err
	}
	tmpPath := s.path(name) + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmpPath, s.path(name))
}

func (s *jsonStore) remove(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	err := os.Remove(s.path(name))
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}

type jsonSnapshots struct{ s *jsonStore }

func (r jsonSnapshots) Load(_ context.Context) (*domain.HabitLog, error) {
	data, err := r.s.read(SnapshotKey + ".json")
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot: %w", err)
	}
	if data == nil {
		return nil, nil
	}
	return DecodeSnapshot(data)
}

func (r jsonSnapshots) Save(_ context.Context, log *domain.HabitLog) error {
	data, err := EncodeSnapshot(log)
	if err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}
	if err := r.s.write(SnapshotKey+".json", data); err != nil {
		return fmt.Errorf("failed to save snapshot: %w", err)
	}
	return nil
}

func (r jsonSnapshots) Clear(_ context.Context) error {
	return r.s.remove(SnapshotKey + ".json")
}

type profileRecord struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type jsonProfiles struct{ s *jsonStore }

func (r jsonProfiles) Get(_ context.Context) (*domain.Profile, error) {
	data, err := r.s.read(profileFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read profile: %w", err)
	}
	if data == nil {
		return nil, nil
	}
	var rec profileRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("failed to decode profile: %w", err)
	}
	return &domain.Profile{Name: rec.Name, Email: rec.Email}, nil
}

func (r jsonProfiles) Put(_ context.Context, p *domain.Profile) error {
	data, err := json.MarshalIndent(profileRecord{Name: p.Name, Email: p.Email}, "", "  ")
	if err != nil {
		return err
	}
	if err := r.s.write(profileFile, data); err != nil {
		return fmt.Errorf("failed to save profile: %w", err)
	}
	return nil
}

func (r jsonProfiles) Delete(_ context.Context) error {
	return r.s.remove(profileFile)
}

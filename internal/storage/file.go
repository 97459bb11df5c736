package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/jwebster45206/the-deep/pkg/state"
	"github.com/jwebster45206/the-deep/pkg/storage"
)

const saveExt = ".yaml"

// FileStorage keeps one YAML file per save game in a directory.
type FileStorage struct {
	dir    string
	logger *slog.Logger
}

// Ensure FileStorage implements Storage interface
var _ storage.Storage = (*FileStorage)(nil)

// NewFileStorage creates dir if needed.
func NewFileStorage(dir string, logger *slog.Logger) (*FileStorage, error) {
	if dir == "" {
		dir = "./saves"
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create save directory %s: %w", dir, err)
	}
	return &FileStorage{dir: dir, logger: logger}, nil
}

func (f *FileStorage) path(id uuid.UUID) string {
	return filepath.Join(f.dir, id.String()+saveExt)
}

func (f *FileStorage) Ping(ctx context.Context) error {
	info, err := os.Stat(f.dir)
	if err != nil {
		return fmt.Errorf("save directory unavailable: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("save path %s is not a directory", f.dir)
	}
	return nil
}

func (f *FileStorage) Close() error {
	return nil
}

// SaveGame writes to a temp file and renames it so a crash never leaves a torn save.
func (f *FileStorage) SaveGame(ctx context.Context, snap *state.Snapshot) error {
	if snap == nil {
		return errors.New("snapshot cannot be nil")
	}
	data, err := yaml.Marshal(snap)
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}

	tmp, err := os.CreateTemp(f.dir, "save-*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp save: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write save: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write save: %w", err)
	}
	if err := os.Rename(tmp.Name(), f.path(snap.ID)); err != nil {
		f.logger.Error("Failed to save game", "uuid", snap.ID, "error", err)
		return fmt.Errorf("failed to save game: %w", err)
	}
	f.logger.Debug("Game saved", "uuid", snap.ID, "path", f.path(snap.ID))
	return nil
}

func (f *FileStorage) LoadGame(ctx context.Context, id uuid.UUID) (*state.Snapshot, error) {
	data, err := os.ReadFile(f.path(id))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read save %s: %w", id, err)
	}
	var snap state.Snapshot
	if err := yaml.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("failed to parse save %s: %w", id, err)
	}
	return &snap, nil
}

func (f *FileStorage) DeleteGame(ctx context.Context, id uuid.UUID) error {
	if err := os.Remove(f.path(id)); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to delete save %s: %w", id, err)
	}
	return nil
}

func (f *FileStorage) ListGames(ctx context.Context) ([]storage.SaveInfo, error) {
	entries, err := os.ReadDir(f.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read save directory: %w", err)
	}

	var saves []storage.SaveInfo
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), saveExt) {
			continue
		}
		id, err := uuid.Parse(strings.TrimSuffix(entry.Name(), saveExt))
		if err != nil {
			continue
		}
		snap, err := f.LoadGame(ctx, id)
		if err != nil || snap == nil {
			f.logger.Warn("Skipping unreadable save", "file", entry.Name(), "error", err)
			continue
		}
		saves = append(saves, storage.Summarize(snap))
	}
	storage.SortNewestFirst(saves)
	return saves, nil
}

package storage

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/jwebster45206/the-deep/pkg/state"
)

// Storage persists game snapshots.
// LoadGame returns (nil, nil) when no save exists for the ID.
type Storage interface {
	// Health and lifecycle
	Ping(ctx context.Context) error
	Close() error

	// Save operations
	SaveGame(ctx context.Context, snap *state.Snapshot) error
	LoadGame(ctx context.Context, id uuid.UUID) (*state.Snapshot, error)
	DeleteGame(ctx context.Context, id uuid.UUID) error
	ListGames(ctx context.Context) ([]SaveInfo, error)
}

// SaveInfo summarizes a save for listing.
type SaveInfo struct {
	ID       uuid.UUID    `json:"id" yaml:"id"`
	Title    string       `json:"title" yaml:"title"`
	Player   string       `json:"player" yaml:"player"`
	Location string       `json:"location" yaml:"location"`
	Turn     int          `json:"turn" yaml:"turn"`
	Status   state.Status `json:"status" yaml:"status"`
	SavedAt  time.Time    `json:"saved_at" yaml:"saved_at"`
}

// Summarize builds the listing entry for a snapshot.
func Summarize(snap *state.Snapshot) SaveInfo {
	return SaveInfo{
		ID:       snap.ID,
		Title:    snap.Title,
		Player:   snap.Player.Name,
		Location: snap.Player.Location,
		Turn:     snap.TurnCounter,
		Status:   snap.Status,
		SavedAt:  snap.SavedAt,
	}
}

// SortNewestFirst orders saves by save time, most recent first.
func SortNewestFirst(saves []SaveInfo) {
	sort.Slice(saves, func(i, j int) bool {
		return saves[i].SavedAt.After(saves[j].SavedAt)
	})
}

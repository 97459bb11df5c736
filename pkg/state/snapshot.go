package state

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/jwebster45206/the-deep/pkg/actor"
	"github.com/jwebster45206/the-deep/pkg/combat"
	"github.com/jwebster45206/the-deep/pkg/world"
)

// ErrInvalidSnapshot is returned when a snapshot does not fit the world it is restored into.
var ErrInvalidSnapshot = errors.New("invalid snapshot")

// SnapshotVersion is bumped whenever the snapshot layout changes incompatibly.
const SnapshotVersion = 1

// Snapshot is the flat, serializable form of a session.
type Snapshot struct {
	Version               int                 `json:"version" yaml:"version"`
	ID                    uuid.UUID           `json:"id" yaml:"id"`
	SavedAt               time.Time           `json:"saved_at" yaml:"saved_at"`
	Title                 string              `json:"title" yaml:"title"`
	Difficulty            string              `json:"difficulty" yaml:"difficulty"`
	Status                Status              `json:"status" yaml:"status"`
	Player                actor.PlayerSpec    `json:"player" yaml:"player"`
	Visited               []string            `json:"visited" yaml:"visited"`
	LocationItems         map[string][]string `json:"location_items" yaml:"location_items"`
	Objectives            map[string]int      `json:"objectives" yaml:"objectives"`
	MainObjectiveComplete bool                `json:"main_objective_complete" yaml:"main_objective_complete"`
	Encounter             *combat.Encounter   `json:"encounter,omitempty" yaml:"encounter,omitempty"`
	StepsSinceEncounter   int                 `json:"steps_since_encounter" yaml:"steps_since_encounter"`
	TurnCounter           int                 `json:"turn_counter" yaml:"turn_counter"`
	WinItemSpawned        bool                `json:"win_item_spawned" yaml:"win_item_spawned"`
}

// Snapshot captures the session. The result shares no memory with the game.
func (gs *GameState) Snapshot() *Snapshot {
	snap := &Snapshot{
		Version:               SnapshotVersion,
		ID:                    gs.ID,
		SavedAt:               time.Now().UTC(),
		Title:                 gs.World.Title,
		Difficulty:            gs.Difficulty,
		Status:                gs.Status,
		Player:                gs.Player.Spec(),
		Visited:               []string{},
		LocationItems:         make(map[string][]string, len(gs.World.Locations)),
		Objectives:            gs.Objectives.Progress(),
		MainObjectiveComplete: gs.MainObjectiveComplete,
		StepsSinceEncounter:   gs.StepsSinceEncounter,
		TurnCounter:           gs.TurnCounter,
		WinItemSpawned:        gs.WinItemSpawned,
	}

	for _, id := range gs.World.LocationIDs() {
		loc := gs.World.Locations[id]
		if loc.Visited {
			snap.Visited = append(snap.Visited, id)
		}
		snap.LocationItems[id] = slices.Clone(loc.Items)
	}
	if gs.InCombat() {
		enc := *gs.Encounter
		enemy := *enc.Enemy
		enc.Enemy = &enemy
		snap.Encounter = &enc
	}
	return snap
}

// Restore resumes a session from a snapshot taken against the same world definition.
func Restore(w *world.World, snap *Snapshot, opts Options) (*GameState, error) {
	if snap == nil {
		return nil, fmt.Errorf("%w: nil snapshot", ErrInvalidSnapshot)
	}
	if snap.Version != SnapshotVersion {
		return nil, fmt.Errorf("%w: version %d, want %d", ErrInvalidSnapshot, snap.Version, SnapshotVersion)
	}
	if snap.Difficulty != "" {
		opts.Difficulty = snap.Difficulty
	}
	gs := New(w, opts)
	if snap.ID != uuid.Nil {
		gs.ID = snap.ID
		gs.SetLogger(gs.opts.Logger)
	}

	if _, ok := gs.World.Location(snap.Player.Location); !ok {
		return nil, fmt.Errorf("%w: player location %q is not in the world", ErrInvalidSnapshot, snap.Player.Location)
	}
	holder := make(map[string]string)
	for _, id := range snap.Player.Inventory {
		if _, ok := gs.World.Item(id); !ok {
			return nil, fmt.Errorf("%w: inventory item %q is not in the world", ErrInvalidSnapshot, id)
		}
		if prev, ok := holder[id]; ok {
			return nil, fmt.Errorf("%w: item %q is held twice (%s)", ErrInvalidSnapshot, id, prev)
		}
		holder[id] = "inventory"
	}

	for _, loc := range gs.World.Locations {
		loc.Visited = false
	}
	for _, id := range snap.Visited {
		if loc, ok := gs.World.Location(id); ok {
			loc.Visited = true
		}
	}
	for _, id := range slices.Sorted(maps.Keys(snap.LocationItems)) {
		loc, ok := gs.World.Location(id)
		if !ok {
			return nil, fmt.Errorf("%w: location %q is not in the world", ErrInvalidSnapshot, id)
		}
		for _, itemID := range snap.LocationItems[id] {
			if _, ok := gs.World.Item(itemID); !ok {
				return nil, fmt.Errorf("%w: item %q at %s is not in the world", ErrInvalidSnapshot, itemID, id)
			}
			if prev, ok := holder[itemID]; ok {
				return nil, fmt.Errorf("%w: item %q is in both %s and %s", ErrInvalidSnapshot, itemID, prev, id)
			}
			holder[itemID] = id
		}
		loc.Items = slices.Clone(snap.LocationItems[id])
	}

	p, err := actor.NewPlayerFromSpec(snap.Player)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSnapshot, err)
	}
	gs.Player = p

	if err := gs.Objectives.Restore(snap.Objectives); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSnapshot, err)
	}
	gs.MainObjectiveComplete = snap.MainObjectiveComplete
	gs.Status = snap.Status
	if gs.Status == "" {
		gs.Status = StatusRunning
	}
	gs.StepsSinceEncounter = snap.StepsSinceEncounter
	gs.TurnCounter = snap.TurnCounter
	gs.WinItemSpawned = snap.WinItemSpawned

	if snap.Encounter != nil && snap.Encounter.Enemy != nil {
		enemy := *snap.Encounter.Enemy
		gs.Encounter = combat.NewEncounter(&enemy)
		gs.Encounter.Rounds = snap.Encounter.Rounds
	}
	gs.logger.Info("game restored", "turns", gs.TurnCounter, "location", gs.Player.Location)
	return gs, nil
}

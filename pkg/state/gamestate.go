package state

import (
	"log/slog"

	"github.com/google/uuid"

	"github.com/jwebster45206/the-deep/pkg/actor"
	"github.com/jwebster45206/the-deep/pkg/combat"
	"github.com/jwebster45206/the-deep/pkg/dice"
	"github.com/jwebster45206/the-deep/pkg/event"
	"github.com/jwebster45206/the-deep/pkg/objective"
	"github.com/jwebster45206/the-deep/pkg/world"
)

// Status is the lifecycle of a session.
type Status string

const (
	StatusRunning Status = "running"
	StatusVictory Status = "victory"
	StatusDefeat  Status = "defeat"
	StatusQuit    Status = "quit"
)

// IsOver reports whether the session has reached a terminal state.
func (s Status) IsOver() bool {
	return s != StatusRunning
}

// Options configures a new session.
type Options struct {
	PlayerName string
	Difficulty string
	Dice       dice.Source  // defaults to a time-seeded source
	Logger     *slog.Logger // defaults to discarding
}

// GameState is a single play session. It owns its world copy, the player,
// objective progress and the active encounter, if any. It is not safe for
// concurrent use; a session is driven by one loop.
type GameState struct {
	ID                    uuid.UUID
	World                 *world.World
	Player                *actor.Player
	Objectives            *objective.Tracker
	Encounter             *combat.Encounter
	MainObjectiveComplete bool
	Status                Status
	StepsSinceEncounter   int
	TurnCounter           int
	WinItemSpawned        bool
	Difficulty            string

	template *world.World
	opts     Options
	resolver *combat.Resolver
	dice     dice.Source
	logger   *slog.Logger
}

// New starts a session on a fresh copy of w. The start location counts as visited.
func New(w *world.World, opts Options) *GameState {
	if opts.Dice == nil {
		opts.Dice = dice.New(0)
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.DiscardHandler)
	}
	if opts.Difficulty == "" {
		opts.Difficulty = world.DefaultDifficulty
	}

	gs := &GameState{
		ID:         uuid.New(),
		template:   w,
		opts:       opts,
		dice:       opts.Dice,
		Difficulty: opts.Difficulty,
	}
	gs.reset()
	gs.logger.Info("game started", "location", gs.Player.Location, "difficulty", gs.Difficulty)
	return gs
}

// reset rebuilds everything but the session ID from the world definition.
func (gs *GameState) reset() {
	gs.World = gs.template.Clone()
	gs.Player = actor.NewPlayer(gs.opts.PlayerName, gs.World.Rules.PlayerMaxHealth,
		gs.World.StartLocation, gs.World.StartingInventory)
	gs.Objectives = objective.NewTracker(gs.World.Objectives)
	gs.Encounter = nil
	gs.MainObjectiveComplete = false
	gs.Status = StatusRunning
	gs.StepsSinceEncounter = 0
	gs.TurnCounter = 0
	gs.WinItemSpawned = false
	gs.logger = gs.opts.Logger.With("game_id", gs.ID.String())
	gs.resolver = combat.NewResolver(gs.World, gs.Difficulty, gs.dice, gs.logger)

	var discard event.Log
	gs.arrive(gs.CurrentLocation(), &discard)
}

// Restart resets the world, player and objectives to their starting values.
func (gs *GameState) Restart() []event.Event {
	gs.reset()
	gs.logger.Info("game restarted")
	var log event.Log
	log.Add(event.KindSystem, "You return to the surface and begin again.")
	gs.describeLocation(&log, true)
	return log
}

// CurrentLocation is the location the player is standing in.
func (gs *GameState) CurrentLocation() *world.Location {
	loc, _ := gs.World.Location(gs.Player.Location)
	return loc
}

// InCombat reports whether an enemy is active and alive.
func (gs *GameState) InCombat() bool {
	return gs.Encounter.Active()
}

// Logger is the session-scoped logger.
func (gs *GameState) Logger() *slog.Logger {
	return gs.logger
}

// SetLogger replaces the session logger, keeping the game ID attribute.
func (gs *GameState) SetLogger(l *slog.Logger) {
	if l == nil {
		return
	}
	gs.opts.Logger = l
	gs.logger = l.With("game_id", gs.ID.String())
	gs.resolver.Logger = gs.logger
}

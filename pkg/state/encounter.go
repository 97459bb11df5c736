package state

import (
	"errors"
	"fmt"

	"github.com/jwebster45206/the-deep/pkg/actor"
	"github.com/jwebster45206/the-deep/pkg/combat"
	"github.com/jwebster45206/the-deep/pkg/dice"
	"github.com/jwebster45206/the-deep/pkg/event"
	"github.com/jwebster45206/the-deep/pkg/world"
)

// TickCombat applies one combat action to the active encounter.
// Invalid actions and unknown items are rejected without an enemy attack.
func (gs *GameState) TickCombat(action combat.Action) []event.Event {
	var log event.Log
	if gs.Status.IsOver() {
		log.Add(event.KindRejected, "The game is over.")
		return log
	}
	if !gs.InCombat() {
		log.Add(event.KindRejected, "There is nothing to fight here.")
		return log
	}

	enc := gs.Encounter
	res, err := gs.resolver.Resolve(enc, gs.Player, gs.CurrentLocation(), action)
	if err != nil {
		switch {
		case errors.Is(err, world.ErrItemNotFound) && action.Item == "":
			log.Add(event.KindRejected, "Use what?")
		case errors.Is(err, world.ErrItemNotFound):
			log.Addf(event.KindRejected, "You don't have a %s.", action.Item)
		default:
			log.Add(event.KindRejected, "You can't do that in combat. Choose: attack, flee, or use <item>.")
		}
		return log
	}
	log = append(log, res.Events...)
	if res.Effect != nil && res.Effect.Healed > 0 {
		log.Addf(event.KindInfo, "Health: %d/%d", gs.Player.Health(), gs.Player.MaxHealth())
	}

	gs.TurnCounter++
	switch res.Outcome {
	case combat.OutcomeVictory:
		gs.onVictory(enc.Enemy, res, &log)
		gs.endEncounter()
	case combat.OutcomeFlee:
		gs.endEncounter()
	case combat.OutcomeDefeat:
		gs.endEncounter()
	}
	gs.checkTerminal(&log)
	return log
}

func (gs *GameState) endEncounter() {
	gs.Encounter = nil
	gs.StepsSinceEncounter = 0
}

// onVictory records the kill, advances the enemy's objectives and drops loot here.
func (gs *GameState) onVictory(e *actor.Enemy, res combat.Result, log *event.Log) {
	log.Addf(event.KindSuccess, "You defeated the %s!", e.Name)
	gs.Player.AddJournalEntry(fmt.Sprintf("Encountered %s. %s", e.Name, summarize(e.Description, 100)))
	if e.Note != "" {
		log.Add(event.KindWarning, "EDUCATIONAL NOTE: "+e.Note)
	}
	gs.advance(e.Objectives, log)

	if res.LootID == "" {
		return
	}
	if !gs.placeLoot(res.LootID) {
		gs.logger.Debug("loot already placed", "item", res.LootID)
		return
	}
	log.Addf(event.KindSuccess, "The %s dropped: %s", e.Name, gs.World.ItemName(res.LootID))
}

// placeLoot drops an item at the current location unless it already exists somewhere.
func (gs *GameState) placeLoot(id string) bool {
	if _, ok := gs.World.Item(id); !ok {
		return false
	}
	if gs.Player.HasItem(id) {
		return false
	}
	if _, placed := gs.World.ItemLocation(id); placed {
		return false
	}
	return gs.CurrentLocation().AddItem(id)
}

// maybeSpawn rolls for an encounter once enough turns have passed since the last one.
// Locations with an empty spawn pool never roll.
func (gs *GameState) maybeSpawn(log *event.Log) {
	if gs.InCombat() || gs.StepsSinceEncounter < gs.World.Rules.MinTurnsBetweenEncounters {
		return
	}
	pool := gs.World.SpawnPool(gs.Player.Location)
	if len(pool) == 0 {
		return
	}
	if !dice.Chance(gs.dice, gs.World.Rules.SpawnChance) {
		return
	}
	gs.spawn(dice.Pick(gs.dice, pool), log)
}

func (gs *GameState) spawn(def *world.EnemyDef, log *event.Log) {
	enemy := actor.NewEnemy(def)
	gs.Encounter = combat.NewEncounter(enemy)
	gs.StepsSinceEncounter = 0
	log.Addf(event.KindWarning, "A %s appears!", enemy.Name)
	log.Add(event.KindNarration, enemy.Describe())
	log.Add(event.KindInfo, "Choose: attack, flee, or use <item>.")
	gs.logger.Info("enemy spawned", "enemy", enemy.ID, "location", gs.Player.Location)
}

// Spawn starts an encounter with the named enemy at the current location.
func (gs *GameState) Spawn(enemyID string) ([]event.Event, error) {
	def, ok := gs.World.Enemy(enemyID)
	if !ok {
		return nil, fmt.Errorf("unknown enemy %q", enemyID)
	}
	if gs.InCombat() {
		return nil, fmt.Errorf("already fighting %s", gs.Encounter.Enemy.ID)
	}
	var log event.Log
	gs.spawn(def, &log)
	return log, nil
}

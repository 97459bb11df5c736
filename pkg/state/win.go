package state

import (
	"fmt"
	"strings"

	"github.com/jwebster45206/the-deep/pkg/event"
)

// checkWinCondition is true when every objective is complete, the player is at the
// final location and holds the win item. When only the item is missing, it is
// placed at the final location once per session, but never mid-fight.
func (gs *GameState) checkWinCondition(log *event.Log) bool {
	w := gs.World
	if !gs.Objectives.AllComplete() || gs.Player.Location != w.FinalLocation {
		return false
	}
	if gs.Player.HasItem(w.WinItem) {
		return true
	}
	if gs.InCombat() {
		return false
	}
	loc := gs.CurrentLocation()
	if gs.WinItemSpawned || loc.HasItem(w.WinItem) {
		return false
	}
	if _, elsewhere := w.ItemLocation(w.WinItem); elsewhere {
		return false
	}
	loc.AddItem(w.WinItem)
	gs.WinItemSpawned = true
	msg := strings.TrimSpace(w.WinItemMessage)
	if msg == "" {
		msg = fmt.Sprintf("A %s appears before you.", w.ItemName(w.WinItem))
	}
	log.Add(event.KindWarning, msg)
	gs.logger.Info("win item spawned", "item", w.WinItem, "location", loc.ID)
	return false
}

// CheckWinCondition evaluates the win condition outside of a turn.
func (gs *GameState) CheckWinCondition() (bool, []event.Event) {
	var log event.Log
	ok := gs.checkWinCondition(&log)
	return ok, log
}

// endGame appends the ending text and final statistics.
func (gs *GameState) endGame(log *event.Log) {
	w := gs.World
	switch gs.Status {
	case StatusVictory:
		log.Add(event.KindSystem, "YOU WIN!")
		log.Add(event.KindNarration, strings.TrimSpace(w.Endings.Victory))
	case StatusDefeat:
		log.Add(event.KindSystem, "GAME OVER")
		log.Add(event.KindNarration, strings.TrimSpace(w.Endings.Defeat))
	case StatusQuit:
		log.Add(event.KindNarration, strings.TrimSpace(w.Endings.Quit))
	}
	log.Add(event.KindInfo, gs.finalStats())
}

func (gs *GameState) finalStats() string {
	var b strings.Builder
	b.WriteString("=== FINAL STATS ===")
	fmt.Fprintf(&b, "\nPlayer: %s", gs.Player.Name)
	fmt.Fprintf(&b, "\nHealth: %d/%d", gs.Player.Health(), gs.Player.MaxHealth())
	fmt.Fprintf(&b, "\nTurns: %d", gs.TurnCounter)
	fmt.Fprintf(&b, "\nSamples: %d", len(gs.Player.Samples))
	b.WriteString("\nObjectives:")
	for _, o := range gs.Objectives.List() {
		mark := "✗"
		if o.Completed {
			mark = "✓"
		}
		fmt.Fprintf(&b, "\n- %s: %s", o.Name, mark)
	}
	return b.String()
}

package state

import (
	"fmt"
	"strings"

	"github.com/jwebster45206/the-deep/pkg/dice"
	"github.com/jwebster45206/the-deep/pkg/event"
)

// Look describes the current location in full.
func (gs *GameState) Look() []event.Event {
	var log event.Log
	gs.describeLocation(&log, true)
	return log
}

func (gs *GameState) describeLocation(log *event.Log, full bool) {
	loc := gs.CurrentLocation()
	log.Addf(event.KindNarration, "=== %s ===", loc.Name)
	if full {
		log.Add(event.KindNarration, loc.Description)
	} else {
		log.Addf(event.KindNarration, "You are back at %s.", loc.Name)
	}
	if len(loc.Items) > 0 {
		names := make([]string, len(loc.Items))
		for i, id := range loc.Items {
			names[i] = "- " + gs.World.ItemName(id)
		}
		log.Add(event.KindInfo, "You notice:\n"+strings.Join(names, "\n"))
	}
	if dirs := loc.Directions(); len(dirs) > 0 {
		log.Add(event.KindInfo, "Possible directions: "+strings.Join(dirs, ", "))
	}
}

func (gs *GameState) describeInventory(log *event.Log) {
	if len(gs.Player.Inventory) == 0 {
		log.Add(event.KindInfo, "Your inventory is empty.")
		return
	}
	var b strings.Builder
	b.WriteString("=== INVENTORY ===")
	for _, id := range gs.Player.Inventory {
		b.WriteString("\n- " + gs.World.ItemName(id))
		if id == gs.Player.Equipped {
			b.WriteString(" (equipped)")
		}
	}
	log.Add(event.KindInfo, b.String())
}

func (gs *GameState) describeJournal(log *event.Log) {
	if len(gs.Player.Journal) == 0 {
		log.Add(event.KindInfo, "Your journal is empty.")
		return
	}
	var b strings.Builder
	b.WriteString("=== JOURNAL ===")
	for i, entry := range gs.Player.Journal {
		fmt.Fprintf(&b, "\n%d. %s", i+1, entry)
	}
	log.Add(event.KindInfo, b.String())
}

func (gs *GameState) describeSamples(log *event.Log) {
	if len(gs.Player.Samples) == 0 {
		log.Add(event.KindInfo, "You haven't collected any samples yet.")
		return
	}
	log.Add(event.KindInfo, "=== SAMPLES ===\n- "+strings.Join(gs.Player.Samples, "\n- "))
}

func (gs *GameState) describeObjectives(log *event.Log) {
	var b strings.Builder
	b.WriteString("=== OBJECTIVES ===")
	for _, o := range gs.Objectives.List() {
		mark := " "
		if o.Completed {
			mark = "x"
		}
		fmt.Fprintf(&b, "\n[%s] %s: %s (Progress: %d/%d)", mark, o.Name, o.Description, o.Progress, o.Target)
	}
	main := gs.World.MainObjective
	mark := " "
	if gs.MainObjectiveComplete {
		mark = "x"
	}
	fmt.Fprintf(&b, "\n\nMAIN OBJECTIVE: [%s] %s - %s", mark, main.Name, main.Description)
	log.Add(event.KindInfo, b.String())
}

// Status line for presenters: health, location and turn.
func (gs *GameState) StatusLine() string {
	loc := gs.CurrentLocation()
	line := fmt.Sprintf("Health: %d/%d | Location: %s | Turn: %d",
		gs.Player.Health(), gs.Player.MaxHealth(), loc.Name, gs.TurnCounter)
	if gs.InCombat() {
		e := gs.Encounter.Enemy
		line += fmt.Sprintf(" | Fighting: %s (%s)", e.Name, e.Condition())
	}
	return line
}

// Intro is the opening text: title card, briefing and one educational fact.
func (gs *GameState) Intro() []event.Event {
	var log event.Log
	w := gs.World
	if w.Intro != "" {
		log.Add(event.KindNarration, strings.TrimSpace(w.Intro))
	}
	if w.Briefing != "" {
		log.Add(event.KindNarration, strings.TrimSpace(w.Briefing))
	}
	if len(w.Facts) > 0 {
		log.Add(event.KindWarning, "EDUCATIONAL NOTE: "+dice.Pick(gs.dice, w.Facts))
	}
	log.Add(event.KindInfo, "Type 'help' for a list of commands.")
	return log
}

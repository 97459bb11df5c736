package state

import (
	"slices"
	"strings"
	"testing"

	"github.com/jwebster45206/the-deep/pkg/dice"
	"github.com/jwebster45206/the-deep/pkg/event"
	"github.com/jwebster45206/the-deep/pkg/world"
)

const testWorldYAML = `
title: Test Deep
start_location: erebus9
final_location: bloom
win_item: essence
win_item_message: Something forms in the bloom.
starting_inventory: [medkit]
main_objective:
  name: Stop the Tide
  description: End it.
objectives:
  - key: collect_samples
    name: Collect Samples
    description: Collect a sample.
    target: 1
  - key: document_mutations
    name: Document Mutations
    description: Document a mutation.
    target: 1
endings:
  victory: You won.
  defeat: You died.
  quit: You left.
rules:
  spawn_chance: 0.25
  min_turns_between_encounters: 3
items:
  medkit:
    name: Medical Kit
    description: First aid.
    kind: healing
    amount: 50
  water_sample:
    name: Water Sample
    description: Murky.
    sample: true
    objectives: [collect_samples]
  fish_tissue:
    name: Fish Tissue
    description: Gross.
  essence:
    name: Essence
    description: Glows.
enemies:
  angler:
    name: Mutated Angler
    description: Teeth.
    health: 50
    damage_min: 5
    damage_max: 15
    threat_level: 0.4
    loot: [fish_tissue]
    objectives: [document_mutations]
locations:
  erebus9:
    name: Erebus-9
    description: A research station.
    exits: {north: trench, east: bloom}
    items: [water_sample]
  trench:
    name: Trench
    description: Dark and deep.
    exits: {south: erebus9}
    enemies: [angler]
  bloom:
    name: Black Bloom
    description: The water feels wrong.
    exits: {west: erebus9}
`

func testWorld(t *testing.T) *world.World {
	t.Helper()
	w, err := world.Parse([]byte(testWorldYAML))
	if err != nil {
		t.Fatalf("failed to parse test world: %v", err)
	}
	return w
}

func newTestGame(t *testing.T, src dice.Source) *GameState {
	t.Helper()
	if src == nil {
		src = dice.NewScripted()
	}
	return New(testWorld(t), Options{PlayerName: "Ada", Dice: src})
}

func texts(events []event.Event) string {
	return strings.Join(event.Log(events).Texts(), "\n")
}

func hasKind(events []event.Event, k event.Kind) bool {
	return slices.ContainsFunc(events, func(e event.Event) bool { return e.Kind == k })
}

func TestNewGame(t *testing.T) {
	gs := newTestGame(t, nil)

	if gs.Player.Location != "erebus9" || gs.Player.Health() != 100 {
		t.Errorf("unexpected start: %s at %d", gs.Player.Location, gs.Player.Health())
	}
	if !gs.CurrentLocation().Visited {
		t.Error("expected start location to be visited")
	}
	if !gs.Player.HasItem("medkit") {
		t.Error("expected starting inventory")
	}
	if len(gs.Player.Journal) != 1 {
		t.Errorf("expected one journal entry for the start location, got %d", len(gs.Player.Journal))
	}
	if gs.Status != StatusRunning {
		t.Errorf("expected running, got %s", gs.Status)
	}
}

func TestParseCommand(t *testing.T) {
	tests := []struct {
		input string
		want  Command
	}{
		{"north", Command{Type: CmdMove, Arg: "north"}},
		{"  Go   Down ", Command{Type: CmdMove, Arg: "down"}},
		{"go sideways", Command{}},
		{"i", Command{Type: CmdInventory}},
		{"s", Command{Type: CmdSamples}},
		{"look", Command{Type: CmdLook}},
		{"look at water sample", Command{Type: CmdExamine, Arg: "water sample"}},
		{"examine Medical Kit", Command{Type: CmdExamine, Arg: "medical kit"}},
		{"get sample", Command{Type: CmdTake, Arg: "sample"}},
		{"use", Command{Type: CmdUse}},
		{"use medkit", Command{Type: CmdUse, Arg: "medkit"}},
		{"dance wildly", Command{}},
		{"", Command{}},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := ParseCommand(tt.input); got != tt.want {
				t.Errorf("expected %+v, got %+v", tt.want, got)
			}
		})
	}
}

func TestMoveMarksVisited(t *testing.T) {
	gs := newTestGame(t, nil)

	events := gs.ApplyCommand("north")

	if gs.Player.Location != "trench" {
		t.Fatalf("expected trench, got %s", gs.Player.Location)
	}
	erebus, _ := gs.World.Location("erebus9")
	trench, _ := gs.World.Location("trench")
	if !erebus.Visited || !trench.Visited {
		t.Errorf("expected both visited, got erebus9=%v trench=%v", erebus.Visited, trench.Visited)
	}
	if !strings.Contains(texts(events), "Dark and deep.") {
		t.Errorf("expected full description on first visit, got %q", texts(events))
	}
	if gs.TurnCounter != 1 || gs.StepsSinceEncounter != 1 {
		t.Errorf("expected counters 1/1, got %d/%d", gs.TurnCounter, gs.StepsSinceEncounter)
	}

	gs.ApplyCommand("south")
	events = gs.ApplyCommand("north")
	if !strings.Contains(texts(events), "You are back at Trench.") {
		t.Errorf("expected return-visit text, got %q", texts(events))
	}
}

func TestRejectedInputChangesNothing(t *testing.T) {
	for _, input := range []string{"dance", "west", "take harpoon", "examine harpoon", "use harpoon", "use"} {
		t.Run(input, func(t *testing.T) {
			gs := newTestGame(t, nil)
			loc := gs.CurrentLocation()
			items := slices.Clone(loc.Items)
			inv := slices.Clone(gs.Player.Inventory)

			events := gs.ApplyCommand(input)

			if !hasKind(events, event.KindRejected) {
				t.Errorf("expected a rejection, got %q", texts(events))
			}
			if gs.TurnCounter != 0 || gs.StepsSinceEncounter != 0 {
				t.Errorf("expected counters to stay 0, got %d/%d", gs.TurnCounter, gs.StepsSinceEncounter)
			}
			if !slices.Equal(loc.Items, items) || !slices.Equal(gs.Player.Inventory, inv) {
				t.Error("expected containers unchanged")
			}
		})
	}
}

func TestTakeAdvancesObjectives(t *testing.T) {
	gs := newTestGame(t, nil)

	events := gs.ApplyCommand("take water")

	if !gs.Player.HasItem("water_sample") || gs.CurrentLocation().HasItem("water_sample") {
		t.Error("expected the sample to move into the inventory only")
	}
	o, _ := gs.Objectives.Get("collect_samples")
	if !o.Completed {
		t.Errorf("expected collect_samples complete, got %d/%d", o.Progress, o.Target)
	}
	if !slices.Equal(gs.Player.Samples, []string{"Water Sample"}) {
		t.Errorf("unexpected samples: %v", gs.Player.Samples)
	}
	if !strings.Contains(texts(events), "Objective complete: Collect Samples!") {
		t.Errorf("expected completion message, got %q", texts(events))
	}
}

func TestUseHealingAtFullHealth(t *testing.T) {
	gs := newTestGame(t, nil)

	gs.ApplyCommand("use medical kit")
	if !gs.Player.HasItem("medkit") {
		t.Error("expected medkit kept when already at full health")
	}

	gs.Player.TakeDamage(30)
	gs.ApplyCommand("use medical kit")
	if gs.Player.Health() != 100 || gs.Player.HasItem("medkit") {
		t.Errorf("expected heal to 100 and medkit consumed, got %d", gs.Player.Health())
	}
}

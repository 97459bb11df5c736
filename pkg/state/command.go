package state

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jwebster45206/the-deep/pkg/actor"
	"github.com/jwebster45206/the-deep/pkg/combat"
	"github.com/jwebster45206/the-deep/pkg/event"
	"github.com/jwebster45206/the-deep/pkg/world"
)

type CommandType string

const (
	CmdMove       CommandType = "move"
	CmdLook       CommandType = "look"
	CmdExamine    CommandType = "examine"
	CmdTake       CommandType = "take"
	CmdUse        CommandType = "use"
	CmdInventory  CommandType = "inventory"
	CmdJournal    CommandType = "journal"
	CmdSamples    CommandType = "samples"
	CmdObjectives CommandType = "objectives"
	CmdHelp       CommandType = "help"
	CmdQuit       CommandType = "quit"
	CmdNone       CommandType = "" // not a command
)

// Command is parsed player input.
type Command struct {
	Type CommandType
	Arg  string
}

var directions = map[string]bool{
	"north": true, "south": true, "east": true, "west": true, "up": true, "down": true,
}

// Single-word commands.
var known = map[string]CommandType{
	"look":       CmdLook,
	"l":          CmdLook,
	"inventory":  CmdInventory,
	"i":          CmdInventory,
	"journal":    CmdJournal,
	"j":          CmdJournal,
	"samples":    CmdSamples,
	"s":          CmdSamples,
	"objectives": CmdObjectives,
	"o":          CmdObjectives,
	"help":       CmdHelp,
	"h":          CmdHelp,
	"?":          CmdHelp,
	"quit":       CmdQuit,
	"q":          CmdQuit,
}

// Commands that take the rest of the line as an argument. Longest prefixes first.
var prefixed = []struct {
	prefix string
	cmd    CommandType
}{
	{"look at ", CmdExamine},
	{"examine ", CmdExamine},
	{"take ", CmdTake},
	{"get ", CmdTake},
	{"use ", CmdUse},
	{"go ", CmdMove},
}

// ParseCommand parses a line of input. Unrecognized input returns CmdNone.
func ParseCommand(input string) Command {
	trimmed := strings.Join(strings.Fields(strings.ToLower(input)), " ")
	if trimmed == "" {
		return Command{}
	}
	if directions[trimmed] {
		return Command{Type: CmdMove, Arg: trimmed}
	}
	if cmd, ok := known[trimmed]; ok {
		return Command{Type: cmd}
	}
	if trimmed == "use" {
		return Command{Type: CmdUse}
	}
	for _, p := range prefixed {
		if arg, ok := strings.CutPrefix(trimmed, p.prefix); ok {
			if p.cmd == CmdMove && !directions[arg] {
				return Command{}
			}
			return Command{Type: p.cmd, Arg: arg}
		}
	}
	return Command{}
}

// ApplyCommand runs one line of player input and returns what happened. While an
// enemy is active, input goes to combat. Rejected input changes nothing.
func (gs *GameState) ApplyCommand(input string) []event.Event {
	var log event.Log
	if gs.Status.IsOver() {
		log.Add(event.KindRejected, "The game is over.")
		return log
	}

	cmd := ParseCommand(input)
	if cmd.Type == CmdQuit {
		gs.quit(&log)
		return log
	}

	if gs.InCombat() {
		action, err := combat.ParseAction(input)
		if err != nil {
			log.Addf(event.KindRejected, "You're fighting the %s! Choose: attack, flee, or use <item>.", gs.Encounter.Enemy.Name)
			return log
		}
		return gs.TickCombat(action)
	}

	var accepted bool
	switch cmd.Type {
	case CmdMove:
		accepted = gs.move(cmd.Arg, &log)
	case CmdLook:
		gs.describeLocation(&log, true)
		accepted = true
	case CmdExamine:
		accepted = gs.examine(cmd.Arg, &log)
	case CmdTake:
		accepted = gs.take(cmd.Arg, &log)
	case CmdUse:
		accepted = gs.use(cmd.Arg, &log)
	case CmdInventory:
		gs.describeInventory(&log)
		accepted = true
	case CmdJournal:
		gs.describeJournal(&log)
		accepted = true
	case CmdSamples:
		gs.describeSamples(&log)
		accepted = true
	case CmdObjectives:
		gs.describeObjectives(&log)
		accepted = true
	case CmdHelp:
		log.Add(event.KindInfo, helpText)
		accepted = true
	default:
		log.Add(event.KindRejected, "I don't understand that command. Type 'help' for a list of commands.")
	}

	if accepted {
		gs.afterWorldTurn(&log)
	}
	return log
}

func (gs *GameState) move(direction string, log *event.Log) bool {
	from := gs.CurrentLocation()
	to, err := gs.World.Move(from, direction)
	if err != nil {
		var cerr *world.ConfigurationError
		if errors.As(err, &cerr) {
			gs.logger.Error("broken exit", "error", err)
		}
		log.Addf(event.KindRejected, "You can't go %s from here.", direction)
		return false
	}
	gs.Player.Location = to.ID
	gs.logger.Debug("moved", "from", from.ID, "to", to.ID, "direction", direction)
	gs.arrive(to, log)
	return true
}

// arrive marks a location visited, describing it in full on the first visit.
func (gs *GameState) arrive(loc *world.Location, log *event.Log) {
	first := !loc.Visited
	loc.Visited = true
	if first {
		gs.Player.AddJournalEntry(fmt.Sprintf("Visited %s. %s", loc.Name, summarize(loc.Description, 100)))
	}
	gs.describeLocation(log, first)
	if first && loc.Note != "" {
		log.Add(event.KindWarning, "EDUCATIONAL NOTE: "+loc.Note)
	}
}

func (gs *GameState) examine(name string, log *event.Log) bool {
	it, err := gs.World.ExamineItem(gs.CurrentLocation(), gs.Player, name)
	if err != nil {
		log.Addf(event.KindRejected, "You don't see a %s here or in your inventory.", name)
		return false
	}
	log.Addf(event.KindInfo, "Examining %s: %s", it.Name, it.Description)
	return true
}

func (gs *GameState) take(name string, log *event.Log) bool {
	loc := gs.CurrentLocation()
	it, err := gs.World.TakeItem(loc, gs.Player, name)
	if err != nil {
		log.Addf(event.KindRejected, "You don't see a %s here.", name)
		return false
	}
	log.Addf(event.KindSuccess, "You've taken the %s.", it.Name)
	if it.PickupMessage != "" {
		log.Add(event.KindInfo, it.PickupMessage)
	}
	if it.Sample {
		gs.Player.AddSample(it.Name)
		log.Add(event.KindSuccess, "Sample added to your collection.")
	}
	gs.advance(it.Objectives, log)
	gs.logger.Debug("took item", "item", it.ID, "location", loc.ID)
	return true
}

func (gs *GameState) use(name string, log *event.Log) bool {
	if name == "" {
		log.Add(event.KindRejected, "Use what?")
		return false
	}
	it, err := gs.World.MatchInContainer(gs.Player, name)
	if err != nil {
		log.Addf(event.KindRejected, "You don't have a %s.", name)
		return false
	}
	eff, err := actor.ApplyEffect(it, gs.Player, gs.CurrentLocation())
	if err != nil {
		log.Addf(event.KindRejected, "You don't have a %s.", name)
		return false
	}
	gs.reportEffect(eff, log)
	return true
}

func (gs *GameState) reportEffect(eff actor.Effect, log *event.Log) {
	if !eff.Applied {
		log.Add(event.KindInfo, eff.Message)
		return
	}
	log.Add(event.KindSuccess, eff.Message)
	if eff.Healed > 0 {
		log.Addf(event.KindInfo, "Health: %d/%d", gs.Player.Health(), gs.Player.MaxHealth())
	}
}

// advance moves each tagged objective forward by one.
func (gs *GameState) advance(keys []string, log *event.Log) {
	for _, key := range keys {
		done, err := gs.Objectives.Update(key, 1)
		if err != nil {
			gs.logger.Warn("objective update failed", "objective", key, "error", err)
			continue
		}
		if done {
			o, _ := gs.Objectives.Get(key)
			log.Addf(event.KindSuccess, "Objective complete: %s!", o.Name)
			gs.logger.Info("objective complete", "objective", key)
		}
	}
}

func (gs *GameState) quit(log *event.Log) {
	gs.Encounter = nil
	gs.Status = StatusQuit
	gs.logger.Info("game quit", "turns", gs.TurnCounter)
	gs.endGame(log)
}

// afterWorldTurn runs the per-turn checks: defeat, victory, then spawn.
// A finished game never rolls for an encounter.
func (gs *GameState) afterWorldTurn(log *event.Log) {
	gs.TurnCounter++
	gs.StepsSinceEncounter++
	gs.checkTerminal(log)
	if gs.Status.IsOver() {
		return
	}
	gs.maybeSpawn(log)
}

func (gs *GameState) checkTerminal(log *event.Log) {
	if gs.Status.IsOver() {
		return
	}
	if gs.Player.IsDead() {
		gs.Encounter = nil
		gs.Status = StatusDefeat
		gs.logger.Info("game lost", "turns", gs.TurnCounter, "location", gs.Player.Location)
		gs.endGame(log)
		return
	}
	if gs.checkWinCondition(log) {
		gs.Encounter = nil
		gs.MainObjectiveComplete = true
		gs.Status = StatusVictory
		gs.logger.Info("game won", "turns", gs.TurnCounter)
		gs.endGame(log)
	}
}

func summarize(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return strings.TrimSpace(string(r[:n])) + "..."
}

const helpText = `COMMAND HELP:
- Movement: north, south, east, west, up, down (or go <direction>)
- Look around: look or l
- Check inventory: inventory or i
- Read journal: journal or j
- View samples: samples or s
- Examine item: examine <item> or look at <item>
- Take item: take <item> or get <item>
- Use item: use <item>
- View objectives: objectives or o
- Help: help
- Quit: quit

In combat: attack, flee, or use <item>.`

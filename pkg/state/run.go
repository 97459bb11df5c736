package state

import (
	"context"
	"errors"
	"io"
	"strings"

	"github.com/jwebster45206/the-deep/pkg/event"
)

// Presenter is the presentation layer a session is played through.
// PromptForCommand blocks until the player enters a line; returning io.EOF quits.
type Presenter interface {
	Render(events []event.Event)
	PromptForCommand() (string, error)
	PromptForChoice(prompt string, options []string) (string, error)
	PlayIntro(events []event.Event)
	PlayEnding(status Status, events []event.Event)
}

// Run plays the session until it ends or ctx is cancelled. After a victory or
// defeat the player is offered a restart.
func (gs *GameState) Run(ctx context.Context, p Presenter) (Status, error) {
	p.PlayIntro(gs.Intro())
	p.Render(gs.Look())

	for {
		if err := ctx.Err(); err != nil {
			return gs.Status, err
		}

		input, err := p.PromptForCommand()
		if errors.Is(err, io.EOF) {
			input = "quit"
		} else if err != nil {
			return gs.Status, err
		}

		input, ok, err := gs.confirm(p, input)
		if err != nil {
			return gs.Status, err
		}
		if !ok {
			continue
		}

		events := gs.ApplyCommand(input)
		if !gs.Status.IsOver() {
			p.Render(events)
			continue
		}

		p.PlayEnding(gs.Status, events)
		if gs.Status == StatusQuit {
			return gs.Status, nil
		}
		again, err := p.PromptForChoice("Would you like to play again?", []string{"yes", "no"})
		if err != nil && !errors.Is(err, io.EOF) {
			return gs.Status, err
		}
		if !strings.EqualFold(again, "yes") {
			return gs.Status, nil
		}
		p.Render(gs.Restart())
	}
}

// confirm asks the presenter to settle input that needs a choice: quitting, and
// "use" with no item. It reports false when the turn should be skipped.
func (gs *GameState) confirm(p Presenter, input string) (string, bool, error) {
	cmd := ParseCommand(input)
	switch {
	case cmd.Type == CmdQuit:
		choice, err := p.PromptForChoice("Are you sure you want to quit?", []string{"yes", "no"})
		if err != nil && !errors.Is(err, io.EOF) {
			return "", false, err
		}
		if errors.Is(err, io.EOF) || strings.EqualFold(choice, "yes") {
			return input, true, nil
		}
		p.Render([]event.Event{{Kind: event.KindInfo, Text: "You continue your mission."}})
		return "", false, nil

	case cmd.Type == CmdUse && cmd.Arg == "":
		var names []string
		for _, id := range gs.Player.Inventory {
			if it, ok := gs.World.Item(id); ok && it.Usable {
				names = append(names, it.Name)
			}
		}
		if len(names) == 0 {
			p.Render([]event.Event{{Kind: event.KindRejected, Text: "You have nothing you can use."}})
			return "", false, nil
		}
		choice, err := p.PromptForChoice("Use which item?", names)
		if err != nil {
			if errors.Is(err, io.EOF) {
				return "", false, nil
			}
			return "", false, err
		}
		if choice == "" {
			return "", false, nil
		}
		return "use " + choice, true, nil
	}
	return input, true, nil
}

package main

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jwebster45206/the-deep/pkg/event"
	"github.com/jwebster45206/the-deep/pkg/state"
	"github.com/jwebster45206/the-deep/pkg/storage"
)

// session runs the game loop on its own goroutine and bridges it to the
// bubbletea program. The game is only read from the UI side while the loop
// is parked in a prompt.
type session struct {
	gs     *state.GameState
	store  storage.Storage
	prog   *tea.Program
	inputs chan string
	done   chan struct{}
	result chan error
}

var _ state.Presenter = (*session)(nil)

type eventsMsg struct {
	events []event.Event
	banner string
}

type promptMsg struct {
	meta string
}

type choiceMsg struct {
	prompt  string
	options []string
}

type sessionDoneMsg struct {
	status state.Status
	err    error
}

type savedMsg struct {
	id  string
	err error
}

func newSession(gs *state.GameState, store storage.Storage) *session {
	return &session{
		gs:     gs,
		store:  store,
		inputs: make(chan string, 1),
		done:   make(chan struct{}),
		result: make(chan error, 1),
	}
}

// start is run as a tea.Cmd; it returns when the game loop ends.
func (s *session) start() tea.Msg {
	status, err := s.gs.Run(context.Background(), s)
	s.result <- err
	return sessionDoneMsg{status: status, err: err}
}

// stop unblocks a parked prompt with io.EOF and waits briefly for the loop to finish.
func (s *session) stop() error {
	select {
	case <-s.done:
	default:
		close(s.done)
	}
	select {
	case err := <-s.result:
		return err
	case <-time.After(2 * time.Second):
		return nil
	}
}

func (s *session) send(msg tea.Msg) {
	if s.prog != nil {
		s.prog.Send(msg)
	}
}

func (s *session) submit(line string) {
	select {
	case s.inputs <- line:
	default:
	}
}

func (s *session) Render(events []event.Event) {
	s.send(eventsMsg{events: events})
}

func (s *session) PlayIntro(events []event.Event) {
	s.send(eventsMsg{events: events, banner: strings.ToUpper(s.gs.World.Title)})
}

func (s *session) PlayEnding(status state.Status, events []event.Event) {
	s.send(eventsMsg{events: events, banner: endingBanner(status)})
}

func (s *session) PromptForCommand() (string, error) {
	s.send(promptMsg{meta: writeMetadata(s.gs)})
	return s.wait()
}

func (s *session) PromptForChoice(prompt string, options []string) (string, error) {
	s.send(choiceMsg{prompt: prompt, options: options})
	return s.wait()
}

func (s *session) wait() (string, error) {
	select {
	case line := <-s.inputs:
		return line, nil
	case <-s.done:
		return "", io.EOF
	}
}

// save must only be called while the loop is parked in a prompt.
func (s *session) save() tea.Cmd {
	snap := s.gs.Snapshot()
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := s.store.SaveGame(ctx, snap); err != nil {
			return savedMsg{err: err}
		}
		return savedMsg{id: snap.ID.String()}
	}
}

func endingBanner(status state.Status) string {
	switch status {
	case state.StatusVictory:
		return "MISSION COMPLETE"
	case state.StatusDefeat:
		return "GAME OVER"
	default:
		return "MISSION ABORTED"
	}
}

func writeMetadata(gs *state.GameState) string {
	var content strings.Builder
	content.WriteString(titleStyle.Render("DIVE LOG") + "\n\n")

	content.WriteString("Game ID:\n")
	content.WriteString(gs.ID.String()[:8] + "...\n\n")

	p := gs.Player
	content.WriteString(fmt.Sprintf("Diver:\n%s\n\n", p.Name))
	content.WriteString(fmt.Sprintf("Health:\n%s\n\n", healthBar(p.Health(), p.MaxHealth())))
	content.WriteString(fmt.Sprintf("Location:\n%s\n\n", gs.CurrentLocation().Name))
	content.WriteString(fmt.Sprintf("Turn:\n%d\n\n", gs.TurnCounter))

	if gs.InCombat() {
		e := gs.Encounter.Enemy
		content.WriteString(errorStyle.Render("Fighting:") + "\n")
		content.WriteString(fmt.Sprintf("%s (%s)\n\n", e.Name, e.Condition()))
	}

	content.WriteString("Objectives:\n")
	for _, o := range gs.Objectives.List() {
		mark := "•"
		if o.Completed {
			mark = "✓"
		}
		content.WriteString(fmt.Sprintf("%s %s %d/%d\n", mark, o.Name, o.Progress, o.Target))
	}

	content.WriteString("\n")
	content.WriteString("Commands:\n")
	content.WriteString("• Enter: Send\n")
	content.WriteString("• Ctrl+S: Save\n")
	content.WriteString("• Ctrl+Y: Copy ID\n")
	content.WriteString("• Esc: Quit\n")
	content.WriteString("• help: Help\n")

	return content.String()
}

func healthBar(health, maxHealth int) string {
	const width = 10
	if maxHealth <= 0 {
		return ""
	}
	filled := health * width / maxHealth
	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	style := narratorStyle
	switch {
	case health*4 <= maxHealth:
		style = errorStyle
	case health*2 <= maxHealth:
		style = loadingStyle
	}
	return style.Render(bar) + fmt.Sprintf(" %d/%d", health, maxHealth)
}

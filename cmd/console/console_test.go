package main

import (
	"bytes"
	"context"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwebster45206/the-deep/pkg/dice"
	"github.com/jwebster45206/the-deep/pkg/event"
	"github.com/jwebster45206/the-deep/pkg/state"
	"github.com/jwebster45206/the-deep/pkg/storage"
	"github.com/jwebster45206/the-deep/pkg/world"
)

func newTestGame(t *testing.T) *state.GameState {
	t.Helper()
	w, err := world.Default()
	require.NoError(t, err)
	return state.New(w, state.Options{PlayerName: "Mara", Dice: dice.NewScripted()})
}

func TestPickOption(t *testing.T) {
	options := []string{"yes", "no"}
	tests := []struct {
		answer   string
		expected string
	}{
		{"1", "yes"},
		{"2", "no"},
		{"3", ""},
		{"YES", "yes"},
		{"n", "no"},
		{"maybe", ""},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.answer, func(t *testing.T) {
			if got := pickOption(tt.answer, options); got != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, got)
			}
		})
	}
}

func TestLinePresenter_PlaysSession(t *testing.T) {
	gs := newTestGame(t)
	in := strings.NewReader("down\ntake vial\nuse\nsample vial\nquit\nn\nquit\ny\n")
	var out bytes.Buffer

	status, err := gs.Run(context.Background(), NewLinePresenter(in, &out))
	require.NoError(t, err)
	assert.Equal(t, state.StatusQuit, status)

	text := out.String()
	assert.Contains(t, text, "Research Vessel Deck")
	assert.Contains(t, text, "Use which item?")
	assert.Contains(t, text, "You continue your mission.")
	assert.Equal(t, []string{"Sample from Observation Deck"}, gs.Player.Samples)
}

func TestLinePresenter_EOFQuits(t *testing.T) {
	gs := newTestGame(t)
	status, err := gs.Run(context.Background(), NewLinePresenter(strings.NewReader("look\n"), &bytes.Buffer{}))
	require.NoError(t, err)
	assert.Equal(t, state.StatusQuit, status)
}

func TestListSaves(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMockStorage()

	var out bytes.Buffer
	require.NoError(t, listSaves(ctx, store, &out))
	assert.Contains(t, out.String(), "No saved games.")

	gs := newTestGame(t)
	require.NoError(t, store.SaveGame(ctx, gs.Snapshot()))
	out.Reset()
	require.NoError(t, listSaves(ctx, store, &out))
	assert.Contains(t, out.String(), gs.ID.String())
	assert.Contains(t, out.String(), "ship_deck")
}

func TestStartGame(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMockStorage()
	w, err := world.Default()
	require.NoError(t, err)
	opts := state.Options{Dice: dice.NewScripted()}

	saved := state.New(w, opts)
	saved.ApplyCommand("down")
	require.NoError(t, store.SaveGame(ctx, saved.Snapshot()))

	t.Run("new game", func(t *testing.T) {
		gs, err := startGame(ctx, store, w, opts, "")
		require.NoError(t, err)
		assert.Equal(t, "ship_deck", gs.Player.Location)
	})

	t.Run("resume", func(t *testing.T) {
		gs, err := startGame(ctx, store, w, opts, saved.ID.String())
		require.NoError(t, err)
		assert.Equal(t, saved.ID, gs.ID)
		assert.Equal(t, "observation_deck", gs.Player.Location)
	})

	t.Run("unknown id", func(t *testing.T) {
		_, err := startGame(ctx, store, w, opts, uuid.NewString())
		assert.Error(t, err)
	})

	t.Run("malformed id", func(t *testing.T) {
		_, err := startGame(ctx, store, w, opts, "not-an-id")
		assert.Error(t, err)
	})
}

func TestConsoleUI_CommandFlow(t *testing.T) {
	ui := NewConsoleUI(newTestGame(t), storage.NewMockStorage())

	model, _ := ui.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	model, _ = model.Update(eventsMsg{events: []event.Event{{Kind: event.KindNarration, Text: "The ocean is calm."}}})
	ui = model.(ConsoleUI)
	assert.Len(t, ui.transcript, 1)

	t.Run("enter is ignored while a turn runs", func(t *testing.T) {
		ui.input.SetValue("look")
		model, _ := ui.Update(tea.KeyMsg{Type: tea.KeyEnter})
		assert.Empty(t, model.(ConsoleUI).session.inputs)
	})

	model, _ = ui.Update(promptMsg{meta: "DIVE LOG"})
	ui = model.(ConsoleUI)
	ui.input.SetValue("look")
	model, _ = ui.Update(tea.KeyMsg{Type: tea.KeyEnter})
	ui = model.(ConsoleUI)

	assert.Equal(t, modeBusy, ui.mode)
	assert.Equal(t, "look", <-ui.session.inputs)
	last := ui.transcript[len(ui.transcript)-1]
	assert.True(t, last.player)
	assert.Equal(t, "look", last.text)
}

func TestConsoleUI_ChoiceModal(t *testing.T) {
	ui := NewConsoleUI(newTestGame(t), storage.NewMockStorage())
	model, _ := ui.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	model, _ = model.Update(choiceMsg{prompt: "Use which item?", options: []string{"Sample Vial", "Small Medical Kit"}})
	ui = model.(ConsoleUI)
	assert.Contains(t, ui.View(), "Use which item?")

	model, _ = ui.Update(tea.KeyMsg{Type: tea.KeyDown})
	model, _ = model.Update(tea.KeyMsg{Type: tea.KeyEnter})
	ui = model.(ConsoleUI)

	assert.Equal(t, "Small Medical Kit", <-ui.session.inputs)
	assert.Equal(t, modeBusy, ui.mode)
}

func TestConsoleUI_EscapeAsksToQuit(t *testing.T) {
	ui := NewConsoleUI(newTestGame(t), storage.NewMockStorage())
	model, _ := ui.Update(promptMsg{})
	model, _ = model.Update(tea.KeyMsg{Type: tea.KeyEsc})
	ui = model.(ConsoleUI)
	assert.Equal(t, "quit", <-ui.session.inputs)
}

func TestConsoleUI_SaveWritesSnapshot(t *testing.T) {
	store := storage.NewMockStorage()
	gs := newTestGame(t)
	ui := NewConsoleUI(gs, store)
	model, _ := ui.Update(promptMsg{})

	_, cmd := model.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
	require.NotNil(t, cmd)
	msg := cmd().(savedMsg)
	require.NoError(t, msg.err)
	assert.Equal(t, gs.ID.String(), msg.id)

	snap, err := store.LoadGame(context.Background(), gs.ID)
	require.NoError(t, err)
	assert.NotNil(t, snap)
}

func TestSession_StopUnblocksPrompt(t *testing.T) {
	s := newSession(newTestGame(t), storage.NewMockStorage())
	go s.start()
	require.NoError(t, s.stop())
}

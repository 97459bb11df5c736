package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"github.com/jwebster45206/the-deep/internal/config"
	"github.com/jwebster45206/the-deep/internal/logger"
	istorage "github.com/jwebster45206/the-deep/internal/storage"
	"github.com/jwebster45206/the-deep/pkg/dice"
	"github.com/jwebster45206/the-deep/pkg/state"
	"github.com/jwebster45206/the-deep/pkg/storage"
	"github.com/jwebster45206/the-deep/pkg/world"
)

func main() {
	cfg := config.Load()

	loadID := flag.String("load", "", "resume the save game with this ID")
	list := flag.Bool("list", false, "list save games and exit")
	plain := flag.Bool("plain", false, "line-based interface instead of the full-screen console")
	flag.StringVar(&cfg.Difficulty, "difficulty", cfg.Difficulty, "easy, normal or hard")
	flag.StringVar(&cfg.PlayerName, "name", cfg.PlayerName, "diver name")
	flag.Int64Var(&cfg.GameSeed, "seed", cfg.GameSeed, "random seed (0 seeds from the clock)")
	flag.Parse()

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid configuration: %v\n", err)
		os.Exit(1)
	}

	logOut, closeLog := openLog(cfg.LogFile)
	defer closeLog()
	log := logger.Setup(cfg, logOut)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, cfg, log, *loadID, *list, *plain); err != nil {
		log.Error("Console exited with error", "error", err)
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, log *slog.Logger, loadID string, list, plain bool) error {
	w, err := loadWorld(cfg)
	if err != nil {
		return err
	}

	store, err := istorage.Open(ctx, cfg, log)
	if err != nil {
		return fmt.Errorf("failed to open %s storage: %w", cfg.Storage, err)
	}
	defer store.Close()

	if list {
		return listSaves(ctx, store, os.Stdout)
	}

	opts := state.Options{
		PlayerName: cfg.PlayerName,
		Difficulty: cfg.Difficulty,
		Dice:       newDice(cfg.GameSeed),
		Logger:     log,
	}
	gs, err := startGame(ctx, store, w, opts, loadID)
	if err != nil {
		return err
	}

	if plain {
		p := NewLinePresenter(os.Stdin, os.Stdout)
		_, err := gs.Run(ctx, p)
		return err
	}

	ui := NewConsoleUI(gs, store)
	prog := tea.NewProgram(ui, tea.WithAltScreen(), tea.WithContext(ctx))
	ui.Attach(prog)
	if _, err := prog.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("error running program: %w", err)
	}
	return ui.Wait()
}

func loadWorld(cfg *config.Config) (*world.World, error) {
	if cfg.WorldFile == "" {
		return world.Default()
	}
	return world.LoadFile(cfg.WorldFile)
}

func newDice(seed int64) dice.Source {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return dice.New(seed)
}

func startGame(ctx context.Context, store storage.Storage, w *world.World, opts state.Options, loadID string) (*state.GameState, error) {
	if loadID == "" {
		return state.New(w, opts), nil
	}
	id, err := uuid.Parse(loadID)
	if err != nil {
		return nil, fmt.Errorf("invalid save id %q: %w", loadID, err)
	}
	snap, err := store.LoadGame(ctx, id)
	if err != nil {
		return nil, err
	}
	if snap == nil {
		return nil, fmt.Errorf("no save game with id %s", id)
	}
	return state.Restore(w, snap, opts)
}

func listSaves(ctx context.Context, store storage.Storage, out io.Writer) error {
	saves, err := store.ListGames(ctx)
	if err != nil {
		return err
	}
	if len(saves) == 0 {
		fmt.Fprintln(out, "No saved games.")
		return nil
	}
	for _, s := range saves {
		fmt.Fprintf(out, "%s  %-10s %-20s turn %-4d %s\n",
			s.ID, s.Player, s.Location, s.Turn, s.SavedAt.Local().Format("2006-01-02 15:04"))
	}
	return nil
}

// openLog sends logs to a file so they do not draw over the console.
func openLog(path string) (io.Writer, func()) {
	if path == "" || path == "-" {
		return io.Discard, func() {}
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Could not open log file %s, logging disabled: %v\n", path, err)
		return io.Discard, func() {}
	}
	return f, func() { _ = f.Close() }
}

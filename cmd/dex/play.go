package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/campus-dex/internal/config"
	"github.com/vovakirdan/campus-dex/internal/core"
	"github.com/vovakirdan/campus-dex/internal/platform/tui"
	"github.com/vovakirdan/campus-dex/internal/storage"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Start exploring the campus",
	Long: `Start a run straight away, skipping the title menu.

Controls:
  Arrows/WASD  - Walk (or drag with the mouse)
  C            - Search the grass you stand in
  Tab / M      - Dex / campus map
  Space/Enter  - Pick and confirm inside a puzzle
  Esc          - Close a puzzle or overlay
  R            - Play again after the ending
  Q/Ctrl+C     - Quit

Difficulty options:
  easy   - More misses and time in the spot-the-difference puzzle
  normal - Values from the puzzle config
  hard   - Fewer misses, less time and a bigger grid

Examples:
  dex play
  dex play --seed 7
  dex play --difficulty hard
  dex play --config ./my-campus.yaml --log-file ./dex.log`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func runPlay(_ *cobra.Command, _ []string) {
	os.Exit(play())
}

// play runs one session and returns the exit code, so deferred cleanup has
// finished before the process exits.
func play() int {
	logger, closeLog, err := openLogger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	defer closeLog()

	world, games, err := loadConfigs()
	if err != nil {
		logger.Error("cannot load config", "error", err)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	// Open records storage; without it the game still works
	store := openStore()
	if store != nil {
		defer store.Close()
	}

	opts := tui.Options{World: world, Games: games, Store: store, Logger: logger}
	if err := tui.Run(opts, runtimeConfig()); err != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", err)
		return 1
	}
	return 0
}

// loadConfigs reads both config documents and applies --difficulty.
func loadConfigs() (config.World, config.MiniGames, error) {
	world, err := config.LoadWorld(flagConfig)
	if err != nil {
		return config.World{}, config.MiniGames{}, err
	}
	games, err := config.LoadMiniGames(flagGamesConfig)
	if err != nil {
		return config.World{}, config.MiniGames{}, err
	}
	preset, err := config.ParsePreset(flagDifficulty)
	if err != nil {
		return config.World{}, config.MiniGames{}, err
	}
	config.ApplyPreset(&games, preset)
	return world, games, nil
}

// runtimeConfig sizes the screen to the terminal.
func runtimeConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW = w
		cfg.ScreenH = h
	}
	cfg.TickRate = flagFPS
	cfg.Seed = flagSeed
	return cfg
}

// openStore opens the records database. Without it the game still works.
func openStore() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open records database: %v\n", err)
		return nil
	}
	return store
}

// openLogger returns the session event logger. The TUI owns the terminal, so
// events go nowhere unless --log-file is set.
func openLogger() (*log.Logger, func(), error) {
	if flagLogFile == "" {
		return log.New(io.Discard), func() {}, nil
	}
	f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return nil, nil, fmt.Errorf("cannot open log file: %w", err)
	}
	logger := log.NewWithOptions(f, log.Options{
		ReportTimestamp: true,
		Prefix:          "dex",
		Level:           log.DebugLevel,
	})
	return logger, func() { _ = f.Close() }, nil
}

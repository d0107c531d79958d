package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/campus-dex/internal/platform/tui"
)

// runMenu is the root command: title menu, then a run or the records, then
// back to the menu.
func runMenu(_ *cobra.Command, _ []string) {
	os.Exit(menu())
}

// menu runs the menu loop and returns the exit code.
func menu() int {
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

	store := openStore()
	if store != nil {
		defer store.Close()
	}
	opts := tui.Options{World: world, Games: games, Store: store, Logger: logger}
	cfg := runtimeConfig()
	fixedSeed := cfg.Seed != 0

	// Menu loop
	for {
		menuResult, err := tui.RunMenu(cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}

		// Update config with any size changes
		cfg = menuResult.Config

		if menuResult.Choice == tui.ChoiceRecords {
			goBack, recErr := tui.RunRecords(store, cfg.ScreenW, cfg.ScreenH)
			if recErr != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", recErr)
			}
			if goBack {
				continue
			}
			return 0
		}

		if menuResult.Choice != tui.ChoicePlay {
			return 0
		}

		// A --seed replays the same campus every time
		if !fixedSeed {
			cfg.Seed = time.Now().UnixNano()
		}

		if err := tui.Run(opts, cfg); err != nil {
			fmt.Fprintf(os.Stderr, "Error running game: %v\n", err)
		}
	}
}

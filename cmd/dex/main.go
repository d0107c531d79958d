// dex is a terminal creature-collecting game set on a university campus.
//
// Usage:
//
//	dex                  - Start the title menu
//	dex play             - Start exploring right away
//	dex serve            - Start SSH server for remote play
//	dex records          - Show fastest runs and puzzle stats
//	dex zones            - Print the catch zones placed for a seed
//	dex list             - List the puzzles behind each creature
//
// Global flags:
//
//	--fps <rate>            - Set tick rate (default: 33)
//	--seed <value>          - Set RNG seed for reproducible zone placement
//	--db <path>             - Set database path (default: ~/.dex/records.db)
//	--config <path>         - Custom world YAML
//	--games-config <path>   - Custom puzzle YAML
//	--difficulty <preset>   - easy, normal or hard
//	--log-file <path>       - Write session events to a file
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	// Import puzzles to register them
	_ "github.com/vovakirdan/campus-dex/internal/minigame/cipher"
	_ "github.com/vovakirdan/campus-dex/internal/minigame/circuit"
	_ "github.com/vovakirdan/campus-dex/internal/minigame/ladder"
	_ "github.com/vovakirdan/campus-dex/internal/minigame/mosaic"
	_ "github.com/vovakirdan/campus-dex/internal/minigame/spot"
)

var (
	// Global flags
	flagFPS         int
	flagSeed        int64
	flagDBPath      string
	flagConfig      string
	flagGamesConfig string
	flagDifficulty  string
	flagLogFile     string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "dex",
	Short: "Campus Dex - catch five campus creatures in your terminal",
	Long: `Campus Dex is a small overworld game: walk the campus, search the
tall grass and solve a puzzle to catch each of the five creatures.

Available commands:
  play     - Start exploring right away
  serve    - Start SSH server for remote play
  records  - Show fastest runs and puzzle stats
  zones    - Print the catch zones placed for a seed
  list     - List the puzzles behind each creature

Run without a command to open the title menu.

Examples:
  dex
  dex play --seed 42
  dex play --difficulty easy
  dex serve --ssh :2222
  dex records`,
	Args: cobra.NoArgs,
	Run:  runMenu,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 33, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.dex/records.db", "Path to records database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom world config YAML")
	rootCmd.PersistentFlags().StringVar(&flagGamesConfig, "games-config", "", "Path to custom puzzle config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write session events to this file")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(recordsCmd)
	rootCmd.AddCommand(zonesCmd)
	rootCmd.AddCommand(listCmd)
}

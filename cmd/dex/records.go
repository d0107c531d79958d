package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/campus-dex/internal/minigame"
	"github.com/vovakirdan/campus-dex/internal/storage"
)

var flagClearRecords bool

var recordsCmd = &cobra.Command{
	Use:   "records",
	Short: "Show fastest runs and puzzle stats",
	Long: `Display the ten fastest completed runs and how each puzzle went.

Examples:
  dex records
  dex records --db ./records.db
  dex records --clear`,
	Args: cobra.NoArgs,
	Run:  runRecords,
}

func init() {
	recordsCmd.Flags().BoolVar(&flagClearRecords, "clear", false, "Delete every recorded attempt and run")
}

func runRecords(_ *cobra.Command, _ []string) {
	os.Exit(records())
}

// records prints the stored runs and puzzle stats and returns the exit code.
func records() int {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening records database: %v\n", err)
		return 1
	}
	defer store.Close()

	if flagClearRecords {
		if err := store.ClearRecords(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
		fmt.Println("Records cleared.")
		return 0
	}

	runs, err := store.FastestRuns(10)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving runs: %v\n", err)
		return 1
	}

	fmt.Println("Fastest runs")
	fmt.Println()

	if len(runs) == 0 {
		fmt.Println("No completed runs yet.")
		fmt.Println()
		fmt.Println("Run 'dex play' and catch all five!")
	} else {
		fmt.Printf("  %-4s  %-8s  %-8s  %-12s  %s\n", "Rank", "Time", "Attempts", "Player", "Date")
		fmt.Printf("  %-4s  %-8s  %-8s  %-12s  %s\n", "----", "----", "--------", "------", "----")
		for i, r := range runs {
			fmt.Printf("  %-4d  %-8s  %-8d  %-12s  %s\n",
				i+1, clock(r.Duration), r.Attempts, r.Player, r.CreatedAt.Format("2006-01-02 15:04"))
		}
	}

	stats, err := store.GetAllGameStats()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving puzzle stats: %v\n", err)
		return 1
	}
	if len(stats) == 0 {
		return 0
	}

	fmt.Println()
	fmt.Println("Puzzles")
	fmt.Println()
	fmt.Printf("  %-8s  %-8s  %-6s  %-9s  %-5s  %s\n", "Puzzle", "Attempts", "Caught", "Abandoned", "Rate", "Fastest")
	fmt.Printf("  %-8s  %-8s  %-6s  %-9s  %-5s  %s\n", "------", "--------", "------", "---------", "----", "-------")
	for _, info := range minigame.List() {
		st, ok := stats[info.ID]
		if !ok {
			continue
		}
		fmt.Printf("  %-8s  %-8d  %-6d  %-9d  %-5s  %s\n",
			info.Name, st.Attempts, st.Successes, st.Abandoned,
			fmt.Sprintf("%.0f%%", st.SuccessRate()*100), clock(st.Fastest))
	}
	return 0
}

// clock renders a duration as m:ss, or "-" for zero.
func clock(d time.Duration) string {
	if d <= 0 {
		return "-"
	}
	d = d.Round(time.Second)
	return fmt.Sprintf("%d:%02d", int(d.Minutes()), int(d.Seconds())%60)
}

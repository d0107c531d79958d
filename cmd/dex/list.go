package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/campus-dex/internal/dex"
	"github.com/vovakirdan/campus-dex/internal/minigame"
)

var listCmd = &cobra.Command{
	Use:   "list [puzzle]",
	Short: "List the creatures and their puzzles",
	Long: `Shows every creature in the dex and the puzzle that catches it.
Pass a puzzle name to see how that puzzle is played.

Examples:
  dex list
  dex list cipher`,
	Args: cobra.MaximumNArgs(1),
	Run:  runList,
}

func runList(_ *cobra.Command, args []string) {
	if len(args) == 1 {
		if err := describePuzzle(args[0]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			fmt.Fprintln(os.Stderr, "Run 'dex list' to see available puzzles.")
			os.Exit(1)
		}
		return
	}

	puzzles := minigame.List()

	if len(puzzles) == 0 {
		fmt.Println("No puzzles available.")
		return
	}

	fmt.Println("Creatures:")
	fmt.Println()

	// Calculate column widths
	maxNameLen := len("Creature")
	for _, c := range dex.All() {
		if len(c.Name) > maxNameLen {
			maxNameLen = len(c.Name)
		}
	}

	fmt.Printf("  %-3s  %-*s  %-8s  %s\n", "No.", maxNameLen, "Creature", "Puzzle", "Title")
	fmt.Printf("  %-3s  %-*s  %-8s  %s\n", "---", maxNameLen, "--------", "------", "-----")

	for _, p := range puzzles {
		fmt.Printf("  %-3d  %-*s  %-8s  %s\n", int(p.ID), maxNameLen, p.ID.Name(), p.Name, p.Title)
	}

	fmt.Println()
	fmt.Println("Run 'dex list <puzzle>' for the rules of one puzzle.")
}

// describePuzzle prints the creature and rules behind a puzzle name.
func describePuzzle(name string) error {
	id, ok := minigame.Lookup(name)
	if !ok {
		return fmt.Errorf("unknown puzzle %q", name)
	}
	p, err := minigame.Create(id)
	if err != nil {
		return err
	}
	c, _ := dex.Lookup(id)

	fmt.Printf("%s (%s)\n", p.Title(), name)
	fmt.Println()
	fmt.Printf("  Creature: No.%d %s, %s\n", int(c.ID), c.Name, c.Major)
	fmt.Printf("  How to:   %s\n", p.Hint())
	return nil
}

package main

import (
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/campus-dex/internal/world"
)

var zonesCmd = &cobra.Command{
	Use:   "zones",
	Short: "Print the catch zones placed for a seed",
	Long: `Place the catch zones the way a new run does and print them.
Passing the same --seed to play gives the same campus.

Examples:
  dex zones --seed 42
  dex zones --config ./my-campus.yaml`,
	Args: cobra.NoArgs,
	Run:  runZones,
}

func runZones(_ *cobra.Command, _ []string) {
	cfg, _, err := loadConfigs()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	areas := world.GrassAreas(cfg.Zones.GrassAreas)
	registry := world.NewZones(areas, cfg.Zones.Size, cfg.Zones.Cap)
	zones := registry.Regenerate(rand.New(rand.NewSource(seed)))

	fmt.Printf("Catch zones for seed %d (%d of %d grass areas)\n", seed, len(zones), len(areas))
	fmt.Println()
	fmt.Printf("  %-4s  %-9s  %-7s  %-9s  %s\n", "Zone", "Tile", "Size", "Fit", "Area")
	fmt.Printf("  %-4s  %-9s  %-7s  %-9s  %s\n", "----", "----", "----", "---", "----")
	for i, z := range zones {
		a := areas[z.Area]
		fit := "inside"
		if !registry.Inside(z) {
			fit = "overflows"
		}
		fmt.Printf("  %-4d  %-9s  %-7s  %-9s  #%d at %d,%d %dx%d\n",
			i+1, fmt.Sprintf("%d,%d", z.X, z.Y), fmt.Sprintf("%dx%d", z.W, z.H), fit,
			z.Area, a.X, a.Y, a.W, a.H)
	}
}

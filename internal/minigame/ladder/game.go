// Package ladder implements the AI + Data Science catch puzzle: pick a
// starting rung and follow the ladder to one of three hidden results.
package ladder

import (
	"fmt"

	"github.com/vovakirdan/campus-dex/internal/core"
	"github.com/vovakirdan/campus-dex/internal/dex"
	"github.com/vovakirdan/campus-dex/internal/minigame"
)

var starts = []string{"A", "B", "C"}

// Game implements the ladder draw puzzle.
type Game struct {
	labels  []string // results, shuffled
	mapping []int    // start index -> result index
	target  string
	cursor  int
	chosen  int // start index, -1 until chosen
	verdict minigame.Verdict
}

// New creates a new ladder puzzle.
func New() *Game {
	return &Game{chosen: -1}
}

func init() {
	minigame.Register(dex.AIDataScience, "ladder", func() minigame.Puzzle {
		return New()
	})
}

// Title returns the display name.
func (g *Game) Title() string {
	return "Ladder Draw"
}

// Hint returns the strategy note.
func (g *Game) Hint() string {
	return "The rungs are hidden. Trust your luck: one start leads to the creature, the others let it escape."
}

// Reset shuffles the result labels and the ladder mapping.
func (g *Game) Reset(env minigame.Env) {
	cfg := env.Config.Ladder
	g.labels = append([]string(nil), cfg.Labels...)
	env.Rand.Shuffle(len(g.labels), func(i, j int) { g.labels[i], g.labels[j] = g.labels[j], g.labels[i] })
	g.mapping = env.Rand.Perm(len(g.labels))
	g.target = cfg.Target
	g.cursor = 0
	g.chosen = -1
	g.verdict = minigame.Pending()
}

// Handle moves between starts and commits a choice.
func (g *Game) Handle(in core.InputFrame) {
	if g.verdict.Resolved() {
		return
	}
	n := len(g.mapping)
	switch {
	case in.Has(core.ActionLeft), in.Has(core.ActionUp):
		g.cursor = (g.cursor - 1 + n) % n
	case in.Has(core.ActionRight), in.Has(core.ActionDown):
		g.cursor = (g.cursor + 1) % n
	case in.Has(core.ActionSelect), in.Has(core.ActionConfirm):
		g.Choose(g.cursor)
	}
}

// Choose follows the ladder from start i. Any result but the target fails
// immediately.
func (g *Game) Choose(i int) {
	if g.verdict.Resolved() || i < 0 || i >= len(g.mapping) {
		return
	}
	g.chosen = i
	result := g.Result(i)
	if result == g.target {
		g.verdict = minigame.Success("")
		return
	}
	g.verdict = minigame.Failure(fmt.Sprintf("landed on %s", result))
}

// Result returns the label reached from start i.
func (g *Game) Result(i int) string {
	return g.labels[g.mapping[i]]
}

// Verdict returns the current resolution.
func (g *Game) Verdict() minigame.Verdict {
	return g.verdict
}

// Render draws the starts, the ladder rails and, after a choice, the results.
func (g *Game) Render(dst *core.Screen) {
	dst.DrawTextCenteredColor(0, g.Title(), core.ColorBrightYellow)

	const spacing = 12
	n := len(g.mapping)
	x0 := (dst.Width() - (n-1)*spacing) / 2
	top, bottom := 3, 10

	for i := 0; i < n; i++ {
		x := x0 + i*spacing
		color := core.ColorWhite
		if i == g.cursor && !g.verdict.Resolved() {
			color = core.ColorBrightYellow
			dst.SetColor(x, top-1, '▼', color)
		}
		dst.SetColor(x, top, []rune(starts[i%len(starts)])[0], color)
		for y := top + 1; y < bottom; y++ {
			dst.SetColor(x, y, '│', core.ColorGray)
		}

		label := "?"
		labelColor := core.ColorGray
		if g.chosen >= 0 {
			label = g.labels[i]
			labelColor = core.ColorWhite
			if g.mapping[g.chosen] == i {
				labelColor = core.ColorBrightRed
				if label == g.target {
					labelColor = core.ColorBrightGreen
				}
			}
		}
		dst.DrawTextColor(x-len(label)/2, bottom, label, labelColor)
	}

	dst.DrawText(2, bottom+2, "←/→ choose   enter go   esc give up")
}

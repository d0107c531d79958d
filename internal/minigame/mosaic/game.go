// Package mosaic implements the AI catch puzzle: name the creature hidden
// behind a pixelated silhouette.
package mosaic

import (
	"fmt"
	"hash/fnv"

	"github.com/vovakirdan/campus-dex/internal/core"
	"github.com/vovakirdan/campus-dex/internal/dex"
	"github.com/vovakirdan/campus-dex/internal/minigame"
)

const (
	tilesW = 12 // silhouette width in cells
	tilesH = 6  // silhouette height in cells
)

// Game implements the silhouette guessing puzzle.
type Game struct {
	names   []string
	answer  int   // index into names
	choices []int // indexes into names, shuffled
	cursor  int   // index into choices
	picked  int   // index into choices, -1 until a pick
	verdict minigame.Verdict
}

// New creates a new mosaic puzzle.
func New() *Game {
	return &Game{picked: -1}
}

func init() {
	minigame.Register(dex.AI, "mosaic", func() minigame.Puzzle {
		return New()
	})
}

// Title returns the display name.
func (g *Game) Title() string {
	return "Mosaic Match"
}

// Hint returns the strategy note.
func (g *Game) Hint() string {
	return "Study the blocky outline and pick the creature it hides. One guess only."
}

// Reset picks an answer and two distinct wrong names, then shuffles them.
func (g *Game) Reset(env minigame.Env) {
	cfg := env.Config.Mosaic
	g.names = append([]string(nil), cfg.Names...)
	g.cursor = 0
	g.picked = -1
	g.verdict = minigame.Pending()

	g.answer = env.Rand.Intn(len(g.names))

	wrong := make([]int, 0, len(g.names)-1)
	for i := range g.names {
		if i != g.answer {
			wrong = append(wrong, i)
		}
	}
	env.Rand.Shuffle(len(wrong), func(i, j int) { wrong[i], wrong[j] = wrong[j], wrong[i] })

	g.choices = append([]int{g.answer}, wrong[:cfg.Choices-1]...)
	env.Rand.Shuffle(len(g.choices), func(i, j int) {
		g.choices[i], g.choices[j] = g.choices[j], g.choices[i]
	})
}

// Handle moves the cursor and locks in a pick.
func (g *Game) Handle(in core.InputFrame) {
	if g.verdict.Resolved() {
		return
	}
	switch {
	case in.Has(core.ActionLeft), in.Has(core.ActionUp):
		g.cursor = (g.cursor - 1 + len(g.choices)) % len(g.choices)
	case in.Has(core.ActionRight), in.Has(core.ActionDown):
		g.cursor = (g.cursor + 1) % len(g.choices)
	case in.Has(core.ActionSelect), in.Has(core.ActionConfirm):
		g.Pick(g.cursor)
	}
}

// Pick chooses the i-th displayed option.
func (g *Game) Pick(i int) {
	if g.verdict.Resolved() || i < 0 || i >= len(g.choices) {
		return
	}
	g.picked = i
	if g.choices[i] == g.answer {
		g.verdict = minigame.Success("")
		return
	}
	g.verdict = minigame.Failure(fmt.Sprintf("it was %s", g.names[g.answer]))
}

// Verdict returns the current resolution.
func (g *Game) Verdict() minigame.Verdict {
	return g.verdict
}

// Answer returns the hidden creature's name.
func (g *Game) Answer() string {
	return g.names[g.answer]
}

// Choices returns the displayed names in order.
func (g *Game) Choices() []string {
	out := make([]string, len(g.choices))
	for i, idx := range g.choices {
		out[i] = g.names[idx]
	}
	return out
}

// Render draws the silhouette and the choice row.
func (g *Game) Render(dst *core.Screen) {
	w := dst.Width()
	dst.DrawTextCenteredColor(0, g.Title(), core.ColorBrightMagenta)

	boxX := (w - tilesW - 2) / 2
	dst.DrawBox(core.NewRect(boxX, 2, tilesW+2, tilesH+2), core.ColorGray)
	g.renderSilhouette(dst, boxX+1, 3)

	y := tilesH + 5
	x := 2
	for i, name := range g.Choices() {
		label := fmt.Sprintf(" %s ", name)
		color := core.ColorWhite
		switch {
		case i == g.picked && g.choices[i] == g.answer:
			color = core.ColorBrightGreen
		case i == g.picked:
			color = core.ColorBrightRed
		case i == g.cursor && !g.verdict.Resolved():
			label = fmt.Sprintf("[%s]", name)
			color = core.ColorBrightYellow
		}
		dst.DrawTextColor(x, y, label, color)
		x += len(label) + 2
	}

	dst.DrawText(2, y+2, "←/→ choose   enter pick   esc give up")
}

// renderSilhouette draws a pattern derived from the answer name. The reveal
// after a correct pick shows the name inside the box.
func (g *Game) renderSilhouette(dst *core.Screen, x0, y0 int) {
	if g.verdict.Status == minigame.StatusSuccess {
		name := g.Answer()
		dst.DrawTextColor(x0+(tilesW-len(name))/2, y0+tilesH/2, name, core.ColorBrightGreen)
		return
	}
	h := fnv.New64a()
	h.Write([]byte(g.Answer())) //nolint:errcheck
	bits := h.Sum64()
	for y := 0; y < tilesH; y++ {
		for x := 0; x < tilesW/2; x++ {
			bit := uint((y*tilesW/2 + x) % 64)
			if bits&(1<<bit) == 0 {
				continue
			}
			// Mirror horizontally so the outline reads as a creature.
			dst.SetColor(x0+x, y0+y, '▓', core.ColorGray)
			dst.SetColor(x0+tilesW-1-x, y0+y, '▓', core.ColorGray)
		}
	}
}

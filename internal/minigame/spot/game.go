// Package spot implements the Data Science catch puzzle: find the one cell
// in the grid whose text differs, within limited misses and time.
package spot

import (
	"fmt"
	"time"

	"github.com/vovakirdan/campus-dex/internal/config"
	"github.com/vovakirdan/campus-dex/internal/core"
	"github.com/vovakirdan/campus-dex/internal/dex"
	"github.com/vovakirdan/campus-dex/internal/minigame"
)

const cellWidth = 4 // text plus spacing

// Game implements the odd-one-out grid puzzle.
type Game struct {
	cfg      config.SpotConfig
	odd      int // cell index of the odd text
	clicked  map[int]bool
	misses   int
	timeLeft int // seconds
	cursorX  int
	cursorY  int
	verdict  minigame.Verdict
}

// New creates a new spot puzzle.
func New() *Game {
	return &Game{}
}

func init() {
	minigame.Register(dex.DataScience, "spot", func() minigame.Puzzle {
		return New()
	})
}

// Title returns the display name.
func (g *Game) Title() string {
	return "Spot the Odd One"
}

// Hint returns the strategy note.
func (g *Game) Hint() string {
	return "One cell reads slightly differently. Sweep row by row before the clock runs out."
}

// Reset builds a new grid and starts the countdown.
func (g *Game) Reset(env minigame.Env) {
	g.cfg = env.Config.Spot
	n := g.cfg.GridSize
	g.odd = env.Rand.Intn(n * n)
	g.clicked = make(map[int]bool)
	g.misses = 0
	g.timeLeft = g.cfg.TimeLimitS
	g.cursorX, g.cursorY = 0, 0
	g.verdict = minigame.Pending()

	env.Timers.Every(time.Second, g.tickSecond)
}

func (g *Game) tickSecond() {
	if g.verdict.Resolved() || g.timeLeft <= 0 {
		return
	}
	g.timeLeft--
	if g.timeLeft == 0 {
		g.verdict = minigame.Failure("time up")
	}
}

// Handle moves the cursor and picks cells.
func (g *Game) Handle(in core.InputFrame) {
	if g.verdict.Resolved() {
		return
	}
	n := g.cfg.GridSize
	switch {
	case in.Has(core.ActionLeft):
		g.cursorX = (g.cursorX - 1 + n) % n
	case in.Has(core.ActionRight):
		g.cursorX = (g.cursorX + 1) % n
	case in.Has(core.ActionUp):
		g.cursorY = (g.cursorY - 1 + n) % n
	case in.Has(core.ActionDown):
		g.cursorY = (g.cursorY + 1) % n
	case in.Has(core.ActionSelect), in.Has(core.ActionConfirm):
		g.Pick(g.cursorY*n + g.cursorX)
	}
}

// Pick selects a cell by index. Cells already picked are ignored.
func (g *Game) Pick(cell int) {
	n := g.cfg.GridSize
	if g.verdict.Resolved() || cell < 0 || cell >= n*n || g.clicked[cell] {
		return
	}
	g.clicked[cell] = true

	if cell == g.odd {
		g.verdict = minigame.Success("")
		return
	}
	g.misses++
	if g.misses >= g.cfg.MaxMisses {
		g.verdict = minigame.Failure("out of attempts")
	}
}

// Verdict returns the current resolution.
func (g *Game) Verdict() minigame.Verdict {
	return g.verdict
}

// Odd returns the index of the odd cell.
func (g *Game) Odd() int {
	return g.odd
}

// TimeLeft returns the remaining seconds.
func (g *Game) TimeLeft() int {
	return g.timeLeft
}

// Misses returns the number of wrong picks so far.
func (g *Game) Misses() int {
	return g.misses
}

// Render draws the HUD and the grid.
func (g *Game) Render(dst *core.Screen) {
	n := g.cfg.GridSize
	dst.DrawTextCenteredColor(0, g.Title(), core.ColorBrightCyan)

	hud := fmt.Sprintf("Time %2ds   Attempts left %d", g.timeLeft, g.cfg.MaxMisses-g.misses)
	hudColor := core.ColorWhite
	if g.timeLeft <= 5 {
		hudColor = core.ColorBrightRed
	}
	dst.DrawTextCenteredColor(1, hud, hudColor)

	gridW := n * cellWidth
	x0 := (dst.Width() - gridW) / 2
	y0 := 3
	for cell := 0; cell < n*n; cell++ {
		cx, cy := cell%n, cell/n
		text := g.cfg.NormalText
		if cell == g.odd {
			text = g.cfg.OddText
		}
		color := core.ColorWhite
		switch {
		case g.clicked[cell] && cell == g.odd:
			color = core.ColorBrightGreen
		case g.clicked[cell]:
			color = core.ColorDarkGray
		}
		x := x0 + cx*cellWidth
		y := y0 + cy
		if cx == g.cursorX && cy == g.cursorY && !g.verdict.Resolved() {
			dst.SetColor(x, y, '>', core.ColorBrightYellow)
			color = core.ColorBrightYellow
		}
		dst.DrawTextColor(x+1, y, text, color)
	}

	dst.DrawText(2, y0+n+1, "arrows move   space pick   esc give up")
}

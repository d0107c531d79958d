// Package circuit implements the Computer Engineering catch puzzle: wire each
// colored socket on the left to the socket of the same color on the right.
package circuit

import (
	"github.com/vovakirdan/campus-dex/internal/core"
	"github.com/vovakirdan/campus-dex/internal/dex"
	"github.com/vovakirdan/campus-dex/internal/minigame"
)

// Side is a socket column.
type Side int

const (
	Left Side = iota
	Right
)

var wireColors = map[string]core.Color{
	"red":    core.ColorBrightRed,
	"yellow": core.ColorBrightYellow,
	"blue":   core.ColorBrightBlue,
	"purple": core.ColorBrightMagenta,
	"green":  core.ColorBrightGreen,
	"cyan":   core.ColorBrightCyan,
	"orange": core.ColorOrange,
	"white":  core.ColorBrightWhite,
}

// ColorOf maps a configured wire name to a screen color.
func ColorOf(name string) core.Color {
	if c, ok := wireColors[name]; ok {
		return c
	}
	return core.ColorWhite
}

// Game implements the wire matching puzzle.
type Game struct {
	wires       []string
	rightOrder  []int       // wire index shown at each right row
	connections map[int]int // left wire index -> right wire index
	holding     int         // left wire index being carried, -1 when none
	cursorSide  Side
	cursorRow   int
	verdict     minigame.Verdict
}

// New creates a new circuit puzzle.
func New() *Game {
	return &Game{holding: -1}
}

func init() {
	minigame.Register(dex.ComputerEngineering, "circuit", func() minigame.Puzzle {
		return New()
	})
}

// Title returns the display name.
func (g *Game) Title() string {
	return "Circuit Board"
}

// Hint returns the strategy note.
func (g *Game) Hint() string {
	return "Pick up a wire on the left, drop it on the same color on the right. Submit once all are wired."
}

// Reset shuffles the right column and clears the wiring.
func (g *Game) Reset(env minigame.Env) {
	g.wires = append([]string(nil), env.Config.Circuit.Wires...)
	g.rightOrder = make([]int, len(g.wires))
	for i := range g.rightOrder {
		g.rightOrder[i] = i
	}
	env.Rand.Shuffle(len(g.rightOrder), func(i, j int) {
		g.rightOrder[i], g.rightOrder[j] = g.rightOrder[j], g.rightOrder[i]
	})
	g.connections = make(map[int]int, len(g.wires))
	g.holding = -1
	g.cursorSide = Left
	g.cursorRow = 0
	g.verdict = minigame.Pending()
}

// Handle moves the cursor, carries wires, clears and submits.
func (g *Game) Handle(in core.InputFrame) {
	if g.verdict.Resolved() {
		return
	}
	n := len(g.wires)
	switch {
	case in.Has(core.ActionUp):
		g.cursorRow = (g.cursorRow - 1 + n) % n
	case in.Has(core.ActionDown):
		g.cursorRow = (g.cursorRow + 1) % n
	case in.Has(core.ActionLeft):
		g.cursorSide = Left
	case in.Has(core.ActionRight):
		g.cursorSide = Right
	case in.Has(core.ActionSelect):
		g.selectSocket()
	case in.Has(core.ActionClear):
		g.Clear()
	case in.Has(core.ActionConfirm):
		g.Submit()
	}
}

// selectSocket picks up a left wire or drops the carried wire on the right.
func (g *Game) selectSocket() {
	if g.cursorSide == Left {
		g.holding = g.cursorRow
		g.cursorSide = Right
		return
	}
	if g.holding < 0 {
		return
	}
	if g.Connect(g.holding, g.cursorRow) {
		g.holding = -1
		g.cursorSide = Left
	}
}

// Connect wires left row l to right row r. A right socket already in use
// refuses the wire; rewiring a left socket replaces its old connection.
func (g *Game) Connect(l, r int) bool {
	if g.verdict.Resolved() || l < 0 || l >= len(g.wires) || r < 0 || r >= len(g.wires) {
		return false
	}
	target := g.rightOrder[r]
	for from, to := range g.connections {
		if to == target && from != l {
			return false
		}
	}
	g.connections[l] = target
	return true
}

// Clear removes every wire.
func (g *Game) Clear() {
	if g.verdict.Resolved() {
		return
	}
	clear(g.connections)
	g.holding = -1
}

// Complete reports whether every left socket is wired.
func (g *Game) Complete() bool {
	return len(g.connections) == len(g.wires)
}

// Submit resolves the board. It is ignored until every socket is wired.
func (g *Game) Submit() {
	if g.verdict.Resolved() || !g.Complete() {
		return
	}
	for l, r := range g.connections {
		if l != r {
			g.verdict = minigame.Failure("short circuit")
			return
		}
	}
	g.verdict = minigame.Success("")
}

// RightRow returns the right row showing wire index w.
func (g *Game) RightRow(w int) int {
	for row, idx := range g.rightOrder {
		if idx == w {
			return row
		}
	}
	return -1
}

// Verdict returns the current resolution.
func (g *Game) Verdict() minigame.Verdict {
	return g.verdict
}

// Render draws both socket columns and the wires between them.
func (g *Game) Render(dst *core.Screen) {
	dst.DrawTextCenteredColor(0, g.Title(), core.ColorOrange)

	const gap = 24
	leftX := (dst.Width() - gap) / 2
	rightX := leftX + gap
	y0 := 3

	for row, name := range g.wires {
		y := y0 + row*2
		dst.SetColor(leftX, y, '●', ColorOf(name))
		if l, ok := g.connections[row]; ok {
			// Straight run to the matching right row, drawn on the left row.
			target := g.RightRow(l)
			wire := '─'
			if target < row {
				wire = '╱'
			} else if target > row {
				wire = '╲'
			}
			for x := leftX + 2; x < rightX-1; x++ {
				dst.SetColor(x, y, wire, ColorOf(name))
			}
		}
	}
	for row, idx := range g.rightOrder {
		y := y0 + row*2
		dst.SetColor(rightX, y, '●', ColorOf(g.wires[idx]))
	}

	if !g.verdict.Resolved() {
		cx := leftX - 2
		if g.cursorSide == Right {
			cx = rightX + 2
		}
		dst.SetColor(cx, y0+g.cursorRow*2, '◆', core.ColorBrightWhite)
		if g.holding >= 0 {
			dst.DrawTextColor(leftX-2-len(g.wires[g.holding])-2, y0+g.holding*2, g.wires[g.holding], ColorOf(g.wires[g.holding]))
		}
	}

	y := y0 + len(g.wires)*2
	dst.DrawText(2, y, "arrows move   space pick/drop   x clear   enter submit")
}

package overworld

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/muesli/reflow/wordwrap"

	"github.com/vovakirdan/campus-dex/internal/core"
	"github.com/vovakirdan/campus-dex/internal/dex"
	"github.com/vovakirdan/campus-dex/internal/world"
)

// Glyphs used by the overworld views. One screen cell shows one tile.
const (
	glyphGround  = '.'
	glyphGrass   = '"'
	glyphSparkle = '*'
	glyphPlayer  = '@'
	glyphPin     = 'o'
)

// Render draws whatever the session is showing.
func Render(s *Session, dst *core.Screen) {
	dst.Clear()
	switch s.Phase() {
	case PhaseInGame:
		s.Game().Render(dst)
	case PhaseCaught:
		RenderCaught(s, dst)
	case PhaseComplete:
		RenderEnding(s, dst)
	case PhaseExploring:
		RenderWorld(s, dst)
	}
}

// RenderWorld draws the camera view of the map: a status line on top, the
// map below it and the message line at the bottom.
func RenderWorld(s *Session, dst *core.Screen) {
	w, h := dst.Width(), dst.Height()
	if w <= 0 || h < 3 {
		return
	}
	ts := s.TileSize()
	viewRows := h - 2
	offset := s.CameraFor(core.V(float64(w*ts), float64(viewRows*ts)))
	originX := int(math.Floor(offset.X / float64(ts)))
	originY := int(math.Floor(offset.Y / float64(ts)))
	cols, rows := int(s.MapSize().X)/ts, int(s.MapSize().Y)/ts

	grass := s.GrassAreas()
	for cy := 0; cy < viewRows; cy++ {
		ty := originY + cy
		for cx := 0; cx < w; cx++ {
			tx := originX + cx
			if tx < 0 || ty < 0 || tx >= cols || ty >= rows {
				continue
			}
			if inAreas(grass, tx, ty) {
				dst.SetColor(cx, cy+1, glyphGrass, core.ColorGreen)
			} else {
				dst.SetColor(cx, cy+1, glyphGround, core.ColorDarkGray)
			}
		}
	}

	for _, p := range s.Nearby() {
		tx, ty := world.TileOf(p, ts)
		dst.SetColor(tx-originX, ty-originY+1, glyphSparkle, core.ColorBrightYellow)
	}

	px, py := world.TileOf(s.Position(), ts)
	dst.SetColor(px-originX, py-originY+1, glyphPlayer, core.ColorBrightWhite)

	status := fmt.Sprintf("Dex %d/%d  pos %.0f,%.0f", s.CaughtCount(), dex.Count, s.Position().X, s.Position().Y)
	if s.InZone() {
		status += "  [rustling grass]"
	}
	dst.DrawTextColor(0, 0, status, core.ColorBrightCyan)
	drawMessage(dst, s.Message(), core.ColorWhite)
}

// drawMessage word-wraps text to the screen width and draws it on the bottom
// rows, covering the map where it needs more than one line.
func drawMessage(dst *core.Screen, text string, c core.Color) {
	if text == "" {
		return
	}
	lines := strings.Split(wordwrap.String(text, dst.Width()), "\n")
	top := max(dst.Height()-len(lines), 1)
	for i, line := range lines {
		y := top + i
		for x := 0; x < dst.Width(); x++ {
			dst.SetColor(x, y, ' ', c)
		}
		dst.DrawTextColor(0, y, strings.TrimRight(line, " "), c)
	}
}

func inAreas(areas []world.Area, tx, ty int) bool {
	for _, a := range areas {
		if a.Contains(tx, ty) {
			return true
		}
	}
	return false
}

// RenderMinimap scales the whole map into the screen and marks the grass
// areas, the remaining catch zones, the player and the corners of the last
// camera view.
func RenderMinimap(s *Session, dst *core.Screen) {
	w, h := dst.Width(), dst.Height()
	if w < 4 || h < 4 {
		return
	}
	ts := s.TileSize()
	cols, rows := int(s.MapSize().X)/ts, int(s.MapSize().Y)/ts
	if cols <= 0 || rows <= 0 {
		return
	}
	box := core.NewRect(0, 1, w, h-1)
	dst.DrawBox(box, core.ColorGray)
	dst.DrawTextCenteredColor(0, "Campus Map", core.ColorBrightCyan)

	innerW, innerH := w-2, h-3
	scale := func(tx, ty int) (int, int) {
		return 1 + tx*innerW/cols, 2 + ty*innerH/rows
	}

	for _, a := range s.GrassAreas() {
		x0, y0 := scale(a.X, a.Y)
		x1, y1 := scale(a.Right(), a.Bottom())
		dst.DrawRect(core.NewRect(x0, y0, core.Max(x1-x0, 1), core.Max(y1-y0, 1)), glyphGrass, core.ColorGreen)
	}
	if offset, size := s.View(); size.X > 0 && size.Y > 0 {
		x0, y0 := scale(int(offset.X)/ts, int(offset.Y)/ts)
		x1, y1 := scale(int(offset.X+size.X)/ts-1, int(offset.Y+size.Y)/ts-1)
		for _, c := range [][2]int{{x0, y0}, {x1, y0}, {x0, y1}, {x1, y1}} {
			dst.SetColor(c[0], c[1], '+', core.ColorBrightCyan)
		}
	}
	for _, z := range s.Zones() {
		cx, cy := z.Center()
		x, y := scale(cx, cy)
		dst.SetColor(x, y, glyphPin, core.ColorBrightRed)
	}
	px, py := world.TileOf(s.Position(), ts)
	x, y := scale(px, py)
	dst.SetColor(x, y, glyphPlayer, core.ColorBrightWhite)
}

// RenderDex lists the collection. Uncaught entries stay hidden.
func RenderDex(s *Session, dst *core.Screen) {
	dst.DrawTextCenteredColor(1, fmt.Sprintf("Campus Dex  %d/%d", s.CaughtCount(), dex.Count), core.ColorBrightCyan)
	y := 3
	for _, c := range dex.All() {
		line := fmt.Sprintf("No.%d  ???", c.ID)
		color := core.ColorDarkGray
		if s.Caught(c.ID) {
			line = fmt.Sprintf("No.%d  %-10s %s", c.ID, c.Name, c.Major)
			color = c.Color
		}
		dst.DrawTextColor(2, y, line, color)
		y += 2
	}
	if s.Complete() {
		dst.DrawTextColor(2, y, fmt.Sprintf("No.6  %-10s %s", dex.Legend.Name, dex.Legend.Major), dex.Legend.Color)
	}
}

// RenderCaught shows the catch banner.
func RenderCaught(s *Session, dst *core.Screen) {
	c, ok := dex.Lookup(s.LastCatch())
	if !ok {
		return
	}
	mid := dst.Height() / 2
	box := core.NewRect(core.Max(0, dst.Width()/2-18), mid-3, core.Min(dst.Width(), 36), 7)
	dst.DrawBox(box, c.Color)
	dst.DrawTextCenteredColor(mid-1, "Gotcha!", core.ColorBrightWhite)
	dst.DrawTextCenteredColor(mid, c.Name+" was caught!", c.Color)
	dst.DrawTextCenteredColor(mid+1, c.Major, core.ColorGray)
	dst.DrawTextCenteredColor(mid+4, "press enter to continue", core.ColorDarkGray)
}

// RenderEnding shows the completion screen with the legend.
func RenderEnding(s *Session, dst *core.Screen) {
	mid := dst.Height() / 2
	dst.DrawTextCenteredColor(mid-4, "All five creatures are in your dex!", core.ColorBrightGreen)
	dst.DrawTextCenteredColor(mid-2, "Something stirs on the campus...", core.ColorGray)
	dst.DrawTextCenteredColor(mid, dex.Legend.Name+" of the "+dex.Legend.Major+" appeared!", dex.Legend.Color)
	dst.DrawTextCenteredColor(mid+2, fmt.Sprintf("Run time %s", s.Elapsed().Round(time.Second)), core.ColorWhite)
	dst.DrawTextCenteredColor(mid+4, "press r to play again, q to quit", core.ColorDarkGray)
}

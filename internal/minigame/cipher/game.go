// Package cipher implements the Cyber Security catch puzzle: slide a Caesar
// shift until the encrypted word decodes to a real one, then submit.
package cipher

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/campus-dex/internal/config"
	"github.com/vovakirdan/campus-dex/internal/core"
	"github.com/vovakirdan/campus-dex/internal/dex"
	"github.com/vovakirdan/campus-dex/internal/minigame"
)

// Decode shifts every lowercase ASCII letter back by shift, wrapping within
// a..z. Other characters pass through unchanged.
func Decode(text string, shift int) string {
	shift = ((shift % 26) + 26) % 26
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		if r >= 'a' && r <= 'z' {
			r = (r-'a'-rune(shift)+26)%26 + 'a'
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Game implements the Caesar cipher puzzle.
type Game struct {
	cfg      config.CipherConfig
	question config.CipherQuestion
	shift    int
	verdict  minigame.Verdict
}

// New creates a new cipher puzzle.
func New() *Game {
	return &Game{}
}

func init() {
	minigame.Register(dex.CyberSecurity, "cipher", func() minigame.Puzzle {
		return New()
	})
}

// Title returns the display name.
func (g *Game) Title() string {
	return "Caesar Cipher"
}

// Hint returns the strategy note.
func (g *Game) Hint() string {
	return "Every letter was pushed forward by the same amount. Slide the shift until the word makes sense."
}

// Reset picks a random question and puts the slider at its minimum.
func (g *Game) Reset(env minigame.Env) {
	g.cfg = env.Config.Cipher
	g.question = g.cfg.Questions[env.Rand.Intn(len(g.cfg.Questions))]
	g.shift = g.cfg.MinShift
	g.verdict = minigame.Pending()
}

// Handle moves the slider and submits.
func (g *Game) Handle(in core.InputFrame) {
	if g.verdict.Resolved() {
		return
	}
	switch {
	case in.Has(core.ActionLeft), in.Has(core.ActionDown):
		g.SetShift(g.shift - 1)
	case in.Has(core.ActionRight), in.Has(core.ActionUp):
		g.SetShift(g.shift + 1)
	case in.Has(core.ActionConfirm), in.Has(core.ActionSelect):
		g.Submit()
	}
}

// SetShift moves the slider, clamped to the configured range.
func (g *Game) SetShift(shift int) {
	if g.verdict.Resolved() {
		return
	}
	g.shift = core.Clamp(shift, g.cfg.MinShift, g.cfg.MaxShift)
}

// Submit resolves the puzzle with the current decode.
func (g *Game) Submit() {
	if g.verdict.Resolved() {
		return
	}
	if g.Decoded() == g.question.Answer {
		g.verdict = minigame.Success("")
		return
	}
	g.verdict = minigame.Failure(fmt.Sprintf("%q is not a word", g.Decoded()))
}

// Shift returns the slider position.
func (g *Game) Shift() int {
	return g.shift
}

// CipherText returns the encrypted word.
func (g *Game) CipherText() string {
	return g.question.CipherText
}

// Decoded returns the cipher text decoded at the current shift.
func (g *Game) Decoded() string {
	return Decode(g.question.CipherText, g.shift)
}

// Verdict returns the current resolution.
func (g *Game) Verdict() minigame.Verdict {
	return g.verdict
}

// Render draws the cipher text, the slider and the live decode.
func (g *Game) Render(dst *core.Screen) {
	dst.DrawTextCenteredColor(0, g.Title(), core.ColorBrightGreen)

	dst.DrawTextCentered(3, "Encrypted")
	dst.DrawTextCenteredColor(4, g.question.CipherText, core.ColorBrightRed)

	// Slider: one cell per shift value.
	span := g.cfg.MaxShift - g.cfg.MinShift + 1
	x0 := (dst.Width() - span - 2) / 2
	dst.Set(x0, 7, '[')
	for i := 0; i < span; i++ {
		ch, color := '-', core.ColorGray
		if g.cfg.MinShift+i == g.shift {
			ch, color = '●', core.ColorBrightYellow
		}
		dst.SetColor(x0+1+i, 7, ch, color)
	}
	dst.Set(x0+span+1, 7, ']')
	dst.DrawTextCentered(8, fmt.Sprintf("shift %d", g.shift))

	dst.DrawTextCentered(10, "Decoded")
	color := core.ColorWhite
	if g.verdict.Status == minigame.StatusSuccess {
		color = core.ColorBrightGreen
	}
	dst.DrawTextCenteredColor(11, g.Decoded(), color)

	dst.DrawText(2, 13, "←/→ shift   enter submit   esc give up")
}

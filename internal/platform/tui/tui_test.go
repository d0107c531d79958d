package tui

import (
	"io"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/campus-dex/internal/config"
	"github.com/vovakirdan/campus-dex/internal/core"
	"github.com/vovakirdan/campus-dex/internal/dex"
	_ "github.com/vovakirdan/campus-dex/internal/minigame/mosaic"
	"github.com/vovakirdan/campus-dex/internal/overworld"
	"github.com/vovakirdan/campus-dex/internal/storage"
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func isQuit(cmd tea.Cmd) bool {
	if cmd == nil {
		return false
	}
	_, ok := cmd().(tea.QuitMsg)
	return ok
}

func TestMapKey(t *testing.T) {
	keys := DefaultKeyMap()
	tests := []struct {
		name string
		msg  tea.KeyMsg
		want core.Action
	}{
		{"arrow up", tea.KeyMsg{Type: tea.KeyUp}, core.ActionUp},
		{"w", runes("w"), core.ActionUp},
		{"s", runes("s"), core.ActionDown},
		{"a", runes("a"), core.ActionLeft},
		{"arrow right", tea.KeyMsg{Type: tea.KeyRight}, core.ActionRight},
		{"space", tea.KeyMsg{Type: tea.KeySpace}, core.ActionSelect},
		{"enter", tea.KeyMsg{Type: tea.KeyEnter}, core.ActionConfirm},
		{"c", runes("c"), core.ActionInteract},
		{"x", runes("x"), core.ActionClear},
		{"esc", tea.KeyMsg{Type: tea.KeyEsc}, core.ActionBack},
		{"r", runes("r"), core.ActionRestart},
		{"q", runes("q"), core.ActionQuit},
		{"unbound", runes("z"), core.ActionNone},
		{"tab is ui only", tea.KeyMsg{Type: tea.KeyTab}, core.ActionNone},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := keys.MapKey(tt.msg); got != tt.want {
				t.Errorf("MapKey(%q) = %v, want %v", tt.msg.String(), got, tt.want)
			}
		})
	}
}

func TestMapKeyToMenuAction(t *testing.T) {
	tests := []struct {
		msg  tea.KeyMsg
		want MenuAction
	}{
		{runes("k"), MenuActionUp},
		{tea.KeyMsg{Type: tea.KeyDown}, MenuActionDown},
		{tea.KeyMsg{Type: tea.KeyEnter}, MenuActionSelect},
		{tea.KeyMsg{Type: tea.KeyEsc}, MenuActionBack},
		{runes("q"), MenuActionQuit},
		{runes("z"), MenuActionNone},
	}
	for _, tt := range tests {
		if got := MapKeyToMenuAction(tt.msg); got != tt.want {
			t.Errorf("MapKeyToMenuAction(%q) = %v, want %v", tt.msg.String(), got, tt.want)
		}
	}
}

func TestRenderScreen(t *testing.T) {
	s := core.NewScreen(10, 2)
	s.DrawTextColor(0, 0, "dex", core.ColorBrightCyan)
	s.DrawText(0, 1, "ok")

	out := RenderScreen(s)
	if !strings.Contains(out, "dex") || !strings.Contains(out, "ok") {
		t.Errorf("RenderScreen() = %q, want both rows", out)
	}
	if got := strings.Count(out, "\n"); got != 1 {
		t.Errorf("newlines = %d, want 1", got)
	}
}

func TestPaletteForRenderer(t *testing.T) {
	s := core.NewScreen(4, 1)
	s.DrawTextColor(0, 0, "ab", core.ColorBrightRed)
	s.DrawTextColor(2, 0, "cd", core.ColorGray)

	// A renderer writing to a non-terminal has no colors.
	p := newPalette(lipgloss.NewRenderer(io.Discard))
	if got := p.render(s); got != "abcd" {
		t.Errorf("render() = %q, want %q", got, "abcd")
	}
	if _, ok := p[core.ColorDarkGray]; !ok {
		t.Error("palette is missing a color")
	}
}

func newTestModel(t *testing.T) Model {
	t.Helper()
	m := NewModel(Options{
		World: config.DefaultWorldConfig(),
		Games: config.DefaultMiniGamesConfig(),
	}, core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 33, Seed: 1})
	m.Init()
	return m
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	got, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T, want Model", next)
	}
	return got, cmd
}

func TestModelWalksOnKeyAndTick(t *testing.T) {
	m := newTestModel(t)
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRight})
	m, cmd := update(t, m, TickMsg(time.Now()))

	if cmd == nil {
		t.Error("tick did not schedule the next tick")
	}
	if got := m.Session().Position(); got.X != 629 {
		t.Errorf("Position().X = %v, want 629", got.X)
	}
}

func TestModelOverlays(t *testing.T) {
	m := newTestModel(t)

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if !strings.Contains(m.View(), "Campus Dex") {
		t.Error("tab did not open the dex")
	}
	m, _ = update(t, m, runes("m"))
	if !strings.Contains(m.View(), "Campus Map") {
		t.Error("m did not switch to the map")
	}

	// Movement is ignored while an overlay is open.
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRight})
	m, _ = update(t, m, TickMsg(time.Now()))
	if got := m.Session().Position().X; got != 625 {
		t.Errorf("moved under an overlay: x = %v", got)
	}

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.BackToMenu() || cmd != nil {
		t.Error("esc with an overlay open left the game")
	}
	if !strings.Contains(m.View(), "Dex 0/5") {
		t.Error("esc did not return to the world view")
	}

	m, cmd = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if !m.BackToMenu() || !isQuit(cmd) {
		t.Error("esc in the world view did not leave")
	}
	if m.Session().Phase() != overworld.PhaseStopped {
		t.Errorf("Phase() = %v after leaving, want stopped", m.Session().Phase())
	}
}

func TestModelQuit(t *testing.T) {
	m := newTestModel(t)
	m, cmd := update(t, m, runes("q"))
	if !m.IsQuitting() || !isQuit(cmd) {
		t.Error("q did not quit")
	}
	if m.View() != "" {
		t.Error("View() not empty after quit")
	}
}

func TestModelMouseDrag(t *testing.T) {
	m := newTestModel(t)
	m, _ = update(t, m, tea.MouseMsg{X: 10, Y: 10, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	m, _ = update(t, m, tea.MouseMsg{X: 13, Y: 10, Action: tea.MouseActionMotion, Button: tea.MouseButtonLeft})
	if !m.Session().Moving() {
		t.Fatal("drag of three cells did not start walking")
	}
	m, _ = update(t, m, tea.MouseMsg{X: 13, Y: 10, Action: tea.MouseActionRelease})
	if m.Session().Moving() {
		t.Error("release did not stop walking")
	}
}

func TestModelFooterHelp(t *testing.T) {
	m := newTestModel(t)
	short := m.View()
	m, _ = update(t, m, runes("?"))
	full := m.View()
	if !strings.Contains(full, "screenshot") || strings.Contains(short, "screenshot") {
		t.Error("? did not toggle the full help")
	}
	if got := strings.Count(full, "\n"); got != 23 {
		t.Errorf("view lines = %d, want the window height", got+1)
	}
}

func openStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "records.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestRecordRows(t *testing.T) {
	store := openStore(t)
	rec := storage.NewRunRecorder(store, "ana")
	if err := rec.RecordAttempt(dex.AI, false, "wrong answer", 3*time.Second); err != nil {
		t.Fatalf("RecordAttempt() failed: %v", err)
	}
	if err := rec.RecordAttempt(dex.AI, true, "", 90*time.Second); err != nil {
		t.Fatalf("RecordAttempt() failed: %v", err)
	}
	if err := rec.RecordRun(5, 10*time.Minute); err != nil {
		t.Fatalf("RecordRun() failed: %v", err)
	}

	runs, err := RecordRows(store, TabRuns)
	if err != nil {
		t.Fatalf("RecordRows(runs) failed: %v", err)
	}
	if len(runs) != 1 || runs[0][0] != "#1" || runs[0][1] != "10:00" || runs[0][2] != "2" {
		t.Errorf("runs = %v", runs)
	}

	puzzles, err := RecordRows(store, TabPuzzles)
	if err != nil {
		t.Fatalf("RecordRows(puzzles) failed: %v", err)
	}
	if len(puzzles) != 1 || puzzles[0][0] != "mosaic" || puzzles[0][4] != "50%" || puzzles[0][5] != "1:30" {
		t.Errorf("puzzles = %v", puzzles)
	}
	if len(puzzles) == 1 && puzzles[0][1] != "1 Ingjwi" {
		t.Errorf("puzzle creature = %v, want %v", puzzles[0][1], "1 Ingjwi")
	}

	attempts, err := RecordRows(store, TabAttempts)
	if err != nil {
		t.Fatalf("RecordRows(attempts) failed: %v", err)
	}
	if len(attempts) != 2 || attempts[0][1] != "caught" || attempts[1][1] != "wrong answer" {
		t.Errorf("attempts = %v", attempts)
	}
	if len(attempts) == 2 && attempts[0][0] != "1 Ingjwi" {
		t.Errorf("attempt creature = %v, want %v", attempts[0][0], "1 Ingjwi")
	}

	none, err := RecordRows(nil, TabRuns)
	if err != nil || none != nil {
		t.Errorf("RecordRows(nil) = %v, %v; want no rows", none, err)
	}
}

func TestCreatureLabel(t *testing.T) {
	tests := []struct {
		id   dex.ID
		want string
	}{
		{dex.AI, "1 Ingjwi"},
		{dex.AIDataScience, "5 Ingdebyu"},
		{dex.ID(0), "?"},
		{dex.ID(90), "?"},
	}

	for _, tt := range tests {
		if got := creatureLabel(tt.id); got != tt.want {
			t.Errorf("creatureLabel(%d) = %v, want %v", tt.id, got, tt.want)
		}
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		in   time.Duration
		want string
	}{
		{0, "-"},
		{1400 * time.Millisecond, "0:01"},
		{90 * time.Second, "1:30"},
		{61 * time.Minute, "61:00"},
	}
	for _, tt := range tests {
		if got := formatDuration(tt.in); got != tt.want {
			t.Errorf("formatDuration(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestRecordsModelTabs(t *testing.T) {
	m := NewRecordsModel(nil, 100, 30)
	if !strings.Contains(m.View(), "Records are off") {
		t.Error("nil store not reported")
	}

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = next.(RecordsModel)
	if m.Tab() != TabPuzzles {
		t.Errorf("Tab() = %v, want puzzles", m.Tab())
	}
	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	next, _ = next.(RecordsModel).Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	m = next.(RecordsModel)
	if m.Tab() != TabAttempts {
		t.Errorf("Tab() = %v, want attempts after wrapping", m.Tab())
	}

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if !next.(RecordsModel).IsGoingBack() || !isQuit(cmd) {
		t.Error("esc did not go back")
	}
}

func TestSessionModelFlow(t *testing.T) {
	opts := Options{World: config.DefaultWorldConfig(), Games: config.DefaultMiniGamesConfig(), Store: openStore(t)}
	var m tea.Model = NewSessionModel(opts, core.RuntimeConfig{ScreenW: 90, ScreenH: 30, TickRate: 33})

	if !strings.Contains(m.View(), "C A M P U S") {
		t.Fatal("session does not start on the menu")
	}

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if isQuit(cmd) {
		t.Fatal("embedded menu quit the program")
	}
	if !strings.Contains(m.View(), "RECORDS") {
		t.Fatal("records page not shown")
	}

	m, cmd = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if isQuit(cmd) || !strings.Contains(m.View(), "C A M P U S") {
		t.Fatal("esc from records did not return to the menu")
	}

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if !strings.Contains(m.View(), "Dex 0/5") {
		t.Fatal("play did not open the world view")
	}
	m, cmd = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if isQuit(cmd) || !strings.Contains(m.View(), "C A M P U S") {
		t.Fatal("esc from the world did not return to the menu")
	}

	_, cmd = m.Update(runes("q"))
	if !isQuit(cmd) {
		t.Error("q on the menu did not quit")
	}
}

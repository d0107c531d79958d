package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/campus-dex/internal/config"
	"github.com/vovakirdan/campus-dex/internal/core"
	"github.com/vovakirdan/campus-dex/internal/overworld"
	"github.com/vovakirdan/campus-dex/internal/storage"
)

// Overlay is a view drawn instead of the camera view while exploring.
type Overlay int

const (
	OverlayNone Overlay = iota
	OverlayDex
	OverlayMap
)

// Options configures a game model.
type Options struct {
	World  config.World
	Games  config.MiniGames
	Store  *storage.Store // nil plays without records
	Player string         // recorded with attempts and runs
	Logger *log.Logger    // nil discards session events

	// Renderer styles the screen for one client. Nil uses the local terminal.
	Renderer *lipgloss.Renderer
}

// TickMsg is sent to trigger a simulation tick.
type TickMsg time.Time

// tickCmd returns a Bubble Tea command that sends one tick after interval.
func tickCmd(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// Model is the Bubble Tea model for one playthrough.
type Model struct {
	session    *overworld.Session
	screen     *core.Screen
	palette    palette
	config     core.RuntimeConfig
	keys       KeyMap
	help       help.Model
	inputFrame core.InputFrame
	overlay    Overlay

	dragging bool
	dragX    int
	dragY    int

	embedded   bool // owned by a parent model; never sends tea.Quit on back
	quitting   bool
	backToMenu bool
}

// NewModel creates a game model. The session starts in Init.
func NewModel(opts Options, cfg core.RuntimeConfig) Model {
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	sessionOpts := []overworld.Option{overworld.WithLogger(logger)}
	if opts.Store != nil {
		player := opts.Player
		if player == "" {
			player = "local"
		}
		sessionOpts = append(sessionOpts, overworld.WithRecorder(storage.NewRunRecorder(opts.Store, player)))
	}

	h := help.New()
	h.ShowAll = false

	colors := defaultPalette
	if opts.Renderer != nil {
		colors = newPalette(opts.Renderer)
	}

	return Model{
		session:    overworld.NewSession(opts.World, opts.Games, sessionOpts...),
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH-1),
		palette:    colors,
		config:     cfg,
		keys:       DefaultKeyMap(),
		help:       h,
		inputFrame: core.NewInputFrame(),
	}
}

// Init starts the session and the tick loop.
func (m Model) Init() tea.Cmd {
	m.session.Start(m.config.Seed)
	return tickCmd(m.config.TickDuration())
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		m.session.Stop()
		return m, tea.Quit
	case key.Matches(msg, m.keys.Screenshot):
		m.saveScreenshot()
		return m, nil
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}

	if m.session.Phase() == overworld.PhaseExploring {
		switch {
		case key.Matches(msg, m.keys.Dex):
			m.overlay = toggle(m.overlay, OverlayDex)
			return m, nil
		case key.Matches(msg, m.keys.Map):
			m.overlay = toggle(m.overlay, OverlayMap)
			return m, nil
		case key.Matches(msg, m.keys.Back):
			if m.overlay != OverlayNone {
				m.overlay = OverlayNone
				return m, nil
			}
			return m.leave()
		}
		if m.overlay != OverlayNone {
			return m, nil
		}
	}

	if m.session.Phase() == overworld.PhaseComplete && key.Matches(msg, m.keys.Back) {
		return m.leave()
	}

	if action := m.keys.MapKey(msg); action != core.ActionNone {
		m.inputFrame.Set(action)
	}
	return m, nil
}

func toggle(current, o Overlay) Overlay {
	if current == o {
		return OverlayNone
	}
	return o
}

// leave ends the model and hands control back to whoever started it.
func (m Model) leave() (tea.Model, tea.Cmd) {
	m.backToMenu = true
	m.session.Stop()
	if m.embedded {
		return m, nil
	}
	return m, tea.Quit
}

// handleMouse turns a left-button drag into a joystick throw. One cell of
// drag is one tile of displacement.
func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button == tea.MouseButtonLeft {
			m.dragging = true
			m.dragX, m.dragY = msg.X, msg.Y
		}
	case tea.MouseActionMotion:
		if m.dragging && m.overlay == OverlayNone {
			ts := float64(m.session.TileSize())
			m.session.Drag(float64(msg.X-m.dragX)*ts, float64(msg.Y-m.dragY)*ts)
		}
	case tea.MouseActionRelease:
		if m.dragging {
			m.dragging = false
			m.session.Release()
		}
	}
	return m, nil
}

// handleTick advances the session by one platform tick.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if m.quitting || m.backToMenu {
		return m, nil
	}

	if m.session.Phase() != overworld.PhaseExploring {
		m.overlay = OverlayNone
	}
	m.session.Step(m.inputFrame, m.config.TickDuration())
	m.inputFrame.Clear()

	return m, tickCmd(m.config.TickDuration())
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.draw()

	dir := filepath.Join(os.Getenv("HOME"), ".dex", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("dex_%s.txt", timestamp))

	//nolint:errcheck // Best-effort save, game continues regardless
	os.WriteFile(path, []byte(m.screen.String()), 0o600)
}

// footer returns the line under the screen: the puzzle hint while a puzzle
// runs, otherwise the key help.
func (m Model) footer() string {
	if game := m.session.Game(); game != nil && !m.help.ShowAll {
		p := game.Puzzle()
		return titleStyle.Render(p.Title()) + "  " + hintStyle.Render(p.Hint())
	}
	return helpStyle.Render(m.help.View(m.keys))
}

// draw renders the current view into the screen buffer.
func (m Model) draw() {
	m.screen.Clear()
	switch {
	case m.session.Phase() != overworld.PhaseExploring:
		overworld.Render(m.session, m.screen)
	case m.overlay == OverlayDex:
		overworld.RenderDex(m.session, m.screen)
	case m.overlay == OverlayMap:
		overworld.RenderMinimap(m.session, m.screen)
	default:
		overworld.RenderWorld(m.session, m.screen)
	}
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting || m.backToMenu {
		return ""
	}

	footer := lipgloss.NewStyle().MaxWidth(max(m.config.ScreenW, 1)).Render(m.footer())
	rows := m.config.ScreenH - lipgloss.Height(footer)
	m.screen.Resize(m.config.ScreenW, max(rows, 0))
	m.draw()

	return strings.Join([]string{m.palette.render(m.screen), footer}, "\n")
}

// Session exposes the running session, for tests and the SSH wrapper.
func (m Model) Session() *overworld.Session {
	return m.session
}

// IsQuitting returns true if user requested to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to the menu.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// Run starts a standalone Bubble Tea program for one playthrough.
func Run(opts Options, cfg core.RuntimeConfig) error {
	model := NewModel(opts, cfg)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),       // Use alternate screen buffer
		tea.WithMouseCellMotion(), // Drag to walk
	)

	_, err := p.Run()
	return err
}

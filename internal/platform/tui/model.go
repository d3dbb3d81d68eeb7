package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-flappy/internal/audio"
	"github.com/vovakirdan/tui-flappy/internal/core"
	"github.com/vovakirdan/tui-flappy/internal/registry"
	"github.com/vovakirdan/tui-flappy/internal/storage"
)

// ScoreLog records finished rounds and lists the best of them.
// *storage.Store implements it.
type ScoreLog interface {
	SaveScore(gameID string, score int) (storage.ScoreEntry, error)
	TopScores(gameID string, limit int) ([]storage.ScoreEntry, error)
}

// Deps are the collaborators a game session reports to.
type Deps struct {
	Scores ScoreLog           // round history; nil disables it
	Best   storage.BestScores // nil keeps the best in memory for this process
	Sink   audio.Sink         // nil plays nothing
	Logger *log.Logger        // nil discards
}

// withDefaults fills nil collaborators with no-op or in-memory ones.
func (d Deps) withDefaults() Deps {
	if d.Best == nil {
		d.Best = storage.NewMemory()
	}
	if d.Sink == nil {
		d.Sink = audio.Nop{}
	}
	if d.Logger == nil {
		d.Logger = log.New(io.Discard)
	}
	return d
}

// Model is the Bubble Tea model for running a game.
type Model struct {
	game       registry.Game
	screen     *core.Screen
	deps       Deps
	config     core.RuntimeConfig
	keyMapper  *KeyMapper
	loop       uint64
	inputFrame core.InputFrame
	gameState  core.GameState
	embedded   bool // Running inside a session; Back returns to the menu
	quitting   bool
	backToMenu bool
	recorded   bool // Whether the current game over has been persisted
}

// NewModel creates a new Bubble Tea model for the given game.
func NewModel(game registry.Game, deps Deps, cfg core.RuntimeConfig) Model {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	return Model{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		deps:       deps.withDefaults(),
		config:     cfg,
		keyMapper:  NewKeyMapper(),
		loop:       nextLoop(),
		inputFrame: core.NewInputFrame(),
	}
}

// Init initializes the model and starts the game.
func (m Model) Init() tea.Cmd {
	m.resetGame()
	return tickCmd(m.config.TickRate, m.loop)
}

// resetGame restarts the game and hands it the persisted best score.
func (m *Model) resetGame() {
	m.game.Reset(m.config)
	m.recorded = false

	if aware, ok := m.game.(registry.BestScoreAware); ok {
		best, err := m.deps.Best.LoadBest(m.game.ID())
		if err != nil {
			m.deps.Logger.Warn("could not load best score", "game", m.game.ID(), "err", err)
		}
		aware.SetBestScore(best)
	}
	m.gameState = m.game.State()
	m.deps.Logger.Debug("round reset", "game", m.game.ID(), "seed", m.config.Seed)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		if msg.Loop != m.loop {
			return m, nil
		}
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	action, isQuit := m.keyMapper.MapKey(msg)
	switch {
	case isQuit:
		m.quitting = true
		return m, tea.Quit

	case action == core.ActionBack:
		if m.embedded && (m.gameState.GameOver || m.gameState.Paused) {
			m.backToMenu = true
			return m, nil
		}
		// Outside a session Esc just pauses
		m.inputFrame.Set(core.ActionPause)

	case action == core.ActionRestart:
		if m.gameState.GameOver {
			m.inputFrame.Set(core.ActionRestart)
		}

	case action != core.ActionNone:
		m.inputFrame.Set(action)
	}

	return m, nil
}

// handleMouse maps clicks to a flap, or a retry after game over.
func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.keyMapper.MapMouse(msg) != core.ActionJump {
		return m, nil
	}
	if m.gameState.GameOver {
		m.inputFrame.Set(core.ActionRestart)
	} else {
		m.inputFrame.Set(core.ActionJump)
	}
	return m, nil
}

// handleResize processes window resize events. The game scales its world
// to the screen, so the round keeps going.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height)
	return m, nil
}

// handleTick processes simulation ticks.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if m.quitting || m.backToMenu {
		return m, nil
	}

	if m.inputFrame.Has(core.ActionRestart) && m.gameState.GameOver {
		m.config.Seed = time.Now().UnixNano()
		m.resetGame()
		m.inputFrame.Clear()
		return m, tickCmd(m.config.TickRate, m.loop)
	}

	result := m.game.Step(m.inputFrame)
	m.gameState = result.State

	for _, e := range result.Events {
		m.deps.Sink.Notify(e)
	}

	if m.gameState.GameOver && !m.recorded {
		m.recordRound(m.gameState.Score)
		m.recorded = true
	}

	m.inputFrame.Clear()
	return m, tickCmd(m.config.TickRate, m.loop)
}

// recordRound persists a finished round. Failures are logged; the game
// goes on without them.
func (m *Model) recordRound(score int) {
	gameID := m.game.ID()
	logger := m.deps.Logger.With("game", gameID, "score", score)

	if score > 0 && m.deps.Scores != nil {
		entry, err := m.deps.Scores.SaveScore(gameID, score)
		if err != nil {
			logger.Error("could not save score", "err", err)
		} else {
			logger = logger.With("round", entry.RoundID)
		}
	}

	if err := m.deps.Best.SaveBest(gameID, score); err != nil {
		logger.Error("could not save best score", "err", err)
	}

	logger.Info("round over", "best", m.gameState.Best)
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		m.deps.Logger.Warn("screenshot skipped", "err", err)
		return
	}
	dir := filepath.Join(home, ".arcade", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.deps.Logger.Warn("screenshot skipped", "err", err)
		return
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.deps.Logger.Warn("screenshot failed", "path", path, "err", err)
		return
	}
	m.deps.Logger.Info("screenshot saved", "path", path)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	return RenderScreen(m.screen)
}

// State returns the game state as of the last tick.
func (m Model) State() core.GameState {
	return m.gameState
}

// IsQuitting returns true if user requested to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// Run starts the Bubble Tea program with the given game.
func Run(game registry.Game, deps Deps, cfg core.RuntimeConfig) error {
	model := NewModel(game, deps, cfg)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	_, err := p.Run()
	return err
}

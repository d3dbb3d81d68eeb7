// Package flappy implements a Flappy Bird-style game.
// The player controls a bird that must navigate through gaps in vertical pipes.
//
// Simulation (sim.go) is a pure state machine over RoundState values; Game
// adapts it to the arcade platform and renders it into a terminal screen.
package flappy

import (
	"fmt"
	"io"
	"math/rand"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/core"
	"github.com/vovakirdan/tui-flappy/internal/registry"
)

// Visual characters for rendering
const (
	PlayerChar    = '▶'
	PlayerBody    = '●'
	PipeChar      = '█'
	PipeCapTop    = '▄'
	PipeCapBottom = '▀'
	GroundChar    = '═'
)

// configPath stores the custom config path set via CLI
var configPath string

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// logger reports config fallbacks. Discards until SetLogger is called.
var logger = log.New(io.Discard)

// SetLogger sets the logger used by every Flappy game. nil discards.
func SetLogger(l *log.Logger) {
	if l == nil {
		l = log.New(io.Discard)
	}
	logger = l
}

// Game implements the Flappy game on top of Simulation.
type Game struct {
	sim     *Simulation
	round   RoundState
	best    int
	paused  bool
	runtime core.RuntimeConfig
	cfg     config.FlappyConfig
}

// New creates a new Flappy game instance.
func New() *Game {
	return &Game{}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return "flappy"
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "Flappy"
}

// Reset initializes or restarts the game.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	cfg, err := config.LoadFlappy(configPath)
	if err != nil {
		logger.Warn("flappy config rejected, using defaults", "path", configPath, "err", err)
		cfg = config.DefaultFlappyConfig()
	}
	g.ResetWithConfig(runtime, cfg)
}

// ResetWithConfig restarts the game with an explicit configuration.
func (g *Game) ResetWithConfig(runtime core.RuntimeConfig, cfg config.FlappyConfig) {
	g.runtime = runtime
	g.cfg = cfg
	g.sim = NewSimulation(ParamsFromConfig(cfg), rand.New(rand.NewSource(runtime.Seed)))
	g.round = g.sim.Reset()
	g.paused = false
}

// SetBestScore seeds the best score shown in the HUD.
func (g *Game) SetBestScore(best int) {
	g.best = best
}

// Round returns the current round state. Callers must treat it as read-only.
func (g *Game) Round() RoundState {
	return g.round
}

// Config returns the configuration the current round was built from.
func (g *Game) Config() config.FlappyConfig {
	return g.cfg
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.round.Over {
		return core.StepResult{State: g.State()}
	}

	// Pause only makes sense once the bird is flying
	if in.Has(core.ActionPause) && g.round.Started {
		g.paused = !g.paused
	}
	if g.paused {
		return core.StepResult{State: g.State()}
	}

	var events []core.Event
	if in.Has(core.ActionJump) {
		var flap []core.Event
		g.round, flap = g.sim.RequestJump(g.round)
		events = append(events, flap...)
	}

	var tickEvents []core.Event
	g.round, tickEvents = g.sim.Tick(g.round, 1)
	events = append(events, tickEvents...)

	if g.round.Over && g.round.Score > g.best {
		g.best = g.round.Score
	}

	return core.StepResult{State: g.State(), Events: events}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.round.Score,
		Best:     g.best,
		Started:  g.round.Started,
		GameOver: g.round.Over,
		Paused:   g.paused,
	}
}

// Render draws the current game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	if dst.Width() == 0 || dst.Height() < 2 {
		return
	}

	v := newViewport(g.sim.Params(), dst.Width(), dst.Height()-1)

	// Ground
	groundY := dst.Height() - 1
	dst.DrawHLine(0, groundY, dst.Width(), GroundChar, core.ColorOrange)

	for _, o := range g.round.Obstacles {
		g.drawPipe(dst, v, o)
	}

	g.drawPlayer(dst, v)

	// HUD
	dst.DrawTextColored(2, 0, fmt.Sprintf(" Score: %d ", g.round.Score), core.ColorWhite)
	bestText := fmt.Sprintf(" Best run: %d ", g.best)
	dst.DrawTextColored(dst.Width()-len(bestText)-2, 0, bestText, core.ColorWhite)

	switch {
	case g.round.Over:
		g.drawCenteredMessage(dst, "GAME OVER", fmt.Sprintf("Final Score: %d  |  R: retry  B: menu", g.round.Score))
	case g.paused:
		g.drawCenteredMessage(dst, "PAUSED", "Press P to resume")
	case !g.round.Started:
		g.drawCenteredMessage(dst, "FLAPPY", "Press SPACE or click to flap")
	}
}

// drawPlayer renders the bird's hitbox, at least one cell in size.
func (g *Game) drawPlayer(dst *core.Screen, v viewport) {
	r := v.rect(g.round.Body.Rect())
	for y := r.Y; y < r.Bottom(); y++ {
		for x := r.X; x < r.Right(); x++ {
			ch := PlayerBody
			if x == r.Right()-1 && y == r.Y {
				ch = PlayerChar
			}
			dst.SetColored(x, y, ch, core.ColorBrightYellow)
		}
	}
}

// drawPipe renders a single pipe to the screen.
func (g *Game) drawPipe(dst *core.Screen, v viewport, o Obstacle) {
	p := g.sim.Params()
	x0 := v.col(o.X)
	x1 := core.Max(v.col(o.X+p.ObstacleWidth), x0+1)
	gapTop := v.row(o.GapTop)
	gapBottom := v.row(o.GapBottom(p.GapHeight))
	fieldH := dst.Height() - 1

	for x := x0; x < x1; x++ {
		for y := 0; y < gapTop; y++ {
			dst.SetColored(x, y, PipeChar, core.ColorGreen)
		}
		if gapTop > 0 {
			dst.SetColored(x, gapTop-1, PipeCapTop, core.ColorBrightGreen)
		}
		for y := gapBottom; y < fieldH; y++ {
			dst.SetColored(x, y, PipeChar, core.ColorGreen)
		}
		if gapBottom < fieldH {
			dst.SetColored(x, gapBottom, PipeCapBottom, core.ColorBrightGreen)
		}
	}
}

// drawCenteredMessage draws a message box in the center of the screen.
func (g *Game) drawCenteredMessage(dst *core.Screen, title, subtitle string) {
	w := dst.Width()
	h := dst.Height()

	boxW := core.Max(len(title), len(subtitle)) + 4
	boxH := 5
	boxX := (w - boxW) / 2
	boxY := (h - boxH) / 2

	box := core.NewRect(boxX, boxY, boxW, boxH)
	dst.DrawRect(box, ' ', core.ColorDefault)
	dst.DrawBox(box)

	dst.DrawTextCenteredColored(boxY+1, title, core.ColorBrightYellow)
	dst.DrawTextCentered(boxY+3, subtitle)
}

// Register the game with the registry
func init() {
	registry.Register("flappy", func() registry.Game {
		return New()
	})
}

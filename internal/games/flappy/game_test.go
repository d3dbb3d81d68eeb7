package flappy

import (
	"bytes"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/core"
	"github.com/vovakirdan/tui-flappy/internal/registry"
)

func newTestGame(seed int64) *Game {
	g := New()
	g.ResetWithConfig(core.RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     seed,
	}, config.DefaultFlappyConfig())
	return g
}

func jump() core.InputFrame {
	in := core.NewInputFrame()
	in.Set(core.ActionJump)
	return in
}

func pause() core.InputFrame {
	in := core.NewInputFrame()
	in.Set(core.ActionPause)
	return in
}

func hasEvent(events []core.Event, kind core.EventKind) bool {
	for _, e := range events {
		if e.Kind == kind {
			return true
		}
	}
	return false
}

func TestGameRegistered(t *testing.T) {
	if !registry.Exists("flappy") {
		t.Fatal("flappy should be registered")
	}
	g, err := registry.Create("flappy")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if g.ID() != "flappy" || g.Title() != "Flappy" {
		t.Errorf("unexpected game: %s %q", g.ID(), g.Title())
	}
	if _, ok := g.(registry.BestScoreAware); !ok {
		t.Error("flappy should accept a persisted best score")
	}
}

func TestGameWaitsForFirstJump(t *testing.T) {
	g := newTestGame(42)
	before := g.Round()

	for i := 0; i < 30; i++ {
		res := g.Step(core.NewInputFrame())
		if res.State.Started || len(res.Events) != 0 {
			t.Fatalf("step %d: game moved without input", i)
		}
	}
	if !reflect.DeepEqual(g.Round(), before) {
		t.Error("waiting round changed")
	}

	res := g.Step(jump())
	if !res.State.Started {
		t.Error("jump should start the round")
	}
	if !hasEvent(res.Events, core.EventFlap) {
		t.Errorf("events = %v, want a flap", res.Events)
	}
	if v := g.Round().Body.Velocity; v != -7.5 {
		t.Errorf("Velocity after jump and one tick = %v, want -7.5", v)
	}
}

func TestGamePauseToggle(t *testing.T) {
	g := newTestGame(42)

	// Pausing before the round starts does nothing
	g.Step(pause())
	if g.State().Paused {
		t.Fatal("pause before start should be ignored")
	}

	g.Step(jump())
	g.Step(pause())
	if !g.State().Paused {
		t.Fatal("expected paused")
	}

	frozen := g.Round()
	for i := 0; i < 10; i++ {
		g.Step(jump())
	}
	if !reflect.DeepEqual(g.Round(), frozen) {
		t.Error("round changed while paused")
	}

	g.Step(pause())
	if g.State().Paused {
		t.Error("expected resumed")
	}
	if reflect.DeepEqual(g.Round(), frozen) {
		t.Error("round should advance after resuming")
	}
}

func TestGameOverKeepsBest(t *testing.T) {
	g := newTestGame(7)
	g.SetBestScore(5)

	g.Step(jump())
	var last core.StepResult
	for i := 0; i < 500 && !g.State().GameOver; i++ {
		last = g.Step(core.NewInputFrame())
	}

	if !last.State.GameOver {
		t.Fatal("expected the bird to hit the floor")
	}
	if !hasEvent(last.Events, core.EventCollision) || !hasEvent(last.Events, core.EventGameOver) {
		t.Errorf("events = %v, want collision and game_over", last.Events)
	}
	if last.State.Score != 0 {
		t.Errorf("Score = %d, want 0", last.State.Score)
	}
	if last.State.Best != 5 {
		t.Errorf("Best = %d, want 5", last.State.Best)
	}

	// Further steps are inert
	res := g.Step(jump())
	if len(res.Events) != 0 || !res.State.GameOver {
		t.Error("finished game should ignore input")
	}
}

func TestGameOverRaisesBest(t *testing.T) {
	g := newTestGame(7)
	cfg := config.DefaultFlappyConfig()
	cfg.Physics.Gravity = 0
	g.ResetWithConfig(core.RuntimeConfig{Seed: 7}, cfg)
	g.sim = NewSimulation(ParamsFromConfig(cfg), fixedRand(80))
	g.round = g.sim.Reset()

	// A started round with no velocity hovers through every gap
	g.round.Started = true
	for i := 0; i < 700; i++ {
		g.Step(core.NewInputFrame())
	}
	if g.State().Score < 2 {
		t.Fatalf("Score = %d, want at least 2", g.State().Score)
	}

	// Drop the bird onto the floor
	g.round.Body.Y = 476
	res := g.Step(core.NewInputFrame())
	if !res.State.GameOver {
		t.Fatal("expected game over")
	}
	if res.State.Best != res.State.Score {
		t.Errorf("Best = %d, want %d", res.State.Best, res.State.Score)
	}
}

func TestGameDeterminism(t *testing.T) {
	inputs := make([]core.InputFrame, 300)
	for i := range inputs {
		inputs[i] = core.NewInputFrame()
		if i%15 == 0 {
			inputs[i].Set(core.ActionJump)
		}
	}

	play := func() RoundState {
		g := newTestGame(12345)
		for _, in := range inputs {
			if g.Step(in).State.GameOver {
				break
			}
		}
		return g.Round()
	}

	if a, b := play(), play(); !reflect.DeepEqual(a, b) {
		t.Errorf("same seed produced different rounds:\n%+v\n%+v", a, b)
	}
}

func TestGameReset(t *testing.T) {
	g := newTestGame(42)
	fresh := g.Round()

	g.Step(jump())
	for i := 0; i < 50; i++ {
		g.Step(core.NewInputFrame())
	}

	g.ResetWithConfig(core.RuntimeConfig{Seed: 42}, config.DefaultFlappyConfig())
	if !reflect.DeepEqual(g.Round(), fresh) {
		t.Error("reset did not restore the initial round")
	}
	if st := g.State(); st.Started || st.GameOver || st.Paused || st.Score != 0 {
		t.Errorf("unexpected state after reset: %+v", st)
	}
}

// useConfigFile points the game at a config file for the duration of a test.
func useConfigFile(t *testing.T, body string) *bytes.Buffer {
	t.Helper()

	path := filepath.Join(t.TempDir(), "flappy.yaml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	var buf bytes.Buffer
	SetConfigPath(path)
	SetLogger(log.New(&buf))
	t.Cleanup(func() {
		SetConfigPath("")
		SetLogger(nil)
	})
	return &buf
}

func TestGameResetUsesConfigFile(t *testing.T) {
	logs := useConfigFile(t, "physics:\n  gravity: 0.25\n")

	g := New()
	g.Reset(core.RuntimeConfig{ScreenW: 80, ScreenH: 24, Seed: 1})

	if got := g.Config().Physics.Gravity; got != 0.25 {
		t.Errorf("gravity = %v, want 0.25 from the file", got)
	}
	if logs.Len() != 0 {
		t.Errorf("unexpected log output: %s", logs.String())
	}
}

func TestGameResetLogsRejectedConfig(t *testing.T) {
	logs := useConfigFile(t, "obstacles:\n  gap_height: 5000\n")

	g := New()
	g.Reset(core.RuntimeConfig{ScreenW: 80, ScreenH: 24, Seed: 1})

	if !reflect.DeepEqual(g.Config(), config.DefaultFlappyConfig()) {
		t.Errorf("rejected config should fall back to defaults, got %+v", g.Config())
	}
	if !strings.Contains(logs.String(), "using defaults") {
		t.Errorf("fallback was not logged: %q", logs.String())
	}
}

func TestGameRenderWaiting(t *testing.T) {
	g := newTestGame(42)
	g.SetBestScore(3)
	screen := core.NewScreen(80, 24)

	g.Render(screen)

	if row := screen.Row(0); !strings.Contains(row, "Score: 0") || !strings.Contains(row, "Best run: 3") {
		t.Errorf("HUD row = %q", row)
	}
	if !strings.Contains(screen.String(), "Press SPACE or click to flap") {
		t.Error("expected start message")
	}
	if screen.Get(0, 23) != GroundChar || screen.Get(79, 23) != GroundChar {
		t.Error("expected ground on the last row")
	}

	// Body (50,150,34,24) in a 400x500 world maps to cols 10..15, rows 6..7
	if screen.Get(10, 6) != PlayerBody || screen.Get(15, 6) != PlayerChar {
		t.Errorf("bird not drawn where expected: %q %q", screen.Get(10, 6), screen.Get(15, 6))
	}
	if c := screen.GetCell(10, 7); c.Color != core.ColorBrightYellow {
		t.Errorf("bird color = %v", c.Color)
	}
}

func TestGameRenderPipesAndGameOver(t *testing.T) {
	g := newTestGame(42)
	g.Step(jump())
	for i := 0; i < 500 && !g.State().GameOver; i++ {
		g.Step(core.NewInputFrame())
	}

	screen := core.NewScreen(80, 24)
	g.Render(screen)
	out := screen.String()

	if !strings.Contains(out, "GAME OVER") || !strings.Contains(out, "Final Score: 0") {
		t.Errorf("expected game over panel, got:\n%s", out)
	}
	if !strings.ContainsRune(out, PipeChar) {
		t.Error("expected a pipe on screen")
	}
	// Title centered on the screen in the highlight color
	titleX := (80 - len("GAME OVER")) / 2
	found := false
	for y := 0; y < 24; y++ {
		row := []rune(screen.Row(y))
		if string(row[titleX:titleX+len("GAME OVER")]) == "GAME OVER" {
			found = true
			if c := screen.GetCell(titleX, y); c.Color != core.ColorBrightYellow {
				t.Errorf("title color = %v", c.Color)
			}
		}
	}
	if !found {
		t.Errorf("GAME OVER not centered at column %d:\n%s", titleX, out)
	}
}

func TestGameRenderTinyScreen(t *testing.T) {
	g := newTestGame(42)
	for _, size := range [][2]int{{0, 0}, {1, 1}, {5, 2}} {
		screen := core.NewScreen(size[0], size[1])
		g.Render(screen)
	}
}

package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-flappy/internal/core"
	"github.com/vovakirdan/tui-flappy/internal/storage"
)

var testRuntime = core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 1}

func TestMenuNavigation(t *testing.T) {
	m := NewMenuModel(stubID, "Stub", nil, testRuntime)

	send := func(msg tea.Msg) tea.Cmd {
		next, cmd := m.Update(msg)
		m = next.(MenuModel)
		return cmd
	}

	send(tea.KeyMsg{Type: tea.KeyUp}) // already at the top
	send(tea.KeyMsg{Type: tea.KeyDown})
	if m.Chosen() != ChoiceNone {
		t.Fatal("nothing should be chosen yet")
	}

	cmd := send(tea.KeyMsg{Type: tea.KeyEnter})
	if m.Chosen() != ChoiceScores {
		t.Errorf("chosen = %v, want %v", m.Chosen(), ChoiceScores)
	}
	if !isQuit(cmd) {
		t.Error("choosing should end the menu program")
	}
}

func TestMenuShortcuts(t *testing.T) {
	m := NewMenuModel(stubID, "Stub", nil, testRuntime)
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	if got := next.(MenuModel).Chosen(); got != ChoiceScores {
		t.Errorf("tab chose %v", got)
	}

	next, _ = m.Update(runeKey("q"))
	if got := next.(MenuModel).Chosen(); got != ChoiceQuit {
		t.Errorf("q chose %v", got)
	}
}

func TestMenuShowsBest(t *testing.T) {
	best := storage.NewMemory()
	if err := best.SaveBest(stubID, 31); err != nil {
		t.Fatal(err)
	}

	m := NewMenuModel(stubID, "Stub", best, testRuntime)
	view := m.View()
	if !strings.Contains(view, "Best run: 31") {
		t.Errorf("menu view missing best score:\n%s", view)
	}
	if !strings.Contains(view, "S T U B") {
		t.Errorf("menu view missing title:\n%s", view)
	}

	next, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	if cfg := next.(MenuModel).Config(); cfg.ScreenW != 120 || cfg.ScreenH != 40 {
		t.Errorf("config after resize = %dx%d", cfg.ScreenW, cfg.ScreenH)
	}
}

func TestScoreboardLoadsScores(t *testing.T) {
	store := newFakeStore()
	for _, s := range []int{3, 9, 5} {
		if _, err := store.SaveScore(stubID, s); err != nil {
			t.Fatal(err)
		}
	}
	// Best table lagging behind the history
	store.best[stubID] = 4

	m := NewScoreboardModel(stubID, "Stub", store, store, 80, 24)
	if m.Rows() != 3 {
		t.Errorf("rows = %d, want 3", m.Rows())
	}
	if m.Best() != 9 {
		t.Errorf("best = %d, want 9", m.Best())
	}
	if !strings.Contains(m.View(), "Best run: 9") {
		t.Error("view missing best score")
	}

	if _, err := store.SaveScore(stubID, 12); err != nil {
		t.Fatal(err)
	}
	next, _ := m.Update(runeKey("r"))
	m = next.(ScoreboardModel)
	if m.Rows() != 4 || m.Best() != 12 {
		t.Errorf("after reload rows = %d best = %d", m.Rows(), m.Best())
	}
}

func TestScoreboardWithoutHistory(t *testing.T) {
	m := NewScoreboardModel(stubID, "Stub", nil, nil, 80, 24)
	if m.Rows() != 0 || m.Best() != 0 {
		t.Errorf("rows = %d best = %d", m.Rows(), m.Best())
	}
	if !strings.Contains(m.View(), "disabled") {
		t.Error("view should say history is disabled")
	}
}

func TestScoreboardLoadError(t *testing.T) {
	store := newFakeStore()
	store.saveErr = errDiskFull

	m := NewScoreboardModel(stubID, "Stub", store, store, 80, 24)
	if !strings.Contains(m.View(), "disk full") {
		t.Error("view should show the load error")
	}
}

func TestScoreboardBackAndQuit(t *testing.T) {
	m := NewScoreboardModel(stubID, "Stub", nil, nil, 80, 24)

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if !next.(ScoreboardModel).IsGoingBack() {
		t.Error("esc should go back")
	}

	next, _ = m.Update(runeKey("q"))
	if !next.(ScoreboardModel).IsQuitting() {
		t.Error("q should quit")
	}
}

func TestShortID(t *testing.T) {
	if got := shortID("1b4e28ba-2fa1-11d2-883f-0016d3cca427"); got != "1b4e28ba" {
		t.Errorf("shortID = %q", got)
	}
	if got := shortID("plain"); got != "plain" {
		t.Errorf("shortID = %q", got)
	}
}

func sessionStep(t *testing.T, s SessionModel, msg tea.Msg) (SessionModel, tea.Cmd) {
	t.Helper()
	next, cmd := s.Update(msg)
	ns, ok := next.(SessionModel)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return ns, cmd
}

func TestSessionUnknownGame(t *testing.T) {
	if _, err := NewSessionModel("no-such-game", Deps{}, testRuntime); err == nil {
		t.Error("expected an error for an unregistered game")
	}
}

func TestSessionFlow(t *testing.T) {
	store := newFakeStore()
	s, err := NewSessionModel(stubID, Deps{Scores: store, Best: store}, testRuntime)
	if err != nil {
		t.Fatal(err)
	}
	if s.Screen() != "menu" {
		t.Fatalf("screen = %q, want menu", s.Screen())
	}

	// Play
	s, cmd := sessionStep(t, s, tea.KeyMsg{Type: tea.KeyEnter})
	if s.Screen() != "game" {
		t.Fatalf("screen = %q, want game", s.Screen())
	}
	if cmd == nil {
		t.Error("starting a game should schedule a tick")
	}

	stub := s.game.game.(*stubGame)
	stub.overAt = 1
	stub.score = 6
	s, _ = sessionStep(t, s, TickMsg{Loop: s.game.loop})
	if !s.game.State().GameOver {
		t.Fatal("expected game over")
	}

	// Back to the menu, which now shows the new best
	s, _ = sessionStep(t, s, runeKey("b"))
	if s.Screen() != "menu" {
		t.Fatalf("screen = %q, want menu", s.Screen())
	}
	if !strings.Contains(s.View(), "Best run: 6") {
		t.Error("menu should show the best from the last round")
	}

	// Scores and back
	s, _ = sessionStep(t, s, tea.KeyMsg{Type: tea.KeyTab})
	if s.Screen() != "scores" {
		t.Fatalf("screen = %q, want scores", s.Screen())
	}
	if s.scores.Rows() != 1 {
		t.Errorf("scoreboard rows = %d, want 1", s.scores.Rows())
	}
	s, _ = sessionStep(t, s, tea.KeyMsg{Type: tea.KeyEsc})
	if s.Screen() != "menu" {
		t.Fatalf("screen = %q, want menu", s.Screen())
	}

	// Quit
	s, cmd = sessionStep(t, s, runeKey("q"))
	if !isQuit(cmd) || s.View() != "" {
		t.Error("q in the menu should quit the session")
	}
}

func TestSessionResizeReachesGame(t *testing.T) {
	s, err := NewSessionModel(stubID, Deps{}, testRuntime)
	if err != nil {
		t.Fatal(err)
	}

	s, _ = sessionStep(t, s, tea.WindowSizeMsg{Width: 50, Height: 20})
	s, _ = sessionStep(t, s, tea.KeyMsg{Type: tea.KeyEnter})
	if s.game.screen.Width() != 50 || s.game.screen.Height() != 20 {
		t.Errorf("game screen = %dx%d, want 50x20", s.game.screen.Width(), s.game.screen.Height())
	}
}

func TestSessionQuitFromGame(t *testing.T) {
	s, err := NewSessionModel(stubID, Deps{}, testRuntime)
	if err != nil {
		t.Fatal(err)
	}
	s, _ = sessionStep(t, s, tea.KeyMsg{Type: tea.KeyEnter})

	s, cmd := sessionStep(t, s, tea.KeyMsg{Type: tea.KeyCtrlC})
	if !isQuit(cmd) || !s.quitting {
		t.Error("ctrl+c in a game should quit the session")
	}
}

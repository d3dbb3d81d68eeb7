package tui

import (
	"errors"
	"fmt"
	"sort"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-flappy/internal/core"
	"github.com/vovakirdan/tui-flappy/internal/registry"
	"github.com/vovakirdan/tui-flappy/internal/storage"
)

const stubID = "tui-stub"

func init() {
	registry.Register(stubID, func() registry.Game { return &stubGame{} })
}

// stubGame ends after overAt steps and reports what it was fed.
type stubGame struct {
	resets int
	jumps  int
	steps  int
	overAt int
	score  int
	best   int
	state  core.GameState
}

func (g *stubGame) ID() string    { return stubID }
func (g *stubGame) Title() string { return "Stub" }

func (g *stubGame) Reset(core.RuntimeConfig) {
	g.resets++
	g.steps = 0
	g.state = core.GameState{Best: g.best}
}

func (g *stubGame) SetBestScore(best int) {
	g.best = best
	g.state.Best = best
}

func (g *stubGame) Step(in core.InputFrame) core.StepResult {
	if g.state.GameOver {
		return core.StepResult{State: g.state}
	}

	var events []core.Event
	if in.Has(core.ActionJump) {
		g.jumps++
		g.state.Started = true
		events = append(events, core.Event{Kind: core.EventFlap})
	}
	if in.Has(core.ActionPause) {
		g.state.Paused = !g.state.Paused
	}

	g.steps++
	if g.overAt > 0 && g.steps >= g.overAt {
		g.state.GameOver = true
		g.state.Score = g.score
		events = append(events,
			core.Event{Kind: core.EventCollision, Score: g.score},
			core.Event{Kind: core.EventGameOver, Score: g.score},
		)
	}
	return core.StepResult{State: g.state, Events: events}
}

func (g *stubGame) Render(dst *core.Screen) {
	dst.Clear()
	dst.DrawText(0, 0, fmt.Sprintf("stub %d", g.state.Score))
}

func (g *stubGame) State() core.GameState { return g.state }

// recordingSink keeps every event it receives.
type recordingSink struct {
	events []core.Event
}

func (s *recordingSink) Notify(e core.Event) {
	s.events = append(s.events, e)
}

// fakeStore is an in-memory ScoreLog and BestScores.
type fakeStore struct {
	saved   []storage.ScoreEntry
	best    map[string]int
	saveErr error
	bests   int // SaveBest calls
}

func newFakeStore() *fakeStore {
	return &fakeStore{best: make(map[string]int)}
}

func (s *fakeStore) SaveScore(gameID string, score int) (storage.ScoreEntry, error) {
	if s.saveErr != nil {
		return storage.ScoreEntry{}, s.saveErr
	}
	e := storage.ScoreEntry{
		ID:      int64(len(s.saved) + 1),
		RoundID: fmt.Sprintf("round%d-x", len(s.saved)+1),
		GameID:  gameID,
		Score:   score,
	}
	s.saved = append(s.saved, e)
	return e, nil
}

func (s *fakeStore) TopScores(gameID string, limit int) ([]storage.ScoreEntry, error) {
	if s.saveErr != nil {
		return nil, s.saveErr
	}
	var out []storage.ScoreEntry
	for _, e := range s.saved {
		if e.GameID == gameID {
			out = append(out, e)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Score > out[j].Score })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *fakeStore) LoadBest(gameID string) (int, error) {
	return s.best[gameID], nil
}

func (s *fakeStore) SaveBest(gameID string, score int) error {
	s.bests++
	if score > s.best[gameID] {
		s.best[gameID] = score
	}
	return nil
}

var errDiskFull = errors.New("disk full")

func runeKey(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func isQuit(cmd tea.Cmd) bool {
	if cmd == nil {
		return false
	}
	_, ok := cmd().(tea.QuitMsg)
	return ok
}

// step feeds msg to a game model and returns the updated model.
func step(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	nm, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return nm, cmd
}

func tick(t *testing.T, m Model) Model {
	t.Helper()
	m, _ = step(t, m, TickMsg{Loop: m.loop})
	return m
}

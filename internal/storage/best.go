package storage

import "sync"

// BestScores persists the best score per game.
type BestScores interface {
	// LoadBest returns the stored best, or 0 if there is none.
	LoadBest(gameID string) (int, error)
	// SaveBest records score if it beats the stored best.
	SaveBest(gameID string, score int) error
}

// Memory is a BestScores kept in process memory. It backs sessions that
// run without a database.
type Memory struct {
	mu   sync.Mutex
	best map[string]int
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{best: make(map[string]int)}
}

// LoadBest implements BestScores.
func (m *Memory) LoadBest(gameID string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.best[gameID], nil
}

// SaveBest implements BestScores.
func (m *Memory) SaveBest(gameID string, score int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if score > m.best[gameID] {
		m.best[gameID] = score
	}
	return nil
}

var _ BestScores = (*Memory)(nil)

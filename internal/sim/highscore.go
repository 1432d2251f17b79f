package sim

import "sync"

// HighscoreStore persists the single highscore value.
type HighscoreStore interface {
	LoadHighscore() (int, error)
	SaveHighscore(score int) error
}

// Highscore caches the stored value. It is read once on construction and
// written through on every new record.
type Highscore struct {
	store   HighscoreStore
	value   int
	lastErr error
}

// NewHighscore loads the current record. A failed load starts from zero and
// is reported through Err.
func NewHighscore(store HighscoreStore) *Highscore {
	h := &Highscore{store: store}
	if store == nil {
		return h
	}
	v, err := store.LoadHighscore()
	if err != nil {
		h.lastErr = err
		return h
	}
	h.value = v
	return h
}

func (h *Highscore) Value() int {
	return h.value
}

// Record raises the highscore to score if it is higher and reports whether it
// did. The store is written synchronously.
func (h *Highscore) Record(score int) bool {
	if score <= h.value {
		return false
	}
	h.value = score
	if h.store != nil {
		h.lastErr = h.store.SaveHighscore(score)
	}
	return true
}

// Err is the most recent store failure, if any.
func (h *Highscore) Err() error {
	return h.lastErr
}

// MemoryHighscore is an in-process HighscoreStore.
type MemoryHighscore struct {
	mu    sync.Mutex
	value int
	saves int
}

func (m *MemoryHighscore) LoadHighscore() (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.value, nil
}

func (m *MemoryHighscore) SaveHighscore(score int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.value = score
	m.saves++
	return nil
}

// Saves counts SaveHighscore calls.
func (m *MemoryHighscore) Saves() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saves
}

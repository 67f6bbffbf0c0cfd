package models

import (
	"sync"

	"github.com/google/uuid"
)

// GameStore keeps games and result counts in memory when no database is configured.
type GameStore struct {
	games   map[uuid.UUID]Game
	results map[string]int
	mutex   sync.Mutex
}

// NewGameStore creates an empty GameStore.
func NewGameStore() *GameStore {
	return &GameStore{
		games:   make(map[uuid.UUID]Game),
		results: make(map[string]int),
	}
}

// Put inserts or replaces a game.
func (s *GameStore) Put(game Game) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	game.Moves = append(Moves{}, game.Moves...)
	s.games[game.ID] = game
}

// Get returns a copy of a stored game.
func (s *GameStore) Get(id uuid.UUID) (Game, bool) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	game, ok := s.games[id]
	if ok {
		game.Moves = append(Moves{}, game.Moves...)
	}
	return game, ok
}

// CompareAndPut replaces a stored game only if it still has previousMoves moves.
// It reports whether the game exists and whether it was replaced.
func (s *GameStore) CompareAndPut(game Game, previousMoves int) (found, replaced bool) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	stored, ok := s.games[game.ID]
	if !ok {
		return false, false
	}

	if len(stored.Moves) != previousMoves {
		return true, false
	}

	game.Moves = append(Moves{}, game.Moves...)
	s.games[game.ID] = game
	return true, true
}

// IncrementResult counts one more finished game with result.
func (s *GameStore) IncrementResult(result string) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.results[result]++
}

// Results returns a copy of the result counts.
func (s *GameStore) Results() map[string]int {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	results := make(map[string]int, len(s.results))
	for result, count := range s.results {
		results[result] = count
	}
	return results
}

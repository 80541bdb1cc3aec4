package store

import (
	"sync"

	"trivia-quiz-service/internal/domain"
	"trivia-quiz-service/internal/pubsub"
)

// Store holds one piece of state and applies actions to it through a reducer.
// Readers either call State or subscribe to every new state.
type Store[S any] struct {
	mu      sync.RWMutex
	state   S
	reducer Reducer[S]
	hub     *pubsub.Hub[S]
}

func New[S any](initial S, reducer Reducer[S]) *Store[S] {
	return &Store[S]{
		state:   initial,
		reducer: reducer,
		hub:     pubsub.NewHub[S](8),
	}
}

// NewGameDataStore returns an empty game store.
func NewGameDataStore(reward int) *Store[domain.GameData] {
	return New(domain.GameData{}, GameDataReducer(reward))
}

// NewLeaderboardStore returns an empty leaderboard store.
func NewLeaderboardStore() *Store[domain.Leaderboard] {
	return New(domain.Leaderboard{}, LeaderboardReducer)
}

// Dispatch applies action and returns the resulting state.
func (s *Store[S]) Dispatch(action Action) S {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = s.reducer(s.state, action)
	s.hub.Publish(s.state)
	return s.state
}

func (s *Store[S]) State() S {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Subscribe returns a channel primed with the current state.
// The caller must invoke the returned cancel function to avoid leaks.
func (s *Store[S]) Subscribe() (<-chan S, func()) {
	return s.hub.Subscribe(s.State())
}

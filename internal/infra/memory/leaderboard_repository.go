package memory

import (
	"context"
	"sync"

	"trivia-quiz-service/internal/domain"
)

// LeaderboardRepository keeps finished games in process memory.
type LeaderboardRepository struct {
	mu      sync.RWMutex
	records []domain.LeaderboardRecord
}

func NewLeaderboardRepository() *LeaderboardRepository {
	return &LeaderboardRepository{}
}

func (r *LeaderboardRepository) Append(_ context.Context, record domain.LeaderboardRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records = append(r.records, record)
	return nil
}

func (r *LeaderboardRepository) List(_ context.Context) ([]domain.LeaderboardRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]domain.LeaderboardRecord(nil), r.records...), nil
}

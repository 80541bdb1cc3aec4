package redis

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"trivia-quiz-service/internal/domain"
)

const leaderboardKey = "trivia:leaderboard"

// LeaderboardRepository appends finished games to a Redis list, oldest first.
type LeaderboardRepository struct {
	client *redis.Client
}

func NewLeaderboardRepository(client *redis.Client) *LeaderboardRepository {
	return &LeaderboardRepository{client: client}
}

func (r *LeaderboardRepository) Append(ctx context.Context, record domain.LeaderboardRecord) error {
	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("marshal leaderboard record: %w", err)
	}
	if err := r.client.RPush(ctx, leaderboardKey, data).Err(); err != nil {
		return fmt.Errorf("append leaderboard record: %w", err)
	}
	return nil
}

func (r *LeaderboardRepository) List(ctx context.Context) ([]domain.LeaderboardRecord, error) {
	items, err := r.client.LRange(ctx, leaderboardKey, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("list leaderboard records: %w", err)
	}
	records := make([]domain.LeaderboardRecord, 0, len(items))
	for _, item := range items {
		var record domain.LeaderboardRecord
		if err := json.Unmarshal([]byte(item), &record); err != nil {
			return nil, fmt.Errorf("unmarshal leaderboard record: %w", err)
		}
		records = append(records, record)
	}
	return records, nil
}

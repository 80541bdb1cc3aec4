package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v4/pgxpool"

	"trivia-quiz-service/internal/domain"
)

// LeaderboardRepository stores finished games in leaderboard_records.
type LeaderboardRepository struct {
	pool *pgxpool.Pool
}

func NewLeaderboardRepository(pool *pgxpool.Pool) *LeaderboardRepository {
	return &LeaderboardRepository{pool: pool}
}

func (r *LeaderboardRepository) Append(ctx context.Context, record domain.LeaderboardRecord) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO leaderboard_records (username, points, date_label) VALUES ($1, $2, $3)`,
		record.Username, record.Points, record.DateLabel)
	if err != nil {
		return fmt.Errorf("insert leaderboard record: %w", err)
	}
	return nil
}

// List returns records in insertion order.
func (r *LeaderboardRepository) List(ctx context.Context) ([]domain.LeaderboardRecord, error) {
	rows, err := r.pool.Query(ctx, `SELECT username, points, date_label FROM leaderboard_records ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list leaderboard records: %w", err)
	}
	defer rows.Close()

	var records []domain.LeaderboardRecord
	for rows.Next() {
		var record domain.LeaderboardRecord
		if err := rows.Scan(&record.Username, &record.Points, &record.DateLabel); err != nil {
			return nil, fmt.Errorf("scan leaderboard record: %w", err)
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list leaderboard records: %w", err)
	}
	return records, nil
}

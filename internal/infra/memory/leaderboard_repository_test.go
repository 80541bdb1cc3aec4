package memory

import (
	"context"
	"testing"

	"trivia-quiz-service/internal/domain"
)

func TestLeaderboardRepositoryKeepsOrder(t *testing.T) {
	repo := NewLeaderboardRepository()
	ctx := context.Background()

	_ = repo.Append(ctx, domain.LeaderboardRecord{Username: "alice", Points: 20})
	_ = repo.Append(ctx, domain.LeaderboardRecord{Username: "bob", Points: 40})

	records, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(records) != 2 || records[0].Username != "alice" || records[1].Username != "bob" {
		t.Fatalf("unexpected records %+v", records)
	}
}

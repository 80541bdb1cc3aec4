package store

import "trivia-quiz-service/internal/domain"

func Username(state domain.GameData) string {
	return state.Username
}

// QuestionAt returns the question at index i; i must be in range.
func QuestionAt(state domain.GameData, i int) domain.Question {
	return state.Questions[i]
}

func QuestionCount(state domain.GameData) int {
	return len(state.Questions)
}

func Skips(state domain.GameData) int {
	return state.Status.Skips
}

func Points(state domain.GameData) int {
	return state.Status.Points
}

func LivesRemaining(state domain.GameData) int {
	return state.Status.LivesRemaining
}

// Records returns a copy of the leaderboard records.
func Records(state domain.Leaderboard) []domain.LeaderboardRecord {
	records := make([]domain.LeaderboardRecord, len(state.Records))
	copy(records, state.Records)
	return records
}

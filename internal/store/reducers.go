package store

import "trivia-quiz-service/internal/domain"

// Reducer computes the next state. It must not mutate its input.
type Reducer[S any] func(state S, action Action) S

// GameDataReducer returns the game reducer awarding reward points per correct answer.
// Counters are not clamped; callers never decrement an exhausted counter.
func GameDataReducer(reward int) Reducer[domain.GameData] {
	return func(state domain.GameData, action Action) domain.GameData {
		status := state.Status

		switch a := action.(type) {
		case LoadInitialData:
			return a.Payload
		case DecrementSkip:
			return state.WithStatus(status.WithSkips(status.Skips - 1))
		case DecrementLife:
			return state.WithStatus(status.WithLivesRemaining(status.LivesRemaining - 1))
		case AddPoints:
			return state.WithStatus(status.WithPoints(status.Points + reward))
		case SetAnswer:
			return state.WithQuestion(a.QuestionIndex, state.Questions[a.QuestionIndex].WithAnswer(a.Correctness))
		default:
			return state
		}
	}
}

// LeaderboardReducer appends finished games in end-of-game order.
func LeaderboardReducer(state domain.Leaderboard, action Action) domain.Leaderboard {
	switch a := action.(type) {
	case AddRecord:
		return state.WithRecord(a.Record)
	default:
		return state
	}
}

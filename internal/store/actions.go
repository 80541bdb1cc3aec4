package store

import "trivia-quiz-service/internal/domain"

// ActionType names a state transition.
type ActionType string

const (
	LoadInitialDataType ActionType = "LOAD_INITIAL_DATA"
	DecrementSkipType   ActionType = "DECREMENT_SKIP"
	DecrementLifeType   ActionType = "DECREMENT_LIFE"
	AddPointsType       ActionType = "ADD_POINTS"
	SetAnswerType       ActionType = "SET_ANSWER"
	AddRecordType       ActionType = "ADD_RECORD"
)

// Action is a message dispatched to a Store.
type Action interface {
	Type() ActionType
}

// LoadInitialData replaces the whole game state.
type LoadInitialData struct {
	Payload domain.GameData
}

func (LoadInitialData) Type() ActionType { return LoadInitialDataType }

type DecrementSkip struct{}

func (DecrementSkip) Type() ActionType { return DecrementSkipType }

type DecrementLife struct{}

func (DecrementLife) Type() ActionType { return DecrementLifeType }

// AddPoints adds the fixed per-question reward.
type AddPoints struct{}

func (AddPoints) Type() ActionType { return AddPointsType }

// SetAnswer records correctness for the question at QuestionIndex, which must be in range.
type SetAnswer struct {
	QuestionIndex int
	Correctness   bool
}

func (SetAnswer) Type() ActionType { return SetAnswerType }

// AddRecord appends a finished game to the leaderboard.
type AddRecord struct {
	Record domain.LeaderboardRecord
}

func (AddRecord) Type() ActionType { return AddRecordType }

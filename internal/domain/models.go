package domain

import (
	"fmt"
	"strings"
)

// DateLabelLayout formats the end-of-game date stored on leaderboard records.
const DateLabelLayout = "Mon Jan 02 2006"

// IncorrectAnswersPerQuestion is the fixed number of distractors per question.
const IncorrectAnswersPerQuestion = 3

// Question models a multiple-choice question with exactly one correct answer.
type Question struct {
	Text             string   `json:"text"`
	CorrectAnswer    string   `json:"correctAnswer"`
	IncorrectAnswers []string `json:"incorrectAnswers"`
	IsCorrectAnswer  *bool    `json:"isCorrectAnswer,omitempty"` // set once the answer is recorded
}

// Validate checks the shape of a fetched question.
func (q Question) Validate() error {
	if strings.TrimSpace(q.Text) == "" {
		return fmt.Errorf("%w: empty question text", ErrInvalidQuestion)
	}
	if strings.TrimSpace(q.CorrectAnswer) == "" {
		return fmt.Errorf("%w: empty correct answer", ErrInvalidQuestion)
	}
	if len(q.IncorrectAnswers) != IncorrectAnswersPerQuestion {
		return fmt.Errorf("%w: expected %d incorrect answers, got %d", ErrInvalidQuestion, IncorrectAnswersPerQuestion, len(q.IncorrectAnswers))
	}
	seen := make(map[string]struct{}, len(q.IncorrectAnswers))
	for _, answer := range q.IncorrectAnswers {
		if strings.TrimSpace(answer) == "" {
			return fmt.Errorf("%w: empty incorrect answer", ErrInvalidQuestion)
		}
		if answer == q.CorrectAnswer {
			return fmt.Errorf("%w: incorrect answers contain the correct answer", ErrInvalidQuestion)
		}
		if _, dup := seen[answer]; dup {
			return fmt.Errorf("%w: duplicate incorrect answer %q", ErrInvalidQuestion, answer)
		}
		seen[answer] = struct{}{}
	}
	return nil
}

// Options returns the incorrect answers followed by the correct one.
func (q Question) Options() []string {
	options := make([]string, 0, len(q.IncorrectAnswers)+1)
	options = append(options, q.IncorrectAnswers...)
	return append(options, q.CorrectAnswer)
}

// Answered reports whether an answer has been recorded for the question.
func (q Question) Answered() bool {
	return q.IsCorrectAnswer != nil
}

// WithAnswer returns a copy of q with the recorded correctness.
func (q Question) WithAnswer(correct bool) Question {
	q.IsCorrectAnswer = &correct
	return q
}

// GameStatus holds the counters of a running game.
type GameStatus struct {
	Points         int `json:"points"`
	Skips          int `json:"skips"`
	LivesRemaining int `json:"livesRemaining"`
}

// NewGameStatus returns the starting counters; points always start at zero.
func NewGameStatus(skips, lives int) GameStatus {
	return GameStatus{Skips: skips, LivesRemaining: lives}
}

func (s GameStatus) WithPoints(points int) GameStatus {
	s.Points = points
	return s
}

func (s GameStatus) WithSkips(skips int) GameStatus {
	s.Skips = skips
	return s
}

func (s GameStatus) WithLivesRemaining(lives int) GameStatus {
	s.LivesRemaining = lives
	return s
}

// GameData is the state of one play-through.
type GameData struct {
	Username  string     `json:"username"`
	Questions []Question `json:"questions"`
	Status    GameStatus `json:"status"`
}

// NewGameData copies questions so the caller's slice is never shared with the game.
func NewGameData(username string, questions []Question, status GameStatus) GameData {
	copied := make([]Question, len(questions))
	copy(copied, questions)
	return GameData{Username: username, Questions: copied, Status: status}
}

// WithStatus returns a copy of g with a new status. The question slice is shared;
// it is never written in place.
func (g GameData) WithStatus(status GameStatus) GameData {
	g.Status = status
	return g
}

// WithQuestion returns a copy of g whose question at index i is replaced.
func (g GameData) WithQuestion(i int, q Question) GameData {
	questions := make([]Question, len(g.Questions))
	copy(questions, g.Questions)
	questions[i] = q
	g.Questions = questions
	return g
}

// LeaderboardRecord is written once per finished game.
type LeaderboardRecord struct {
	Username  string `json:"username"`
	Points    int    `json:"points"`
	DateLabel string `json:"dateLabel"`
}

// Leaderboard keeps records in the order games ended.
type Leaderboard struct {
	Records []LeaderboardRecord `json:"records"`
}

// WithRecord returns a new leaderboard with r appended.
func (l Leaderboard) WithRecord(r LeaderboardRecord) Leaderboard {
	records := make([]LeaderboardRecord, len(l.Records), len(l.Records)+1)
	copy(records, l.Records)
	return Leaderboard{Records: append(records, r)}
}

package domain

import "errors"

var (
	// ErrSessionNotFound is returned when a game session does not exist or has been left.
	ErrSessionNotFound = errors.New("game session not found")
	// ErrInvalidUsername is returned when a game is started without a username.
	ErrInvalidUsername = errors.New("username is required")
	// ErrQuestionFetch indicates the question set could not be retrieved; the game does not start.
	ErrQuestionFetch = errors.New("could not fetch questions")
	// ErrInvalidQuestion indicates a malformed question record.
	ErrInvalidQuestion = errors.New("invalid question")
	// ErrNotStarted is returned for actions sent before the questions are loaded.
	ErrNotStarted = errors.New("game not started")
	// ErrAlreadyStarted is returned when Start is called twice on one game.
	ErrAlreadyStarted = errors.New("game already started")
	// ErrGameOver is returned for actions sent after the end of the game.
	ErrGameOver = errors.New("game is over")
	// ErrInvalidOption is returned when the chosen answer is not one of the options.
	ErrInvalidOption = errors.New("answer is not one of the options")
	// ErrNoAnswerChosen is returned when submitting before choosing an answer.
	ErrNoAnswerChosen = errors.New("no answer chosen")
	// ErrQuestionResolved is returned when the current question was already answered or timed out.
	ErrQuestionResolved = errors.New("question already resolved")
	// ErrQuestionUnresolved is returned when continuing before the question is answered or timed out.
	ErrQuestionUnresolved = errors.New("question not resolved yet")
	// ErrSkipUnavailable is returned when no skip can be used for the current question.
	ErrSkipUnavailable = errors.New("skip unavailable")
)

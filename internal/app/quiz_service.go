package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"trivia-quiz-service/internal/domain"
	"trivia-quiz-service/internal/store"
)

// SessionRepository abstracts where running games are kept (in-memory, Redis, etc).
type SessionRepository interface {
	Put(game *Controller)
	Get(sessionID string) (*Controller, bool)
	Delete(sessionID string)
}

// QuizService contains the game use cases.
type QuizService struct {
	sessions    SessionRepository
	questions   QuestionSource
	records     LeaderboardRepository
	leaderboard *store.Store[domain.Leaderboard]
	settings    Settings
	logger      *zap.SugaredLogger
	opts        []ControllerOption
	newID       func() string
}

// NewQuizService wires the use cases. records may be nil when nothing is persisted.
func NewQuizService(sessions SessionRepository, questions QuestionSource, records LeaderboardRepository, settings Settings, logger *zap.SugaredLogger, opts ...ControllerOption) *QuizService {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &QuizService{
		sessions:    sessions,
		questions:   questions,
		records:     records,
		leaderboard: store.NewLeaderboardStore(),
		settings:    settings,
		logger:      logger,
		opts:        opts,
		newID:       uuid.NewString,
	}
}

// Start fetches questions and begins a game for username. A failed fetch leaves
// nothing behind; the player starts over with a new call.
func (s *QuizService) Start(ctx context.Context, username string) (*Controller, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, domain.ErrInvalidUsername
	}

	game := NewController(s.newID(), username, s.settings, s.questions, s.leaderboard, s.records, s.logger, s.opts...)
	if err := game.Start(ctx); err != nil {
		return nil, err
	}
	s.sessions.Put(game)
	return game, nil
}

func (s *QuizService) Choose(_ context.Context, sessionID, answer string) (Snapshot, error) {
	return s.apply(sessionID, func(g *Controller) error { return g.Choose(answer) })
}

func (s *QuizService) Submit(_ context.Context, sessionID string) (Snapshot, error) {
	return s.apply(sessionID, (*Controller).Submit)
}

func (s *QuizService) Skip(_ context.Context, sessionID string) (Snapshot, error) {
	return s.apply(sessionID, (*Controller).Skip)
}

func (s *QuizService) Continue(_ context.Context, sessionID string) (Snapshot, error) {
	return s.apply(sessionID, (*Controller).Continue)
}

// Snapshot returns the current view of a game.
func (s *QuizService) Snapshot(_ context.Context, sessionID string) (Snapshot, error) {
	game, ok := s.sessions.Get(sessionID)
	if !ok {
		return Snapshot{}, domain.ErrSessionNotFound
	}
	return game.Snapshot(), nil
}

// Subscribe returns a channel that receives snapshots of a game.
// The caller must invoke the returned cancel function to avoid leaks.
func (s *QuizService) Subscribe(_ context.Context, sessionID string) (<-chan Snapshot, func(), error) {
	game, ok := s.sessions.Get(sessionID)
	if !ok {
		return nil, nil, domain.ErrSessionNotFound
	}
	ch, cancel := game.Subscribe()
	return ch, cancel, nil
}

// Leave stops a game and forgets it.
func (s *QuizService) Leave(_ context.Context, sessionID string) {
	game, ok := s.sessions.Get(sessionID)
	if !ok {
		return
	}
	game.Leave()
	s.sessions.Delete(sessionID)
}

// Leaderboard returns finished games in the order they ended.
func (s *QuizService) Leaderboard() []domain.LeaderboardRecord {
	return store.Records(s.leaderboard.State())
}

// LoadLeaderboard replays persisted records into the leaderboard.
func (s *QuizService) LoadLeaderboard(ctx context.Context) error {
	if s.records == nil {
		return nil
	}
	records, err := s.records.List(ctx)
	if err != nil {
		return fmt.Errorf("load leaderboard: %w", err)
	}
	for _, record := range records {
		s.leaderboard.Dispatch(store.AddRecord{Record: record})
	}
	s.logger.Infow("leaderboard loaded", "records", len(records))
	return nil
}

func (s *QuizService) apply(sessionID string, action func(*Controller) error) (Snapshot, error) {
	game, ok := s.sessions.Get(sessionID)
	if !ok {
		return Snapshot{}, domain.ErrSessionNotFound
	}
	if err := action(game); err != nil {
		return game.Snapshot(), err
	}
	return game.Snapshot(), nil
}

package app

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"go.uber.org/zap"

	"trivia-quiz-service/internal/domain"
	"trivia-quiz-service/internal/pubsub"
	"trivia-quiz-service/internal/store"
)

// Phase is the coarse state of a game.
type Phase string

const (
	PhaseAwaitingQuestions Phase = "awaiting_questions"
	PhaseInProgress        Phase = "in_progress"
	PhaseEndOfGame         Phase = "end_of_game"
)

const persistTimeout = 5 * time.Second

// Settings are the rules of a game.
type Settings struct {
	Questions          int
	SecondsPerQuestion int
	Skips              int
	Lives              int
	PointsPerQuestion  int
	TickInterval       time.Duration
}

func DefaultSettings() Settings {
	return Settings{
		Questions:          10,
		SecondsPerQuestion: 20,
		Skips:              3,
		Lives:              3,
		PointsPerQuestion:  10,
		TickInterval:       time.Second,
	}
}

// QuestionSource fetches the question set for one game.
type QuestionSource interface {
	FetchQuestions(ctx context.Context, amount int) ([]domain.Question, error)
}

// LeaderboardRepository persists finished games.
type LeaderboardRepository interface {
	Append(ctx context.Context, record domain.LeaderboardRecord) error
	List(ctx context.Context) ([]domain.LeaderboardRecord, error)
}

// OptionView is one answer option as the player sees it.
type OptionView struct {
	Text      string `json:"text"`
	Selected  bool   `json:"selected"`
	Submitted bool   `json:"submitted"`
	Disabled  bool   `json:"disabled"`
	Correct   bool   `json:"correct,omitempty"` // revealed once the question is resolved
}

// Snapshot is the player-facing view of a game.
type Snapshot struct {
	SessionID      string                    `json:"sessionId"`
	Username       string                    `json:"username"`
	Phase          Phase                     `json:"phase"`
	QuestionNumber int                       `json:"questionNumber"`
	TotalQuestions int                       `json:"totalQuestions"`
	Question       string                    `json:"question"`
	Options        []OptionView              `json:"options"`
	AnswerChosen   string                    `json:"answerChosen"`
	Submitted      bool                      `json:"submitted"`
	TimedOut       bool                      `json:"timedOut"`
	TimeLeft       int                       `json:"timeLeft"`
	SkipDisabled   bool                      `json:"skipDisabled"`
	EndOfGame      bool                      `json:"endOfGame"`
	Points         int                       `json:"points"`
	Skips          int                       `json:"skips"`
	Lives          int                       `json:"lives"`
	Record         *domain.LeaderboardRecord `json:"record,omitempty"`
}

// ControllerOption customizes a Controller.
type ControllerOption func(*Controller)

// WithClock sets the clock used for leaderboard dates.
func WithClock(now func() time.Time) ControllerOption {
	return func(c *Controller) { c.now = now }
}

// WithShuffle sets how answer options are ordered.
func WithShuffle(shuffle func([]string)) ControllerOption {
	return func(c *Controller) { c.shuffle = shuffle }
}

// Controller drives a single game: question progression, the per-question
// countdown, answers, skips and the end of the game. All events, player actions
// and countdown ticks alike, are applied one at a time under mu.
type Controller struct {
	id          string
	username    string
	settings    Settings
	source      QuestionSource
	game        *store.Store[domain.GameData]
	leaderboard *store.Store[domain.Leaderboard]
	records     LeaderboardRepository
	countdown   *Countdown
	hub         *pubsub.Hub[Snapshot]
	shuffle     func([]string)
	now         func() time.Time
	logger      *zap.SugaredLogger

	mu           sync.Mutex
	phase        Phase
	starting     bool
	left         bool
	index        int
	options      []OptionView
	answerChosen string
	submitted    bool
	timedOut     bool
	skipDisabled bool
	timeLeft     int
	record       *domain.LeaderboardRecord
	pending      *domain.LeaderboardRecord
}

// NewController builds a game for username. records may be nil.
func NewController(
	id, username string,
	settings Settings,
	source QuestionSource,
	leaderboard *store.Store[domain.Leaderboard],
	records LeaderboardRepository,
	logger *zap.SugaredLogger,
	opts ...ControllerOption,
) *Controller {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	rnd := rand.New(rand.NewSource(time.Now().UnixNano()))
	c := &Controller{
		id:          id,
		username:    username,
		settings:    settings,
		source:      source,
		game:        store.NewGameDataStore(settings.PointsPerQuestion),
		leaderboard: leaderboard,
		records:     records,
		countdown:   NewCountdown(settings.TickInterval),
		hub:         pubsub.NewHub[Snapshot](8),
		shuffle: func(s []string) {
			rnd.Shuffle(len(s), func(i, j int) { s[i], s[j] = s[j], s[i] })
		},
		now:    time.Now,
		logger: logger.With("session", id, "username", username),
		phase:  PhaseAwaitingQuestions,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Controller) ID() string { return c.id }

// Start fetches the questions, loads the first one and starts its countdown.
// On failure nothing is loaded and Start may be called again.
func (c *Controller) Start(ctx context.Context) error {
	c.mu.Lock()
	if c.starting || c.phase != PhaseAwaitingQuestions {
		c.mu.Unlock()
		return domain.ErrAlreadyStarted
	}
	if c.left {
		c.mu.Unlock()
		return domain.ErrSessionNotFound
	}
	c.starting = true
	c.mu.Unlock()

	questions, err := c.fetch(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.starting = false
	if err != nil {
		c.logger.Warnw("question fetch failed", "error", err)
		return err
	}
	if c.left {
		return domain.ErrSessionNotFound
	}

	status := domain.NewGameStatus(c.settings.Skips, c.settings.Lives)
	state := c.game.Dispatch(store.LoadInitialData{Payload: domain.NewGameData(c.username, questions, status)})

	c.phase = PhaseInProgress
	c.index = 0
	c.skipDisabled = store.Skips(state) <= 0
	c.loadQuestionLocked()
	c.startCountdownLocked()
	c.logger.Infow("game started", "questions", len(questions))
	c.publishLocked()
	return nil
}

func (c *Controller) fetch(ctx context.Context) ([]domain.Question, error) {
	questions, err := c.source.FetchQuestions(ctx, c.settings.Questions)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrQuestionFetch, err)
	}
	if len(questions) != c.settings.Questions {
		return nil, fmt.Errorf("%w: expected %d questions, got %d", domain.ErrQuestionFetch, c.settings.Questions, len(questions))
	}
	for i, q := range questions {
		if err := q.Validate(); err != nil {
			return nil, fmt.Errorf("%w: question %d: %w", domain.ErrQuestionFetch, i+1, err)
		}
	}
	return questions, nil
}

// Choose marks answer as the player's pending choice.
func (c *Controller) Choose(answer string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.playableLocked(); err != nil {
		return err
	}
	if c.resolvedLocked() {
		return domain.ErrQuestionResolved
	}
	found := false
	for _, opt := range c.options {
		if opt.Text == answer {
			found = true
			break
		}
	}
	if !found {
		return domain.ErrInvalidOption
	}

	c.answerChosen = answer
	for i := range c.options {
		c.options[i].Selected = c.options[i].Text == answer
	}
	c.publishLocked()
	return nil
}

// Submit scores the chosen answer.
func (c *Controller) Submit() error {
	defer c.persistPending()
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.playableLocked(); err != nil {
		return err
	}
	if c.resolvedLocked() {
		return domain.ErrQuestionResolved
	}
	if c.answerChosen == "" {
		return domain.ErrNoAnswerChosen
	}

	c.countdown.Stop()
	c.submitted = true
	question := store.QuestionAt(c.game.State(), c.index)
	correct := question.CorrectAnswer == c.answerChosen
	if correct {
		c.game.Dispatch(store.AddPoints{})
	} else {
		c.game.Dispatch(store.DecrementLife{})
	}
	c.game.Dispatch(store.SetAnswer{QuestionIndex: c.index, Correctness: correct})
	for i := range c.options {
		c.options[i].Submitted = c.options[i].Text == c.answerChosen
	}
	c.revealLocked(question)

	if !correct {
		c.checkLivesLocked()
	}
	c.publishLocked()
	return nil
}

// Skip forfeits the current question and moves on.
func (c *Controller) Skip() error {
	defer c.persistPending()
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.playableLocked(); err != nil {
		return err
	}
	skips := store.Skips(c.game.State())
	if c.resolvedLocked() || c.skipDisabled || skips <= 0 {
		return domain.ErrSkipUnavailable
	}

	if skips == 1 {
		c.skipDisabled = true
	}
	c.game.Dispatch(store.DecrementSkip{})
	c.nextLocked()
	c.publishLocked()
	return nil
}

// Continue moves past a question that was answered or timed out.
func (c *Controller) Continue() error {
	defer c.persistPending()
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.playableLocked(); err != nil {
		return err
	}
	if !c.resolvedLocked() {
		return domain.ErrQuestionUnresolved
	}

	c.resetQuestionLocked()
	c.nextLocked()
	c.publishLocked()
	return nil
}

// Leave stops the countdown and closes subscriptions. No record is written.
func (c *Controller) Leave() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.left {
		return
	}
	c.left = true
	c.countdown.Stop()
	c.hub.Close()
	c.logger.Infow("game left", "phase", c.phase)
}

// Snapshot returns the current view of the game.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

// Subscribe returns a channel primed with the current snapshot that receives one
// snapshot per change. The caller must invoke the returned cancel function.
func (c *Controller) Subscribe() (<-chan Snapshot, func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hub.Subscribe(c.snapshotLocked())
}

// tick is called by the countdown once per interval.
func (c *Controller) tick(gen uint64) {
	defer c.persistPending()
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.countdown.Active(gen) || c.phase != PhaseInProgress || c.left {
		return
	}
	if c.timeLeft > 0 {
		c.timeLeft--
	}
	if c.timeLeft == 0 {
		c.expireLocked()
	}
	c.publishLocked()
}

// expireLocked resolves a question whose countdown ran out like a wrong answer,
// without recording an answer and without moving on.
func (c *Controller) expireLocked() {
	c.countdown.Stop()
	c.timedOut = true
	c.skipDisabled = true
	c.revealLocked(store.QuestionAt(c.game.State(), c.index))
	c.game.Dispatch(store.DecrementLife{})
	c.checkLivesLocked()
}

func (c *Controller) checkLivesLocked() {
	if store.LivesRemaining(c.game.State()) <= 0 {
		c.endGameLocked()
	}
}

func (c *Controller) nextLocked() {
	if c.index == store.QuestionCount(c.game.State())-1 {
		c.endGameLocked()
		return
	}
	c.skipDisabled = store.Skips(c.game.State()) <= 0
	c.index++
	c.loadQuestionLocked()
	c.startCountdownLocked()
}

func (c *Controller) loadQuestionLocked() {
	question := store.QuestionAt(c.game.State(), c.index)
	texts := question.Options()
	c.shuffle(texts)

	c.options = make([]OptionView, len(texts))
	for i, text := range texts {
		c.options[i] = OptionView{Text: text}
	}
	c.answerChosen = ""
	c.submitted = false
	c.timedOut = false
}

func (c *Controller) resetQuestionLocked() {
	c.answerChosen = ""
	c.submitted = false
	c.timedOut = false
	for i := range c.options {
		c.options[i] = OptionView{Text: c.options[i].Text}
	}
}

func (c *Controller) revealLocked(question domain.Question) {
	for i := range c.options {
		c.options[i].Disabled = true
		c.options[i].Correct = c.options[i].Text == question.CorrectAnswer
	}
}

func (c *Controller) startCountdownLocked() {
	c.timeLeft = c.settings.SecondsPerQuestion
	c.countdown.Start(c.tick)
}

func (c *Controller) endGameLocked() {
	if c.phase == PhaseEndOfGame {
		return
	}
	c.phase = PhaseEndOfGame
	c.countdown.Stop()

	state := c.game.State()
	record := domain.LeaderboardRecord{
		Username:  store.Username(state),
		Points:    store.Points(state),
		DateLabel: c.now().Format(domain.DateLabelLayout),
	}
	c.record = &record
	if c.leaderboard != nil {
		c.leaderboard.Dispatch(store.AddRecord{Record: record})
	}
	if c.records != nil {
		pending := record
		c.pending = &pending
	}
	c.logger.Infow("game ended", "points", record.Points, "lives", store.LivesRemaining(state))
}

// persistPending writes the queued leaderboard record outside mu. Entry points
// that can end the game defer it before taking mu.
func (c *Controller) persistPending() {
	c.mu.Lock()
	record := c.pending
	c.pending = nil
	c.mu.Unlock()
	if record == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
	defer cancel()
	if err := c.records.Append(ctx, *record); err != nil {
		c.logger.Errorw("persist leaderboard record", "error", err)
	}
}

func (c *Controller) playableLocked() error {
	if c.left {
		return domain.ErrSessionNotFound
	}
	switch c.phase {
	case PhaseAwaitingQuestions:
		return domain.ErrNotStarted
	case PhaseEndOfGame:
		return domain.ErrGameOver
	}
	return nil
}

func (c *Controller) resolvedLocked() bool {
	return c.submitted || c.timedOut
}

func (c *Controller) publishLocked() {
	c.hub.Publish(c.snapshotLocked())
}

func (c *Controller) snapshotLocked() Snapshot {
	state := c.game.State()
	snap := Snapshot{
		SessionID:      c.id,
		Username:       c.username,
		Phase:          c.phase,
		TotalQuestions: c.settings.Questions,
		AnswerChosen:   c.answerChosen,
		Submitted:      c.submitted,
		TimedOut:       c.timedOut,
		TimeLeft:       c.timeLeft,
		SkipDisabled:   c.skipDisabled || c.phase != PhaseInProgress,
		EndOfGame:      c.phase == PhaseEndOfGame,
		Points:         store.Points(state),
		Skips:          store.Skips(state),
		Lives:          store.LivesRemaining(state),
	}
	if c.phase != PhaseAwaitingQuestions {
		snap.QuestionNumber = c.index + 1
		snap.Question = store.QuestionAt(state, c.index).Text
		snap.Options = append([]OptionView(nil), c.options...)
	}
	if c.record != nil {
		record := *c.record
		snap.Record = &record
	}
	return snap
}

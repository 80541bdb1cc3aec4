package memory

import (
	"context"
	"math/rand"
	"strconv"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"trivia-quiz-service/internal/app"
	"trivia-quiz-service/internal/domain"
)

// QuestionRepository caches question sets with TTL to stay under upstream rate limits.
// Concurrent misses for the same amount share one upstream fetch.
type QuestionRepository struct {
	source app.QuestionSource
	ttl    time.Duration
	clock  func() time.Time
	sf     singleflight.Group

	mu    sync.RWMutex
	rnd   *rand.Rand
	cache map[int]cachedSet
}

type cachedSet struct {
	questions []domain.Question
	expiresAt time.Time
}

// NewQuestionRepository wraps source. A non-positive ttl disables caching.
func NewQuestionRepository(source app.QuestionSource, ttl time.Duration) *QuestionRepository {
	return &QuestionRepository{
		source: source,
		ttl:    ttl,
		clock:  time.Now,
		rnd:    rand.New(rand.NewSource(time.Now().UnixNano())),
		cache:  make(map[int]cachedSet),
	}
}

func (r *QuestionRepository) FetchQuestions(ctx context.Context, amount int) ([]domain.Question, error) {
	if r.ttl <= 0 {
		return r.source.FetchQuestions(ctx, amount)
	}
	if questions, ok := r.lookup(amount); ok {
		return questions, nil
	}

	result, err, _ := r.sf.Do(strconv.Itoa(amount), func() (interface{}, error) {
		if questions, ok := r.lookup(amount); ok {
			return questions, nil
		}

		questions, err := r.source.FetchQuestions(ctx, amount)
		if err != nil {
			return nil, err
		}

		r.mu.Lock()
		r.cache[amount] = cachedSet{
			questions: copyQuestions(questions),
			expiresAt: r.clock().Add(r.ttlWithJitterLocked()),
		}
		r.mu.Unlock()
		return questions, nil
	})
	if err != nil {
		return nil, err
	}
	return copyQuestions(result.([]domain.Question)), nil
}

func (r *QuestionRepository) lookup(amount int) ([]domain.Question, bool) {
	now := r.clock()
	r.mu.RLock()
	defer r.mu.RUnlock()
	if entry, ok := r.cache[amount]; ok && entry.expiresAt.After(now) {
		return copyQuestions(entry.questions), true
	}
	return nil, false
}

func (r *QuestionRepository) ttlWithJitterLocked() time.Duration {
	// add up to 10% jitter to spread expirations
	jitterMax := int64(r.ttl) / 10
	return r.ttl + time.Duration(r.rnd.Int63n(jitterMax+1))
}

// StaticQuestionSource serves a fixed question list (useful for tests/demos).
type StaticQuestionSource struct {
	questions []domain.Question
}

func NewStaticQuestionSource(questions []domain.Question) *StaticQuestionSource {
	return &StaticQuestionSource{questions: questions}
}

// FetchQuestions returns the first amount questions, or all of them when there are fewer.
func (s *StaticQuestionSource) FetchQuestions(_ context.Context, amount int) ([]domain.Question, error) {
	n := amount
	if n > len(s.questions) || n < 0 {
		n = len(s.questions)
	}
	return copyQuestions(s.questions[:n]), nil
}

func copyQuestions(questions []domain.Question) []domain.Question {
	out := make([]domain.Question, len(questions))
	for i, q := range questions {
		q.IncorrectAnswers = append([]string(nil), q.IncorrectAnswers...)
		out[i] = q
	}
	return out
}

package redis

import (
	"context"
	"errors"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"trivia-quiz-service/internal/app"
	"trivia-quiz-service/internal/domain"
	"trivia-quiz-service/internal/infra/memory"
)

func TestQuestionRepositoryCachesInRedis(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	defer mr.Close()

	client := newClient(mr)

	source := &countingSource{QuestionSource: memory.NewStaticQuestionSource(sampleQuestions())}
	repo := NewQuestionRepository(client, source, time.Minute)

	questions, err := repo.FetchQuestions(context.Background(), 2)
	if err != nil {
		t.Fatalf("fetch questions: %v", err)
	}
	if source.calls != 1 {
		t.Fatalf("expected source called once, got %d", source.calls)
	}
	if len(questions) != 2 {
		t.Fatalf("expected 2 questions, got %d", len(questions))
	}
	if !mr.Exists("trivia:questions:2") {
		t.Fatalf("expected cached question set in redis")
	}

	// Second call should hit cache, source not incremented.
	cached, err := repo.FetchQuestions(context.Background(), 2)
	if err != nil {
		t.Fatalf("fetch cached questions: %v", err)
	}
	if source.calls != 1 {
		t.Fatalf("expected cache hit, source calls=%d", source.calls)
	}
	if cached[1].CorrectAnswer != "6" || len(cached[1].IncorrectAnswers) != 3 {
		t.Fatalf("cached question lost data: %+v", cached[1])
	}

	mr.FastForward(2 * time.Minute)
	_, _ = repo.FetchQuestions(context.Background(), 2)
	if source.calls != 2 {
		t.Fatalf("expected refetch after ttl, source calls=%d", source.calls)
	}
}

func TestQuestionRepositoryPropagatesSourceError(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	defer mr.Close()

	boom := errors.New("boom")
	repo := NewQuestionRepository(newClient(mr), &countingSource{err: boom}, time.Minute)
	if _, err := repo.FetchQuestions(context.Background(), 2); !errors.Is(err, boom) {
		t.Fatalf("expected source error, got %v", err)
	}
	if mr.Exists("trivia:questions:2") {
		t.Fatalf("errors must not be cached")
	}
}

type countingSource struct {
	app.QuestionSource
	err   error
	calls int
}

func (s *countingSource) FetchQuestions(ctx context.Context, amount int) ([]domain.Question, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.QuestionSource.FetchQuestions(ctx, amount)
}

func sampleQuestions() []domain.Question {
	return []domain.Question{
		{Text: "What is 2 + 2?", CorrectAnswer: "4", IncorrectAnswers: []string{"3", "5", "22"}},
		{Text: "What is 3 + 3?", CorrectAnswer: "6", IncorrectAnswers: []string{"5", "7", "33"}},
	}
}

func newClient(mr *miniredis.Miniredis) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})
}

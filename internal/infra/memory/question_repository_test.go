package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"trivia-quiz-service/internal/app"
	"trivia-quiz-service/internal/domain"
)

func TestQuestionRepositoryCaches(t *testing.T) {
	source := &countingSource{QuestionSource: NewStaticQuestionSource(sampleQuestions())}
	repo := NewQuestionRepository(source, time.Minute)

	if _, err := repo.FetchQuestions(context.Background(), 2); err != nil {
		t.Fatalf("fetch questions: %v", err)
	}
	if source.calls != 1 {
		t.Fatalf("expected source once, got %d", source.calls)
	}

	questions, err := repo.FetchQuestions(context.Background(), 2)
	if err != nil {
		t.Fatalf("fetch questions 2: %v", err)
	}
	if source.calls != 1 {
		t.Fatalf("expected cache hit, source calls %d", source.calls)
	}
	if len(questions) != 2 {
		t.Fatalf("expected 2 questions, got %d", len(questions))
	}

	questions[0].IncorrectAnswers[0] = "changed"
	again, _ := repo.FetchQuestions(context.Background(), 2)
	if again[0].IncorrectAnswers[0] != "3" {
		t.Fatalf("cached set was mutated through a returned slice")
	}
}

func TestQuestionRepositoryExpires(t *testing.T) {
	source := &countingSource{QuestionSource: NewStaticQuestionSource(sampleQuestions())}
	repo := NewQuestionRepository(source, time.Minute)
	now := time.Now()
	repo.clock = func() time.Time { return now }

	_, _ = repo.FetchQuestions(context.Background(), 2)
	now = now.Add(2 * time.Minute)
	_, _ = repo.FetchQuestions(context.Background(), 2)
	if source.calls != 2 {
		t.Fatalf("expected refetch after expiry, got %d calls", source.calls)
	}
}

func TestQuestionRepositoryWithoutTTLPassesThrough(t *testing.T) {
	source := &countingSource{QuestionSource: NewStaticQuestionSource(sampleQuestions())}
	repo := NewQuestionRepository(source, 0)

	_, _ = repo.FetchQuestions(context.Background(), 2)
	_, _ = repo.FetchQuestions(context.Background(), 2)
	if source.calls != 2 {
		t.Fatalf("expected every fetch to reach the source, got %d", source.calls)
	}
}

func TestQuestionRepositoryDoesNotCacheErrors(t *testing.T) {
	source := &countingSource{QuestionSource: NewStaticQuestionSource(nil), err: errors.New("boom")}
	repo := NewQuestionRepository(source, time.Minute)

	if _, err := repo.FetchQuestions(context.Background(), 2); err == nil {
		t.Fatalf("expected error")
	}
	_, _ = repo.FetchQuestions(context.Background(), 2)
	if source.calls != 2 {
		t.Fatalf("errors must not be cached, got %d calls", source.calls)
	}
}

func TestStaticQuestionSourceLimitsAmount(t *testing.T) {
	source := NewStaticQuestionSource(sampleQuestions())
	questions, _ := source.FetchQuestions(context.Background(), 1)
	if len(questions) != 1 {
		t.Fatalf("expected 1 question, got %d", len(questions))
	}
	questions, _ = source.FetchQuestions(context.Background(), 10)
	if len(questions) != 2 {
		t.Fatalf("expected all 2 questions, got %d", len(questions))
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

func TestSampleQuestionsArePlayable(t *testing.T) {
	questions := SampleQuestions()
	if len(questions) < app.DefaultSettings().Questions {
		t.Fatalf("expected at least %d sample questions, got %d", app.DefaultSettings().Questions, len(questions))
	}
	for i, q := range questions {
		if err := q.Validate(); err != nil {
			t.Fatalf("sample question %d: %v", i, err)
		}
	}
	questions[0].IncorrectAnswers[0] = "changed"
	if SampleQuestions()[0].IncorrectAnswers[0] == "changed" {
		t.Fatalf("sample bank mutated through returned slice")
	}
}

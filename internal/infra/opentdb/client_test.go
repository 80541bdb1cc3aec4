package opentdb

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestFetchQuestionsDecodesResults(t *testing.T) {
	var gotQuery string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api.php" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		gotQuery = r.URL.RawQuery
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"response_code": 0,
			"results": [{
				"category": "Science: Computers",
				"type": "multiple",
				"difficulty": "easy",
				"question": "What does &quot;HTML&quot; stand for?",
				"correct_answer": "Hypertext Markup Language",
				"incorrect_answers": ["Hyperlink &amp; Text", "Home Tool Markup Language", "Hyper Tool Markup Language"]
			}]
		}`))
	}))
	defer server.Close()

	client := NewClient(server.URL+"/", Options{Category: 18, Difficulty: "easy"})
	questions, err := client.FetchQuestions(context.Background(), 1)
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if len(questions) != 1 {
		t.Fatalf("expected 1 question, got %d", len(questions))
	}
	q := questions[0]
	if q.Text != `What does "HTML" stand for?` {
		t.Fatalf("question text not unescaped: %q", q.Text)
	}
	if q.IncorrectAnswers[0] != "Hyperlink & Text" {
		t.Fatalf("answer not unescaped: %q", q.IncorrectAnswers[0])
	}
	if err := q.Validate(); err != nil {
		t.Fatalf("decoded question invalid: %v", err)
	}
	for _, want := range []string{"amount=1", "type=multiple", "category=18", "difficulty=easy"} {
		if !strings.Contains(gotQuery, want) {
			t.Fatalf("query %q missing %q", gotQuery, want)
		}
	}
}

func TestFetchQuestionsResponseCodeError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"response_code": 5, "results": []}`))
	}))
	defer server.Close()

	_, err := NewClient(server.URL, Options{}).FetchQuestions(context.Background(), 10)
	if err == nil || !strings.Contains(err.Error(), "rate limited") {
		t.Fatalf("expected rate limit error, got %v", err)
	}
}

func TestFetchQuestionsHTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusServiceUnavailable)
	}))
	defer server.Close()

	if _, err := NewClient(server.URL, Options{}).FetchQuestions(context.Background(), 10); err == nil {
		t.Fatalf("expected error for 503")
	}
}

func TestFetchQuestionsMalformedBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`not json`))
	}))
	defer server.Close()

	if _, err := NewClient(server.URL, Options{}).FetchQuestions(context.Background(), 10); err == nil {
		t.Fatalf("expected decode error")
	}
}

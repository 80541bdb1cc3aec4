package opentdb

import (
	"context"
	"encoding/json"
	"fmt"
	"html"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"trivia-quiz-service/internal/domain"
)

// DefaultBaseURL is the public Open Trivia DB endpoint.
const DefaultBaseURL = "https://opentdb.com"

// Response codes documented by the API.
const (
	codeSuccess          = 0
	codeNoResults        = 1
	codeInvalidParameter = 2
	codeTokenNotFound    = 3
	codeTokenEmpty       = 4
	codeRateLimit        = 5
)

var codeMessages = map[int]string{
	codeNoResults:        "not enough questions for the query",
	codeInvalidParameter: "invalid parameter",
	codeTokenNotFound:    "session token not found",
	codeTokenEmpty:       "session token exhausted",
	codeRateLimit:        "rate limited",
}

// Options narrows the questions requested.
type Options struct {
	Category   int    // 0 means any
	Difficulty string // easy, medium, hard or empty for any
	Timeout    time.Duration
}

// Client fetches multiple-choice questions from the Open Trivia DB API.
type Client struct {
	baseURL string
	opts    Options
	http    *http.Client
}

func NewClient(baseURL string, opts Options) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		opts:    opts,
		http:    &http.Client{Timeout: timeout},
	}
}

type apiResponse struct {
	ResponseCode int         `json:"response_code"`
	Results      []apiResult `json:"results"`
}

type apiResult struct {
	Question         string   `json:"question"`
	CorrectAnswer    string   `json:"correct_answer"`
	IncorrectAnswers []string `json:"incorrect_answers"`
}

// FetchQuestions requests amount multiple-choice questions.
func (c *Client) FetchQuestions(ctx context.Context, amount int) ([]domain.Question, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint(amount), nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request questions: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("request questions: unexpected status %s", resp.Status)
	}

	var body apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decode questions: %w", err)
	}
	if body.ResponseCode != codeSuccess {
		msg, ok := codeMessages[body.ResponseCode]
		if !ok {
			msg = "unknown error"
		}
		return nil, fmt.Errorf("open trivia db response code %d: %s", body.ResponseCode, msg)
	}

	questions := make([]domain.Question, 0, len(body.Results))
	for _, r := range body.Results {
		questions = append(questions, toQuestion(r))
	}
	return questions, nil
}

func (c *Client) endpoint(amount int) string {
	q := url.Values{}
	q.Set("amount", strconv.Itoa(amount))
	q.Set("type", "multiple")
	if c.opts.Category > 0 {
		q.Set("category", strconv.Itoa(c.opts.Category))
	}
	if c.opts.Difficulty != "" {
		q.Set("difficulty", c.opts.Difficulty)
	}
	return c.baseURL + "/api.php?" + q.Encode()
}

// toQuestion decodes the HTML entities the API embeds in every text field.
func toQuestion(r apiResult) domain.Question {
	incorrect := make([]string, len(r.IncorrectAnswers))
	for i, answer := range r.IncorrectAnswers {
		incorrect[i] = html.UnescapeString(answer)
	}
	return domain.Question{
		Text:             html.UnescapeString(r.Question),
		CorrectAnswer:    html.UnescapeString(r.CorrectAnswer),
		IncorrectAnswers: incorrect,
	}
}

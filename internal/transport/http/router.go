package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"trivia-quiz-service/internal/app"
	"trivia-quiz-service/internal/domain"
)

var (
	errInvalidPayload     = errors.New("invalid choose payload")
	errUnsupportedMessage = errors.New("unsupported message type")
)

// NewRouter mounts the health check, the play socket and the leaderboard.
func NewRouter(service *app.QuizService, logger *zap.SugaredLogger) http.Handler {
	ws := NewWSHandler(service, logger)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"https://*", "http://*"},
		AllowedMethods: []string{"GET", "OPTIONS"},
		MaxAge:         300,
	}))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})
	r.Get("/ws", ws.ServeWS)
	r.Get("/leaderboard", leaderboardHandler(service, logger))
	return r
}

type leaderboardResponse struct {
	Records []domain.LeaderboardRecord `json:"records"`
}

func leaderboardHandler(service *app.QuizService, logger *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		records := service.Leaderboard()
		if records == nil {
			records = []domain.LeaderboardRecord{}
		}
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(leaderboardResponse{Records: records}); err != nil && logger != nil {
			logger.Warnw("write leaderboard", "error", err)
		}
	}
}

package cli

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"trivia-quiz-service/internal/app"
	"trivia-quiz-service/internal/config"
	"trivia-quiz-service/internal/infra/memory"
	"trivia-quiz-service/internal/infra/opentdb"
	"trivia-quiz-service/internal/infra/postgres"
	redisinfra "trivia-quiz-service/internal/infra/redis"
	"trivia-quiz-service/internal/logging"
	transport "trivia-quiz-service/internal/transport/http"
)

// NewStartCmd builds the CLI subcommand to start the server.
func NewStartCmd(configPath, port *string) *cobra.Command {
	return &cobra.Command{
		Use:   "start",
		Short: "Start the trivia server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cmd.Context(), *configPath, *port)
		},
	}
}

// backends holds the optional external clients; nil fields are not configured.
type backends struct {
	redis *redis.Client
	pool  *pgxpool.Pool
}

func (b backends) close() {
	if b.redis != nil {
		_ = b.redis.Close()
	}
	if b.pool != nil {
		b.pool.Close()
	}
}

func runServer(ctx context.Context, configPath, portFlag string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	logger := logging.New(cfg.Log.Level)
	defer logger.Sync()

	b, err := connect(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer b.close()

	service, err := buildService(ctx, cfg, b, logger)
	if err != nil {
		return err
	}
	if err := service.LoadLeaderboard(ctx); err != nil {
		logger.Warnw("leaderboard not restored", "error", err)
	}

	finalPort := portFlag
	if finalPort == "" {
		finalPort = cfg.Server.Port
	}

	server := &http.Server{
		Addr:         ":" + finalPort,
		Handler:      transport.NewRouter(service, logger),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	go func() {
		logger.Infow("starting trivia service", "port", finalPort, "source", cfg.Questions.Source)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Errorw("server failed", "error", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-stop:
		logger.Infow("shutting down server")
	case <-ctx.Done():
		logger.Infow("context canceled, shutting down server")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

func connect(ctx context.Context, cfg config.Config, logger *zap.SugaredLogger) (backends, error) {
	var b backends
	if cfg.Redis.Addr != "" {
		b.redis = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := b.redis.Ping(ctx).Err(); err != nil {
			b.close()
			return backends{}, fmt.Errorf("redis: %w", err)
		}
	}
	if cfg.Postgres.URL != "" {
		if err := runMigrations(ctx, cfg, logger); err != nil {
			b.close()
			return backends{}, err
		}
		pool, err := pgxpool.Connect(ctx, cfg.Postgres.URL)
		if err != nil {
			b.close()
			return backends{}, fmt.Errorf("postgres: %w", err)
		}
		b.pool = pool
	}
	return b, nil
}

func buildService(ctx context.Context, cfg config.Config, b backends, logger *zap.SugaredLogger) (*app.QuizService, error) {
	questions, err := questionSource(ctx, cfg, b, logger)
	if err != nil {
		return nil, err
	}

	var sessions app.SessionRepository
	if b.redis != nil {
		sessions = redisinfra.NewSessionStore(b.redis, config.TTLDuration(cfg.Redis.TTL, 10*time.Minute))
	} else {
		sessions = memory.NewSessionStore()
	}

	var records app.LeaderboardRepository
	switch {
	case b.pool != nil:
		records = postgres.NewLeaderboardRepository(b.pool)
	case b.redis != nil:
		records = redisinfra.NewLeaderboardRepository(b.redis)
	default:
		records = memory.NewLeaderboardRepository()
	}

	return app.NewQuizService(sessions, questions, records, gameSettings(cfg), logger), nil
}

func questionSource(ctx context.Context, cfg config.Config, b backends, logger *zap.SugaredLogger) (app.QuestionSource, error) {
	var source app.QuestionSource
	switch cfg.Questions.Source {
	case config.SourceStatic:
		bank := memory.SampleQuestions()
		if err := checkBankSize(config.SourceStatic, len(bank), cfg.Game.Questions); err != nil {
			return nil, err
		}
		source = memory.NewStaticQuestionSource(bank)
	case config.SourcePostgres:
		loader := postgres.NewQuestionLoader(b.pool)
		n, err := seedQuestions(ctx, loader, logger)
		if err != nil {
			return nil, err
		}
		if err := checkBankSize(config.SourcePostgres, n, cfg.Game.Questions); err != nil {
			return nil, err
		}
		source = loader
	default:
		source = opentdb.NewClient(cfg.Questions.URL, opentdb.Options{
			Category:   cfg.Questions.Category,
			Difficulty: cfg.Questions.Difficulty,
			Timeout:    config.TTLDuration(cfg.Questions.Timeout, 10*time.Second),
		})
	}

	ttl := config.TTLDuration(cfg.Questions.CacheTTL, 0)
	if ttl <= 0 {
		return source, nil
	}
	if b.redis != nil {
		return redisinfra.NewQuestionRepository(b.redis, source, ttl), nil
	}
	return memory.NewQuestionRepository(source, ttl), nil
}

// seedQuestions fills an empty question bank with the built-in questions and
// returns the bank size.
func seedQuestions(ctx context.Context, loader *postgres.QuestionLoader, logger *zap.SugaredLogger) (int, error) {
	n, err := loader.Count(ctx)
	if err != nil {
		return 0, err
	}
	if n > 0 {
		return n, nil
	}
	bank := memory.SampleQuestions()
	if err := loader.InsertQuestions(ctx, bank); err != nil {
		return 0, err
	}
	logger.Infow("seeded question bank", "questions", len(bank))
	return len(bank), nil
}

// checkBankSize rejects a finite question bank that cannot fill one game.
func checkBankSize(source string, have, want int) error {
	if have < want {
		return fmt.Errorf("questions.source %q holds %d questions, game.questions needs %d", source, have, want)
	}
	return nil
}

func gameSettings(cfg config.Config) app.Settings {
	settings := app.DefaultSettings()
	settings.Questions = cfg.Game.Questions
	settings.SecondsPerQuestion = cfg.Game.SecondsPerQuestion
	settings.Skips = cfg.Game.Skips
	settings.Lives = cfg.Game.Lives
	settings.PointsPerQuestion = cfg.Game.PointsPerQuestion
	return settings
}

package cli

import (
	"context"
	"strings"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"trivia-quiz-service/internal/config"
	"trivia-quiz-service/internal/infra/memory"
	"trivia-quiz-service/internal/infra/opentdb"
	redisinfra "trivia-quiz-service/internal/infra/redis"
)

func TestGameSettingsFromConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Game.Questions = 5
	cfg.Game.Lives = 1
	cfg.Game.PointsPerQuestion = 25

	settings := gameSettings(cfg)
	if settings.Questions != 5 || settings.Lives != 1 || settings.PointsPerQuestion != 25 {
		t.Fatalf("config not mapped: %+v", settings)
	}
	if settings.SecondsPerQuestion != 20 || settings.Skips != 3 {
		t.Fatalf("defaults not kept: %+v", settings)
	}
}

func TestQuestionSourceSelection(t *testing.T) {
	logger := zap.NewNop().Sugar()
	ctx := context.Background()

	cfg := config.Default()
	cfg.Questions.Source = config.SourceStatic
	source, err := questionSource(ctx, cfg, backends{}, logger)
	if err != nil {
		t.Fatalf("static source: %v", err)
	}
	if _, ok := source.(*memory.StaticQuestionSource); !ok {
		t.Fatalf("expected static source, got %T", source)
	}

	cfg.Questions.Source = config.SourceOpenTDB
	source, _ = questionSource(ctx, cfg, backends{}, logger)
	if _, ok := source.(*opentdb.Client); !ok {
		t.Fatalf("expected opentdb client, got %T", source)
	}

	cfg.Questions.CacheTTL = "1m"
	source, _ = questionSource(ctx, cfg, backends{}, logger)
	if _, ok := source.(*memory.QuestionRepository); !ok {
		t.Fatalf("expected memory cache, got %T", source)
	}

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()
	source, _ = questionSource(ctx, cfg, backends{redis: client}, logger)
	if _, ok := source.(*redisinfra.QuestionRepository); !ok {
		t.Fatalf("expected redis cache, got %T", source)
	}
}

func TestBuildServicePlaysStaticGame(t *testing.T) {
	cfg := config.Default()
	cfg.Questions.Source = config.SourceStatic

	service, err := buildService(context.Background(), cfg, backends{}, zap.NewNop().Sugar())
	if err != nil {
		t.Fatalf("build service: %v", err)
	}
	game, err := service.Start(context.Background(), "Alice")
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	defer service.Leave(context.Background(), game.ID())

	snapshot := game.Snapshot()
	if snapshot.TotalQuestions != cfg.Game.Questions || snapshot.Lives != cfg.Game.Lives {
		t.Fatalf("unexpected snapshot %+v", snapshot)
	}
}

func TestStaticSourceRejectsOversizedGame(t *testing.T) {
	cfg := config.Default()
	cfg.Questions.Source = config.SourceStatic
	cfg.Game.Questions = len(memory.SampleQuestions()) + 3
	if err := config.Validate(cfg); err != nil {
		t.Fatalf("config should pass field validation: %v", err)
	}

	_, err := buildService(context.Background(), cfg, backends{}, zap.NewNop().Sugar())
	if err == nil || !strings.Contains(err.Error(), "game.questions needs") {
		t.Fatalf("expected startup to fail on a too small bank, got %v", err)
	}

	cfg.Game.Questions = len(memory.SampleQuestions())
	if _, err := buildService(context.Background(), cfg, backends{}, zap.NewNop().Sugar()); err != nil {
		t.Fatalf("bank-sized game should start: %v", err)
	}
}

func TestCheckBankSize(t *testing.T) {
	tests := []struct {
		name      string
		have      int
		want      int
		wantError bool
	}{
		{name: "exact", have: 10, want: 10},
		{name: "larger bank", have: 12, want: 10},
		{name: "too small", have: 12, want: 15, wantError: true},
		{name: "empty", have: 0, want: 1, wantError: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := checkBankSize(config.SourcePostgres, tt.have, tt.want)
			if (err != nil) != tt.wantError {
				t.Fatalf("checkBankSize(%d, %d) = %v", tt.have, tt.want, err)
			}
		})
	}
}

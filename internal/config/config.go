package config

import (
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Question sources.
const (
	SourceOpenTDB  = "opentdb"
	SourcePostgres = "postgres"
	SourceStatic   = "static"
)

type Config struct {
	Server struct {
		Port string `yaml:"port"`
	} `yaml:"server"`
	Log struct {
		Level string `yaml:"level" validate:"omitempty,oneof=debug info warn error"`
	} `yaml:"log"`
	Game struct {
		Questions          int `yaml:"questions" validate:"min=1,max=50"`
		SecondsPerQuestion int `yaml:"seconds_per_question" validate:"min=1"`
		Skips              int `yaml:"skips" validate:"min=0"`
		Lives              int `yaml:"lives" validate:"min=1"`
		PointsPerQuestion  int `yaml:"points_per_question" validate:"min=1"`
	} `yaml:"game"`
	Questions struct {
		Source     string `yaml:"source" validate:"oneof=opentdb postgres static"`
		URL        string `yaml:"url" validate:"omitempty,url"`
		Category   int    `yaml:"category" validate:"min=0"`
		Difficulty string `yaml:"difficulty" validate:"omitempty,oneof=easy medium hard"`
		Timeout    string `yaml:"timeout"`
		CacheTTL   string `yaml:"cache_ttl"`
	} `yaml:"questions"`
	Redis struct {
		Addr     string `yaml:"addr"`
		Password string `yaml:"password"`
		DB       int    `yaml:"db"`
		TTL      string `yaml:"ttl"`
	} `yaml:"redis"`
	Postgres struct {
		URL string `yaml:"url"`
	} `yaml:"postgres"`
}

// Default returns the configuration used for every field the YAML file leaves out.
func Default() Config {
	cfg := Config{}
	cfg.Server.Port = "8080"
	cfg.Log.Level = "info"
	cfg.Game.Questions = 10
	cfg.Game.SecondsPerQuestion = 20
	cfg.Game.Skips = 3
	cfg.Game.Lives = 3
	cfg.Game.PointsPerQuestion = 10
	cfg.Questions.Source = SourceOpenTDB
	cfg.Questions.URL = "https://opentdb.com"
	cfg.Questions.Timeout = "10s"
	cfg.Redis.TTL = "10m"
	return cfg
}

// Load reads YAML config from path on top of Default and validates it.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	if err := Validate(cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate checks field ranges and cross-field requirements.
func Validate(cfg Config) error {
	v := validator.New(validator.WithRequiredStructEnabled())
	if err := v.Struct(cfg); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if cfg.Questions.Source == SourcePostgres && cfg.Postgres.URL == "" {
		return fmt.Errorf("invalid config: questions.source %q needs postgres.url", SourcePostgres)
	}
	return nil
}

// TTLDuration parses a duration string or returns the fallback if empty.
func TTLDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}
	if d, err := time.ParseDuration(raw); err == nil {
		return d
	}
	return fallback
}

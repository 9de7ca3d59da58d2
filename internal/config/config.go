package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"quiz-league/internal/domain"
)

type Config struct {
	Server  ServerConfig
	DB      DBConfig
	Redis   RedisConfig
	Logger  LoggerConfig
	JWT     JWTConfig
	Week    WeekConfig
	Scoring ScoringConfig
	Cache   CacheConfig
}

type ServerConfig struct {
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type DBConfig struct {
	Host         string
	Port         int
	User         string
	Password     string
	DBName       string
	SSLMode      string
	MaxOpenConns int
}

type RedisConfig struct {
	Address  string
	Password string
	DB       int
}

type LoggerConfig struct {
	Level string
	Env   string
}

type JWTConfig struct {
	SecretKey      string
	AccessTokenTTL time.Duration
}

type WeekConfig struct {
	// Timezone is the IANA zone in which weeks and days are computed.
	Timezone string
}

type ScoringConfig struct {
	PointsPerCorrect int
	AnswersPerQuiz   int
}

type CacheConfig struct {
	Enabled      bool
	QuestionsTTL time.Duration
}

// EnvPrefix is prepended to every environment override, e.g. APP_DB_HOST.
const EnvPrefix = "APP"

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8090)
	v.SetDefault("server.read_timeout", "10s")
	v.SetDefault("server.write_timeout", "10s")

	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.user", "quiz")
	v.SetDefault("db.name", "quizleague")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.max_open_conns", 10)

	v.SetDefault("redis.address", "localhost:6379")
	v.SetDefault("redis.db", 0)

	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.env", "development")

	v.SetDefault("jwt.access_token_ttl", "24h")

	v.SetDefault("week.timezone", "America/New_York")

	v.SetDefault("scoring.points_per_correct", 10)
	v.SetDefault("scoring.answers_per_quiz", 3)

	v.SetDefault("cache.enabled", true)
	v.SetDefault("cache.questions_ttl", "5m")
}

// LoadConfig reads config.yaml from the usual locations, a .env file if one
// exists, and APP_* environment overrides.
func LoadConfig() (*Config, error) {
	// A missing .env is normal outside local development.
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	if os.Getenv("ENV") == "test" {
		v.AddConfigPath("../../config")
		v.AddConfigPath("../../")
	} else {
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	return load(v)
}

// LoadConfigFromFile reads configuration from an explicit file path.
func LoadConfigFromFile(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	return load(v)
}

func load(v *viper.Viper) (*Config, error) {
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	if configFile := v.ConfigFileUsed(); configFile != "" {
		absPath, _ := filepath.Abs(configFile)
		fmt.Printf("Using config file: %s\n", absPath)
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:         v.GetInt("server.port"),
			ReadTimeout:  v.GetDuration("server.read_timeout"),
			WriteTimeout: v.GetDuration("server.write_timeout"),
		},
		DB: DBConfig{
			Host:         v.GetString("db.host"),
			Port:         v.GetInt("db.port"),
			User:         v.GetString("db.user"),
			Password:     v.GetString("db.password"),
			DBName:       v.GetString("db.name"),
			SSLMode:      v.GetString("db.sslmode"),
			MaxOpenConns: v.GetInt("db.max_open_conns"),
		},
		Redis: RedisConfig{
			Address:  v.GetString("redis.address"),
			Password: v.GetString("redis.password"),
			DB:       v.GetInt("redis.db"),
		},
		Logger: LoggerConfig{
			Level: v.GetString("logger.level"),
			Env:   v.GetString("logger.env"),
		},
		JWT: JWTConfig{
			SecretKey:      v.GetString("jwt.secret_key"),
			AccessTokenTTL: v.GetDuration("jwt.access_token_ttl"),
		},
		Week: WeekConfig{
			Timezone: v.GetString("week.timezone"),
		},
		Scoring: ScoringConfig{
			PointsPerCorrect: v.GetInt("scoring.points_per_correct"),
			AnswersPerQuiz:   v.GetInt("scoring.answers_per_quiz"),
		},
		Cache: CacheConfig{
			Enabled:      v.GetBool("cache.enabled"),
			QuestionsTTL: v.GetDuration("cache.questions_ttl"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects settings the services cannot run with.
func (c *Config) Validate() error {
	if c.Scoring.AnswersPerQuiz <= 0 {
		return fmt.Errorf("scoring.answers_per_quiz must be positive, got %d", c.Scoring.AnswersPerQuiz)
	}
	if c.Scoring.PointsPerCorrect < 0 {
		return fmt.Errorf("scoring.points_per_correct must not be negative, got %d", c.Scoring.PointsPerCorrect)
	}
	if _, err := time.LoadLocation(c.Week.Timezone); err != nil {
		return fmt.Errorf("invalid week.timezone %q: %w", c.Week.Timezone, err)
	}
	return nil
}

// GetDSN returns the PostgreSQL connection URL.
func (c *Config) GetDSN() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.DB.User, c.DB.Password),
		Host:     fmt.Sprintf("%s:%d", c.DB.Host, c.DB.Port),
		Path:     "/" + c.DB.DBName,
		RawQuery: "sslmode=" + c.DB.SSLMode,
	}
	return u.String()
}

// CacheSettings returns the immutable settings handed to the question cache.
func (c *Config) CacheSettings() domain.CacheSettings {
	return domain.CacheSettings{
		Enabled:      c.Cache.Enabled,
		QuestionsTTL: c.Cache.QuestionsTTL,
	}
}

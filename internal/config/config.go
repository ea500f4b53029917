package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	DB      DBConfig
	Server  ServerConfig
	Redis   RedisConfig
	Cache   CacheConfig
	LLM     LLMConfig
	Fetcher FetcherConfig
	Quiz    QuizConfig
	Logger  LoggerConfig
}

type RedisConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Address  string `yaml:"address"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type CacheConfig struct {
	QuizTTL time.Duration `yaml:"quiz_ttl"`
}

type DBConfig struct {
	Host            string
	Port            int
	User            string
	Password        string
	DBName          string
	SSLMode         string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

type ServerConfig struct {
	Port           int
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	BodyLimit      int
	AllowedOrigins []string
}

// LLMConfig configures the Gemini text model used for quiz generation.
type LLMConfig struct {
	APIKey string `yaml:"api_key"`
	Model  string `yaml:"model"`
}

type FetcherConfig struct {
	Timeout      time.Duration
	UserAgent    string
	MaxBodyBytes int64
}

// QuizConfig bounds how many questions are requested from the model.
type QuizConfig struct {
	DefaultQuestions int
	MinQuestions     int
	MaxQuestions     int
}

type LoggerConfig struct {
	Level string
	Env   string
}

const defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8000)
	v.SetDefault("server.read_timeout", 20)
	v.SetDefault("server.write_timeout", 120)
	v.SetDefault("server.body_limit", 1024*1024)
	v.SetDefault("server.allowed_origins", []string{
		"http://localhost:5173",
		"http://localhost:3000",
		"http://127.0.0.1:5173",
		"http://127.0.0.1:3000",
	})

	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.user", "postgres")
	v.SetDefault("db.password", "password")
	v.SetDefault("db.name", "wiki_quiz_db")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.max_open_conns", 25)
	v.SetDefault("db.max_idle_conns", 10)
	v.SetDefault("db.conn_max_lifetime", time.Hour)

	v.SetDefault("redis.enabled", true)
	v.SetDefault("redis.address", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("cache.quiz_ttl", 24*time.Hour)

	v.SetDefault("llm.api_key", "")
	v.SetDefault("llm.model", "gemini-2.5-flash")

	v.SetDefault("fetcher.timeout", 15*time.Second)
	v.SetDefault("fetcher.user_agent", defaultUserAgent)
	v.SetDefault("fetcher.max_body_bytes", 10*1024*1024)

	v.SetDefault("quiz.default_questions", 7)
	v.SetDefault("quiz.min_questions", 5)
	v.SetDefault("quiz.max_questions", 10)

	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.env", "development")
}

// LoadConfig reads config.yaml (if present) and applies environment overrides.
// Keys map to env vars by upper-casing and replacing dots, e.g. llm.api_key -> LLM_API_KEY.
func LoadConfig() (*Config, error) {
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

	setDefaults(v)
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
		DB: DBConfig{
			Host:     v.GetString("db.host"),
			Port:     v.GetInt("db.port"),
			User:     v.GetString("db.user"),
			Password: v.GetString("db.password"),
			DBName:   v.GetString("db.name"),
			SSLMode:  v.GetString("db.sslmode"),

			MaxOpenConns:    v.GetInt("db.max_open_conns"),
			MaxIdleConns:    v.GetInt("db.max_idle_conns"),
			ConnMaxLifetime: v.GetDuration("db.conn_max_lifetime"),
		},
		Server: ServerConfig{
			Port:           v.GetInt("server.port"),
			ReadTimeout:    v.GetDuration("server.read_timeout") * time.Second,
			WriteTimeout:   v.GetDuration("server.write_timeout") * time.Second,
			BodyLimit:      v.GetInt("server.body_limit"),
			AllowedOrigins: v.GetStringSlice("server.allowed_origins"),
		},
		Redis: RedisConfig{
			Enabled:  v.GetBool("redis.enabled"),
			Address:  v.GetString("redis.address"),
			Password: v.GetString("redis.password"),
			DB:       v.GetInt("redis.db"),
		},
		Cache: CacheConfig{
			QuizTTL: v.GetDuration("cache.quiz_ttl"),
		},
		LLM: LLMConfig{
			APIKey: v.GetString("llm.api_key"),
			Model:  v.GetString("llm.model"),
		},
		Fetcher: FetcherConfig{
			Timeout:      v.GetDuration("fetcher.timeout"),
			UserAgent:    v.GetString("fetcher.user_agent"),
			MaxBodyBytes: v.GetInt64("fetcher.max_body_bytes"),
		},
		Quiz: QuizConfig{
			DefaultQuestions: v.GetInt("quiz.default_questions"),
			MinQuestions:     v.GetInt("quiz.min_questions"),
			MaxQuestions:     v.GetInt("quiz.max_questions"),
		},
		Logger: LoggerConfig{
			Level: v.GetString("logger.level"),
			Env:   v.GetString("logger.env"),
		},
	}

	// The Gemini SDKs conventionally read this name; honour it when llm.api_key is unset.
	if cfg.LLM.APIKey == "" {
		cfg.LLM.APIKey = os.Getenv("GEMINI_API_KEY")
	}

	return cfg, nil
}

// GetDSN returns a Postgres connection URL for the pgx driver.
func (c *Config) GetDSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.DB.User,
		c.DB.Password,
		c.DB.Host,
		c.DB.Port,
		c.DB.DBName,
		c.DB.SSLMode,
	)
}

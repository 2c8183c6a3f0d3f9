package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server ServerConfig
	DB     DBConfig
	Auth   AuthConfig
	Claude ClaudeConfig
	AWS    AWSConfig
	Log    LogConfig
}

type ServerConfig struct {
	Port    string
	GinMode string
}

type DBConfig struct {
	Driver     string // "postgres" | "sqlite"
	Host       string
	Port       int
	User       string
	Password   string
	Name       string
	SQLitePath string
}

type AuthConfig struct {
	JWTSecret         string
	TokenTTL          time.Duration
	PasswordMinLength int
}

type ClaudeConfig struct {
	APIKey            string
	APIURL            string
	Model             string
	SuggestionTimeout time.Duration
	MealPlanTimeout   time.Duration
}

type AWSConfig struct {
	Region string
}

type LogConfig struct {
	Level string
}

// Load reads .env (if present) and the process environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	port, _ := strconv.Atoi(getEnv("DB_PORT", "5432"))
	minLen, _ := strconv.Atoi(getEnv("PASSWORD_MIN_LENGTH", "8"))

	return &Config{
		Server: ServerConfig{
			Port:    getEnv("PORT", "8080"),
			GinMode: getEnv("GIN_MODE", "release"),
		},
		DB: DBConfig{
			Driver:     strings.ToLower(getEnv("DB_DRIVER", "postgres")),
			Host:       getEnv("DB_HOST", "localhost"),
			Port:       port,
			User:       getEnv("DB_USER", "postgres"),
			Password:   getEnv("DB_PASSWORD", ""),
			Name:       getEnv("DB_NAME", "nutrakids"),
			SQLitePath: getEnv("SQLITE_PATH", "nutrakids.db"),
		},
		Auth: AuthConfig{
			JWTSecret:         getEnv("JWT_SECRET", ""),
			TokenTTL:          getDuration("JWT_TTL", 72*time.Hour),
			PasswordMinLength: minLen,
		},
		Claude: ClaudeConfig{
			APIKey:            getEnv("CLAUDE_API_KEY", ""),
			APIURL:            getEnv("CLAUDE_API_URL", "https://api.anthropic.com/v1/messages"),
			Model:             getEnv("CLAUDE_MODEL", "claude-opus-4-5-20251101"),
			SuggestionTimeout: getDuration("CLASSIFIER_TIMEOUT", 20*time.Second),
			MealPlanTimeout:   getDuration("MEAL_PLAN_TIMEOUT", 60*time.Second),
		},
		AWS: AWSConfig{
			Region: getEnv("AWS_REGION", ""),
		},
		Log: LogConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
	}, nil
}

func getEnv(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func getDuration(key string, def time.Duration) time.Duration {
	v := getEnv(key, "")
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		return def
	}
	return d
}

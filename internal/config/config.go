package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"futsal-app/internal/model"
)

type ServerConfig struct {
	Addr string
	// Lambda is set when running behind API Gateway.
	Lambda      bool
	CORSOrigins []string
}

type StoreConfig struct {
	PostgresDSN           string
	PostgresMigrationsDir string
	SQLitePath            string
	SQLiteMigrationsDir   string
}

type RedisConfig struct {
	URL string
}

type AuthConfig struct {
	AdminEmail       string
	AdminPassword    string
	LoginMaxAttempts int
	LoginWindow      time.Duration
}

// Config holds all application configuration.
type Config struct {
	App        string
	DefaultDay model.DayCategory
	Server     ServerConfig
	Store      StoreConfig
	Redis      RedisConfig
	Auth       AuthConfig
}

func (c *Config) IsProd() bool {
	return strings.EqualFold(c.App, "prod")
}

// LoadConfig reads the environment. Malformed numbers, durations and day
// names fall back to their defaults.
func LoadConfig() *Config {
	return &Config{
		App:        strings.ToLower(strings.TrimSpace(getEnv("APP", "dev"))),
		DefaultDay: getDay("DEFAULT_DAY", model.DayMonday),
		Server: ServerConfig{
			Addr:        getEnv("ADDR", ":8080"),
			Lambda:      os.Getenv("AWS_LAMBDA_FUNCTION_NAME") != "",
			CORSOrigins: getList("CORS_ORIGINS", []string{"*"}),
		},
		Store: StoreConfig{
			PostgresDSN:           strings.TrimSpace(os.Getenv("POSTGRES_DSN")),
			PostgresMigrationsDir: os.Getenv("POSTGRES_MIGRATIONS_DIR"),
			SQLitePath:            strings.TrimSpace(os.Getenv("DB_PATH")),
			SQLiteMigrationsDir:   os.Getenv("DB_MIGRATIONS_DIR"),
		},
		Redis: RedisConfig{
			URL: strings.TrimSpace(os.Getenv("REDIS_URL")),
		},
		Auth: AuthConfig{
			AdminEmail:       strings.TrimSpace(os.Getenv("ADMIN_EMAIL")),
			AdminPassword:    os.Getenv("ADMIN_PASSWORD"),
			LoginMaxAttempts: getInt("LOGIN_MAX_ATTEMPTS", 5),
			LoginWindow:      getDuration("LOGIN_WINDOW", 15*time.Minute),
		},
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getInt(key string, defaultValue int) int {
	value, err := strconv.Atoi(strings.TrimSpace(os.Getenv(key)))
	if err != nil || value <= 0 {
		return defaultValue
	}
	return value
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	value, err := time.ParseDuration(strings.TrimSpace(os.Getenv(key)))
	if err != nil || value <= 0 {
		return defaultValue
	}
	return value
}

func getList(key string, defaultValue []string) []string {
	out := []string{}
	for _, item := range strings.Split(os.Getenv(key), ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}

func getDay(key string, defaultValue model.DayCategory) model.DayCategory {
	if day, ok := model.ParseDay(os.Getenv(key)); ok {
		return day
	}
	return defaultValue
}

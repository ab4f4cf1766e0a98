package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Addr                     string
	DBPath                   string
	TemplatesDir             string
	LogLevel                 string
	ImportWorkerCount        int
	ImportQueueSize          int
	ImportMaxBytes           int64
	PracticeDefaultQuestions int
	PracticeMaxQuestions     int
	RandomSeed               int64
}

// Load reads configuration from a .env file (if present) and environment variables,
// applying sensible defaults when values are missing or invalid.
func Load() Config {
	// Ignore error so the app still starts when .env is absent in production.
	_ = godotenv.Load()

	return Config{
		Addr:                     envOr("ADDR", ":8080"),
		DBPath:                   envOr("DB_PATH", "file:eassylang.db"),
		TemplatesDir:             envOr("TEMPLATES_DIR", "web/templates"),
		LogLevel:                 envOr("LOG_LEVEL", "INFO"),
		ImportWorkerCount:        envIntOr("IMPORT_WORKER_COUNT", 1),
		ImportQueueSize:          envIntOr("IMPORT_QUEUE_SIZE", 16),
		ImportMaxBytes:           int64(envIntOr("IMPORT_MAX_BYTES", 2*1024*1024)),
		PracticeDefaultQuestions: envIntOr("PRACTICE_DEFAULT_QUESTIONS", 10),
		PracticeMaxQuestions:     envIntOr("PRACTICE_MAX_QUESTIONS", 50),
		RandomSeed:               int64(envIntOr("RANDOM_SEED", 0)),
	}
}

// Validate reports every invalid setting at once.
func (c Config) Validate() error {
	var problems []string

	if strings.TrimSpace(c.Addr) == "" {
		problems = append(problems, "ADDR cannot be empty")
	}
	if strings.TrimSpace(c.DBPath) == "" {
		problems = append(problems, "DB_PATH cannot be empty")
	}
	if strings.TrimSpace(c.TemplatesDir) == "" {
		problems = append(problems, "TEMPLATES_DIR cannot be empty")
	}
	switch strings.ToUpper(c.LogLevel) {
	case "DEBUG", "INFO", "WARN", "WARNING", "ERROR":
	default:
		problems = append(problems, fmt.Sprintf("LOG_LEVEL must be one of DEBUG, INFO, WARN, ERROR (got %q)", c.LogLevel))
	}
	if c.ImportWorkerCount <= 0 {
		problems = append(problems, "IMPORT_WORKER_COUNT must be positive")
	}
	if c.ImportQueueSize <= 0 {
		problems = append(problems, "IMPORT_QUEUE_SIZE must be positive")
	}
	if c.ImportMaxBytes <= 0 {
		problems = append(problems, "IMPORT_MAX_BYTES must be positive")
	}
	if c.PracticeMaxQuestions <= 0 {
		problems = append(problems, "PRACTICE_MAX_QUESTIONS must be positive")
	}
	if c.PracticeDefaultQuestions < 1 || c.PracticeDefaultQuestions > c.PracticeMaxQuestions {
		problems = append(problems, fmt.Sprintf("PRACTICE_DEFAULT_QUESTIONS must be between 1 and %d", c.PracticeMaxQuestions))
	}

	if len(problems) > 0 {
		return fmt.Errorf("invalid configuration: %s", strings.Join(problems, "; "))
	}
	return nil
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envIntOr(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
		log.Printf("invalid value for %s=%q, using default %d", key, v, def)
	}
	return def
}

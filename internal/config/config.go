package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const defaultAIBaseURL = "https://generativelanguage.googleapis.com/v1beta/openai"

type Config struct {
	Port          string
	AllowedOrigin string
	LogLevel      string
	// Generative fallback
	AIAPIKey     string
	AIBaseURL    string
	AIModel      string
	AITimeout    time.Duration
	AIPromptFile string
	// SMTP
	SMTPHost     string
	SMTPPort     int
	SMTPUser     string
	SMTPPassword string
	MailFromName string
	AdminEmail   string
	// Database
	DatabaseURL   string
	MigrationsDir string
	// Background tasks
	TaskWorkers    int
	TaskQueueSize  int
	TaskMaxTries   int
	TaskTimeout    time.Duration
	DeadLetterFile string
	// Webhook calls per minute, shared by all callers
	RateLimitPerMinute int

	// Warnings about missing settings, for the caller to log once its
	// logger is configured.
	Warnings []string
}

// Load reads .env and the environment. It does not log, so it can run
// before the logger is configured from LOG_LEVEL.
func Load() Config {
	_ = godotenv.Load()
	cfg := Config{
		Port:               getEnvDefault("PORT", "5000"),
		AllowedOrigin:      getEnvDefault("ALLOWED_ORIGIN", "*"),
		LogLevel:           getEnvDefault("LOG_LEVEL", "info"),
		AIAPIKey:           firstEnv("AI_API_KEY", "GEMINI_API_KEY"),
		AIBaseURL:          getEnvDefault("AI_BASE_URL", defaultAIBaseURL),
		AIModel:            getEnvDefault("AI_MODEL", "gemini-flash-latest"),
		AITimeout:          getEnvDurationDefault("AI_TIMEOUT", 4*time.Second),
		AIPromptFile:       getEnvDefault("AI_PROMPT_FILE", "./prompts/fallback.yaml"),
		SMTPHost:           getEnvDefault("SMTP_HOST", "smtp.gmail.com"),
		SMTPPort:           getEnvIntDefault("SMTP_PORT", 587),
		SMTPUser:           os.Getenv("SMTP_USER"),
		SMTPPassword:       os.Getenv("SMTP_PASS"),
		MailFromName:       getEnvDefault("MAIL_FROM_NAME", "Saylani Bot"),
		AdminEmail:         os.Getenv("ADMIN_EMAIL"),
		DatabaseURL:        os.Getenv("DB_URL"),
		MigrationsDir:      os.Getenv("MIGRATIONS_DIR"),
		TaskWorkers:        getEnvIntDefault("TASK_WORKERS", 4),
		TaskQueueSize:      getEnvIntDefault("TASK_QUEUE_SIZE", 256),
		TaskMaxTries:       getEnvIntDefault("TASK_MAX_TRIES", 3),
		TaskTimeout:        getEnvDurationDefault("TASK_TIMEOUT", 20*time.Second),
		DeadLetterFile:     os.Getenv("DEAD_LETTER_FILE"),
		RateLimitPerMinute: getEnvIntDefault("RATE_LIMIT_PER_MINUTE", 600),
	}
	if cfg.AIAPIKey == "" {
		cfg.Warnings = append(cfg.Warnings, "AI_API_KEY is not set; fallback answers will use the apology text")
	}
	if cfg.SMTPUser == "" || cfg.SMTPPassword == "" {
		cfg.Warnings = append(cfg.Warnings, "SMTP_USER/SMTP_PASS not set; emails will be logged and dropped")
	}
	if cfg.AdminEmail == "" {
		cfg.AdminEmail = cfg.SMTPUser
	}
	return cfg
}

// SMTPEnabled reports whether enough settings exist to submit mail.
func (c Config) SMTPEnabled() bool {
	return c.SMTPHost != "" && c.SMTPUser != "" && c.SMTPPassword != ""
}

func getEnvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func firstEnv(keys ...string) string {
	for _, k := range keys {
		if v := strings.TrimSpace(os.Getenv(k)); v != "" {
			return v
		}
	}
	return ""
}

func getEnvIntDefault(key string, def int) int {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return def
}

// getEnvDurationDefault accepts Go durations ("4s") or bare seconds ("4").
func getEnvDurationDefault(key string, def time.Duration) time.Duration {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	if d, err := time.ParseDuration(v); err == nil && d > 0 {
		return d
	}
	if n, err := strconv.Atoi(v); err == nil && n > 0 {
		return time.Duration(n) * time.Second
	}
	return def
}

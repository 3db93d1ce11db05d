package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	// Server configuration
	Port            string        `json:"port"`
	Env             string        `json:"env"`
	ShutdownTimeout time.Duration `json:"shutdown_timeout"`

	// Source configuration
	SourcesPath string `json:"sources_path"`

	// Refresh intervals by priority
	HighPriorityInterval   time.Duration `json:"high_priority_interval"`
	NormalPriorityInterval time.Duration `json:"normal_priority_interval"`
	LowPriorityInterval    time.Duration `json:"low_priority_interval"`

	// Fetching
	FeedTimeout     time.Duration `json:"feed_timeout"`
	ScrapeTimeout   time.Duration `json:"scrape_timeout"`
	MaxRetries      int           `json:"max_retries"`
	RetryDelay      time.Duration `json:"retry_delay"`
	ScrapeDelay     time.Duration `json:"scrape_delay"`
	MaxItemsPerFeed int           `json:"max_items_per_feed"`
	MaxConcurrency  int           `json:"max_concurrency"`
	UserAgent       string        `json:"user_agent"`

	// Scheduling
	CronSchedule string `json:"cron_schedule"`

	// Reports
	OutputDir        string `json:"output_dir"`
	ReportNamePrefix string `json:"report_name_prefix"`

	// Email delivery
	SMTPHost     string   `json:"smtp_host"`
	SMTPPort     int      `json:"smtp_port"`
	SMTPUser     string   `json:"smtp_user"`
	SMTPPassword string   `json:"-"`
	SMTPUseTLS   bool     `json:"smtp_use_tls"`
	EmailFrom    string   `json:"email_from"`
	EmailTo      []string `json:"email_to"`
	EmailSubject string   `json:"email_subject"`

	// Logging
	LogLevel string `json:"log_level"`
	LogFile  string `json:"log_file"`
}

// Load loads configuration from environment variables
func Load() *Config {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("Warning: Error loading .env file: %v", err)
	}

	cfg := &Config{
		// Server configuration
		Port:            getEnv("PORT", "8080"),
		Env:             getEnv("APP_ENV", "development"),
		ShutdownTimeout: getEnvAsDuration("SHUTDOWN_TIMEOUT", 10*time.Second),

		// Source configuration
		SourcesPath: getEnv("SOURCES_PATH", "./sources.json"),

		// Refresh intervals by priority
		HighPriorityInterval:   getEnvAsDuration("HIGH_PRIORITY_INTERVAL", 30*time.Minute),
		NormalPriorityInterval: getEnvAsDuration("NORMAL_PRIORITY_INTERVAL", 60*time.Minute),
		LowPriorityInterval:    getEnvAsDuration("LOW_PRIORITY_INTERVAL", 120*time.Minute),

		// Fetching
		FeedTimeout:     getEnvAsDuration("FEED_TIMEOUT", 30*time.Second),
		ScrapeTimeout:   getEnvAsDuration("SCRAPE_TIMEOUT", 20*time.Second),
		MaxRetries:      getEnvAsInt("MAX_RETRIES", 3),
		RetryDelay:      getEnvAsDuration("RETRY_DELAY", 5*time.Second),
		ScrapeDelay:     getEnvAsDuration("SCRAPE_DELAY", 2*time.Second),
		MaxItemsPerFeed: getEnvAsInt("MAX_ITEMS_PER_FEED", 50),
		MaxConcurrency:  getEnvAsInt("MAX_CONCURRENCY", 5),
		UserAgent:       getEnv("USER_AGENT", "sportwire/1.0 (+https://github.com/gridironhq/sportwire)"),

		// Scheduling; empty disables recurring runs
		CronSchedule: getEnv("CRON_SCHEDULE", ""),

		// Reports
		OutputDir:        getEnv("OUTPUT_DIR", "./reports"),
		ReportNamePrefix: getEnv("REPORT_NAME_PREFIX", "news_report"),

		// Email delivery; empty host disables delivery
		SMTPHost:     getEnv("SMTP_HOST", ""),
		SMTPPort:     getEnvAsInt("SMTP_PORT", 587),
		SMTPUser:     getEnv("SMTP_USER", ""),
		SMTPPassword: getEnv("SMTP_PASSWORD", ""),
		SMTPUseTLS:   getEnvAsBool("SMTP_USE_TLS", false),
		EmailFrom:    getEnv("EMAIL_FROM", ""),
		EmailTo:      getEnvAsSlice("EMAIL_TO"),
		EmailSubject: getEnv("EMAIL_SUBJECT", "Sports News Report"),

		// Logging
		LogLevel: getEnv("LOG_LEVEL", "info"),
		LogFile:  getEnv("LOG_FILE", ""),
	}

	return cfg
}

// RefreshInterval maps a source priority to its refresh interval.
// Unknown priorities fall back to the normal interval.
func (c *Config) RefreshInterval(priority string) time.Duration {
	switch priority {
	case "high":
		return c.HighPriorityInterval
	case "low":
		return c.LowPriorityInterval
	default:
		return c.NormalPriorityInterval
	}
}

// Helper functions for environment variable handling
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsInt(name string, defaultVal int) int {
	valueStr := getEnv(name, "")
	if valueStr == "" {
		return defaultVal
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("Invalid %s value: %v, using default: %d", name, err, defaultVal)
		return defaultVal
	}
	return value
}

func getEnvAsBool(name string, defaultVal bool) bool {
	valueStr := getEnv(name, "")
	if valueStr == "" {
		return defaultVal
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		log.Printf("Invalid %s value: %v, using default: %v", name, err, defaultVal)
		return defaultVal
	}
	return value
}

func getEnvAsDuration(name string, defaultVal time.Duration) time.Duration {
	valueStr := getEnv(name, "")
	if valueStr == "" {
		return defaultVal
	}
	value, err := time.ParseDuration(valueStr)
	if err != nil {
		log.Printf("Invalid %s value: %v, using default: %v", name, err, defaultVal)
		return defaultVal
	}
	return value
}

func getEnvAsSlice(name string) []string {
	valueStr := getEnv(name, "")
	if valueStr == "" {
		return nil
	}
	parts := strings.Split(valueStr, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

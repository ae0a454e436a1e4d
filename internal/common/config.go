package common

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// Config represents the application configuration
type Config struct {
	Environment string          `toml:"environment"` // "development" or "production"
	Server      ServerConfig    `toml:"server"`
	Storage     StorageConfig   `toml:"storage"`
	Logging     LoggingConfig   `toml:"logging"`
	LLM         LLMConfig       `toml:"llm"`
	Claude      ClaudeConfig    `toml:"claude"`
	Gemini      GeminiConfig    `toml:"gemini"`
	Pipeline    PipelineConfig  `toml:"pipeline"`
	WebSocket   WebSocketConfig `toml:"websocket"`
	Scheduler   SchedulerConfig `toml:"scheduler"`
}

type ServerConfig struct {
	Port int    `toml:"port"`
	Host string `toml:"host"`
}

type StorageConfig struct {
	Badger BadgerConfig `toml:"badger"`
}

// BadgerConfig represents BadgerDB-specific configuration
type BadgerConfig struct {
	Path           string `toml:"path"`             // Database directory path
	ResetOnStartup bool   `toml:"reset_on_startup"` // Delete database on startup for clean test runs
}

type LoggingConfig struct {
	Level      string   `toml:"level"`       // "debug", "info", "warn", "error"
	Output     []string `toml:"output"`      // "stdout", "file"
	TimeFormat string   `toml:"time_format"` // Time format for logs (default: "15:04:05")
}

// LLMConfig selects the content generation provider.
type LLMConfig struct {
	// DefaultProvider is "claude", "gemini", or "" to disable LLM-backed
	// generation entirely (every report then comes from the deterministic
	// fallback generator).
	DefaultProvider string `toml:"default_provider"`
}

// ClaudeConfig holds Anthropic Claude API settings.
type ClaudeConfig struct {
	APIKey      string  `toml:"api_key"` // Falls back to ANTHROPIC_API_KEY
	Model       string  `toml:"model"`
	MaxTokens   int     `toml:"max_tokens"`
	Temperature float32 `toml:"temperature"`
	Timeout     string  `toml:"timeout"` // e.g. "60s" per-call timeout
}

// GeminiConfig holds Google Gemini API settings.
type GeminiConfig struct {
	APIKey      string  `toml:"api_key"` // Falls back to GEMINI_API_KEY
	Model       string  `toml:"model"`
	Temperature float32 `toml:"temperature"`
	Timeout     string  `toml:"timeout"`
}

// PipelineConfig controls the analysis pipeline.
type PipelineConfig struct {
	Workers   int    `toml:"workers"`    // Concurrent background runs (bounded pool)
	QueueSize int    `toml:"queue_size"` // Pending submissions before backpressure
	TaskPause string `toml:"task_pause"` // Pause between report tasks, e.g. "1s"

	// Context assembly caps. They bound prompt size for cost and latency
	// control while keeping enough material to ground the analysis.
	NewsLimit       int `toml:"news_limit"`
	ReviewLimit     int `toml:"review_limit"`
	ComparableLimit int `toml:"comparable_limit"`
}

// WebSocketConfig contains configuration for WebSocket event broadcasting
type WebSocketConfig struct {
	// Whitelist of event types to broadcast. Empty list allows all events.
	AllowedEvents []string `toml:"allowed_events"`
	// Per-event-type minimum broadcast interval, e.g. {report_created = "500ms"}
	ThrottleIntervals map[string]string `toml:"throttle_intervals"`
}

// SchedulerConfig controls the stale-request reaper.
type SchedulerConfig struct {
	Enabled      bool   `toml:"enabled"`
	ReapSchedule string `toml:"reap_schedule"` // Cron schedule format
	StaleAfter   string `toml:"stale_after"`   // Age before a processing request is considered stranded
}

// NewDefaultConfig returns the configuration defaults applied before any
// file, environment, or flag overrides.
func NewDefaultConfig() *Config {
	return &Config{
		Environment: "development",
		Server: ServerConfig{
			Host: "localhost",
			Port: 8085,
		},
		Storage: StorageConfig{
			Badger: BadgerConfig{
				Path: "./data/domus",
			},
		},
		Logging: LoggingConfig{
			Level:      "info",
			Output:     []string{"stdout"},
			TimeFormat: "15:04:05",
		},
		LLM: LLMConfig{
			DefaultProvider: "claude",
		},
		Claude: ClaudeConfig{
			Model:       "claude-sonnet-4-20250514",
			MaxTokens:   4096,
			Temperature: 0.3,
			Timeout:     "60s",
		},
		Gemini: GeminiConfig{
			Model:       "gemini-2.5-flash",
			Temperature: 0.3,
			Timeout:     "60s",
		},
		Pipeline: PipelineConfig{
			Workers:         4,
			QueueSize:       64,
			TaskPause:       "1s",
			NewsLimit:       30,
			ReviewLimit:     30,
			ComparableLimit: 50,
		},
		WebSocket: WebSocketConfig{},
		Scheduler: SchedulerConfig{
			Enabled:      true,
			ReapSchedule: "*/5 * * * *",
			StaleAfter:   "30m",
		},
	}
}

// LoadFromFile loads configuration from a single TOML file over defaults.
func LoadFromFile(path string) (*Config, error) {
	return LoadFromFiles(path)
}

// LoadFromFiles loads configuration in priority order: defaults, then each
// file in sequence (later files override earlier ones), then environment
// variables. Missing paths are an error; pass no paths to get defaults+env.
func LoadFromFiles(paths ...string) (*Config, error) {
	config := NewDefaultConfig()

	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
		if err := toml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	applyEnvOverrides(config)

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// applyEnvOverrides applies environment variable overrides to the config
func applyEnvOverrides(config *Config) {
	if v := os.Getenv("DOMUS_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			config.Server.Port = port
		}
	}
	if v := os.Getenv("DOMUS_HOST"); v != "" {
		config.Server.Host = v
	}
	if v := os.Getenv("DOMUS_DATA_DIR"); v != "" {
		config.Storage.Badger.Path = v
	}
	if v := os.Getenv("DOMUS_LOG_LEVEL"); v != "" {
		config.Logging.Level = v
	}
	if v := os.Getenv("DOMUS_LLM_PROVIDER"); v != "" {
		if strings.EqualFold(v, "none") || strings.EqualFold(v, "disabled") {
			config.LLM.DefaultProvider = ""
		} else {
			config.LLM.DefaultProvider = strings.ToLower(v)
		}
	}
	if v := os.Getenv("ANTHROPIC_API_KEY"); v != "" && config.Claude.APIKey == "" {
		config.Claude.APIKey = v
	}
	if v := os.Getenv("GEMINI_API_KEY"); v != "" && config.Gemini.APIKey == "" {
		config.Gemini.APIKey = v
	}
}

// ApplyFlagOverrides applies command-line flag overrides (highest priority)
func ApplyFlagOverrides(config *Config, port int, host string) {
	if port != 0 {
		config.Server.Port = port
	}
	if host != "" {
		config.Server.Host = host
	}
}

// Validate checks config values that would otherwise fail deep inside a
// service constructor.
func (c *Config) Validate() error {
	switch c.LLM.DefaultProvider {
	case "", "claude", "gemini":
	default:
		return fmt.Errorf("invalid llm.default_provider '%s': must be 'claude', 'gemini', or empty", c.LLM.DefaultProvider)
	}

	if c.Pipeline.Workers <= 0 {
		return fmt.Errorf("pipeline.workers must be greater than 0, got %d", c.Pipeline.Workers)
	}
	if c.Pipeline.QueueSize <= 0 {
		return fmt.Errorf("pipeline.queue_size must be greater than 0, got %d", c.Pipeline.QueueSize)
	}

	for name, value := range map[string]string{
		"claude.timeout":        c.Claude.Timeout,
		"gemini.timeout":        c.Gemini.Timeout,
		"pipeline.task_pause":   c.Pipeline.TaskPause,
		"scheduler.stale_after": c.Scheduler.StaleAfter,
	} {
		if value == "" {
			continue
		}
		if _, err := time.ParseDuration(value); err != nil {
			return fmt.Errorf("invalid duration for %s: %w", name, err)
		}
	}

	return nil
}

// TaskPauseDuration returns the parsed inter-task pause.
func (c *PipelineConfig) TaskPauseDuration() time.Duration {
	d, err := time.ParseDuration(c.TaskPause)
	if err != nil {
		return time.Second
	}
	return d
}

// StaleAfterDuration returns the parsed stranded-request age threshold.
func (c *SchedulerConfig) StaleAfterDuration() time.Duration {
	d, err := time.ParseDuration(c.StaleAfter)
	if err != nil {
		return 30 * time.Minute
	}
	return d
}

// IsProduction returns true when running in production environment
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Environment, "production")
}

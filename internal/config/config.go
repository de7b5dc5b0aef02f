package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const defaultExternalHTTPTimeout = 30 * time.Second
const defaultExternalHTTPTimeoutSeconds = int(defaultExternalHTTPTimeout / time.Second)

type Config struct {
	GitHubToken string `yaml:"github_token"`
	GitHubRepo  string `yaml:"github_repo"` // "owner/name"

	LedgerPath      string `yaml:"ledger_path"`
	DBPath          string `yaml:"db_path"`
	ReportOutputDir string `yaml:"report_output_dir"`

	PollIntervalMinutes int    `yaml:"poll_interval_minutes"`
	PollSchedule        string `yaml:"poll_schedule"` // optional 5-field cron, overrides the interval
	LookbackHours       int    `yaml:"lookback_hours"`

	SlackBotToken  string `yaml:"slack_bot_token"`
	SlackChannelID string `yaml:"slack_channel_id"`

	TeamName                   string `yaml:"team_name"`
	Timezone                   string `yaml:"timezone"`
	ExternalHTTPTimeoutSeconds int    `yaml:"external_http_timeout_seconds"`

	Location *time.Location `yaml:"-"` // computed from Timezone, not from YAML
}

// Load reads config from path (or config.yaml / $CONFIG_PATH when empty),
// applies env-var overrides and defaults, and validates required fields.
// Validation failures are fatal: the process cannot run half-configured.
func Load(path string) Config {
	var cfg Config

	if path == "" {
		path = "config.yaml"
		if envPath := os.Getenv("CONFIG_PATH"); envPath != "" {
			path = envPath
		}
	}
	if data, err := os.ReadFile(path); err == nil {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			log.Fatalf("Error parsing %s: %v", path, err)
		}
		log.Printf("Loaded config from %s", path)
	}

	// Env vars override YAML values.
	envOverride(&cfg.GitHubToken, "GITHUB_TOKEN")
	envOverride(&cfg.GitHubRepo, "GITHUB_REPO")
	envOverride(&cfg.LedgerPath, "LEDGER_PATH")
	envOverride(&cfg.DBPath, "DB_PATH")
	envOverride(&cfg.ReportOutputDir, "REPORT_OUTPUT_DIR")
	envOverrideInt(&cfg.PollIntervalMinutes, "POLL_INTERVAL_MINUTES")
	envOverride(&cfg.PollSchedule, "POLL_SCHEDULE")
	envOverrideInt(&cfg.LookbackHours, "LOOKBACK_HOURS")
	envOverride(&cfg.SlackBotToken, "SLACK_BOT_TOKEN")
	envOverride(&cfg.SlackChannelID, "SLACK_CHANNEL_ID")
	envOverride(&cfg.TeamName, "TEAM_NAME")
	envOverride(&cfg.Timezone, "TIMEZONE")
	envOverrideInt(&cfg.ExternalHTTPTimeoutSeconds, "EXTERNAL_HTTP_TIMEOUT_SECONDS")

	ApplyDefaults(&cfg)

	// Validate required fields.
	required := map[string]string{
		"github_token": cfg.GitHubToken,
		"github_repo":  cfg.GitHubRepo,
	}
	for name, val := range required {
		if val == "" {
			log.Fatalf("Required config '%s' is not set (via config.yaml or env var)", name)
		}
	}
	if !strings.Contains(cfg.GitHubRepo, "/") {
		log.Fatalf("invalid github_repo '%s': expected 'owner/name'", cfg.GitHubRepo)
	}
	if cfg.PollIntervalMinutes < 1 {
		log.Fatalf("invalid poll_interval_minutes '%d': must be >= 1", cfg.PollIntervalMinutes)
	}
	if cfg.LookbackHours < 1 {
		log.Fatalf("invalid lookback_hours '%d': must be >= 1", cfg.LookbackHours)
	}
	if cfg.SlackChannelID != "" && cfg.SlackBotToken == "" {
		log.Fatalf("slack_bot_token is required when slack_channel_id is set")
	}

	loc, err := resolveLocation(cfg.Timezone)
	if err != nil {
		log.Fatalf("invalid timezone '%s': %v", cfg.Timezone, err)
	}
	cfg.Location = loc

	return cfg
}

// ApplyDefaults fills zero-valued optional fields. Exported so tests can
// build valid configs without going through file loading.
func ApplyDefaults(cfg *Config) {
	if cfg.LedgerPath == "" {
		cfg.LedgerPath = "./processed_issues.json"
	}
	if cfg.DBPath == "" {
		cfg.DBPath = "./triagebot.db"
	}
	if cfg.ReportOutputDir == "" {
		cfg.ReportOutputDir = "./reports"
	}
	if cfg.PollIntervalMinutes == 0 {
		cfg.PollIntervalMinutes = 5
	}
	if cfg.LookbackHours == 0 {
		cfg.LookbackHours = 24
	}
	if cfg.TeamName == "" {
		cfg.TeamName = "My Team"
	}
	if cfg.Timezone == "" {
		cfg.Timezone = "Local"
	}
	if cfg.ExternalHTTPTimeoutSeconds == 0 {
		cfg.ExternalHTTPTimeoutSeconds = defaultExternalHTTPTimeoutSeconds
	}
	if cfg.Location == nil {
		cfg.Location = time.Local
	}
}

func (c Config) SlackConfigured() bool {
	return c.SlackBotToken != "" && c.SlackChannelID != ""
}

func (c Config) PollInterval() time.Duration {
	return time.Duration(c.PollIntervalMinutes) * time.Minute
}

func (c Config) Lookback() time.Duration {
	return time.Duration(c.LookbackHours) * time.Hour
}

func resolveLocation(tz string) (*time.Location, error) {
	if strings.EqualFold(tz, "Local") {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return nil, fmt.Errorf("loading location: %w", err)
	}
	return loc, nil
}

func envOverride(field *string, envKey string) {
	if val := os.Getenv(envKey); val != "" {
		*field = val
	}
}

func envOverrideInt(field *int, envKey string) {
	if val := os.Getenv(envKey); val != "" {
		parsed, err := strconv.Atoi(val)
		if err != nil {
			log.Fatalf("invalid %s '%s': %v", envKey, val, err)
		}
		*field = parsed
	}
}

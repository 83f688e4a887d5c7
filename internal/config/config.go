// Package config resolves sprintburn settings from defaults, an optional
// TOML file, a .env file and the environment, in that order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"github.com/alexanderramin/sprintburn/internal/burndown"
	"github.com/alexanderramin/sprintburn/internal/jira"
)

const DefaultTimezone = "Asia/Bangkok"

type Config struct {
	Jira     JiraConfig    `toml:"jira"`
	Timezone string        `toml:"timezone"`
	Workers  int           `toml:"workers"`
	DBPath   string        `toml:"db_path"`
	Fields   FieldsConfig  `toml:"fields"`
	Log      LogConfig     `toml:"log"`
	Metrics  MetricsConfig `toml:"metrics"`
	Serve    ServeConfig   `toml:"serve"`
	Watch    WatchConfig   `toml:"watch"`
}

type JiraConfig struct {
	BaseURL        string `toml:"base_url"`
	Email          string `toml:"email"`
	APIToken       string `toml:"api_token"`
	PAT            string `toml:"pat"`
	APIVersion     string `toml:"api_version"`
	PageSize       int    `toml:"page_size"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
	MaxRetries     int    `toml:"max_retries"`
}

// FieldsConfig lists the changelog identifiers of the two tracked
// estimate fields. The first entry of each list is also the issue field
// read for current values.
type FieldsConfig struct {
	Original  []string `toml:"original"`
	Remaining []string `toml:"remaining"`
}

type LogConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // "auto", "console" or "json"
}

type MetricsConfig struct {
	// Textfile, when set, receives a Prometheus text dump after each run.
	Textfile string `toml:"textfile"`
}

type ServeConfig struct {
	Addr string `toml:"addr"`
}

type WatchConfig struct {
	Cron string `toml:"cron"`
}

// DefaultConfig returns a Config with sensible defaults. Jira credentials
// are left empty.
func DefaultConfig() Config {
	jc := jira.DefaultConfig()
	fs := burndown.DefaultFieldSet()
	return Config{
		Jira: JiraConfig{
			APIVersion:     jc.APIVersion,
			PageSize:       jc.PageSize,
			TimeoutSeconds: int(jc.Timeout / time.Second),
			MaxRetries:     jc.MaxRetries,
		},
		Timezone: DefaultTimezone,
		Workers:  8,
		DBPath:   defaultDBPath(),
		Fields: FieldsConfig{
			Original:  fs.OriginalIDs,
			Remaining: fs.RemainingIDs,
		},
		Log:   LogConfig{Level: "info", Format: "auto"},
		Serve: ServeConfig{Addr: ":8080"},
		Watch: WatchConfig{Cron: "0 * * * *"},
	}
}

func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "sprintburn.db"
	}
	return filepath.Join(home, ".sprintburn", "sprintburn.db")
}

// DefaultPath is where Load looks for a config file when none is given.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".sprintburn", "config.toml")
}

// Load builds the effective configuration. An explicit path must exist; the
// default path is optional. A .env file in the working directory is loaded
// without overriding variables that are already set.
func Load(path string) (Config, error) {
	cfg := DefaultConfig()

	explicit := path != ""
	if !explicit {
		path = DefaultPath()
	}
	if path != "" {
		if err := decodeFile(path, &cfg); err != nil {
			if explicit || !errors.Is(err, os.ErrNotExist) {
				return Config{}, err
			}
		}
	}

	_ = godotenv.Load()
	ApplyEnv(&cfg)
	return cfg, nil
}

func decodeFile(path string, cfg *Config) error {
	if _, err := os.Stat(path); err != nil {
		return err
	}
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return fmt.Errorf("reading config %s: %w", path, err)
	}
	cfg.DBPath = expandPath(cfg.DBPath)
	cfg.Metrics.Textfile = expandPath(cfg.Metrics.Textfile)
	return nil
}

// ApplyEnv overlays environment variables onto cfg. Unparseable numeric
// values are ignored.
func ApplyEnv(cfg *Config) {
	setString(&cfg.Jira.BaseURL, "SPRINTBURN_JIRA_URL", "JIRA_BASE_URL")
	setString(&cfg.Jira.Email, "SPRINTBURN_JIRA_EMAIL", "JIRA_EMAIL")
	setString(&cfg.Jira.APIToken, "SPRINTBURN_JIRA_TOKEN", "JIRA_API_TOKEN")
	setString(&cfg.Jira.PAT, "SPRINTBURN_JIRA_PAT", "JIRA_PAT")
	setString(&cfg.Jira.APIVersion, "SPRINTBURN_JIRA_API_VERSION")
	setInt(&cfg.Jira.PageSize, 1, "SPRINTBURN_PAGE_SIZE")
	setInt(&cfg.Jira.TimeoutSeconds, 1, "SPRINTBURN_TIMEOUT_SECONDS")
	setInt(&cfg.Jira.MaxRetries, 0, "SPRINTBURN_MAX_RETRIES")

	setString(&cfg.Timezone, "SPRINTBURN_TIMEZONE")
	setInt(&cfg.Workers, 1, "SPRINTBURN_WORKERS")
	if v := os.Getenv("SPRINTBURN_DB"); v != "" {
		cfg.DBPath = expandPath(v)
	}
	setList(&cfg.Fields.Original, "SPRINTBURN_ORIGINAL_FIELDS")
	setList(&cfg.Fields.Remaining, "SPRINTBURN_REMAINING_FIELDS")

	setString(&cfg.Log.Level, "SPRINTBURN_LOG_LEVEL")
	setString(&cfg.Log.Format, "SPRINTBURN_LOG_FORMAT")
	if v := os.Getenv("SPRINTBURN_METRICS_TEXTFILE"); v != "" {
		cfg.Metrics.Textfile = expandPath(v)
	}
	setString(&cfg.Serve.Addr, "SPRINTBURN_LISTEN")
	setString(&cfg.Watch.Cron, "SPRINTBURN_WATCH_CRON")
}

func setString(dst *string, names ...string) {
	for _, name := range names {
		if v := strings.TrimSpace(os.Getenv(name)); v != "" {
			*dst = v
			return
		}
	}
}

func setInt(dst *int, floor int, name string) {
	v := os.Getenv(name)
	if v == "" {
		return
	}
	if n, err := strconv.Atoi(v); err == nil && n >= floor {
		*dst = n
	}
}

func setList(dst *[]string, name string) {
	v := os.Getenv(name)
	if v == "" {
		return
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	if len(out) > 0 {
		*dst = out
	}
}

func expandPath(path string) string {
	if strings.HasPrefix(path, "~") {
		home, err := os.UserHomeDir()
		if err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}

// Validate reports settings that would make every Jira call fail.
func (c Config) Validate() error {
	var problems []string
	if strings.TrimSpace(c.Jira.BaseURL) == "" {
		problems = append(problems, "jira base url is required (SPRINTBURN_JIRA_URL)")
	}
	if c.Jira.PAT == "" && (c.Jira.Email == "" || c.Jira.APIToken == "") {
		problems = append(problems, "jira credentials are required: set a PAT or an email and API token")
	}
	if _, err := time.LoadLocation(c.Timezone); err != nil {
		problems = append(problems, fmt.Sprintf("unknown timezone %q", c.Timezone))
	}
	if c.Workers < 1 {
		problems = append(problems, "workers must be at least 1")
	}
	if len(c.Fields.Original) == 0 || len(c.Fields.Remaining) == 0 {
		problems = append(problems, "both estimate field lists must be non-empty")
	}
	if len(problems) > 0 {
		return errors.New("invalid configuration: " + strings.Join(problems, "; "))
	}
	return nil
}

// JiraClient converts the Jira section into the client's own config.
func (c Config) JiraClient() jira.Config {
	jc := jira.DefaultConfig()
	jc.BaseURL = strings.TrimRight(c.Jira.BaseURL, "/")
	jc.Email = c.Jira.Email
	jc.APIToken = c.Jira.APIToken
	jc.PAT = c.Jira.PAT
	if c.Jira.APIVersion != "" {
		jc.APIVersion = c.Jira.APIVersion
	}
	if c.Jira.PageSize > 0 {
		jc.PageSize = c.Jira.PageSize
	}
	if c.Jira.TimeoutSeconds > 0 {
		jc.Timeout = time.Duration(c.Jira.TimeoutSeconds) * time.Second
	}
	jc.MaxRetries = c.Jira.MaxRetries
	if len(c.Fields.Original) > 0 {
		jc.OriginalField = c.Fields.Original[0]
	}
	if len(c.Fields.Remaining) > 0 {
		jc.RemainingField = c.Fields.Remaining[0]
	}
	return jc
}

func (c Config) FieldSet() burndown.FieldSet {
	return burndown.FieldSet{
		OriginalIDs:  append([]string(nil), c.Fields.Original...),
		RemainingIDs: append([]string(nil), c.Fields.Remaining...),
	}
}

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
)

const (
	ConfigFileName = "config.toml"
	AuditFileName  = "audit.db"

	// AuditOff disables the audit trail when used as audit_db.
	AuditOff = "off"
)

// ErrConfig wraps every failure to load, create, persist or validate the config.
var ErrConfig = errors.New("config")

// BannerPolicy decides what happens to a new failure while a banner is showing.
type BannerPolicy string

const (
	// BannerQueue shows failures one after another, oldest first.
	BannerQueue BannerPolicy = "queue"
	// BannerReplace shows only the newest failure.
	BannerReplace BannerPolicy = "replace"
	// BannerKeep keeps the first failure on screen; later ones are only logged.
	BannerKeep BannerPolicy = "keep"
)

func (p BannerPolicy) valid() bool {
	switch p {
	case BannerQueue, BannerReplace, BannerKeep:
		return true
	}
	return false
}

// GetConfigDir returns the path to the application's configuration directory,
// ~/.config/webmon.
func GetConfigDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get config home directory: %w", err)
	}
	return filepath.Join(homeDir, ".config", "webmon"), nil
}

// DefaultPath returns the config file path used when --config is not given.
func DefaultPath() (string, error) {
	dir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, ConfigFileName), nil
}

// Config represents the application configuration
type Config struct {
	// Login, Password and Environment are sent to the auth endpoint.
	Login       string `toml:"login"`
	Password    string `toml:"password"`
	Environment string `toml:"environment"`
	// Host and Port locate the webmnt server.
	Host string `toml:"host"`
	Port string `toml:"port"`

	RefreshIntervalSecs int `toml:"refresh_interval_secs"`
	RequestTimeoutSecs  int `toml:"request_timeout_secs"`
	RenewalIntervalSecs int `toml:"renewal_interval_secs"`
	PageSize            int `toml:"page_size"`

	BannerPolicy BannerPolicy `toml:"banner_policy"`

	// TelemetryEnabled controls whether crash reporting via Sentry is active.
	TelemetryEnabled bool   `toml:"telemetry_enabled"`
	SentryDSN        string `toml:"sentry_dsn"`

	// AuditDB is the sqlite file for the audit trail. Empty means
	// <config dir>/audit.db, "off" disables it.
	AuditDB string `toml:"audit_db"`
}

// DefaultConfig returns a config with every optional field set and the
// required ones empty.
func DefaultConfig() *Config {
	return &Config{
		RefreshIntervalSecs: 5,
		RequestTimeoutSecs:  10,
		RenewalIntervalSecs: 900,
		PageSize:            10,
		BannerPolicy:        BannerQueue,
	}
}

// fillDefaults replaces zero values with defaults.
func (c *Config) fillDefaults() {
	d := DefaultConfig()
	if c.RefreshIntervalSecs == 0 {
		c.RefreshIntervalSecs = d.RefreshIntervalSecs
	}
	if c.RequestTimeoutSecs == 0 {
		c.RequestTimeoutSecs = d.RequestTimeoutSecs
	}
	if c.RenewalIntervalSecs == 0 {
		c.RenewalIntervalSecs = d.RenewalIntervalSecs
	}
	if c.PageSize == 0 {
		c.PageSize = d.PageSize
	}
	if c.BannerPolicy == "" {
		c.BannerPolicy = d.BannerPolicy
	}
}

// Validate reports every problem with the config in one error.
func (c *Config) Validate() error {
	var problems []string
	required := []struct{ name, value string }{
		{"login", c.Login},
		{"password", c.Password},
		{"environment", c.Environment},
		{"host", c.Host},
		{"port", c.Port},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			problems = append(problems, r.name+" is required")
		}
	}
	if c.Port != "" {
		if n, err := strconv.Atoi(c.Port); err != nil || n <= 0 || n > 65535 {
			problems = append(problems, fmt.Sprintf("port %q is not a valid port number", c.Port))
		}
	}
	positive := []struct {
		name  string
		value int
	}{
		{"refresh_interval_secs", c.RefreshIntervalSecs},
		{"request_timeout_secs", c.RequestTimeoutSecs},
		{"renewal_interval_secs", c.RenewalIntervalSecs},
		{"page_size", c.PageSize},
	}
	for _, p := range positive {
		if p.value <= 0 {
			problems = append(problems, fmt.Sprintf("%s must be positive, got %d", p.name, p.value))
		}
	}
	if !c.BannerPolicy.valid() {
		problems = append(problems, fmt.Sprintf("banner_policy %q is not one of queue, replace, keep", c.BannerPolicy))
	}
	if len(problems) > 0 {
		return fmt.Errorf("%w: invalid: %s", ErrConfig, strings.Join(problems, "; "))
	}
	return nil
}

func (c *Config) RefreshInterval() time.Duration {
	return time.Duration(c.RefreshIntervalSecs) * time.Second
}

func (c *Config) RequestTimeout() time.Duration {
	return time.Duration(c.RequestTimeoutSecs) * time.Second
}

func (c *Config) RenewalInterval() time.Duration {
	return time.Duration(c.RenewalIntervalSecs) * time.Second
}

// AuditPath resolves the audit database path relative to the config file.
// ok is false when auditing is disabled.
func (c *Config) AuditPath(configPath string) (path string, ok bool) {
	switch strings.TrimSpace(c.AuditDB) {
	case AuditOff:
		return "", false
	case "":
		return filepath.Join(filepath.Dir(configPath), AuditFileName), true
	default:
		return c.AuditDB, true
	}
}

// Redacted returns a copy safe to print.
func (c *Config) Redacted() *Config {
	cp := *c
	if cp.Password != "" {
		cp.Password = "********"
	}
	return &cp
}

// LoadFrom reads, defaults and validates the config at path. A missing file
// yields an error matching os.ErrNotExist as well as ErrConfig.
func LoadFrom(path string) (*Config, error) {
	cfg := &Config{}
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("%w: load %s: %w", ErrConfig, path, err)
	}
	cfg.fillDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes cfg to path with owner-only permissions, creating the directory.
func Save(cfg *Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("%w: failed to create config directory: %w", ErrConfig, err)
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("%w: failed to create config file: %w", ErrConfig, err)
	}
	if err := os.Chmod(path, 0o600); err != nil {
		f.Close()
		return fmt.Errorf("%w: failed to set config file permissions: %w", ErrConfig, err)
	}

	fmt.Fprintln(f, "# webmon configuration")
	fmt.Fprintln(f)
	if err := toml.NewEncoder(f).Encode(cfg); err != nil {
		f.Close()
		return fmt.Errorf("%w: failed to encode config: %w", ErrConfig, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("%w: failed to write config file: %w", ErrConfig, err)
	}
	return nil
}

// Load reads the config at path. When the file does not exist, prompt is
// asked for the values and the result is persisted before returning.
func Load(path string, prompt func() (*Config, error)) (*Config, error) {
	cfg, err := LoadFrom(path)
	if err == nil {
		return cfg, nil
	}
	if !errors.Is(err, os.ErrNotExist) || prompt == nil {
		return nil, err
	}

	cfg, err = prompt()
	if err != nil {
		return nil, fmt.Errorf("%w: create: %w", ErrConfig, err)
	}
	cfg.fillDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := Save(cfg, path); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Package config provides configuration loading and management for the atlas sync service.
package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/clevercanary/atlas-sync/internal/telemetry"
)

const (
	// PasswordEnvVar is the environment variable consulted for the database password
	PasswordEnvVar = "ATLAS_SYNC_DATABASE_PASSWORD"

	// ValidationToolsURLEnvVar is the environment variable consulted for the validation tools URL
	ValidationToolsURLEnvVar = "HCA_VALIDATION_TOOLS_URL"

	// DefaultServerAddress is the default listen address of the operator API
	DefaultServerAddress = ":8080"

	// DefaultSyncInterval is the default interval between mirror probes
	DefaultSyncInterval = 10 * time.Minute

	// DefaultIdleWait is the default bound on waiting for mirrors to stop refreshing
	DefaultIdleWait = 10 * time.Minute

	// DefaultHTTPTimeout is the default timeout of a single request to an external service
	DefaultHTTPTimeout = 120 * time.Second

	// DefaultRetryMax is the default number of retries of a failed external request
	DefaultRetryMax = 5

	// DefaultEntrySheetConcurrency is the default number of concurrent validation tools requests
	DefaultEntrySheetConcurrency = 8
)

// Option defines the interface for configuration options
type Option func(*loaderConfig) error

type loaderConfig struct {
	path string
}

// WithConfigPath loads configuration from a YAML file
func WithConfigPath(path string) Option {
	return func(cfg *loaderConfig) error {
		if path == "" {
			return fmt.Errorf("path is required")
		}

		// Resolve symlinks to prevent symlink attacks.
		// Note that this calls filepath.Clean internally.
		realPath, err := filepath.EvalSymlinks(path)
		if err != nil {
			return fmt.Errorf("failed to evaluate symlinks: %w", err)
		}

		if !filepath.IsAbs(realPath) && !filepath.IsLocal(realPath) {
			return fmt.Errorf("path is not local or contains invalid traversal: %s", path)
		}

		cfg.path = realPath
		return nil
	}
}

// Config represents the root configuration structure
type Config struct {
	Server      *ServerConfig      `yaml:"server,omitempty"`
	Database    *DatabaseConfig    `yaml:"database"`
	Mirrors     *MirrorsConfig     `yaml:"mirrors,omitempty"`
	EntrySheets *EntrySheetsConfig `yaml:"entrySheets,omitempty"`
	Sync        *SyncConfig        `yaml:"sync,omitempty"`
	Telemetry   *telemetry.Config  `yaml:"telemetry,omitempty"`
}

// ServerConfig defines the operator API settings
type ServerConfig struct {
	// Address is the listen address, e.g. ":8080"
	Address string `yaml:"address,omitempty"`
}

// MirrorsConfig defines how the external catalogs are reached
type MirrorsConfig struct {
	// AzulURL is the base URL of the HCA data repository service
	AzulURL string `yaml:"azulURL,omitempty"`

	// CellxGeneURL is the base URL of the CELLxGENE curation API
	CellxGeneURL string `yaml:"cellxgeneURL,omitempty"`

	// HTTPTimeout bounds a single request (e.g. "120s")
	HTTPTimeout string `yaml:"httpTimeout,omitempty"`

	// RetryMax is the number of retries of a failed request
	RetryMax *int `yaml:"retryMax,omitempty"`
}

// EntrySheetsConfig defines the entry sheet validation settings
type EntrySheetsConfig struct {
	// ValidationToolsURL is the endpoint of the HCA validation tools.
	// Falls back to the HCA_VALIDATION_TOOLS_URL environment variable.
	ValidationToolsURL string `yaml:"validationToolsURL,omitempty"`

	// Concurrency bounds the number of sheets validated at once
	Concurrency int `yaml:"concurrency,omitempty"`
}

// SyncConfig defines the background coordinator settings
type SyncConfig struct {
	// Interval between mirror probes (e.g. "10m")
	Interval string `yaml:"interval,omitempty"`

	// IdleWait bounds how long validation updates wait for refreshing mirrors
	IdleWait string `yaml:"idleWait,omitempty"`
}

// DatabaseConfig defines database connection settings
type DatabaseConfig struct {
	// Host is the database server hostname or IP address
	Host string `yaml:"host"`

	// Port is the database server port
	Port int `yaml:"port"`

	// User is the database username
	User string `yaml:"user"`

	// PasswordFile is the path to a file containing the database password.
	// The file should contain only the password with optional trailing whitespace.
	PasswordFile string `yaml:"passwordFile,omitempty"`

	// Database is the database name
	Database string `yaml:"database"`

	// SSLMode is the SSL mode for the connection (disable, require, verify-ca, verify-full)
	SSLMode string `yaml:"sslMode,omitempty"`

	// MaxOpenConns is the maximum number of open connections to the database
	MaxOpenConns int32 `yaml:"maxOpenConns,omitempty"`

	// MaxIdleConns is the minimum number of idle connections kept in the pool
	MaxIdleConns int32 `yaml:"maxIdleConns,omitempty"`

	// ConnMaxLifetime is the maximum lifetime of a connection (e.g., "1h", "30m")
	ConnMaxLifetime string `yaml:"connMaxLifetime,omitempty"`
}

// GetPassword returns the database password using the following priority:
// 1. Read from PasswordFile if specified
// 2. Read from the ATLAS_SYNC_DATABASE_PASSWORD environment variable
func (d *DatabaseConfig) GetPassword() (string, error) {
	if d.PasswordFile != "" {
		data, err := os.ReadFile(filepath.Clean(d.PasswordFile))
		if err != nil {
			return "", fmt.Errorf("failed to read password from file %s: %w", d.PasswordFile, err)
		}
		return strings.TrimSpace(string(data)), nil
	}

	if envPassword := os.Getenv(PasswordEnvVar); envPassword != "" {
		return envPassword, nil
	}

	return "", fmt.Errorf(
		"no database password configured: set passwordFile or %s environment variable", PasswordEnvVar,
	)
}

// GetConnectionString builds a PostgreSQL connection string.
// The password is URL-escaped to handle special characters safely.
func (d *DatabaseConfig) GetConnectionString() (string, error) {
	password, err := d.GetPassword()
	if err != nil {
		return "", err
	}

	sslMode := d.SSLMode
	if sslMode == "" {
		sslMode = "require"
	}

	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		url.QueryEscape(d.User),
		url.QueryEscape(password),
		d.Host,
		d.Port,
		d.Database,
		sslMode,
	), nil
}

// GetConnMaxLifetime returns the parsed connection lifetime, or zero when unset
func (d *DatabaseConfig) GetConnMaxLifetime() time.Duration {
	lifetime, err := time.ParseDuration(d.ConnMaxLifetime)
	if err != nil {
		return 0
	}
	return lifetime
}

// LoadConfig loads and parses configuration from a YAML file
func LoadConfig(opts ...Option) (*Config, error) {
	loaderCfg := &loaderConfig{}
	for _, opt := range opts {
		if err := opt(loaderCfg); err != nil {
			return nil, err
		}
	}

	if loaderCfg.path == "" {
		return nil, fmt.Errorf("path is required")
	}

	data, err := os.ReadFile(loaderCfg.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse YAML config: %w", err)
	}

	if err := config.validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// GetServerAddress returns the operator API listen address
func (c *Config) GetServerAddress() string {
	if c.Server == nil || c.Server.Address == "" {
		return DefaultServerAddress
	}
	return c.Server.Address
}

// GetAzulURL returns the configured HCA data repository URL, empty for the default
func (c *Config) GetAzulURL() string {
	if c.Mirrors == nil {
		return ""
	}
	return c.Mirrors.AzulURL
}

// GetCellxGeneURL returns the configured CELLxGENE URL, empty for the default
func (c *Config) GetCellxGeneURL() string {
	if c.Mirrors == nil {
		return ""
	}
	return c.Mirrors.CellxGeneURL
}

// GetHTTPTimeout returns the timeout of a single external request
func (c *Config) GetHTTPTimeout() time.Duration {
	if c.Mirrors == nil {
		return DefaultHTTPTimeout
	}
	return durationOrDefault(c.Mirrors.HTTPTimeout, DefaultHTTPTimeout)
}

// GetRetryMax returns the number of retries of a failed external request
func (c *Config) GetRetryMax() int {
	if c.Mirrors == nil || c.Mirrors.RetryMax == nil {
		return DefaultRetryMax
	}
	return *c.Mirrors.RetryMax
}

// GetValidationToolsURL returns the validation tools endpoint from the
// configuration or the environment
func (c *Config) GetValidationToolsURL() string {
	if c.EntrySheets != nil && c.EntrySheets.ValidationToolsURL != "" {
		return c.EntrySheets.ValidationToolsURL
	}
	return os.Getenv(ValidationToolsURLEnvVar)
}

// GetEntrySheetConcurrency returns the bound on concurrent validation tools requests
func (c *Config) GetEntrySheetConcurrency() int {
	if c.EntrySheets == nil || c.EntrySheets.Concurrency <= 0 {
		return DefaultEntrySheetConcurrency
	}
	return c.EntrySheets.Concurrency
}

// GetSyncInterval returns the interval between mirror probes
func (c *Config) GetSyncInterval() time.Duration {
	if c.Sync == nil {
		return DefaultSyncInterval
	}
	return durationOrDefault(c.Sync.Interval, DefaultSyncInterval)
}

// GetIdleWait returns how long validation updates wait for refreshing mirrors
func (c *Config) GetIdleWait() time.Duration {
	if c.Sync == nil {
		return DefaultIdleWait
	}
	return durationOrDefault(c.Sync.IdleWait, DefaultIdleWait)
}

func durationOrDefault(value string, fallback time.Duration) time.Duration {
	if value == "" {
		return fallback
	}
	d, err := time.ParseDuration(value)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}

func (c *Config) validate() error {
	if c == nil {
		return fmt.Errorf("config cannot be nil")
	}

	if err := validateDatabase(c.Database); err != nil {
		return err
	}

	if c.Mirrors != nil {
		if err := validateURL("mirrors.azulURL", c.Mirrors.AzulURL); err != nil {
			return err
		}
		if err := validateURL("mirrors.cellxgeneURL", c.Mirrors.CellxGeneURL); err != nil {
			return err
		}
		if err := validateDuration("mirrors.httpTimeout", c.Mirrors.HTTPTimeout); err != nil {
			return err
		}
		if c.Mirrors.RetryMax != nil && *c.Mirrors.RetryMax < 0 {
			return fmt.Errorf("mirrors.retryMax must not be negative")
		}
	}

	if c.EntrySheets != nil {
		if err := validateURL("entrySheets.validationToolsURL", c.EntrySheets.ValidationToolsURL); err != nil {
			return err
		}
		if c.EntrySheets.Concurrency < 0 {
			return fmt.Errorf("entrySheets.concurrency must not be negative")
		}
	}

	if c.Sync != nil {
		if err := validateDuration("sync.interval", c.Sync.Interval); err != nil {
			return err
		}
		if err := validateDuration("sync.idleWait", c.Sync.IdleWait); err != nil {
			return err
		}
	}

	return c.Telemetry.Validate()
}

func validateDatabase(db *DatabaseConfig) error {
	if db == nil {
		return fmt.Errorf("database configuration is required")
	}
	if db.Host == "" {
		return fmt.Errorf("database.host is required")
	}
	if db.Port <= 0 {
		return fmt.Errorf("database.port must be a positive number")
	}
	if db.Database == "" {
		return fmt.Errorf("database.database is required")
	}
	if db.User == "" {
		return fmt.Errorf("database.user is required")
	}
	return validateDuration("database.connMaxLifetime", db.ConnMaxLifetime)
}

func validateDuration(field, value string) error {
	if value == "" {
		return nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return fmt.Errorf("%s must be a valid duration (e.g., '30m', '1h'): %w", field, err)
	}
	if d <= 0 {
		return fmt.Errorf("%s must be positive", field)
	}
	return nil
}

func validateURL(field, value string) error {
	if value == "" {
		return nil
	}
	u, err := url.Parse(value)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("%s must be an absolute URL, got %q", field, value)
	}
	return nil
}

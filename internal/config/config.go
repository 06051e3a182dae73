package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pelletier/go-toml/v2"
	"golang.org/x/text/language"

	"regscope/internal/sortfilter"
)

// EnvAPIURL overrides api_base_url when set
const EnvAPIURL = "REGSCOPE_API_URL"

// Config represents the application configuration. It is loaded once at
// startup and treated as read-only afterwards.
type Config struct {
	Version           int        `toml:"version"`
	APIBaseURL        string     `toml:"api_base_url"`
	RequestTimeout    Duration   `toml:"request_timeout"`
	RequestsPerSecond float64    `toml:"requests_per_second"`
	Locale            string     `toml:"locale"`
	LogFile           string     `toml:"log_file"`
	LogLevel          string     `toml:"log_level"`
	UI                UISettings `toml:"ui"`
}

// UISettings represents UI-related configuration
type UISettings struct {
	DefaultSort         string `toml:"default_sort"`
	DefaultDirection    string `toml:"default_direction"`
	NotificationSeconds int    `toml:"notification_seconds"`
	UsePagerForHelp     bool   `toml:"use_pager_for_help"`
}

// Duration is a time.Duration written as a string ("10s") in TOML
type Duration struct {
	time.Duration
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", string(text), err)
	}
	d.Duration = parsed
	return nil
}

// ConfigService handles configuration management
type ConfigService interface {
	Path() string
	Load() (*Config, error)
	Save(config *Config) error
	LoadFromPath(path string) (*Config, error)
	SaveToPath(config *Config, path string) error
}

// configService is the concrete implementation
type configService struct {
	filePath string
}

// NewConfigService creates a config service for path, or for the default
// location under the user config directory when path is empty
func NewConfigService(path string) ConfigService {
	if path == "" {
		path = DefaultPath()
	}
	return &configService{filePath: path}
}

// DefaultPath returns $XDG_CONFIG_HOME/regscope/config.toml or its platform equivalent
func DefaultPath() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		configDir, err = os.UserHomeDir()
		if err != nil {
			configDir = "."
		}
		configDir = filepath.Join(configDir, ".config")
	}
	return filepath.Join(configDir, "regscope", "config.toml")
}

func (cs *configService) Path() string {
	return cs.filePath
}

// Load loads the configuration, falling back to defaults when the file does not exist
func (cs *configService) Load() (*Config, error) {
	cfg, err := cs.LoadFromPath(cs.filePath)
	if errors.Is(err, os.ErrNotExist) {
		cfg = DefaultConfig()
		cfg.ApplyEnv()
		return cfg, nil
	}
	if err != nil {
		return nil, err
	}
	cfg.ApplyEnv()
	return cfg, nil
}

// Save saves the configuration to the service's file
func (cs *configService) Save(config *Config) error {
	return cs.SaveToPath(config, cs.filePath)
}

// LoadFromPath loads configuration from a specific path. Keys missing from
// the file keep their default values.
func (cs *configService) LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// SaveToPath saves configuration to a specific path
func (cs *configService) SaveToPath(config *Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := toml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Version:           1,
		APIBaseURL:        "http://localhost:8000",
		RequestTimeout:    Duration{10 * time.Second},
		RequestsPerSecond: 5,
		Locale:            "en",
		LogFile:           "regscope.log",
		LogLevel:          "info",
		UI: UISettings{
			DefaultSort:         sortfilter.FieldWordCount.String(),
			DefaultDirection:    sortfilter.Descending.String(),
			NotificationSeconds: 5,
			UsePagerForHelp:     true,
		},
	}
}

// ApplyEnv applies environment overrides
func (c *Config) ApplyEnv() {
	if url := os.Getenv(EnvAPIURL); url != "" {
		c.APIBaseURL = url
	}
}

// Validate checks values that cannot be fixed up silently
func (c *Config) Validate() error {
	var errs []error
	if c.APIBaseURL == "" {
		errs = append(errs, errors.New("api_base_url must not be empty"))
	}
	if c.RequestTimeout.Duration < 0 {
		errs = append(errs, errors.New("request_timeout must not be negative"))
	}
	if c.RequestsPerSecond < 0 {
		errs = append(errs, errors.New("requests_per_second must not be negative"))
	}
	if _, err := language.Parse(c.Locale); err != nil {
		errs = append(errs, fmt.Errorf("locale: %w", err))
	}
	if _, err := c.InitialSortState(); err != nil {
		errs = append(errs, err)
	}
	if c.UI.NotificationSeconds < 0 {
		errs = append(errs, errors.New("ui.notification_seconds must not be negative"))
	}
	return errors.Join(errs...)
}

// Language returns the configured locale, defaulting to English
func (c *Config) Language() language.Tag {
	tag, err := language.Parse(c.Locale)
	if err != nil {
		return language.English
	}
	return tag
}

// InitialSortState returns the sort state list views start in
func (c *Config) InitialSortState() (sortfilter.State, error) {
	field, err := sortfilter.ParseField(c.UI.DefaultSort)
	if err != nil {
		return sortfilter.State{}, fmt.Errorf("ui.default_sort: %w", err)
	}
	dir, err := sortfilter.ParseDirection(c.UI.DefaultDirection)
	if err != nil {
		return sortfilter.State{}, fmt.Errorf("ui.default_direction: %w", err)
	}
	return sortfilter.State{SortKey: field, Direction: dir}, nil
}

// NotificationDuration is how long error notifications stay visible
func (c *Config) NotificationDuration() time.Duration {
	return time.Duration(c.UI.NotificationSeconds) * time.Second
}

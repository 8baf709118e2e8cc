// ABOUTME: Settings loading with global + project YAML config merge and env overrides
// ABOUTME: Precedence: defaults < ~/.blinko-go < ./.blinko-go < BLINKO_* env < CLI flags

package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Default values applied before any file is read.
const (
	DefaultEndpoint  = "http://127.0.0.1:1111"
	DefaultLocale    = "en"
	DefaultTheme     = "dark"
	DefaultHideDelay = 40 * time.Millisecond
	DefaultTimeout   = 30 * time.Second
)

// Settings holds the merged configuration.
type Settings struct {
	Endpoint      string        `yaml:"endpoint,omitempty"`
	Locale        string        `yaml:"locale,omitempty"`
	Theme         string        `yaml:"theme,omitempty"`
	LogLevel      string        `yaml:"log_level,omitempty"`
	Timeout       time.Duration `yaml:"timeout,omitempty"`
	HideDelay     time.Duration `yaml:"popover_hide_delay,omitempty"`
	DirectPreview bool          `yaml:"direct_link_preview,omitempty"`
	// AI forces the AI features on or off regardless of the server config.
	// nil means "follow the server".
	AI *bool `yaml:"ai,omitempty"`
}

// Overrides carries CLI-flag values; zero values leave settings untouched.
type Overrides struct {
	Endpoint string
	Locale   string
	Theme    string
	Verbose  bool
}

// Defaults returns the built-in settings.
func Defaults() *Settings {
	return &Settings{
		Endpoint:  DefaultEndpoint,
		Locale:    DefaultLocale,
		Theme:     DefaultTheme,
		LogLevel:  "info",
		Timeout:   DefaultTimeout,
		HideDelay: DefaultHideDelay,
	}
}

// Load reads and merges global and project settings, then applies
// environment and CLI overrides.
func Load(projectRoot string, ov Overrides) (*Settings, error) {
	global, err := loadFile(GlobalConfigFile())
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("loading global config: %w", err)
	}

	project, err := loadFile(ProjectConfigFile(projectRoot))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("loading project config: %w", err)
	}

	merged := merge(merge(Defaults(), global), project)
	applyEnv(merged)
	applyOverrides(merged, ov)
	merged.Endpoint = strings.TrimRight(merged.Endpoint, "/")
	return merged, nil
}

// loadFile reads Settings from a YAML file. Returns empty Settings and the
// os error if the file does not exist.
func loadFile(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return &Settings{}, err
	}
	var s Settings
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return &s, nil
}

// Save writes settings to path as YAML, creating the parent directory.
func Save(path string, s *Settings) error {
	if err := EnsureDir(dirOf(path)); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}
	data, err := yaml.Marshal(s)
	if err != nil {
		return fmt.Errorf("marshaling settings: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// merge overlays non-zero fields of top onto base.
func merge(base, top *Settings) *Settings {
	if base == nil {
		base = &Settings{}
	}
	if top == nil {
		return base
	}
	result := *base
	if top.Endpoint != "" {
		result.Endpoint = top.Endpoint
	}
	if top.Locale != "" {
		result.Locale = top.Locale
	}
	if top.Theme != "" {
		result.Theme = top.Theme
	}
	if top.LogLevel != "" {
		result.LogLevel = top.LogLevel
	}
	if top.Timeout != 0 {
		result.Timeout = top.Timeout
	}
	if top.HideDelay != 0 {
		result.HideDelay = top.HideDelay
	}
	if top.DirectPreview {
		result.DirectPreview = true
	}
	if top.AI != nil {
		v := *top.AI
		result.AI = &v
	}
	return &result
}

func applyEnv(s *Settings) {
	if v := os.Getenv("BLINKO_ENDPOINT"); v != "" {
		s.Endpoint = v
	}
	if v := os.Getenv("BLINKO_LOCALE"); v != "" {
		s.Locale = v
	}
	if v := os.Getenv("BLINKO_THEME"); v != "" {
		s.Theme = v
	}
	if v := os.Getenv("BLINKO_LOG_LEVEL"); v != "" {
		s.LogLevel = v
	}
	if v := os.Getenv("BLINKO_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			s.Timeout = d
		}
	}
	if v := os.Getenv("BLINKO_AI"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			s.AI = &b
		}
	}
}

func applyOverrides(s *Settings, ov Overrides) {
	if ov.Endpoint != "" {
		s.Endpoint = ov.Endpoint
	}
	if ov.Locale != "" {
		s.Locale = ov.Locale
	}
	if ov.Theme != "" {
		s.Theme = ov.Theme
	}
	if ov.Verbose {
		s.LogLevel = "debug"
	}
}

// AIEnabled resolves the AI flag against the server-reported value.
func (s *Settings) AIEnabled(server bool) bool {
	if s.AI != nil {
		return *s.AI
	}
	return server
}

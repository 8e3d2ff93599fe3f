package config

import (
	"fmt"
	"net/url"
	"os"
	"time"

	"github.com/brogergvhs/apodd/internal/extract"
	"github.com/brogergvhs/apodd/internal/util"

	"gopkg.in/yaml.v3"
)

const (
	defaultBaseURL        = "https://apod.nasa.gov/apod/"
	defaultTimeoutSeconds = 30
	defaultExtractor      = "regex"
)

type Config struct {
	SaveDir        string `yaml:"save_directory"`
	BaseURL        string `yaml:"base_url"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
	Extractor      string `yaml:"extractor"`
	FetchOnStart   bool   `yaml:"fetch_on_start"`
	Debug          bool   `yaml:"debug"`
	LogFile        string `yaml:"log_file"`

	Cookie           string `yaml:"cookie"`
	CookieFile       string `yaml:"cookie_file"`
	UserAgent        string `yaml:"user_agent"`
	CloudflareBypass bool   `yaml:"cloudflare_bypass"`
}

type Options struct {
	IgnoreConfig     bool
	Debug            bool
	SaveDir          string
	BaseURL          string
	Extractor        string
	TimeoutSeconds   int
	Cookie           string
	CookieFile       string
	UserAgent        string
	CloudflareBypass bool
	NoFetchOnStart   bool
}

func DefaultConfig() *Config {
	return &Config{
		SaveDir:          ".",
		BaseURL:          defaultBaseURL,
		TimeoutSeconds:   defaultTimeoutSeconds,
		Extractor:        defaultExtractor,
		FetchOnStart:     true,
		Debug:            false,
		LogFile:          "",
		Cookie:           "",
		CookieFile:       "",
		UserAgent:        "",
		CloudflareBypass: false,
	}
}

// SaveDirectory returns the configured save directory with ~ expanded.
func (c *Config) SaveDirectory() string {
	return util.ExpandHome(c.SaveDir)
}

func (c *Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

func SaveYAML(cfg *Config, path string) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

func loadYAML(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	c := DefaultConfig()
	if err := yaml.Unmarshal(b, c); err != nil {
		return nil, err
	}

	return c, nil
}

// LoadFile reads and validates a single profile.
func LoadFile(path string) (*Config, error) {
	c, err := loadYAML(path)
	if err != nil {
		return nil, err
	}

	return c, c.Validate()
}

// Validate reports values that would only fail later, at fetch time.
func (c *Config) Validate() error {
	if c.TimeoutSeconds < 0 {
		return fmt.Errorf("timeout_seconds must not be negative, got %d", c.TimeoutSeconds)
	}

	if c.BaseURL != "" {
		u, err := url.Parse(c.BaseURL)
		if err != nil {
			return fmt.Errorf("invalid base_url: %w", err)
		}
		if !u.IsAbs() {
			return fmt.Errorf("base_url must be absolute, got %q", c.BaseURL)
		}
	}

	if _, err := extract.New(c.Extractor); err != nil {
		return err
	}

	return nil
}

func LoadMerged(opts Options) (*Config, string, error) {
	if opts.IgnoreConfig {
		cfg := DefaultConfig()
		mergeConfig(cfg, opts)
		normalizeDefaults(cfg)
		return cfg, "(ignored config)", nil
	}

	activePath, err := ActiveConfigPath()
	if err == ErrNoConfig || activePath == "" {
		cfg := DefaultConfig()
		applyEnv(cfg)
		mergeConfig(cfg, opts)
		normalizeDefaults(cfg)
		return cfg, "(default config in memory)\nRun `apodd config init` to create an actual config\n", nil
	}
	if err != nil {
		return nil, "", err
	}

	cfg, err := loadYAML(activePath)
	if err != nil {
		return nil, "", fmt.Errorf("failed to load config %s: %w", activePath, err)
	}

	applyEnv(cfg)
	mergeConfig(cfg, opts)
	normalizeDefaults(cfg)

	return cfg, activePath, nil
}

func mergeConfig(c *Config, o Options) {
	if o.Debug {
		c.Debug = true
	}
	if o.SaveDir != "" {
		c.SaveDir = o.SaveDir
	}
	if o.BaseURL != "" {
		c.BaseURL = o.BaseURL
	}
	if o.Extractor != "" {
		c.Extractor = o.Extractor
	}
	if o.TimeoutSeconds != 0 {
		c.TimeoutSeconds = o.TimeoutSeconds
	}
	if o.Cookie != "" {
		c.Cookie = o.Cookie
	}
	if o.CookieFile != "" {
		c.CookieFile = o.CookieFile
	}
	if o.UserAgent != "" {
		c.UserAgent = o.UserAgent
	}
	if o.CloudflareBypass {
		c.CloudflareBypass = true
	}
	if o.NoFetchOnStart {
		c.FetchOnStart = false
	}
}

func normalizeDefaults(c *Config) {
	if c.SaveDir == "" {
		c.SaveDir = "."
	}
	if c.BaseURL == "" {
		c.BaseURL = defaultBaseURL
	}
	if c.TimeoutSeconds <= 0 {
		c.TimeoutSeconds = defaultTimeoutSeconds
	}
	if c.Extractor == "" {
		c.Extractor = defaultExtractor
	}
}

func (c *Config) Print() {
	fmt.Printf(" -save_directory: %s\n", c.SaveDir)
	if c.BaseURL != defaultBaseURL {
		fmt.Printf(" -base_url: %s\n", c.BaseURL)
	}
	fmt.Printf(" -timeout_seconds: %d\n", c.TimeoutSeconds)
	fmt.Printf(" -extractor: %s\n", c.Extractor)
	fmt.Printf(" -fetch_on_start: %t\n", c.FetchOnStart)
	if c.Debug {
		fmt.Printf(" -debug: %t\n", c.Debug)
	}
	if c.LogFile != "" {
		fmt.Printf(" -log_file: %s\n", c.LogFile)
	}
	if c.CookieFile != "" {
		fmt.Printf(" -cookie_file: %s\n", c.CookieFile)
	}
	if c.UserAgent != "" {
		fmt.Printf(" -user_agent: %s\n", c.UserAgent)
	}
	if c.CloudflareBypass {
		fmt.Printf(" -cloudflare_bypass: %t\n", c.CloudflareBypass)
	}
}

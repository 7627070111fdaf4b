package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/msaldanha/nulldev/err"
	"github.com/msaldanha/nulldev/timeline"
)

const (
	ErrInvalidConfig = err.Error("invalid configuration")

	EnvAPIKey      = "DF_API_KEY"
	EnvGatewayAddr = "NULLDEV_GATEWAY_ADDR"
	EnvGatewayURL  = "NULLDEV_GATEWAY_URL"
	EnvLogLevel    = "NULLDEV_LOG_LEVEL"
	EnvPageSize    = "NULLDEV_PAGE_SIZE"
)

// Config holds the settings of the gateway and the viewers.
type Config struct {
	Gateway    GatewayConfig    `yaml:"gateway"`
	Viewer     ViewerConfig     `yaml:"viewer"`
	Images     ImagesConfig     `yaml:"images"`
	Normalizer NormalizerConfig `yaml:"normalizer"`
	Logging    LoggingConfig    `yaml:"logging"`

	// APIKey is only ever read from the environment.
	APIKey string `yaml:"-"`
}

type GatewayConfig struct {
	Addr            string `yaml:"addr"`
	Path            string `yaml:"path"`
	UpstreamBaseURL string `yaml:"upstream_base_url"`
}

type ViewerConfig struct {
	GatewayURL      string `yaml:"gateway_url"`
	DefaultServer   string `yaml:"default_server"`
	PageSize        int    `yaml:"page_size"`
	WindowDays      int    `yaml:"window_days"`
	SearchLimit     int    `yaml:"search_limit"`
	ScrollThreshold int    `yaml:"scroll_threshold"` // lines left below the viewport
}

type ImagesConfig struct {
	BaseURL string `yaml:"base_url"`
}

type NormalizerConfig struct {
	Rules []timeline.Rule `yaml:"rules"`
}

type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
	File  string `yaml:"file"`
}

func DefaultConfig() *Config {
	return &Config{
		Gateway: GatewayConfig{
			Addr:            ":8080",
			Path:            "/proxy",
			UpstreamBaseURL: "https://api.neople.co.kr/df",
		},
		Viewer: ViewerConfig{
			GatewayURL:      "http://localhost:8080/proxy",
			DefaultServer:   "cain",
			PageSize:        100,
			WindowDays:      30,
			SearchLimit:     10,
			ScrollThreshold: 5,
		},
		Images: ImagesConfig{
			BaseURL: "https://img-api.neople.co.kr/df",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load reads the YAML file at path over the defaults and applies the
// environment. An empty path skips the file.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path != "" {
		data, er := os.ReadFile(path)
		if er != nil {
			return nil, fmt.Errorf("failed to read config: %w", er)
		}
		if er := yaml.Unmarshal(data, cfg); er != nil {
			return nil, fmt.Errorf("failed to parse config: %w", er)
		}
	}
	cfg.applyEnvOverrides()
	if er := cfg.Validate(); er != nil {
		return nil, er
	}
	return cfg, nil
}

// Save writes the configuration, without the key, to path.
func (c *Config) Save(path string) error {
	data, er := yaml.Marshal(c)
	if er != nil {
		return fmt.Errorf("failed to marshal config: %w", er)
	}
	return os.WriteFile(path, data, 0o644)
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv(EnvAPIKey); v != "" {
		c.APIKey = v
	}
	if v := os.Getenv(EnvGatewayAddr); v != "" {
		c.Gateway.Addr = v
	}
	if v := os.Getenv(EnvGatewayURL); v != "" {
		c.Viewer.GatewayURL = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv(EnvPageSize); v != "" {
		if n, er := strconv.Atoi(v); er == nil {
			c.Viewer.PageSize = n
		}
	}
}

func (c *Config) Validate() error {
	if c.Viewer.PageSize <= 0 {
		return fmt.Errorf("%w: viewer.page_size must be positive", ErrInvalidConfig)
	}
	if c.Viewer.WindowDays <= 0 {
		return fmt.Errorf("%w: viewer.window_days must be positive", ErrInvalidConfig)
	}
	if c.Viewer.SearchLimit <= 0 {
		return fmt.Errorf("%w: viewer.search_limit must be positive", ErrInvalidConfig)
	}
	if c.Viewer.ScrollThreshold <= 0 {
		return fmt.Errorf("%w: viewer.scroll_threshold must be positive", ErrInvalidConfig)
	}
	for _, r := range c.Normalizer.Rules {
		if er := r.Validate(); er != nil {
			return fmt.Errorf("%w: normalizer rule %q: %s", ErrInvalidConfig, r.Code, er)
		}
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: unknown log level %q", ErrInvalidConfig, c.Logging.Level)
	}
	return nil
}

// RequireAPIKey fails when the gateway has no key to attach.
func (c *Config) RequireAPIKey() error {
	if c.APIKey == "" {
		return fmt.Errorf("%w: %s is not set", ErrInvalidConfig, EnvAPIKey)
	}
	return nil
}

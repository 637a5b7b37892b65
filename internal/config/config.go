// Package config loads and validates crawler configuration via Viper.
package config

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/JakeFAU/govbills-crawler/internal/sites"
)

// Storage drivers.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// EnvPrefix namespaces environment overrides, e.g. GOVBILLS_STORAGE_PATH.
const EnvPrefix = "GOVBILLS"

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid config")

// Config captures all service configuration knobs loaded via Viper.
type Config struct {
	Crawler CrawlerConfig `mapstructure:"crawler"`
	Sites   SitesConfig   `mapstructure:"sites"`
	Storage StorageConfig `mapstructure:"storage"`
	Logging LoggingConfig `mapstructure:"logging"`
	Metrics MetricsConfig `mapstructure:"metrics"`
}

// CrawlerConfig governs dispatcher and fetch behavior.
type CrawlerConfig struct {
	Concurrency           int     `mapstructure:"concurrency"`
	UserAgent             string  `mapstructure:"user_agent"`
	RespectRobots         bool    `mapstructure:"respect_robots"`
	MaxDepth              int     `mapstructure:"max_depth"`
	MaxPages              int     `mapstructure:"max_pages"`
	MaxRetries            int     `mapstructure:"max_retries"`
	RequestTimeoutSeconds int     `mapstructure:"request_timeout_seconds"`
	DelaySeconds          float64 `mapstructure:"delay_seconds"`
	CategoryLinkCap       int     `mapstructure:"category_link_cap"`
}

// SitesConfig selects sites and their politeness delays in seconds.
type SitesConfig struct {
	Enabled []string           `mapstructure:"enabled"`
	Delays  map[string]float64 `mapstructure:"delays"`
}

// StorageConfig picks the relational backend.
type StorageConfig struct {
	Driver   string `mapstructure:"driver"`
	Path     string `mapstructure:"path"`
	DSN      string `mapstructure:"dsn"`
	MaxConns int32  `mapstructure:"max_conns"`
}

// LoggingConfig toggles zap development features.
type LoggingConfig struct {
	Development bool `mapstructure:"development"`
}

// MetricsConfig enables the /metrics endpoint when Addr is set.
type MetricsConfig struct {
	Addr string `mapstructure:"addr"`
}

// Load builds a Config from disk/environment.
func Load(path string) (Config, error) {
	return LoadViper(viper.New(), path)
}

// LoadViper is Load over a caller-owned Viper, typically one with CLI flags
// already bound.
func LoadViper(v *viper.Viper, path string) (Config, error) {
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("crawler.concurrency", 4)
	v.SetDefault("crawler.user_agent", "govbills-crawler/1.0 (+https://github.com/JakeFAU/govbills-crawler)")
	v.SetDefault("crawler.respect_robots", true)
	v.SetDefault("crawler.max_depth", 3)
	v.SetDefault("crawler.max_pages", 500)
	v.SetDefault("crawler.max_retries", 3)
	v.SetDefault("crawler.request_timeout_seconds", 30)
	v.SetDefault("crawler.delay_seconds", 1.0)
	v.SetDefault("crawler.category_link_cap", 0)
	v.SetDefault("sites.enabled", []string{"all"})
	v.SetDefault("sites.delays.congress", 3.0)
	v.SetDefault("sites.delays.govtrack", 2.0)
	v.SetDefault("sites.delays.whitehouse", 1.0)
	v.SetDefault("storage.driver", DriverSQLite)
	v.SetDefault("storage.path", "government_bills.db")
	v.SetDefault("storage.max_conns", 4)
	v.SetDefault("logging.development", true)
	v.SetDefault("metrics.addr", "")
}

// Validate enforces required values and reasonable limits.
func (c Config) Validate() error {
	if c.Crawler.Concurrency <= 0 {
		return fmt.Errorf("%w: crawler.concurrency must be > 0", ErrInvalid)
	}
	if c.Crawler.MaxDepth < 0 || c.Crawler.MaxPages < 0 {
		return fmt.Errorf("%w: crawler.max_depth and crawler.max_pages must be >= 0", ErrInvalid)
	}
	if c.Crawler.RequestTimeoutSeconds <= 0 {
		return fmt.Errorf("%w: crawler.request_timeout_seconds must be > 0", ErrInvalid)
	}
	if c.Crawler.DelaySeconds < 0 {
		return fmt.Errorf("%w: crawler.delay_seconds must be >= 0", ErrInvalid)
	}
	if len(c.Sites.Enabled) == 0 {
		return fmt.Errorf("%w: sites.enabled must name at least one site", ErrInvalid)
	}
	known := sites.IDs()
	for _, id := range c.Sites.Enabled {
		if id = strings.ToLower(strings.TrimSpace(id)); id != "all" && !slices.Contains(known, id) {
			return fmt.Errorf("%w: unknown site %q in sites.enabled", ErrInvalid, id)
		}
	}
	for id, d := range c.Sites.Delays {
		if d < 0 {
			return fmt.Errorf("%w: sites.delays.%s must be >= 0", ErrInvalid, id)
		}
	}
	switch c.Storage.Driver {
	case DriverSQLite:
		if c.Storage.Path == "" {
			return fmt.Errorf("%w: storage.path is required for sqlite", ErrInvalid)
		}
	case DriverPostgres:
		if c.Storage.DSN == "" {
			return fmt.Errorf("%w: storage.dsn is required for postgres", ErrInvalid)
		}
	default:
		return fmt.Errorf("%w: storage.driver must be %q or %q, got %q",
			ErrInvalid, DriverSQLite, DriverPostgres, c.Storage.Driver)
	}
	return nil
}

// SiteIDs resolves sites.enabled to concrete site identifiers.
func (c Config) SiteIDs() []string {
	ids := make([]string, 0, len(c.Sites.Enabled))
	for _, id := range c.Sites.Enabled {
		ids = append(ids, strings.ToLower(strings.TrimSpace(id)))
	}
	return sites.Expand(ids)
}

// RequestTimeout is the per-request fetch timeout.
func (c Config) RequestTimeout() time.Duration {
	return time.Duration(c.Crawler.RequestTimeoutSeconds) * time.Second
}

// DefaultDelay spaces requests to hosts no site claims.
func (c Config) DefaultDelay() time.Duration {
	return seconds(c.Crawler.DelaySeconds)
}

// SiteDelay is the politeness delay for a site, falling back to DefaultDelay.
func (c Config) SiteDelay(id string) time.Duration {
	if d, ok := c.Sites.Delays[id]; ok {
		return seconds(d)
	}
	return c.DefaultDelay()
}

func seconds(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}

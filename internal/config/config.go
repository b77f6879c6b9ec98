package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	defaultPort         = 8080
	defaultUpstreamBase = "https://api.openaq.org"
	defaultPathPrefix   = "/v1/"
	defaultCacheTTL     = 60 * time.Second
)

type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Upstream UpstreamConfig `yaml:"upstream"`
	Cache    CacheConfig    `yaml:"cache"`
}

type ServerConfig struct {
	Port       int      `yaml:"port"`
	BlockCIDRs []string `yaml:"blockCIDRs"`
}

type UpstreamConfig struct {
	BaseURL    string `yaml:"baseURL"`
	APIKey     string `yaml:"apiKey"`
	PathPrefix string `yaml:"pathPrefix"`
}

type CacheConfig struct {
	TTL Duration `yaml:"ttl"`
}

// Duration is a time.Duration that unmarshals from YAML strings like "60s".
type Duration time.Duration

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	dur, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("parse duration %q: %w", s, err)
	}
	*d = Duration(dur)
	return nil
}

func (d Duration) String() string {
	return time.Duration(d).String()
}

// Load reads the YAML config at path, then applies environment overrides
// (PORT, UPSTREAM_BASE_URL, UPSTREAM_API_KEY) and defaults. A missing
// config file is not an error; the service runs on env and defaults alone.
func Load(path string) (*Config, error) {
	var cfg Config

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("unmarshal yaml: %w", err)
		}
	case os.IsNotExist(err):
		// env-only startup
	default:
		return nil, fmt.Errorf("read config: %w", err)
	}

	if v := os.Getenv("PORT"); v != "" {
		p, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("parse PORT %q: %w", v, err)
		}
		cfg.Server.Port = p
	}
	if v := os.Getenv("UPSTREAM_BASE_URL"); v != "" {
		cfg.Upstream.BaseURL = v
	}
	if v := os.Getenv("UPSTREAM_API_KEY"); v != "" {
		cfg.Upstream.APIKey = v
	}

	if cfg.Server.Port <= 0 {
		cfg.Server.Port = defaultPort
	}
	if cfg.Upstream.BaseURL == "" {
		cfg.Upstream.BaseURL = defaultUpstreamBase
	}
	cfg.Upstream.BaseURL = strings.TrimSuffix(cfg.Upstream.BaseURL, "/")

	if cfg.Upstream.PathPrefix == "" {
		cfg.Upstream.PathPrefix = defaultPathPrefix
	}
	if !strings.HasPrefix(cfg.Upstream.PathPrefix, "/") {
		cfg.Upstream.PathPrefix = "/" + cfg.Upstream.PathPrefix
	}
	if !strings.HasSuffix(cfg.Upstream.PathPrefix, "/") {
		cfg.Upstream.PathPrefix += "/"
	}

	if cfg.Cache.TTL <= 0 {
		cfg.Cache.TTL = Duration(defaultCacheTTL)
	}

	return &cfg, nil
}

func (cfg *Config) Address() string {
	return fmt.Sprintf(":%d", cfg.Server.Port)
}

func (cfg *Config) APIKeyConfigured() bool {
	return cfg.Upstream.APIKey != ""
}

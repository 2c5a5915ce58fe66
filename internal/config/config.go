package config

import (
	"fmt"
	"os"
	"time"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

// rapidAPIPlaceholder is the key value shipped in sample configs. It is
// treated the same as an unset key.
const rapidAPIPlaceholder = "YOUR_RAPIDAPI_KEY"

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Resolver ResolverConfig `yaml:"resolver"`
	Twitter  TwitterConfig  `yaml:"twitter"`
	RapidAPI RapidAPIConfig `yaml:"rapidapi"`
	Download DownloadConfig `yaml:"download"`
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Host         string        `yaml:"host" envconfig:"SERVER_HOST" default:"0.0.0.0"`
	Port         int           `yaml:"port" envconfig:"PORT" default:"3000"`
	PublicDir    string        `yaml:"public_dir" envconfig:"PUBLIC_DIR" default:"public"`
	ReadTimeout  time.Duration `yaml:"read_timeout" envconfig:"SERVER_READ_TIMEOUT" default:"30s"`
	WriteTimeout time.Duration `yaml:"write_timeout" envconfig:"SERVER_WRITE_TIMEOUT" default:"0s"`
}

// ResolverConfig holds settings shared by the keyless providers.
type ResolverConfig struct {
	Timeout          time.Duration `yaml:"timeout" envconfig:"RESOLVER_TIMEOUT" default:"30s"`
	YtDlpPath        string        `yaml:"ytdlp_path" envconfig:"YTDLP_PATH" default:"yt-dlp"`
	VxTwitterBaseURL string        `yaml:"vxtwitter_base_url" envconfig:"VXTWITTER_BASE_URL" default:"https://api.vxtwitter.com"`
	TwitSaveBaseURL  string        `yaml:"twitsave_base_url" envconfig:"TWITSAVE_BASE_URL" default:"https://twitsave.com"`
	SaveTweetVidURL  string        `yaml:"savetweetvid_base_url" envconfig:"SAVETWEETVID_BASE_URL" default:"https://www.savetweetvid.com"`
	UserAgent        string        `yaml:"user_agent" envconfig:"RESOLVER_USER_AGENT" default:"Mozilla/5.0"`
}

// TwitterConfig holds official API v2 configuration.
type TwitterConfig struct {
	BearerToken string `yaml:"bearer_token" envconfig:"TWITTER_BEARER_TOKEN"`
	BaseURL     string `yaml:"base_url" envconfig:"TWITTER_API_BASE_URL" default:"https://api.twitter.com"`
}

// Enabled reports whether a bearer token is configured.
func (c TwitterConfig) Enabled() bool {
	return c.BearerToken != ""
}

// RapidAPIConfig holds the keyed aggregator configuration.
type RapidAPIConfig struct {
	Key     string `yaml:"key" envconfig:"RAPIDAPI_KEY"`
	Host    string `yaml:"host" envconfig:"RAPIDAPI_HOST" default:"twitter-downloader-download-twitter-videos-gifs-and-images.p.rapidapi.com"`
	BaseURL string `yaml:"base_url" envconfig:"RAPIDAPI_BASE_URL"`
}

// Enabled reports whether a real aggregator key is configured.
func (c RapidAPIConfig) Enabled() bool {
	return c.Key != "" && c.Key != rapidAPIPlaceholder
}

// Endpoint returns the base URL, derived from Host when not set explicitly.
func (c RapidAPIConfig) Endpoint() string {
	if c.BaseURL != "" {
		return c.BaseURL
	}
	return "https://" + c.Host
}

// DownloadConfig holds media relay configuration.
type DownloadConfig struct {
	HeaderTimeout time.Duration `yaml:"header_timeout" envconfig:"DOWNLOAD_HEADER_TIMEOUT" default:"30s"`
	UserAgent     string        `yaml:"user_agent" envconfig:"DOWNLOAD_USER_AGENT" default:"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"`
}

// Load reads configuration from file and environment variables.
// Environment variables override file values.
func Load(configPath string) (*Config, error) {
	cfg := &Config{}

	if configPath != "" {
		data, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config file: %w", err)
		}
	}

	if err := envconfig.Process("", cfg); err != nil {
		return nil, fmt.Errorf("process environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return cfg, nil
}

// Validate checks that configuration values are usable.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("PORT must be between 1 and 65535, got %d", c.Server.Port)
	}
	if c.Resolver.YtDlpPath == "" {
		return fmt.Errorf("YTDLP_PATH is required")
	}
	if c.Resolver.Timeout < 0 {
		return fmt.Errorf("RESOLVER_TIMEOUT must not be negative")
	}
	return nil
}

// Address returns the server address in host:port format.
func (c *ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

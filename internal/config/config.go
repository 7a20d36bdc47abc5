// Package config loads and validates the service configuration from a YAML
// file with environment variable overrides.
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

// Default timeouts and limits.
const (
	DefaultServerAddress  = ":8080"
	DefaultReadTimeout    = 10 * time.Second
	DefaultWriteTimeout   = 30 * time.Second
	DefaultPublishTimeout = 30 * time.Second

	DefaultMaxContentLength = 100000
	DefaultMaxImages        = 20
	DefaultMaxBatchSize     = 100
	DefaultConcurrency      = 3
	DefaultMaxRetries       = 3
)

// Platform identifiers known to the service.
const (
	PlatformWebflow   = "webflow"
	PlatformWordPress = "wordpress"
	PlatformLinkedIn  = "linkedin"
	PlatformTwitter   = "twitter"
)

// PlatformNames lists the known platforms in registration order.
var PlatformNames = []string{PlatformWebflow, PlatformWordPress, PlatformLinkedIn, PlatformTwitter}

type Config struct {
	Debug     bool            `yaml:"debug"` // Controls log level and format
	Server    ServerConfig    `yaml:"server"`
	Auth      AuthConfig      `yaml:"auth"`
	Limits    LimitsConfig    `yaml:"limits"`
	CORS      CORSConfig      `yaml:"cors"`
	Platforms PlatformsConfig `yaml:"platforms"`
}

type ServerConfig struct {
	Address      string        `yaml:"address"`       // e.g. ":8080"
	ReadTimeout  time.Duration `yaml:"read_timeout"`  // Default: 10s
	WriteTimeout time.Duration `yaml:"write_timeout"` // Default: 30s
}

// AuthConfig holds the static bearer token protecting the publish endpoints.
type AuthConfig struct {
	Token string `yaml:"token"`
}

// LimitsConfig holds operational limits for content processing and
// publishing.
type LimitsConfig struct {
	MaxContentLength    int           `yaml:"max_content_length"`    // HTML body cap in chars
	MaxImagesPerContent int           `yaml:"max_images_per_content"`
	MaxBatchSize        int           `yaml:"max_batch_size"`
	DefaultConcurrency  int           `yaml:"default_concurrency"` // Batch default when unset
	PublishTimeout      time.Duration `yaml:"publish_timeout"`     // Per platform API call
	MaxRetries          int           `yaml:"max_retries"`         // Reserved; no retry policy yet
}

type CORSConfig struct {
	AllowedOrigins []string `yaml:"allowed_origins"`
}

// PlatformsConfig carries one credential bundle per supported platform.
type PlatformsConfig struct {
	Webflow   WebflowConfig   `yaml:"webflow"`
	WordPress WordPressConfig `yaml:"wordpress"`
	LinkedIn  LinkedInConfig  `yaml:"linkedin"`
	Twitter   TwitterConfig   `yaml:"twitter"`
}

type WebflowConfig struct {
	APIKey       string `yaml:"api_key"`
	SiteID       string `yaml:"site_id"`
	CollectionID string `yaml:"collection_id"`
	BaseURL      string `yaml:"base_url"` // Override for testing; defaults to the public API
}

type WordPressConfig struct {
	SiteURL     string `yaml:"site_url"`
	Username    string `yaml:"username"`
	Password    string `yaml:"password"`
	AppPassword string `yaml:"app_password"`
}

type LinkedInConfig struct {
	AccessToken string `yaml:"access_token"`
	UserID      string `yaml:"user_id"`
}

type TwitterConfig struct {
	APIKey            string `yaml:"api_key"`
	APISecret         string `yaml:"api_secret"`
	AccessToken       string `yaml:"access_token"`
	AccessTokenSecret string `yaml:"access_token_secret"`
}

// Credentials returns the credential bundle for a platform as a field
// name to value map. Unknown platforms return an empty map.
func (c *Config) Credentials(platform string) map[string]string {
	switch platform {
	case PlatformWebflow:
		return map[string]string{
			"api_key":       c.Platforms.Webflow.APIKey,
			"site_id":       c.Platforms.Webflow.SiteID,
			"collection_id": c.Platforms.Webflow.CollectionID,
		}
	case PlatformWordPress:
		password := c.Platforms.WordPress.Password
		if password == "" {
			password = c.Platforms.WordPress.AppPassword
		}
		return map[string]string{
			"site_url": c.Platforms.WordPress.SiteURL,
			"username": c.Platforms.WordPress.Username,
			"password": password,
		}
	case PlatformLinkedIn:
		return map[string]string{
			"access_token": c.Platforms.LinkedIn.AccessToken,
			"user_id":      c.Platforms.LinkedIn.UserID,
		}
	case PlatformTwitter:
		return map[string]string{
			"api_key":             c.Platforms.Twitter.APIKey,
			"api_secret":          c.Platforms.Twitter.APISecret,
			"access_token":        c.Platforms.Twitter.AccessToken,
			"access_token_secret": c.Platforms.Twitter.AccessTokenSecret,
		}
	default:
		return map[string]string{}
	}
}

// IsPlatformConfigured reports whether every credential field of the
// platform bundle is present.
func (c *Config) IsPlatformConfigured(platform string) bool {
	creds := c.Credentials(platform)
	if len(creds) == 0 {
		return false
	}
	for _, v := range creds {
		if v == "" {
			return false
		}
	}
	return true
}

// EnabledPlatforms returns the fully configured platforms in registration
// order.
func (c *Config) EnabledPlatforms() []string {
	var enabled []string
	for _, name := range PlatformNames {
		if c.IsPlatformConfigured(name) {
			enabled = append(enabled, name)
		}
	}
	return enabled
}

// Validate checks the configuration and returns an error if it is unusable.
func (c *Config) Validate() error {
	if c.Auth.Token == "" {
		return errors.New("auth.token is required")
	}
	if c.Limits.MaxContentLength <= 0 {
		return fmt.Errorf("limits.max_content_length must be positive, got %d", c.Limits.MaxContentLength)
	}
	if c.Limits.MaxBatchSize <= 0 {
		return fmt.Errorf("limits.max_batch_size must be positive, got %d", c.Limits.MaxBatchSize)
	}
	if c.Limits.PublishTimeout <= 0 {
		return fmt.Errorf("limits.publish_timeout must be positive, got %v", c.Limits.PublishTimeout)
	}
	return nil
}

// setDefaults sets default values for configuration fields.
func setDefaults(cfg *Config) {
	if cfg.Server.Address == "" {
		cfg.Server.Address = DefaultServerAddress
	}
	if cfg.Server.ReadTimeout == 0 {
		cfg.Server.ReadTimeout = DefaultReadTimeout
	}
	if cfg.Server.WriteTimeout == 0 {
		cfg.Server.WriteTimeout = DefaultWriteTimeout
	}
	if cfg.Limits.MaxContentLength == 0 {
		cfg.Limits.MaxContentLength = DefaultMaxContentLength
	}
	if cfg.Limits.MaxImagesPerContent == 0 {
		cfg.Limits.MaxImagesPerContent = DefaultMaxImages
	}
	if cfg.Limits.MaxBatchSize == 0 {
		cfg.Limits.MaxBatchSize = DefaultMaxBatchSize
	}
	if cfg.Limits.DefaultConcurrency == 0 {
		cfg.Limits.DefaultConcurrency = DefaultConcurrency
	}
	if cfg.Limits.PublishTimeout == 0 {
		cfg.Limits.PublishTimeout = DefaultPublishTimeout
	}
	if cfg.Limits.MaxRetries == 0 {
		cfg.Limits.MaxRetries = DefaultMaxRetries
	}
}

// overrideWithEnvVars overrides configuration with environment variables.
func overrideWithEnvVars(cfg *Config) {
	if appDebug := os.Getenv("APP_DEBUG"); appDebug != "" {
		cfg.Debug = parseBool(appDebug)
	}
	if port := os.Getenv("PORT"); port != "" {
		cfg.Server.Address = ":" + port
	}
	if token := os.Getenv("API_TOKEN"); token != "" {
		cfg.Auth.Token = token
	}
	if origins := os.Getenv("CORS_ORIGINS"); origins != "" {
		parts := strings.Split(origins, ",")
		for i, p := range parts {
			parts[i] = strings.TrimSpace(p)
		}
		cfg.CORS.AllowedOrigins = parts
	}
	if v := os.Getenv("MAX_BATCH_SIZE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.Limits.MaxBatchSize = n
		}
	}

	overridePlatformEnvVars(cfg)
}

// overridePlatformEnvVars overrides platform credentials from environment
// variables, matching the deployment convention of one variable per field.
func overridePlatformEnvVars(cfg *Config) {
	setIfPresent := func(dst *string, key string) {
		if v := os.Getenv(key); v != "" {
			*dst = v
		}
	}

	setIfPresent(&cfg.Platforms.Webflow.APIKey, "WEBFLOW_API_KEY")
	setIfPresent(&cfg.Platforms.Webflow.SiteID, "WEBFLOW_SITE_ID")
	setIfPresent(&cfg.Platforms.Webflow.CollectionID, "WEBFLOW_COLLECTION_ID")

	setIfPresent(&cfg.Platforms.WordPress.SiteURL, "WORDPRESS_SITE_URL")
	setIfPresent(&cfg.Platforms.WordPress.Username, "WORDPRESS_USERNAME")
	setIfPresent(&cfg.Platforms.WordPress.Password, "WORDPRESS_PASSWORD")
	setIfPresent(&cfg.Platforms.WordPress.AppPassword, "WORDPRESS_APP_PASSWORD")

	setIfPresent(&cfg.Platforms.LinkedIn.AccessToken, "LINKEDIN_ACCESS_TOKEN")
	setIfPresent(&cfg.Platforms.LinkedIn.UserID, "LINKEDIN_USER_ID")

	setIfPresent(&cfg.Platforms.Twitter.APIKey, "TWITTER_API_KEY")
	setIfPresent(&cfg.Platforms.Twitter.APISecret, "TWITTER_API_SECRET")
	setIfPresent(&cfg.Platforms.Twitter.AccessToken, "TWITTER_ACCESS_TOKEN")
	setIfPresent(&cfg.Platforms.Twitter.AccessTokenSecret, "TWITTER_ACCESS_TOKEN_SECRET")
}

// Load reads a YAML config file, applies defaults and environment overrides,
// and validates the result.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	setDefaults(&cfg)
	overrideWithEnvVars(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

// parseBool parses a string value as a boolean. Returns true for "true",
// "1", "yes" (case-insensitive), false otherwise.
func parseBool(s string) bool {
	s = strings.ToLower(strings.TrimSpace(s))
	return s == "true" || s == "1" || s == "yes"
}

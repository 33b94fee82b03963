package config

import (
	"fmt"
	"log"
	"net/url"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server  ServerConfig  `yaml:"server"`
	API     APIConfig     `yaml:"api"`
	Auth    AuthConfig    `yaml:"auth"`
	Display DisplayConfig `yaml:"display"`
	Views   ViewsConfig   `yaml:"views"`
	Metrics MetricsConfig `yaml:"metrics"`
}

type ServerConfig struct {
	Addr string `yaml:"addr"`
}

type APIConfig struct {
	BaseURL string `yaml:"base_url"`
}

type AuthConfig struct {
	CookieName string `yaml:"cookie_name"`
	SigningKey string `yaml:"signing_key"`
}

type DisplayConfig struct {
	Timezone            string `yaml:"timezone"`
	FallbackServiceName string `yaml:"fallback_service_name"`
}

type ViewsConfig struct {
	SessionCookie string        `yaml:"session_cookie"`
	TTL           time.Duration `yaml:"ttl"`
}

type MetricsConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
}

func Default() *Config {
	return &Config{
		Server:  ServerConfig{Addr: ":80"},
		API:     APIConfig{BaseURL: "http://localhost:8000/api"},
		Auth:    AuthConfig{CookieName: "access_token"},
		Display: DisplayConfig{Timezone: "Local", FallbackServiceName: "Service"},
		Views:   ViewsConfig{SessionCookie: "view_session", TTL: 30 * time.Minute},
		Metrics: MetricsConfig{Enabled: true, Path: "/metrics"},
	}
}

// Load reads defaults, then the YAML file at path (if any, with ${VAR}
// expansion), then environment overrides.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config %v: %w", path, err)
		}
		expanded := []byte(os.ExpandEnv(string(data)))
		if err := yaml.Unmarshal(expanded, cfg); err != nil {
			return nil, fmt.Errorf("parse config %v: %w", path, err)
		}
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	c.Server.Addr = getEnvOrDefault("LISTEN_ADDR", c.Server.Addr)
	c.API.BaseURL = getEnvOrDefault("API_BASE_URL", c.API.BaseURL)
	c.Auth.CookieName = getEnvOrDefault("AUTH_COOKIE", c.Auth.CookieName)
	c.Display.Timezone = getEnvOrDefault("DISPLAY_TIMEZONE", c.Display.Timezone)
	c.Views.TTL = getEnvAsDurationOrDefault("VIEW_SESSION_TTL", c.Views.TTL)
	c.Metrics.Enabled = getEnvAsBoolOrDefault("METRICS_ENABLED", c.Metrics.Enabled)

	if sign, err := GetSecret("SIGN"); err == nil && sign != "" {
		c.Auth.SigningKey = sign
	}
}

func (c *Config) Validate() error {
	u, err := url.Parse(c.API.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("api base url %q must be an absolute http(s) url", c.API.BaseURL)
	}
	if c.Auth.SigningKey == "" {
		return fmt.Errorf("no signing key configured, set SIGN or auth.signing_key")
	}
	if c.Auth.CookieName == "" || c.Views.SessionCookie == "" {
		return fmt.Errorf("cookie names cannot be empty")
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	return nil
}

// Location resolves the display timezone. "" and "Local" mean the host zone.
func (c *Config) Location() (*time.Location, error) {
	if c.Display.Timezone == "" || c.Display.Timezone == "Local" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Display.Timezone)
	if err != nil {
		return nil, fmt.Errorf("unknown display timezone %q: %w", c.Display.Timezone, err)
	}
	return loc, nil
}

func GetSecret(key string) (string, error) {
	val, exist := os.LookupEnv(key)
	if exist {
		return val, nil
	}
	return "", fmt.Errorf("no env variable with key %v", key)
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
		log.Printf("Environment variable %s has invalid value %q, using default value", key, value)
	}
	return defaultValue
}

func getEnvAsDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
		log.Printf("Environment variable %s has invalid value %q, using default value", key, value)
	}
	return defaultValue
}

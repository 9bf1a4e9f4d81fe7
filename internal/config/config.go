// Package config handles loading and validation of service configuration.
// Sources layer in increasing precedence: built-in defaults, an optional YAML
// file, environment variables, then explicit flag overrides. In production a
// missing Admin API token falls back to Secret Manager.
package config

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	secretmanager "cloud.google.com/go/secretmanager/apiv1"
	"cloud.google.com/go/secretmanager/apiv1/secretmanagerpb"
	"gopkg.in/yaml.v3"
)

// Config holds all service configuration.
type Config struct {
	// Server settings
	Port        int    `yaml:"port"`
	Environment string `yaml:"environment"` // "development" or "production"
	LogLevel    string `yaml:"logLevel"`    // "debug", "info", "warn", "error"

	// GCPProject enables the Secret Manager token fallback in production.
	GCPProject string `yaml:"gcpProject"`

	Store     Store     `yaml:"store"`
	RateLimit RateLimit `yaml:"rateLimit"`
}

// Store identifies the single store this deployment serves.
type Store struct {
	// Domain is the myshopify domain, e.g. "acme.myshopify.com".
	Domain string `yaml:"domain"`

	// APIVersion is the dated Admin API version, e.g. "2026-01".
	APIVersion string `yaml:"apiVersion"`

	// AccessToken is the offline Admin API token. Left empty in production
	// configs; Load fetches it from Secret Manager instead.
	AccessToken string `yaml:"accessToken"`
}

// RateLimit bounds the public availability routes.
type RateLimit struct {
	RPS   float64 `yaml:"rps"`
	Burst int     `yaml:"burst"`
}

// Overrides carries flag values that win over every other source.
// Zero values mean "not set".
type Overrides struct {
	Port        int
	Environment string
	LogLevel    string
	StoreDomain string
}

// Defaults returns the built-in configuration baseline.
func Defaults() *Config {
	return &Config{
		Port:        8080,
		Environment: "development",
		LogLevel:    "info",
		Store: Store{
			APIVersion: "2026-01",
		},
		RateLimit: RateLimit{
			RPS:   50,
			Burst: 100,
		},
	}
}

// Load builds the configuration from all sources and validates it.
// path names an optional YAML file; an empty path skips that layer.
func Load(ctx context.Context, path string, overrides Overrides) (*Config, error) {
	cfg := Defaults()

	if path != "" {
		if err := loadFile(cfg, path); err != nil {
			return nil, err
		}
	}

	if err := applyEnv(cfg); err != nil {
		return nil, err
	}

	applyOverrides(cfg, overrides)

	// Production deployments keep the token out of config files and env;
	// fetch it unless one was supplied explicitly.
	if cfg.Environment == "production" && cfg.Store.AccessToken == "" && cfg.Store.Domain != "" {
		token, err := fetchToken(ctx, cfg.GCPProject, cfg.Store.Domain)
		if err != nil {
			return nil, fmt.Errorf("loading access token: %w", err)
		}
		cfg.Store.AccessToken = token
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// loadFile overlays the YAML file at path onto cfg.
func loadFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parsing config file: %w", err)
	}
	return nil
}

// applyEnv overlays environment variables onto cfg.
func applyEnv(cfg *Config) error {
	if v := os.Getenv("PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("parsing PORT: %w", err)
		}
		cfg.Port = port
	}
	cfg.Environment = envOrDefault("ENVIRONMENT", cfg.Environment)
	cfg.LogLevel = envOrDefault("LOG_LEVEL", cfg.LogLevel)
	cfg.GCPProject = envOrDefault("GCP_PROJECT", cfg.GCPProject)
	cfg.Store.Domain = envOrDefault("STORE_DOMAIN", cfg.Store.Domain)
	cfg.Store.APIVersion = envOrDefault("STORE_API_VERSION", cfg.Store.APIVersion)
	cfg.Store.AccessToken = envOrDefault("SHOPIFY_ACCESS_TOKEN", cfg.Store.AccessToken)
	return nil
}

func applyOverrides(cfg *Config, o Overrides) {
	if o.Port != 0 {
		cfg.Port = o.Port
	}
	if o.Environment != "" {
		cfg.Environment = o.Environment
	}
	if o.LogLevel != "" {
		cfg.LogLevel = o.LogLevel
	}
	if o.StoreDomain != "" {
		cfg.Store.Domain = o.StoreDomain
	}
}

// Validate checks that all required configuration fields are present and
// usable.
func (c *Config) Validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("port %d out of range", c.Port)
	}
	if c.Environment != "development" && c.Environment != "production" {
		return fmt.Errorf("unknown environment %q", c.Environment)
	}
	if c.Store.Domain == "" {
		return fmt.Errorf("store domain is required")
	}
	if !strings.HasSuffix(c.Store.Domain, ".myshopify.com") {
		return fmt.Errorf("store domain %q is not a myshopify domain", c.Store.Domain)
	}
	if c.Store.APIVersion == "" {
		return fmt.Errorf("store API version is required")
	}
	if c.Store.AccessToken == "" {
		return fmt.Errorf("store access token is required")
	}
	if c.RateLimit.RPS <= 0 || c.RateLimit.Burst < 1 {
		return fmt.Errorf("rate limit must allow at least one request")
	}
	return nil
}

// Addr returns the listen address for the HTTP server.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

// fetchToken is a variable so tests can stub the Secret Manager round trip.
var fetchToken = fetchSecretToken

// fetchSecretToken reads the store's Admin API token from Secret Manager.
// Secret name format: instock-admin-token-{store}, where {store} is the
// domain without its .myshopify.com suffix (dots are not legal in secret
// ids).
func fetchSecretToken(ctx context.Context, project, domain string) (string, error) {
	if project == "" {
		return "", fmt.Errorf("GCP_PROJECT required to load the token from Secret Manager")
	}

	client, err := secretmanager.NewClient(ctx)
	if err != nil {
		return "", fmt.Errorf("creating secret manager client: %w", err)
	}
	defer client.Close()

	store := strings.TrimSuffix(domain, ".myshopify.com")
	name := fmt.Sprintf("projects/%s/secrets/instock-admin-token-%s/versions/latest",
		project, store)

	result, err := client.AccessSecretVersion(ctx, &secretmanagerpb.AccessSecretVersionRequest{
		Name: name,
	})
	if err != nil {
		return "", fmt.Errorf("accessing secret %s: %w", name, err)
	}

	return strings.TrimSpace(string(result.Payload.Data)), nil
}

// envOrDefault returns the environment variable value or the default if not set.
func envOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultConfigPath is where the server looks for its YAML config.
const DefaultConfigPath = "config.yml"

const (
	defaultPort      = 3100
	defaultDBHost    = "127.0.0.1"
	defaultDBPort    = 3306
	defaultDBUser    = "root"
	defaultDBName    = "typeless"
	defaultDBCharset = "utf8mb4"
	defaultDBLoc     = "Local"
	defaultRedisHost = "127.0.0.1"
	defaultRedisPort = 6379
)

// Load reads the YAML config file, applies environment fallbacks and
// defaults, and validates the result. A missing file is not an error:
// everything can come from the environment.
func Load(path string) (*AppConfig, error) {
	cfg := &AppConfig{}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	case errors.Is(err, os.ErrNotExist):
		// env-only configuration
	default:
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	cfg.applyEnv()
	cfg.applyDefaults()

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *AppConfig) applyEnv() {
	envString(&c.Env, "TYPELESS_ENV")
	envInt(&c.Port, "TYPELESS_PORT")
	envString(&c.Database.DSN, "TYPELESS_DSN")
	envString(&c.Redis.URL, "TYPELESS_REDIS_URL")
	envString(&c.JWTSecret, "TYPELESS_JWT_SECRET")
	envString(&c.Identity.ProjectRef, "TYPELESS_IDENTITY_PROJECT_REF")
	envString(&c.Identity.APIKey, "TYPELESS_IDENTITY_API_KEY")
	envString(&c.Identity.URL, "TYPELESS_IDENTITY_URL")
	envString(&c.Storage.CloudName, "TYPELESS_STORAGE_CLOUD_NAME")
	envString(&c.Storage.APIKey, "TYPELESS_STORAGE_API_KEY")
	envString(&c.Storage.APISecret, "TYPELESS_STORAGE_API_SECRET")
	envString(&c.Stripe.SecretKey, "TYPELESS_STRIPE_SECRET_KEY")
	envString(&c.Stripe.WebhookSecret, "TYPELESS_STRIPE_WEBHOOK_SECRET")
	envString(&c.Export.Bucket, "TYPELESS_EXPORT_BUCKET")
	envString(&c.Export.Region, "TYPELESS_EXPORT_REGION")
	envString(&c.Export.AccessKeyID, "TYPELESS_EXPORT_ACCESS_KEY_ID")
	envString(&c.Export.SecretAccessKey, "TYPELESS_EXPORT_SECRET_ACCESS_KEY")
	envString(&c.URLs.Dashboard, "TYPELESS_DASHBOARD_URL")
	envString(&c.URLs.PublicAPI, "TYPELESS_PUBLIC_API_URL")
}

func (c *AppConfig) applyDefaults() {
	if c.Port == 0 {
		c.Port = defaultPort
	}
	if strings.TrimSpace(c.Env) == "" {
		c.Env = "development"
	}
	if c.Media.MaxUploadSizeMB <= 0 {
		c.Media.MaxUploadSizeMB = 25
	}
	if strings.TrimSpace(c.Storage.Folder) == "" {
		c.Storage.Folder = "typeless"
	}
	if strings.TrimSpace(c.URLs.Dashboard) == "" {
		c.URLs.Dashboard = "http://localhost:3000"
	}
}

func (c *AppConfig) validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("invalid port %d", c.Port)
	}
	return nil
}

func envString(dst *string, key string) {
	if strings.TrimSpace(*dst) != "" {
		return
	}
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		*dst = v
	}
}

func envInt(dst *int, key string) {
	if *dst != 0 {
		return
	}
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}

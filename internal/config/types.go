package config

// AppConfig holds runtime startup configuration loaded from YAML, with
// environment-variable fallbacks for container deployments.
type AppConfig struct {
	Port           int            `yaml:"port"`
	Env            string         `yaml:"env"` // "development" | "production"
	Database       DatabaseConfig `yaml:"database"`
	Redis          RedisConfig    `yaml:"redis"`
	JWTSecret      string         `yaml:"jwt_secret"`
	AllowedOrigins []string       `yaml:"allowed_origins"`
	Identity       IdentityConfig `yaml:"identity"`
	Storage        StorageConfig  `yaml:"storage"`
	Stripe         StripeConfig   `yaml:"stripe"`
	Export         ExportConfig   `yaml:"export"`
	URLs           URLConfig      `yaml:"urls"`
	Media          MediaConfig    `yaml:"media"`
}

type DatabaseConfig struct {
	DSN       string `yaml:"dsn"`
	Host      string `yaml:"host"`
	Port      int    `yaml:"port"`
	User      string `yaml:"user"`
	Password  string `yaml:"password"`
	Name      string `yaml:"name"`
	Charset   string `yaml:"charset"`
	ParseTime bool   `yaml:"parse_time"`
	Loc       string `yaml:"loc"`
}

type RedisConfig struct {
	URL      string `yaml:"url"`
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
	TLS      bool   `yaml:"tls"`
}

// IdentityConfig points at the external identity provider.
type IdentityConfig struct {
	ProjectRef string `yaml:"project_ref"`
	APIKey     string `yaml:"api_key"`
	URL        string `yaml:"url"`
}

// StorageConfig points at the external media storage provider.
type StorageConfig struct {
	CloudName string `yaml:"cloud_name"`
	APIKey    string `yaml:"api_key"`
	APISecret string `yaml:"api_secret"`
	Folder    string `yaml:"folder"`
}

// StripeConfig holds the payments provider secrets.
type StripeConfig struct {
	SecretKey     string `yaml:"secret_key"`
	WebhookSecret string `yaml:"webhook_secret"`
}

// ExportConfig is the S3 destination for workspace content exports.
type ExportConfig struct {
	Bucket          string `yaml:"bucket"`
	Region          string `yaml:"region"`
	AccessKeyID     string `yaml:"access_key_id"`
	SecretAccessKey string `yaml:"secret_access_key"`
	Endpoint        string `yaml:"endpoint"`
	Prefix          string `yaml:"prefix"`
}

// URLConfig holds externally reachable base URLs used when building
// redirects.
type URLConfig struct {
	Dashboard string `yaml:"dashboard"`
	PublicAPI string `yaml:"public_api"`
}

type MediaConfig struct {
	MaxUploadSizeMB int `yaml:"max_upload_size_mb"`
}

// IsDev reports whether the app runs in development mode.
func (c *AppConfig) IsDev() bool { return c.Env != "production" }

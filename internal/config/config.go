package config

import (
	"strings"
	"time"
)

// Config is the root application configuration.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Auth     AuthConfig     `yaml:"auth"`
	Webhook  WebhookConfig  `yaml:"webhook"`
	Assets   AssetsConfig   `yaml:"assets"`
	Site     SiteConfig     `yaml:"site"`
	CORS     CORSConfig     `yaml:"cors"`
	Log      LogConfig      `yaml:"log"`

	Debug bool `yaml:"debug" env:"DEBUG" env-default:"false"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `yaml:"host"             env:"SERVER_HOST"             env-default:"0.0.0.0"`
	Port            int           `yaml:"port"             env:"PORT"                    env-default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"SERVER_READ_TIMEOUT"     env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"SERVER_WRITE_TIMEOUT"    env-default:"30s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"     env:"SERVER_IDLE_TIMEOUT"     env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`
}

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	DSN             string        `yaml:"dsn"                env:"DATABASE_DSN"                env-required:"true"`
	Migrate         bool          `yaml:"migrate"            env:"DATABASE_MIGRATE"            env-default:"false"`
	MaxConns        int32         `yaml:"max_conns"          env:"DATABASE_MAX_CONNS"          env-default:"10"`
	MinConns        int32         `yaml:"min_conns"          env:"DATABASE_MIN_CONNS"          env-default:"2"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"  env:"DATABASE_MAX_CONN_LIFETIME"  env-default:"1h"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env:"DATABASE_MAX_CONN_IDLE_TIME" env-default:"30m"`
}

// AuthConfig holds admin authentication settings.
// The signing algorithm is fixed to HS256.
type AuthConfig struct {
	AdminPassword string        `yaml:"admin_password" env:"ADMIN_PASSWORD" env-required:"true"`
	JWTSecret     string        `yaml:"jwt_secret"     env:"JWT_SECRET"     env-required:"true"`
	TokenTTL      time.Duration `yaml:"token_ttl"      env:"JWT_TTL"        env-default:"24h"`
}

// WebhookConfig holds the shared secret for webhook callers.
// An empty secret disables the check entirely: every caller is accepted.
// This open-by-default policy is deliberate and matches the ingestion
// pipeline's deployment, where the secret is optional.
type WebhookConfig struct {
	Secret string `yaml:"secret" env:"WEBHOOK_SECRET"`
}

// AssetsConfig holds the public base URL for article images (R2 bucket).
// When empty, API responses omit image URLs.
type AssetsConfig struct {
	PublicURL string `yaml:"public_url" env:"ASSETS_PUBLIC_URL"`
}

// SiteConfig holds public site settings used by SEO endpoints and the
// SPA fallback.
type SiteConfig struct {
	BaseURL     string `yaml:"base_url"     env:"SITE_URL"     env-default:"https://adu.media"`
	FrontendDir string `yaml:"frontend_dir" env:"FRONTEND_DIR" env-default:"./frontend/dist"`
}

// CORSConfig holds CORS settings. ExtraOrigins from the environment are
// merged with the hardcoded default set (dev servers + production domains).
type CORSConfig struct {
	ExtraOrigins     string `yaml:"extra_origins"     env:"CORS_ORIGINS"`
	AllowedMethods   string `yaml:"allowed_methods"   env:"CORS_ALLOWED_METHODS"   env-default:"GET,POST,PATCH,DELETE,OPTIONS"`
	AllowedHeaders   string `yaml:"allowed_headers"   env:"CORS_ALLOWED_HEADERS"   env-default:"Authorization,Content-Type,X-Webhook-Secret"`
	AllowCredentials bool   `yaml:"allow_credentials" env:"CORS_ALLOW_CREDENTIALS" env-default:"true"`
	MaxAge           int    `yaml:"max_age"           env:"CORS_MAX_AGE"           env-default:"86400"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}

// defaultOrigins are always allowed regardless of CORS_ORIGINS.
var defaultOrigins = []string{
	"http://localhost:5173", // Vite dev server
	"http://localhost:3000", // alternative dev
	"http://localhost:8080", // local backend
	"https://adu.media",
	"https://www.adu.media",
}

// AllowedOrigins returns the deduplicated union of the default origin set
// and the comma-separated extras from the environment.
func (c CORSConfig) AllowedOrigins() []string {
	seen := make(map[string]struct{}, len(defaultOrigins))
	origins := make([]string, 0, len(defaultOrigins))

	add := func(o string) {
		o = strings.TrimSpace(o)
		if o == "" {
			return
		}
		if _, ok := seen[o]; ok {
			return
		}
		seen[o] = struct{}{}
		origins = append(origins, o)
	}

	for _, o := range defaultOrigins {
		add(o)
	}
	for _, o := range strings.Split(c.ExtraOrigins, ",") {
		add(o)
	}

	return origins
}

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server     ServerConfig
	DB         DBConfig
	S3         S3Config
	Log        LogConfig
	Parser     ParserConfig
	CORS       CORSConfig
	Cache      CacheConfig
	Archive    ArchiveConfig
	Extraction ExtractionConfig
	Imaging    ImagingConfig
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// ParserProviderConfig holds settings for a single model provider.
type ParserProviderConfig struct {
	Provider     string `mapstructure:"provider"`
	APIKey       string `mapstructure:"api_key"`
	DefaultModel string `mapstructure:"default_model"`
	BaseURL      string `mapstructure:"base_url"`
	MaxRetries   int    `mapstructure:"max_retries"`
	TimeoutSecs  int    `mapstructure:"timeout_secs"`
}

// Timeout returns the request timeout for the provider.
func (p *ParserProviderConfig) Timeout() time.Duration {
	if p.TimeoutSecs <= 0 {
		return 120 * time.Second
	}
	return time.Duration(p.TimeoutSecs) * time.Second
}

// ParserConfig holds model backend settings with multi-provider fallback.
type ParserConfig struct {
	// Legacy flat fields
	Provider     string `mapstructure:"provider"`
	APIKey       string `mapstructure:"api_key"`
	DefaultModel string `mapstructure:"default_model"`
	BaseURL      string `mapstructure:"base_url"`
	MaxRetries   int    `mapstructure:"max_retries"`
	TimeoutSecs  int    `mapstructure:"timeout_secs"`

	Primary   ParserProviderConfig `mapstructure:"primary"`
	Secondary ParserProviderConfig `mapstructure:"secondary"`
	Tertiary  ParserProviderConfig `mapstructure:"tertiary"`
}

// PrimaryConfig returns the primary provider config, falling back to legacy flat fields.
func (p *ParserConfig) PrimaryConfig() *ParserProviderConfig {
	if p.Primary.Provider != "" {
		return &p.Primary
	}
	return &ParserProviderConfig{
		Provider:     p.Provider,
		APIKey:       p.APIKey,
		DefaultModel: p.DefaultModel,
		BaseURL:      p.BaseURL,
		MaxRetries:   p.MaxRetries,
		TimeoutSecs:  p.TimeoutSecs,
	}
}

// SecondaryConfig returns the secondary provider config, or nil if not configured.
func (p *ParserConfig) SecondaryConfig() *ParserProviderConfig {
	if p.Secondary.Provider != "" {
		return &p.Secondary
	}
	return nil
}

// TertiaryConfig returns the tertiary provider config, or nil if not configured.
func (p *ParserConfig) TertiaryConfig() *ParserProviderConfig {
	if p.Tertiary.Provider != "" {
		return &p.Tertiary
	}
	return nil
}

// HasAPIKey reports whether the primary provider has a key configured.
func (p *ParserConfig) HasAPIKey() bool {
	return p.PrimaryConfig().APIKey != ""
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	Environment  string        `mapstructure:"environment"`
	MaxBodyMB    int64         `mapstructure:"max_body_mb"`
}

// DBConfig holds PostgreSQL connection settings.
type DBConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"sslmode"`
	MaxOpen  int    `mapstructure:"max_open"`
	MaxIdle  int    `mapstructure:"max_idle"`
}

// DSN returns the PostgreSQL connection string.
func (d *DBConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode,
	)
}

// S3Config holds settings for the page image archive bucket.
type S3Config struct {
	Region        string `mapstructure:"region"`
	Bucket        string `mapstructure:"bucket"`
	Endpoint      string `mapstructure:"endpoint"`
	AccessKey     string `mapstructure:"access_key"`
	SecretKey     string `mapstructure:"secret_key"`
	PresignExpiry int64  `mapstructure:"presign_expiry"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// CacheConfig holds the Redis extraction cache settings.
type CacheConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	Addr     string        `mapstructure:"addr"`
	Password string        `mapstructure:"password"`
	DB       int           `mapstructure:"db"`
	TTL      time.Duration `mapstructure:"ttl"`
}

// ArchiveConfig toggles persisting scans to Postgres and S3.
type ArchiveConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

// ExtractionConfig holds model request limits.
type ExtractionConfig struct {
	MaxTokens         int `mapstructure:"max_tokens"`
	WildcardMaxTokens int `mapstructure:"wildcard_max_tokens"`
	MaxPages          int `mapstructure:"max_pages"`
	Concurrency       int `mapstructure:"concurrency"`
}

// ImagingConfig holds the upload compression policy.
type ImagingConfig struct {
	MaxPixels    int   `mapstructure:"max_pixels"`
	MaxEdge      int   `mapstructure:"max_edge"`
	MaxBytes     int   `mapstructure:"max_bytes"`
	StartQuality int   `mapstructure:"start_quality"`
	MinQuality   int   `mapstructure:"min_quality"`
	QualityStep  int   `mapstructure:"quality_step"`
	MaxUploadMB  int64 `mapstructure:"max_upload_mb"`
}

// Load reads configuration from a .env file, if present, and environment
// variables with the CARTE_ prefix.
func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix("CARTE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.read_timeout", "30s")
	v.SetDefault("server.write_timeout", "180s")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.max_body_mb", 40)

	// DB defaults
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.user", "carte")
	v.SetDefault("db.password", "carte_secret")
	v.SetDefault("db.name", "carte_db")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.max_open", 10)
	v.SetDefault("db.max_idle", 5)

	// S3 defaults
	v.SetDefault("s3.region", "us-east-1")
	v.SetDefault("s3.bucket", "carte-scans")
	v.SetDefault("s3.endpoint", "")
	v.SetDefault("s3.presign_expiry", 3600)

	// Log defaults
	v.SetDefault("log.level", "debug")
	v.SetDefault("log.format", "console")

	// CORS defaults (localhost origins for development)
	v.SetDefault("cors.allowed_origins", "http://localhost:3000,http://127.0.0.1:3000,http://localhost:8081,http://127.0.0.1:8081")

	// Cache defaults
	v.SetDefault("cache.enabled", false)
	v.SetDefault("cache.addr", "localhost:6379")
	v.SetDefault("cache.password", "")
	v.SetDefault("cache.db", 0)
	v.SetDefault("cache.ttl", "24h")

	v.SetDefault("archive.enabled", false)

	// Extraction defaults
	v.SetDefault("extraction.max_tokens", 8000)
	v.SetDefault("extraction.wildcard_max_tokens", 2000)
	v.SetDefault("extraction.max_pages", 10)
	v.SetDefault("extraction.concurrency", 4)

	// Imaging defaults
	v.SetDefault("imaging.max_pixels", 50_000_000)
	v.SetDefault("imaging.max_edge", 1920)
	v.SetDefault("imaging.max_bytes", 800*1024)
	v.SetDefault("imaging.start_quality", 80)
	v.SetDefault("imaging.min_quality", 30)
	v.SetDefault("imaging.quality_step", 10)
	v.SetDefault("imaging.max_upload_mb", 20)

	// Parser defaults (legacy flat)
	v.SetDefault("parser.provider", "claude")
	v.SetDefault("parser.api_key", "")
	v.SetDefault("parser.default_model", "claude-3-5-sonnet-latest")
	v.SetDefault("parser.base_url", "")
	v.SetDefault("parser.max_retries", 0)
	v.SetDefault("parser.timeout_secs", 120)

	for _, tier := range []string{"primary", "secondary", "tertiary"} {
		v.SetDefault("parser."+tier+".provider", "")
		v.SetDefault("parser."+tier+".api_key", "")
		v.SetDefault("parser."+tier+".default_model", "")
		v.SetDefault("parser."+tier+".base_url", "")
		v.SetDefault("parser."+tier+".max_retries", 0)
		v.SetDefault("parser."+tier+".timeout_secs", 120)
	}

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"server.port":                     "CARTE_SERVER_PORT",
		"server.read_timeout":             "CARTE_SERVER_READ_TIMEOUT",
		"server.write_timeout":            "CARTE_SERVER_WRITE_TIMEOUT",
		"server.environment":              "CARTE_SERVER_ENVIRONMENT",
		"server.max_body_mb":              "CARTE_SERVER_MAX_BODY_MB",
		"db.host":                         "CARTE_DB_HOST",
		"db.port":                         "CARTE_DB_PORT",
		"db.user":                         "CARTE_DB_USER",
		"db.password":                     "CARTE_DB_PASSWORD",
		"db.name":                         "CARTE_DB_NAME",
		"db.sslmode":                      "CARTE_DB_SSLMODE",
		"db.max_open":                     "CARTE_DB_MAX_OPEN",
		"db.max_idle":                     "CARTE_DB_MAX_IDLE",
		"s3.region":                       "CARTE_S3_REGION",
		"s3.bucket":                       "CARTE_S3_BUCKET",
		"s3.endpoint":                     "CARTE_S3_ENDPOINT",
		"s3.access_key":                   "CARTE_S3_ACCESS_KEY",
		"s3.secret_key":                   "CARTE_S3_SECRET_KEY",
		"s3.presign_expiry":               "CARTE_S3_PRESIGN_EXPIRY",
		"log.level":                       "CARTE_LOG_LEVEL",
		"log.format":                      "CARTE_LOG_FORMAT",
		"cors.allowed_origins":            "CARTE_CORS_ALLOWED_ORIGINS",
		"cache.enabled":                   "CARTE_CACHE_ENABLED",
		"cache.addr":                      "CARTE_CACHE_ADDR",
		"cache.password":                  "CARTE_CACHE_PASSWORD",
		"cache.db":                        "CARTE_CACHE_DB",
		"cache.ttl":                       "CARTE_CACHE_TTL",
		"archive.enabled":                 "CARTE_ARCHIVE_ENABLED",
		"extraction.max_tokens":           "CARTE_EXTRACTION_MAX_TOKENS",
		"extraction.wildcard_max_tokens":  "CARTE_EXTRACTION_WILDCARD_MAX_TOKENS",
		"extraction.max_pages":            "CARTE_EXTRACTION_MAX_PAGES",
		"extraction.concurrency":          "CARTE_EXTRACTION_CONCURRENCY",
		"imaging.max_pixels":              "CARTE_IMAGING_MAX_PIXELS",
		"imaging.max_edge":                "CARTE_IMAGING_MAX_EDGE",
		"imaging.max_bytes":               "CARTE_IMAGING_MAX_BYTES",
		"imaging.start_quality":           "CARTE_IMAGING_START_QUALITY",
		"imaging.min_quality":             "CARTE_IMAGING_MIN_QUALITY",
		"imaging.quality_step":            "CARTE_IMAGING_QUALITY_STEP",
		"imaging.max_upload_mb":           "CARTE_IMAGING_MAX_UPLOAD_MB",
		"parser.provider":                 "CARTE_PARSER_PROVIDER",
		"parser.default_model":            "CARTE_PARSER_DEFAULT_MODEL",
		"parser.base_url":                 "CARTE_PARSER_BASE_URL",
		"parser.max_retries":              "CARTE_PARSER_MAX_RETRIES",
		"parser.timeout_secs":             "CARTE_PARSER_TIMEOUT_SECS",
		"parser.primary.provider":         "CARTE_PARSER_PRIMARY_PROVIDER",
		"parser.primary.api_key":          "CARTE_PARSER_PRIMARY_API_KEY",
		"parser.primary.default_model":    "CARTE_PARSER_PRIMARY_DEFAULT_MODEL",
		"parser.primary.base_url":         "CARTE_PARSER_PRIMARY_BASE_URL",
		"parser.primary.max_retries":      "CARTE_PARSER_PRIMARY_MAX_RETRIES",
		"parser.primary.timeout_secs":     "CARTE_PARSER_PRIMARY_TIMEOUT_SECS",
		"parser.secondary.provider":       "CARTE_PARSER_SECONDARY_PROVIDER",
		"parser.secondary.api_key":        "CARTE_PARSER_SECONDARY_API_KEY",
		"parser.secondary.default_model":  "CARTE_PARSER_SECONDARY_DEFAULT_MODEL",
		"parser.secondary.base_url":       "CARTE_PARSER_SECONDARY_BASE_URL",
		"parser.secondary.max_retries":    "CARTE_PARSER_SECONDARY_MAX_RETRIES",
		"parser.secondary.timeout_secs":   "CARTE_PARSER_SECONDARY_TIMEOUT_SECS",
		"parser.tertiary.provider":        "CARTE_PARSER_TERTIARY_PROVIDER",
		"parser.tertiary.api_key":         "CARTE_PARSER_TERTIARY_API_KEY",
		"parser.tertiary.default_model":   "CARTE_PARSER_TERTIARY_DEFAULT_MODEL",
		"parser.tertiary.base_url":        "CARTE_PARSER_TERTIARY_BASE_URL",
		"parser.tertiary.max_retries":     "CARTE_PARSER_TERTIARY_MAX_RETRIES",
		"parser.tertiary.timeout_secs":    "CARTE_PARSER_TERTIARY_TIMEOUT_SECS",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}
	// ANTHROPIC_API_KEY is what the hosting platforms and the web client expect.
	_ = v.BindEnv("parser.api_key", "CARTE_PARSER_API_KEY", "ANTHROPIC_API_KEY")

	cfg := &Config{}

	// Railway/Heroku/Render set a PORT env var. Use it if CARTE_SERVER_PORT is not explicitly set.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("CARTE_SERVER_PORT") == "" {
		serverPort = ":" + port
	}

	cfg.Server = ServerConfig{
		Port:         serverPort,
		ReadTimeout:  v.GetDuration("server.read_timeout"),
		WriteTimeout: v.GetDuration("server.write_timeout"),
		Environment:  v.GetString("server.environment"),
		MaxBodyMB:    v.GetInt64("server.max_body_mb"),
	}
	cfg.DB = DBConfig{
		Host:     v.GetString("db.host"),
		Port:     v.GetInt("db.port"),
		User:     v.GetString("db.user"),
		Password: v.GetString("db.password"),
		Name:     v.GetString("db.name"),
		SSLMode:  v.GetString("db.sslmode"),
		MaxOpen:  v.GetInt("db.max_open"),
		MaxIdle:  v.GetInt("db.max_idle"),
	}
	cfg.S3 = S3Config{
		Region:        v.GetString("s3.region"),
		Bucket:        v.GetString("s3.bucket"),
		Endpoint:      v.GetString("s3.endpoint"),
		AccessKey:     v.GetString("s3.access_key"),
		SecretKey:     v.GetString("s3.secret_key"),
		PresignExpiry: v.GetInt64("s3.presign_expiry"),
	}
	cfg.Log = LogConfig{
		Level:  v.GetString("log.level"),
		Format: v.GetString("log.format"),
	}
	cfg.CORS = CORSConfig{
		AllowedOrigins: splitList(v.GetString("cors.allowed_origins")),
	}
	cfg.Cache = CacheConfig{
		Enabled:  v.GetBool("cache.enabled"),
		Addr:     v.GetString("cache.addr"),
		Password: v.GetString("cache.password"),
		DB:       v.GetInt("cache.db"),
		TTL:      v.GetDuration("cache.ttl"),
	}
	cfg.Archive = ArchiveConfig{
		Enabled: v.GetBool("archive.enabled"),
	}
	cfg.Extraction = ExtractionConfig{
		MaxTokens:         v.GetInt("extraction.max_tokens"),
		WildcardMaxTokens: v.GetInt("extraction.wildcard_max_tokens"),
		MaxPages:          v.GetInt("extraction.max_pages"),
		Concurrency:       v.GetInt("extraction.concurrency"),
	}
	cfg.Imaging = ImagingConfig{
		MaxPixels:    v.GetInt("imaging.max_pixels"),
		MaxEdge:      v.GetInt("imaging.max_edge"),
		MaxBytes:     v.GetInt("imaging.max_bytes"),
		StartQuality: v.GetInt("imaging.start_quality"),
		MinQuality:   v.GetInt("imaging.min_quality"),
		QualityStep:  v.GetInt("imaging.quality_step"),
		MaxUploadMB:  v.GetInt64("imaging.max_upload_mb"),
	}

	cfg.Parser = ParserConfig{
		Provider:     v.GetString("parser.provider"),
		APIKey:       v.GetString("parser.api_key"),
		DefaultModel: v.GetString("parser.default_model"),
		BaseURL:      v.GetString("parser.base_url"),
		MaxRetries:   v.GetInt("parser.max_retries"),
		TimeoutSecs:  v.GetInt("parser.timeout_secs"),
		Primary:      providerConfig(v, "primary"),
		Secondary:    providerConfig(v, "secondary"),
		Tertiary:     providerConfig(v, "tertiary"),
	}

	return cfg, nil
}

func providerConfig(v *viper.Viper, tier string) ParserProviderConfig {
	prefix := "parser." + tier + "."
	return ParserProviderConfig{
		Provider:     v.GetString(prefix + "provider"),
		APIKey:       v.GetString(prefix + "api_key"),
		DefaultModel: v.GetString(prefix + "default_model"),
		BaseURL:      v.GetString(prefix + "base_url"),
		MaxRetries:   v.GetInt(prefix + "max_retries"),
		TimeoutSecs:  v.GetInt(prefix + "timeout_secs"),
	}
}

// splitList parses a comma-separated list, dropping blanks.
func splitList(s string) []string {
	var out []string
	for _, item := range strings.Split(s, ",") {
		item = strings.TrimSpace(item)
		if item != "" {
			out = append(out, item)
		}
	}
	return out
}

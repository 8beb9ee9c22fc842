package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"carte/internal/config"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("ANTHROPIC_API_KEY", "")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Port)
	assert.Equal(t, "development", cfg.Server.Environment)
	assert.Equal(t, "claude", cfg.Parser.Provider)
	assert.Equal(t, "claude-3-5-sonnet-latest", cfg.Parser.DefaultModel)
	assert.Equal(t, 8000, cfg.Extraction.MaxTokens)
	assert.Equal(t, 2000, cfg.Extraction.WildcardMaxTokens)
	assert.Equal(t, 1920, cfg.Imaging.MaxEdge)
	assert.Equal(t, 50_000_000, cfg.Imaging.MaxPixels)
	assert.Equal(t, 800*1024, cfg.Imaging.MaxBytes)
	assert.Equal(t, 80, cfg.Imaging.StartQuality)
	assert.Equal(t, 30, cfg.Imaging.MinQuality)
	assert.Equal(t, 10, cfg.Imaging.QualityStep)
	assert.False(t, cfg.Cache.Enabled)
	assert.Equal(t, 24*time.Hour, cfg.Cache.TTL)
	assert.False(t, cfg.Archive.Enabled)
	assert.Contains(t, cfg.CORS.AllowedOrigins, "http://localhost:3000")
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("CARTE_SERVER_PORT", ":9999")
	t.Setenv("CARTE_CACHE_ENABLED", "true")
	t.Setenv("CARTE_CACHE_TTL", "15m")
	t.Setenv("CARTE_EXTRACTION_CONCURRENCY", "2")
	t.Setenv("CARTE_CORS_ALLOWED_ORIGINS", " https://carte.app , ,https://www.carte.app")
	t.Setenv("CARTE_PARSER_SECONDARY_PROVIDER", "gemini")
	t.Setenv("CARTE_PARSER_SECONDARY_API_KEY", "gk-test")
	t.Setenv("CARTE_PARSER_SECONDARY_BASE_URL", "http://localhost:9000")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, ":9999", cfg.Server.Port)
	assert.True(t, cfg.Cache.Enabled)
	assert.Equal(t, 15*time.Minute, cfg.Cache.TTL)
	assert.Equal(t, 2, cfg.Extraction.Concurrency)
	assert.Equal(t, []string{"https://carte.app", "https://www.carte.app"}, cfg.CORS.AllowedOrigins)

	secondary := cfg.Parser.SecondaryConfig()
	require.NotNil(t, secondary)
	assert.Equal(t, "gemini", secondary.Provider)
	assert.Equal(t, "gk-test", secondary.APIKey)
	assert.Equal(t, "http://localhost:9000", secondary.BaseURL)
}

func TestLoad_PlatformPort(t *testing.T) {
	t.Setenv("CARTE_SERVER_PORT", "")
	t.Setenv("PORT", "3001")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, ":3001", cfg.Server.Port)
}

func TestLoad_AnthropicKeyAlias(t *testing.T) {
	t.Setenv("CARTE_PARSER_API_KEY", "")
	t.Setenv("ANTHROPIC_API_KEY", "sk-ant-alias")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "sk-ant-alias", cfg.Parser.APIKey)
	assert.True(t, cfg.Parser.HasAPIKey())
}

func TestParserConfig_PrimaryConfig_LegacyFallback(t *testing.T) {
	cfg := config.ParserConfig{
		Provider:     "claude",
		APIKey:       "sk-legacy",
		DefaultModel: "claude-3-5-sonnet-latest",
		BaseURL:      "http://proxy",
		TimeoutSecs:  30,
	}

	primary := cfg.PrimaryConfig()

	assert.Equal(t, "claude", primary.Provider)
	assert.Equal(t, "sk-legacy", primary.APIKey)
	assert.Equal(t, "claude-3-5-sonnet-latest", primary.DefaultModel)
	assert.Equal(t, "http://proxy", primary.BaseURL)
	assert.Equal(t, 30*time.Second, primary.Timeout())
}

func TestParserConfig_PrimaryConfig_ExplicitPrimary(t *testing.T) {
	cfg := config.ParserConfig{
		Provider: "legacy-should-be-ignored",
		Primary: config.ParserProviderConfig{
			Provider: "openai",
			APIKey:   "sk-primary",
		},
	}

	primary := cfg.PrimaryConfig()

	assert.Equal(t, "openai", primary.Provider)
	assert.Equal(t, "sk-primary", primary.APIKey)
}

func TestParserConfig_OptionalTiers(t *testing.T) {
	cfg := config.ParserConfig{Provider: "claude"}

	assert.Nil(t, cfg.SecondaryConfig())
	assert.Nil(t, cfg.TertiaryConfig())
	assert.False(t, cfg.HasAPIKey())

	cfg.Tertiary = config.ParserProviderConfig{Provider: "openai"}
	require.NotNil(t, cfg.TertiaryConfig())
	assert.Equal(t, "openai", cfg.TertiaryConfig().Provider)
}

func TestParserProviderConfig_DefaultTimeout(t *testing.T) {
	p := config.ParserProviderConfig{}
	assert.Equal(t, 120*time.Second, p.Timeout())
}

func TestDBConfig_DSN(t *testing.T) {
	d := config.DBConfig{User: "u", Password: "p", Host: "h", Port: 5432, Name: "n", SSLMode: "disable"}
	assert.Equal(t, "postgres://u:p@h:5432/n?sslmode=disable", d.DSN())
}

package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, "practiq-backend", cfg.App.Name)
	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, "8080", cfg.App.Port)
	assert.Equal(t, "localhost", cfg.Database.Host)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, 15*time.Minute, cfg.JWT.AccessTokenExpiration)
	assert.Equal(t, "openai", cfg.Assistant.Provider)
	assert.Equal(t, "https://api.company-information.service.gov.uk", cfg.CompaniesHouse.BaseURL)
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("PRACTICE_DATABASE_HOST", "db.internal")
	t.Setenv("PRACTICE_APP_PORT", "9090")

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, "9090", cfg.App.Port)
}

func TestValidate_Production(t *testing.T) {
	base := func() *Config {
		cfg := &Config{}
		applyDefaults(cfg)
		cfg.App.Env = "production"
		cfg.JWT.Secret = "0123456789abcdef0123456789abcdef"
		cfg.Database.Password = "secret"
		cfg.Database.SSLMode = "require"
		return cfg
	}

	t.Run("accepts a complete production config", func(t *testing.T) {
		assert.NoError(t, base().validate())
	})

	t.Run("rejects short jwt secret", func(t *testing.T) {
		cfg := base()
		cfg.JWT.Secret = "short"
		assert.Error(t, cfg.validate())
	})

	t.Run("rejects disabled ssl", func(t *testing.T) {
		cfg := base()
		cfg.Database.SSLMode = "disable"
		assert.Error(t, cfg.validate())
	})

	t.Run("rejects wildcard CORS origin", func(t *testing.T) {
		cfg := base()
		cfg.HTTP.CORSAllowOrigins = []string{"*"}
		assert.Error(t, cfg.validate())
	})

	t.Run("requires api key for enabled openai assistant", func(t *testing.T) {
		cfg := base()
		cfg.Assistant.Enabled = true
		assert.Error(t, cfg.validate())
	})
}

func TestValidate_AssistantProvider(t *testing.T) {
	cfg := &Config{}
	applyDefaults(cfg)
	cfg.Assistant.Enabled = true
	cfg.Assistant.Provider = "gemini"

	assert.Error(t, cfg.validate())
}

func TestDatabaseConfig_DSN(t *testing.T) {
	d := DatabaseConfig{
		Host:     "localhost",
		Port:     5432,
		User:     "postgres",
		Password: "p@ss/word",
		DBName:   "practiq",
		SSLMode:  "disable",
	}

	dsn := d.DSN()

	assert.Contains(t, dsn, "postgres://")
	assert.Contains(t, dsn, "p%40ss%2Fword")
	assert.Contains(t, dsn, "sslmode=disable")
}

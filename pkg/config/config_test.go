package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Facturador-api/pkg/config"
)

func TestLoad_ValoresPorDefecto(t *testing.T) {
	t.Setenv("APP_ENV", "development")
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("DASHBOARD_CACHE_TTL_SECONDS", "15")
	t.Setenv("EMAIL_ENABLED", "false")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, 9090, cfg.HTTP.Port)
	assert.Equal(t, "0.0.0.0:9090", cfg.HTTP.Addr())
	assert.Equal(t, 15, cfg.Cache.DashboardTTLSeconds)
	assert.False(t, cfg.Email.Enabled)
	assert.Equal(t, "en", cfg.Locale.Default)
}

func TestLoad_ProduccionSinSecret_Falla(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("JWT_SECRET", "")

	_, err := config.Load()
	assert.Error(t, err)
}

func TestDBConfig_ConnectionString(t *testing.T) {
	c := config.DBConfig{Host: "db", Port: 5432, User: "app", Password: "p@ss:word", DBName: "facturas", SSLMode: "disable"}
	assert.Equal(t, "postgres://app:p%40ss%3Aword@db:5432/facturas?sslmode=disable", c.ConnectionString())

	c.DatabaseURL = "postgres://otra"
	assert.Equal(t, "postgres://otra", c.ConnectionString())
}

func TestValidate_PuertoInvalido(t *testing.T) {
	cfg := &config.Config{
		App:  config.AppConfig{Env: "development"},
		HTTP: config.HTTPConfig{Port: 0},
	}
	assert.Error(t, cfg.Validate())
}

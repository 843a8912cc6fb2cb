package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/valve-catalog/pkg/config"
)

func TestLoad_ValoresPorDefecto(t *testing.T) {
	t.Setenv("CATALOG_STORE", "memory")
	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "memory", cfg.Catalog.Store)
	assert.Equal(t, 12, cfg.Catalog.PageSize)
	assert.Equal(t, 100, cfg.Catalog.MaxPageSize)
	assert.Equal(t, "cascade", cfg.Catalog.DeletePolicy)
	assert.False(t, cfg.Catalog.DownloadRequiresAuth)
	assert.Equal(t, "en", cfg.Catalog.DefaultLocale)
	assert.Equal(t, "/media/", cfg.Storage.MediaBaseURL)
	assert.Equal(t, "0.0.0.0:8080", cfg.HTTP.Addr())
}

func TestLoad_EnvTienePrioridad(t *testing.T) {
	t.Setenv("CATALOG_STORE", "memory")
	t.Setenv("CATALOG_DELETE_POLICY", "restrict")
	t.Setenv("CATALOG_DOWNLOAD_REQUIRES_AUTH", "true")
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("HTTP_PORT", "9090")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, "restrict", cfg.Catalog.DeletePolicy)
	assert.True(t, cfg.Catalog.DownloadRequiresAuth)
	assert.Equal(t, 9090, cfg.HTTP.Port)
}

func TestLoad_DescargaConAuthSinSecreto(t *testing.T) {
	t.Setenv("CATALOG_STORE", "memory")
	t.Setenv("CATALOG_DOWNLOAD_REQUIRES_AUTH", "true")
	t.Setenv("JWT_SECRET", "")
	_, err := config.Load()
	assert.Error(t, err)
}

func TestLoad_BackendInvalido(t *testing.T) {
	t.Setenv("STORAGE_BACKEND", "s3")
	_, err := config.Load()
	assert.Error(t, err)
}

func TestDBConfig_DSNEscapaPassword(t *testing.T) {
	c := config.DBConfig{Host: "db", Port: 5432, User: "cat", Password: "p@ss/word", DBName: "valves", SSLMode: "disable"}
	assert.Equal(t, "postgres://cat:p%40ss%2Fword@db:5432/valves?sslmode=disable", c.DSN())
	c.DatabaseURL = "postgres://x"
	assert.Equal(t, "postgres://x", c.ConnectionString())
}

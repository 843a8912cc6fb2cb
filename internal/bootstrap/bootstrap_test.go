package bootstrap_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/valve-catalog/internal/bootstrap"
	"github.com/jhoicas/valve-catalog/internal/domain"
	"github.com/jhoicas/valve-catalog/pkg/config"
	"github.com/jhoicas/valve-catalog/pkg/logger"
)

func memoryConfig(seed string) *config.Config {
	return &config.Config{
		Storage: config.StorageConfig{Backend: "memory", MediaBaseURL: "/media/"},
		Catalog: config.CatalogConfig{
			Store:         "memory",
			SeedFile:      seed,
			PageSize:      12,
			MaxPageSize:   100,
			DeletePolicy:  "restrict",
			DefaultLocale: "en",
		},
	}
}

func TestOpenStore_MemoriaConSemilla(t *testing.T) {
	ctx := context.Background()
	cfg := memoryConfig("../testutil/catalog.json")

	store, err := bootstrap.OpenStore(ctx, cfg, logger.Nop())
	require.NoError(t, err)
	defer store.Close()
	assert.Nil(t, store.Pool)

	blobs, err := bootstrap.OpenBlobs(cfg)
	require.NoError(t, err)
	ucs, err := bootstrap.NewUseCases(cfg, store, blobs)
	require.NoError(t, err)

	path, err := ucs.Category.Path(ctx, "cb-standard")
	require.NoError(t, err)
	assert.Equal(t, "Load Holding -> Counterbalance -> Standard Counterbalance", path.Label)

	err = ucs.Category.Delete(ctx, "load-holding")
	assert.ErrorIs(t, err, domain.ErrCategoryInUse, "la política restrict viene de la configuración")
}

func TestOpenStore_SemillaInexistente(t *testing.T) {
	_, err := bootstrap.OpenStore(context.Background(), memoryConfig("no-existe.json"), logger.Nop())
	assert.Error(t, err)
}

func TestNewUseCases_PoliticaInvalida(t *testing.T) {
	cfg := memoryConfig("")
	cfg.Catalog.DeletePolicy = "soft"
	store, err := bootstrap.OpenStore(context.Background(), cfg, logger.Nop())
	require.NoError(t, err)

	_, err = bootstrap.NewUseCases(cfg, store, nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// Package bootstrap arma el almacén del catálogo, el blob store y los casos de uso
// a partir de la configuración. Lo comparten el servidor HTTP y catalogctl.
package bootstrap

import (
	"context"
	"fmt"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/afero"

	"github.com/jhoicas/valve-catalog/internal/application/ports"
	"github.com/jhoicas/valve-catalog/internal/application/usecase"
	"github.com/jhoicas/valve-catalog/internal/domain/repository"
	"github.com/jhoicas/valve-catalog/internal/infrastructure/blob"
	"github.com/jhoicas/valve-catalog/internal/infrastructure/memory"
	infrapdf "github.com/jhoicas/valve-catalog/internal/infrastructure/pdf"
	"github.com/jhoicas/valve-catalog/internal/infrastructure/postgres"
	"github.com/jhoicas/valve-catalog/pkg/config"
	"github.com/jhoicas/valve-catalog/pkg/i18n"
	"github.com/jhoicas/valve-catalog/pkg/logger"
)

// Store repositorios del catálogo sobre el backend configurado.
type Store struct {
	Categories repository.CategoryRepository
	Products   repository.ProductRepository
	Documents  repository.DocumentRepository
	Curves     repository.PerformanceCurveRepository
	Tx         ports.CatalogTxRunner

	// Pool solo con CATALOG_STORE=postgres.
	Pool *pgxpool.Pool
}

// Close libera el pool si existe.
func (s *Store) Close() {
	if s.Pool != nil {
		s.Pool.Close()
	}
}

// OpenStore abre el almacén. En memoria carga CATALOG_SEED_FILE si está definido.
func OpenStore(ctx context.Context, cfg *config.Config, log *logger.Logger) (*Store, error) {
	switch cfg.Catalog.Store {
	case "memory":
		c := memory.NewCatalog()
		s := &Store{
			Categories: c.Categories(),
			Products:   c.Products(),
			Documents:  c.Documents(),
			Curves:     c.Curves(),
			Tx:         c,
		}
		if cfg.Catalog.SeedFile != "" {
			res, err := Seed(ctx, s, cfg.Catalog.SeedFile)
			if err != nil {
				return nil, err
			}
			log.Info().
				Str("file", cfg.Catalog.SeedFile).
				Int("categories", res.Categories).
				Int("products", res.Products).
				Int("documents", res.Documents).
				Int("curves", res.Curves).
				Msg("catálogo en memoria cargado")
		}
		return s, nil
	case "postgres":
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			return nil, err
		}
		return &Store{
			Categories: postgres.NewCategoryRepository(pool),
			Products:   postgres.NewProductRepository(pool),
			Documents:  postgres.NewDocumentRepository(pool),
			Curves:     postgres.NewCurveRepository(pool),
			Tx:         postgres.NewTxRunner(pool),
			Pool:       pool,
		}, nil
	}
	return nil, fmt.Errorf("bootstrap: almacén desconocido %q", cfg.Catalog.Store)
}

// OpenBlobs abre el blob store: disco bajo STORAGE_ROOT o memoria.
func OpenBlobs(cfg *config.Config) (*blob.AferoStore, error) {
	if cfg.Storage.Backend == "memory" {
		return blob.NewAferoStore(afero.NewMemMapFs()), nil
	}
	return blob.NewOSStore(cfg.Storage.Root)
}

// Seed importa un archivo JSON de catálogo en el almacén.
func Seed(ctx context.Context, s *Store, path string) (*usecase.ImportResult, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("abrir %s: %w", path, err)
	}
	defer f.Close()
	file, err := usecase.DecodeCatalogFile(f)
	if err != nil {
		return nil, err
	}
	return usecase.NewImportUseCase(s.Categories, s.Products, s.Documents, s.Curves).Import(ctx, file)
}

// UseCases casos de uso de lectura del catálogo.
type UseCases struct {
	Labels   *i18n.Labels
	Category *usecase.CategoryUseCase
	Product  *usecase.ProductUseCase
	Document *usecase.DocumentUseCase
}

// NewUseCases conecta los casos de uso con el almacén, el blob store y el generador de fichas.
func NewUseCases(cfg *config.Config, s *Store, blobs ports.BlobStore) (*UseCases, error) {
	policy, err := usecase.ParseDeletePolicy(cfg.Catalog.DeletePolicy)
	if err != nil {
		return nil, err
	}
	labels := i18n.New(cfg.Catalog.DefaultLocale)
	mapper := usecase.NewMapper(cfg.Storage.MediaBaseURL, labels)
	datasheet := infrapdf.NewMarotoDatasheetGenerator(labels, cfg.HTTP.PublicURL)
	return &UseCases{
		Labels:   labels,
		Category: usecase.NewCategoryUseCase(s.Categories, s.Tx, policy, mapper),
		Product:  usecase.NewProductUseCase(s.Products, s.Categories, s.Documents, s.Curves, datasheet, mapper),
		Document: usecase.NewDocumentUseCase(s.Documents, blobs),
	}, nil
}

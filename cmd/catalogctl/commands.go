package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/jhoicas/valve-catalog/internal/application/usecase"
	"github.com/jhoicas/valve-catalog/internal/bootstrap"
	"github.com/jhoicas/valve-catalog/internal/infrastructure/postgres"
	"github.com/jhoicas/valve-catalog/pkg/config"
	pkgjwt "github.com/jhoicas/valve-catalog/pkg/jwt"
	"github.com/jhoicas/valve-catalog/pkg/logger"
)

// env configuración, logger y almacén abiertos para un comando.
type env struct {
	cfg   *config.Config
	log   *logger.Logger
	store *bootstrap.Store
}

func openEnv(ctx context.Context, withStore bool) (*env, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	e := &env{cfg: cfg, log: logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel}).Named("catalogctl")}
	if withStore {
		if e.store, err = bootstrap.OpenStore(ctx, cfg, e.log); err != nil {
			return nil, err
		}
	}
	return e, nil
}

func (e *env) close() {
	if e.store != nil {
		e.store.Close()
	}
}

func newRootCmd() *cobra.Command {
	var timeout time.Duration
	cancel := context.CancelFunc(func() {})
	root := &cobra.Command{
		Use:           "catalogctl",
		Short:         "Operación del catálogo de válvulas",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			var ctx context.Context
			ctx, cancel = context.WithTimeout(cmd.Context(), timeout)
			cmd.SetContext(ctx)
		},
		PersistentPostRun: func(*cobra.Command, []string) { cancel() },
	}
	root.PersistentFlags().DurationVar(&timeout, "timeout", 2*time.Minute, "Tiempo máximo de la operación")

	root.AddCommand(newMigrateCmd(), newSeedCmd(), newTokenCmd(), newCategoryCmd())
	return root
}

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Aplica las migraciones pendientes en PostgreSQL",
		RunE: func(cmd *cobra.Command, _ []string) error {
			e, err := openEnv(cmd.Context(), false)
			if err != nil {
				return err
			}
			if e.cfg.Catalog.Store != "postgres" {
				return fmt.Errorf("migrate requiere CATALOG_STORE=postgres (actual %q)", e.cfg.Catalog.Store)
			}
			pool, err := postgres.NewPool(cmd.Context(), e.cfg.DB)
			if err != nil {
				return err
			}
			defer pool.Close()
			applied, err := postgres.Migrate(cmd.Context(), pool)
			if err != nil {
				return err
			}
			for _, name := range applied {
				e.log.Info().Str("migration", name).Msg("aplicada")
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d migraciones aplicadas\n", len(applied))
			return nil
		},
	}
}

func newSeedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed <catalog.json>",
		Short: "Importa categorías, productos, documentos y curvas desde un archivo JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(cmd.Context(), true)
			if err != nil {
				return err
			}
			defer e.close()
			res, err := bootstrap.Seed(cmd.Context(), e.store, args[0])
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), res)
		},
	}
}

func newTokenCmd() *cobra.Command {
	var subject, scope string
	var minutes int
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Emite un token Bearer para descargas autenticadas",
		RunE: func(cmd *cobra.Command, _ []string) error {
			e, err := openEnv(cmd.Context(), false)
			if err != nil {
				return err
			}
			if e.cfg.JWT.Secret == "" {
				return fmt.Errorf("token requiere JWT_SECRET")
			}
			if minutes <= 0 {
				minutes = e.cfg.JWT.Expiration
			}
			tok, err := pkgjwt.Generate(e.cfg.JWT.Secret, subject, scope, e.cfg.JWT.Issuer, minutes)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), tok)
			return nil
		},
	}
	cmd.Flags().StringVar(&subject, "subject", "", "Sujeto del token (distribuidor, usuario)")
	cmd.Flags().StringVar(&scope, "scope", "downloads", "Alcance del token")
	cmd.Flags().IntVar(&minutes, "minutes", 0, "Vigencia en minutos (por defecto JWT_EXPIRATION_MINUTES)")
	_ = cmd.MarkFlagRequired("subject")
	return cmd
}

func newCategoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "category",
		Short: "Mantenimiento del árbol de categorías",
	}

	path := &cobra.Command{
		Use:   "path <id|slug>",
		Short: "Muestra la ruta raíz → categoría",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, ucs, err := openUseCases(cmd)
			if err != nil {
				return err
			}
			defer e.close()
			res, err := ucs.Category.Path(cmd.Context(), args[0])
			if res != nil {
				fmt.Fprintln(cmd.OutOrStdout(), res.Label)
			}
			return err
		},
	}

	var policy string
	del := &cobra.Command{
		Use:   "delete <id|slug>",
		Short: "Borra una categoría (cascade borra descendientes y productos; restrict rechaza si está en uso)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, ucs, err := openUseCases(cmd)
			if err != nil {
				return err
			}
			defer e.close()
			p := ucs.Category.Policy()
			if policy != "" {
				if p, err = usecase.ParseDeletePolicy(policy); err != nil {
					return err
				}
			}
			if err := ucs.Category.DeleteWithPolicy(cmd.Context(), args[0], p); err != nil {
				return err
			}
			e.log.Info().Str("category", args[0]).Str("policy", string(p)).Msg("categoría eliminada")
			fmt.Fprintf(cmd.OutOrStdout(), "categoría %s eliminada (%s)\n", args[0], p)
			return nil
		},
	}
	del.Flags().StringVar(&policy, "policy", "", "cascade | restrict (por defecto CATALOG_DELETE_POLICY)")

	cmd.AddCommand(path, del)
	return cmd
}

func openUseCases(cmd *cobra.Command) (*env, *bootstrap.UseCases, error) {
	e, err := openEnv(cmd.Context(), true)
	if err != nil {
		return nil, nil, err
	}
	blobs, err := bootstrap.OpenBlobs(e.cfg)
	if err != nil {
		e.close()
		return nil, nil, err
	}
	ucs, err := bootstrap.NewUseCases(e.cfg, e.store, blobs)
	if err != nil {
		e.close()
		return nil, nil, err
	}
	return e, ucs, nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

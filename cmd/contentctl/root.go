package main

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"

	"github.com/kingarthur/content-api/internal/config"
	"github.com/kingarthur/content-api/internal/db"
	"github.com/kingarthur/content-api/internal/gallery"
	"github.com/kingarthur/content-api/internal/news"
	"github.com/kingarthur/content-api/internal/storage"
)

func newRootCmd(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "contentctl",
		Short:         "Maintenance tooling for the content API",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.AddCommand(
		newCleanupCmd(cfg),
		newSeedGalleryCmd(cfg),
		newSeedNewsCmd(cfg),
	)

	return cmd
}

// services bundles the wired dependencies shared by all subcommands.
type services struct {
	pool    *pgxpool.Pool
	gallery *gallery.Service
	news    *news.Service
}

func connect(ctx context.Context, cfg *config.Config) (*services, error) {
	pool, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}
	if err := db.Migrate(cfg.DatabaseURL); err != nil {
		pool.Close()
		return nil, err
	}

	store, err := storage.NewMinioStore(
		cfg.StorageEndpoint,
		cfg.StorageAccessKey,
		cfg.StorageSecretKey,
		cfg.StorageBucket,
		cfg.StorageUseSSL,
	)
	if err != nil {
		pool.Close()
		return nil, err
	}

	return &services{
		pool:    pool,
		gallery: gallery.NewService(gallery.NewRepository(pool), store),
		news:    news.NewService(news.NewRepository(pool), store),
	}, nil
}

func (s *services) close() {
	s.pool.Close()
}

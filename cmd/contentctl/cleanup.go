package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kingarthur/content-api/internal/config"
)

func newCleanupCmd(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "cleanup",
		Short: "Delete all gallery and news content including stored images",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			svcs, err := connect(ctx, cfg)
			if err != nil {
				return err
			}
			defer svcs.close()

			galleryCount, err := svcs.gallery.DeleteAll(ctx)
			if err != nil {
				return fmt.Errorf("cleanup gallery: %w", err)
			}
			fmt.Printf("deleted %d gallery items\n", galleryCount)

			newsCount, err := svcs.news.DeleteAll(ctx)
			if err != nil {
				return fmt.Errorf("cleanup news: %w", err)
			}
			fmt.Printf("deleted %d news items\n", newsCount)

			return nil
		},
	}
}

package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/yungbote/farm-catalog-backend/internal/app"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the catalog schema",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withApp(cmd, func(_ context.Context, a *app.App) error {
			if err := a.Migrate(); err != nil {
				return err
			}
			a.Log.Info("Schema is up to date")
			return nil
		})
	},
}

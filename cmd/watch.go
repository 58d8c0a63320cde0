package main

import (
	"context"
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/yungbote/farm-catalog-backend/internal/app"
	"github.com/yungbote/farm-catalog-backend/internal/realtime"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Print catalog change events from the redis event bus as JSON lines (requires REDIS_ADDR)",
	RunE: func(cmd *cobra.Command, _ []string) error {
		out := json.NewEncoder(cmd.OutOrStdout())
		return withApp(cmd, func(ctx context.Context, a *app.App) error {
			return a.Watch(ctx, func(ev realtime.CatalogEvent) {
				if err := out.Encode(ev); err != nil {
					a.Log.Warn("Encode event failed", "error", err)
				}
			})
		})
	},
}

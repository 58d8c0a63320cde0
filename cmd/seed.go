package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yungbote/farm-catalog-backend/internal/app"
)

var seedFile string

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load sample farms and crops into an empty catalog",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withApp(cmd, func(ctx context.Context, a *app.App) error {
			if seedFile != "" {
				a.Cfg.Seed.File = seedFile
			}
			if err := a.Migrate(); err != nil {
				return err
			}
			res, err := a.Seed(ctx)
			if err != nil {
				return err
			}
			if res.Skipped {
				fmt.Fprintln(cmd.OutOrStdout(), "catalog already has farms; nothing seeded")
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "seeded %d farms, %d fruits, %d vegetables\n", res.Farms, res.Fruits, res.Vegetables)
			return nil
		})
	},
}

func init() {
	seedCmd.Flags().StringVar(&seedFile, "file", "", "seed YAML file (default: embedded sample data)")
}

//go:build !release

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/garrettladley/sensorlink/internal/migrations"
)

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending local migrations and print the history",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			// opening the database applies any pending migrations
			sqlDB, _, err := openDB(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = sqlDB.Close() }()

			history, err := migrations.History(ctx, sqlDB)
			if err != nil {
				return err
			}
			for _, r := range history {
				fmt.Printf("%s  %s\n", r.AppliedAt.Format("2006-01-02 15:04:05"), r.Name)
			}
			return nil
		},
	}
}

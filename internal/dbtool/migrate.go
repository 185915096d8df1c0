package dbtool

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vkotlyarenko/go-agro-registry/internal/server/config"
)

// NewMigrateCmd создаёт команду применения миграций.
//
// Путь к миграциям берётся из конфига (migrations.path).
func NewMigrateCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Применить миграции БД",
		RunE: func(cmd *cobra.Command, args []string) error {
			pool, err := app.openDB()
			if err != nil {
				return err
			}
			defer pool.Close()

			if err := config.RunMigrations(pool, app.Cfg.Migrations.Path); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "migrations applied")
			return nil
		},
	}
}

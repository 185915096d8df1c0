package dbtool

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/vkotlyarenko/go-agro-registry/internal/server/db"
	"github.com/vkotlyarenko/go-agro-registry/internal/server/repository"
)

// NewSeedCmd создаёт команду загрузки справочных таблиц из CSV.
//
// Вся загрузка выполняется в ОДНОЙ транзакции: либо все справочники
// загружены целиком, либо не загружен ни один.
func NewSeedCmd(app *App) *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Загрузить справочные таблицы из CSV",
		RunE: func(cmd *cobra.Command, args []string) error {
			if dir == "" {
				dir = app.Cfg.Seed.Dir
			}

			cropTypes, err := os.Open(filepath.Join(dir, "crop_types.csv"))
			if err != nil {
				return fmt.Errorf("открытие crop_types.csv: %w", err)
			}
			defer cropTypes.Close()

			kcPatterns, err := os.Open(filepath.Join(dir, "kc_patterns.csv"))
			if err != nil {
				return fmt.Errorf("открытие kc_patterns.csv: %w", err)
			}
			defer kcPatterns.Close()

			pool, err := app.openDB()
			if err != nil {
				return err
			}
			defer pool.Close()

			sessions := db.NewManager(pool)
			seed := repository.NewSeedRepository()

			var crops, patterns int
			err = sessions.Do(cmd.Context(), func(ctx context.Context, q db.DBTX) error {
				var err error
				if crops, err = seed.LoadCropTypes(ctx, q, cropTypes); err != nil {
					return err
				}
				patterns, err = seed.LoadKcPatterns(ctx, q, kcPatterns)
				return err
			})
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "seeded: %d crop types, %d kc patterns\n", crops, patterns)
			return nil
		},
	}

	cmd.Flags().StringVar(&dir, "dir", "", "каталог с CSV (по умолчанию seed.dir из конфига)")

	return cmd
}

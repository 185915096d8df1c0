package dbtool

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vkotlyarenko/go-agro-registry/internal/server/db"
)

// NewDropCmd создаёт команду полного удаления таблиц базы.
//
// Операция необратима, поэтому:
//   - без --force команда требует интерактивного подтверждения
//     (надо напечатать "yes");
//   - на неинтерактивном stdin без --force команда отказывается работать.
//
// Каскадное удаление User -> PersonalData существует только здесь,
// через HTTP удаление не доступно.
func NewDropCmd(app *App) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "drop",
		Short: "Удалить ВСЕ таблицы базы (необратимо)",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !force {
				if !term.IsTerminal(int(os.Stdin.Fd())) {
					return fmt.Errorf("stdin не интерактивен: используй --force, если точно уверен")
				}

				fmt.Fprint(cmd.OutOrStdout(), "Будут удалены ВСЕ таблицы. Напечатай 'yes' для подтверждения: ")
				answer, err := bufio.NewReader(os.Stdin).ReadString('\n')
				if err != nil {
					return err
				}
				if strings.TrimSpace(answer) != "yes" {
					return fmt.Errorf("отменено")
				}
			}

			pool, err := app.openDB()
			if err != nil {
				return err
			}
			defer pool.Close()

			sessions := db.NewManager(pool)

			var dropped int
			err = sessions.Do(cmd.Context(), func(ctx context.Context, q db.DBTX) error {
				rows, err := q.QueryContext(ctx,
					`SELECT tablename FROM pg_tables WHERE schemaname = 'public'`)
				if err != nil {
					return fmt.Errorf("список таблиц: %w", err)
				}
				defer rows.Close()

				var tables []string
				for rows.Next() {
					var name string
					if err := rows.Scan(&name); err != nil {
						return err
					}
					tables = append(tables, name)
				}
				if err := rows.Err(); err != nil {
					return err
				}

				// CASCADE снимает зависимости по внешним ключам,
				// порядок удаления не важен
				for _, name := range tables {
					if _, err := q.ExecContext(ctx,
						fmt.Sprintf(`DROP TABLE IF EXISTS %q CASCADE`, name)); err != nil {
						return fmt.Errorf("drop %s: %w", name, err)
					}
					dropped++
				}
				return nil
			})
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "dropped %d tables\n", dropped)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "не спрашивать подтверждение")

	return cmd
}

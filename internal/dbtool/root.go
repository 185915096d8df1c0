// Package dbtool реализует обслуживающий CLI для базы данных сервера.
//
// Пакет отвечает за:
//   - определение root-команды и набора подкоманд (migrate, seed, drop);
//   - разбор аргументов и флагов командной строки;
//   - загрузку конфига сервера и подключение к БД;
//   - выполнение разовых обслуживающих операций, которые не должны
//     быть доступны через HTTP API.
//
// Точка входа пакета — функция Execute.
package dbtool

import (
	"database/sql"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/vkotlyarenko/go-agro-registry/internal/server/config"
)

// App содержит состояние CLI, разделяемое между командами.
type App struct {
	// CfgPath — путь к yaml-конфигу сервера.
	CfgPath string
	// DSN — переопределение строки подключения из флага --dsn.
	DSN string

	// Cfg — загруженный конфиг (заполняется в PersistentPreRunE).
	Cfg *config.Config
}

// NewRootCmd создаёт root-команду CLI и регистрирует подкоманды.
//
// В PersistentPreRunE загружаются .env и конфиг сервера;
// подключение к БД каждая команда открывает сама.
func NewRootCmd() *cobra.Command {
	app := &App{}

	cmd := &cobra.Command{
		Use:   "dbtool",
		Short: "Обслуживание базы данных сервера регистрации",
		Long: `Обслуживающие операции над базой данных.

Команды:
  migrate  Применить миграции
  seed     Загрузить справочные таблицы из CSV
  drop     Удалить ВСЕ таблицы базы (необратимо)

Примеры:

Применить миграции:
  dbtool migrate

Загрузить справочники:
  dbtool seed

Снести базу и начать с нуля:
  dbtool drop --force
  dbtool migrate
  dbtool seed
`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := godotenv.Load(); err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "no .env file loaded: %v\n", err)
			}

			cfg, err := config.Load(app.CfgPath)
			if err != nil {
				return err
			}
			if app.DSN != "" {
				cfg.DB.DSN = app.DSN
			}
			app.Cfg = cfg
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&app.CfgPath, "config", "./configs/server.yaml", "путь к конфигу сервера")
	cmd.PersistentFlags().StringVar(&app.DSN, "dsn", "", "строка подключения к БД (переопределяет конфиг)")

	cmd.AddCommand(NewMigrateCmd(app))
	cmd.AddCommand(NewSeedCmd(app))
	cmd.AddCommand(NewDropCmd(app))

	return cmd
}

// openDB открывает пул по настройкам приложения.
// Закрыть пул обязан вызывающий.
func (app *App) openDB() (*sql.DB, error) {
	return config.OpenDB(app.Cfg.DB)
}

// Execute запускает CLI.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

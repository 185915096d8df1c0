// Открытие подключения к PostgreSQL и запуск миграций.
//
// Файл выполняет:
//   - открытие соединения с PostgreSQL (через драйвер pgx);
//   - проверку доступности базы (Ping);
//   - настройку лимитов пула соединений;
//   - запуск миграций (golang-migrate) при старте сервера.
//
// Пул создаётся один раз при запуске и передаётся дальше явно —
// глобального состояния пакет не держит.
package config

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"

	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/jackc/pgx/v4/stdlib"
)

// OpenDB открывает пул соединений к базе по настройкам из конфига,
// проверяет доступность базы и применяет лимиты пула.
//
// Пул — общий для всего процесса ресурс: вызывающий обязан закрыть его
// при остановке (db.Close).
func OpenDB(cfg DBConfig) (*sql.DB, error) {
	db, err := sql.Open("pgx", cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("открытие подключения к БД: %w", err)
	}

	// лимиты пула ограничивают число физических соединений;
	// операции сверх лимита ждут освобождения соединения
	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	db.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("проверка соединения с БД: %w", err)
	}

	return db, nil
}

// RunMigrations применяет миграции из каталога path (file://...).
// Если миграции уже применены, ошибка migrate.ErrNoChange не считается ошибкой.
func RunMigrations(db *sql.DB, path string) error {
	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return fmt.Errorf("создание драйвера миграций: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance(path, "postgres", driver)
	if err != nil {
		return fmt.Errorf("создание миграций: %w", err)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("применение миграций: %w", err)
	}

	return nil
}

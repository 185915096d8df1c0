// Package db реализует сессионный слой работы с базой данных.
//
// Пакет отвечает за:
//   - выдачу сессий, привязанных к одному физическому соединению из пула;
//   - явный жизненный цикл транзакции (begin/commit/rollback);
//   - гарантированный возврат соединения в пул на всех путях выхода.
package db

import (
	"context"
	"database/sql"
)

// DBTX — минимальный интерфейс выполнения запросов, который репозитории
// ожидают от сессионного слоя. Его реализуют и *sql.Conn, и *sql.Tx,
// поэтому один и тот же репозиторий работает как внутри транзакции,
// так и вне её.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

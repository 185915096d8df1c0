package db_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/vkotlyarenko/go-agro-registry/internal/server/db"
	serr "github.com/vkotlyarenko/go-agro-registry/internal/shared/errors"
)

// Успешная операция фиксируется
func TestManager_Do_Commit(t *testing.T) {
	mockDB, mock, _ := sqlmock.New()
	defer mockDB.Close()

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO users`).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	m := db.NewManager(mockDB)

	err := m.Do(context.Background(), func(ctx context.Context, q db.DBTX) error {
		_, err := q.ExecContext(ctx, `INSERT INTO users (email) VALUES ($1)`, "a@x.com")
		return err
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

// Ошибка операции откатывает транзакцию
func TestManager_Do_RollbackOnError(t *testing.T) {
	mockDB, mock, _ := sqlmock.New()
	defer mockDB.Close()

	mock.ExpectBegin()
	mock.ExpectRollback()

	m := db.NewManager(mockDB)

	boom := errors.New("boom")
	err := m.Do(context.Background(), func(ctx context.Context, q db.DBTX) error {
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

// Паника внутри операции откатывает транзакцию и пробрасывается дальше
func TestManager_Do_RollbackOnPanic(t *testing.T) {
	mockDB, mock, _ := sqlmock.New()
	defer mockDB.Close()

	mock.ExpectBegin()
	mock.ExpectRollback()

	m := db.NewManager(mockDB)

	defer func() {
		if r := recover(); r == nil {
			t.Fatalf("expected panic to propagate")
		}
		if err := mock.ExpectationsWereMet(); err != nil {
			t.Fatalf("expectations: %v", err)
		}
	}()

	_ = m.Do(context.Background(), func(ctx context.Context, q db.DBTX) error {
		panic("kaput")
	})
}

// Ошибка отката не проглатывается
func TestManager_Do_RollbackErrorNotSwallowed(t *testing.T) {
	mockDB, mock, _ := sqlmock.New()
	defer mockDB.Close()

	rbErr := errors.New("rollback failed")
	mock.ExpectBegin()
	mock.ExpectRollback().WillReturnError(rbErr)

	m := db.NewManager(mockDB)

	boom := errors.New("boom")
	err := m.Do(context.Background(), func(ctx context.Context, q db.DBTX) error {
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected boom in joined error, got %v", err)
	}
	if !errors.Is(err, rbErr) {
		t.Fatalf("expected rollback error in joined error, got %v", err)
	}
}

// Повторный begin — программная ошибка
func TestSession_Begin_Twice(t *testing.T) {
	mockDB, mock, _ := sqlmock.New()
	defer mockDB.Close()

	mock.ExpectBegin()

	m := db.NewManager(mockDB)

	sess, err := m.Acquire(context.Background())
	if err != nil {
		t.Fatalf("acquire: %v", err)
	}
	defer sess.Close()

	if err := sess.Begin(context.Background()); err != nil {
		t.Fatalf("first begin: %v", err)
	}
	if err := sess.Begin(context.Background()); !errors.Is(err, serr.ErrTxState) {
		t.Fatalf("expected ErrTxState, got %v", err)
	}
}

// Commit без открытой транзакции — программная ошибка
func TestSession_Commit_WithoutBegin(t *testing.T) {
	mockDB, _, _ := sqlmock.New()
	defer mockDB.Close()

	m := db.NewManager(mockDB)

	sess, err := m.Acquire(context.Background())
	if err != nil {
		t.Fatalf("acquire: %v", err)
	}
	defer sess.Close()

	if err := sess.Commit(); !errors.Is(err, serr.ErrTxState) {
		t.Fatalf("expected ErrTxState, got %v", err)
	}
	if err := sess.Rollback(); !errors.Is(err, serr.ErrTxState) {
		t.Fatalf("expected ErrTxState, got %v", err)
	}
}

// Операции на закрытой сессии — программная ошибка
func TestSession_UseAfterClose(t *testing.T) {
	mockDB, _, _ := sqlmock.New()
	defer mockDB.Close()

	m := db.NewManager(mockDB)

	sess, err := m.Acquire(context.Background())
	if err != nil {
		t.Fatalf("acquire: %v", err)
	}

	if err := sess.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	// повторный Close безопасен
	if err := sess.Close(); err != nil {
		t.Fatalf("second close: %v", err)
	}

	if err := sess.Begin(context.Background()); !errors.Is(err, serr.ErrTxState) {
		t.Fatalf("expected ErrTxState, got %v", err)
	}
}

// Close с открытой транзакцией откатывает её перед возвратом соединения
func TestSession_Close_RollsBackOpenTx(t *testing.T) {
	mockDB, mock, _ := sqlmock.New()
	defer mockDB.Close()

	mock.ExpectBegin()
	mock.ExpectRollback()

	m := db.NewManager(mockDB)

	sess, err := m.Acquire(context.Background())
	if err != nil {
		t.Fatalf("acquire: %v", err)
	}
	if err := sess.Begin(context.Background()); err != nil {
		t.Fatalf("begin: %v", err)
	}

	if err := sess.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

// Конкурентные операции: каждая в своей сессии, пул не зависает
func TestManager_Do_Concurrent(t *testing.T) {
	mockDB, mock, _ := sqlmock.New()
	defer mockDB.Close()

	const n = 100

	// порядок команд от разных горутин непредсказуем
	mock.MatchExpectationsInOrder(false)
	for i := 0; i < n; i++ {
		mock.ExpectBegin()
		mock.ExpectExec(`INSERT INTO users`).
			WillReturnResult(sqlmock.NewResult(int64(i+1), 1))
		mock.ExpectCommit()
	}

	// пул меньше числа операций: лишние должны ждать, а не падать
	mockDB.SetMaxOpenConns(5)

	m := db.NewManager(mockDB)

	var wg sync.WaitGroup
	errs := make(chan error, n)

	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs <- m.Do(context.Background(), func(ctx context.Context, q db.DBTX) error {
				_, err := q.ExecContext(ctx,
					`INSERT INTO users (email) VALUES ($1)`,
					fmt.Sprintf("user%d@x.com", i))
				return err
			})
		}(i)
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

// Acquire с закрытым пулом — база недоступна
func TestManager_Acquire_Unavailable(t *testing.T) {
	mockDB, _, _ := sqlmock.New()
	mockDB.Close()

	m := db.NewManager(mockDB)

	_, err := m.Acquire(context.Background())
	if !errors.Is(err, serr.ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable, got %v", err)
	}
}

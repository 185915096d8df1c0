package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	serr "github.com/vkotlyarenko/go-agro-registry/internal/shared/errors"
)

// Session — логическая сессия: одно физическое соединение из пула
// на время одной логической операции.
//
// Правила использования:
//   - сессия не разделяется между конкурентными операциями;
//   - begin нельзя вызывать при уже открытой транзакции;
//   - каждую полученную сессию обязательно закрывают (Close) на всех
//     путях выхода, иначе пул исчерпается.
type Session struct {
	conn   *sql.Conn
	tx     *sql.Tx
	closed bool
}

// Begin открывает транзакцию на сессии.
//
// Ошибки:
//   - ErrTxState если транзакция уже открыта или сессия закрыта;
//   - ErrUnavailable если БД недоступна.
func (s *Session) Begin(ctx context.Context) error {
	if s.closed {
		return fmt.Errorf("%w: begin on closed session", serr.ErrTxState)
	}
	if s.tx != nil {
		return fmt.Errorf("%w: transaction already open", serr.ErrTxState)
	}

	tx, err := s.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: %v", serr.ErrUnavailable, err)
	}
	s.tx = tx
	return nil
}

// Commit фиксирует открытую транзакцию.
//
// При ошибке фиксации транзакция остаётся непригодной — повторять
// commit нельзя, сессию нужно закрыть. Ошибка БД пробрасывается вызывающему.
func (s *Session) Commit() error {
	if s.closed {
		return fmt.Errorf("%w: commit on closed session", serr.ErrTxState)
	}
	if s.tx == nil {
		return fmt.Errorf("%w: commit without open transaction", serr.ErrTxState)
	}

	err := s.tx.Commit()
	s.tx = nil
	if err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// Rollback откатывает открытую транзакцию.
//
// Ошибка отката НЕ проглатывается: вызывающий должен о ней узнать,
// иначе сессия может остаться в грязном состоянии незаметно.
func (s *Session) Rollback() error {
	if s.closed {
		return fmt.Errorf("%w: rollback on closed session", serr.ErrTxState)
	}
	if s.tx == nil {
		return fmt.Errorf("%w: rollback without open transaction", serr.ErrTxState)
	}

	err := s.tx.Rollback()
	s.tx = nil
	if err != nil && !errors.Is(err, sql.ErrTxDone) {
		return fmt.Errorf("rollback: %w", err)
	}
	return nil
}

// Q возвращает исполнитель запросов текущей сессии:
// транзакцию, если она открыта, иначе само соединение.
func (s *Session) Q() DBTX {
	if s.tx != nil {
		return s.tx
	}
	return s.conn
}

// InTx сообщает, открыта ли на сессии транзакция.
func (s *Session) InTx() bool {
	return s.tx != nil
}

// Close возвращает соединение в пул. Вызывается на всех путях выхода.
//
// Если транзакция ещё открыта — сначала откатывает её (брошенных
// транзакций быть не должно). Повторный Close безопасен.
func (s *Session) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true

	var rbErr error
	if s.tx != nil {
		rbErr = s.tx.Rollback()
		if errors.Is(rbErr, sql.ErrTxDone) {
			rbErr = nil
		}
		s.tx = nil
	}

	closeErr := s.conn.Close()
	if errors.Is(closeErr, sql.ErrConnDone) {
		closeErr = nil
	}
	return errors.Join(rbErr, closeErr)
}

// Manager выдаёт сессии поверх общего пула соединений.
//
// Пул создаётся один раз при старте процесса и закрывается при остановке;
// Manager просто внедряется во все операции (никакого глобального состояния).
type Manager struct {
	pool *sql.DB
}

// NewManager создаёт Manager поверх готового пула.
func NewManager(pool *sql.DB) *Manager {
	return &Manager{pool: pool}
}

// Acquire выдаёт новую сессию, привязанную к соединению из пула.
//
// Если пул исчерпан — вызов ждёт освобождения соединения (семантика
// database/sql). Если БД недоступна — ErrUnavailable.
func (m *Manager) Acquire(ctx context.Context) (*Session, error) {
	conn, err := m.pool.Conn(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", serr.ErrUnavailable, err)
	}
	return &Session{conn: conn}, nil
}

// Do выполняет fn внутри одной транзакционной сессии.
//
// Дисциплина acquire/begin/commit-или-rollback/close в одном месте:
//   - commit при успехе fn;
//   - rollback при ошибке или панике (паника пробрасывается дальше);
//   - Close всегда, даже после паники.
//
// Ошибка отката присоединяется к ошибке операции через errors.Join,
// чтобы ни одна из них не потерялась.
func (m *Manager) Do(ctx context.Context, fn func(ctx context.Context, q DBTX) error) (err error) {
	sess, err := m.Acquire(ctx)
	if err != nil {
		return err
	}

	defer func() {
		closeErr := sess.Close()
		if p := recover(); p != nil {
			panic(p)
		}
		err = errors.Join(err, closeErr)
	}()

	if err = sess.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		if p := recover(); p != nil {
			if sess.InTx() {
				_ = sess.Rollback()
			}
			panic(p)
		}
	}()

	if err = fn(ctx, sess.Q()); err != nil {
		return errors.Join(err, sess.Rollback())
	}

	return sess.Commit()
}

// Package errors содержит общие доменные ошибки приложения
// и утилиты для error wrapping.
//
// Эти ошибки используются в service, repository и db слоях
// и маппятся на HTTP-статусы в api слое.
package errors

import "errors"

var (
	// Входные данные невалидны (пустые поля, неправильный формат и т.п.)
	ErrInvalidInput = errors.New("invalid input")
	// Получена непредвиденная ошибка
	ErrInternal = errors.New("internal error")
	// Полученные JSON данные с ошибками
	ErrBadJSON = errors.New("bad json")
	// Ресурс уже существует (например email уже занят)
	ErrAlreadyExists = errors.New("already exists")
	// Ресурс не найден. Для lookup-операций это нормальный результат,
	// а не исключительная ситуация
	ErrNotFound = errors.New("not found")
)

// ошибки контракта вызова и жизненного цикла транзакций
var (
	// Нарушение контракта поиска: не передан ни id, ни email
	ErrInvalidQuery = errors.New("invalid query: id or email required")
	// Ошибка состояния транзакции: begin при открытой транзакции,
	// commit/rollback без транзакции или на закрытой сессии.
	// Это программная ошибка, а не ситуация для retry
	ErrTxState = errors.New("transaction state error")
	// База недоступна (нет соединения, таймаут). Ретраи — забота
	// вызывающего слоя, внутри не повторяем
	ErrUnavailable = errors.New("store unavailable")
)

// Package repository содержит реализации слоя доступа к данным (Repository layer).
//
// Репозитории инкапсулируют работу с БД и не содержат бизнес-логики.
// Все ошибки приводятся к доменным ошибкам из internal/shared/errors.
// Репозитории не держат соединение сами: исполнитель запросов (db.DBTX)
// передаётся в каждый метод, поэтому один и тот же репозиторий работает
// внутри любой транзакционной сессии.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgconn"

	"github.com/vkotlyarenko/go-agro-registry/internal/server/db"
	"github.com/vkotlyarenko/go-agro-registry/internal/server/models"
	serr "github.com/vkotlyarenko/go-agro-registry/internal/shared/errors"
)

// код ошибки PostgreSQL unique_violation
const pgUniqueViolation = "23505"

// UsersRepository отвечает за хранение пользователей.
type UsersRepository struct{}

// NewUsersRepository создает новый UsersRepository.
func NewUsersRepository() *UsersRepository {
	return &UsersRepository{}
}

// Create вставляет нового пользователя и возвращает его с назначенным id.
//
// Ошибки:
//   - ErrAlreadyExists если email уже занят (unique_violation из БД);
//   - обёрнутая ошибка БД в остальных случаях.
func (r *UsersRepository) Create(ctx context.Context, q db.DBTX, email, passwordHash string) (*models.User, error) {
	user := &models.User{Email: email, PasswordHash: passwordHash}

	err := q.QueryRowContext(ctx,
		`INSERT INTO users (email, password_hash)
		 VALUES ($1,$2)
		 RETURNING id, created_at`,
		email, passwordHash,
	).Scan(&user.ID, &user.CreatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return nil, serr.ErrAlreadyExists
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}

	return user, nil
}

// GetByID возвращает пользователя по id.
//
// Отсутствие строки — нормальный результат поиска: ErrNotFound.
func (r *UsersRepository) GetByID(ctx context.Context, q db.DBTX, id int64) (*models.User, error) {
	user := &models.User{}

	err := q.QueryRowContext(ctx,
		`SELECT id, email, password_hash, created_at FROM users WHERE id=$1`,
		id,
	).Scan(&user.ID, &user.Email, &user.PasswordHash, &user.CreatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, serr.ErrNotFound
		}
		return nil, fmt.Errorf("select user by id: %w", err)
	}

	return user, nil
}

// GetByEmail возвращает пользователя по email.
func (r *UsersRepository) GetByEmail(ctx context.Context, q db.DBTX, email string) (*models.User, error) {
	user := &models.User{}

	err := q.QueryRowContext(ctx,
		`SELECT id, email, password_hash, created_at FROM users WHERE email=$1`,
		email,
	).Scan(&user.ID, &user.Email, &user.PasswordHash, &user.CreatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, serr.ErrNotFound
		}
		return nil, fmt.Errorf("select user by email: %w", err)
	}

	return user, nil
}

// List возвращает всех пользователей в порядке вставки.
//
// Пагинации нет — известное ограничение, оставлено сознательно.
func (r *UsersRepository) List(ctx context.Context, q db.DBTX) ([]models.User, error) {
	rows, err := q.QueryContext(ctx,
		`SELECT id, email, password_hash, created_at FROM users ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("select users: %w", err)
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		var u models.User
		if err := rows.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate users: %w", err)
	}

	return users, nil
}

package repository_test

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgconn"

	"github.com/vkotlyarenko/go-agro-registry/internal/server/repository"
	serr "github.com/vkotlyarenko/go-agro-registry/internal/shared/errors"
)

func TestUsersRepository_Create(t *testing.T) {
	mockDB, mock, _ := sqlmock.New()
	defer mockDB.Close()

	repo := repository.NewUsersRepository()

	now := time.Now()
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO users (email, password_hash)`)).
		WithArgs("ana@agro.com", "argon2id$hash").
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(int64(1), now))

	user, err := repo.Create(context.Background(), mockDB, "ana@agro.com", "argon2id$hash")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.ID != 1 {
		t.Fatalf("expected id 1, got %d", user.ID)
	}
	if user.Email != "ana@agro.com" {
		t.Fatalf("expected email ana@agro.com, got %s", user.Email)
	}
	if !user.CreatedAt.Equal(now) {
		t.Fatalf("expected created_at %v, got %v", now, user.CreatedAt)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestUsersRepository_Create_DuplicateEmail(t *testing.T) {
	mockDB, mock, _ := sqlmock.New()
	defer mockDB.Close()

	repo := repository.NewUsersRepository()

	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO users (email, password_hash)`)).
		WithArgs("ana@agro.com", "argon2id$hash").
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"})

	_, err := repo.Create(context.Background(), mockDB, "ana@agro.com", "argon2id$hash")
	if !errors.Is(err, serr.ErrAlreadyExists) {
		t.Fatalf("expected ErrAlreadyExists, got %v", err)
	}
}

func TestUsersRepository_Create_DBError(t *testing.T) {
	mockDB, mock, _ := sqlmock.New()
	defer mockDB.Close()

	repo := repository.NewUsersRepository()

	dbErr := errors.New("connection reset")
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO users (email, password_hash)`)).
		WithArgs("ana@agro.com", "argon2id$hash").
		WillReturnError(dbErr)

	_, err := repo.Create(context.Background(), mockDB, "ana@agro.com", "argon2id$hash")
	if !errors.Is(err, dbErr) {
		t.Fatalf("expected wrapped db error, got %v", err)
	}
	if errors.Is(err, serr.ErrAlreadyExists) {
		t.Fatalf("db error must not map to ErrAlreadyExists")
	}
}

func TestUsersRepository_GetByID(t *testing.T) {
	mockDB, mock, _ := sqlmock.New()
	defer mockDB.Close()

	repo := repository.NewUsersRepository()

	now := time.Now()
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, email, password_hash, created_at FROM users WHERE id=$1`)).
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "password_hash", "created_at"}).
			AddRow(int64(7), "ana@agro.com", "argon2id$hash", now))

	user, err := repo.GetByID(context.Background(), mockDB, 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.ID != 7 || user.Email != "ana@agro.com" {
		t.Fatalf("unexpected user: %+v", user)
	}
}

func TestUsersRepository_GetByID_NotFound(t *testing.T) {
	mockDB, mock, _ := sqlmock.New()
	defer mockDB.Close()

	repo := repository.NewUsersRepository()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, email, password_hash, created_at FROM users WHERE id=$1`)).
		WithArgs(int64(99)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "password_hash", "created_at"}))

	_, err := repo.GetByID(context.Background(), mockDB, 99)
	if !errors.Is(err, serr.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestUsersRepository_GetByEmail(t *testing.T) {
	mockDB, mock, _ := sqlmock.New()
	defer mockDB.Close()

	repo := repository.NewUsersRepository()

	now := time.Now()
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, email, password_hash, created_at FROM users WHERE email=$1`)).
		WithArgs("ana@agro.com").
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "password_hash", "created_at"}).
			AddRow(int64(7), "ana@agro.com", "argon2id$hash", now))

	user, err := repo.GetByEmail(context.Background(), mockDB, "ana@agro.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.ID != 7 {
		t.Fatalf("expected id 7, got %d", user.ID)
	}
}

func TestUsersRepository_GetByEmail_NotFound(t *testing.T) {
	mockDB, mock, _ := sqlmock.New()
	defer mockDB.Close()

	repo := repository.NewUsersRepository()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, email, password_hash, created_at FROM users WHERE email=$1`)).
		WithArgs("nobody@agro.com").
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "password_hash", "created_at"}))

	_, err := repo.GetByEmail(context.Background(), mockDB, "nobody@agro.com")
	if !errors.Is(err, serr.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestUsersRepository_List(t *testing.T) {
	mockDB, mock, _ := sqlmock.New()
	defer mockDB.Close()

	repo := repository.NewUsersRepository()

	now := time.Now()
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, email, password_hash, created_at FROM users ORDER BY id`)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "password_hash", "created_at"}).
			AddRow(int64(1), "ana@agro.com", "h1", now).
			AddRow(int64(2), "luis@agro.com", "h2", now))

	users, err := repo.List(context.Background(), mockDB)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(users) != 2 {
		t.Fatalf("expected 2 users, got %d", len(users))
	}
	if users[0].ID != 1 || users[1].ID != 2 {
		t.Fatalf("expected insertion order, got %+v", users)
	}
}

func TestUsersRepository_List_Empty(t *testing.T) {
	mockDB, mock, _ := sqlmock.New()
	defer mockDB.Close()

	repo := repository.NewUsersRepository()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, email, password_hash, created_at FROM users ORDER BY id`)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "password_hash", "created_at"}))

	users, err := repo.List(context.Background(), mockDB)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(users) != 0 {
		t.Fatalf("expected empty list, got %d", len(users))
	}
}

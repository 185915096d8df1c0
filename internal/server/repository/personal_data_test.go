package repository_test

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgconn"

	"github.com/vkotlyarenko/go-agro-registry/internal/server/models"
	"github.com/vkotlyarenko/go-agro-registry/internal/server/repository"
	serr "github.com/vkotlyarenko/go-agro-registry/internal/shared/errors"
	"github.com/vkotlyarenko/go-agro-registry/internal/shared/utils"
)

func TestPersonalDataRepository_Create(t *testing.T) {
	mockDB, mock, _ := sqlmock.New()
	defer mockDB.Close()

	repo := repository.NewPersonalDataRepository()

	data := &models.PersonalData{
		UserID:    7,
		FirstName: "Ana",
		LastName:  "Lopez",
		Address:   utils.StrPtr("Calle 1"),
		Phone:     nil,
	}

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO user_personal_data`)).
		WithArgs(int64(7), "Ana", "Lopez", "Calle 1", nil).
		WillReturnResult(sqlmock.NewResult(0, 1))

	got, err := repo.Create(context.Background(), mockDB, data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.UserID != 7 {
		t.Fatalf("expected user_id 7, got %d", got.UserID)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestPersonalDataRepository_Create_Duplicate(t *testing.T) {
	mockDB, mock, _ := sqlmock.New()
	defer mockDB.Close()

	repo := repository.NewPersonalDataRepository()

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO user_personal_data`)).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "user_personal_data_pkey"})

	_, err := repo.Create(context.Background(), mockDB, &models.PersonalData{
		UserID: 7, FirstName: "Ana", LastName: "Lopez",
	})
	if !errors.Is(err, serr.ErrAlreadyExists) {
		t.Fatalf("expected ErrAlreadyExists, got %v", err)
	}
}

func TestPersonalDataRepository_Create_UserGone(t *testing.T) {
	mockDB, mock, _ := sqlmock.New()
	defer mockDB.Close()

	repo := repository.NewPersonalDataRepository()

	// пользователь исчез между проверкой и вставкой
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO user_personal_data`)).
		WillReturnError(&pgconn.PgError{Code: "23503", ConstraintName: "user_personal_data_user_id_fkey"})

	_, err := repo.Create(context.Background(), mockDB, &models.PersonalData{
		UserID: 99, FirstName: "Ana", LastName: "Lopez",
	})
	if !errors.Is(err, serr.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestPersonalDataRepository_GetByUserID(t *testing.T) {
	mockDB, mock, _ := sqlmock.New()
	defer mockDB.Close()

	repo := repository.NewPersonalDataRepository()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT user_id, first_name, last_name, address, phone`)).
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"user_id", "first_name", "last_name", "address", "phone"}).
			AddRow(int64(7), "Ana", "Lopez", "Calle 1", nil))

	data, err := repo.GetByUserID(context.Background(), mockDB, 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if data.UserID != 7 || data.FirstName != "Ana" || data.LastName != "Lopez" {
		t.Fatalf("unexpected data: %+v", data)
	}
	if data.Address == nil || *data.Address != "Calle 1" {
		t.Fatalf("expected address 'Calle 1', got %v", data.Address)
	}
	if data.Phone != nil {
		t.Fatalf("expected nil phone, got %v", *data.Phone)
	}
}

func TestPersonalDataRepository_GetByUserID_NotFound(t *testing.T) {
	mockDB, mock, _ := sqlmock.New()
	defer mockDB.Close()

	repo := repository.NewPersonalDataRepository()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT user_id, first_name, last_name, address, phone`)).
		WithArgs(int64(99)).
		WillReturnRows(sqlmock.NewRows([]string{"user_id", "first_name", "last_name", "address", "phone"}))

	_, err := repo.GetByUserID(context.Background(), mockDB, 99)
	if !errors.Is(err, serr.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

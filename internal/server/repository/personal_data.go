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

// PersonalDataRepository отвечает за персональные данные пользователя.
//
// Связь один-к-одному с users: первичный ключ таблицы — user_id
// (общий ключ с таблицей users, отдельного суррогатного id нет).
type PersonalDataRepository struct{}

// NewPersonalDataRepository создает новый PersonalDataRepository.
func NewPersonalDataRepository() *PersonalDataRepository {
	return &PersonalDataRepository{}
}

// Create вставляет персональные данные для существующего пользователя.
//
// Проверка существования пользователя — обязанность сервисного слоя
// (перечитать родителя в той же транзакции перед вставкой).
//
// Ошибки:
//   - ErrAlreadyExists если данные для этого пользователя уже созданы;
//   - ErrNotFound если пользователь исчез между проверкой и вставкой
//     (нарушение внешнего ключа);
//   - обёрнутая ошибка БД в остальных случаях.
func (r *PersonalDataRepository) Create(ctx context.Context, q db.DBTX, data *models.PersonalData) (*models.PersonalData, error) {
	_, err := q.ExecContext(ctx,
		`INSERT INTO user_personal_data (user_id, first_name, last_name, address, phone)
		 VALUES ($1,$2,$3,$4,$5)`,
		data.UserID, data.FirstName, data.LastName, data.Address, data.Phone,
	)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			case pgUniqueViolation:
				return nil, serr.ErrAlreadyExists
			case "23503": // foreign_key_violation
				return nil, serr.ErrNotFound
			}
		}
		return nil, fmt.Errorf("insert personal data: %w", err)
	}

	return data, nil
}

// GetByUserID возвращает персональные данные по id пользователя.
func (r *PersonalDataRepository) GetByUserID(ctx context.Context, q db.DBTX, userID int64) (*models.PersonalData, error) {
	data := &models.PersonalData{}

	err := q.QueryRowContext(ctx,
		`SELECT user_id, first_name, last_name, address, phone
		 FROM user_personal_data WHERE user_id=$1`,
		userID,
	).Scan(&data.UserID, &data.FirstName, &data.LastName, &data.Address, &data.Phone)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, serr.ErrNotFound
		}
		return nil, fmt.Errorf("select personal data: %w", err)
	}

	return data, nil
}

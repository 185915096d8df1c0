// Package service содержит бизнес-логику приложения.
// Это прослойка между HTTP-обработчиками (api) и хранилищем данных (repository).
package service

import (
	"context"

	"github.com/vkotlyarenko/go-agro-registry/internal/server/config"
	"github.com/vkotlyarenko/go-agro-registry/internal/server/db"
	"github.com/vkotlyarenko/go-agro-registry/internal/server/models"
)

// Repositories — набор интерфейсов, которые сервисный слой ожидает от слоя repository.
type Repositories struct {
	Users        UsersRepo
	PersonalData PersonalDataRepo
}

// Services — агрегатор всех сервисов приложения.
type Services struct {
	Users *UsersService
}

// NewServices собирает все сервисы приложения.
// sessions нужен каждой операции (транзакционная сессия на операцию),
// cfg нужен UsersService (параметры хеширования пароля).
func NewServices(repos Repositories, sessions *db.Manager, cfg *config.Config) *Services {
	return &Services{
		Users: NewUsersService(repos.Users, repos.PersonalData, sessions, cfg),
	}
}

// UsersRepo — репозиторий пользователей.
//
// Исполнитель запросов (db.DBTX) передаётся в каждый метод: сервис
// решает, в какой транзакционной сессии выполняется операция.
type UsersRepo interface {
	Create(ctx context.Context, q db.DBTX, email, passwordHash string) (*models.User, error)
	GetByID(ctx context.Context, q db.DBTX, id int64) (*models.User, error)
	GetByEmail(ctx context.Context, q db.DBTX, email string) (*models.User, error)
	List(ctx context.Context, q db.DBTX) ([]models.User, error)
}

// PersonalDataRepo — репозиторий персональных данных (один-к-одному с users).
type PersonalDataRepo interface {
	Create(ctx context.Context, q db.DBTX, data *models.PersonalData) (*models.PersonalData, error)
	GetByUserID(ctx context.Context, q db.DBTX, userID int64) (*models.PersonalData, error)
}

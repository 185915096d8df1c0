package service

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/vkotlyarenko/go-agro-registry/internal/server/config"
	"github.com/vkotlyarenko/go-agro-registry/internal/server/crypto"
	"github.com/vkotlyarenko/go-agro-registry/internal/server/db"
	"github.com/vkotlyarenko/go-agro-registry/internal/server/models"
	serr "github.com/vkotlyarenko/go-agro-registry/internal/shared/errors"
)

// UsersService реализует бизнес-логику регистрации и чтения пользователей.
//
// Ответственность:
//   - регистрация пользователей (хэширование пароля, уникальность email)
//   - поиск пользователя по id или email
//   - список всех пользователей
//   - создание и чтение персональных данных
//
// Каждая операция выполняется в собственной транзакционной сессии
// (одна сессия на операцию, см. db.Manager.Do): никакая операция
// не видит наполовину применённые изменения другой.
type UsersService struct {
	users    UsersRepo
	personal PersonalDataRepo
	sessions *db.Manager

	hasher string
	argon2 crypto.Argon2Params
	bcrypt int
}

// NewUsersService создаёт UsersService с зависимостями и настройками из конфига.
func NewUsersService(users UsersRepo, personal PersonalDataRepo, sessions *db.Manager, cfg *config.Config) *UsersService {
	return &UsersService{
		users:    users,
		personal: personal,
		sessions: sessions,

		hasher: strings.ToLower(cfg.Password.Hasher),
		argon2: crypto.Argon2Params{
			Time:      cfg.Password.Argon2.Time,
			MemoryKiB: cfg.Password.Argon2.MemoryKiB,
			Threads:   cfg.Password.Argon2.Threads,
			KeyLen:    cfg.Password.Argon2.KeyLen,
			SaltLen:   cfg.Password.Argon2.SaltLen,
		},
		bcrypt: cfg.Password.Bcrypt.Cost,
	}
}

var emailRe = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// Register регистрирует нового пользователя.
//
// Валидация:
//   - email обязателен и должен быть валидным
//   - пароль обязателен и длиной >= 8 символов
//
// Email хранится ровно в том виде, в каком пришёл (регистр значим):
// Ana@x.com и ana@x.com — разные пользователи. Пароль хэшируется
// как есть, без нормализации: пробелы в пароле значимы.
//
// Возвращает:
//   - созданного пользователя с назначенным id
//   - ErrInvalidInput при некорректных данных или ErrAlreadyExists
//     если email уже зарегистрирован
func (s *UsersService) Register(ctx context.Context, email, password string) (*models.User, error) {
	email = strings.TrimSpace(email)

	if email == "" || !emailRe.MatchString(email) || len(password) < 8 {
		return nil, serr.ErrInvalidInput
	}

	hash, err := s.hashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", serr.ErrInternal, err)
	}

	var user *models.User
	err = s.sessions.Do(ctx, func(ctx context.Context, q db.DBTX) error {
		user, err = s.users.Create(ctx, q, email, hash)
		return err
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

// Get возвращает пользователя по id или email.
//
// Контракт:
//   - нужен ровно один из селекторов; если не передан ни один — ErrInvalidQuery;
//   - если переданы оба, приоритет у id;
//   - email сравнивается с учётом регистра, как и хранится;
//   - отсутствие пользователя — ErrNotFound (нормальный результат поиска).
func (s *UsersService) Get(ctx context.Context, id int64, email string) (*models.User, error) {
	email = strings.TrimSpace(email)
	if id <= 0 && email == "" {
		return nil, serr.ErrInvalidQuery
	}

	var user *models.User
	err := s.sessions.Do(ctx, func(ctx context.Context, q db.DBTX) error {
		var err error
		if id > 0 {
			user, err = s.users.GetByID(ctx, q, id)
		} else {
			user, err = s.users.GetByEmail(ctx, q, email)
		}
		return err
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

// List возвращает всех пользователей (без пагинации).
func (s *UsersService) List(ctx context.Context) ([]models.User, error) {
	var users []models.User
	err := s.sessions.Do(ctx, func(ctx context.Context, q db.DBTX) error {
		var err error
		users, err = s.users.List(ctx, q)
		return err
	})
	if err != nil {
		return nil, err
	}
	return users, nil
}

// CreatePersonalData создаёт персональные данные для пользователя.
//
// Перед вставкой пользователь перечитывается по id В ТОЙ ЖЕ транзакции:
// чтение родителя и запись потомка атомарны. Если пользователя нет —
// ErrNotFound, и в таблице персональных данных не остаётся ни строки.
// Id созданной записи равен userID (общий первичный ключ).
func (s *UsersService) CreatePersonalData(ctx context.Context, userID int64, data *models.PersonalData) (*models.PersonalData, error) {
	if userID <= 0 {
		return nil, serr.ErrInvalidQuery
	}
	if strings.TrimSpace(data.FirstName) == "" || strings.TrimSpace(data.LastName) == "" {
		return nil, serr.ErrInvalidInput
	}

	var created *models.PersonalData
	err := s.sessions.Do(ctx, func(ctx context.Context, q db.DBTX) error {
		if _, err := s.users.GetByID(ctx, q, userID); err != nil {
			return err
		}

		data.UserID = userID
		var err error
		created, err = s.personal.Create(ctx, q, data)
		return err
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// GetPersonalData возвращает персональные данные по id пользователя.
func (s *UsersService) GetPersonalData(ctx context.Context, userID int64) (*models.PersonalData, error) {
	if userID <= 0 {
		return nil, serr.ErrInvalidQuery
	}

	var data *models.PersonalData
	err := s.sessions.Do(ctx, func(ctx context.Context, q db.DBTX) error {
		var err error
		data, err = s.personal.GetByUserID(ctx, q, userID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return data, nil
}

// hashPassword хэширует пароль выбранным в конфиге хэшером.
func (s *UsersService) hashPassword(password string) (string, error) {
	if s.hasher == "bcrypt" {
		return crypto.HashPasswordBcrypt(password, s.bcrypt)
	}
	return crypto.HashPassword(password, s.argon2)
}

// Серверные модели пользователя и его персональных данных
package models

import "time"

// User — учётная запись пользователя.
//
// Email уникален (уникальность обеспечивает БД),
// PasswordHash — хэш пароля, пароль в открытом виде нигде не хранится.
type User struct {
	ID           int64     `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// PersonalData — персональные данные пользователя.
//
// Связь один-к-одному: первичный ключ записи совпадает с id пользователя
// (общий ключ, без отдельного суррогатного id). При удалении пользователя
// запись удаляется каскадно на уровне БД.
//
// Address и Phone опциональны, поэтому указатели: nil означает "не задано".
type PersonalData struct {
	UserID    int64   `json:"id"`
	FirstName string  `json:"first_name"`
	LastName  string  `json:"last_name"`
	Address   *string `json:"address"`
	Phone     *string `json:"phone"`
}

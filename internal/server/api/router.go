package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/vkotlyarenko/go-agro-registry/internal/server/middleware"
)

// NewRouter создаёт и настраивает HTTP-роутер сервера.
//
// Роутер использует chi.Router и регистрирует:
//   - middleware request id и логирования для всех запросов;
//   - эндпоинты пользователей под префиксом /users;
//   - эндпоинты персональных данных под /users/{key}/personal-data;
//   - swagger UI под /swagger/*.
//
// Ключ {key} в пути пользователя: число — поиск по id,
// любая другая строка — поиск по email.
func NewRouter(h *Handler) http.Handler {
	r := chi.NewRouter()
	// request id и логирование всех запросов
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.LoggerMiddleware(h.Log))

	// добавляем swagger
	r.Get("/swagger/*", httpSwagger.WrapHandler)

	r.Route("/users", func(r chi.Router) {
		r.Post("/", h.CreateUser) // регистрация (email+password)
		r.Get("/", h.ListUsers)   // все пользователи, без пагинации

		r.Route("/{key}", func(r chi.Router) {
			r.Get("/", h.GetUser) // поиск по id или email

			// персональные данные: ключ обязан быть числовым id
			r.Post("/personal-data", h.CreatePersonalData)
			r.Get("/personal-data", h.GetPersonalData)
		})
	})

	return r
}

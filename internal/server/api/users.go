// HTTP-хендлеры регистрации и чтения пользователей
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/vkotlyarenko/go-agro-registry/internal/server/models"
	serr "github.com/vkotlyarenko/go-agro-registry/internal/shared/errors"
)

// CreateUserRequest описывает тело запроса регистрации пользователя.
type CreateUserRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ListUsersResponse описывает ответ со списком пользователей.
type ListUsersResponse struct {
	Users []models.User `json:"users"`
}

// CreateUser обрабатывает регистрацию пользователя.
//
// Ответы:
//   - 201 Created: регистрация успешна;
//   - 400 Bad Request: неверный JSON, невалидные входные данные
//     или email уже занят;
//   - 500 Internal Server Error: прочие ошибки.
func (h *Handler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req CreateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, serr.ErrBadJSON)
		return
	}

	user, err := h.Svc.Users.Register(r.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, serr.ErrInvalidInput):
			WriteError(w, http.StatusBadRequest, serr.ErrInvalidInput)
		case errors.Is(err, serr.ErrAlreadyExists):
			// занятый email — ошибка запроса, а не конфликта версий
			WriteError(w, http.StatusBadRequest, serr.ErrAlreadyExists)
		default:
			h.Log.Logger.Sugar().Errorw("create user failed", "error", err)
			WriteError(w, http.StatusInternalServerError, serr.ErrInternal)
		}
		return
	}

	WriteJSON(w, http.StatusCreated, user)
}

// GetUser обрабатывает поиск пользователя по id или email.
//
// Ключ берётся из пути: числовой ключ трактуется как id,
// любой другой — как email (приоритет id соблюдается сам собой).
//
// Ответы:
//   - 200 OK: пользователь найден;
//   - 400 Bad Request: пустой ключ;
//   - 404 Not Found: пользователь не найден;
//   - 500 Internal Server Error: прочие ошибки.
func (h *Handler) GetUser(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")

	var (
		id    int64
		email string
	)
	if parsed, err := strconv.ParseInt(key, 10, 64); err == nil {
		id = parsed
	} else {
		email = key
	}

	user, err := h.Svc.Users.Get(r.Context(), id, email)
	if err != nil {
		switch {
		case errors.Is(err, serr.ErrInvalidQuery):
			WriteError(w, http.StatusBadRequest, serr.ErrInvalidQuery)
		case errors.Is(err, serr.ErrNotFound):
			WriteError(w, http.StatusNotFound, serr.ErrNotFound)
		default:
			h.Log.Logger.Sugar().Errorw("get user failed", "error", err)
			WriteError(w, http.StatusInternalServerError, serr.ErrInternal)
		}
		return
	}

	WriteJSON(w, http.StatusOK, user)
}

// ListUsers возвращает всех пользователей.
//
// Ответы:
//   - 200 OK: список (возможно пустой);
//   - 500 Internal Server Error: прочие ошибки.
func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.Svc.Users.List(r.Context())
	if err != nil {
		h.Log.Logger.Sugar().Errorw("list users failed", "error", err)
		WriteError(w, http.StatusInternalServerError, serr.ErrInternal)
		return
	}

	if users == nil {
		users = []models.User{}
	}
	WriteJSON(w, http.StatusOK, ListUsersResponse{Users: users})
}

// HTTP-хендлеры персональных данных пользователя
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

// PersonalDataRequest описывает тело запроса создания персональных данных.
//
// Address и Phone опциональны: отсутствующее поле сохраняется как NULL.
type PersonalDataRequest struct {
	FirstName string  `json:"first_name"`
	LastName  string  `json:"last_name"`
	Address   *string `json:"address"`
	Phone     *string `json:"phone"`
}

// CreatePersonalData обрабатывает создание персональных данных пользователя.
//
// Ответы:
//   - 201 Created: данные созданы, id записи равен id пользователя;
//   - 400 Bad Request: неверный JSON, невалидные поля или данные уже созданы;
//   - 404 Not Found: пользователя с таким id нет;
//   - 500 Internal Server Error: прочие ошибки.
func (h *Handler) CreatePersonalData(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.ParseInt(chi.URLParam(r, "key"), 10, 64)
	if err != nil {
		WriteError(w, http.StatusBadRequest, serr.ErrInvalidInput)
		return
	}

	var req PersonalDataRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, serr.ErrBadJSON)
		return
	}

	data, err := h.Svc.Users.CreatePersonalData(r.Context(), userID, &models.PersonalData{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Address:   req.Address,
		Phone:     req.Phone,
	})
	if err != nil {
		switch {
		case errors.Is(err, serr.ErrInvalidInput), errors.Is(err, serr.ErrInvalidQuery):
			WriteError(w, http.StatusBadRequest, serr.ErrInvalidInput)
		case errors.Is(err, serr.ErrAlreadyExists):
			WriteError(w, http.StatusBadRequest, serr.ErrAlreadyExists)
		case errors.Is(err, serr.ErrNotFound):
			WriteError(w, http.StatusNotFound, serr.ErrNotFound)
		default:
			h.Log.Logger.Sugar().Errorw("create personal data failed", "error", err)
			WriteError(w, http.StatusInternalServerError, serr.ErrInternal)
		}
		return
	}

	WriteJSON(w, http.StatusCreated, data)
}

// GetPersonalData возвращает персональные данные по id пользователя.
//
// Ответы:
//   - 200 OK: данные найдены;
//   - 400 Bad Request: некорректный id;
//   - 404 Not Found: данных нет;
//   - 500 Internal Server Error: прочие ошибки.
func (h *Handler) GetPersonalData(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.ParseInt(chi.URLParam(r, "key"), 10, 64)
	if err != nil {
		WriteError(w, http.StatusBadRequest, serr.ErrInvalidInput)
		return
	}

	data, err := h.Svc.Users.GetPersonalData(r.Context(), userID)
	if err != nil {
		switch {
		case errors.Is(err, serr.ErrInvalidQuery):
			WriteError(w, http.StatusBadRequest, serr.ErrInvalidInput)
		case errors.Is(err, serr.ErrNotFound):
			WriteError(w, http.StatusNotFound, serr.ErrNotFound)
		default:
			h.Log.Logger.Sugar().Errorw("get personal data failed", "error", err)
			WriteError(w, http.StatusInternalServerError, serr.ErrInternal)
		}
		return
	}

	WriteJSON(w, http.StatusOK, data)
}

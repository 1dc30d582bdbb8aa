// Package remove реализует HTTP-обработчик удаления адреса из списков доступа.
package remove

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/PraneshMithun-cse/Savorly/internal/credentials"
	"github.com/PraneshMithun-cse/Savorly/internal/http/response"
	"github.com/PraneshMithun-cse/Savorly/internal/lib/sl"
	"github.com/PraneshMithun-cse/Savorly/internal/models"
)

// Handler управляет HTTP-запросами на удаление адреса.
type Handler struct {
	log      *slog.Logger        // Логгер для записи информации и ошибок
	store    Store               // Хранилище списков доступа
	validate *validator.Validate // Валидатор структуры входящих данных
}

// Store описывает интерфейс хранилища списков доступа.
type Store interface {
	Remove(kind, email string) (*models.Credentials, error)
}

// New создает новый Handler с переданными логгером и хранилищем.
func New(log *slog.Logger, store Store) *Handler {
	return &Handler{
		log:      log,
		store:    store,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Удалить адрес из списков доступа
// @Description Убирает почту из списка администраторов или курьеров. Главный администратор защищён.
// @Tags Credentials
// @Accept  json
// @Produce  json
// @Param request body models.DummyCredential true "Тип списка и почта"
// @Success 200 {object} map[string]any "Списки после удаления"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 403 {object} response.ErrorResponse "Попытка удалить главного администратора"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 500 {object} response.ErrorResponse "Ошибка записи списков доступа"
// @Security BearerAuth
// @Router /admin/credentials [delete]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.credential.remove"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.DummyCredential
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	creds, err := h.store.Remove(req.Type, req.Email)
	if err != nil {
		if errors.Is(err, credentials.ErrProtectedAdmin) {
			log.Error("attempt to remove primary admin", slog.String("email", req.Email))
			w.WriteHeader(http.StatusForbidden)
			render.JSON(w, r, response.Error("cannot remove the primary admin"))
			return
		}
		log.Error("failed to remove credential", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not remove credential"))
		return
	}

	log.Info("success to remove credential",
		slog.String("type", req.Type), slog.String("email", req.Email))
	render.JSON(w, r, map[string]any{
		"message":     "Credential removed",
		"credentials": creds,
	})
}

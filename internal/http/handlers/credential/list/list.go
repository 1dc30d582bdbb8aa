// Package list реализует HTTP-обработчик выдачи списков доступа.
package list

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/PraneshMithun-cse/Savorly/internal/http/response"
	"github.com/PraneshMithun-cse/Savorly/internal/lib/sl"
	"github.com/PraneshMithun-cse/Savorly/internal/models"
)

// Handler управляет HTTP-запросами на выдачу списков доступа.
type Handler struct {
	log   *slog.Logger // Логгер для записи информации и ошибок
	store Store        // Хранилище списков доступа
}

// Store описывает интерфейс хранилища списков доступа.
type Store interface {
	Load() (*models.Credentials, error)
}

// New создает новый Handler с переданными логгером и хранилищем.
func New(log *slog.Logger, store Store) *Handler {
	return &Handler{
		log:   log,
		store: store,
	}
}

// ServeHTTP godoc
// @Summary Списки доступа
// @Description Возвращает адреса администраторов и курьеров.
// @Tags Credentials
// @Produce  json
// @Success 200 {object} models.Credentials "Списки доступа"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 403 {object} response.ErrorResponse "Недостаточно прав"
// @Failure 500 {object} response.ErrorResponse "Ошибка чтения списков доступа"
// @Security BearerAuth
// @Router /admin/credentials [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.credential.list"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	creds, err := h.store.Load()
	if err != nil {
		log.Error("failed to load credentials", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not load credentials"))
		return
	}

	log.Info("success to load credentials",
		slog.Int("admins", len(creds.Admins)), slog.Int("delivery", len(creds.Delivery)))
	render.JSON(w, r, creds)
}

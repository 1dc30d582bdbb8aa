// Package update реализует HTTP-обработчик правки обращения в поддержку:
// администратор меняет статус и/или оставляет ответ.
package update

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/PraneshMithun-cse/Savorly/internal/http/response"
	"github.com/PraneshMithun-cse/Savorly/internal/lib/sl"
	"github.com/PraneshMithun-cse/Savorly/internal/models"
	services "github.com/PraneshMithun-cse/Savorly/internal/services/help"
)

// Handler управляет HTTP-запросами на правку обращений.
type Handler struct {
	log     *slog.Logger // Логгер для записи информации и ошибок
	service Service      // Сервис бизнес-логики поддержки
}

// Service описывает интерфейс бизнес-логики правки обращения.
type Service interface {
	Update(ctx context.Context, id string, req models.DummyHelpUpdate) (*models.HelpRequest, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Изменить обращение
// @Description Меняет статус обращения и/или ответ администратора.
// @Tags Help
// @Accept  json
// @Produce  json
// @Param id path string true "Идентификатор обращения"
// @Param request body models.DummyHelpUpdate true "Новый статус и/или ответ"
// @Success 200 {object} map[string]any "Обращение после правки"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON или недопустимый статус"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 403 {object} response.ErrorResponse "Недостаточно прав"
// @Failure 404 {object} response.ErrorResponse "Обращение не найдено"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера при правке обращения"
// @Security BearerAuth
// @Router /admin/help/{id} [patch]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.help.update"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	id := chi.URLParam(r, "id")

	var req models.DummyHelpUpdate
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	updated, err := h.service.Update(r.Context(), id, req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidStatus):
			log.Error("invalid target status", slog.String("status", req.Status))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error(
				"invalid status, must be one of: "+strings.Join(models.HelpStatuses, ", ")))
		case errors.Is(err, services.ErrHelpRequestNotFound):
			log.Error("help request not found", slog.String("id", id))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("help request not found"))
		default:
			log.Error("failed to update help request", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error("could not update help request"))
		}
		return
	}

	log.Info("success to update help request", slog.String("id", id))
	render.JSON(w, r, map[string]any{
		"message":     "Help request updated",
		"helpRequest": updated,
	})
}

// Package updatestatus реализует HTTP-обработчик смены статуса заявки
// на консультацию.
package updatestatus

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
	services "github.com/PraneshMithun-cse/Savorly/internal/services/consultation"
)

// Handler управляет HTTP-запросами на смену статуса заявки.
type Handler struct {
	log     *slog.Logger // Логгер для записи информации и ошибок
	service Service      // Сервис бизнес-логики заявок
}

// Service описывает интерфейс бизнес-логики смены статуса заявки.
type Service interface {
	UpdateStatus(ctx context.Context, id, status string) (*models.Consultation, error)
}

// New создает новый Handler с переданным логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

type request struct {
	Status string `json:"status"`
}

// ServeHTTP godoc
// @Summary Сменить статус заявки
// @Description Переводит заявку на консультацию в целевой статус.
// @Tags Consultations
// @Accept  json
// @Produce  json
// @Param id path string true "Идентификатор заявки"
// @Param request body object true "Целевой статус"
// @Success 200 {object} map[string]any "Заявка после перехода"
// @Failure 400 {object} response.ErrorResponse "Недопустимый статус"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 403 {object} response.ErrorResponse "Недостаточно прав"
// @Failure 404 {object} response.ErrorResponse "Заявка не найдена"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера при смене статуса"
// @Security BearerAuth
// @Router /admin/consultations/{id}/status [patch]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.consultation.updatestatus"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	id := chi.URLParam(r, "id")

	var req request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	consultation, err := h.service.UpdateStatus(r.Context(), id, req.Status)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidStatus):
			log.Error("invalid target status", slog.String("status", req.Status))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error(
				"invalid status, must be one of: "+strings.Join(models.ConsultationStatuses, ", ")))
		case errors.Is(err, services.ErrConsultationNotFound):
			log.Error("consultation not found", slog.String("id", id))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("consultation not found"))
		default:
			log.Error("failed to update consultation status", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error("could not update consultation status"))
		}
		return
	}

	log.Info("success to update consultation status",
		slog.String("id", id), slog.String("status", req.Status))
	render.JSON(w, r, map[string]any{
		"message":      "Consultation status updated",
		"consultation": consultation,
	})
}

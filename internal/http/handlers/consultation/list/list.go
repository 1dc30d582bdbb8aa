// Package list реализует HTTP-обработчик списка заявок на консультацию.
package list

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/PraneshMithun-cse/Savorly/internal/http/response"
	"github.com/PraneshMithun-cse/Savorly/internal/lib/sl"
	"github.com/PraneshMithun-cse/Savorly/internal/models"
)

// Handler управляет HTTP-запросами на список заявок.
type Handler struct {
	log     *slog.Logger // Логгер для записи информации и ошибок
	service Service      // Сервис бизнес-логики заявок
}

// Service описывает интерфейс бизнес-логики списка заявок.
type Service interface {
	List(ctx context.Context) ([]*models.Consultation, int, error)
}

// New создает новый Handler с переданным логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Список заявок на консультацию
// @Description Возвращает все заявки, новые первыми, и количество ожидающих.
// @Tags Consultations
// @Produce  json
// @Success 200 {object} map[string]any "Заявки и количество ожидающих"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 403 {object} response.ErrorResponse "Недостаточно прав"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера при выборке заявок"
// @Security BearerAuth
// @Router /admin/consultations [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.consultation.list"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	consultations, pending, err := h.service.List(r.Context())
	if err != nil {
		log.Error("failed to list consultations", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not list consultations"))
		return
	}
	if consultations == nil {
		consultations = []*models.Consultation{}
	}

	log.Info("success to list consultations", slog.Int("count", len(consultations)))
	render.JSON(w, r, map[string]any{
		"consultations": consultations,
		"pendingCount":  pending,
	})
}

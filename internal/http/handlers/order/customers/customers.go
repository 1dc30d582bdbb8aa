// Package customers реализует HTTP-обработчик списка покупателей,
// агрегированного из заказов.
package customers

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

// Handler управляет HTTP-запросами на список покупателей.
type Handler struct {
	log     *slog.Logger // Логгер для записи информации и ошибок
	service Service      // Сервис бизнес-логики заказов
}

// Service описывает интерфейс бизнес-логики агрегации покупателей.
type Service interface {
	Customers(ctx context.Context) ([]*models.CustomerSummary, error)
}

// New создает новый Handler с переданным логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Список покупателей
// @Description Возвращает агрегаты по покупателям: контакты, число заказов, суммы, первый и последний заказ.
// @Tags Admin
// @Produce  json
// @Success 200 {object} map[string]any "Агрегаты по покупателям"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 403 {object} response.ErrorResponse "Недостаточно прав"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера при агрегации покупателей"
// @Security BearerAuth
// @Router /admin/customers [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.order.customers"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	result, err := h.service.Customers(r.Context())
	if err != nil {
		log.Error("failed to list customers", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not list customers"))
		return
	}
	if result == nil {
		result = []*models.CustomerSummary{}
	}

	log.Info("success to list customers", slog.Int("count", len(result)))
	render.JSON(w, r, map[string]any{
		"customers": result,
	})
}

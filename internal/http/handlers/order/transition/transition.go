// Package transition реализует HTTP-обработчик перевода заказа в новый статус.
//
// Handler принимает целевой статус в теле запроса, проверяет его по явному
// набору и возвращает заказ после атомарного перехода.
package transition

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
	services "github.com/PraneshMithun-cse/Savorly/internal/services/order"
)

// Handler управляет HTTP-запросами на смену статуса заказа.
type Handler struct {
	log     *slog.Logger // Логгер для записи информации и ошибок
	service Service      // Сервис бизнес-логики заказов
}

// Service описывает интерфейс бизнес-логики смены статуса.
type Service interface {
	TransitionStatus(ctx context.Context, orderID, status string) (*models.Order, error)
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
// @Summary Сменить статус заказа
// @Description Атомарно переводит заказ в целевой статус. При переходе в Delivered проставляется отметка доставки.
// @Tags Orders
// @Accept  json
// @Produce  json
// @Param id path string true "Идентификатор заказа"
// @Param request body object true "Целевой статус"
// @Success 200 {object} map[string]any "Заказ после перехода"
// @Failure 400 {object} response.ErrorResponse "Недопустимый статус"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 403 {object} response.ErrorResponse "Недостаточно прав"
// @Failure 404 {object} response.ErrorResponse "Заказ не найден"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера при смене статуса"
// @Security BearerAuth
// @Router /orders/{id}/status [patch]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.order.transition"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	orderID := chi.URLParam(r, "id")

	var req request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	order, err := h.service.TransitionStatus(r.Context(), orderID, req.Status)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidStatus):
			log.Error("invalid target status", slog.String("status", req.Status))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error(
				"invalid status, must be one of: "+strings.Join(models.ValidStatuses, ", ")))
		case errors.Is(err, services.ErrInvalidTransition):
			log.Error("transition not allowed", slog.String("status", req.Status))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error("status transition not allowed"))
		case errors.Is(err, services.ErrOrderNotFound):
			log.Error("order not found", slog.String("order_id", orderID))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("order not found"))
		default:
			log.Error("failed to update order status", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error("could not update order status"))
		}
		return
	}

	log.Info("success to update order status",
		slog.String("order_id", orderID), slog.String("status", req.Status))
	render.JSON(w, r, map[string]any{
		"message": "Order status updated",
		"order":   order,
	})
}

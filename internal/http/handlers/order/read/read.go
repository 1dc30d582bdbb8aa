// Package read реализует HTTP-обработчик получения одного заказа по ID.
//
// Handler извлекает идентификатор из URL, вызывает бизнес-логику с проверкой
// владения и возвращает заказ в JSON-формате. Отсутствующий заказ даёт 404
// для любой роли, чужой заказ для покупателя — 403.
package read

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/PraneshMithun-cse/Savorly/internal/http/middlewarectx"
	"github.com/PraneshMithun-cse/Savorly/internal/http/response"
	"github.com/PraneshMithun-cse/Savorly/internal/lib/sl"
	"github.com/PraneshMithun-cse/Savorly/internal/models"
	services "github.com/PraneshMithun-cse/Savorly/internal/services/order"
)

// Handler обрабатывает запросы на получение заказа по идентификатору.
type Handler struct {
	log     *slog.Logger // Логгер для записи информации и ошибок
	service Service      // Сервис бизнес-логики заказов
}

// Service описывает интерфейс бизнес-логики чтения заказа.
type Service interface {
	Read(ctx context.Context, orderID, uid, role string) (*models.Order, error)
}

// New создает новый Handler с переданным логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Получить заказ
// @Description Возвращает заказ по ID. Покупатель видит только собственные заказы.
// @Tags Orders
// @Produce  json
// @Param id path string true "Идентификатор заказа"
// @Success 200 {object} map[string]any "Данные заказа"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 403 {object} response.ErrorResponse "Заказ принадлежит другому пользователю"
// @Failure 404 {object} response.ErrorResponse "Заказ не найден"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера при чтении заказа"
// @Security BearerAuth
// @Router /orders/{id} [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.order.read"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	orderID := chi.URLParam(r, "id")
	uid, _ := r.Context().Value(middlewarectx.UserUID).(string)
	role, _ := r.Context().Value(middlewarectx.Role).(string)

	order, err := h.service.Read(r.Context(), orderID, uid, role)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrOrderNotFound):
			log.Error("order not found", slog.String("order_id", orderID))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("order not found"))
		case errors.Is(err, services.ErrForbidden):
			log.Error("order ownership mismatch", slog.String("order_id", orderID))
			w.WriteHeader(http.StatusForbidden)
			render.JSON(w, r, response.Error("this order does not belong to you"))
		default:
			log.Error("failed to read order", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error("could not read order"))
		}
		return
	}

	log.Info("success to read order", slog.String("order_id", order.OrderID))
	render.JSON(w, r, map[string]any{
		"order": order,
	})
}

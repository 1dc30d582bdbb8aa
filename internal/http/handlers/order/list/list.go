// Package list реализует HTTP-обработчик выборки заказов для персонала.
//
// Handler принимает необязательные query-параметры status, limit и skip,
// вызывает бизнес-логику и возвращает страницу заказов вместе с общим
// числом записей, попадающих под фильтр.
package list

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/PraneshMithun-cse/Savorly/internal/http/response"
	"github.com/PraneshMithun-cse/Savorly/internal/lib/sl"
	"github.com/PraneshMithun-cse/Savorly/internal/models"
)

const (
	defaultLimit = 50
)

// Handler управляет HTTP-запросами на выборку заказов.
type Handler struct {
	log     *slog.Logger // Логгер для записи информации и ошибок
	service Service      // Сервис бизнес-логики заказов
}

// Service описывает интерфейс бизнес-логики выборки заказов.
type Service interface {
	List(ctx context.Context, filter models.OrderFilter) ([]*models.Order, int, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Список заказов
// @Description Возвращает страницу заказов, новые первыми. Доступно администраторам и доставке.
// @Tags Orders
// @Produce  json
// @Param status query string false "Фильтр по статусу"
// @Param limit query int false "Размер страницы (по умолчанию 50)"
// @Param skip query int false "Смещение (по умолчанию 0)"
// @Success 200 {object} map[string]any "Страница заказов и общее число"
// @Failure 400 {object} response.ErrorResponse "Некорректный фильтр"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 403 {object} response.ErrorResponse "Недостаточно прав"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера при выборке заказов"
// @Security BearerAuth
// @Router /orders [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.order.list"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	filter := models.OrderFilter{Limit: defaultLimit}

	if status := r.URL.Query().Get("status"); status != "" {
		if !models.IsValidStatus(status) {
			log.Error("invalid status filter", slog.String("status", status))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error("invalid status filter"))
			return
		}
		filter.Status = status
	}
	if raw := r.URL.Query().Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 1 {
			log.Error("invalid limit parameter", slog.String("limit", raw))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error("invalid limit parameter"))
			return
		}
		filter.Limit = limit
	}
	if raw := r.URL.Query().Get("skip"); raw != "" {
		skip, err := strconv.Atoi(raw)
		if err != nil || skip < 0 {
			log.Error("invalid skip parameter", slog.String("skip", raw))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error("invalid skip parameter"))
			return
		}
		filter.Skip = skip
	}

	orders, total, err := h.service.List(r.Context(), filter)
	if err != nil {
		log.Error("failed to list orders", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not list orders"))
		return
	}
	if orders == nil {
		orders = []*models.Order{}
	}

	log.Info("success to list orders", slog.Int("count", len(orders)), slog.Int("total", total))
	render.JSON(w, r, map[string]any{
		"orders": orders,
		"total":  total,
	})
}

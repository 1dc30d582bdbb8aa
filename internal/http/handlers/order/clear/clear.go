// Package clear реализует HTTP-обработчик полной очистки заказов.
// Операция обслуживания, доступна только администраторам.
package clear

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/PraneshMithun-cse/Savorly/internal/http/response"
	"github.com/PraneshMithun-cse/Savorly/internal/lib/sl"
)

// Handler управляет HTTP-запросами на очистку заказов.
type Handler struct {
	log     *slog.Logger // Логгер для записи информации и ошибок
	service Service      // Сервис бизнес-логики заказов
}

// Service описывает интерфейс бизнес-логики очистки заказов.
type Service interface {
	Clear(ctx context.Context) (int, error)
}

// New создает новый Handler с переданным логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Очистить заказы
// @Description Удаляет все заказы и возвращает количество удалённых записей.
// @Tags Orders
// @Produce  json
// @Success 200 {object} map[string]any "Количество удалённых заказов"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 403 {object} response.ErrorResponse "Недостаточно прав"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера при очистке заказов"
// @Security BearerAuth
// @Router /admin/orders [delete]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.order.clear"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	count, err := h.service.Clear(r.Context())
	if err != nil {
		log.Error("failed to clear orders", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not clear orders"))
		return
	}

	log.Info("success to clear orders", slog.Int("deleted", count))
	render.JSON(w, r, map[string]any{
		"message":      "All orders deleted",
		"deletedCount": count,
	})
}

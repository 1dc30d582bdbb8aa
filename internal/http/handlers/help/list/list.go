// Package list реализует HTTP-обработчик списка обращений в поддержку.
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

// Handler управляет HTTP-запросами на список обращений.
type Handler struct {
	log     *slog.Logger // Логгер для записи информации и ошибок
	service Service      // Сервис бизнес-логики поддержки
}

// Service описывает интерфейс бизнес-логики списка обращений.
type Service interface {
	List(ctx context.Context) ([]*models.HelpRequest, error)
}

// New создает новый Handler с переданным логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Список обращений в поддержку
// @Description Возвращает все обращения, новые первыми.
// @Tags Help
// @Produce  json
// @Success 200 {object} map[string]any "Обращения в поддержку"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 403 {object} response.ErrorResponse "Недостаточно прав"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера при выборке обращений"
// @Security BearerAuth
// @Router /admin/help [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.help.list"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	requests, err := h.service.List(r.Context())
	if err != nil {
		log.Error("failed to list help requests", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not list help requests"))
		return
	}
	if requests == nil {
		requests = []*models.HelpRequest{}
	}

	log.Info("success to list help requests", slog.Int("count", len(requests)))
	render.JSON(w, r, map[string]any{
		"helpRequests": requests,
	})
}

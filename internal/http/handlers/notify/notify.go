// Package notify реализует HTTP-обработчик широковещательной рассылки:
// сообщение администратора уходит в очередь, письма отправляет отдельный сервис.
package notify

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/PraneshMithun-cse/Savorly/internal/http/response"
	"github.com/PraneshMithun-cse/Savorly/internal/lib/sl"
)

// Handler управляет HTTP-запросами на широковещательную рассылку.
type Handler struct {
	log      *slog.Logger        // Логгер для записи информации и ошибок
	service  Service             // Сервис бизнес-логики рассылки
	validate *validator.Validate // Валидатор структуры входящих данных
}

// Service описывает интерфейс бизнес-логики рассылки.
type Service interface {
	Broadcast(ctx context.Context, message string) (int, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

type request struct {
	Message string `json:"message" validate:"required"`
}

// ServeHTTP godoc
// @Summary Разослать уведомление
// @Description Публикует сообщение для всех покупателей в очередь рассылки.
// @Tags Admin
// @Accept  json
// @Produce  json
// @Param request body object true "Текст сообщения"
// @Success 202 {object} map[string]any "Рассылка принята"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 403 {object} response.ErrorResponse "Недостаточно прав"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 500 {object} response.ErrorResponse "Ошибка публикации рассылки"
// @Security BearerAuth
// @Router /admin/notify [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.notify"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	recipients, err := h.service.Broadcast(r.Context(), req.Message)
	if err != nil {
		log.Error("failed to publish broadcast", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not publish broadcast"))
		return
	}

	log.Info("success to publish broadcast", slog.Int("recipients", recipients))
	w.WriteHeader(http.StatusAccepted)
	render.JSON(w, r, map[string]any{
		"message":    "Broadcast queued",
		"recipients": recipients,
	})
}

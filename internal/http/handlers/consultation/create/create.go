// Package create реализует публичный HTTP-обработчик записи на консультацию.
package create

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
	"github.com/PraneshMithun-cse/Savorly/internal/models"
)

// Handler управляет HTTP-запросами на запись на консультацию.
type Handler struct {
	log      *slog.Logger        // Логгер для записи информации и ошибок
	service  Service             // Сервис бизнес-логики заявок
	validate *validator.Validate // Валидатор структуры входящих данных
}

// Service описывает интерфейс бизнес-логики создания заявки.
type Service interface {
	Create(ctx context.Context, req models.DummyConsultation) (*models.Consultation, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Записаться на консультацию
// @Description Сохраняет заявку с публичной формы со статусом Pending.
// @Tags Consultations
// @Accept  json
// @Produce  json
// @Param request body models.DummyConsultation true "Данные заявки"
// @Success 201 {object} map[string]any "Заявка принята"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера при сохранении заявки"
// @Router /consultations [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.consultation.create"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.DummyConsultation
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}
	log.Info("request body decoded", slog.Any("request", req))

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	created, err := h.service.Create(r.Context(), req)
	if err != nil {
		log.Error("failed to create consultation", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not create consultation"))
		return
	}

	log.Info("success to create consultation", slog.String("id", created.ID))
	w.WriteHeader(http.StatusCreated)
	render.JSON(w, r, map[string]any{
		"message":      "Consultation booked successfully",
		"consultation": created,
	})
}

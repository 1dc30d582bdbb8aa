// Package services содержит бизнес-логику заявок на консультацию.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/PraneshMithun-cse/Savorly/internal/models"
)

// Ошибки уровня бизнес-логики.
var (
	// ErrConsultationNotFound — заявка с таким ID отсутствует.
	ErrConsultationNotFound = errors.New("consultation not found")
	// ErrInvalidStatus — целевой статус вне допустимого набора.
	ErrInvalidStatus = errors.New("invalid status")
)

// ConsultationRepository определяет методы для работы с заявками в хранилище.
type ConsultationRepository interface {
	CreateConsultation(ctx context.Context, c models.Consultation) (*models.Consultation, error)
	ListConsultations(ctx context.Context) ([]*models.Consultation, error)
	CountConsultationsByStatus(ctx context.Context, status string) (int, error)
	UpdateConsultationStatus(ctx context.Context, id, status string) (*models.Consultation, error)
}

// ConsultationService реализует бизнес-логику лид-формы.
type ConsultationService struct {
	repo ConsultationRepository
	log  *slog.Logger
}

// NewConsultationService создает новый экземпляр ConsultationService.
func NewConsultationService(repo ConsultationRepository, log *slog.Logger) *ConsultationService {
	return &ConsultationService{
		repo: repo,
		log:  log,
	}
}

// Create сохраняет заявку с публичной формы; программа по умолчанию 90-day.
func (s *ConsultationService) Create(ctx context.Context, req models.DummyConsultation) (*models.Consultation, error) {
	program := req.Program
	if program == "" {
		program = "90-day"
	}

	c := models.Consultation{
		ID:            uuid.NewString(),
		Name:          req.Name,
		Email:         req.Email,
		Phone:         req.Phone,
		Program:       program,
		PreferredTime: req.PreferredTime,
		Status:        models.ConsultationPending,
	}

	created, err := s.repo.CreateConsultation(ctx, c)
	if err != nil {
		return nil, err
	}
	s.log.Info("new consultation booking", slog.String("id", created.ID))
	return created, nil
}

// List возвращает все заявки, новые первыми, и количество ожидающих.
func (s *ConsultationService) List(ctx context.Context) ([]*models.Consultation, int, error) {
	consultations, err := s.repo.ListConsultations(ctx)
	if err != nil {
		return nil, 0, err
	}
	pending, err := s.repo.CountConsultationsByStatus(ctx, models.ConsultationPending)
	if err != nil {
		return nil, 0, err
	}
	return consultations, pending, nil
}

// UpdateStatus переводит заявку в целевой статус из фиксированного набора.
func (s *ConsultationService) UpdateStatus(ctx context.Context, id, status string) (*models.Consultation, error) {
	if !models.IsValidConsultationStatus(status) {
		return nil, fmt.Errorf("%w: %s", ErrInvalidStatus, status)
	}

	c, err := s.repo.UpdateConsultationStatus(ctx, id, status)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrConsultationNotFound
		}
		return nil, err
	}
	return c, nil
}

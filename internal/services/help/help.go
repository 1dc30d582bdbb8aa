// Package services содержит бизнес-логику обращений в поддержку.
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
	// ErrHelpRequestNotFound — обращение с таким ID отсутствует.
	ErrHelpRequestNotFound = errors.New("help request not found")
	// ErrInvalidStatus — целевой статус вне допустимого набора.
	ErrInvalidStatus = errors.New("invalid status")
)

// HelpRepository определяет методы для работы с обращениями в хранилище.
type HelpRepository interface {
	CreateHelpRequest(ctx context.Context, h models.HelpRequest) (*models.HelpRequest, error)
	ListHelpRequests(ctx context.Context) ([]*models.HelpRequest, error)
	UpdateHelpRequest(ctx context.Context, id, status, adminResponse string) (*models.HelpRequest, error)
}

// HelpService реализует бизнес-логику тикетов поддержки.
type HelpService struct {
	repo HelpRepository
	log  *slog.Logger
}

// NewHelpService создает новый экземпляр HelpService.
func NewHelpService(repo HelpRepository, log *slog.Logger) *HelpService {
	return &HelpService{
		repo: repo,
		log:  log,
	}
}

// Create сохраняет обращение, фиксируя снимок личности автора из токена.
func (s *HelpService) Create(ctx context.Context, uid, email string, req models.DummyHelpRequest) (*models.HelpRequest, error) {
	name := req.Name
	if name == "" {
		name = "User"
	}

	h := models.HelpRequest{
		ID:        uuid.NewString(),
		UserUID:   uid,
		UserName:  name,
		UserEmail: email,
		Subject:   req.Subject,
		Message:   req.Message,
		Status:    models.HelpOpen,
	}

	created, err := s.repo.CreateHelpRequest(ctx, h)
	if err != nil {
		return nil, err
	}
	s.log.Info("new help request", slog.String("id", created.ID))
	return created, nil
}

// List возвращает все обращения, новые первыми.
func (s *HelpService) List(ctx context.Context) ([]*models.HelpRequest, error) {
	return s.repo.ListHelpRequests(ctx)
}

// Update меняет статус и/или ответ администратора. Пустой статус
// оставляет текущий, непустой обязан входить в HelpStatuses.
func (s *HelpService) Update(ctx context.Context, id string, req models.DummyHelpUpdate) (*models.HelpRequest, error) {
	if req.Status != "" && !models.IsValidHelpStatus(req.Status) {
		return nil, fmt.Errorf("%w: %s", ErrInvalidStatus, req.Status)
	}

	h, err := s.repo.UpdateHelpRequest(ctx, id, req.Status, req.AdminResponse)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrHelpRequestNotFound
		}
		return nil, err
	}
	return h, nil
}

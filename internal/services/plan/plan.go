// Package services содержит бизнес-логику каталога тарифных планов,
// включая кеширование публичной выдачи.
package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"database/sql"

	"github.com/google/uuid"

	"github.com/PraneshMithun-cse/Savorly/internal/models"
)

// ErrPlanNotFound — план с таким ID отсутствует.
var ErrPlanNotFound = errors.New("plan not found")

const plansCacheKey = "plans:all"

// PlanRepository определяет методы для работы с каталогом в хранилище.
type PlanRepository interface {
	ListPlans(ctx context.Context) ([]*models.Plan, error)
	ReadPlan(ctx context.Context, id string) (*models.Plan, error)
	CreatePlan(ctx context.Context, plan models.Plan) (*models.Plan, error)
	UpdatePlan(ctx context.Context, id string, plan models.Plan) (*models.Plan, error)
	DeletePlan(ctx context.Context, id string) (int, error)
}

// Cache описывает методы для кэширования данных.
type Cache interface {
	Get(key string, result any) (bool, error)
	Set(key string, value any, expiration time.Duration) error
	Invalidate(key string) error
}

// PlanService реализует бизнес-логику каталога планов. Каталог меняется
// по значению в заказах не отражается: заказы хранят собственные копии
// названия и цены.
type PlanService struct {
	repo  PlanRepository
	cache Cache
	log   *slog.Logger
}

// NewPlanService создает новый экземпляр PlanService.
func NewPlanService(repo PlanRepository, cache Cache, log *slog.Logger) *PlanService {
	return &PlanService{
		repo:  repo,
		cache: cache,
		log:   log,
	}
}

// List возвращает каталог, дешёвые планы первыми, используя кеш.
func (s *PlanService) List(ctx context.Context) ([]*models.Plan, error) {
	var cached []*models.Plan
	found, err := s.cache.Get(plansCacheKey, &cached)
	if err != nil {
		s.log.Warn("failed to read plans cache", slog.Any("err", err))
	}
	if found {
		return cached, nil
	}

	plans, err := s.repo.ListPlans(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.cache.Set(plansCacheKey, plans, 10*time.Minute); err != nil {
		s.log.Warn("failed to cache plans", slog.Any("err", err))
	}
	return plans, nil
}

// Create добавляет план в каталог и сбрасывает кеш выдачи.
func (s *PlanService) Create(ctx context.Context, req models.DummyPlan) (*models.Plan, error) {
	plan := models.Plan{
		ID:            uuid.NewString(),
		Name:          req.Name,
		Price:         req.Price,
		BillingPeriod: req.BillingPeriod,
		Description:   req.Description,
		Features:      req.Features,
		Image:         req.Image,
		InfoContent:   req.InfoContent,
		IsPopular:     req.IsPopular,
		BadgeColor:    req.BadgeColor,
	}
	if plan.BillingPeriod == "" {
		plan.BillingPeriod = "/week"
	}
	if plan.BadgeColor == "" {
		plan.BadgeColor = "silver"
	}

	created, err := s.repo.CreatePlan(ctx, plan)
	if err != nil {
		return nil, err
	}
	s.log.Info("created new plan", slog.String("name", created.Name))
	s.invalidate()
	return created, nil
}

// Update применяет частичную правку плана: читает текущую запись,
// накладывает присланные поля и перезаписывает её целиком, после чего
// сбрасывает кеш выдачи.
func (s *PlanService) Update(ctx context.Context, id string, req models.DummyPlanUpdate) (*models.Plan, error) {
	current, err := s.repo.ReadPlan(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPlanNotFound
		}
		return nil, err
	}

	plan := *current
	if req.Name != nil {
		plan.Name = *req.Name
	}
	if req.Price != nil {
		plan.Price = *req.Price
	}
	if req.BillingPeriod != nil {
		plan.BillingPeriod = *req.BillingPeriod
	}
	if req.Description != nil {
		plan.Description = *req.Description
	}
	if req.Features != nil {
		plan.Features = *req.Features
	}
	if req.Image != nil {
		plan.Image = *req.Image
	}
	if req.InfoContent != nil {
		plan.InfoContent = *req.InfoContent
	}
	if req.IsPopular != nil {
		plan.IsPopular = *req.IsPopular
	}
	if req.BadgeColor != nil {
		plan.BadgeColor = *req.BadgeColor
	}

	updated, err := s.repo.UpdatePlan(ctx, id, plan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPlanNotFound
		}
		return nil, err
	}
	s.invalidate()
	return updated, nil
}

// Delete удаляет план по ID и сбрасывает кеш выдачи.
func (s *PlanService) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.DeletePlan(ctx, id); err != nil {
		return err
	}
	s.invalidate()
	return nil
}

func (s *PlanService) invalidate() {
	if err := s.cache.Invalidate(plansCacheKey); err != nil {
		s.log.Warn("failed to invalidate plans cache", slog.Any("err", err))
	}
}

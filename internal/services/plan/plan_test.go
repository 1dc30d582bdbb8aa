package services

import (
	"context"
	"database/sql"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/PraneshMithun-cse/Savorly/internal/models"
)

// MockRepo реализует интерфейс PlanRepository
type MockRepo struct {
	mock.Mock
}

func (m *MockRepo) ListPlans(ctx context.Context) ([]*models.Plan, error) {
	args := m.Called(ctx)
	if res := args.Get(0); res != nil {
		return res.([]*models.Plan), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockRepo) ReadPlan(ctx context.Context, id string) (*models.Plan, error) {
	args := m.Called(ctx, id)
	if res := args.Get(0); res != nil {
		return res.(*models.Plan), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockRepo) CreatePlan(ctx context.Context, plan models.Plan) (*models.Plan, error) {
	args := m.Called(ctx, plan)
	if res := args.Get(0); res != nil {
		return res.(*models.Plan), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockRepo) UpdatePlan(ctx context.Context, id string, plan models.Plan) (*models.Plan, error) {
	args := m.Called(ctx, id, plan)
	if res := args.Get(0); res != nil {
		return res.(*models.Plan), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockRepo) DeletePlan(ctx context.Context, id string) (int, error) {
	args := m.Called(ctx, id)
	return args.Int(0), args.Error(1)
}

// MockCache реализует интерфейс Cache
type MockCache struct {
	mock.Mock
}

func (m *MockCache) Get(key string, result any) (bool, error) {
	args := m.Called(key, result)
	if args.Bool(0) {
		*(result.(*[]*models.Plan)) = []*models.Plan{{Name: "Cached"}}
	}
	return args.Bool(0), args.Error(1)
}

func (m *MockCache) Set(key string, value any, expiration time.Duration) error {
	args := m.Called(key, value, expiration)
	return args.Error(0)
}

func (m *MockCache) Invalidate(key string) error {
	args := m.Called(key)
	return args.Error(0)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func TestListCacheHit(t *testing.T) {
	repo := new(MockRepo)
	cache := new(MockCache)
	service := NewPlanService(repo, cache, testLogger())

	cache.On("Get", plansCacheKey, mock.Anything).Return(true, nil)

	plans, err := service.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Cached", plans[0].Name)
	repo.AssertNotCalled(t, "ListPlans")
}

func TestListCacheMiss(t *testing.T) {
	repo := new(MockRepo)
	cache := new(MockCache)
	service := NewPlanService(repo, cache, testLogger())

	cache.On("Get", plansCacheKey, mock.Anything).Return(false, nil)
	repo.On("ListPlans", mock.Anything).
		Return([]*models.Plan{{Name: "Silver", Price: 1300}}, nil)
	cache.On("Set", plansCacheKey, mock.Anything, 10*time.Minute).Return(nil)

	plans, err := service.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Silver", plans[0].Name)
	cache.AssertExpectations(t)
}

func TestCreateDefaultsAndInvalidation(t *testing.T) {
	repo := new(MockRepo)
	cache := new(MockCache)
	service := NewPlanService(repo, cache, testLogger())

	var captured models.Plan
	repo.On("CreatePlan", mock.Anything, mock.AnythingOfType("models.Plan")).
		Run(func(args mock.Arguments) {
			captured = args.Get(1).(models.Plan)
		}).
		Return(&models.Plan{Name: "Platinum"}, nil)
	cache.On("Invalidate", plansCacheKey).Return(nil)

	_, err := service.Create(context.Background(), models.DummyPlan{
		Name:  "Platinum",
		Price: 2000,
	})
	require.NoError(t, err)
	assert.Equal(t, "/week", captured.BillingPeriod)
	assert.Equal(t, "silver", captured.BadgeColor)
	assert.NotEmpty(t, captured.ID)
	cache.AssertExpectations(t)
}

func TestUpdatePartial(t *testing.T) {
	repo := new(MockRepo)
	cache := new(MockCache)
	service := NewPlanService(repo, cache, testLogger())

	current := &models.Plan{
		ID:            "id-1",
		Name:          "Gold Plan",
		Price:         1500,
		BillingPeriod: "/week",
		Description:   "Ideal for dedicated fitness enthusiasts.",
		Features:      []string{"10 meals per week"},
		BadgeColor:    "gold",
	}
	repo.On("ReadPlan", mock.Anything, "id-1").Return(current, nil)

	var captured models.Plan
	repo.On("UpdatePlan", mock.Anything, "id-1", mock.AnythingOfType("models.Plan")).
		Run(func(args mock.Arguments) {
			captured = args.Get(2).(models.Plan)
		}).
		Return(&models.Plan{ID: "id-1", Name: "Gold Plan", Price: 1600}, nil)
	cache.On("Invalidate", plansCacheKey).Return(nil)

	newPrice := 1600.0
	updated, err := service.Update(context.Background(), "id-1",
		models.DummyPlanUpdate{Price: &newPrice})
	require.NoError(t, err)

	// Присланная цена перезаписана, остальные поля сохранены
	assert.Equal(t, 1600.0, captured.Price)
	assert.Equal(t, "Gold Plan", captured.Name)
	assert.Equal(t, "/week", captured.BillingPeriod)
	assert.Equal(t, []string{"10 meals per week"}, captured.Features)
	assert.Equal(t, "gold", captured.BadgeColor)
	assert.Equal(t, 1600.0, updated.Price)
	cache.AssertExpectations(t)
}

func TestUpdateNotFound(t *testing.T) {
	repo := new(MockRepo)
	cache := new(MockCache)
	service := NewPlanService(repo, cache, testLogger())

	repo.On("ReadPlan", mock.Anything, "missing").Return(nil, sql.ErrNoRows)

	name := "X"
	_, err := service.Update(context.Background(), "missing", models.DummyPlanUpdate{Name: &name})
	assert.ErrorIs(t, err, ErrPlanNotFound)
	repo.AssertNotCalled(t, "UpdatePlan")
	cache.AssertNotCalled(t, "Invalidate", plansCacheKey)
}

func TestDeleteInvalidatesCache(t *testing.T) {
	repo := new(MockRepo)
	cache := new(MockCache)
	service := NewPlanService(repo, cache, testLogger())

	repo.On("DeletePlan", mock.Anything, "id-1").Return(1, nil)
	cache.On("Invalidate", plansCacheKey).Return(nil)

	err := service.Delete(context.Background(), "id-1")
	require.NoError(t, err)
	cache.AssertExpectations(t)
}

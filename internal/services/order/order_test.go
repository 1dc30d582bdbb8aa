package services

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/PraneshMithun-cse/Savorly/internal/models"
)

// MockRepo реализует интерфейс OrderRepository
type MockRepo struct {
	mock.Mock
}

func (m *MockRepo) CreateOrder(ctx context.Context, order models.Order) (*models.Order, error) {
	args := m.Called(ctx, order)
	if res := args.Get(0); res != nil {
		return res.(*models.Order), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockRepo) ReadOrder(ctx context.Context, orderID string) (*models.Order, error) {
	args := m.Called(ctx, orderID)
	if res := args.Get(0); res != nil {
		return res.(*models.Order), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockRepo) ListOrders(ctx context.Context, filter models.OrderFilter) ([]*models.Order, error) {
	args := m.Called(ctx, filter)
	if res := args.Get(0); res != nil {
		return res.([]*models.Order), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockRepo) CountOrders(ctx context.Context, status string) (int, error) {
	args := m.Called(ctx, status)
	return args.Int(0), args.Error(1)
}

func (m *MockRepo) ListOrdersByOwner(ctx context.Context, userUID string) ([]*models.Order, error) {
	args := m.Called(ctx, userUID)
	if res := args.Get(0); res != nil {
		return res.([]*models.Order), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockRepo) UpdateOrderStatus(ctx context.Context, orderID, status string) (*models.Order, error) {
	args := m.Called(ctx, orderID, status)
	if res := args.Get(0); res != nil {
		return res.(*models.Order), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockRepo) DeleteAllOrders(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *MockRepo) OrderStats(ctx context.Context, todayStart time.Time) (*models.OrderStats, error) {
	args := m.Called(ctx, todayStart)
	if res := args.Get(0); res != nil {
		return res.(*models.OrderStats), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockRepo) ListCustomers(ctx context.Context) ([]*models.CustomerSummary, error) {
	args := m.Called(ctx)
	if res := args.Get(0); res != nil {
		return res.([]*models.CustomerSummary), args.Error(1)
	}
	return nil, args.Error(1)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func TestCreate(t *testing.T) {
	repo := new(MockRepo)
	service := NewOrderService(repo, testLogger())

	req := models.DummyOrder{
		CustomerDetails: models.CustomerDetails{
			Name:    "Pranesh",
			Phone:   "9999999999",
			Address: "Coimbatore",
			Email:   "form@example.com",
		},
		Items:      []models.OrderItem{{PlanName: "Gold", Price: 1500}},
		TotalPrice: 1500,
	}

	var captured models.Order
	repo.On("CreateOrder", mock.Anything, mock.AnythingOfType("models.Order")).
		Run(func(args mock.Arguments) {
			captured = args.Get(1).(models.Order)
		}).
		Return(&models.Order{
			OrderID:    "SVL-TEST-0001",
			Status:     models.StatusPending,
			TotalPrice: 1500,
			Timestamp:  time.Now(),
		}, nil)

	summary, err := service.Create(context.Background(), "uid-1", "token@example.com", req)
	require.NoError(t, err)

	// Почта берётся из токена, а не из формы
	assert.Equal(t, "token@example.com", captured.CustomerDetails.Email)
	// Количество по умолчанию 1, способ оплаты по умолчанию cod
	assert.Equal(t, 1, captured.Items[0].Quantity)
	assert.Equal(t, "cod", captured.PaymentMethod)
	assert.Equal(t, models.StatusPending, captured.Status)
	assert.Equal(t, "uid-1", captured.UserUID)
	assert.True(t, strings.HasPrefix(captured.OrderID, "SVL-"))

	assert.Equal(t, "SVL-TEST-0001", summary.OrderID)
	repo.AssertExpectations(t)
}

func TestCreateKeepsFormEmailWithoutToken(t *testing.T) {
	repo := new(MockRepo)
	service := NewOrderService(repo, testLogger())

	req := models.DummyOrder{
		CustomerDetails: models.CustomerDetails{
			Name: "Pranesh", Phone: "9999999999", Address: "Coimbatore",
			Email: "form@example.com",
		},
		Items:      []models.OrderItem{{PlanName: "Silver", Price: 1300, Quantity: 2}},
		TotalPrice: 2600,
	}

	var captured models.Order
	repo.On("CreateOrder", mock.Anything, mock.AnythingOfType("models.Order")).
		Run(func(args mock.Arguments) {
			captured = args.Get(1).(models.Order)
		}).
		Return(&models.Order{OrderID: "SVL-TEST-0002"}, nil)

	_, err := service.Create(context.Background(), "uid-1", "", req)
	require.NoError(t, err)
	assert.Equal(t, "form@example.com", captured.CustomerDetails.Email)
	assert.Equal(t, 2, captured.Items[0].Quantity)
}

func TestTransitionStatus(t *testing.T) {
	tests := []struct {
		name      string
		status    string
		setupMock func(*MockRepo)
		wantErr   error
	}{
		{
			name:   "успешный переход",
			status: models.StatusDelivered,
			setupMock: func(m *MockRepo) {
				m.On("ReadOrder", mock.Anything, "SVL-1").
					Return(&models.Order{OrderID: "SVL-1", Status: models.StatusOutForDelivery}, nil)
				m.On("UpdateOrderStatus", mock.Anything, "SVL-1", models.StatusDelivered).
					Return(&models.Order{OrderID: "SVL-1", Status: models.StatusDelivered}, nil)
			},
		},
		{
			name:    "недопустимый статус",
			status:  "Shipped",
			wantErr: ErrInvalidStatus,
		},
		{
			name:   "заказ не найден",
			status: models.StatusPreparing,
			setupMock: func(m *MockRepo) {
				m.On("ReadOrder", mock.Anything, "SVL-1").Return(nil, sql.ErrNoRows)
			},
			wantErr: ErrOrderNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockRepo)
			if tt.setupMock != nil {
				tt.setupMock(repo)
			}
			service := NewOrderService(repo, testLogger())

			order, err := service.TransitionStatus(context.Background(), "SVL-1", tt.status)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.status, order.Status)
			repo.AssertExpectations(t)
		})
	}
}

func TestTransitionStatusGovernedByTable(t *testing.T) {
	// Запрещаем уход из Delivered: переход должен отклоняться без записи.
	orig := models.StatusTransitions[models.StatusDelivered]
	models.StatusTransitions[models.StatusDelivered] = []string{models.StatusDelivered}
	defer func() { models.StatusTransitions[models.StatusDelivered] = orig }()

	repo := new(MockRepo)
	service := NewOrderService(repo, testLogger())

	repo.On("ReadOrder", mock.Anything, "SVL-1").
		Return(&models.Order{OrderID: "SVL-1", Status: models.StatusDelivered}, nil)

	_, err := service.TransitionStatus(context.Background(), "SVL-1", models.StatusPending)
	assert.ErrorIs(t, err, ErrInvalidTransition)
	repo.AssertNotCalled(t, "UpdateOrderStatus")
}

func TestRead(t *testing.T) {
	owned := &models.Order{OrderID: "SVL-1", UserUID: "uid-1"}

	tests := []struct {
		name      string
		uid       string
		role      string
		setupMock func(*MockRepo)
		wantErr   error
	}{
		{
			name: "владелец читает свой заказ",
			uid:  "uid-1", role: models.RoleCustomer,
			setupMock: func(m *MockRepo) {
				m.On("ReadOrder", mock.Anything, "SVL-1").Return(owned, nil)
			},
		},
		{
			name: "чужой заказ для покупателя запрещён",
			uid:  "uid-2", role: models.RoleCustomer,
			setupMock: func(m *MockRepo) {
				m.On("ReadOrder", mock.Anything, "SVL-1").Return(owned, nil)
			},
			wantErr: ErrForbidden,
		},
		{
			name: "администратор читает любой заказ",
			uid:  "uid-2", role: models.RoleAdmin,
			setupMock: func(m *MockRepo) {
				m.On("ReadOrder", mock.Anything, "SVL-1").Return(owned, nil)
			},
		},
		{
			name: "курьер читает любой заказ",
			uid:  "uid-2", role: models.RoleDelivery,
			setupMock: func(m *MockRepo) {
				m.On("ReadOrder", mock.Anything, "SVL-1").Return(owned, nil)
			},
		},
		{
			name: "отсутствующий заказ даёт not found даже не владельцу",
			uid:  "uid-2", role: models.RoleCustomer,
			setupMock: func(m *MockRepo) {
				m.On("ReadOrder", mock.Anything, "SVL-1").Return(nil, sql.ErrNoRows)
			},
			wantErr: ErrOrderNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockRepo)
			tt.setupMock(repo)
			service := NewOrderService(repo, testLogger())

			order, err := service.Read(context.Background(), "SVL-1", tt.uid, tt.role)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "SVL-1", order.OrderID)
		})
	}
}

func TestList(t *testing.T) {
	repo := new(MockRepo)
	service := NewOrderService(repo, testLogger())

	filter := models.OrderFilter{Status: models.StatusPending, Limit: 10, Skip: 0}
	repo.On("ListOrders", mock.Anything, filter).
		Return([]*models.Order{{OrderID: "SVL-1"}}, nil)
	repo.On("CountOrders", mock.Anything, models.StatusPending).Return(42, nil)

	orders, total, err := service.List(context.Background(), filter)
	require.NoError(t, err)
	assert.Len(t, orders, 1)
	// Общее число не зависит от окна пагинации
	assert.Equal(t, 42, total)
}

func TestStatsUsesLocalMidnight(t *testing.T) {
	repo := new(MockRepo)
	service := NewOrderService(repo, testLogger())

	repo.On("OrderStats", mock.Anything, mock.MatchedBy(func(ts time.Time) bool {
		now := time.Now()
		return ts.Hour() == 0 && ts.Minute() == 0 && ts.Second() == 0 &&
			ts.Day() == now.Day() && ts.Location() == now.Location()
	})).Return(&models.OrderStats{Total: 7}, nil)

	stats, err := service.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 7, stats.Total)
	repo.AssertExpectations(t)
}

func TestClear(t *testing.T) {
	repo := new(MockRepo)
	service := NewOrderService(repo, testLogger())

	repo.On("DeleteAllOrders", mock.Anything).Return(5, nil)

	count, err := service.Clear(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 5, count)

	repo2 := new(MockRepo)
	service2 := NewOrderService(repo2, testLogger())
	repo2.On("DeleteAllOrders", mock.Anything).Return(0, errors.New("db error"))

	_, err = service2.Clear(context.Background())
	assert.Error(t, err)
}

// Package services содержит бизнес-логику жизненного цикла заказов:
// создание, выборки, переходы статусов, агрегированную статистику
// и проверку владения при чтении одного заказа.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/PraneshMithun-cse/Savorly/internal/lib/orderid"
	"github.com/PraneshMithun-cse/Savorly/internal/models"
)

// Ошибки уровня бизнес-логики, транслируемые обработчиками в HTTP-статусы.
var (
	// ErrOrderNotFound — заказ с таким идентификатором отсутствует.
	ErrOrderNotFound = errors.New("order not found")
	// ErrForbidden — заказ принадлежит другому пользователю.
	ErrForbidden = errors.New("order does not belong to caller")
	// ErrInvalidStatus — целевой статус вне допустимого набора.
	ErrInvalidStatus = errors.New("invalid status")
	// ErrInvalidTransition — переход запрещён таблицей StatusTransitions.
	ErrInvalidTransition = errors.New("status transition not allowed")
)

// OrderRepository определяет методы для работы с заказами в хранилище.
type OrderRepository interface {
	// CreateOrder сохраняет новый заказ и возвращает его в персистированном виде.
	CreateOrder(ctx context.Context, order models.Order) (*models.Order, error)
	// ReadOrder возвращает заказ по идентификатору.
	ReadOrder(ctx context.Context, orderID string) (*models.Order, error)
	// ListOrders возвращает страницу заказов по фильтру.
	ListOrders(ctx context.Context, filter models.OrderFilter) ([]*models.Order, error)
	// CountOrders считает заказы по фильтру независимо от пагинации.
	CountOrders(ctx context.Context, status string) (int, error)
	// ListOrdersByOwner возвращает все заказы владельца, новые первыми.
	ListOrdersByOwner(ctx context.Context, userUID string) ([]*models.Order, error)
	// UpdateOrderStatus атомарно переводит заказ в новый статус.
	UpdateOrderStatus(ctx context.Context, orderID, status string) (*models.Order, error)
	// DeleteAllOrders очищает коллекцию заказов.
	DeleteAllOrders(ctx context.Context) (int, error)
	// OrderStats считает сводную статистику от границы todayStart.
	OrderStats(ctx context.Context, todayStart time.Time) (*models.OrderStats, error)
	// ListCustomers агрегирует заказы по владельцам.
	ListCustomers(ctx context.Context) ([]*models.CustomerSummary, error)
}

// OrderService реализует бизнес-логику работы с заказами.
type OrderService struct {
	repo OrderRepository
	log  *slog.Logger
}

// NewOrderService создает новый экземпляр OrderService.
func NewOrderService(repo OrderRepository, log *slog.Logger) *OrderService {
	return &OrderService{
		repo: repo,
		log:  log,
	}
}

// Create оформляет заказ для аутентифицированного субъекта. Снимок данных
// покупателя фиксируется в заказе, почта берётся из токена (с фолбэком на
// форму). Итоговая сумма принимается как есть — см. DESIGN.md.
func (s *OrderService) Create(ctx context.Context, uid, email string, req models.DummyOrder) (*models.OrderSummary, error) {
	customer := req.CustomerDetails
	if email != "" {
		customer.Email = email
	}

	items := make([]models.OrderItem, len(req.Items))
	for i, item := range req.Items {
		if item.Quantity == 0 {
			item.Quantity = 1
		}
		items[i] = item
	}

	paymentMethod := req.PaymentMethod
	if paymentMethod == "" {
		paymentMethod = "cod"
	}

	order := models.Order{
		OrderID:         orderid.New(),
		CustomerDetails: customer,
		Items:           items,
		TotalPrice:      req.TotalPrice,
		Status:          models.StatusPending,
		PaymentMethod:   paymentMethod,
		UserUID:         uid,
	}

	created, err := s.repo.CreateOrder(ctx, order)
	if err != nil {
		return nil, err
	}
	s.log.Info("created new order", slog.String("order_id", created.OrderID))

	return &models.OrderSummary{
		OrderID:    created.OrderID,
		Status:     created.Status,
		TotalPrice: created.TotalPrice,
		Timestamp:  created.Timestamp,
	}, nil
}

// TransitionStatus переводит заказ в целевой статус. Цель проверяется по
// явному набору статусов, переход — по таблице models.StatusTransitions
// от текущего статуса заказа; сама запись атомарна, конкурентные вызовы
// разрешаются по last-write-wins.
func (s *OrderService) TransitionStatus(ctx context.Context, orderID, status string) (*models.Order, error) {
	if !models.IsValidStatus(status) {
		return nil, fmt.Errorf("%w: %s", ErrInvalidStatus, status)
	}

	current, err := s.repo.ReadOrder(ctx, orderID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	if !models.CanTransition(current.Status, status) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, current.Status, status)
	}

	order, err := s.repo.UpdateOrderStatus(ctx, orderID, status)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	s.log.Info("order status updated",
		slog.String("order_id", order.OrderID), slog.String("status", status))
	return order, nil
}

// List возвращает страницу заказов и общее число записей, попадающих под
// фильтр (независимо от окна пагинации).
func (s *OrderService) List(ctx context.Context, filter models.OrderFilter) ([]*models.Order, int, error) {
	orders, err := s.repo.ListOrders(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.repo.CountOrders(ctx, filter.Status)
	if err != nil {
		return nil, 0, err
	}
	return orders, total, nil
}

// ListOwn возвращает все заказы вызывающего субъекта, новые первыми.
func (s *OrderService) ListOwn(ctx context.Context, uid string) ([]*models.Order, error) {
	return s.repo.ListOrdersByOwner(ctx, uid)
}

// Read возвращает заказ по идентификатору с проверкой владения:
// покупатель видит только собственные заказы, привилегированные роли —
// любые. Отсутствующий заказ даёт ErrOrderNotFound для всех ролей.
func (s *OrderService) Read(ctx context.Context, orderID, uid, role string) (*models.Order, error) {
	order, err := s.repo.ReadOrder(ctx, orderID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}

	privileged := role == models.RoleAdmin || role == models.RoleDelivery
	if !privileged && order.UserUID != uid {
		return nil, ErrForbidden
	}
	return order, nil
}

// Stats считает сводную статистику; срез "за сегодня" отсчитывается
// от местной полуночи.
func (s *OrderService) Stats(ctx context.Context) (*models.OrderStats, error) {
	now := time.Now()
	todayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return s.repo.OrderStats(ctx, todayStart)
}

// Clear полностью удаляет все заказы (админская операция обслуживания).
func (s *OrderService) Clear(ctx context.Context) (int, error) {
	count, err := s.repo.DeleteAllOrders(ctx)
	if err != nil {
		return 0, err
	}
	s.log.Info("cleared orders", slog.Int("count", count))
	return count, nil
}

// Customers возвращает агрегаты по покупателям.
func (s *OrderService) Customers(ctx context.Context) ([]*models.CustomerSummary, error) {
	return s.repo.ListCustomers(ctx)
}

package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"math"
	"time"

	"github.com/PraneshMithun-cse/Savorly/internal/models"
)

// orderColumns — общий список колонок заказа для SELECT/RETURNING.
const orderColumns = `order_id, customer_name, customer_phone, customer_address, customer_email,
			      items, total_price, status, payment_method, user_uid, created_at, delivered_at`

func scanOrder(row interface{ Scan(...any) error }) (*models.Order, error) {
	var o models.Order
	var items []byte
	var deliveredAt sql.NullTime
	if err := row.Scan(&o.OrderID, &o.CustomerDetails.Name, &o.CustomerDetails.Phone,
		&o.CustomerDetails.Address, &o.CustomerDetails.Email, &items, &o.TotalPrice,
		&o.Status, &o.PaymentMethod, &o.UserUID, &o.Timestamp, &deliveredAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(items, &o.Items); err != nil {
		return nil, err
	}
	if deliveredAt.Valid {
		o.DeliveredAt = &deliveredAt.Time
	}
	return &o, nil
}

// CreateOrder вставляет новый заказ. Идентификатор генерируется заранее
// на уровне сервиса, created_at проставляет база.
func (s *Storage) CreateOrder(ctx context.Context, order models.Order) (*models.Order, error) {
	const op = "storage.CreateOrder"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	items, err := json.Marshal(order.Items)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	query := `INSERT INTO orders (order_id, customer_name, customer_phone, customer_address,
			      customer_email, items, total_price, status, payment_method, user_uid)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
			  RETURNING ` + orderColumns
	row := s.DB.QueryRowContext(ctx, query,
		order.OrderID, order.CustomerDetails.Name, order.CustomerDetails.Phone,
		order.CustomerDetails.Address, order.CustomerDetails.Email, items,
		order.TotalPrice, order.Status, order.PaymentMethod, order.UserUID)

	created, err := scanOrder(row)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return created, nil
}

// ReadOrder возвращает заказ по его идентификатору.
func (s *Storage) ReadOrder(ctx context.Context, orderID string) (*models.Order, error) {
	const op = "storage.ReadOrder"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + orderColumns + `
			  FROM orders WHERE order_id = $1`
	result, err := scanOrder(s.DB.QueryRowContext(ctx, query, orderID))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// ListOrders возвращает страницу заказов по фильтру, новые первыми.
// Пустой filter.Status означает выборку по всем статусам.
func (s *Storage) ListOrders(ctx context.Context, filter models.OrderFilter) ([]*models.Order, error) {
	const op = "storage.ListOrders"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + orderColumns + `
			  FROM orders
			  WHERE ($1 = '' OR status = $1)
			  ORDER BY created_at DESC
			  LIMIT $2 OFFSET $3`
	rows, err := s.DB.QueryContext(ctx, query, filter.Status, filter.Limit, filter.Skip)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Order
	for rows.Next() {
		item, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, item)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// CountOrders считает заказы по фильтру независимо от окна пагинации.
func (s *Storage) CountOrders(ctx context.Context, status string) (int, error) {
	const op = "storage.CountOrders"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT COUNT(*) FROM orders WHERE ($1 = '' OR status = $1)`
	var total int
	if err := s.DB.QueryRowContext(ctx, query, status).Scan(&total); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return total, nil
}

// ListOrdersByOwner возвращает все заказы владельца, новые первыми.
func (s *Storage) ListOrdersByOwner(ctx context.Context, userUID string) ([]*models.Order, error) {
	const op = "storage.ListOrdersByOwner"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + orderColumns + `
			  FROM orders
			  WHERE user_uid = $1
			  ORDER BY created_at DESC`
	rows, err := s.DB.QueryContext(ctx, query, userUID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Order
	for rows.Next() {
		item, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, item)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// UpdateOrderStatus атомарно переводит заказ в новый статус одним UPDATE:
// конкурентные переходы не могут переплести чтение и запись, побеждает
// последняя запись. При переходе в Delivered проставляется delivered_at;
// при обратных переходах отметка сохраняется.
func (s *Storage) UpdateOrderStatus(ctx context.Context, orderID, status string) (*models.Order, error) {
	const op = "storage.UpdateOrderStatus"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE orders
			  SET status = $1,
			      delivered_at = CASE WHEN $1 = 'Delivered' THEN now() ELSE delivered_at END
			  WHERE order_id = $2
			  RETURNING ` + orderColumns
	result, err := scanOrder(s.DB.QueryRowContext(ctx, query, status, orderID))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// DeleteAllOrders полностью очищает коллекцию заказов и возвращает
// количество удалённых строк.
func (s *Storage) DeleteAllOrders(ctx context.Context) (int, error) {
	const op = "storage.DeleteAllOrders"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	result, err := s.DB.ExecContext(ctx, `DELETE FROM orders`)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}

// ListCustomerEmails возвращает уникальные непустые почты покупателей.
func (s *Storage) ListCustomerEmails(ctx context.Context) ([]string, error) {
	const op = "storage.ListCustomerEmails"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT DISTINCT customer_email FROM orders WHERE customer_email <> ''`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []string
	for rows.Next() {
		var email string
		if err := rows.Scan(&email); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, email)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// OrderStats считает сводную статистику одним запросом. Срез "за сегодня"
// отсчитывается от переданной границы todayStart.
func (s *Storage) OrderStats(ctx context.Context, todayStart time.Time) (*models.OrderStats, error) {
	const op = "storage.OrderStats"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT
			      COUNT(*),
			      COUNT(*) FILTER (WHERE status = 'Pending'),
			      COUNT(*) FILTER (WHERE status = 'Preparing'),
			      COUNT(*) FILTER (WHERE status = 'Out for Delivery'),
			      COUNT(*) FILTER (WHERE status = 'Delivered'),
			      COUNT(*) FILTER (WHERE status = 'Cancelled'),
			      COALESCE(SUM(total_price) FILTER (WHERE status <> 'Cancelled'), 0),
			      COALESCE(AVG(EXTRACT(EPOCH FROM (delivered_at - created_at)) / 60)
			          FILTER (WHERE status = 'Delivered' AND delivered_at IS NOT NULL), 0),
			      COUNT(DISTINCT user_uid),
			      COUNT(*) FILTER (WHERE created_at >= $1),
			      COALESCE(SUM(total_price) FILTER (WHERE created_at >= $1 AND status <> 'Cancelled'), 0),
			      COUNT(*) FILTER (WHERE status = 'Delivered' AND delivered_at >= $1),
			      COUNT(DISTINCT user_uid) FILTER (WHERE created_at >= $1)
			  FROM orders`

	var stats models.OrderStats
	var avgMinutes float64
	row := s.DB.QueryRowContext(ctx, query, todayStart)
	if err := row.Scan(&stats.Total, &stats.Pending, &stats.Preparing, &stats.OutForDelivery,
		&stats.Delivered, &stats.Cancelled, &stats.Revenue, &avgMinutes, &stats.TotalCustomers,
		&stats.TodayOrders, &stats.TodayRevenue, &stats.TodayDelivered, &stats.NewCustomersToday); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	stats.AvgDeliveryMinutes = int(math.Round(avgMinutes))
	return &stats, nil
}

// ListCustomers агрегирует заказы по владельцам: контакты из последнего
// заказа, количество заказов, потраченная сумма, первый и последний заказ.
func (s *Storage) ListCustomers(ctx context.Context) ([]*models.CustomerSummary, error) {
	const op = "storage.ListCustomers"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT
			      user_uid,
			      (ARRAY_AGG(customer_name ORDER BY created_at DESC))[1],
			      (ARRAY_AGG(customer_email ORDER BY created_at DESC))[1],
			      (ARRAY_AGG(customer_phone ORDER BY created_at DESC))[1],
			      (ARRAY_AGG(customer_address ORDER BY created_at DESC))[1],
			      COUNT(*),
			      COALESCE(SUM(total_price), 0),
			      MAX(created_at),
			      MIN(created_at)
			  FROM orders
			  GROUP BY user_uid
			  ORDER BY MAX(created_at) DESC`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.CustomerSummary
	for rows.Next() {
		var c models.CustomerSummary
		if err := rows.Scan(&c.UserUID, &c.Name, &c.Email, &c.Phone, &c.Address,
			&c.OrderCount, &c.TotalSpent, &c.LastOrder, &c.FirstOrder); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &c)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

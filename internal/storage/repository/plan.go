package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/PraneshMithun-cse/Savorly/internal/models"
)

const planColumns = `id, name, price, billing_period, description, features, image,
			      info_content, is_popular, badge_color, created_at, updated_at`

func scanPlan(row interface{ Scan(...any) error }) (*models.Plan, error) {
	var p models.Plan
	var features, infoContent []byte
	if err := row.Scan(&p.ID, &p.Name, &p.Price, &p.BillingPeriod, &p.Description,
		&features, &p.Image, &infoContent, &p.IsPopular, &p.BadgeColor,
		&p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(features, &p.Features); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(infoContent, &p.InfoContent); err != nil {
		return nil, err
	}
	return &p, nil
}

// ListPlans возвращает весь каталог планов, дешёвые первыми.
func (s *Storage) ListPlans(ctx context.Context) ([]*models.Plan, error) {
	const op = "storage.ListPlans"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + planColumns + `
			  FROM plans
			  ORDER BY price`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Plan
	for rows.Next() {
		item, err := scanPlan(rows)
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

// CreatePlan вставляет новый план каталога.
func (s *Storage) CreatePlan(ctx context.Context, plan models.Plan) (*models.Plan, error) {
	const op = "storage.CreatePlan"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	features, err := json.Marshal(plan.Features)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	infoContent, err := json.Marshal(plan.InfoContent)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	query := `INSERT INTO plans (id, name, price, billing_period, description, features,
			      image, info_content, is_popular, badge_color)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
			  RETURNING ` + planColumns
	row := s.DB.QueryRowContext(ctx, query, plan.ID, plan.Name, plan.Price, plan.BillingPeriod,
		plan.Description, features, plan.Image, infoContent, plan.IsPopular, plan.BadgeColor)

	created, err := scanPlan(row)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return created, nil
}

// UpdatePlan перезаписывает поля плана по ID и возвращает обновлённую запись.
func (s *Storage) UpdatePlan(ctx context.Context, id string, plan models.Plan) (*models.Plan, error) {
	const op = "storage.UpdatePlan"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	features, err := json.Marshal(plan.Features)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	infoContent, err := json.Marshal(plan.InfoContent)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	query := `UPDATE plans
			  SET name = $1, price = $2, billing_period = $3, description = $4,
			      features = $5, image = $6, info_content = $7, is_popular = $8,
			      badge_color = $9, updated_at = now()
			  WHERE id = $10
			  RETURNING ` + planColumns
	row := s.DB.QueryRowContext(ctx, query, plan.Name, plan.Price, plan.BillingPeriod,
		plan.Description, features, plan.Image, infoContent, plan.IsPopular, plan.BadgeColor, id)

	updated, err := scanPlan(row)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return updated, nil
}

// DeletePlan удаляет план по ID и возвращает количество удалённых строк.
func (s *Storage) DeletePlan(ctx context.Context, id string) (int, error) {
	const op = "storage.DeletePlan"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	result, err := s.DB.ExecContext(ctx, `DELETE FROM plans WHERE id = $1`, id)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}

// ReadPlan возвращает план по ID.
func (s *Storage) ReadPlan(ctx context.Context, id string) (*models.Plan, error) {
	const op = "storage.ReadPlan"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + planColumns + ` FROM plans WHERE id = $1`
	result, err := scanPlan(s.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

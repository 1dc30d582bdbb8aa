package repository

import (
	"context"
	"fmt"

	"github.com/PraneshMithun-cse/Savorly/internal/models"
)

const consultationColumns = `id, name, email, phone, program, preferred_time, status, created_at`

func scanConsultation(row interface{ Scan(...any) error }) (*models.Consultation, error) {
	var c models.Consultation
	if err := row.Scan(&c.ID, &c.Name, &c.Email, &c.Phone, &c.Program,
		&c.PreferredTime, &c.Status, &c.Timestamp); err != nil {
		return nil, err
	}
	return &c, nil
}

// CreateConsultation сохраняет новую заявку на консультацию.
func (s *Storage) CreateConsultation(ctx context.Context, c models.Consultation) (*models.Consultation, error) {
	const op = "storage.CreateConsultation"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO consultations (id, name, email, phone, program, preferred_time, status)
			  VALUES ($1, $2, $3, $4, $5, $6, $7)
			  RETURNING ` + consultationColumns
	row := s.DB.QueryRowContext(ctx, query, c.ID, c.Name, c.Email, c.Phone,
		c.Program, c.PreferredTime, c.Status)

	created, err := scanConsultation(row)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return created, nil
}

// ListConsultations возвращает все заявки, новые первыми.
func (s *Storage) ListConsultations(ctx context.Context) ([]*models.Consultation, error) {
	const op = "storage.ListConsultations"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + consultationColumns + `
			  FROM consultations
			  ORDER BY created_at DESC`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Consultation
	for rows.Next() {
		item, err := scanConsultation(rows)
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

// CountConsultationsByStatus считает заявки в заданном статусе.
func (s *Storage) CountConsultationsByStatus(ctx context.Context, status string) (int, error) {
	const op = "storage.CountConsultationsByStatus"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var total int
	query := `SELECT COUNT(*) FROM consultations WHERE status = $1`
	if err := s.DB.QueryRowContext(ctx, query, status).Scan(&total); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return total, nil
}

// UpdateConsultationStatus атомарно меняет статус заявки и возвращает её.
func (s *Storage) UpdateConsultationStatus(ctx context.Context, id, status string) (*models.Consultation, error) {
	const op = "storage.UpdateConsultationStatus"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE consultations
			  SET status = $1
			  WHERE id = $2
			  RETURNING ` + consultationColumns
	result, err := scanConsultation(s.DB.QueryRowContext(ctx, query, status, id))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

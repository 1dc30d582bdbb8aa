package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/PraneshMithun-cse/Savorly/internal/models"
)

const helpColumns = `id, user_uid, user_name, user_email, subject, message, status,
			      admin_response, created_at, updated_at`

func scanHelpRequest(row interface{ Scan(...any) error }) (*models.HelpRequest, error) {
	var h models.HelpRequest
	var adminResponse sql.NullString
	if err := row.Scan(&h.ID, &h.UserUID, &h.UserName, &h.UserEmail, &h.Subject,
		&h.Message, &h.Status, &adminResponse, &h.CreatedAt, &h.UpdatedAt); err != nil {
		return nil, err
	}
	if adminResponse.Valid {
		h.AdminResponse = adminResponse.String
	}
	return &h, nil
}

// CreateHelpRequest сохраняет новое обращение в поддержку.
func (s *Storage) CreateHelpRequest(ctx context.Context, h models.HelpRequest) (*models.HelpRequest, error) {
	const op = "storage.CreateHelpRequest"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO help_requests (id, user_uid, user_name, user_email, subject, message, status)
			  VALUES ($1, $2, $3, $4, $5, $6, $7)
			  RETURNING ` + helpColumns
	row := s.DB.QueryRowContext(ctx, query, h.ID, h.UserUID, h.UserName, h.UserEmail,
		h.Subject, h.Message, h.Status)

	created, err := scanHelpRequest(row)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return created, nil
}

// ListHelpRequests возвращает все обращения, новые первыми.
func (s *Storage) ListHelpRequests(ctx context.Context) ([]*models.HelpRequest, error) {
	const op = "storage.ListHelpRequests"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + helpColumns + `
			  FROM help_requests
			  ORDER BY created_at DESC`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.HelpRequest
	for rows.Next() {
		item, err := scanHelpRequest(rows)
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

// UpdateHelpRequest меняет статус и/или ответ администратора.
// Пустые значения оставляют прежнее содержимое поля.
func (s *Storage) UpdateHelpRequest(ctx context.Context, id, status, adminResponse string) (*models.HelpRequest, error) {
	const op = "storage.UpdateHelpRequest"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE help_requests
			  SET status = CASE WHEN $1 = '' THEN status ELSE $1 END,
			      admin_response = CASE WHEN $2 = '' THEN admin_response ELSE $2 END,
			      updated_at = now()
			  WHERE id = $3
			  RETURNING ` + helpColumns
	result, err := scanHelpRequest(s.DB.QueryRowContext(ctx, query, status, adminResponse, id))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

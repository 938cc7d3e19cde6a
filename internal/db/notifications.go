package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"mesa-notification-service/internal/models"
)

// CreateNotification records one channel dispatch attempt.
func (d *DB) CreateNotification(ctx context.Context, n models.Notification) error {
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}

	query := `
	INSERT INTO notifications (id, request_id, mesa_id, professor_id, channel, subject, body, status, error, created_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW())`

	_, err := d.Pool.Exec(ctx, query,
		n.ID,
		n.RequestID,
		n.MesaID,
		n.ProfessorID,
		n.Channel,
		n.Subject,
		n.Body,
		n.Status,
		n.Error,
	)
	if err != nil {
		return fmt.Errorf("failed to create notification: %w", err)
	}
	return nil
}

// GetNotificationsByProfessor returns a professor's notification history,
// newest first.
func (d *DB) GetNotificationsByProfessor(ctx context.Context, professorID string, limit int) ([]models.Notification, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}

	query := `
	SELECT id, request_id, mesa_id, professor_id, channel, subject, body, status, error, created_at
	FROM notifications
	WHERE professor_id = $1
	ORDER BY created_at DESC
	LIMIT $2`

	rows, err := d.Pool.Query(ctx, query, professorID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get notifications for %s: %w", professorID, err)
	}
	defer rows.Close()

	var out []models.Notification
	for rows.Next() {
		var n models.Notification
		if err := rows.Scan(&n.ID, &n.RequestID, &n.MesaID, &n.ProfessorID, &n.Channel, &n.Subject, &n.Body, &n.Status, &n.Error, &n.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan notification: %w", err)
		}
		out = append(out, n)
	}
	return out, rows.Err()
}

package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"mesa-notification-service/internal/models"
)

// GetNotificationConfig returns a professor's channel toggles. A professor
// who never saved preferences gets the defaults.
func (d *DB) GetNotificationConfig(ctx context.Context, professorID string) (models.NotificationConfig, error) {
	query := `
	SELECT professor_id, web_push_enabled, email_enabled, sms_enabled, advance_notice_days, updated_at
	FROM notification_configs
	WHERE professor_id = $1`

	var cfg models.NotificationConfig
	err := d.Pool.QueryRow(ctx, query, professorID).Scan(
		&cfg.ProfessorID,
		&cfg.WebPushEnabled,
		&cfg.EmailEnabled,
		&cfg.SMSEnabled,
		&cfg.AdvanceNoticeDays,
		&cfg.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.DefaultNotificationConfig(professorID), nil
	}
	if err != nil {
		return models.NotificationConfig{}, fmt.Errorf("failed to get notification config for %s: %w", professorID, err)
	}
	return cfg, nil
}

// UpsertNotificationConfig saves a professor's channel toggles.
func (d *DB) UpsertNotificationConfig(ctx context.Context, cfg models.NotificationConfig) error {
	query := `
	INSERT INTO notification_configs (professor_id, web_push_enabled, email_enabled, sms_enabled, advance_notice_days, updated_at)
	VALUES ($1, $2, $3, $4, $5, NOW())
	ON CONFLICT (professor_id) DO UPDATE
	SET web_push_enabled = EXCLUDED.web_push_enabled,
	    email_enabled = EXCLUDED.email_enabled,
	    sms_enabled = EXCLUDED.sms_enabled,
	    advance_notice_days = EXCLUDED.advance_notice_days,
	    updated_at = NOW()`

	_, err := d.Pool.Exec(ctx, query,
		cfg.ProfessorID,
		cfg.WebPushEnabled,
		cfg.EmailEnabled,
		cfg.SMSEnabled,
		cfg.AdvanceNoticeDays,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert notification config for %s: %w", cfg.ProfessorID, err)
	}
	return nil
}

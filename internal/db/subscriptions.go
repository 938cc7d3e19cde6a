package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"mesa-notification-service/internal/models"
)

// SaveSubscription inserts or refreshes a push subscription. Rows are keyed
// on endpoint: re-registering the same browser updates its keys and owner in
// place, while a professor with several browsers keeps one row per endpoint.
func (d *DB) SaveSubscription(ctx context.Context, sub models.PushSubscription) (models.PushSubscription, error) {
	if sub.ID == uuid.Nil {
		sub.ID = uuid.New()
	}

	query := `
	INSERT INTO push_subscriptions (id, owner_id, endpoint, p256dh, auth, created_at)
	VALUES ($1, $2, $3, $4, $5, NOW())
	ON CONFLICT (endpoint) DO UPDATE
	SET owner_id = EXCLUDED.owner_id,
	    p256dh = EXCLUDED.p256dh,
	    auth = EXCLUDED.auth
	RETURNING id, created_at`

	err := d.Pool.QueryRow(ctx, query,
		sub.ID,
		sub.OwnerID,
		sub.Endpoint,
		sub.P256dh,
		sub.Auth,
	).Scan(&sub.ID, &sub.CreatedAt)
	if err != nil {
		return models.PushSubscription{}, fmt.Errorf("failed to save subscription: %w", err)
	}
	return sub, nil
}

// GetSubscriptionsByOwner returns every push subscription registered for a
// professor. An empty result is not an error.
func (d *DB) GetSubscriptionsByOwner(ctx context.Context, ownerID string) ([]models.PushSubscription, error) {
	query := `
	SELECT id, owner_id, endpoint, p256dh, auth, created_at
	FROM push_subscriptions
	WHERE owner_id = $1`

	rows, err := d.Pool.Query(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get subscriptions for owner %s: %w", ownerID, err)
	}
	defer rows.Close()

	var subs []models.PushSubscription
	for rows.Next() {
		var sub models.PushSubscription
		if err := rows.Scan(&sub.ID, &sub.OwnerID, &sub.Endpoint, &sub.P256dh, &sub.Auth, &sub.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan subscription: %w", err)
		}
		subs = append(subs, sub)
	}
	return subs, rows.Err()
}

// DeleteSubscriptionByID removes one subscription. Deleting an id that is
// already gone is a no-op: concurrent prunes may race on the same row.
func (d *DB) DeleteSubscriptionByID(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM push_subscriptions WHERE id = $1`
	if _, err := d.Pool.Exec(ctx, query, id); err != nil {
		return fmt.Errorf("failed to delete subscription %s: %w", id, err)
	}
	return nil
}

package models

import (
	"time"

	"github.com/google/uuid"
)

// PushSubscription is one browser push registration belonging to a professor.
// A professor may hold zero, one, or several rows (one per browser/device).
type PushSubscription struct {
	ID        uuid.UUID `json:"id"`
	OwnerID   string    `json:"owner_id"`
	Endpoint  string    `json:"endpoint"`
	P256dh    string    `json:"p256dh"`
	Auth      string    `json:"auth"`
	CreatedAt time.Time `json:"created_at"`
}

// SubscriptionCreate is the registration body posted by the browser after
// a successful PushManager.subscribe call.
type SubscriptionCreate struct {
	ProfessorID string `json:"professor_id" binding:"required"`
	Endpoint    string `json:"endpoint" binding:"required"`
	Keys        struct {
		P256dh string `json:"p256dh" binding:"required"`
		Auth   string `json:"auth" binding:"required"`
	} `json:"keys" binding:"required"`
}

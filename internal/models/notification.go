package models

import (
	"time"

	"github.com/google/uuid"
)

// Notification is one delivered (or attempted) notification, kept as history.
type Notification struct {
	ID          uuid.UUID `json:"id"`
	RequestID   string    `json:"request_id"`
	MesaID      string    `json:"mesa_id"`
	ProfessorID string    `json:"professor_id"`
	Channel     string    `json:"channel"`
	Subject     string    `json:"subject"`
	Body        string    `json:"body"`
	Status      string    `json:"status"`
	Error       string    `json:"error,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

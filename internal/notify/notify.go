// Package notify implements the notification dispatch core: one Notifier per
// delivery channel, a factory that picks the notifier for a channel tag, and
// the web-push fan-out with dead-endpoint pruning.
//
// Channel toggles (models.NotificationConfig) are a caller precondition: the
// event producer must check them before asking for a notifier. Send never
// re-checks preferences and never fails for expected delivery problems.
package notify

import (
	"context"
	"errors"
	"fmt"

	"mesa-notification-service/internal/models"

	"github.com/google/uuid"
)

// Channel identifies a delivery channel. The set is closed; the factory
// rejects anything else.
type Channel string

const (
	ChannelPush     Channel = "push"
	ChannelEmail    Channel = "email"
	ChannelWhatsApp Channel = "whatsapp"
)

// ErrUnsupportedChannel is returned by Factory.Create for a tag outside the
// closed channel set. It is the only error the core surfaces to callers;
// delivery failures are logged and swallowed.
var ErrUnsupportedChannel = errors.New("unsupported notification channel")

// Notifier delivers one payload over one channel. Send returns nil even when
// delivery fails (dead endpoint, transport rejection, network error): the
// system has no retry queue, so surfacing transient failures would only
// produce noise without recourse. Resolution is not proof of delivery.
type Notifier interface {
	Send(ctx context.Context) error
}

// SubscriptionStore is the persistence boundary the push notifier reads from
// and prunes. DeleteSubscriptionByID must be idempotent: deleting an
// already-deleted id is a no-op, not an error.
type SubscriptionStore interface {
	GetSubscriptionsByOwner(ctx context.Context, ownerID string) ([]models.PushSubscription, error)
	DeleteSubscriptionByID(ctx context.Context, id uuid.UUID) error
}

// PushTransport sends one encoded envelope to one subscription endpoint.
// A push-service rejection is reported as a *PushError carrying the HTTP
// status, so the fan-out can recognize 410 Gone.
type PushTransport interface {
	Send(ctx context.Context, sub models.PushSubscription, message []byte) error
}

// PushError is a push-service rejection with its HTTP status code.
type PushError struct {
	StatusCode int
	Endpoint   string
}

func (e *PushError) Error() string {
	return fmt.Sprintf("push service returned %d for endpoint %s", e.StatusCode, e.Endpoint)
}

// EmailMessage is the outgoing mail handed to an EmailTransport.
type EmailMessage struct {
	From    string
	To      string
	Subject string
	HTML    string
}

// EmailTransport sends one HTML email.
type EmailTransport interface {
	Send(ctx context.Context, msg EmailMessage) error
}

// TextMessage is the outgoing message handed to a MessagingTransport.
type TextMessage struct {
	From        string `json:"from"`
	To          string `json:"to"`
	MessageType string `json:"message_type"`
	Text        string `json:"text"`
	Channel     string `json:"channel"`
}

// MessagingTransport sends one text message over a messaging API (WhatsApp).
type MessagingTransport interface {
	Send(ctx context.Context, msg TextMessage) error
}

// Package webpush wraps the Web Push protocol client with VAPID
// authentication behind the notify.PushTransport interface.
package webpush

import (
	"context"
	"io"

	wp "github.com/SherClockHolmes/webpush-go"

	"mesa-notification-service/internal/models"
	"mesa-notification-service/internal/notify"
)

type Client struct {
	publicKey  string
	privateKey string
	subscriber string
	ttl        int
}

// NewClient builds a push client from explicit VAPID material. Nothing is
// read from process-wide state, so tests can construct throwaway clients.
func NewClient(vapidPublicKey, vapidPrivateKey, subscriber string) *Client {
	return &Client{
		publicKey:  vapidPublicKey,
		privateKey: vapidPrivateKey,
		subscriber: subscriber,
		ttl:        86400,
	}
}

// Send pushes message to one subscription endpoint. A non-success response
// from the push service is returned as a *notify.PushError so callers can
// branch on the status code (410 Gone in particular).
func (c *Client) Send(ctx context.Context, sub models.PushSubscription, message []byte) error {
	resp, err := wp.SendNotificationWithContext(ctx, message, &wp.Subscription{
		Endpoint: sub.Endpoint,
		Keys: wp.Keys{
			Auth:   sub.Auth,
			P256dh: sub.P256dh,
		},
	}, &wp.Options{
		Subscriber:      c.subscriber,
		VAPIDPublicKey:  c.publicKey,
		VAPIDPrivateKey: c.privateKey,
		TTL:             c.ttl,
	})
	if err != nil {
		return err
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &notify.PushError{StatusCode: resp.StatusCode, Endpoint: sub.Endpoint}
	}
	return nil
}

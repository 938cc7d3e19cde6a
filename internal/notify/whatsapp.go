package notify

import (
	"context"
	"time"

	"mesa-notification-service/internal/models"

	"github.com/sirupsen/logrus"
)

// WhatsAppNotifier delivers one payload as a WhatsApp text message to
// payload.Recipient (a phone number). Same best-effort policy as email.
type WhatsAppNotifier struct {
	payload   models.NotificationPayload
	transport MessagingTransport
	from      string
	timeout   time.Duration
	logger    *logrus.Logger
}

func (n *WhatsAppNotifier) Send(ctx context.Context) error {
	sendCtx, cancel := context.WithTimeout(ctx, n.timeout)
	defer cancel()

	msg := TextMessage{
		From:        n.from,
		To:          n.payload.Recipient,
		MessageType: "text",
		Text:        n.payload.Body,
		Channel:     "whatsapp",
	}
	if err := n.transport.Send(sendCtx, msg); err != nil {
		n.logger.Errorf("whatsapp: delivery to %s failed: %v", n.payload.Recipient, err)
	}
	return nil
}

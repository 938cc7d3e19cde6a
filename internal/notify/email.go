package notify

import (
	"context"
	"time"

	"mesa-notification-service/internal/models"

	"github.com/sirupsen/logrus"
)

// EmailNotifier delivers one payload as an HTML email to payload.Recipient
// (an email address). Delivery is single-attempt; transport failures are
// logged and swallowed.
type EmailNotifier struct {
	payload   models.NotificationPayload
	transport EmailTransport
	from      string
	timeout   time.Duration
	logger    *logrus.Logger
}

func (n *EmailNotifier) Send(ctx context.Context) error {
	sendCtx, cancel := context.WithTimeout(ctx, n.timeout)
	defer cancel()

	msg := EmailMessage{
		From:    n.from,
		To:      n.payload.Recipient,
		Subject: n.payload.Title,
		HTML:    "<p>" + n.payload.Body + "</p>",
	}
	if err := n.transport.Send(sendCtx, msg); err != nil {
		n.logger.Errorf("email: delivery to %s failed: %v", n.payload.Recipient, err)
	}
	return nil
}

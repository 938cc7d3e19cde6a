package notify

import (
	"fmt"
	"time"

	"mesa-notification-service/internal/models"

	"github.com/sirupsen/logrus"
)

// Factory builds channel notifiers. It holds the transports and store the
// notifiers need; it keeps no per-send state, so one instance can be shared
// freely, but nothing requires that — a fresh Factory works the same.
type Factory struct {
	store     SubscriptionStore
	push      PushTransport
	email     EmailTransport
	messaging MessagingTransport

	emailFrom    string
	whatsAppFrom string
	timeout      time.Duration
	logger       *logrus.Logger
}

// FactoryConfig wires a Factory.
type FactoryConfig struct {
	Store        SubscriptionStore
	Push         PushTransport
	Email        EmailTransport
	Messaging    MessagingTransport
	EmailFrom    string
	WhatsAppFrom string
	// Timeout bounds each transport call made by a notifier.
	Timeout time.Duration
}

func NewFactory(cfg FactoryConfig, logger *logrus.Logger) *Factory {
	if cfg.Timeout == 0 {
		cfg.Timeout = 10 * time.Second
	}
	return &Factory{
		store:        cfg.Store,
		push:         cfg.Push,
		email:        cfg.Email,
		messaging:    cfg.Messaging,
		emailFrom:    cfg.EmailFrom,
		whatsAppFrom: cfg.WhatsAppFrom,
		timeout:      cfg.Timeout,
		logger:       logger,
	}
}

// Create returns the notifier for channel, carrying payload. An unknown tag
// is a caller bug and fails fast with ErrUnsupportedChannel naming the tag.
func (f *Factory) Create(channel Channel, payload models.NotificationPayload) (Notifier, error) {
	switch channel {
	case ChannelPush:
		return &PushNotifier{
			payload:   payload,
			store:     f.store,
			transport: f.push,
			timeout:   f.timeout,
			logger:    f.logger,
		}, nil
	case ChannelEmail:
		return &EmailNotifier{
			payload:   payload,
			transport: f.email,
			from:      f.emailFrom,
			timeout:   f.timeout,
			logger:    f.logger,
		}, nil
	case ChannelWhatsApp:
		return &WhatsAppNotifier{
			payload:   payload,
			transport: f.messaging,
			from:      f.whatsAppFrom,
			timeout:   f.timeout,
			logger:    f.logger,
		}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedChannel, channel)
	}
}

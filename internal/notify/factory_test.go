package notify

import (
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mesa-notification-service/internal/models"
)

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func testFactory(store SubscriptionStore, push PushTransport, email EmailTransport, messaging MessagingTransport) *Factory {
	return NewFactory(FactoryConfig{
		Store:        store,
		Push:         push,
		Email:        email,
		Messaging:    messaging,
		EmailFrom:    "mesas@universidad.edu.ar",
		WhatsAppFrom: "14155550100",
	}, testLogger())
}

func TestFactoryCreateKnownChannels(t *testing.T) {
	f := testFactory(&fakeStore{}, &fakePushTransport{}, &fakeEmailTransport{}, &fakeMessagingTransport{})
	payload := models.NotificationPayload{Title: "Nueva mesa asignada", Body: "Examen el 10 de julio", Recipient: "prof-42"}

	n, err := f.Create(ChannelPush, payload)
	require.NoError(t, err)
	assert.IsType(t, &PushNotifier{}, n)

	n, err = f.Create(ChannelEmail, payload)
	require.NoError(t, err)
	assert.IsType(t, &EmailNotifier{}, n)

	n, err = f.Create(ChannelWhatsApp, payload)
	require.NoError(t, err)
	assert.IsType(t, &WhatsAppNotifier{}, n)
}

func TestFactoryCreateUnknownChannel(t *testing.T) {
	f := testFactory(&fakeStore{}, &fakePushTransport{}, &fakeEmailTransport{}, &fakeMessagingTransport{})

	for _, tag := range []Channel{"telegram", "sms", "", "PUSH"} {
		n, err := f.Create(tag, models.NotificationPayload{Recipient: "prof-42"})
		assert.Nil(t, n)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrUnsupportedChannel)
		if tag != "" {
			assert.Contains(t, err.Error(), string(tag))
		}
	}
}

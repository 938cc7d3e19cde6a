package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
	t.Setenv("KAFKA_BROKER", "localhost:9092")
	t.Setenv("DB_DSN", "postgres://localhost/mesas")
	t.Setenv("VAPID_PUBLIC_KEY", "public-key")
	t.Setenv("VAPID_PRIVATE_KEY", "private-key")
}

func TestLoadMissingRequired(t *testing.T) {
	t.Setenv("KAFKA_BROKER", "")
	t.Setenv("DB_DSN", "")
	t.Setenv("VAPID_PUBLIC_KEY", "")
	t.Setenv("VAPID_PRIVATE_KEY", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "KAFKA_BROKER")
	assert.Contains(t, err.Error(), "DB_DSN")
	assert.Contains(t, err.Error(), "VAPID_PUBLIC_KEY")
}

func TestLoadDefaults(t *testing.T) {
	setRequired(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.API.Port)
	assert.Equal(t, "/api/v0", cfg.API.BasePath)
	assert.Equal(t, 500, cfg.Notification.QueueSize)
	assert.Equal(t, 10, cfg.Notification.MaxWorkers)
	assert.Equal(t, 10*time.Second, cfg.Notification.TransportTimeout)
	assert.Equal(t, "mesa_notification", cfg.Kafka.Topic)
	assert.Equal(t, 5, cfg.WhatsApp.RateLimit)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestLoadOverrides(t *testing.T) {
	setRequired(t)
	t.Setenv("QUEUE_SIZE", "42")
	t.Setenv("TRANSPORT_TIMEOUT", "3s")
	t.Setenv("WHATSAPP_RATE_LIMIT", "20")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 42, cfg.Notification.QueueSize)
	assert.Equal(t, 3*time.Second, cfg.Notification.TransportTimeout)
	assert.Equal(t, 20, cfg.WhatsApp.RateLimit)
}

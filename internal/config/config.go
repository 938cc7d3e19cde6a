package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration loaded from environment.
type Config struct {
	Kafka struct {
		Broker  string
		Topic   string
		GroupID string
	}
	DB struct {
		DSN string
	}
	Email struct {
		SMTPServer string
		SMTPPort   int
		Username   string
		Password   string
		From       string
	}
	WhatsApp struct {
		APIURL     string
		APIKey     string
		APISecret  string
		FromNumber string
		RateLimit  int
	}
	WebPush struct {
		VAPIDPublicKey  string
		VAPIDPrivateKey string
		Subscriber      string
	}
	API struct {
		Port     string
		BasePath string
	}
	Notification struct {
		QueueSize        int
		MaxWorkers       int
		TransportTimeout time.Duration
	}
	Logging struct {
		Dir   string
		Level string
	}
}

// Load reads environment variables, applies defaults, and returns a Config.
func Load() (Config, error) {
	// Load .env if present
	if err := godotenv.Load(".env"); err != nil && !os.IsNotExist(err) {
		return Config{}, fmt.Errorf("failed to load .env file: %w", err)
	}

	var cfg Config

	// Kafka settings
	cfg.Kafka.Broker = os.Getenv("KAFKA_BROKER")
	cfg.Kafka.Topic = os.Getenv("KAFKA_TOPIC")
	cfg.Kafka.GroupID = os.Getenv("KAFKA_GROUP_ID")

	// Database DSN
	cfg.DB.DSN = os.Getenv("DB_DSN")

	// Email settings
	cfg.Email.SMTPServer = os.Getenv("EMAIL_SMTP_SERVER")
	if p, err := strconv.Atoi(os.Getenv("EMAIL_SMTP_PORT")); err == nil {
		cfg.Email.SMTPPort = p
	}
	cfg.Email.Username = os.Getenv("EMAIL_USERNAME")
	cfg.Email.Password = os.Getenv("EMAIL_PASSWORD")
	cfg.Email.From = os.Getenv("EMAIL_FROM")

	// WhatsApp messaging settings
	cfg.WhatsApp.APIURL = os.Getenv("WHATSAPP_API_URL")
	cfg.WhatsApp.APIKey = os.Getenv("WHATSAPP_API_KEY")
	cfg.WhatsApp.APISecret = os.Getenv("WHATSAPP_API_SECRET")
	cfg.WhatsApp.FromNumber = os.Getenv("WHATSAPP_FROM_NUMBER")
	if rl, err := strconv.Atoi(os.Getenv("WHATSAPP_RATE_LIMIT")); err == nil {
		cfg.WhatsApp.RateLimit = rl
	}

	// Web push (VAPID) settings
	cfg.WebPush.VAPIDPublicKey = os.Getenv("VAPID_PUBLIC_KEY")
	cfg.WebPush.VAPIDPrivateKey = os.Getenv("VAPID_PRIVATE_KEY")
	cfg.WebPush.Subscriber = os.Getenv("VAPID_SUBSCRIBER")

	// API settings
	cfg.API.Port = os.Getenv("API_PORT")
	cfg.API.BasePath = os.Getenv("API_BASE_PATH")

	// Dispatch worker settings
	if qs, err := strconv.Atoi(os.Getenv("QUEUE_SIZE")); err == nil {
		cfg.Notification.QueueSize = qs
	}
	if mw, err := strconv.Atoi(os.Getenv("MAX_WORKERS")); err == nil {
		cfg.Notification.MaxWorkers = mw
	}
	if tt, err := time.ParseDuration(os.Getenv("TRANSPORT_TIMEOUT")); err == nil {
		cfg.Notification.TransportTimeout = tt
	}

	// Logging settings
	cfg.Logging.Dir = os.Getenv("LOG_DIR")
	cfg.Logging.Level = os.Getenv("LOG_LEVEL")

	// Validate required settings
	missing := []string{}
	if cfg.Kafka.Broker == "" {
		missing = append(missing, "KAFKA_BROKER")
	}
	if cfg.DB.DSN == "" {
		missing = append(missing, "DB_DSN")
	}
	if cfg.WebPush.VAPIDPublicKey == "" {
		missing = append(missing, "VAPID_PUBLIC_KEY")
	}
	if cfg.WebPush.VAPIDPrivateKey == "" {
		missing = append(missing, "VAPID_PRIVATE_KEY")
	}
	if len(missing) > 0 {
		return Config{}, fmt.Errorf("missing required configurations: %v", missing)
	}

	// Apply defaults
	if cfg.Kafka.Topic == "" {
		cfg.Kafka.Topic = "mesa_notification"
	}
	if cfg.Kafka.GroupID == "" {
		cfg.Kafka.GroupID = "mesa-notification-service"
	}
	if cfg.WhatsApp.APIURL == "" {
		cfg.WhatsApp.APIURL = "https://messages-sandbox.nexmo.com/v0.1/messages"
	}
	if cfg.WhatsApp.RateLimit == 0 {
		cfg.WhatsApp.RateLimit = 5
	}
	if cfg.API.Port == "" {
		cfg.API.Port = ":8080"
	}
	if cfg.API.BasePath == "" {
		cfg.API.BasePath = "/api/v0"
	}
	if cfg.Notification.QueueSize == 0 {
		cfg.Notification.QueueSize = 500
	}
	if cfg.Notification.MaxWorkers == 0 {
		cfg.Notification.MaxWorkers = 10
	}
	if cfg.Notification.TransportTimeout == 0 {
		cfg.Notification.TransportTimeout = 10 * time.Second
	}
	if cfg.Logging.Dir == "" {
		cfg.Logging.Dir = "logs"
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}

	return cfg, nil
}

package main

import (
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"mesa-notification-service/internal/api"
	"mesa-notification-service/internal/config"
	"mesa-notification-service/internal/db"
	"mesa-notification-service/internal/kafka"
	"mesa-notification-service/internal/logging"
	"mesa-notification-service/internal/notification"
	"mesa-notification-service/internal/notify"
	"mesa-notification-service/pkg/mailer"
	"mesa-notification-service/pkg/webpush"
	"mesa-notification-service/pkg/whatsapp"
)

func main() {
	// Load config
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Config load failed:", err)
	}

	// Initialize logger
	logger, err := logging.New(cfg.Logging.Dir, cfg.Logging.Level)
	if err != nil {
		log.Fatal("Logger init failed:", err)
	}

	// Connect to DB
	dbConn, err := db.New(cfg.DB.DSN)
	if err != nil {
		logger.Errorf("DB connect failed: %v", err)
		log.Fatal("DB connect failed:", err)
	}
	defer dbConn.Close()

	// Wire channel transports and the notifier factory
	factory := notify.NewFactory(notify.FactoryConfig{
		Store:        dbConn,
		Push:         webpush.NewClient(cfg.WebPush.VAPIDPublicKey, cfg.WebPush.VAPIDPrivateKey, cfg.WebPush.Subscriber),
		Email:        mailer.NewClient(cfg.Email.SMTPServer, cfg.Email.SMTPPort, cfg.Email.Username, cfg.Email.Password),
		Messaging:    whatsapp.NewClient(cfg.WhatsApp.APIURL, cfg.WhatsApp.APIKey, cfg.WhatsApp.APISecret, cfg.WhatsApp.RateLimit),
		EmailFrom:    cfg.Email.From,
		WhatsAppFrom: cfg.WhatsApp.FromNumber,
		Timeout:      cfg.Notification.TransportTimeout,
	}, logger)

	// Initialize dispatch service
	svc := notification.New(dbConn, factory, logger, cfg)
	var wg sync.WaitGroup
	svc.Start(&wg)

	// Start Kafka consumer
	consumer := kafka.NewConsumer(cfg, svc)
	consumer.Start(&wg)

	// Start API server
	r := api.NewRouter(dbConn, logger, cfg, svc)
	go func() {
		logger.Infof("API started on %s", cfg.API.Port)
		if err := r.Run(cfg.API.Port); err != nil {
			logger.Errorf("API run failed: %v", err)
		}
	}()

	// Handle graceful shutdown
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	<-c
	logger.Info("Shutting down...")
	consumer.Close()
	svc.Stop()
	wg.Wait()
	logger.Info("Service stopped")
}

// Package notification runs the dispatch service: it consumes mesa tasks
// from a bounded queue, applies each professor's channel preferences, and
// invokes the per-channel notifiers through the factory.
package notification

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"mesa-notification-service/internal/config"
	"mesa-notification-service/internal/models"
	"mesa-notification-service/internal/notify"
)

// Store is the persistence the dispatch service needs: preference lookup and
// history recording. *db.DB satisfies it.
type Store interface {
	GetNotificationConfig(ctx context.Context, professorID string) (models.NotificationConfig, error)
	CreateNotification(ctx context.Context, n models.Notification) error
}

// ChannelFactory builds the notifier for a channel. *notify.Factory
// satisfies it.
type ChannelFactory interface {
	Create(channel notify.Channel, payload models.NotificationPayload) (notify.Notifier, error)
}

// Service processes MesaTasks and dispatches notifications per professor
// preference.
type Service struct {
	store   Store
	factory ChannelFactory
	logger  *logrus.Logger
	config  config.Config
	tasks   chan models.MesaTask
	ctx     context.Context
	cancel  context.CancelFunc
	wg      *sync.WaitGroup
	ws      *WSManager
	now     func() time.Time
}

// New constructs the dispatch Service.
func New(store Store, factory ChannelFactory, logger *logrus.Logger, cfg config.Config) *Service {
	ctx, cancel := context.WithCancel(context.Background())
	return &Service{
		store:   store,
		factory: factory,
		logger:  logger,
		config:  cfg,
		tasks:   make(chan models.MesaTask, cfg.Notification.QueueSize),
		ctx:     ctx,
		cancel:  cancel,
		ws:      NewWSManager(logger),
		now:     time.Now,
	}
}

// Logger exposes the Service's logger to the Kafka consumer.
func (s *Service) Logger() *logrus.Logger {
	return s.logger
}

// WS exposes the websocket manager to the API layer.
func (s *Service) WS() *WSManager {
	return s.ws
}

// Start launches the worker pool.
func (s *Service) Start(wg *sync.WaitGroup) {
	s.wg = wg
	for i := 0; i < s.config.Notification.MaxWorkers; i++ {
		s.wg.Add(1)
		go s.worker(i)
	}
}

// Stop cancels the workers; Start's WaitGroup reports when they are done.
func (s *Service) Stop() {
	s.cancel()
}

// QueueTask enqueues a MesaTask for processing. A full queue drops the task;
// delivery here is best-effort, not durable.
func (s *Service) QueueTask(task models.MesaTask) {
	select {
	case s.tasks <- task:
		s.logger.Infof("Queued task: request_id=%s mesa_id=%s", task.RequestID, task.MesaID)
	default:
		s.logger.Errorf("Queue full, dropping task: request_id=%s", task.RequestID)
	}
}

// worker processes MesaTasks until context is cancelled.
func (s *Service) worker(id int) {
	defer s.wg.Done()
	for {
		select {
		case <-s.ctx.Done():
			s.logger.Infof("Worker %d stopped", id)
			return
		case task := <-s.tasks:
			s.handleTask(task)
		}
	}
}

// handleTask notifies every professor assigned to the mesa over each channel
// their preferences enable.
func (s *Service) handleTask(task models.MesaTask) {
	for _, prof := range task.Professors {
		cfg, err := s.store.GetNotificationConfig(s.ctx, prof.ID)
		if err != nil {
			s.logger.Errorf("Failed to load notification config for professor %s: %v", prof.ID, err)
			continue
		}

		if !s.withinNoticeWindow(cfg, task.ExamDate) {
			s.logger.Debugf("Professor %s skipped: exam on %s is outside the %d-day notice window",
				prof.ID, task.ExamDate.Format("2006-01-02"), cfg.AdvanceNoticeDays)
			continue
		}

		payload := models.NotificationPayload{
			Title: task.Subject,
			Body:  task.Body,
			Metadata: map[string]interface{}{
				"mesaId":   task.MesaID,
				"url":      task.URL,
				"examDate": task.ExamDate.Format(time.RFC3339),
			},
		}

		if cfg.WebPushEnabled {
			p := payload
			p.Recipient = prof.ID
			s.dispatch(notify.ChannelPush, p, prof.ID, task)
		}
		if cfg.EmailEnabled {
			if prof.Email == "" {
				s.logger.Warnf("Professor %s has email enabled but no address on file, skipping", prof.ID)
			} else {
				p := payload
				p.Recipient = prof.Email
				s.dispatch(notify.ChannelEmail, p, prof.ID, task)
			}
		}
		if cfg.SMSEnabled {
			if prof.Phone == "" {
				s.logger.Warnf("Professor %s has WhatsApp enabled but no phone on file, skipping", prof.ID)
			} else {
				p := payload
				p.Recipient = prof.Phone
				s.dispatch(notify.ChannelWhatsApp, p, prof.ID, task)
			}
		}

		s.ws.SendToProfessor(prof.ID, []byte("Nueva mesa asignada: "+task.Subject))
	}
}

// withinNoticeWindow reports whether the exam date falls inside the
// professor's advance-notice window. A zero window means notify always.
func (s *Service) withinNoticeWindow(cfg models.NotificationConfig, examDate time.Time) bool {
	if cfg.AdvanceNoticeDays <= 0 || examDate.IsZero() {
		return true
	}
	cutoff := s.now().AddDate(0, 0, cfg.AdvanceNoticeDays)
	return !examDate.After(cutoff)
}

// dispatch sends payload over one channel and records the attempt. Notifier
// errors only reflect caller bugs (the factory rejecting a tag); delivery
// failures are swallowed inside Send and the attempt is recorded as sent.
func (s *Service) dispatch(channel notify.Channel, payload models.NotificationPayload, professorID string, task models.MesaTask) {
	status := "sent"
	errText := ""

	notifier, err := s.factory.Create(channel, payload)
	if err != nil {
		s.logger.Errorf("Factory rejected channel %s for professor %s: %v", channel, professorID, err)
		status, errText = "failed", err.Error()
	} else if err := notifier.Send(s.ctx); err != nil {
		s.logger.Errorf("Dispatch via %s failed for professor %s: %v", channel, professorID, err)
		status, errText = "failed", err.Error()
	}

	record := models.Notification{
		ID:          uuid.New(),
		RequestID:   task.RequestID,
		MesaID:      task.MesaID,
		ProfessorID: professorID,
		Channel:     string(channel),
		Subject:     task.Subject,
		Body:        task.Body,
		Status:      status,
		Error:       errText,
	}
	if err := s.store.CreateNotification(s.ctx, record); err != nil {
		s.logger.Errorf("CreateNotification failed: %v", err)
	}

	s.logger.Infof("Dispatched %s via %s for professor %s (request_id=%s)", status, channel, professorID, task.RequestID)
}

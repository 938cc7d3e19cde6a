package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	"github.com/sirupsen/logrus"

	"mesa-notification-service/internal/config"
	"mesa-notification-service/internal/models"
	"mesa-notification-service/internal/notification"
)

// mesaEvent is the wire format produced when a mesa de examen is created or
// a professor assignment changes.
type mesaEvent struct {
	MesaID     string `json:"mesa_id"`
	Subject    string `json:"subject"`
	Body       string `json:"body"`
	ExamDate   string `json:"exam_date"`
	URL        string `json:"url"`
	Professors []struct {
		ID    string `json:"id"`
		Email string `json:"email"`
		Phone string `json:"phone"`
	} `json:"professors"`
}

type Consumer struct {
	reader *kafka.Reader
	svc    *notification.Service
	logger *logrus.Logger
	ctx    context.Context
	cancel context.CancelFunc
}

func NewConsumer(cfg config.Config, svc *notification.Service) *Consumer {
	ctx, cancel := context.WithCancel(context.Background())
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers: []string{cfg.Kafka.Broker},
		Topic:   cfg.Kafka.Topic,
		GroupID: cfg.Kafka.GroupID,
	})
	return &Consumer{reader: reader, svc: svc, logger: svc.Logger(), ctx: ctx, cancel: cancel}
}

func (c *Consumer) Start(wg *sync.WaitGroup) {
	wg.Add(1)
	go func() {
		defer wg.Done()
		c.logger.Info("Kafka consumer started")
		for {
			msg, err := c.reader.ReadMessage(c.ctx)
			if err != nil {
				if c.ctx.Err() != nil {
					return
				}
				c.logger.Errorf("Read message failed: %v", err)
				continue
			}

			task, err := parseMesaEvent(msg.Value)
			if err != nil {
				c.logger.Errorf("Invalid mesa event at offset %d: %v", msg.Offset, err)
				continue
			}

			c.svc.QueueTask(task)
			c.logger.Infof("Processed Kafka message: mesa_id=%s request_id=%s", task.MesaID, task.RequestID)
		}
	}()
}

func (c *Consumer) Close() {
	c.cancel()
	if err := c.reader.Close(); err != nil {
		c.logger.Errorf("Kafka reader close failed: %v", err)
	}
}

// parseMesaEvent validates a raw event and converts it to a MesaTask.
func parseMesaEvent(raw []byte) (models.MesaTask, error) {
	var ev mesaEvent
	if err := json.Unmarshal(raw, &ev); err != nil {
		return models.MesaTask{}, fmt.Errorf("unmarshal failed: %w", err)
	}

	if ev.MesaID == "" {
		return models.MesaTask{}, fmt.Errorf("missing mesa_id")
	}
	if ev.Subject == "" {
		return models.MesaTask{}, fmt.Errorf("missing subject for mesa %s", ev.MesaID)
	}
	if len(ev.Professors) == 0 {
		return models.MesaTask{}, fmt.Errorf("no professors on mesa %s", ev.MesaID)
	}

	var examDate time.Time
	if ev.ExamDate != "" {
		parsed, err := time.Parse(time.RFC3339, ev.ExamDate)
		if err != nil {
			return models.MesaTask{}, fmt.Errorf("invalid exam_date %q for mesa %s: %w", ev.ExamDate, ev.MesaID, err)
		}
		examDate = parsed
	}

	task := models.MesaTask{
		RequestID: uuid.NewString(),
		MesaID:    ev.MesaID,
		Subject:   ev.Subject,
		Body:      ev.Body,
		ExamDate:  examDate,
		URL:       ev.URL,
	}
	for _, p := range ev.Professors {
		if p.ID == "" {
			return models.MesaTask{}, fmt.Errorf("professor without id on mesa %s", ev.MesaID)
		}
		task.Professors = append(task.Professors, models.ProfessorContact{
			ID:    p.ID,
			Email: p.Email,
			Phone: p.Phone,
		})
	}
	return task, nil
}

package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"mesa-notification-service/internal/db"
	"mesa-notification-service/internal/models"
)

type Handler struct {
	db     *db.DB
	logger *logrus.Logger
}

func NewHandler(db *db.DB, logger *logrus.Logger) *Handler {
	return &Handler{db: db, logger: logger}
}

// RegisterSubscription stores (or refreshes) the push subscription a browser
// posts after PushManager.subscribe.
func (h *Handler) RegisterSubscription(c *gin.Context) {
	var body models.SubscriptionCreate
	if err := c.ShouldBindJSON(&body); err != nil {
		h.logger.Errorf("Invalid subscription body: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	sub, err := h.db.SaveSubscription(c.Request.Context(), models.PushSubscription{
		OwnerID:  body.ProfessorID,
		Endpoint: body.Endpoint,
		P256dh:   body.Keys.P256dh,
		Auth:     body.Keys.Auth,
	})
	if err != nil {
		h.logger.Errorf("Failed to save subscription: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save subscription"})
		return
	}

	h.logger.Infof("Registered subscription %s for professor %s", sub.ID, sub.OwnerID)
	c.JSON(http.StatusCreated, sub)
}

func (h *Handler) GetSubscriptionsByProfessor(c *gin.Context) {
	professorID := c.Param("professor_id")
	subs, err := h.db.GetSubscriptionsByOwner(c.Request.Context(), professorID)
	if err != nil {
		h.logger.Errorf("Failed to get subscriptions for professor %s: %v", professorID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get subscriptions"})
		return
	}
	c.JSON(http.StatusOK, subs)
}

func (h *Handler) DeleteSubscription(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid subscription id"})
		return
	}

	if err := h.db.DeleteSubscriptionByID(c.Request.Context(), id); err != nil {
		h.logger.Errorf("Failed to delete subscription %s: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete subscription"})
		return
	}

	h.logger.Infof("Deleted subscription %s", id)
	c.Status(http.StatusNoContent)
}

func (h *Handler) GetNotificationConfig(c *gin.Context) {
	professorID := c.Param("professor_id")
	cfg, err := h.db.GetNotificationConfig(c.Request.Context(), professorID)
	if err != nil {
		h.logger.Errorf("Failed to get notification config for %s: %v", professorID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get notification config"})
		return
	}
	c.JSON(http.StatusOK, cfg)
}

func (h *Handler) UpdateNotificationConfig(c *gin.Context) {
	professorID := c.Param("professor_id")

	var body models.NotificationConfigUpdate
	if err := c.ShouldBindJSON(&body); err != nil {
		h.logger.Errorf("Invalid notification config body: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	cfg, err := h.db.GetNotificationConfig(c.Request.Context(), professorID)
	if err != nil {
		h.logger.Errorf("Failed to load notification config for %s: %v", professorID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load notification config"})
		return
	}

	if body.WebPushEnabled != nil {
		cfg.WebPushEnabled = *body.WebPushEnabled
	}
	if body.EmailEnabled != nil {
		cfg.EmailEnabled = *body.EmailEnabled
	}
	if body.SMSEnabled != nil {
		cfg.SMSEnabled = *body.SMSEnabled
	}
	if body.AdvanceNoticeDays != nil {
		cfg.AdvanceNoticeDays = *body.AdvanceNoticeDays
	}

	if err := h.db.UpsertNotificationConfig(c.Request.Context(), cfg); err != nil {
		h.logger.Errorf("Failed to update notification config for %s: %v", professorID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update notification config"})
		return
	}

	h.logger.Infof("Updated notification config for professor %s", professorID)
	c.JSON(http.StatusOK, cfg)
}

func (h *Handler) GetNotificationsByProfessor(c *gin.Context) {
	professorID := c.Param("professor_id")
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	notifications, err := h.db.GetNotificationsByProfessor(c.Request.Context(), professorID, limit)
	if err != nil {
		h.logger.Errorf("Failed to get notifications for professor %s: %v", professorID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get notifications"})
		return
	}

	h.logger.Infof("Retrieved %d notifications for professor %s", len(notifications), professorID)
	c.JSON(http.StatusOK, notifications)
}

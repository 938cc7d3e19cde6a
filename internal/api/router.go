package api

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"mesa-notification-service/internal/config"
	"mesa-notification-service/internal/db"
	"mesa-notification-service/internal/notification"
)

func NewRouter(db *db.DB, logger *logrus.Logger, cfg config.Config, svc *notification.Service) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(RequestLoggingMiddleware(logger))

	h := NewHandler(db, logger)
	api := r.Group(cfg.API.BasePath)
	{
		// Push subscriptions
		api.POST("/subscriptions", h.RegisterSubscription)
		api.GET("/subscriptions/professor/:professor_id", h.GetSubscriptionsByProfessor)
		api.DELETE("/subscriptions/:id", h.DeleteSubscription)

		// Notification preferences
		api.GET("/notification-configs/:professor_id", h.GetNotificationConfig)
		api.PUT("/notification-configs/:professor_id", h.UpdateNotificationConfig)

		// History
		api.GET("/notifications/professor/:professor_id", h.GetNotificationsByProfessor)

		// Live mirror
		api.GET("/ws/:professor_id", WSHandler(svc, logger))
	}
	return r
}

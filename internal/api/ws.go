package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"mesa-notification-service/internal/notification"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// WSHandler upgrades the connection and registers it with the dispatch
// service so notifications for the professor are mirrored to open tabs.
func WSHandler(svc *notification.Service, logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		professorID := c.Param("professor_id")
		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			logger.Errorf("WebSocket upgrade failed for professor %s: %v", professorID, err)
			return
		}

		svc.WS().AddConnection(professorID, conn)

		// Hold the connection open until the client goes away.
		go func() {
			defer func() {
				svc.WS().RemoveConnection(professorID, conn)
				conn.Close()
			}()
			for {
				if _, _, err := conn.ReadMessage(); err != nil {
					return
				}
			}
		}()
	}
}

package notification

import (
	"sync"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

// WSManager tracks live browser connections per professor so dispatched
// notifications can be mirrored to open tabs.
type WSManager struct {
	connections map[string]map[*websocket.Conn]bool
	mutex       sync.Mutex
	logger      *logrus.Logger
}

func NewWSManager(logger *logrus.Logger) *WSManager {
	return &WSManager{
		connections: make(map[string]map[*websocket.Conn]bool),
		logger:      logger,
	}
}

// AddConnection registers a websocket connection for a professor. At most 10
// connections are kept per professor.
func (m *WSManager) AddConnection(professorID string, conn *websocket.Conn) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	if _, exists := m.connections[professorID]; !exists {
		m.connections[professorID] = make(map[*websocket.Conn]bool)
	}
	if len(m.connections[professorID]) >= 10 {
		m.logger.Warnf("Max connections reached for professor %s", professorID)
		return
	}
	m.connections[professorID][conn] = true
	m.logger.Infof("Added WebSocket connection for professor %s (total: %d)", professorID, len(m.connections[professorID]))
}

// RemoveConnection drops a websocket connection for a professor.
func (m *WSManager) RemoveConnection(professorID string, conn *websocket.Conn) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	if conns, exists := m.connections[professorID]; exists {
		delete(conns, conn)
		if len(conns) == 0 {
			delete(m.connections, professorID)
		}
		m.logger.Infof("Removed WebSocket connection for professor %s (remaining: %d)", professorID, len(conns))
	}
}

// SendToProfessor writes message to every open connection of a professor.
// Connections that fail the write are dropped.
func (m *WSManager) SendToProfessor(professorID string, message []byte) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	conns, exists := m.connections[professorID]
	if !exists {
		return
	}
	for conn := range conns {
		if err := conn.WriteMessage(websocket.TextMessage, message); err != nil {
			m.logger.Errorf("Failed to send WebSocket message to professor %s: %v", professorID, err)
			delete(conns, conn)
		}
	}
	if len(conns) == 0 {
		delete(m.connections, professorID)
	}
}

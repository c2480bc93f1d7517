package handlers

import (
	"net/http"
	"sync"

	"launchcontrol/pkg/config"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Origin policy is enforced by the CORS middleware in front
	CheckOrigin: func(r *http.Request) bool { return true },
}

// eventHub fans queue messages out to connected websocket clients.
type eventHub struct {
	mu      sync.Mutex
	clients map[*websocket.Conn]bool
}

var hub = &eventHub{clients: make(map[*websocket.Conn]bool)}

func (h *eventHub) add(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[conn] = true
}

func (h *eventHub) remove(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.clients, conn)
	conn.Close()
}

func (h *eventHub) broadcast(msg []byte) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for conn := range h.clients {
		if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			log.Debugf("Dropping slow event client: %v", err)
			delete(h.clients, conn)
			conn.Close()
		}
	}
}

// StartEventBridge consumes the presale event queue and feeds the websocket
// hub. Call it once after RabbitMQ is initialized.
func StartEventBridge(queueName string) error {
	consumer, err := config.NewConsumer(queueName)
	if err != nil {
		return err
	}
	go func() {
		err := consumer.Consume(func(msg []byte) error {
			hub.broadcast(msg)
			return nil
		})
		if err != nil {
			log.Errorf("Event bridge stopped: %v", err)
		}
	}()
	log.Infof("Event bridge consuming queue %s", queueName)
	return nil
}

// StreamEvents upgrades the connection and streams presale events
func StreamEvents(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Warnf("Websocket upgrade failed: %v", err)
		return
	}
	hub.add(conn)

	// Reader loop exists only to notice the client going away
	go func() {
		defer hub.remove(conn)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}

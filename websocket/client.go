package websocket

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"bizlink/logger"
	"bizlink/utils"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 64 * 1024
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type Client struct {
	ID      string
	UserID  string
	gateway *Gateway
	conn    *websocket.Conn
	send    chan []byte
}

func (c *Client) readPump() {
	defer func() {
		c.gateway.hub.Leave(c)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				logger.Warn("websocket read error", "clientId", c.ID, "error", err)
			}
			break
		}

		c.handleMessage(message)
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			w, err := c.conn.NextWriter(websocket.TextMessage)
			if err != nil {
				return
			}
			w.Write(message)

			if err := w.Close(); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// handleMessage dispatches one inbound event. Each event gets its own
// context; a later disconnect does not cancel an in-flight send.
func (c *Client) handleMessage(message []byte) {
	var event ClientEvent
	if err := json.Unmarshal(message, &event); err != nil {
		return
	}

	ctx := context.Background()

	switch event.Action {
	case "ping":
		c.sendPong()
	case "join_room":
		c.gateway.handleJoin(ctx, c, event.Data)
	case "typing":
		c.gateway.handleTyping(c, event.Data)
	case "send_message":
		c.gateway.handleSendMessage(ctx, c, event.Data)
	}
}

func (c *Client) sendPong() {
	if data, err := marshalEvent("pong", nil); err == nil {
		c.enqueue(data)
	}
}

func (c *Client) enqueue(data []byte) {
	select {
	case c.send <- data:
	default:
		logger.Warn("dropping event for slow connection", "clientId", c.ID)
	}
}

// HandleWebSocket upgrades the connection. The connection joins no room
// until it sends a join_room action.
func (g *Gateway) HandleWebSocket(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "missing token"})
		return
	}

	claims, err := utils.ParseToken(token)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "invalid token"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logger.Warn("websocket upgrade error", "error", err)
		return
	}

	client := &Client{
		ID:      uuid.New().String(),
		UserID:  claims.UserID,
		gateway: g,
		conn:    conn,
		send:    make(chan []byte, 256),
	}

	go client.writePump()
	go client.readPump()
}

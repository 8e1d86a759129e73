package websocket

import (
	"sync"
	"time"

	"peerchat/pkg/logger"

	"github.com/gorilla/websocket"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = 54 * time.Second
)

// Client owns one duplex transport for its lifetime. The connection is never
// shared: the read pump is the only reader and the write pump the only
// writer. Outbound frames go through the buffered send channel so that
// registry broadcasts never block on a slow socket.
type Client struct {
	conn   *websocket.Conn
	send   chan []byte
	userID int

	mu     sync.Mutex
	closed bool
}

func NewClient(conn *websocket.Conn, userID int, sendBuffer int) *Client {
	return &Client{
		conn:   conn,
		send:   make(chan []byte, sendBuffer),
		userID: userID,
	}
}

func (c *Client) UserID() int {
	return c.userID
}

// trySend enqueues a frame without blocking. False means the connection is
// already closed or its buffer is full; the registry treats a full buffer as
// a dead connection.
func (c *Client) trySend(data []byte) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return false
	}
	select {
	case c.send <- data:
		return true
	default:
		return false
	}
}

// closeSend releases the write pump. Safe to call from multiple goroutines
// and safe against concurrent trySend; only the first call closes the
// channel.
func (c *Client) closeSend() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.closed {
		c.closed = true
		close(c.send)
	}
}

// Closed reports whether the send channel has been closed. A closed but
// still-connected client was evicted by the registry; its disconnect handler
// uses this to claim the offline presence transition that the ownership
// check in Unregister would otherwise skip.
func (c *Client) Closed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}

// ReadPump processes inbound frames in receipt order. handle is invoked for
// every frame; done runs exactly once when the transport closes, however the
// close is detected.
func (c *Client) ReadPump(handle func(frame []byte), done func()) {
	defer func() {
		done()
		c.closeSend()
		c.conn.Close()
	}()

	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, frame, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				logger.Error("WebSocket error for user %d: %v", c.userID, err)
			}
			break
		}

		handle(frame)
	}
}

func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				logger.Error("Write error for user %d: %v", c.userID, err)
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

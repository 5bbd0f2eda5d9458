package websocket

import (
	"time"

	"github.com/gorilla/websocket"
	"github.com/ikkim/landing-studio/pkg/logger"
)

const (
	writeWait = 10 * time.Second

	// A dashboard that misses pongs for this long is dropped.
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10

	// Dashboards only send small ping frames.
	maxMessageSize = 4 * 1024

	maxMessagesPerSecond = 10
)

// Conn is the socket of one metrics dashboard.
type Conn struct {
	*websocket.Conn
}

// ReadPump consumes dashboard messages until the socket fails, then removes
// the client from its site.
func (c *Client) ReadPump() {
	defer func() {
		c.Hub.Unregister(c)
		c.Conn.Close()
	}()

	c.Conn.SetReadLimit(maxMessageSize)
	c.extendReadDeadline()
	c.Conn.SetPongHandler(func(string) error {
		c.extendReadDeadline()
		return nil
	})

	for {
		_, message, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				logger.Warn("Metrics dashboard disconnected", map[string]interface{}{
					"site_id": c.SiteID,
					"user_id": c.UserID,
					"error":   err.Error(),
				})
			}
			return
		}
		c.Hub.HandleClientMessage(c, message)
	}
}

// WritePump delivers queued metric events and pings the dashboard. It returns
// when the hub closes Send or a write fails.
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.Send:
			if !ok {
				c.write(websocket.CloseMessage, nil)
				return
			}
			if err := c.flush(message); err != nil {
				logger.Warn("Dropping metrics dashboard", map[string]interface{}{
					"site_id": c.SiteID,
					"error":   err.Error(),
				})
				return
			}
		case <-ticker.C:
			if err := c.write(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// flush writes first and whatever else is already queued, one frame each.
func (c *Client) flush(first []byte) error {
	if err := c.write(websocket.TextMessage, first); err != nil {
		return err
	}
	for pending := len(c.Send); pending > 0; pending-- {
		if err := c.write(websocket.TextMessage, <-c.Send); err != nil {
			return err
		}
	}
	return nil
}

func (c *Client) write(messageType int, data []byte) error {
	c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
	return c.Conn.WriteMessage(messageType, data)
}

func (c *Client) extendReadDeadline() {
	c.Conn.SetReadDeadline(time.Now().Add(pongWait))
}

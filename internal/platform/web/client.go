package web

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"
)

const (
	writeWait         = 10 * time.Second
	pongWait          = 60 * time.Second
	pingPeriod        = (pongWait * 9) / 10
	maxMessageSize    = 1024
	sendBufSize       = 64
	maxMessagesPerSec = 50
)

var (
	errClientGone  = errors.New("web: client disconnected")
	errRateLimited = errors.New("web: rate limit exceeded")
)

// frame is one outgoing websocket message.
type frame struct {
	binary bool
	data   []byte
}

// event is a control message stamped with its arrival time.
type event struct {
	kind string
	at   time.Time
}

// Client is one WebSocket connection.
type Client struct {
	conn   *websocket.Conn
	send   chan frame
	remote string
	log    *log.Logger
	now    func() time.Time

	msgCount   int
	msgResetAt time.Time
}

// NewClient creates a Client for an upgraded connection.
func NewClient(conn *websocket.Conn, remote string, logger *log.Logger) *Client {
	return &Client{
		conn:   conn,
		send:   make(chan frame, sendBufSize),
		remote: remote,
		log:    logger,
		now:    time.Now,
	}
}

// ReadPump decodes control envelopes into events until the connection fails.
func (c *Client) ReadPump(ctx context.Context, events chan<- event) error {
	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.log.Warn("websocket read failed", "remote", c.remote, "err", err)
			}
			return errClientGone
		}
		at := c.now()

		// Rate limiting
		if at.After(c.msgResetAt) {
			c.msgCount = 0
			c.msgResetAt = at.Add(time.Second)
		}
		c.msgCount++
		if c.msgCount > maxMessagesPerSec {
			c.log.Warn("rate limit exceeded, disconnecting", "remote", c.remote)
			return errRateLimited
		}

		var env InEnvelope
		if err := json.Unmarshal(message, &env); err != nil {
			c.SendJSON(Envelope{T: MsgError, Data: ErrorMsg{Msg: "malformed message"}})
			continue
		}
		switch env.T {
		case MsgStart, MsgTap, MsgExit:
		default:
			c.SendJSON(Envelope{T: MsgError, Data: ErrorMsg{Msg: fmt.Sprintf("unknown message type %q", env.T)}})
			continue
		}

		select {
		case events <- event{kind: env.T, at: at}:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// WritePump writes queued frames and keeps the connection alive with pings.
func (c *Client) WritePump(ctx context.Context) error {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			c.conn.WriteMessage(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
			return ctx.Err()

		case f := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			msgType := websocket.TextMessage
			if f.binary {
				msgType = websocket.BinaryMessage
			}
			if err := c.conn.WriteMessage(msgType, f.data); err != nil {
				return errClientGone
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return errClientGone
			}
		}
	}
}

// SendJSON queues a JSON message.
func (c *Client) SendJSON(msg Envelope) {
	data, err := json.Marshal(msg)
	if err != nil {
		c.log.Error("marshal failed", "type", msg.T, "err", err)
		return
	}
	c.queue(frame{data: data})
}

// SendBinary queues a binary message.
func (c *Client) SendBinary(data []byte) {
	c.queue(frame{binary: true, data: data})
}

func (c *Client) queue(f frame) {
	select {
	case c.send <- f:
	default:
		// Client too slow, drop frame
	}
}

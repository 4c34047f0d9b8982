package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/lox/solverview/internal/session"
)

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer
	maxMessageSize = 8192

	// Replies queued for a slow client before it is dropped
	sendBuffer = 64
)

// ErrConnectionClosed is returned when sending on a closed connection.
var ErrConnectionClosed = errors.New("connection closed")

// Connection is one websocket client navigating a session.
type Connection struct {
	conn      *websocket.Conn
	store     *session.Store
	sessionID string
	send      chan *Response
	logger    zerolog.Logger
	ctx       context.Context
	cancel    context.CancelFunc
	closeOnce sync.Once
}

// NewConnection wraps an upgraded websocket bound to one session. The
// session is looked up again for every request, so a deleted session stops
// answering straight away.
func NewConnection(conn *websocket.Conn, store *session.Store, sessionID string, logger zerolog.Logger) *Connection {
	ctx, cancel := context.WithCancel(context.Background())
	return &Connection{
		conn:      conn,
		store:     store,
		sessionID: sessionID,
		send:      make(chan *Response, sendBuffer),
		logger:    logger.With().Str("component", "conn").Str("session_id", sessionID).Logger(),
		ctx:       ctx,
		cancel:    cancel,
	}
}

// Start begins handling the connection.
func (c *Connection) Start() {
	go c.writePump()
	go c.readPump()
}

// Done is closed once the connection has shut down.
func (c *Connection) Done() <-chan struct{} {
	return c.ctx.Done()
}

// Close shuts the connection down.
func (c *Connection) Close() error {
	var err error
	c.closeOnce.Do(func() {
		c.cancel()
		err = c.conn.Close()
	})
	return err
}

// Send queues a response for the client.
func (c *Connection) Send(resp *Response) error {
	select {
	case <-c.ctx.Done():
		return ErrConnectionClosed
	default:
	}

	select {
	case c.send <- resp:
		return nil
	case <-c.ctx.Done():
		return ErrConnectionClosed
	default:
		c.logger.Warn().Msg("Connection send buffer full, closing connection")
		_ = c.Close() // Ignore close errors
		return ErrConnectionClosed
	}
}

func (c *Connection) readPump() {
	defer func() { _ = c.Close() }() // Ignore close errors during cleanup

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure, websocket.CloseAbnormalClosure) {
				c.logger.Error().Err(err).Msg("WebSocket error")
			}
			return
		}

		var req Request
		if err := json.Unmarshal(data, &req); err != nil {
			_ = c.Send(&Response{Error: "invalid request: " + err.Error(), Status: http.StatusBadRequest})
			continue
		}
		if err := c.Send(c.handle(&req)); err != nil {
			return
		}
	}
}

func (c *Connection) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.Close() // Ignore close errors during cleanup
	}()

	for {
		select {
		case resp := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteJSON(resp); err != nil {
				c.logger.Error().Err(err).Msg("Failed to write message")
				return
			}

		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}

		case <-c.ctx.Done():
			_ = c.conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
				time.Now().Add(writeWait))
			return
		}
	}
}

// handle answers one request.
func (c *Connection) handle(req *Request) *Response {
	c.logger.Debug().Str("op", string(req.Op)).Str("path", req.Path).Msg("Received request")

	resp := &Response{ID: req.ID, Op: req.Op}
	data, err := c.answer(req)
	if err != nil {
		resp.Error = errorMessage(err)
		resp.Status = statusFor(err)
		return resp
	}
	resp.Data = data
	return resp
}

func (c *Connection) answer(req *Request) (json.RawMessage, error) {
	sess, err := c.store.Get(c.sessionID)
	if err != nil {
		return nil, err
	}
	result, err := query(sess, req.Op, req.Path, req.Hand)
	if err != nil {
		return nil, err
	}
	return json.Marshal(result)
}

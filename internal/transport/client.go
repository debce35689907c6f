// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package transport

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/MKhiriev/submitty-sidebar/internal/bridge"
	"github.com/MKhiriev/submitty-sidebar/internal/logger"
)

// Client is the UI side of the bridge transport.
type Client struct {
	conn   *websocket.Conn
	logger *logger.Logger

	writeMu sync.Mutex

	in        chan []byte
	closed    chan struct{}
	closeOnce sync.Once
}

// Dial connects to the host endpoint at wsURL.
func Dial(ctx context.Context, wsURL string, log *logger.Logger) (*Client, error) {
	conn, resp, err := websocket.DefaultDialer.DialContext(ctx, wsURL, nil)
	if resp != nil && resp.Body != nil {
		_ = resp.Body.Close()
	}
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", wsURL, err)
	}
	conn.SetReadLimit(readLimit)

	c := &Client{
		conn:   conn,
		logger: log,
		in:     make(chan []byte, inboxSize),
		closed: make(chan struct{}),
	}
	go c.readLoop()

	return c, nil
}

// Dialer returns a bridge.Acquirer that dials wsURL.
func Dialer(wsURL string, log *logger.Logger) bridge.Acquirer {
	return func(ctx context.Context) (bridge.Transport, error) {
		c, err := Dial(ctx, wsURL, log)
		if err != nil {
			return nil, err
		}
		return c, nil
	}
}

func (c *Client) Send(ctx context.Context, frame []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	select {
	case <-c.closed:
		return ErrClosed
	default:
	}

	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return c.conn.WriteMessage(websocket.TextMessage, frame)
}

// Receive returns inbound frames. The channel is closed when the connection
// ends.
func (c *Client) Receive() <-chan []byte { return c.in }

// Done is closed once the client is closed or the host went away.
func (c *Client) Done() <-chan struct{} { return c.closed }

func (c *Client) Close() error {
	var err error
	c.closeOnce.Do(func() {
		close(c.closed)

		c.writeMu.Lock()
		_ = c.conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
			time.Now().Add(closeGrace))
		c.writeMu.Unlock()

		err = c.conn.Close()
	})
	return err
}

func (c *Client) readLoop() {
	defer close(c.in)
	defer func() {
		c.closeOnce.Do(func() {
			close(c.closed)
			_ = c.conn.Close()
		})
	}()

	for {
		kind, payload, err := c.conn.ReadMessage()
		if err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				c.logger.Debug().Err(err).Msg("websocket read ended")
			}
			return
		}
		if kind != websocket.TextMessage {
			continue
		}

		select {
		case c.in <- payload:
		case <-c.closed:
			return
		}
	}
}

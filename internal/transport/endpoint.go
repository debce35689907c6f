// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package transport

import (
	"context"
	"net/http"
	"net/url"
	"slices"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/MKhiriev/submitty-sidebar/internal/bridge"
	"github.com/MKhiriev/submitty-sidebar/internal/logger"
)

const (
	writeWait  = 10 * time.Second
	inboxSize  = 64
	readLimit  = 1 << 20
	closeGrace = time.Second
)

// EndpointOption configures an Endpoint.
type EndpointOption func(*Endpoint)

// WithAllowedOrigins accepts browser connections from the given origins in
// addition to the host's own origin.
func WithAllowedOrigins(origins ...string) EndpointOption {
	return func(e *Endpoint) {
		e.allowedOrigins = append(e.allowedOrigins, origins...)
	}
}

// Endpoint is the host side of the bridge transport. Only one UI connection
// is live at a time; a new connection replaces the previous one.
type Endpoint struct {
	upgrader       websocket.Upgrader
	allowedOrigins []string
	logger         *logger.Logger

	connMu sync.RWMutex
	conn   *websocket.Conn

	writeMu sync.Mutex

	in            chan []byte
	connected     chan struct{}
	connectedOnce sync.Once
	closed        chan struct{}
	closeOnce     sync.Once
}

func NewEndpoint(log *logger.Logger, opts ...EndpointOption) *Endpoint {
	e := &Endpoint{
		logger:    log,
		in:        make(chan []byte, inboxSize),
		connected: make(chan struct{}),
		closed:    make(chan struct{}),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.upgrader = websocket.Upgrader{CheckOrigin: e.checkOrigin}
	return e
}

// Acquire waits for the first UI connection. It satisfies bridge.Acquirer.
func (e *Endpoint) Acquire(ctx context.Context) (bridge.Transport, error) {
	select {
	case <-e.closed:
		return nil, ErrClosed
	default:
	}

	select {
	case <-e.connected:
		return e, nil
	case <-e.closed:
		return nil, ErrClosed
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Connected reports whether a UI is attached right now.
func (e *Endpoint) Connected() bool {
	return e.getConn() != nil
}

func (e *Endpoint) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	select {
	case <-e.closed:
		http.Error(w, ErrClosed.Error(), http.StatusServiceUnavailable)
		return
	default:
	}

	log := logger.FromRequest(r)
	conn, err := e.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Err(err).Msg("websocket upgrade failed")
		return
	}
	conn.SetReadLimit(readLimit)

	e.setConn(conn)
	log.Info().Str("remote", r.RemoteAddr).Msg("ui connected")

	e.readLoop(conn)

	log.Info().Str("remote", r.RemoteAddr).Msg("ui disconnected")
}

func (e *Endpoint) Send(ctx context.Context, frame []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	conn := e.getConn()
	if conn == nil {
		return ErrNotConnected
	}

	e.writeMu.Lock()
	defer e.writeMu.Unlock()

	_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
	return conn.WriteMessage(websocket.TextMessage, frame)
}

func (e *Endpoint) Receive() <-chan []byte { return e.in }

// Close drops the current connection and refuses new ones.
func (e *Endpoint) Close() error {
	e.closeOnce.Do(func() {
		close(e.closed)
	})

	e.connMu.Lock()
	conn := e.conn
	e.conn = nil
	e.connMu.Unlock()

	if conn == nil {
		return nil
	}

	e.writeMu.Lock()
	_ = conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, "host shutting down"),
		time.Now().Add(closeGrace))
	e.writeMu.Unlock()

	return conn.Close()
}

func (e *Endpoint) setConn(conn *websocket.Conn) {
	e.connMu.Lock()
	if e.conn != nil {
		_ = e.conn.Close()
	}
	e.conn = conn
	e.connMu.Unlock()

	e.connectedOnce.Do(func() { close(e.connected) })
}

func (e *Endpoint) clearConn(conn *websocket.Conn) {
	e.connMu.Lock()
	if e.conn == conn {
		e.conn = nil
	}
	e.connMu.Unlock()
}

func (e *Endpoint) getConn() *websocket.Conn {
	e.connMu.RLock()
	defer e.connMu.RUnlock()
	return e.conn
}

func (e *Endpoint) readLoop(conn *websocket.Conn) {
	defer func() {
		e.clearConn(conn)
		_ = conn.Close()
	}()

	for {
		kind, payload, err := conn.ReadMessage()
		if err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				e.logger.Debug().Err(err).Msg("websocket read ended")
			}
			return
		}
		if kind != websocket.TextMessage {
			e.logger.Warn().Int("type", kind).Msg("non-text websocket frame ignored")
			continue
		}

		select {
		case e.in <- payload:
		case <-e.closed:
			return
		}
	}
}

func (e *Endpoint) checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}

	u, err := url.Parse(origin)
	if err != nil {
		return false
	}
	if u.Host == r.Host {
		return true
	}

	return slices.Contains(e.allowedOrigins, origin)
}

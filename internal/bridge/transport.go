// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package bridge

import (
	"context"
	"sync"

	"github.com/MKhiriev/submitty-sidebar/internal/logger"
)

// Transport moves encoded frames between the two execution contexts.
type Transport interface {
	// Send delivers one frame to the peer.
	Send(ctx context.Context, frame []byte) error
	// Receive returns the channel of inbound frames. It may stay open after
	// Close; readers should also watch their own lifetime.
	Receive() <-chan []byte
	// Close releases the transport.
	Close() error
}

// Acquirer obtains the transport. The bridge calls it at most once.
type Acquirer func(ctx context.Context) (Transport, error)

// Static returns an Acquirer that hands out t.
func Static(t Transport) Acquirer {
	return func(context.Context) (Transport, error) { return t, nil }
}

// noopTransport replaces a transport that could not be acquired.
type noopTransport struct {
	logger *logger.Logger
}

func newNoopTransport(log *logger.Logger) *noopTransport {
	return &noopTransport{logger: log}
}

func (n *noopTransport) Send(_ context.Context, frame []byte) error {
	n.logger.Debug().Int("bytes", len(frame)).Msg("no-op transport: frame dropped")
	return nil
}

func (n *noopTransport) Receive() <-chan []byte { return nil }

func (n *noopTransport) Close() error { return nil }

// pipeEnd is one side of an in-memory transport pair.
type pipeEnd struct {
	in   chan []byte
	peer *pipeEnd

	closeOnce sync.Once
	closed    chan struct{}
}

// NewPipe returns two connected in-memory transports: frames sent on one are
// received on the other. Closing either end stops delivery both ways.
func NewPipe() (Transport, Transport) {
	a := &pipeEnd{in: make(chan []byte, 64), closed: make(chan struct{})}
	b := &pipeEnd{in: make(chan []byte, 64), closed: make(chan struct{})}
	a.peer, b.peer = b, a
	return a, b
}

func (p *pipeEnd) Send(ctx context.Context, frame []byte) error {
	select {
	case <-p.closed:
		return ErrTransportClosed
	case <-p.peer.closed:
		return ErrTransportClosed
	default:
	}

	cp := make([]byte, len(frame))
	copy(cp, frame)

	select {
	case p.peer.in <- cp:
		return nil
	case <-p.closed:
		return ErrTransportClosed
	case <-p.peer.closed:
		return ErrTransportClosed
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (p *pipeEnd) Receive() <-chan []byte { return p.in }

func (p *pipeEnd) Close() error {
	p.closeOnce.Do(func() { close(p.closed) })
	return nil
}

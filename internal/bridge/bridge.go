// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package bridge

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/MKhiriev/submitty-sidebar/internal/logger"
)

const (
	// DefaultRequestTimeout applies when SendRequest gets a non-positive timeout.
	DefaultRequestTimeout = 10 * time.Second
	// DefaultQueueSize bounds the outbound queue.
	DefaultQueueSize = 256
)

// State is the readiness of a bridge.
type State int

const (
	StateUninitialized State = iota
	StateAcquiring
	StateReady
)

func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateAcquiring:
		return "acquiring"
	case StateReady:
		return "ready"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// HandlerFunc handles one inbound message.
type HandlerFunc func(ctx context.Context, msg Message) error

type handlerEntry struct {
	id uint64
	fn HandlerFunc
}

type result struct {
	msg Message
	err error
}

type pendingRequest struct {
	command   string
	ch        chan result
	timer     *time.Timer
	createdAt time.Time
}

// Option configures a Bridge.
type Option func(*Bridge)

// WithRequestTimeout sets the default SendRequest timeout.
func WithRequestTimeout(d time.Duration) Option {
	return func(b *Bridge) {
		if d > 0 {
			b.requestTimeout = d
		}
	}
}

// WithQueueSize sets the capacity of the outbound queue.
func WithQueueSize(n int) Option {
	return func(b *Bridge) {
		if n > 0 {
			b.queueSize = n
		}
	}
}

// WithIDGenerator replaces the correlation id source.
func WithIDGenerator(gen func() string) Option {
	return func(b *Bridge) {
		if gen != nil {
			b.newID = gen
		}
	}
}

// Bridge is one side of the host/UI message channel.
type Bridge struct {
	acquire        Acquirer
	requestTimeout time.Duration
	queueSize      int
	newID          func() string
	logger         *logger.Logger

	stateMu   sync.Mutex
	state     State
	degraded  bool
	transport Transport
	ready     chan struct{}

	outbound chan []byte

	handlersMu    sync.RWMutex
	handlers      map[string][]handlerEntry
	nextHandlerID uint64

	pendingMu sync.Mutex
	pending   map[string]*pendingRequest

	ctx         context.Context
	cancel      context.CancelFunc
	disposeOnce sync.Once
}

// New creates a bridge that will obtain its transport through acquire.
// The bridge is not usable for requests until Acquire succeeds, but Send
// already queues.
func New(acquire Acquirer, log *logger.Logger, opts ...Option) *Bridge {
	if log == nil {
		log = logger.Nop()
	}

	b := &Bridge{
		acquire:        acquire,
		requestTimeout: DefaultRequestTimeout,
		queueSize:      DefaultQueueSize,
		newID:          uuid.NewString,
		logger:         log,
		ready:          make(chan struct{}),
		handlers:       make(map[string][]handlerEntry),
		pending:        make(map[string]*pendingRequest),
	}
	for _, opt := range opts {
		opt(b)
	}

	b.outbound = make(chan []byte, b.queueSize)
	b.ctx, b.cancel = context.WithCancel(context.Background())

	go b.writeLoop()

	return b
}

// State returns the current readiness.
func (b *Bridge) State() State {
	b.stateMu.Lock()
	defer b.stateMu.Unlock()
	return b.state
}

// Degraded reports whether the bridge runs on the no-op transport.
func (b *Bridge) Degraded() bool {
	b.stateMu.Lock()
	defer b.stateMu.Unlock()
	return b.degraded
}

// Acquire obtains the transport exactly once. Concurrent callers wait for
// the first acquisition. A failed acquisition degrades the bridge to the
// no-op transport and still reports success.
func (b *Bridge) Acquire(ctx context.Context) error {
	b.stateMu.Lock()
	if b.disposed() {
		b.stateMu.Unlock()
		return ErrChannelUnavailable
	}

	switch b.state {
	case StateReady:
		b.stateMu.Unlock()
		return nil
	case StateAcquiring:
		b.stateMu.Unlock()
		select {
		case <-b.ready:
			return nil
		case <-b.ctx.Done():
			return ErrChannelUnavailable
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	b.state = StateAcquiring
	b.stateMu.Unlock()

	var (
		t   Transport
		err error
	)
	if b.acquire != nil {
		t, err = b.acquire(ctx)
	}

	degraded := false
	if err != nil || t == nil {
		b.logger.Warn().Err(err).Msg("bridge transport unavailable, falling back to no-op transport")
		t = newNoopTransport(b.logger)
		degraded = true
	}

	b.stateMu.Lock()
	if b.disposed() {
		b.stateMu.Unlock()
		_ = t.Close()
		return ErrChannelUnavailable
	}
	b.transport = t
	b.degraded = degraded
	b.state = StateReady
	close(b.ready)
	b.stateMu.Unlock()

	go b.readLoop(t)

	if degraded {
		if n := b.rejectAll(ErrChannelUnavailable); n > 0 {
			b.logger.Debug().Int("rejected_requests", n).Msg("requests issued while acquiring rejected")
		}
	}

	b.logger.Debug().Bool("degraded", degraded).Msg("bridge ready")
	return nil
}

// Send enqueues msg for delivery. It never blocks; when the queue is full
// the message is dropped and ErrQueueFull returned.
func (b *Bridge) Send(msg Message) error {
	if b.disposed() {
		return ErrChannelUnavailable
	}

	frame, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("encode %s: %w", msg.Command(), err)
	}

	select {
	case b.outbound <- frame:
		return nil
	default:
		b.logger.Warn().Str("command", msg.Command()).Int("queue_size", b.queueSize).
			Msg("bridge outbound queue full, message dropped")
		return ErrQueueFull
	}
}

// Post builds a message from command and data and sends it.
func (b *Bridge) Post(command string, data any) error {
	msg, err := NewMessage(command, data)
	if err != nil {
		return err
	}
	return b.Send(msg)
}

// SendRequest sends a correlated request and waits for its response, the
// timeout, or ctx. A non-positive timeout uses the bridge default.
func (b *Bridge) SendRequest(ctx context.Context, command string, data any, timeout time.Duration) (Message, error) {
	if b.disposed() || b.Degraded() {
		return Message{}, ErrChannelUnavailable
	}
	if timeout <= 0 {
		timeout = b.requestTimeout
	}

	id := b.newID()
	msg, err := newMessage(command, data, id, false, "")
	if err != nil {
		return Message{}, err
	}

	p := &pendingRequest{
		command:   command,
		ch:        make(chan result, 1),
		createdAt: time.Now(),
	}

	b.pendingMu.Lock()
	if _, exists := b.pending[id]; exists {
		b.pendingMu.Unlock()
		return Message{}, fmt.Errorf("%s %s: %w", command, id, ErrCorrelationConflict)
	}
	b.pending[id] = p
	p.timer = time.AfterFunc(timeout, func() { b.reject(id, ErrTimeout) })
	b.pendingMu.Unlock()

	// Acquisition may have degraded between the entry check and registration.
	if b.Degraded() {
		b.reject(id, ErrChannelUnavailable)
	} else if err = b.Send(msg); err != nil {
		b.reject(id, err)
	}

	select {
	case r := <-p.ch:
		if r.err != nil {
			return Message{}, r.err
		}
		return r.msg, nil
	case <-ctx.Done():
		b.reject(id, ctx.Err())
		return Message{}, ctx.Err()
	}
}

// Respond answers the correlated request original with data.
func (b *Bridge) Respond(original Message, data any) error {
	if original.CorrelationID() == "" {
		return fmt.Errorf("respond to %s: %w", original.Command(), ErrNotARequest)
	}

	msg, err := newMessage(original.Command(), data, original.CorrelationID(), true, "")
	if err != nil {
		return err
	}
	return b.Send(msg)
}

// RespondError answers the correlated request original with a failure.
func (b *Bridge) RespondError(original Message, cause error) error {
	if original.CorrelationID() == "" {
		return fmt.Errorf("respond to %s: %w", original.Command(), ErrNotARequest)
	}

	text := "request failed"
	if cause != nil {
		text = cause.Error()
	}

	msg, err := newMessage(original.Command(), nil, original.CorrelationID(), true, text)
	if err != nil {
		return err
	}
	return b.Send(msg)
}

// OnMessage registers fn for command. An empty command receives every
// non-response message. The returned func removes the registration.
func (b *Bridge) OnMessage(command string, fn HandlerFunc) (unsubscribe func()) {
	if fn == nil || b.disposed() {
		return func() {}
	}

	b.handlersMu.Lock()
	b.nextHandlerID++
	id := b.nextHandlerID
	b.handlers[command] = append(b.handlers[command], handlerEntry{id: id, fn: fn})
	b.handlersMu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() { b.removeHandler(command, id) })
	}
}

// Dispose shuts the bridge down. Pending requests fail with
// ErrChannelUnavailable. Calling it again has no effect.
func (b *Bridge) Dispose() {
	b.disposeOnce.Do(func() {
		b.stateMu.Lock()
		b.cancel()
		t := b.transport
		b.stateMu.Unlock()

		b.handlersMu.Lock()
		b.handlers = make(map[string][]handlerEntry)
		b.handlersMu.Unlock()

		rejected := b.rejectAll(ErrChannelUnavailable)

		if t != nil {
			if err := t.Close(); err != nil {
				b.logger.Warn().Err(err).Msg("close bridge transport")
			}
		}

		b.logger.Debug().Int("rejected_requests", rejected).Msg("bridge disposed")
	})
}

// PendingCount returns the number of requests still waiting for a response.
func (b *Bridge) PendingCount() int {
	b.pendingMu.Lock()
	defer b.pendingMu.Unlock()
	return len(b.pending)
}

func (b *Bridge) disposed() bool {
	return b.ctx.Err() != nil
}

func (b *Bridge) removeHandler(command string, id uint64) {
	b.handlersMu.Lock()
	defer b.handlersMu.Unlock()

	entries := b.handlers[command]
	for i, e := range entries {
		if e.id == id {
			next := make([]handlerEntry, 0, len(entries)-1)
			next = append(next, entries[:i]...)
			next = append(next, entries[i+1:]...)
			if len(next) == 0 {
				delete(b.handlers, command)
			} else {
				b.handlers[command] = next
			}
			return
		}
	}
}

// reject completes a pending request with err. Unknown ids are ignored.
func (b *Bridge) reject(id string, err error) {
	b.pendingMu.Lock()
	p, ok := b.pending[id]
	if ok {
		delete(b.pending, id)
	}
	b.pendingMu.Unlock()

	if !ok {
		return
	}
	p.timer.Stop()
	p.ch <- result{err: err}

	if errors.Is(err, ErrTimeout) {
		b.logger.Warn().Str("command", p.command).Str("correlation_id", id).
			Dur("elapsed", time.Since(p.createdAt)).Msg("bridge request timed out")
	}
}

// rejectAll fails every pending request with err and returns how many there
// were.
func (b *Bridge) rejectAll(err error) int {
	b.pendingMu.Lock()
	pending := b.pending
	b.pending = make(map[string]*pendingRequest)
	b.pendingMu.Unlock()

	for _, p := range pending {
		p.timer.Stop()
		p.ch <- result{err: err}
	}
	return len(pending)
}

func (b *Bridge) resolve(msg Message) {
	id := msg.CorrelationID()

	b.pendingMu.Lock()
	p, ok := b.pending[id]
	if ok {
		delete(b.pending, id)
	}
	b.pendingMu.Unlock()

	if !ok {
		b.logger.Debug().Str("command", msg.Command()).Str("correlation_id", id).
			Msg("late or unknown response dropped")
		return
	}
	p.timer.Stop()

	if msg.Err() != "" {
		p.ch <- result{err: &RemoteError{Command: msg.Command(), Message: msg.Err()}}
		return
	}
	p.ch <- result{msg: msg}
}

func (b *Bridge) writeLoop() {
	select {
	case <-b.ready:
	case <-b.ctx.Done():
		return
	}

	b.stateMu.Lock()
	t := b.transport
	b.stateMu.Unlock()

	for {
		select {
		case <-b.ctx.Done():
			return
		case frame := <-b.outbound:
			if err := t.Send(b.ctx, frame); err != nil {
				if b.disposed() {
					return
				}
				b.logger.Error().Err(err).Int("bytes", len(frame)).Msg("bridge send failed, message dropped")
			}
		}
	}
}

func (b *Bridge) readLoop(t Transport) {
	in := t.Receive()
	for {
		select {
		case <-b.ctx.Done():
			return
		case frame, ok := <-in:
			if !ok {
				b.logger.Debug().Msg("bridge transport receive channel closed")
				return
			}
			b.dispatch(frame)
		}
	}
}

func (b *Bridge) dispatch(frame []byte) {
	var msg Message
	if err := json.Unmarshal(frame, &msg); err != nil {
		b.logger.Warn().Err(err).Int("bytes", len(frame)).Msg("malformed bridge frame dropped")
		return
	}

	if msg.IsResponse() {
		b.resolve(msg)
		return
	}

	b.handlersMu.RLock()
	specific := b.handlers[msg.Command()]
	wildcard := b.handlers[""]
	snapshot := make([]handlerEntry, 0, len(specific)+len(wildcard))
	snapshot = append(snapshot, specific...)
	if msg.Command() != "" {
		snapshot = append(snapshot, wildcard...)
	}
	b.handlersMu.RUnlock()

	if len(snapshot) == 0 {
		b.logger.Debug().Str("command", msg.Command()).Msg("no handler for bridge message")
		return
	}

	for _, h := range snapshot {
		b.call(h.fn, msg)
	}
}

func (b *Bridge) call(fn HandlerFunc, msg Message) {
	defer func() {
		if r := recover(); r != nil {
			b.logger.Error().Str("command", msg.Command()).Interface("panic", r).Msg("bridge handler panicked")
		}
	}()

	if err := fn(b.ctx, msg); err != nil {
		b.logger.Error().Err(err).Str("command", msg.Command()).Msg("bridge handler failed")
	}
}

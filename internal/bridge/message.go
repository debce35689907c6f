// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package bridge

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Message is an immutable bridge message. The zero value is not valid; use
// NewMessage.
type Message struct {
	command       string
	data          json.RawMessage
	correlationID string
	response      bool
	errMsg        string
}

// wireMessage is the JSON frame exchanged with the peer.
type wireMessage struct {
	Command       string          `json:"command"`
	Data          json.RawMessage `json:"data,omitempty"`
	CorrelationID string          `json:"correlationId,omitempty"`
	Response      bool            `json:"response,omitempty"`
	Error         string          `json:"error,omitempty"`
}

// NewMessage builds a message for command with data marshaled to JSON.
// A nil data produces a message without payload.
func NewMessage(command string, data any) (Message, error) {
	return newMessage(command, data, "", false, "")
}

func newMessage(command string, data any, correlationID string, response bool, errMsg string) (Message, error) {
	if command == "" {
		return Message{}, ErrEmptyCommand
	}

	var raw json.RawMessage
	switch v := data.(type) {
	case nil:
	case json.RawMessage:
		raw = bytes.Clone(v)
	default:
		b, err := json.Marshal(v)
		if err != nil {
			return Message{}, fmt.Errorf("marshal %s payload: %w", command, err)
		}
		raw = b
	}

	return Message{
		command:       command,
		data:          raw,
		correlationID: correlationID,
		response:      response,
		errMsg:        errMsg,
	}, nil
}

func (m Message) Command() string       { return m.command }
func (m Message) CorrelationID() string { return m.correlationID }

// IsResponse reports whether m answers a correlated request.
func (m Message) IsResponse() bool { return m.response }

// Err returns the error text of a failed response, or "".
func (m Message) Err() string { return m.errMsg }

// Data returns a copy of the raw JSON payload.
func (m Message) Data() json.RawMessage { return bytes.Clone(m.data) }

// Decode unmarshals the payload into v, rejecting unknown fields. An absent
// payload leaves v untouched.
func (m Message) Decode(v any) error {
	if len(m.data) == 0 || bytes.Equal(m.data, []byte("null")) {
		return nil
	}

	dec := json.NewDecoder(bytes.NewReader(m.data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrInvalidPayload, m.command, err)
	}

	return nil
}

func (m Message) MarshalJSON() ([]byte, error) {
	if m.command == "" {
		return nil, ErrEmptyCommand
	}

	return json.Marshal(wireMessage{
		Command:       m.command,
		Data:          m.data,
		CorrelationID: m.correlationID,
		Response:      m.response,
		Error:         m.errMsg,
	})
}

func (m *Message) UnmarshalJSON(b []byte) error {
	var w wireMessage
	if err := json.Unmarshal(b, &w); err != nil {
		return err
	}
	if w.Command == "" {
		return ErrEmptyCommand
	}

	*m = Message{
		command:       w.Command,
		data:          w.Data,
		correlationID: w.CorrelationID,
		response:      w.Response,
		errMsg:        w.Error,
	}
	return nil
}

func (m Message) String() string {
	if m.correlationID == "" {
		return m.command
	}
	return fmt.Sprintf("%s#%s", m.command, m.correlationID)
}

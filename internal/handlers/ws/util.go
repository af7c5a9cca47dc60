package ws

import (
	"bytes"
	"compress/gzip"
	"encoding/json"
	"io"
	"sync"
)

// Frames above this size are gzipped for clients that advertise support.
const gzipThreshold = 512

// OutboundEvent is the envelope of every server-sent frame.
type OutboundEvent struct {
	Type    string `json:"type"`
	Payload any    `json:"payload,omitempty"`
}

func encodeEvent(event string, payload any) ([]byte, error) {
	return json.Marshal(OutboundEvent{Type: event, Payload: payload})
}

func Deserialize(jsonBytes []byte) (*SerializedMessage, Message, error) {
	var wrapper SerializedMessage
	if err := json.Unmarshal(jsonBytes, &wrapper); err != nil {
		return nil, nil, err
	}

	msg, err := DeserializeSerializedMessage(&wrapper)
	if err != nil {
		return &wrapper, nil, err
	}
	return &wrapper, msg, nil
}

func DeserializeSerializedMessage(wrapper *SerializedMessage) (Message, error) {
	msg, err := CreateMessage(wrapper.Type)
	if err != nil {
		return nil, err
	}

	if len(wrapper.Payload) == 0 || string(wrapper.Payload) == "null" {
		return msg, nil
	}
	if err := FromJson(wrapper.Payload, msg); err != nil {
		return nil, err
	}
	return msg, nil
}

// lazyGzip compresses once on first use and shares the result.
type lazyGzip struct {
	raw    []byte
	once   sync.Once
	packed []byte
	ok     bool
}

func (l *lazyGzip) get() ([]byte, bool) {
	l.once.Do(func() {
		packed, err := compress(l.raw)
		if err == nil && len(packed) < len(l.raw) {
			l.packed, l.ok = packed, true
		}
	})
	return l.packed, l.ok
}

func compress(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	writer := gzip.NewWriter(&buf)
	if _, err := writer.Write(data); err != nil {
		return nil, err
	}
	if err := writer.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// DecompressMessage inflates a gzip binary frame sent by the client.
func DecompressMessage(data []byte) ([]byte, error) {
	reader, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	defer reader.Close()
	return io.ReadAll(io.LimitReader(reader, 1<<20))
}

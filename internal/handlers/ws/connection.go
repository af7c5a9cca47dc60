package ws

import (
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
)

var (
	ErrConnectionClosed = errors.New("connection closed")
	ErrSendBufferFull   = errors.New("send buffer full")
)

// Socket is the part of *websocket.Conn the registry writes through.
type Socket interface {
	WriteMessage(messageType int, data []byte) error
	WriteControl(messageType int, data []byte, deadline time.Time) error
	Close() error
}

type frame struct {
	kind int
	data []byte
}

// Connection is one authenticated realtime session. All data frames go
// through a bounded buffer drained by a single writer goroutine.
type Connection struct {
	ID           string
	MemberID     uint
	SupportsGzip bool

	socket   Socket
	send     chan frame
	done     chan struct{}
	lastPong atomic.Int64

	mu     sync.Mutex
	closed bool
}

func NewConnection(memberID uint, socket Socket, supportsGzip bool, buffer int) *Connection {
	if buffer <= 0 {
		buffer = 64
	}
	c := &Connection{
		ID:           uuid.NewString(),
		MemberID:     memberID,
		SupportsGzip: supportsGzip,
		socket:       socket,
		send:         make(chan frame, buffer),
		done:         make(chan struct{}),
	}
	c.Touch()
	return c
}

// Touch records liveness, normally from the pong handler.
func (c *Connection) Touch() {
	c.lastPong.Store(time.Now().UnixNano())
}

func (c *Connection) LastPong() time.Time {
	return time.Unix(0, c.lastPong.Load())
}

func (c *Connection) Done() <-chan struct{} { return c.done }

func (c *Connection) enqueue(f frame) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return ErrConnectionClosed
	}
	select {
	case c.send <- f:
		return nil
	default:
		return ErrSendBufferFull
	}
}

// Send encodes one event for this connection and queues it.
func (c *Connection) Send(event string, payload any) error {
	data, err := encodeEvent(event, payload)
	if err != nil {
		return err
	}
	return c.enqueue(c.frameFor(data, nil))
}

// SendError reports a failed inbound frame back to the client.
func (c *Connection) SendError(code, message string) error {
	return c.Send(EventError, ErrorPayload{Code: code, Message: message})
}

// frameFor picks the wire form of an encoded event. compressed, when
// non-nil, is a gzip form shared across a fan-out.
func (c *Connection) frameFor(data []byte, compressed *lazyGzip) frame {
	if !c.SupportsGzip || len(data) <= gzipThreshold {
		return frame{kind: websocket.TextMessage, data: data}
	}
	if compressed == nil {
		compressed = &lazyGzip{raw: data}
	}
	if packed, ok := compressed.get(); ok {
		return frame{kind: websocket.BinaryMessage, data: packed}
	}
	return frame{kind: websocket.TextMessage, data: data}
}

func (c *Connection) writeLoop() {
	for {
		select {
		case <-c.done:
			return
		case f := <-c.send:
			if err := c.socket.WriteMessage(f.kind, f.data); err != nil {
				c.Close()
				return
			}
		}
	}
}

func (c *Connection) ping(timeout time.Duration) error {
	return c.socket.WriteControl(websocket.PingMessage, nil, time.Now().Add(timeout))
}

// Close stops the writer and closes the socket. Safe to call repeatedly.
func (c *Connection) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	close(c.done)
	c.mu.Unlock()
	_ = c.socket.Close()
}

func (c *Connection) Closed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}

package bus

import (
	"encoding/json"
	"errors"
	"io"
	"sync"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/x-xyz/checkout/base/ctx"
	"github.com/x-xyz/checkout/base/log"
)

var (
	ErrNilBus     = errors.New("nil bus")
	ErrNilHandler = errors.New("nil handler")
)

// Handler processes one message, a returned error naks it for redelivery
type Handler func(c ctx.Ctx, data []byte) error

// Publisher is the publishing half of Bus
type Publisher interface {
	Publish(c ctx.Ctx, subj string, v interface{}) error
}

// Bus wraps a NATS JetStream connection for publishing and consuming events.
type Bus struct {
	conn *nats.Conn
	js   nats.JetStreamContext
}

// New creates a Bus connected to the provided NATS endpoint.
func New(url string, opts ...nats.Option) (*Bus, error) {
	nc, err := nats.Connect(url, opts...)
	if err != nil {
		return nil, err
	}

	js, err := nc.JetStream()
	if err != nil {
		nc.Close()
		return nil, err
	}

	return &Bus{conn: nc, js: js}, nil
}

// EnsureStream creates the stream when it does not exist yet
func (b *Bus) EnsureStream(c ctx.Ctx, name string, maxAge time.Duration, subjects ...string) error {
	if b == nil {
		return ErrNilBus
	}

	if _, err := b.js.StreamInfo(name, nats.Context(c)); err == nil {
		return nil
	} else if !errors.Is(err, nats.ErrStreamNotFound) {
		c.WithFields(log.Fields{"err": err, "stream": name}).Error("js.StreamInfo failed")
		return err
	}

	if _, err := b.js.AddStream(&nats.StreamConfig{
		Name:     name,
		Subjects: subjects,
		MaxAge:   maxAge,
		Storage:  nats.FileStorage,
	}, nats.Context(c)); err != nil {
		c.WithFields(log.Fields{"err": err, "stream": name}).Error("js.AddStream failed")
		return err
	}
	return nil
}

// Close shuts down the underlying NATS connection.
func (b *Bus) Close() {
	if b == nil {
		return
	}
	if err := b.conn.Drain(); err != nil {
		b.conn.Close()
	}
}

// Publish encodes v as JSON and publishes it to the given subject.
func (b *Bus) Publish(c ctx.Ctx, subj string, v interface{}) error {
	if b == nil {
		return ErrNilBus
	}

	data, err := json.Marshal(v)
	if err != nil {
		return err
	}

	_, err = b.js.Publish(subj, data, nats.Context(c))
	return err
}

type subscription struct {
	sub    *nats.Subscription
	mu     sync.Mutex
	closed bool
}

func (s *subscription) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	return s.sub.Drain()
}

// Subscribe creates a durable consumer on the given subject and invokes fn for each message.
// The subscription is drained when c is done.
func (b *Bus) Subscribe(c ctx.Ctx, subj, durable string, fn Handler) (io.Closer, error) {
	if b == nil {
		return nil, ErrNilBus
	}
	if fn == nil {
		return nil, ErrNilHandler
	}

	handler := func(msg *nats.Msg) {
		handlerCtx, cancel := ctx.WithCancel(ctx.WithValue(c, "subject", msg.Subject))
		defer cancel()

		if err := fn(handlerCtx, msg.Data); err != nil {
			handlerCtx.WithField("err", err).Warn("handler failed, nak")
			_ = msg.Nak()
			return
		}
		_ = msg.Ack()
	}

	sub, err := b.js.Subscribe(subj, handler, nats.Durable(durable), nats.ManualAck(), nats.AckExplicit())
	if err != nil {
		return nil, err
	}

	s := &subscription{sub: sub}

	go func() {
		<-c.Done()
		_ = s.Close()
	}()

	return s, nil
}

package goroutine

import (
	"github.com/x-xyz/checkout/base/log"
	"github.com/x-xyz/checkout/base/utils"
)

var (
	logger = log.Log()
)

type PanicEvent struct {
	Name  string
	Panic interface{}
	Stack []byte
}

type options struct {
	name           string
	afterRecovered func(*PanicEvent)
}

type Option func(*options)

// WithName tags the panic log and event of the goroutine
func WithName(name string) Option {
	return func(o *options) {
		o.name = name
	}
}

// WithAfterRecovered runs f on the recovered panic before it is delivered
func WithAfterRecovered(f func(*PanicEvent)) Option {
	return func(o *options) {
		o.afterRecovered = f
	}
}

// RecoverableGo runs f in a goroutine. The returned channel yields one event if
// f panicked and is closed without a value if it returned.
func RecoverableGo(f func(), opts ...Option) <-chan *PanicEvent {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}

	panicChan := make(chan *PanicEvent, 1)

	go func() {
		defer func() {
			p := recover()
			if p == nil {
				close(panicChan)
				return
			}

			ev := &PanicEvent{Name: o.name, Panic: p, Stack: utils.Stack(3)}
			logger.WithFields(log.Fields{
				"name":  ev.Name,
				"err":   p,
				"stack": string(ev.Stack),
			}).Error("panic")

			if o.afterRecovered != nil {
				o.afterRecovered(ev)
			}
			panicChan <- ev
		}()

		f()
	}()

	return panicChan
}

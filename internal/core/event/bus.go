package event

import (
	"reflect"
	"sync"
)

// Bus is a double-buffered event bus. Events emitted during frame N are
// delivered by Dispatch at the start of frame N+1, so handlers never observe a
// half-applied frame.
type Bus struct {
	mu       sync.Mutex // guards handlers
	pending  []any
	ready    []any
	handlers map[reflect.Type][]func(any)
}

func NewBus() *Bus {
	return &Bus{
		pending:  make([]any, 0, 32),
		ready:    make([]any, 0, 32),
		handlers: make(map[reflect.Type][]func(any)),
	}
}

// Emit queues ev for the next Dispatch. Loop goroutine only.
func Emit[T any](b *Bus, ev T) {
	b.pending = append(b.pending, ev)
}

// Subscribe registers fn for events of type T.
func Subscribe[T any](b *Bus, fn func(T)) {
	b.mu.Lock()
	defer b.mu.Unlock()
	t := reflect.TypeOf((*T)(nil)).Elem()
	b.handlers[t] = append(b.handlers[t], func(ev any) { fn(ev.(T)) })
}

// Dispatch delivers everything emitted before the call, in emit order.
// Events emitted by handlers wait for the following Dispatch.
func (b *Bus) Dispatch() int {
	b.ready, b.pending = b.pending, b.ready[:0]
	for _, ev := range b.ready {
		for _, h := range b.handlersFor(reflect.TypeOf(ev)) {
			h(ev)
		}
	}
	n := len(b.ready)
	clear(b.ready)
	b.ready = b.ready[:0]
	return n
}

// Pending returns the number of events waiting for Dispatch.
func (b *Bus) Pending() int { return len(b.pending) }

func (b *Bus) handlersFor(t reflect.Type) []func(any) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.handlers[t]
}

package events

import (
	"context"
	"sync"

	"go.uber.org/zap"
)

// MemoryBus is an in-process Publisher and Subscriber for single-instance
// deployments without Redis. Each subscriber gets its own buffered queue;
// events are dropped for a subscriber whose queue is full.
type MemoryBus struct {
	mu     sync.RWMutex
	subs   map[string][]chan Event
	buffer int
	log    *zap.Logger
}

func NewMemoryBus(buffer int, log *zap.Logger) *MemoryBus {
	if buffer <= 0 {
		buffer = 64
	}
	return &MemoryBus{subs: make(map[string][]chan Event), buffer: buffer, log: log}
}

func (b *MemoryBus) Publish(_ context.Context, stream string, event Event) error {
	b.mu.RLock()
	defer b.mu.RUnlock()

	for _, ch := range b.subs[stream] {
		select {
		case ch <- event:
		default:
			b.log.Warn("event dropped, subscriber queue full",
				zap.String("stream", stream), zap.String("type", event.Type))
		}
	}
	return nil
}

func (b *MemoryBus) Subscribe(ctx context.Context, stream string, handler func(Event)) error {
	ch := make(chan Event, b.buffer)

	b.mu.Lock()
	b.subs[stream] = append(b.subs[stream], ch)
	b.mu.Unlock()

	go func() {
		defer b.unsubscribe(stream, ch)
		for {
			select {
			case <-ctx.Done():
				return
			case event := <-ch:
				handler(event)
			}
		}
	}()

	return nil
}

func (b *MemoryBus) unsubscribe(stream string, ch chan Event) {
	b.mu.Lock()
	defer b.mu.Unlock()

	subs := b.subs[stream]
	for i, c := range subs {
		if c == ch {
			b.subs[stream] = append(subs[:i], subs[i+1:]...)
			break
		}
	}
	if len(b.subs[stream]) == 0 {
		delete(b.subs, stream)
	}
}

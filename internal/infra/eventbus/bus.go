package eventbus

import (
	"context"
	"sync"

	"conference-seats/internal/domain/conference"
)

// InProcessBus delivers appended events to subscribers synchronously, in
// publish order, each event at most once per subscriber. Publishing for
// different streams may interleave; within one stream the command handler
// publishes strictly in append order, which the bus preserves.
type InProcessBus struct {
	mu       sync.RWMutex
	handlers []func(ctx context.Context, event conference.Event)
}

func NewInProcessBus() *InProcessBus {
	return &InProcessBus{}
}

// Subscribe registers a handler for all future publishes. Subscription is
// expected at wiring time, before commands flow.
func (b *InProcessBus) Subscribe(handler func(ctx context.Context, event conference.Event)) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers = append(b.handlers, handler)
}

func (b *InProcessBus) Publish(ctx context.Context, events []conference.Event) {
	b.mu.RLock()
	handlers := make([]func(ctx context.Context, event conference.Event), len(b.handlers))
	copy(handlers, b.handlers)
	b.mu.RUnlock()

	for _, e := range events {
		for _, h := range handlers {
			h(ctx, e)
		}
	}
}

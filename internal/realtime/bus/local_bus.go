package bus

import (
	"context"
	"sync"

	"github.com/yungbote/farm-catalog-backend/internal/pkg/logger"
	"github.com/yungbote/farm-catalog-backend/internal/realtime"
)

// localBus logs every event and fans it out to in-process forwarders.
type localBus struct {
	log *logger.Logger

	mu       sync.RWMutex
	handlers map[int]func(realtime.CatalogEvent)
	next     int
	closed   bool
}

func NewLocalBus(log *logger.Logger) Bus {
	if log == nil {
		log = logger.NewNop()
	}
	return &localBus{
		log:      log.With("service", "LocalCatalogBus"),
		handlers: map[int]func(realtime.CatalogEvent){},
	}
}

func (b *localBus) Publish(ctx context.Context, ev realtime.CatalogEvent) error {
	b.log.WithContext(ctx).Info("catalog event",
		"type", ev.Type,
		"kind", ev.Kind,
		"id", ev.ID,
		"farm_id", ev.FarmID,
	)

	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.closed {
		return nil
	}
	for _, h := range b.handlers {
		h(ev)
	}
	return nil
}

func (b *localBus) StartForwarder(ctx context.Context, onEvent func(ev realtime.CatalogEvent)) error {
	if onEvent == nil {
		return errNilHandler
	}
	b.mu.Lock()
	id := b.next
	b.next++
	b.handlers[id] = onEvent
	b.mu.Unlock()

	go func() {
		<-ctx.Done()
		b.mu.Lock()
		delete(b.handlers, id)
		b.mu.Unlock()
	}()
	return nil
}

func (b *localBus) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.closed = true
	b.handlers = map[int]func(realtime.CatalogEvent){}
	return nil
}

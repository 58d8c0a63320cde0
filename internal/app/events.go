package app

import (
	"context"

	"github.com/yungbote/farm-catalog-backend/internal/observability"
	"github.com/yungbote/farm-catalog-backend/internal/realtime"
	"github.com/yungbote/farm-catalog-backend/internal/realtime/bus"
)

// countingPublisher records a metric for every catalog event handed to the bus.
type countingPublisher struct {
	bus     bus.Bus
	metrics *observability.Metrics
}

func (p countingPublisher) Publish(ctx context.Context, ev realtime.CatalogEvent) error {
	err := p.bus.Publish(ctx, ev)
	status := "published"
	if err != nil {
		status = "failed"
	}
	p.metrics.IncCatalogEvent(string(ev.Type), status)
	return err
}

package bus

import (
	"context"
	"errors"

	"github.com/yungbote/farm-catalog-backend/internal/realtime"
)

type Bus interface {
	Publish(ctx context.Context, ev realtime.CatalogEvent) error
	StartForwarder(ctx context.Context, onEvent func(ev realtime.CatalogEvent)) error
	Close() error
}

var errNilHandler = errors.New("onEvent callback required")

package app

import (
	httpserver "github.com/yungbote/farm-catalog-backend/internal/http"
	"github.com/yungbote/farm-catalog-backend/internal/observability"
	"github.com/yungbote/farm-catalog-backend/internal/pkg/logger"
)

func wireServer(log *logger.Logger, cfg Config, h Handlers, metrics *observability.Metrics) *httpserver.Server {
	log.Info("Wiring router...")
	serviceName := ""
	if cfg.Otel.Enabled {
		serviceName = cfg.App.Name
	}
	return httpserver.NewServer(cfg.HTTP.Addr, cfg.HTTP.ShutdownTimeout, httpserver.RouterConfig{
		ServiceName:      serviceName,
		Log:              log,
		Metrics:          metrics,
		CORSAllowOrigins: cfg.HTTP.CORSAllowOrigins,
		HealthHandler:    h.Health,
		FarmHandler:      h.Farm,
		FruitHandler:     h.Fruit,
		VegetableHandler: h.Vegetable,
	})
}

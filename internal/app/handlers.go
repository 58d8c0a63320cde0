package app

import (
	"context"

	"gorm.io/gorm"

	httpH "github.com/yungbote/farm-catalog-backend/internal/http/handlers"
	"github.com/yungbote/farm-catalog-backend/internal/pkg/logger"
)

type Handlers struct {
	Health    *httpH.HealthHandler
	Farm      *httpH.FarmHandler
	Fruit     *httpH.CropHandler
	Vegetable *httpH.CropHandler
}

func wireHandlers(log *logger.Logger, cfg Config, db *gorm.DB, s Services) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Health: httpH.NewHealthHandler(httpH.HealthHandlerDeps{
			ServiceName: cfg.App.Name,
			Version:     cfg.App.Version,
			Ping:        pingDB(db),
		}),
		Farm:      httpH.NewFarmHandler(s.Farm, s.Aggregation),
		Fruit:     httpH.NewCropHandler(s.Fruit),
		Vegetable: httpH.NewCropHandler(s.Vegetable),
	}
}

func pingDB(db *gorm.DB) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		sqlDB, err := db.DB()
		if err != nil {
			return err
		}
		return sqlDB.PingContext(ctx)
	}
}

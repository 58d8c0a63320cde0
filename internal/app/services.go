package app

import (
	"gorm.io/gorm"

	"github.com/yungbote/farm-catalog-backend/internal/data/aggregates"
	"github.com/yungbote/farm-catalog-backend/internal/observability"
	"github.com/yungbote/farm-catalog-backend/internal/pkg/logger"
	"github.com/yungbote/farm-catalog-backend/internal/realtime/bus"
	"github.com/yungbote/farm-catalog-backend/internal/services"
)

type Services struct {
	FarmAggregate *aggregates.FarmAggregate
	Farm          *services.FarmService
	Fruit         *services.CropService
	Vegetable     *services.CropService
	Aggregation   *services.AggregationService
}

func wireServices(db *gorm.DB, log *logger.Logger, r Repos, metrics *observability.Metrics, events bus.Bus) Services {
	log.Info("Wiring services...")
	farmAgg := aggregates.NewFarmAggregate(aggregates.FarmAggregateDeps{
		Base: aggregates.BaseDeps{
			DB:    db,
			Log:   log,
			Hooks: aggregates.NewObservabilityHooks(metrics),
		},
		Farms:      r.Farm,
		Fruits:     r.Fruit,
		Vegetables: r.Vegetable,
		Events:     countingPublisher{bus: events, metrics: metrics},
	})
	return Services{
		FarmAggregate: farmAgg,
		Farm:          services.NewFarmService(db, log, r.Farm, r.Fruit, r.Vegetable, farmAgg),
		Fruit:         services.NewCropService(log, r.Fruit, r.Farm, farmAgg),
		Vegetable:     services.NewCropService(log, r.Vegetable, r.Farm, farmAgg),
		Aggregation:   services.NewAggregationService(log, r.Farm, r.Fruit, r.Vegetable),
	}
}

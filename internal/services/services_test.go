package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/farm-catalog-backend/internal/data/aggregates"
	"github.com/yungbote/farm-catalog-backend/internal/data/repos"
	repotestutil "github.com/yungbote/farm-catalog-backend/internal/data/repos/testutil"
	"github.com/yungbote/farm-catalog-backend/internal/domain/catalog"
	"github.com/yungbote/farm-catalog-backend/internal/services"
)

type fixture struct {
	ctx         context.Context
	db          *gorm.DB
	aggregation *services.AggregationService
	farms       *services.FarmService
	fruits      *services.CropService
	vegetables  *services.CropService

	seeded int
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := repotestutil.DB(t)
	log := repotestutil.Logger(t)
	farmRepo := repos.NewFarmRepo(db, log)
	fruitRepo := repos.NewFruitRepo(db, log)
	vegetableRepo := repos.NewVegetableRepo(db, log)
	agg := aggregates.NewFarmAggregate(aggregates.FarmAggregateDeps{
		Base:       aggregates.BaseDeps{DB: db, Log: log},
		Farms:      farmRepo,
		Fruits:     fruitRepo,
		Vegetables: vegetableRepo,
	})
	return &fixture{
		ctx:         context.Background(),
		db:          db,
		aggregation: services.NewAggregationService(log, farmRepo, fruitRepo, vegetableRepo),
		farms:       services.NewFarmService(db, log, farmRepo, fruitRepo, vegetableRepo, agg),
		fruits:      services.NewCropService(log, fruitRepo, farmRepo, agg),
		vegetables:  services.NewCropService(log, vegetableRepo, farmRepo, agg),
	}
}

// farm seeds a farm with a created_at strictly after every earlier seed so
// store order is deterministic.
func (f *fixture) farm(t *testing.T, name, location string) *catalog.Farm {
	t.Helper()
	farm := repotestutil.SeedFarm(t, f.ctx, f.db, name, location)
	f.seeded++
	at := time.Date(2024, 1, 1, 0, 0, f.seeded, 0, time.UTC)
	if err := f.db.Model(&catalog.Farm{}).Where("id = ?", farm.ID).Update("created_at", at).Error; err != nil {
		t.Fatalf("pin created_at: %v", err)
	}
	farm.CreatedAt = at
	return farm
}

func (f *fixture) crop(t *testing.T, svc *services.CropService, farmID uuid.UUID, name, color string, weight float64) *catalog.Crop {
	t.Helper()
	crop, err := svc.CreateCrop(f.ctx, farmID, catalog.CropAttributes{Name: name, Color: color, Weight: weight})
	if err != nil {
		t.Fatalf("create %s %q: %v", svc.Kind(), name, err)
	}
	return crop
}

func farmIDs(farms []*catalog.Farm) []uuid.UUID {
	out := make([]uuid.UUID, 0, len(farms))
	for _, f := range farms {
		out = append(out, f.ID)
	}
	return out
}

func rankingIDs(rows []catalog.FarmRanking) []uuid.UUID {
	out := make([]uuid.UUID, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.ID)
	}
	return out
}

func sameIDs(a, b []uuid.UUID) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/farm-catalog-backend/internal/data/aggregates"
	"github.com/yungbote/farm-catalog-backend/internal/data/repos"
	domainagg "github.com/yungbote/farm-catalog-backend/internal/domain/aggregates"
	"github.com/yungbote/farm-catalog-backend/internal/domain/catalog"
	"github.com/yungbote/farm-catalog-backend/internal/pkg/dbctx"
	"github.com/yungbote/farm-catalog-backend/internal/pkg/logger"
)

type FarmService struct {
	db         *gorm.DB
	log        *logger.Logger
	farms      repos.FarmRepo
	fruits     repos.CropRepo
	vegetables repos.CropRepo
	aggregate  *aggregates.FarmAggregate
}

func NewFarmService(
	db *gorm.DB,
	baseLog *logger.Logger,
	farms repos.FarmRepo,
	fruits repos.CropRepo,
	vegetables repos.CropRepo,
	aggregate *aggregates.FarmAggregate,
) *FarmService {
	return &FarmService{
		db:         db,
		log:        baseLog.With("service", "FarmService"),
		farms:      farms,
		fruits:     fruits,
		vegetables: vegetables,
		aggregate:  aggregate,
	}
}

func (s *FarmService) CreateFarm(ctx context.Context, attrs catalog.FarmAttributes) (*catalog.Farm, error) {
	attrs = attrs.Normalized()
	if err := attrs.Validate(); err != nil {
		return nil, err
	}
	farm := &catalog.Farm{}
	farm.Apply(attrs)
	created, err := s.farms.Create(dbctx.Context{Ctx: ctx}, farm)
	if err != nil {
		return nil, fmt.Errorf("create farm: %w", err)
	}
	s.log.WithContext(ctx).Debug("farm created", "farm_id", created.ID)
	return created, nil
}

func (s *FarmService) UpdateFarm(ctx context.Context, id uuid.UUID, attrs catalog.FarmAttributes) (*catalog.Farm, error) {
	attrs = attrs.Normalized()
	if err := attrs.Validate(); err != nil {
		return nil, err
	}
	var out *catalog.Farm
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		dbc := dbctx.Context{Ctx: ctx, Tx: tx}
		farm, err := s.farms.LockByID(dbc, id)
		if err != nil {
			return fmt.Errorf("lock farm: %w", err)
		}
		if farm == nil {
			return catalog.NotFound(catalog.KindFarm, id)
		}
		farm.Apply(attrs)
		if err := s.farms.Update(dbc, farm); err != nil {
			return fmt.Errorf("update farm: %w", err)
		}
		out = farm
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// GetFarm returns the farm together with the crops it currently owns.
func (s *FarmService) GetFarm(ctx context.Context, id uuid.UUID) (*catalog.FarmView, error) {
	dbc := dbctx.Context{Ctx: ctx}
	farm, err := s.farms.GetByID(dbc, id)
	if err != nil {
		return nil, fmt.Errorf("load farm: %w", err)
	}
	if farm == nil {
		return nil, catalog.NotFound(catalog.KindFarm, id)
	}
	vegetables, err := s.vegetables.GetByFarmID(dbc, farm.ID)
	if err != nil {
		return nil, fmt.Errorf("load vegetables: %w", err)
	}
	fruits, err := s.fruits.GetByFarmID(dbc, farm.ID)
	if err != nil {
		return nil, fmt.Errorf("load fruits: %w", err)
	}
	return &catalog.FarmView{Farm: farm, Vegetables: vegetables, Fruits: fruits}, nil
}

// FindByName looks a farm up by its exact (trimmed) name.
func (s *FarmService) FindByName(ctx context.Context, name string) (*catalog.Farm, error) {
	name = strings.TrimSpace(name)
	notFound := &catalog.NotFoundError{Kind: catalog.KindFarm, Query: name}
	if name == "" {
		return nil, notFound
	}
	farm, err := s.farms.GetByName(dbctx.Context{Ctx: ctx}, name)
	if err != nil {
		return nil, fmt.Errorf("find farm by name: %w", err)
	}
	if farm == nil {
		return nil, notFound
	}
	return farm, nil
}

func (s *FarmService) ListFarms(ctx context.Context) ([]*catalog.Farm, error) {
	farms, err := s.farms.List(dbctx.Context{Ctx: ctx})
	if err != nil {
		return nil, fmt.Errorf("list farms: %w", err)
	}
	return farms, nil
}

func (s *FarmService) FarmCount(ctx context.Context) (int64, error) {
	n, err := s.farms.Count(dbctx.Context{Ctx: ctx})
	if err != nil {
		return 0, fmt.Errorf("count farms: %w", err)
	}
	return n, nil
}

// DeleteFarm removes the farm and every crop it owns.
func (s *FarmService) DeleteFarm(ctx context.Context, id uuid.UUID) (domainagg.DeleteCropsResult, error) {
	return s.aggregate.DeleteFarm(ctx, domainagg.DeleteFarmInput{FarmID: id})
}

// DeleteCrops removes the farm's crops of kind (every kind when empty) and keeps the farm.
func (s *FarmService) DeleteCrops(ctx context.Context, id uuid.UUID, kind catalog.Kind) (domainagg.DeleteCropsResult, error) {
	return s.aggregate.DeleteCropsByFarm(ctx, domainagg.DeleteCropsByFarmInput{FarmID: id, Kind: kind})
}

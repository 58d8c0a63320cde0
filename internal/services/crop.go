package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/yungbote/farm-catalog-backend/internal/data/aggregates"
	"github.com/yungbote/farm-catalog-backend/internal/data/repos"
	domainagg "github.com/yungbote/farm-catalog-backend/internal/domain/aggregates"
	"github.com/yungbote/farm-catalog-backend/internal/domain/catalog"
	"github.com/yungbote/farm-catalog-backend/internal/pkg/dbctx"
	"github.com/yungbote/farm-catalog-backend/internal/pkg/logger"
)

// CropService serves one crop kind. Reads go to the kind's repo and writes
// go through the farm aggregate so ownership stays consistent.
type CropService struct {
	log       *logger.Logger
	kind      catalog.Kind
	crops     repos.CropRepo
	farms     repos.FarmRepo
	aggregate *aggregates.FarmAggregate
}

func NewCropService(
	baseLog *logger.Logger,
	crops repos.CropRepo,
	farms repos.FarmRepo,
	aggregate *aggregates.FarmAggregate,
) *CropService {
	kind := crops.Kind()
	return &CropService{
		log:       baseLog.With("service", "CropService", "kind", kind),
		kind:      kind,
		crops:     crops,
		farms:     farms,
		aggregate: aggregate,
	}
}

func (s *CropService) Kind() catalog.Kind { return s.kind }

func (s *CropService) GetCrop(ctx context.Context, id uuid.UUID) (*catalog.Crop, error) {
	crop, err := s.crops.GetByID(dbctx.Context{Ctx: ctx}, id)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", s.kind, err)
	}
	if crop == nil {
		return nil, catalog.NotFound(s.kind, id)
	}
	return crop, nil
}

func (s *CropService) ListCrops(ctx context.Context) ([]*catalog.Crop, error) {
	crops, err := s.crops.List(dbctx.Context{Ctx: ctx})
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", s.kind.Plural(), err)
	}
	return crops, nil
}

func (s *CropService) ListByFarm(ctx context.Context, farmID uuid.UUID) ([]*catalog.Crop, error) {
	dbc := dbctx.Context{Ctx: ctx}
	farm, err := s.farms.GetByID(dbc, farmID)
	if err != nil {
		return nil, fmt.Errorf("load farm: %w", err)
	}
	if farm == nil {
		return nil, catalog.NotFound(catalog.KindFarm, farmID)
	}
	crops, err := s.crops.GetByFarmID(dbc, farm.ID)
	if err != nil {
		return nil, fmt.Errorf("list %s by farm: %w", s.kind.Plural(), err)
	}
	return crops, nil
}

func (s *CropService) SearchByName(ctx context.Context, substr string) ([]*catalog.Crop, error) {
	crops, err := s.crops.SearchByName(dbctx.Context{Ctx: ctx}, substr)
	if err != nil {
		return nil, fmt.Errorf("search %s: %w", s.kind.Plural(), err)
	}
	return crops, nil
}

// FilterByColor matches color case-insensitively. A blank color returns every crop.
func (s *CropService) FilterByColor(ctx context.Context, color string) ([]*catalog.Crop, error) {
	if strings.TrimSpace(color) == "" {
		return s.ListCrops(ctx)
	}
	crops, err := s.crops.FilterByColor(dbctx.Context{Ctx: ctx}, color)
	if err != nil {
		return nil, fmt.Errorf("filter %s by color: %w", s.kind.Plural(), err)
	}
	return crops, nil
}

func (s *CropService) FindByColorAndWeight(ctx context.Context, color string, weight float64) ([]*catalog.Crop, error) {
	crops, err := s.crops.FindByColorAndWeight(dbctx.Context{Ctx: ctx}, color, weight)
	if err != nil {
		return nil, fmt.Errorf("find %s by color and weight: %w", s.kind.Plural(), err)
	}
	return crops, nil
}

func (s *CropService) CreateCrop(ctx context.Context, farmID uuid.UUID, attrs catalog.CropAttributes) (*catalog.Crop, error) {
	return s.aggregate.CreateCrop(ctx, domainagg.CreateCropInput{Kind: s.kind, FarmID: farmID, Attrs: attrs})
}

func (s *CropService) UpdateCrop(ctx context.Context, id, farmID uuid.UUID, attrs catalog.CropAttributes) (*catalog.Crop, error) {
	return s.aggregate.UpdateCrop(ctx, domainagg.UpdateCropInput{Kind: s.kind, CropID: id, FarmID: farmID, Attrs: attrs})
}

func (s *CropService) MoveCrop(ctx context.Context, id, farmID uuid.UUID) (domainagg.MoveCropResult, error) {
	return s.aggregate.MoveCrop(ctx, domainagg.MoveCropInput{Kind: s.kind, CropID: id, TargetFarmID: farmID})
}

func (s *CropService) DeleteCrop(ctx context.Context, id uuid.UUID) error {
	return s.aggregate.DeleteCrop(ctx, domainagg.DeleteCropInput{Kind: s.kind, CropID: id})
}

func (s *CropService) DeleteByFarm(ctx context.Context, farmID uuid.UUID) (domainagg.DeleteCropsResult, error) {
	return s.aggregate.DeleteCropsByFarm(ctx, domainagg.DeleteCropsByFarmInput{FarmID: farmID, Kind: s.kind})
}

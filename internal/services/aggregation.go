package services

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/yungbote/farm-catalog-backend/internal/data/repos"
	"github.com/yungbote/farm-catalog-backend/internal/domain/catalog"
	"github.com/yungbote/farm-catalog-backend/internal/pkg/dbctx"
	"github.com/yungbote/farm-catalog-backend/internal/pkg/logger"
)

const (
	RankByFruits     = "fruits"
	RankByVegetables = "vegetables"
	OrderAsc         = "asc"
	OrderDesc        = "desc"
)

// AggregationService answers read-only questions spanning farms and their crops.
type AggregationService struct {
	log        *logger.Logger
	farms      repos.FarmRepo
	fruits     repos.CropRepo
	vegetables repos.CropRepo
}

func NewAggregationService(
	baseLog *logger.Logger,
	farms repos.FarmRepo,
	fruits repos.CropRepo,
	vegetables repos.CropRepo,
) *AggregationService {
	return &AggregationService{
		log:        baseLog.With("service", "AggregationService"),
		farms:      farms,
		fruits:     fruits,
		vegetables: vegetables,
	}
}

func (s *AggregationService) StatsForFarm(ctx context.Context, farmID uuid.UUID) (*catalog.FarmStats, error) {
	dbc := dbctx.Context{Ctx: ctx}
	farm, err := s.farms.GetByID(dbc, farmID)
	if err != nil {
		return nil, fmt.Errorf("load farm: %w", err)
	}
	if farm == nil {
		return nil, catalog.NotFound(catalog.KindFarm, farmID)
	}

	var fruits, vegetables []*catalog.Crop
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		rows, err := s.fruits.GetByFarmID(dbctx.Context{Ctx: gctx}, farm.ID)
		if err != nil {
			return fmt.Errorf("load fruits: %w", err)
		}
		fruits = rows
		return nil
	})
	g.Go(func() error {
		rows, err := s.vegetables.GetByFarmID(dbctx.Context{Ctx: gctx}, farm.ID)
		if err != nil {
			return fmt.Errorf("load vegetables: %w", err)
		}
		vegetables = rows
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &catalog.FarmStats{
		FarmID:         farm.ID,
		FarmName:       farm.Name,
		FruitCount:     len(fruits),
		VegetableCount: len(vegetables),
		TotalWeight:    totalWeight(fruits) + totalWeight(vegetables),
	}, nil
}

func totalWeight(crops []*catalog.Crop) float64 {
	var sum float64
	for _, c := range crops {
		sum += c.Weight
	}
	return sum
}

// SearchFarmsByName returns farms whose name contains substr, ignoring case.
// Blank input matches nothing.
func (s *AggregationService) SearchFarmsByName(ctx context.Context, substr string) ([]*catalog.Farm, error) {
	if strings.TrimSpace(substr) == "" {
		return []*catalog.Farm{}, nil
	}
	farms, err := s.farms.SearchByName(dbctx.Context{Ctx: ctx}, substr)
	if err != nil {
		return nil, fmt.Errorf("search farms by name: %w", err)
	}
	return farms, nil
}

// FarmsByLocation returns farms whose location contains substr, ignoring case.
// Unlike name search an empty result is reported as NotFound.
func (s *AggregationService) FarmsByLocation(ctx context.Context, substr string) ([]*catalog.Farm, error) {
	notFound := &catalog.NotFoundError{Kind: catalog.KindFarm, Query: substr}
	if strings.TrimSpace(substr) == "" {
		return nil, notFound
	}
	farms, err := s.farms.SearchByLocation(dbctx.Context{Ctx: ctx}, substr)
	if err != nil {
		return nil, fmt.Errorf("search farms by location: %w", err)
	}
	if len(farms) == 0 {
		return nil, notFound
	}
	return farms, nil
}

// RankFarms orders every farm by its fruit or vegetable count. The sort is
// stable so farms with equal counts keep store order.
func (s *AggregationService) RankFarms(ctx context.Context, sortBy, order string) ([]catalog.FarmRanking, error) {
	if sortBy != RankByFruits && sortBy != RankByVegetables {
		return nil, catalog.InvalidArgument("sort_by", sortBy, RankByFruits, RankByVegetables)
	}
	if order != OrderAsc && order != OrderDesc {
		return nil, catalog.InvalidArgument("order", order, OrderAsc, OrderDesc)
	}

	dbc := dbctx.Context{Ctx: ctx}
	farms, err := s.farms.List(dbc)
	if err != nil {
		return nil, fmt.Errorf("list farms: %w", err)
	}
	fruitCounts, err := s.fruits.CountsByFarm(dbc)
	if err != nil {
		return nil, fmt.Errorf("count fruits: %w", err)
	}
	vegetableCounts, err := s.vegetables.CountsByFarm(dbc)
	if err != nil {
		return nil, fmt.Errorf("count vegetables: %w", err)
	}

	out := make([]catalog.FarmRanking, 0, len(farms))
	for _, f := range farms {
		out = append(out, catalog.FarmRanking{
			ID:             f.ID,
			Name:           f.Name,
			Location:       f.Location,
			FruitCount:     int(fruitCounts[f.ID]),
			VegetableCount: int(vegetableCounts[f.ID]),
		})
	}

	key := func(r catalog.FarmRanking) int { return r.FruitCount }
	if sortBy == RankByVegetables {
		key = func(r catalog.FarmRanking) int { return r.VegetableCount }
	}
	slices.SortStableFunc(out, func(a, b catalog.FarmRanking) int {
		c := cmp.Compare(key(a), key(b))
		if order == OrderDesc {
			return -c
		}
		return c
	})
	return out, nil
}

package handlers

import (
	"context"

	"github.com/google/uuid"

	domainagg "github.com/yungbote/farm-catalog-backend/internal/domain/aggregates"
	"github.com/yungbote/farm-catalog-backend/internal/domain/catalog"
)

type fakeFarms struct {
	farms       map[uuid.UUID]*catalog.Farm
	created     []catalog.FarmAttributes
	deleteKinds []catalog.Kind
	err         error
}

func newFakeFarms(farms ...*catalog.Farm) *fakeFarms {
	f := &fakeFarms{farms: map[uuid.UUID]*catalog.Farm{}}
	for _, farm := range farms {
		f.farms[farm.ID] = farm
	}
	return f
}

func (f *fakeFarms) CreateFarm(_ context.Context, attrs catalog.FarmAttributes) (*catalog.Farm, error) {
	if err := attrs.Validate(); err != nil {
		return nil, err
	}
	f.created = append(f.created, attrs)
	farm := &catalog.Farm{ID: uuid.New()}
	farm.Apply(attrs)
	f.farms[farm.ID] = farm
	return farm, nil
}

func (f *fakeFarms) UpdateFarm(_ context.Context, id uuid.UUID, attrs catalog.FarmAttributes) (*catalog.Farm, error) {
	farm, ok := f.farms[id]
	if !ok {
		return nil, catalog.NotFound(catalog.KindFarm, id)
	}
	farm.Apply(attrs)
	return farm, nil
}

func (f *fakeFarms) GetFarm(_ context.Context, id uuid.UUID) (*catalog.FarmView, error) {
	farm, ok := f.farms[id]
	if !ok {
		return nil, catalog.NotFound(catalog.KindFarm, id)
	}
	return &catalog.FarmView{Farm: farm, Vegetables: []*catalog.Crop{}, Fruits: []*catalog.Crop{}}, nil
}

func (f *fakeFarms) FindByName(_ context.Context, name string) (*catalog.Farm, error) {
	for _, farm := range f.farms {
		if farm.Name == name {
			return farm, nil
		}
	}
	return nil, &catalog.NotFoundError{Kind: catalog.KindFarm, Query: name}
}

func (f *fakeFarms) ListFarms(context.Context) ([]*catalog.Farm, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := make([]*catalog.Farm, 0, len(f.farms))
	for _, farm := range f.farms {
		out = append(out, farm)
	}
	return out, nil
}

func (f *fakeFarms) DeleteFarm(_ context.Context, id uuid.UUID) (domainagg.DeleteCropsResult, error) {
	if _, ok := f.farms[id]; !ok {
		return domainagg.DeleteCropsResult{}, domainagg.Wrap(domainagg.CodeNotFound, "delete", catalog.NotFound(catalog.KindFarm, id))
	}
	delete(f.farms, id)
	return domainagg.DeleteCropsResult{FarmID: id, FruitsDeleted: 2, VegetablesDeleted: 1}, nil
}

func (f *fakeFarms) DeleteCrops(_ context.Context, id uuid.UUID, kind catalog.Kind) (domainagg.DeleteCropsResult, error) {
	f.deleteKinds = append(f.deleteKinds, kind)
	return domainagg.DeleteCropsResult{FarmID: id}, nil
}

type fakeAggregations struct {
	stats    *catalog.FarmStats
	byName   []*catalog.Farm
	rankings []catalog.FarmRanking
	lastRank [2]string
}

func (f *fakeAggregations) StatsForFarm(_ context.Context, id uuid.UUID) (*catalog.FarmStats, error) {
	if f.stats == nil || f.stats.FarmID != id {
		return nil, catalog.NotFound(catalog.KindFarm, id)
	}
	return f.stats, nil
}

func (f *fakeAggregations) SearchFarmsByName(context.Context, string) ([]*catalog.Farm, error) {
	return f.byName, nil
}

func (f *fakeAggregations) FarmsByLocation(_ context.Context, substr string) ([]*catalog.Farm, error) {
	return nil, &catalog.NotFoundError{Kind: catalog.KindFarm, Query: substr}
}

func (f *fakeAggregations) RankFarms(_ context.Context, sortBy, order string) ([]catalog.FarmRanking, error) {
	f.lastRank = [2]string{sortBy, order}
	if sortBy != "fruits" && sortBy != "vegetables" {
		return nil, catalog.InvalidArgument("sort_by", sortBy, "fruits", "vegetables")
	}
	return f.rankings, nil
}

type fakeCrops struct {
	kind     catalog.Kind
	crops    map[uuid.UUID]*catalog.Crop
	farms    map[uuid.UUID]bool
	calls    []string
	moveErr  error
	lastFind struct {
		color  string
		weight float64
	}
}

func newFakeCrops(kind catalog.Kind, farmIDs ...uuid.UUID) *fakeCrops {
	f := &fakeCrops{kind: kind, crops: map[uuid.UUID]*catalog.Crop{}, farms: map[uuid.UUID]bool{}}
	for _, id := range farmIDs {
		f.farms[id] = true
	}
	return f
}

func (f *fakeCrops) Kind() catalog.Kind { return f.kind }

func (f *fakeCrops) GetCrop(_ context.Context, id uuid.UUID) (*catalog.Crop, error) {
	c, ok := f.crops[id]
	if !ok {
		return nil, catalog.NotFound(f.kind, id)
	}
	return c, nil
}

func (f *fakeCrops) ListCrops(context.Context) ([]*catalog.Crop, error) {
	f.calls = append(f.calls, "list")
	return []*catalog.Crop{}, nil
}

func (f *fakeCrops) ListByFarm(_ context.Context, farmID uuid.UUID) ([]*catalog.Crop, error) {
	if !f.farms[farmID] {
		return nil, catalog.NotFound(catalog.KindFarm, farmID)
	}
	return []*catalog.Crop{}, nil
}

func (f *fakeCrops) SearchByName(context.Context, string) ([]*catalog.Crop, error) {
	f.calls = append(f.calls, "name")
	return []*catalog.Crop{}, nil
}

func (f *fakeCrops) FilterByColor(context.Context, string) ([]*catalog.Crop, error) {
	f.calls = append(f.calls, "color")
	return []*catalog.Crop{}, nil
}

func (f *fakeCrops) FindByColorAndWeight(_ context.Context, color string, weight float64) ([]*catalog.Crop, error) {
	f.lastFind.color = color
	f.lastFind.weight = weight
	return []*catalog.Crop{}, nil
}

func (f *fakeCrops) CreateCrop(_ context.Context, farmID uuid.UUID, attrs catalog.CropAttributes) (*catalog.Crop, error) {
	if err := attrs.Validate(); err != nil {
		return nil, domainagg.Wrap(domainagg.CodeValidation, "create", err)
	}
	if !f.farms[farmID] {
		return nil, domainagg.Wrap(domainagg.CodeNotFound, "create", catalog.NotFound(catalog.KindFarm, farmID))
	}
	c := &catalog.Crop{ID: uuid.New(), Kind: f.kind, FarmID: farmID}
	c.Apply(attrs)
	f.crops[c.ID] = c
	return c, nil
}

func (f *fakeCrops) UpdateCrop(_ context.Context, id, farmID uuid.UUID, attrs catalog.CropAttributes) (*catalog.Crop, error) {
	c, ok := f.crops[id]
	if !ok {
		return nil, catalog.NotFound(f.kind, id)
	}
	c.Apply(attrs)
	c.FarmID = farmID
	return c, nil
}

func (f *fakeCrops) MoveCrop(_ context.Context, id, farmID uuid.UUID) (domainagg.MoveCropResult, error) {
	if f.moveErr != nil {
		return domainagg.MoveCropResult{}, f.moveErr
	}
	c, ok := f.crops[id]
	if !ok {
		return domainagg.MoveCropResult{}, catalog.NotFound(f.kind, id)
	}
	from := c.FarmID
	c.FarmID = farmID
	return domainagg.MoveCropResult{Crop: c, FromFarmID: from, Moved: from != farmID}, nil
}

func (f *fakeCrops) DeleteCrop(_ context.Context, id uuid.UUID) error {
	if _, ok := f.crops[id]; !ok {
		return catalog.NotFound(f.kind, id)
	}
	delete(f.crops, id)
	return nil
}

func (f *fakeCrops) DeleteByFarm(_ context.Context, farmID uuid.UUID) (domainagg.DeleteCropsResult, error) {
	return domainagg.DeleteCropsResult{FarmID: farmID}, nil
}

package services_test

import (
	"errors"
	"testing"

	"github.com/google/uuid"

	domainagg "github.com/yungbote/farm-catalog-backend/internal/domain/aggregates"
	"github.com/yungbote/farm-catalog-backend/internal/domain/catalog"
)

func TestFarmService_CreateAndGet(t *testing.T) {
	f := newFixture(t)

	farm, err := f.farms.CreateFarm(f.ctx, catalog.FarmAttributes{Name: " Green Valley Farm ", Location: "California, USA"})
	if err != nil {
		t.Fatalf("CreateFarm: %v", err)
	}
	if farm.ID == uuid.Nil || farm.Name != "Green Valley Farm" {
		t.Fatalf("unexpected farm: %+v", farm)
	}
	apple := f.crop(t, f.fruits, farm.ID, "Apple", "Red", 250)
	carrot := f.crop(t, f.vegetables, farm.ID, "Carrot", "Orange", 150)

	view, err := f.farms.GetFarm(f.ctx, farm.ID)
	if err != nil {
		t.Fatalf("GetFarm: %v", err)
	}
	if view.ID != farm.ID || len(view.Fruits) != 1 || view.Fruits[0].ID != apple.ID || len(view.Vegetables) != 1 || view.Vegetables[0].ID != carrot.ID {
		t.Fatalf("unexpected view: %+v", view)
	}

	n, err := f.farms.FarmCount(f.ctx)
	if err != nil || n != 1 {
		t.Fatalf("FarmCount: want=1 got=%d err=%v", n, err)
	}
}

func TestFarmService_CreateValidates(t *testing.T) {
	f := newFixture(t)
	_, err := f.farms.CreateFarm(f.ctx, catalog.FarmAttributes{Name: "A"})
	var ve *catalog.ValidationError
	if !errors.As(err, &ve) || ve.Field != "name" {
		t.Fatalf("expected name validation error, got %v", err)
	}
	if n, _ := f.farms.FarmCount(f.ctx); n != 0 {
		t.Fatalf("validation must not write, count=%d", n)
	}
}

func TestFarmService_Update(t *testing.T) {
	f := newFixture(t)
	farm := f.farm(t, "Old Name", "Old Place")

	updated, err := f.farms.UpdateFarm(f.ctx, farm.ID, catalog.FarmAttributes{Name: "New Name", Location: "New Place"})
	if err != nil {
		t.Fatalf("UpdateFarm: %v", err)
	}
	if updated.Name != "New Name" || updated.Location != "New Place" {
		t.Fatalf("unexpected update: %+v", updated)
	}
	view, err := f.farms.GetFarm(f.ctx, farm.ID)
	if err != nil || view.Name != "New Name" {
		t.Fatalf("reload: %+v err=%v", view, err)
	}

	_, err = f.farms.UpdateFarm(f.ctx, uuid.New(), catalog.FarmAttributes{Name: "Whatever"})
	var nf *catalog.NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestFarmService_FindByNameIsExact(t *testing.T) {
	f := newFixture(t)
	farm := f.farm(t, "Green Valley Farm", "California, USA")
	f.farm(t, "Green Valley Farm Annex", "Nevada, USA")

	got, err := f.farms.FindByName(f.ctx, " Green Valley Farm ")
	if err != nil {
		t.Fatalf("FindByName: %v", err)
	}
	if got.ID != farm.ID {
		t.Fatalf("farm: want=%s got=%s", farm.ID, got.ID)
	}

	for _, q := range []string{"Green Valley", "green valley farm", ""} {
		_, err := f.farms.FindByName(f.ctx, q)
		var nf *catalog.NotFoundError
		if !errors.As(err, &nf) || nf.Kind != catalog.KindFarm {
			t.Fatalf("query %q: expected farm not found, got %v", q, err)
		}
	}
}

func TestFarmService_DeleteFarmCascades(t *testing.T) {
	f := newFixture(t)
	farm := f.farm(t, "Doomed", "")
	f.crop(t, f.fruits, farm.ID, "Apple", "Red", 250)
	f.crop(t, f.vegetables, farm.ID, "Carrot", "Orange", 150)

	res, err := f.farms.DeleteFarm(f.ctx, farm.ID)
	if err != nil {
		t.Fatalf("DeleteFarm: %v", err)
	}
	if res.FruitsDeleted != 1 || res.VegetablesDeleted != 1 {
		t.Fatalf("unexpected result: %+v", res)
	}
	_, err = f.farms.GetFarm(f.ctx, farm.ID)
	if !domainagg.IsCode(err, domainagg.CodeNotFound) {
		t.Fatalf("expected farm gone, got %v", err)
	}
	all, err := f.fruits.ListCrops(f.ctx)
	if err != nil || len(all) != 0 {
		t.Fatalf("fruits left behind: %v err=%v", all, err)
	}
}

func TestFarmService_DeleteCropsKeepsFarm(t *testing.T) {
	f := newFixture(t)
	farm := f.farm(t, "Keeper", "")
	f.crop(t, f.fruits, farm.ID, "Apple", "Red", 250)
	f.crop(t, f.vegetables, farm.ID, "Carrot", "Orange", 150)

	res, err := f.farms.DeleteCrops(f.ctx, farm.ID, "")
	if err != nil {
		t.Fatalf("DeleteCrops: %v", err)
	}
	if res.FruitsDeleted != 1 || res.VegetablesDeleted != 1 {
		t.Fatalf("unexpected result: %+v", res)
	}
	view, err := f.farms.GetFarm(f.ctx, farm.ID)
	if err != nil {
		t.Fatalf("GetFarm: %v", err)
	}
	if len(view.Fruits) != 0 || len(view.Vegetables) != 0 {
		t.Fatalf("expected empty collections, got %+v", view)
	}
}

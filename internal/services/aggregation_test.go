package services_test

import (
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/yungbote/farm-catalog-backend/internal/domain/catalog"
	"github.com/yungbote/farm-catalog-backend/internal/services"
)

func TestStatsForFarm(t *testing.T) {
	f := newFixture(t)
	a := f.farm(t, "Farm A", "Kent, UK")
	b := f.farm(t, "Farm B", "Kent, UK")
	f.crop(t, f.fruits, a.ID, "Apple", "Red", 10)
	f.crop(t, f.fruits, a.ID, "Pear", "Green", 20)
	f.crop(t, f.vegetables, a.ID, "Leek", "Green", 5)

	stats, err := f.aggregation.StatsForFarm(f.ctx, a.ID)
	if err != nil {
		t.Fatalf("StatsForFarm A: %v", err)
	}
	if stats.FarmID != a.ID || stats.FarmName != "Farm A" || stats.FruitCount != 2 || stats.VegetableCount != 1 || stats.TotalWeight != 35.0 {
		t.Fatalf("unexpected stats for A: %+v", stats)
	}

	stats, err = f.aggregation.StatsForFarm(f.ctx, b.ID)
	if err != nil {
		t.Fatalf("StatsForFarm B: %v", err)
	}
	if stats.FruitCount != 0 || stats.VegetableCount != 0 || stats.TotalWeight != 0 {
		t.Fatalf("unexpected stats for B: %+v", stats)
	}

	_, err = f.aggregation.StatsForFarm(f.ctx, uuid.New())
	var nf *catalog.NotFoundError
	if !errors.As(err, &nf) || nf.Kind != catalog.KindFarm {
		t.Fatalf("expected farm not found, got %v", err)
	}
}

func TestSearchFarmsByName(t *testing.T) {
	f := newFixture(t)
	green := f.farm(t, "Green Valley Farm", "California, USA")
	f.farm(t, "Sunny Fields", "Texas, USA")
	organic := f.farm(t, "100% Organic Farm", "Oregon, USA")

	got, err := f.aggregation.SearchFarmsByName(f.ctx, "FARM")
	if err != nil {
		t.Fatalf("SearchFarmsByName: %v", err)
	}
	if want := []uuid.UUID{green.ID, organic.ID}; !sameIDs(farmIDs(got), want) {
		t.Fatalf("farm matches: want=%v got=%v", want, farmIDs(got))
	}

	got, err = f.aggregation.SearchFarmsByName(f.ctx, "0%")
	if err != nil {
		t.Fatalf("SearchFarmsByName wildcard: %v", err)
	}
	if len(got) != 1 || got[0].ID != organic.ID {
		t.Fatalf("percent must match literally, got %v", farmIDs(got))
	}

	got, err = f.aggregation.SearchFarmsByName(f.ctx, "  ")
	if err != nil {
		t.Fatalf("SearchFarmsByName blank: %v", err)
	}
	if got == nil || len(got) != 0 {
		t.Fatalf("blank search: want empty slice got %v", got)
	}

	got, err = f.aggregation.SearchFarmsByName(f.ctx, "nowhere")
	if err != nil || len(got) != 0 {
		t.Fatalf("no match: want empty, got %v err=%v", got, err)
	}
}

func TestFarmsByLocation(t *testing.T) {
	f := newFixture(t)
	a := f.farm(t, "Green Valley Farm", "California, USA")
	b := f.farm(t, "Sunny Fields", "Texas, USA")
	f.farm(t, "Highland", "Aberdeen, UK")

	got, err := f.aggregation.FarmsByLocation(f.ctx, "usa")
	if err != nil {
		t.Fatalf("FarmsByLocation: %v", err)
	}
	if want := []uuid.UUID{a.ID, b.ID}; !sameIDs(farmIDs(got), want) {
		t.Fatalf("location matches: want=%v got=%v", want, farmIDs(got))
	}

	alps := f.farm(t, "Ökohof Süd", "MÜNCHEN, Bayern")
	got, err = f.aggregation.FarmsByLocation(f.ctx, "münchen")
	if err != nil {
		t.Fatalf("FarmsByLocation non-ascii: %v", err)
	}
	if want := []uuid.UUID{alps.ID}; !sameIDs(farmIDs(got), want) {
		t.Fatalf("non-ascii location matches: want=%v got=%v", want, farmIDs(got))
	}

	for _, q := range []string{"Atlantis", ""} {
		_, err := f.aggregation.FarmsByLocation(f.ctx, q)
		var nf *catalog.NotFoundError
		if !errors.As(err, &nf) || nf.Kind != catalog.KindFarm || nf.Query != q {
			t.Fatalf("query %q: expected farm not found, got %v", q, err)
		}
	}
}

func TestRankFarms(t *testing.T) {
	f := newFixture(t)
	a := f.farm(t, "Farm A", "")
	b := f.farm(t, "Farm B", "")
	c := f.farm(t, "Farm C", "")
	d := f.farm(t, "Farm D", "")
	f.crop(t, f.fruits, a.ID, "Apple", "Red", 1)
	f.crop(t, f.fruits, c.ID, "Cherry", "Red", 1)
	f.crop(t, f.vegetables, d.ID, "Carrot", "Orange", 1)
	f.crop(t, f.vegetables, d.ID, "Onion", "White", 1)
	f.crop(t, f.vegetables, b.ID, "Kale", "Green", 1)

	cases := []struct {
		sortBy, order string
		want          []uuid.UUID
	}{
		{services.RankByFruits, services.OrderAsc, []uuid.UUID{b.ID, d.ID, a.ID, c.ID}},
		{services.RankByFruits, services.OrderDesc, []uuid.UUID{a.ID, c.ID, b.ID, d.ID}},
		{services.RankByVegetables, services.OrderAsc, []uuid.UUID{a.ID, c.ID, b.ID, d.ID}},
		{services.RankByVegetables, services.OrderDesc, []uuid.UUID{d.ID, b.ID, a.ID, c.ID}},
	}
	for _, tc := range cases {
		got, err := f.aggregation.RankFarms(f.ctx, tc.sortBy, tc.order)
		if err != nil {
			t.Fatalf("RankFarms(%s,%s): %v", tc.sortBy, tc.order, err)
		}
		if !sameIDs(rankingIDs(got), tc.want) {
			t.Fatalf("RankFarms(%s,%s): want=%v got=%v", tc.sortBy, tc.order, tc.want, rankingIDs(got))
		}
	}

	got, err := f.aggregation.RankFarms(f.ctx, services.RankByVegetables, services.OrderDesc)
	if err != nil {
		t.Fatalf("RankFarms: %v", err)
	}
	if got[0].VegetableCount != 2 || got[0].FruitCount != 0 || got[0].Name != "Farm D" {
		t.Fatalf("unexpected top ranking: %+v", got[0])
	}
}

func TestRankFarmsRejectsUnknownArguments(t *testing.T) {
	f := newFixture(t)

	_, err := f.aggregation.RankFarms(f.ctx, "weight", services.OrderAsc)
	var ia *catalog.InvalidArgumentError
	if !errors.As(err, &ia) || ia.Parameter != "sort_by" || ia.Value != "weight" {
		t.Fatalf("expected sort_by argument error, got %v", err)
	}
	if len(ia.Allowed) != 2 || ia.Allowed[0] != "fruits" || ia.Allowed[1] != "vegetables" {
		t.Fatalf("allowed values: %v", ia.Allowed)
	}

	_, err = f.aggregation.RankFarms(f.ctx, services.RankByFruits, "DESC")
	if !errors.As(err, &ia) || ia.Parameter != "order" {
		t.Fatalf("expected order argument error, got %v", err)
	}
}

func TestRankFarmsEmptyCatalog(t *testing.T) {
	f := newFixture(t)
	got, err := f.aggregation.RankFarms(f.ctx, services.RankByFruits, services.OrderAsc)
	if err != nil {
		t.Fatalf("RankFarms: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("want no rankings, got %+v", got)
	}
}

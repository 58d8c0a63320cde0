package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/yungbote/farm-catalog-backend/internal/domain/catalog"
)

// SeedFarm inserts a farm directly, bypassing services.
func SeedFarm(tb testing.TB, ctx context.Context, tx *gorm.DB, name, location string) *types.Farm {
	tb.Helper()
	now := time.Now().UTC()
	f := &types.Farm{
		ID:        uuid.New(),
		Name:      name,
		Location:  location,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := tx.WithContext(ctx).Create(f).Error; err != nil {
		tb.Fatalf("seed farm: %v", err)
	}
	return f
}

// SeedCrop inserts a crop of kind owned by farmID directly, bypassing services.
func SeedCrop(tb testing.TB, ctx context.Context, tx *gorm.DB, kind types.Kind, farmID uuid.UUID, name string, weight float64) *types.Crop {
	tb.Helper()
	now := time.Now().UTC()
	c := &types.Crop{
		ID:        uuid.New(),
		Kind:      kind,
		FarmID:    farmID,
		Name:      name,
		Color:     "green",
		Weight:    weight,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := tx.WithContext(ctx).Table(kind.Table()).Create(c).Error; err != nil {
		tb.Fatalf("seed %s: %v", kind, err)
	}
	return c
}

// CountRows counts rows in a catalog table.
func CountRows(tb testing.TB, tx *gorm.DB, kind types.Kind) int64 {
	tb.Helper()
	var n int64
	if err := tx.Table(kind.Table()).Count(&n).Error; err != nil {
		tb.Fatalf("count %s: %v", kind, err)
	}
	return n
}

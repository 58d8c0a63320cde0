package aggregates

import (
	"github.com/google/uuid"
	"github.com/yungbote/farm-catalog-backend/internal/domain/catalog"
)

var FarmAggregateContract = Contract{
	Name:             "Catalog.FarmAggregate",
	WriteTxOwnership: WriteTxOwnedByAggregate,
	ReadPolicy:       ReadPolicyInvariantScoped,
	Notes:            "Owns farm/crop ownership consistency: crop create, update, move, delete and farm cascade delete.",
}

type CreateCropInput struct {
	Kind   catalog.Kind
	FarmID uuid.UUID
	Attrs  catalog.CropAttributes
}

type UpdateCropInput struct {
	Kind   catalog.Kind
	CropID uuid.UUID
	FarmID uuid.UUID
	Attrs  catalog.CropAttributes
}

type MoveCropInput struct {
	Kind         catalog.Kind
	CropID       uuid.UUID
	TargetFarmID uuid.UUID
}

type MoveCropResult struct {
	Crop       *catalog.Crop
	FromFarmID uuid.UUID
	// Moved is false when the crop already belonged to the target farm.
	Moved bool
}

type DeleteCropInput struct {
	Kind   catalog.Kind
	CropID uuid.UUID
}

type DeleteFarmInput struct {
	FarmID uuid.UUID
}

type DeleteCropsByFarmInput struct {
	FarmID uuid.UUID
	// Kind restricts the delete to one crop kind; empty means every kind.
	Kind catalog.Kind
}

type DeleteCropsResult struct {
	FarmID            uuid.UUID `json:"farm_id"`
	FruitsDeleted     int64     `json:"fruits_deleted"`
	VegetablesDeleted int64     `json:"vegetables_deleted"`
}

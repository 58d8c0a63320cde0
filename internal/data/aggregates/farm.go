package aggregates

import (
	"bytes"
	"context"
	"fmt"
	"slices"

	"github.com/google/uuid"

	"github.com/yungbote/farm-catalog-backend/internal/data/repos"
	domainagg "github.com/yungbote/farm-catalog-backend/internal/domain/aggregates"
	"github.com/yungbote/farm-catalog-backend/internal/domain/catalog"
	"github.com/yungbote/farm-catalog-backend/internal/pkg/dbctx"
	"github.com/yungbote/farm-catalog-backend/internal/pkg/logger"
	"github.com/yungbote/farm-catalog-backend/internal/realtime"
)

// EventPublisher receives catalog events after a write commits.
type EventPublisher interface {
	Publish(ctx context.Context, ev realtime.CatalogEvent) error
}

type FarmAggregateDeps struct {
	Base       BaseDeps
	Farms      repos.FarmRepo
	Fruits     repos.CropRepo
	Vegetables repos.CropRepo
	Events     EventPublisher
}

// FarmAggregate owns every write that touches the farm/crop ownership link.
type FarmAggregate struct {
	deps FarmAggregateDeps
	log  *logger.Logger
}

func NewFarmAggregate(deps FarmAggregateDeps) *FarmAggregate {
	deps.Base = deps.Base.withDefaults()
	return &FarmAggregate{
		deps: deps,
		log:  deps.Base.Log.With("aggregate", "FarmAggregate"),
	}
}

func (a *FarmAggregate) Contract() domainagg.Contract {
	return domainagg.FarmAggregateContract
}

func (a *FarmAggregate) CreateCrop(ctx context.Context, in domainagg.CreateCropInput) (*catalog.Crop, error) {
	const op = "Catalog.Farm.CreateCrop"
	crops, err := a.cropRepo(in.Kind)
	if err != nil {
		return nil, domainagg.Wrap(domainagg.CodeInvalidArgument, op, err)
	}
	attrs := in.Attrs.Normalized()
	if err := attrs.Validate(); err != nil {
		return nil, domainagg.Wrap(domainagg.CodeValidation, op, err)
	}
	if in.FarmID == uuid.Nil {
		return nil, domainagg.Wrap(domainagg.CodeValidation, op, catalog.Invalid("farm_id", "is required"))
	}

	var out *catalog.Crop
	err = executeWrite(ctx, a.deps.Base, op, func(dbc dbctx.Context) error {
		farm, err := a.deps.Farms.LockByID(dbc, in.FarmID)
		if err != nil {
			return fmt.Errorf("lock farm: %w", err)
		}
		if farm == nil {
			return catalog.NotFound(catalog.KindFarm, in.FarmID)
		}
		crop := &catalog.Crop{FarmID: farm.ID}
		crop.Apply(attrs)
		created, err := crops.Create(dbc, crop)
		if err != nil {
			return fmt.Errorf("create %s: %w", in.Kind, err)
		}
		out = created
		return nil
	})
	if err != nil {
		return nil, err
	}
	a.publish(ctx, realtime.NewCatalogEvent(realtime.EventCropCreated, in.Kind, out.ID, out.FarmID))
	return out, nil
}

func (a *FarmAggregate) UpdateCrop(ctx context.Context, in domainagg.UpdateCropInput) (*catalog.Crop, error) {
	const op = "Catalog.Farm.UpdateCrop"
	crops, err := a.cropRepo(in.Kind)
	if err != nil {
		return nil, domainagg.Wrap(domainagg.CodeInvalidArgument, op, err)
	}
	attrs := in.Attrs.Normalized()
	if err := attrs.Validate(); err != nil {
		return nil, domainagg.Wrap(domainagg.CodeValidation, op, err)
	}
	if in.FarmID == uuid.Nil {
		return nil, domainagg.Wrap(domainagg.CodeValidation, op, catalog.Invalid("farm_id", "is required"))
	}

	var (
		out  *catalog.Crop
		from uuid.UUID
	)
	err = executeWrite(ctx, a.deps.Base, op, func(dbc dbctx.Context) error {
		crop, farms, err := a.lockCropWrite(dbc, crops, in.CropID, in.FarmID)
		if err != nil {
			return err
		}
		farm := farms[in.FarmID]
		if farm == nil {
			return catalog.NotFound(catalog.KindFarm, in.FarmID)
		}
		from = crop.FarmID
		crop.Apply(attrs)
		crop.FarmID = farm.ID
		if err := crops.Update(dbc, crop); err != nil {
			return fmt.Errorf("update %s: %w", in.Kind, err)
		}
		out = crop
		return nil
	})
	if err != nil {
		return nil, err
	}
	a.publish(ctx, realtime.NewCatalogEvent(realtime.EventCropUpdated, in.Kind, out.ID, out.FarmID))
	if from != out.FarmID {
		a.publish(ctx, movedEvent(in.Kind, out, from))
	}
	return out, nil
}

// MoveCrop reassigns a crop to another farm. Moving to the current owner is a no-op.
func (a *FarmAggregate) MoveCrop(ctx context.Context, in domainagg.MoveCropInput) (domainagg.MoveCropResult, error) {
	const op = "Catalog.Farm.MoveCrop"
	out := domainagg.MoveCropResult{}
	crops, err := a.cropRepo(in.Kind)
	if err != nil {
		return out, domainagg.Wrap(domainagg.CodeInvalidArgument, op, err)
	}
	if in.TargetFarmID == uuid.Nil {
		return out, domainagg.Wrap(domainagg.CodeValidation, op, catalog.Invalid("farm_id", "is required"))
	}

	err = executeWrite(ctx, a.deps.Base, op, func(dbc dbctx.Context) error {
		crop, farms, err := a.lockCropWrite(dbc, crops, in.CropID, in.TargetFarmID)
		if err != nil {
			return err
		}
		target := farms[in.TargetFarmID]
		if target == nil {
			return catalog.NotFound(catalog.KindFarm, in.TargetFarmID)
		}
		out.FromFarmID = crop.FarmID
		if crop.FarmID == target.ID {
			out.Crop = crop
			return nil
		}
		crop.FarmID = target.ID
		if err := crops.Update(dbc, crop); err != nil {
			return fmt.Errorf("move %s: %w", in.Kind, err)
		}
		out.Crop = crop
		out.Moved = true
		return nil
	})
	if err != nil {
		return domainagg.MoveCropResult{}, err
	}
	if out.Moved {
		a.publish(ctx, movedEvent(in.Kind, out.Crop, out.FromFarmID))
	}
	return out, nil
}

func (a *FarmAggregate) DeleteCrop(ctx context.Context, in domainagg.DeleteCropInput) error {
	const op = "Catalog.Farm.DeleteCrop"
	crops, err := a.cropRepo(in.Kind)
	if err != nil {
		return domainagg.Wrap(domainagg.CodeInvalidArgument, op, err)
	}

	var farmID uuid.UUID
	err = executeWrite(ctx, a.deps.Base, op, func(dbc dbctx.Context) error {
		crop, _, err := a.lockCropWrite(dbc, crops, in.CropID)
		if err != nil {
			return err
		}
		farmID = crop.FarmID
		n, err := crops.DeleteByID(dbc, crop.ID)
		if err != nil {
			return fmt.Errorf("delete %s: %w", in.Kind, err)
		}
		if n == 0 {
			return catalog.NotFound(in.Kind, in.CropID)
		}
		return nil
	})
	if err != nil {
		return err
	}
	a.publish(ctx, realtime.NewCatalogEvent(realtime.EventCropDeleted, in.Kind, in.CropID, farmID))
	return nil
}

// DeleteFarm removes the farm after deleting its fruits and vegetables, all in one transaction.
func (a *FarmAggregate) DeleteFarm(ctx context.Context, in domainagg.DeleteFarmInput) (domainagg.DeleteCropsResult, error) {
	const op = "Catalog.Farm.DeleteFarm"
	out := domainagg.DeleteCropsResult{FarmID: in.FarmID}

	err := executeWrite(ctx, a.deps.Base, op, func(dbc dbctx.Context) error {
		farm, err := a.deps.Farms.LockByID(dbc, in.FarmID)
		if err != nil {
			return fmt.Errorf("lock farm: %w", err)
		}
		if farm == nil {
			return catalog.NotFound(catalog.KindFarm, in.FarmID)
		}
		if out.FruitsDeleted, err = a.deps.Fruits.DeleteByFarmID(dbc, farm.ID); err != nil {
			return fmt.Errorf("delete fruits: %w", err)
		}
		if out.VegetablesDeleted, err = a.deps.Vegetables.DeleteByFarmID(dbc, farm.ID); err != nil {
			return fmt.Errorf("delete vegetables: %w", err)
		}
		if _, err := a.deps.Farms.DeleteByID(dbc, farm.ID); err != nil {
			return fmt.Errorf("delete farm: %w", err)
		}
		return nil
	})
	if err != nil {
		return domainagg.DeleteCropsResult{}, err
	}
	ev := realtime.NewCatalogEvent(realtime.EventFarmDeleted, catalog.KindFarm, in.FarmID, in.FarmID)
	ev.Count = out.FruitsDeleted + out.VegetablesDeleted
	a.publish(ctx, ev)
	return out, nil
}

// DeleteCropsByFarm removes crops owned by the farm and keeps the farm itself.
func (a *FarmAggregate) DeleteCropsByFarm(ctx context.Context, in domainagg.DeleteCropsByFarmInput) (domainagg.DeleteCropsResult, error) {
	const op = "Catalog.Farm.DeleteCropsByFarm"
	out := domainagg.DeleteCropsResult{FarmID: in.FarmID}
	if in.Kind != "" {
		if _, err := a.cropRepo(in.Kind); err != nil {
			return out, domainagg.Wrap(domainagg.CodeInvalidArgument, op, err)
		}
	}

	err := executeWrite(ctx, a.deps.Base, op, func(dbc dbctx.Context) error {
		farm, err := a.deps.Farms.LockByID(dbc, in.FarmID)
		if err != nil {
			return fmt.Errorf("lock farm: %w", err)
		}
		if farm == nil {
			return catalog.NotFound(catalog.KindFarm, in.FarmID)
		}
		if in.Kind == "" || in.Kind == catalog.KindFruit {
			if out.FruitsDeleted, err = a.deps.Fruits.DeleteByFarmID(dbc, farm.ID); err != nil {
				return fmt.Errorf("delete fruits: %w", err)
			}
		}
		if in.Kind == "" || in.Kind == catalog.KindVegetable {
			if out.VegetablesDeleted, err = a.deps.Vegetables.DeleteByFarmID(dbc, farm.ID); err != nil {
				return fmt.Errorf("delete vegetables: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return domainagg.DeleteCropsResult{FarmID: in.FarmID}, err
	}
	ev := realtime.NewCatalogEvent(realtime.EventFarmCropsDeleted, in.Kind, in.FarmID, in.FarmID)
	ev.Count = out.FruitsDeleted + out.VegetablesDeleted
	a.publish(ctx, ev)
	return out, nil
}

func (a *FarmAggregate) cropRepo(kind catalog.Kind) (repos.CropRepo, error) {
	switch kind {
	case catalog.KindFruit:
		return a.deps.Fruits, nil
	case catalog.KindVegetable:
		return a.deps.Vegetables, nil
	default:
		return nil, catalog.InvalidArgument("kind", string(kind), catalog.KindFruit.String(), catalog.KindVegetable.String())
	}
}

func (a *FarmAggregate) otherCropRepo(kind catalog.Kind) repos.CropRepo {
	if kind == catalog.KindFruit {
		return a.deps.Vegetables
	}
	return a.deps.Fruits
}

// lockCropWrite takes the locks for a write to one crop. Lock order for every
// write: farms by ascending id (owner plus targets), then the crop row.
// Missing target farms are absent from the returned map.
func (a *FarmAggregate) lockCropWrite(dbc dbctx.Context, crops repos.CropRepo, id uuid.UUID, targets ...uuid.UUID) (*catalog.Crop, map[uuid.UUID]*catalog.Farm, error) {
	seen, err := a.findCrop(dbc, crops, id)
	if err != nil {
		return nil, nil, err
	}
	ids := append([]uuid.UUID{seen.FarmID}, targets...)
	slices.SortFunc(ids, func(x, y uuid.UUID) int { return bytes.Compare(x[:], y[:]) })
	ids = slices.Compact(ids)

	farms := make(map[uuid.UUID]*catalog.Farm, len(ids))
	for _, farmID := range ids {
		farm, err := a.deps.Farms.LockByID(dbc, farmID)
		if err != nil {
			return nil, nil, fmt.Errorf("lock farm: %w", err)
		}
		if farm != nil {
			farms[farmID] = farm
		}
	}

	crop, err := crops.LockByID(dbc, id)
	if err != nil {
		return nil, nil, fmt.Errorf("lock %s: %w", crops.Kind(), err)
	}
	if crop == nil {
		return nil, nil, catalog.NotFound(crops.Kind(), id)
	}
	if crop.FarmID != seen.FarmID {
		return nil, nil, RetryableError(fmt.Sprintf("%s %s changed farm while locking", crops.Kind(), id))
	}
	return crop, farms, nil
}

// findCrop reads the crop without a lock. An id that only exists under the
// other crop kind is reported as a kind mismatch rather than a plain miss.
func (a *FarmAggregate) findCrop(dbc dbctx.Context, crops repos.CropRepo, id uuid.UUID) (*catalog.Crop, error) {
	crop, err := crops.GetByID(dbc, id)
	if err != nil {
		return nil, fmt.Errorf("lookup %s: %w", crops.Kind(), err)
	}
	if crop != nil {
		return crop, nil
	}
	other := a.otherCropRepo(crops.Kind())
	mismatch, err := other.GetByID(dbc, id)
	if err != nil {
		return nil, fmt.Errorf("lookup %s: %w", other.Kind(), err)
	}
	if mismatch != nil {
		return nil, catalog.InvalidArgument("kind", crops.Kind().String(), other.Kind().String())
	}
	return nil, catalog.NotFound(crops.Kind(), id)
}

func movedEvent(kind catalog.Kind, crop *catalog.Crop, from uuid.UUID) realtime.CatalogEvent {
	ev := realtime.NewCatalogEvent(realtime.EventCropMoved, kind, crop.ID, crop.FarmID)
	ev.FromFarmID = &from
	return ev
}

func (a *FarmAggregate) publish(ctx context.Context, ev realtime.CatalogEvent) {
	if a.deps.Events == nil {
		return
	}
	if err := a.deps.Events.Publish(ctx, ev); err != nil {
		a.log.WithContext(ctx).Warn("publish catalog event failed",
			"type", ev.Type,
			"id", ev.ID,
			"error", err,
		)
	}
}

package realtime

import (
	"time"

	"github.com/google/uuid"

	"github.com/yungbote/farm-catalog-backend/internal/domain/catalog"
)

type EventType string

const (
	EventCropCreated      EventType = "crop.created"
	EventCropUpdated      EventType = "crop.updated"
	EventCropMoved        EventType = "crop.moved"
	EventCropDeleted      EventType = "crop.deleted"
	EventFarmDeleted      EventType = "farm.deleted"
	EventFarmCropsDeleted EventType = "farm.crops_deleted"
)

// CatalogEvent describes a committed change to the catalog.
type CatalogEvent struct {
	Type       EventType    `json:"type"`
	Kind       catalog.Kind `json:"kind"`
	ID         uuid.UUID    `json:"id"`
	FarmID     uuid.UUID    `json:"farm_id"`
	FromFarmID *uuid.UUID   `json:"from_farm_id,omitempty"`
	Count      int64        `json:"count,omitempty"`
	At         time.Time    `json:"at"`
}

func NewCatalogEvent(typ EventType, kind catalog.Kind, id, farmID uuid.UUID) CatalogEvent {
	return CatalogEvent{
		Type:   typ,
		Kind:   kind,
		ID:     id,
		FarmID: farmID,
		At:     time.Now().UTC(),
	}
}

package catalog

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	types "github.com/yungbote/farm-catalog-backend/internal/domain/catalog"
	"github.com/yungbote/farm-catalog-backend/internal/pkg/dbctx"
	"github.com/yungbote/farm-catalog-backend/internal/pkg/logger"
)

// CropRepo stores the crops of one kind. Fruits and vegetables each get their
// own instance bound to their own table.
type CropRepo interface {
	Kind() types.Kind
	Create(dbc dbctx.Context, crop *types.Crop) (*types.Crop, error)
	GetByID(dbc dbctx.Context, id uuid.UUID) (*types.Crop, error)
	LockByID(dbc dbctx.Context, id uuid.UUID) (*types.Crop, error)
	List(dbc dbctx.Context) ([]*types.Crop, error)
	GetByFarmID(dbc dbctx.Context, farmID uuid.UUID) ([]*types.Crop, error)
	SearchByName(dbc dbctx.Context, substr string) ([]*types.Crop, error)
	FilterByColor(dbc dbctx.Context, color string) ([]*types.Crop, error)
	FindByColorAndWeight(dbc dbctx.Context, color string, weight float64) ([]*types.Crop, error)
	Update(dbc dbctx.Context, crop *types.Crop) error
	DeleteByID(dbc dbctx.Context, id uuid.UUID) (int64, error)
	DeleteByFarmID(dbc dbctx.Context, farmID uuid.UUID) (int64, error)
	CountByFarmID(dbc dbctx.Context, farmID uuid.UUID) (int64, error)
	CountsByFarm(dbc dbctx.Context) (map[uuid.UUID]int64, error)
}

type cropRepo struct {
	db    *gorm.DB
	log   *logger.Logger
	kind  types.Kind
	table string
}

func NewCropRepo(db *gorm.DB, baseLog *logger.Logger, kind types.Kind) (CropRepo, error) {
	if !kind.IsCrop() {
		return nil, fmt.Errorf("not a crop kind: %q", kind)
	}
	return &cropRepo{
		db:    db,
		log:   baseLog.With("repo", "CropRepo", "kind", kind.String()),
		kind:  kind,
		table: kind.Table(),
	}, nil
}

func NewFruitRepo(db *gorm.DB, baseLog *logger.Logger) CropRepo {
	r, _ := NewCropRepo(db, baseLog, types.KindFruit)
	return r
}

func NewVegetableRepo(db *gorm.DB, baseLog *logger.Logger) CropRepo {
	r, _ := NewCropRepo(db, baseLog, types.KindVegetable)
	return r
}

func (r *cropRepo) Kind() types.Kind { return r.kind }

func (r *cropRepo) tx(dbc dbctx.Context) *gorm.DB {
	return dbc.DB(r.db).Table(r.table)
}

func (r *cropRepo) stamp(rows ...*types.Crop) {
	for _, c := range rows {
		if c != nil {
			c.Kind = r.kind
		}
	}
}

func (r *cropRepo) Create(dbc dbctx.Context, crop *types.Crop) (*types.Crop, error) {
	if crop == nil {
		return nil, fmt.Errorf("missing crop")
	}
	if crop.FarmID == uuid.Nil {
		return nil, fmt.Errorf("missing farm_id")
	}
	if crop.ID == uuid.Nil {
		crop.ID = uuid.New()
	}
	now := time.Now().UTC()
	crop.CreatedAt = now
	crop.UpdatedAt = now
	if err := r.tx(dbc).Create(crop).Error; err != nil {
		return nil, err
	}
	r.stamp(crop)
	return crop, nil
}

func (r *cropRepo) GetByID(dbc dbctx.Context, id uuid.UUID) (*types.Crop, error) {
	return r.take(r.tx(dbc), id)
}

// LockByID reads the crop with a row lock held until the transaction ends.
func (r *cropRepo) LockByID(dbc dbctx.Context, id uuid.UUID) (*types.Crop, error) {
	if dbc.Tx == nil {
		return nil, fmt.Errorf("LockByID required dbc.Tx")
	}
	return r.take(r.tx(dbc).Clauses(clause.Locking{Strength: "UPDATE"}), id)
}

func (r *cropRepo) take(q *gorm.DB, id uuid.UUID) (*types.Crop, error) {
	if id == uuid.Nil {
		return nil, nil
	}
	var out types.Crop
	err := q.Where("id = ?", id).Take(&out).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	r.stamp(&out)
	return &out, nil
}

func (r *cropRepo) find(q *gorm.DB) ([]*types.Crop, error) {
	out := []*types.Crop{}
	if err := q.Order(storeOrder).Find(&out).Error; err != nil {
		return nil, err
	}
	r.stamp(out...)
	return out, nil
}

func (r *cropRepo) List(dbc dbctx.Context) ([]*types.Crop, error) {
	return r.find(r.tx(dbc))
}

func (r *cropRepo) GetByFarmID(dbc dbctx.Context, farmID uuid.UUID) ([]*types.Crop, error) {
	if farmID == uuid.Nil {
		return []*types.Crop{}, nil
	}
	return r.find(r.tx(dbc).Where("farm_id = ?", farmID))
}

func (r *cropRepo) SearchByName(dbc dbctx.Context, substr string) ([]*types.Crop, error) {
	q := r.tx(dbc)
	if foldsInSQL(q) {
		q = q.Where("name ILIKE ? "+likeEscape, containsPattern(substr))
	}
	rows, err := r.find(q)
	if err != nil {
		return nil, err
	}
	return keep(rows, func(c *types.Crop) bool { return containsFold(c.Name, substr) }), nil
}

func (r *cropRepo) FilterByColor(dbc dbctx.Context, color string) ([]*types.Crop, error) {
	return r.findByColor(r.tx(dbc), color)
}

func (r *cropRepo) FindByColorAndWeight(dbc dbctx.Context, color string, weight float64) ([]*types.Crop, error) {
	return r.findByColor(r.tx(dbc).Where("weight = ?", weight), color)
}

func (r *cropRepo) findByColor(q *gorm.DB, color string) ([]*types.Crop, error) {
	color = strings.TrimSpace(color)
	if foldsInSQL(q) {
		q = q.Where("LOWER(color) = LOWER(?)", color)
	}
	rows, err := r.find(q)
	if err != nil {
		return nil, err
	}
	return keep(rows, func(c *types.Crop) bool { return equalFold(c.Color, color) }), nil
}

// Update saves attributes and ownership in one statement.
func (r *cropRepo) Update(dbc dbctx.Context, crop *types.Crop) error {
	if crop == nil || crop.ID == uuid.Nil {
		return fmt.Errorf("missing crop id")
	}
	if crop.FarmID == uuid.Nil {
		return fmt.Errorf("missing farm_id")
	}
	crop.UpdatedAt = time.Now().UTC()
	res := r.tx(dbc).
		Where("id = ?", crop.ID).
		Updates(map[string]interface{}{
			"farm_id":    crop.FarmID,
			"name":       crop.Name,
			"color":      crop.Color,
			"weight":     crop.Weight,
			"updated_at": crop.UpdatedAt,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *cropRepo) DeleteByID(dbc dbctx.Context, id uuid.UUID) (int64, error) {
	if id == uuid.Nil {
		return 0, nil
	}
	res := r.tx(dbc).Where("id = ?", id).Delete(&types.Crop{})
	return res.RowsAffected, res.Error
}

func (r *cropRepo) DeleteByFarmID(dbc dbctx.Context, farmID uuid.UUID) (int64, error) {
	if farmID == uuid.Nil {
		return 0, nil
	}
	res := r.tx(dbc).Where("farm_id = ?", farmID).Delete(&types.Crop{})
	return res.RowsAffected, res.Error
}

func (r *cropRepo) CountByFarmID(dbc dbctx.Context, farmID uuid.UUID) (int64, error) {
	var n int64
	if farmID == uuid.Nil {
		return 0, nil
	}
	if err := r.tx(dbc).Where("farm_id = ?", farmID).Count(&n).Error; err != nil {
		return 0, err
	}
	return n, nil
}

type farmCount struct {
	FarmID uuid.UUID
	N      int64
}

func (r *cropRepo) CountsByFarm(dbc dbctx.Context) (map[uuid.UUID]int64, error) {
	var rows []farmCount
	if err := r.tx(dbc).
		Select("farm_id, COUNT(*) AS n").
		Group("farm_id").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	out := make(map[uuid.UUID]int64, len(rows))
	for _, row := range rows {
		out[row.FarmID] = row.N
	}
	return out, nil
}

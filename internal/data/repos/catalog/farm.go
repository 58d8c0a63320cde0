package catalog

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	types "github.com/yungbote/farm-catalog-backend/internal/domain/catalog"
	"github.com/yungbote/farm-catalog-backend/internal/pkg/dbctx"
	"github.com/yungbote/farm-catalog-backend/internal/pkg/logger"
)

type FarmRepo interface {
	Create(dbc dbctx.Context, farm *types.Farm) (*types.Farm, error)
	GetByID(dbc dbctx.Context, id uuid.UUID) (*types.Farm, error)
	LockByID(dbc dbctx.Context, id uuid.UUID) (*types.Farm, error)
	GetByName(dbc dbctx.Context, name string) (*types.Farm, error)
	List(dbc dbctx.Context) ([]*types.Farm, error)
	SearchByName(dbc dbctx.Context, substr string) ([]*types.Farm, error)
	SearchByLocation(dbc dbctx.Context, substr string) ([]*types.Farm, error)
	Update(dbc dbctx.Context, farm *types.Farm) error
	DeleteByID(dbc dbctx.Context, id uuid.UUID) (int64, error)
	Count(dbc dbctx.Context) (int64, error)
}

type farmRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewFarmRepo(db *gorm.DB, baseLog *logger.Logger) FarmRepo {
	return &farmRepo{db: db, log: baseLog.With("repo", "FarmRepo")}
}

func (r *farmRepo) Create(dbc dbctx.Context, farm *types.Farm) (*types.Farm, error) {
	if farm == nil {
		return nil, fmt.Errorf("missing farm")
	}
	if farm.ID == uuid.Nil {
		farm.ID = uuid.New()
	}
	now := time.Now().UTC()
	farm.CreatedAt = now
	farm.UpdatedAt = now
	if err := dbc.DB(r.db).Create(farm).Error; err != nil {
		return nil, err
	}
	return farm, nil
}

func (r *farmRepo) GetByID(dbc dbctx.Context, id uuid.UUID) (*types.Farm, error) {
	if id == uuid.Nil {
		return nil, nil
	}
	var out types.Farm
	err := dbc.DB(r.db).Where("id = ?", id).Take(&out).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// LockByID reads the farm with a row lock held until the transaction ends.
func (r *farmRepo) LockByID(dbc dbctx.Context, id uuid.UUID) (*types.Farm, error) {
	if dbc.Tx == nil {
		return nil, fmt.Errorf("LockByID required dbc.Tx")
	}
	if id == uuid.Nil {
		return nil, nil
	}
	var out types.Farm
	err := dbc.DB(r.db).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).
		Take(&out).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// GetByName returns the first farm in store order whose name equals name exactly.
func (r *farmRepo) GetByName(dbc dbctx.Context, name string) (*types.Farm, error) {
	var out types.Farm
	err := dbc.DB(r.db).Where("name = ?", name).Order(storeOrder).Take(&out).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *farmRepo) List(dbc dbctx.Context) ([]*types.Farm, error) {
	out := []*types.Farm{}
	if err := dbc.DB(r.db).Order(storeOrder).Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *farmRepo) SearchByName(dbc dbctx.Context, substr string) ([]*types.Farm, error) {
	return r.searchColumn(dbc, "name", substr, func(f *types.Farm) string { return f.Name })
}

func (r *farmRepo) SearchByLocation(dbc dbctx.Context, substr string) ([]*types.Farm, error) {
	return r.searchColumn(dbc, "location", substr, func(f *types.Farm) string { return f.Location })
}

func (r *farmRepo) searchColumn(dbc dbctx.Context, column, substr string, field func(*types.Farm) string) ([]*types.Farm, error) {
	out := []*types.Farm{}
	q := dbc.DB(r.db)
	if foldsInSQL(q) {
		q = q.Where(column+" ILIKE ? "+likeEscape, containsPattern(substr))
	}
	if err := q.Order(storeOrder).Find(&out).Error; err != nil {
		return nil, err
	}
	return keep(out, func(f *types.Farm) bool { return containsFold(field(f), substr) }), nil
}

func (r *farmRepo) Update(dbc dbctx.Context, farm *types.Farm) error {
	if farm == nil || farm.ID == uuid.Nil {
		return fmt.Errorf("missing farm id")
	}
	farm.UpdatedAt = time.Now().UTC()
	return dbc.DB(r.db).
		Model(&types.Farm{}).
		Where("id = ?", farm.ID).
		Updates(map[string]interface{}{
			"name":       farm.Name,
			"location":   farm.Location,
			"updated_at": farm.UpdatedAt,
		}).Error
}

func (r *farmRepo) DeleteByID(dbc dbctx.Context, id uuid.UUID) (int64, error) {
	if id == uuid.Nil {
		return 0, nil
	}
	res := dbc.DB(r.db).Where("id = ?", id).Delete(&types.Farm{})
	return res.RowsAffected, res.Error
}

func (r *farmRepo) Count(dbc dbctx.Context) (int64, error) {
	var n int64
	if err := dbc.DB(r.db).Model(&types.Farm{}).Count(&n).Error; err != nil {
		return 0, err
	}
	return n, nil
}

package repos

import (
	"gorm.io/gorm"

	"github.com/yungbote/farm-catalog-backend/internal/data/repos/catalog"
	"github.com/yungbote/farm-catalog-backend/internal/pkg/logger"
)

type FarmRepo = catalog.FarmRepo
type CropRepo = catalog.CropRepo

func NewFarmRepo(db *gorm.DB, baseLog *logger.Logger) FarmRepo {
	return catalog.NewFarmRepo(db, baseLog)
}
func NewFruitRepo(db *gorm.DB, baseLog *logger.Logger) CropRepo {
	return catalog.NewFruitRepo(db, baseLog)
}
func NewVegetableRepo(db *gorm.DB, baseLog *logger.Logger) CropRepo {
	return catalog.NewVegetableRepo(db, baseLog)
}

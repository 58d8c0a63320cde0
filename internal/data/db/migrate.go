package db

import (
	"gorm.io/gorm"

	types "github.com/yungbote/farm-catalog-backend/internal/domain/catalog"
)

func AutoMigrateAll(db *gorm.DB) error {
	return db.AutoMigrate(
		&types.Farm{},
		&types.Fruit{},
		&types.Vegetable{},
	)
}

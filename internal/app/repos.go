package app

import (
	"gorm.io/gorm"

	"github.com/yungbote/farm-catalog-backend/internal/data/repos"
	"github.com/yungbote/farm-catalog-backend/internal/pkg/logger"
)

type Repos struct {
	Farm      repos.FarmRepo
	Fruit     repos.CropRepo
	Vegetable repos.CropRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		Farm:      repos.NewFarmRepo(db, log),
		Fruit:     repos.NewFruitRepo(db, log),
		Vegetable: repos.NewVegetableRepo(db, log),
	}
}

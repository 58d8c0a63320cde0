// Package seed loads sample farms and crops into an empty catalog.
package seed

import (
	"context"
	_ "embed"
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/yungbote/farm-catalog-backend/internal/domain/catalog"
	"github.com/yungbote/farm-catalog-backend/internal/pkg/logger"
)

//go:embed seed.yaml
var defaultSeed []byte

type File struct {
	Farms []Farm `yaml:"farms"`
}

type Farm struct {
	Name       string `yaml:"name"`
	Location   string `yaml:"location"`
	Vegetables []Crop `yaml:"vegetables"`
	Fruits     []Crop `yaml:"fruits"`
}

type Crop struct {
	Name   string  `yaml:"name"`
	Color  string  `yaml:"color"`
	Weight float64 `yaml:"weight"`
}

func (c Crop) attrs() catalog.CropAttributes {
	return catalog.CropAttributes{Name: c.Name, Color: c.Color, Weight: c.Weight}
}

// Default returns the embedded sample catalog.
func Default() (*File, error) {
	return Parse(defaultSeed)
}

func Parse(raw []byte) (*File, error) {
	var f File
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse seed: %w", err)
	}
	return &f, nil
}

// Load reads a seed file from path, or the embedded default when path is blank.
func Load(path string) (*File, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return Default()
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed file %s: %w", path, err)
	}
	return Parse(raw)
}

type FarmCreator interface {
	FarmCount(ctx context.Context) (int64, error)
	CreateFarm(ctx context.Context, attrs catalog.FarmAttributes) (*catalog.Farm, error)
}

type CropCreator interface {
	CreateCrop(ctx context.Context, farmID uuid.UUID, attrs catalog.CropAttributes) (*catalog.Crop, error)
}

type Result struct {
	Skipped    bool `json:"skipped"`
	Farms      int  `json:"farms"`
	Fruits     int  `json:"fruits"`
	Vegetables int  `json:"vegetables"`
}

// Seeder writes seed data through the catalog services so every record
// passes the same validation and ownership checks as API writes.
type Seeder struct {
	log        *logger.Logger
	farms      FarmCreator
	fruits     CropCreator
	vegetables CropCreator
}

func NewSeeder(baseLog *logger.Logger, farms FarmCreator, fruits, vegetables CropCreator) *Seeder {
	if baseLog == nil {
		baseLog = logger.NewNop()
	}
	return &Seeder{
		log:        baseLog.With("component", "Seeder"),
		farms:      farms,
		fruits:     fruits,
		vegetables: vegetables,
	}
}

// Apply is a no-op when the catalog already holds a farm.
func (s *Seeder) Apply(ctx context.Context, f *File) (Result, error) {
	var res Result
	if f == nil {
		return res, fmt.Errorf("seed file is nil")
	}
	n, err := s.farms.FarmCount(ctx)
	if err != nil {
		return res, fmt.Errorf("count farms: %w", err)
	}
	if n > 0 {
		s.log.Info("Catalog already populated; skipping seed", "farms", n)
		res.Skipped = true
		return res, nil
	}

	for _, sf := range f.Farms {
		farm, err := s.farms.CreateFarm(ctx, catalog.FarmAttributes{Name: sf.Name, Location: sf.Location})
		if err != nil {
			return res, fmt.Errorf("seed farm %q: %w", sf.Name, err)
		}
		res.Farms++
		for _, c := range sf.Vegetables {
			if _, err := s.vegetables.CreateCrop(ctx, farm.ID, c.attrs()); err != nil {
				return res, fmt.Errorf("seed vegetable %q: %w", c.Name, err)
			}
			res.Vegetables++
		}
		for _, c := range sf.Fruits {
			if _, err := s.fruits.CreateCrop(ctx, farm.ID, c.attrs()); err != nil {
				return res, fmt.Errorf("seed fruit %q: %w", c.Name, err)
			}
			res.Fruits++
		}
	}
	s.log.Info("Seeded catalog", "farms", res.Farms, "fruits", res.Fruits, "vegetables", res.Vegetables)
	return res, nil
}

package catalog

import (
	"time"

	"github.com/google/uuid"
)

// Crop is a fruit or vegetable row. Ownership is the FarmID foreign key only;
// a farm's collections are derived by querying crops on FarmID.
type Crop struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Kind      Kind      `gorm:"-" json:"kind"`
	FarmID    uuid.UUID `gorm:"type:uuid;not null;index" json:"farm_id"`
	Name      string    `gorm:"column:name;size:50;not null" json:"name"`
	Color     string    `gorm:"column:color;size:50" json:"color"`
	Weight    float64   `gorm:"column:weight;not null" json:"weight"`
	CreatedAt time.Time `gorm:"not null;index" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

// Fruit and Vegetable share the crop columns but live in separate tables.
type Fruit struct {
	Crop `gorm:"embedded"`
}

func (Fruit) TableName() string { return KindFruit.Table() }

type Vegetable struct {
	Crop `gorm:"embedded"`
}

func (Vegetable) TableName() string { return KindVegetable.Table() }

// CropAttributes is the caller-controlled part of a crop.
type CropAttributes struct {
	Name   string
	Color  string
	Weight float64
}

func (a CropAttributes) Normalized() CropAttributes {
	return CropAttributes{Name: trim(a.Name), Color: trim(a.Color), Weight: a.Weight}
}

func (a CropAttributes) Validate() error {
	a = a.Normalized()
	if err := requireLength("name", a.Name, CropNameMin, CropNameMax); err != nil {
		return err
	}
	if err := maxLength("color", a.Color, CropColorMax); err != nil {
		return err
	}
	return positiveWeight(a.Weight)
}

// Apply copies normalized attributes onto the crop. Ownership is not touched.
func (c *Crop) Apply(a CropAttributes) {
	a = a.Normalized()
	c.Name = a.Name
	c.Color = a.Color
	c.Weight = a.Weight
}

package catalog

import (
	"time"

	"github.com/google/uuid"
)

type Farm struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name      string    `gorm:"column:name;size:100;not null;index" json:"name"`
	Location  string    `gorm:"column:location;size:255" json:"location"`
	CreatedAt time.Time `gorm:"not null;index" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (Farm) TableName() string { return "farm" }

// FarmAttributes is the caller-controlled part of a farm.
type FarmAttributes struct {
	Name     string
	Location string
}

// Normalized trims surrounding whitespace.
func (a FarmAttributes) Normalized() FarmAttributes {
	return FarmAttributes{Name: trim(a.Name), Location: trim(a.Location)}
}

func (a FarmAttributes) Validate() error {
	a = a.Normalized()
	if err := requireLength("name", a.Name, FarmNameMin, FarmNameMax); err != nil {
		return err
	}
	return maxLength("location", a.Location, FarmLocationMax)
}

// Apply copies normalized attributes onto the farm.
func (f *Farm) Apply(a FarmAttributes) {
	a = a.Normalized()
	f.Name = a.Name
	f.Location = a.Location
}

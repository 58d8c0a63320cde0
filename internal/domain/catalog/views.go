package catalog

import "github.com/google/uuid"

// FarmView is a farm with its crop collections resolved from the crop tables.
type FarmView struct {
	*Farm
	Vegetables []*Crop `json:"vegetables"`
	Fruits     []*Crop `json:"fruits"`
}

type FarmStats struct {
	FarmID         uuid.UUID `json:"farm_id"`
	FarmName       string    `json:"farm_name"`
	FruitCount     int       `json:"fruit_count"`
	VegetableCount int       `json:"vegetable_count"`
	TotalWeight    float64   `json:"total_weight"`
}

type FarmRanking struct {
	ID             uuid.UUID `json:"id"`
	Name           string    `json:"name"`
	Location       string    `json:"location"`
	FruitCount     int       `json:"fruit_count"`
	VegetableCount int       `json:"vegetable_count"`
}

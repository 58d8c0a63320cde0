package catalog

import "strings"

// Kind names a catalog entity kind. Fruit and vegetable are the crop kinds.
type Kind string

const (
	KindFarm      Kind = "farm"
	KindFruit     Kind = "fruit"
	KindVegetable Kind = "vegetable"
)

// CropKinds lists every crop kind in a fixed order.
var CropKinds = []Kind{KindFruit, KindVegetable}

func (k Kind) String() string { return string(k) }

func (k Kind) IsCrop() bool {
	return k == KindFruit || k == KindVegetable
}

// Table is the table backing the kind.
func (k Kind) Table() string {
	switch k {
	case KindFarm:
		return "farm"
	case KindFruit:
		return "fruit"
	case KindVegetable:
		return "vegetable"
	default:
		return ""
	}
}

// Plural is the resource collection name used on the API surface.
func (k Kind) Plural() string {
	switch k {
	case KindFarm:
		return "farms"
	case KindFruit:
		return "fruits"
	case KindVegetable:
		return "vegetables"
	default:
		return ""
	}
}

// ParseCropKind accepts singular or plural crop kind names.
func ParseCropKind(raw string) (Kind, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "fruit", "fruits":
		return KindFruit, true
	case "vegetable", "vegetables":
		return KindVegetable, true
	default:
		return "", false
	}
}

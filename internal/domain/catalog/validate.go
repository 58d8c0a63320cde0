package catalog

import (
	"fmt"
	"math"
	"strings"
	"unicode/utf8"
)

const (
	FarmNameMin     = 2
	FarmNameMax     = 100
	FarmLocationMax = 255
	CropNameMin     = 2
	CropNameMax     = 50
	CropColorMax    = 50
)

func trim(s string) string { return strings.TrimSpace(s) }

func requireLength(field, v string, min, max int) error {
	n := utf8.RuneCountInString(v)
	if n == 0 {
		return &ValidationError{Field: field, Reason: "is required"}
	}
	if n < min || n > max {
		return &ValidationError{Field: field, Reason: fmt.Sprintf("must be between %d and %d characters", min, max)}
	}
	return nil
}

func maxLength(field, v string, max int) error {
	if utf8.RuneCountInString(v) > max {
		return &ValidationError{Field: field, Reason: fmt.Sprintf("must not exceed %d characters", max)}
	}
	return nil
}

func positiveWeight(w float64) error {
	if math.IsNaN(w) || math.IsInf(w, 0) {
		return &ValidationError{Field: "weight", Reason: "must be a finite number"}
	}
	if w <= 0 {
		return &ValidationError{Field: "weight", Reason: "must be greater than 0"}
	}
	return nil
}

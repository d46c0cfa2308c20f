package models

import (
	"fmt"
	"strings"
)

// Category is a closet tab. Tops, Bottoms and Extra are garment categories;
// Outfits only exists for navigation.
type Category string

const (
	CategoryTops    Category = "tops"
	CategoryBottoms Category = "bottoms"
	CategoryExtra   Category = "extra"
	CategoryOutfits Category = "outfits"
)

// Categories lists every tab in display order.
var Categories = []Category{CategoryTops, CategoryBottoms, CategoryExtra, CategoryOutfits}

// IsGarment reports whether a clothing item may belong to c.
func (c Category) IsGarment() bool {
	switch c {
	case CategoryTops, CategoryBottoms, CategoryExtra:
		return true
	}
	return false
}

// Valid reports whether c is one of the four known tabs.
func (c Category) Valid() bool {
	return c.IsGarment() || c == CategoryOutfits
}

// ParseCategory accepts any casing and surrounding whitespace.
func ParseCategory(s string) (Category, error) {
	c := Category(strings.ToLower(strings.TrimSpace(s)))
	if !c.Valid() {
		return "", fmt.Errorf("unknown category %q", s)
	}
	return c, nil
}

// Package model defines the records exchanged with the Life Analytics backend.
//
// The backend owns identity, validation, and every derived figure. These types only
// describe the JSON shapes so each endpoint can be decoded into an explicit schema.
package model

import (
	"fmt"
	"strings"
)

// Category groups habits on the backend.
type Category string

const (
	CategoryHealth       Category = "HEALTH"
	CategoryProductivity Category = "PRODUCTIVITY"
	CategoryMindfulness  Category = "MINDFULNESS"
	CategoryLearning     Category = "LEARNING"
	CategoryOther        Category = "OTHER"
)

// Categories returns every known category in display order.
func Categories() []Category {
	return []Category{
		CategoryHealth,
		CategoryProductivity,
		CategoryMindfulness,
		CategoryLearning,
		CategoryOther,
	}
}

// ParseCategory parses a category name, ignoring case and surrounding whitespace.
func ParseCategory(s string) (Category, error) {
	want := Category(strings.ToUpper(strings.TrimSpace(s)))
	for _, c := range Categories() {
		if c == want {
			return c, nil
		}
	}
	return "", fmt.Errorf("unknown category %q", s)
}

// IsValid reports whether c is one of the known categories.
func (c Category) IsValid() bool {
	_, err := ParseCategory(string(c))
	return err == nil
}

// String returns the wire form of the category.
func (c Category) String() string {
	return string(c)
}

// Label returns a human readable form, e.g. "Mindfulness".
func (c Category) Label() string {
	if c == "" {
		return ""
	}
	lower := strings.ToLower(string(c))
	return strings.ToUpper(lower[:1]) + lower[1:]
}

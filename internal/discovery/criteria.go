package discovery

import (
	"strings"

	"rewear/internal/models"
)

// Default inclusive points range applied when the caller leaves a bound unset.
// The upper default is the highest price an item can be listed at, so an
// unfiltered browse never hides anything.
const (
	DefaultMinPoints = 0
	DefaultMaxPoints = models.MaxPointsRequired
)

// Predicate reports whether an item should be kept.
type Predicate func(models.Item) bool

// Criteria is the set of user-selected browse filters. Zero values mean
// "unset" for every field.
type Criteria struct {
	Text      string `json:"q,omitempty"`
	Category  string `json:"category,omitempty"`
	Size      string `json:"size,omitempty"`
	Condition string `json:"condition,omitempty"`
	MinPoints *int   `json:"min_points,omitempty"`
	MaxPoints *int   `json:"max_points,omitempty"`
}

// Bounds returns the effective inclusive points range.
func (c Criteria) Bounds() (lo, hi int) {
	lo, hi = DefaultMinPoints, DefaultMaxPoints
	if c.MinPoints != nil {
		lo = *c.MinPoints
	}
	if c.MaxPoints != nil {
		hi = *c.MaxPoints
	}
	return lo, hi
}

// Predicate combines every set clause with logical AND. A range with
// lo > hi matches nothing.
func (c Criteria) Predicate() Predicate {
	needle := strings.ToLower(c.Text)
	lo, hi := c.Bounds()

	return func(it models.Item) bool {
		if c.Category != "" && it.Category != c.Category {
			return false
		}
		if c.Size != "" && it.Size != c.Size {
			return false
		}
		if c.Condition != "" && it.Condition != c.Condition {
			return false
		}
		if it.PointsRequired < lo || it.PointsRequired > hi {
			return false
		}
		return needle == "" || matchesText(it, needle)
	}
}

// matchesText expects needle to be lower-cased already.
func matchesText(it models.Item, needle string) bool {
	if strings.Contains(strings.ToLower(it.Title), needle) ||
		strings.Contains(strings.ToLower(it.Description), needle) {
		return true
	}
	for _, tag := range it.Tags {
		if strings.Contains(strings.ToLower(tag), needle) {
			return true
		}
	}
	return false
}

// Filter returns the items matching c, in input order.
func Filter(items []models.Item, c Criteria) []models.Item {
	match := c.Predicate()
	out := make([]models.Item, 0, len(items))
	for _, it := range items {
		if match(it) {
			out = append(out, it)
		}
	}
	return out
}

// IntPtr is a small helper for building Criteria literals.
func IntPtr(v int) *int {
	return &v
}

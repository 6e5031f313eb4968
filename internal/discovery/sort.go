package discovery

import (
	"cmp"
	"slices"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"rewear/internal/models"
)

// SortMode selects the ordering of browse results.
type SortMode string

// Recognised sort modes. Any other value keeps input order.
const (
	SortNewest     SortMode = "newest"
	SortOldest     SortMode = "oldest"
	SortPointsLow  SortMode = "points_low"
	SortPointsHigh SortMode = "points_high"
	SortName       SortMode = "name"
)

// Comparator returns the comparison function for mode. ok is false for
// unrecognised modes, in which case callers must not reorder.
//
// The name comparator owns a collator, which is not safe for concurrent use;
// request a fresh comparator per sort.
func Comparator(mode SortMode) (compare func(a, b models.Item) int, ok bool) {
	switch mode {
	case SortNewest:
		return func(a, b models.Item) int { return b.CreatedAt.Compare(a.CreatedAt) }, true
	case SortOldest:
		return func(a, b models.Item) int { return a.CreatedAt.Compare(b.CreatedAt) }, true
	case SortPointsLow:
		return func(a, b models.Item) int { return cmp.Compare(a.PointsRequired, b.PointsRequired) }, true
	case SortPointsHigh:
		return func(a, b models.Item) int { return cmp.Compare(b.PointsRequired, a.PointsRequired) }, true
	case SortName:
		col := collate.New(language.English)
		return func(a, b models.Item) int { return col.CompareString(a.Title, b.Title) }, true
	default:
		return nil, false
	}
}

// Sort stably orders items in place by mode.
func Sort(items []models.Item, mode SortMode) {
	compare, ok := Comparator(mode)
	if !ok {
		return
	}
	slices.SortStableFunc(items, compare)
}

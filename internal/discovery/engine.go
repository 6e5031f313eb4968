// Package discovery turns an item snapshot plus browse criteria into an
// ordered, paginated view. Everything here is pure: no I/O, no shared state,
// and the caller's slice is never modified.
//
// Discover is stateless and serves the HTTP API, where every request carries
// its own page. View holds the page-reset contract for stateful callers that
// keep browse state between requests, such as an interactive client session.
package discovery

import "rewear/internal/models"

// DefaultPageSize is the number of items per browse page.
const DefaultPageSize = 12

// Result is one page of discovery output.
type Result struct {
	Items []models.Item `json:"items"`
	Total int           `json:"total"`
}

// Discover filters items by c, stably sorts them by mode and returns the
// 1-based page. A page past the end yields no items but still reports the
// filtered total. page < 1 is read as 1 and pageSize < 1 as DefaultPageSize.
func Discover(items []models.Item, c Criteria, mode SortMode, page, pageSize int) Result {
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	if page < 1 {
		page = 1
	}

	filtered := Filter(items, c)
	Sort(filtered, mode)

	total := len(filtered)
	if page > PageCount(total, pageSize) {
		return Result{Items: []models.Item{}, Total: total}
	}
	start := (page - 1) * pageSize
	end := min(start+pageSize, total)
	return Result{Items: filtered[start:end:end], Total: total}
}

// PageCount is ceil(total / pageSize).
func PageCount(total, pageSize int) int {
	if pageSize < 1 || total <= 0 {
		return 0
	}
	return (total + pageSize - 1) / pageSize
}

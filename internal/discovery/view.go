package discovery

import "rewear/internal/models"

// View is the browse state a caller keeps between requests. Changing the
// criteria or the sort mode always sends the view back to page 1, otherwise
// a narrower filter would leave it sitting on a page that no longer exists.
type View struct {
	criteria Criteria
	sort     SortMode
	page     int
	pageSize int
}

// NewView starts on page 1, newest first.
func NewView(pageSize int) *View {
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	return &View{sort: SortNewest, page: 1, pageSize: pageSize}
}

func (v *View) Criteria() Criteria { return v.criteria }
func (v *View) Sort() SortMode     { return v.sort }
func (v *View) Page() int          { return v.page }
func (v *View) PageSize() int      { return v.pageSize }

// SetCriteria replaces the filters and resets to page 1.
func (v *View) SetCriteria(c Criteria) {
	v.criteria = c
	v.page = 1
}

// SetSort changes the ordering and resets to page 1.
func (v *View) SetSort(mode SortMode) {
	v.sort = mode
	v.page = 1
}

// SetPage moves to page p (values below 1 clamp to 1).
func (v *View) SetPage(p int) {
	if p < 1 {
		p = 1
	}
	v.page = p
}

// Apply runs Discover over items with the view's current state.
func (v *View) Apply(items []models.Item) Result {
	return Discover(items, v.criteria, v.sort, v.page, v.pageSize)
}

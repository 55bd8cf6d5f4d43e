package models

// PageCursor tracks how far a paged listing has been loaded.
type PageCursor struct {
	// CurrentPage is the next page to fetch, starting at 1.
	CurrentPage int
	PageSize    int
	TotalCount  int
	Loaded      int
}

func NewPageCursor(pageSize int) PageCursor {
	return PageCursor{CurrentPage: 1, PageSize: pageSize}
}

func (c *PageCursor) Reset() {
	c.CurrentPage = 1
	c.TotalCount = 0
	c.Loaded = 0
}

// Advance records a successful fetch of n rows out of total.
func (c *PageCursor) Advance(n, total int) {
	c.CurrentPage++
	c.Loaded += n
	c.TotalCount = total
	if n == 0 {
		// an empty page ends the listing even if the server's count is stale
		c.TotalCount = c.Loaded
	}
}

func (c PageCursor) HasMore() bool {
	return c.Loaded < c.TotalCount
}

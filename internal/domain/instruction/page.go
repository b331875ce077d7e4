package instruction

// Paging bounds for template listings and search.
const (
	DefaultPageSize  = 10
	MaxPageSize      = 100
	SummaryLen       = 100
	MatchLen         = 150
	MinQueryLen      = 2
	DefaultSearchTop = 5
	MaxSearchTop     = 20
)

// Page is one page of templates.
type Page struct {
	Items      []Template
	Page       int
	PageSize   int
	Total      int
	TotalPages int
}

// NewPage computes the page count from total and pageSize.
func NewPage(items []Template, page, pageSize, total int) Page {
	pages := 0
	if pageSize > 0 {
		pages = (total + pageSize - 1) / pageSize
	}
	return Page{Items: items, Page: page, PageSize: pageSize, Total: total, TotalPages: pages}
}

// Match is a single full-text search hit.
type Match struct {
	Template Template
	Score    float64
}

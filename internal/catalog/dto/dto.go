package dto

type ProductFilters struct {
	Category    string
	SearchQuery string // name search, ES-backed when available
	SortBy      string // name, price, stock, created_at
	SortOrder   string // asc, desc
	Page        int
	PageSize    int
}

package filter

import "github.com/siahsang/conduit/internal/validator"

// Filter selects a window of the matching articles. A zero Limit means
// "everything from Offset on".
type Filter struct {
	Limit  int
	Offset int
}

// Criteria narrows the article collection. Empty fields match everything.
type Criteria struct {
	Tag       string
	Author    string
	Favorited string
}

// ArticleListConfig is the query handed to the article service.
type ArticleListConfig struct {
	Type     string
	Criteria Criteria
	Filter   Filter
}

const (
	TypeAll  = "all"
	TypeFeed = "feed"
)

func NewFilter(limit, offset int) Filter {
	return Filter{
		Limit:  limit,
		Offset: offset,
	}
}

// WithPage returns a copy of config whose window covers the given 1-based page.
func (config ArticleListConfig) WithPage(limit, page int) ArticleListConfig {
	config.Filter = NewFilter(limit, limit*(page-1))
	return config
}

func ValidateFilters(filters Filter, v *validator.Validator) {
	v.Check(filters.Limit > 0, "limit", "must be greater than 0")
	v.Check(filters.Limit <= 100, "limit", "must be a maximum of 100")
	v.Check(filters.Offset >= 0, "offset", "must be greater than or equal to 0")
	v.Check(filters.Offset <= 10_000_000, "offset", "must be a maximum of 10_000_000")
}

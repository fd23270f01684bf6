package catalog

import (
	"net/url"
	"strconv"
	"strings"
)

const (
	DefaultPage  = 1
	DefaultLimit = 20
)

type ProductListParams struct {
	Page        int
	Limit       int
	CategoryIDs string
	ExpandedID  string
}

// ParseProductListParams reads page, limit, categoryIds and expandedId.
// Missing, malformed or non-positive numbers fall back to the defaults.
func ParseProductListParams(q url.Values) ProductListParams {
	return ProductListParams{
		Page:        positiveInt(q.Get("page"), DefaultPage),
		Limit:       positiveInt(q.Get("limit"), DefaultLimit),
		CategoryIDs: q.Get("categoryIds"),
		ExpandedID:  q.Get("expandedId"),
	}.Normalize()
}

// Normalize applies the defaults. Any positive limit is kept.
func (p ProductListParams) Normalize() ProductListParams {
	if p.Page < 1 {
		p.Page = DefaultPage
	}
	if p.Limit < 1 {
		p.Limit = DefaultLimit
	}
	return p
}

func (p ProductListParams) Filter() ProductFilter {
	return NewProductFilter(p.CategoryIDs, p.ExpandedID)
}

func positiveInt(raw string, fallback int) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 1 {
		return fallback
	}
	return n
}

// Package catalog holds the storefront's product listing rules: turning
// request parameters into a filter, paging over the matches, and shaping
// the fetched records for clients. Nothing here knows about the database.
package catalog

import "strings"

type PredicateKind int

const (
	// MatchAll applies no restriction.
	MatchAll PredicateKind = iota
	// MatchCategories restricts to products whose category is in CategoryIDs.
	MatchCategories
	// MatchCategoriesOrID is MatchCategories OR product id == IncludeID.
	MatchCategoriesOrID
)

// ProductFilter is the listing predicate. IncludeID names the expanded
// product, which must be returned whatever the category restriction says.
type ProductFilter struct {
	CategoryIDs []string
	IncludeID   string
}

// NewProductFilter builds a filter from the raw comma separated category
// list and the expanded product id as they arrive on the query string.
func NewProductFilter(categoryIDs, expandedID string) ProductFilter {
	return ProductFilter{
		CategoryIDs: SplitCategoryIDs(categoryIDs),
		IncludeID:   strings.TrimSpace(expandedID),
	}
}

// SplitCategoryIDs splits on comma, trims each fragment and drops empty ones.
// It returns nil when nothing is left.
func SplitCategoryIDs(raw string) []string {
	var ids []string
	for _, part := range strings.Split(raw, ",") {
		if id := strings.TrimSpace(part); id != "" {
			ids = append(ids, id)
		}
	}
	return ids
}

func (f ProductFilter) HasCategories() bool {
	return len(f.CategoryIDs) > 0
}

func (f ProductFilter) HasInclude() bool {
	return f.IncludeID != ""
}

// Kind reports which predicate shape the filter translates to. An include id
// without a category restriction yields MatchAll; the include id is then
// guaranteed by the store pinning it onto the page.
func (f ProductFilter) Kind() PredicateKind {
	switch {
	case !f.HasCategories():
		return MatchAll
	case f.HasInclude():
		return MatchCategoriesOrID
	default:
		return MatchCategories
	}
}

// ProductQuery is what the product store receives for one page fetch.
type ProductQuery struct {
	Filter          ProductFilter
	Skip            int
	Take            int
	IncludeCategory bool
}

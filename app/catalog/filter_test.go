package catalog

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitCategoryIDs(t *testing.T) {
	cases := map[string][]string{
		"":          nil,
		"   ":       nil,
		",":         nil,
		"1":         {"1"},
		"1,2,":      {"1", "2"},
		" 1 , ,2 ,": {"1", "2"},
	}
	for raw, want := range cases {
		assert.Equal(t, want, SplitCategoryIDs(raw), "raw=%q", raw)
	}
}

func TestProductFilterKind(t *testing.T) {
	assert.Equal(t, MatchAll, NewProductFilter("", "").Kind())
	assert.Equal(t, MatchAll, NewProductFilter(",", "").Kind())
	assert.Equal(t, MatchAll, NewProductFilter("", "X").Kind())
	assert.Equal(t, MatchCategories, NewProductFilter("1,2,", "").Kind())
	assert.Equal(t, MatchCategoriesOrID, NewProductFilter("1", "X").Kind())

	f := NewProductFilter("1,2,", " X ")
	assert.Equal(t, []string{"1", "2"}, f.CategoryIDs)
	assert.Equal(t, "X", f.IncludeID)
}

func TestParseProductListParams(t *testing.T) {
	p := ParseProductListParams(url.Values{})
	assert.Equal(t, ProductListParams{Page: 1, Limit: 20}, p)

	p = ParseProductListParams(url.Values{
		"page":        {"3"},
		"limit":       {"10"},
		"categoryIds": {"1,2"},
		"expandedId":  {"X"},
	})
	assert.Equal(t, ProductListParams{Page: 3, Limit: 10, CategoryIDs: "1,2", ExpandedID: "X"}, p)

	p = ParseProductListParams(url.Values{"page": {"-2"}, "limit": {"abc"}})
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, 20, p.Limit)

	p = ParseProductListParams(url.Values{"limit": {"5000"}})
	assert.Equal(t, 5000, p.Limit)
}

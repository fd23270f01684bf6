package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPaginateMatchesCeilAndSkip(t *testing.T) {
	for page := 1; page <= 5; page++ {
		for limit := 1; limit <= 7; limit++ {
			for total := int64(0); total <= 30; total++ {
				p := Paginate(page, limit, total)
				wantPages := int(total / int64(limit))
				if total%int64(limit) != 0 {
					wantPages++
				}
				assert.Equal(t, wantPages, p.TotalPages)
				assert.Equal(t, (page-1)*limit, p.Skip)
				assert.Equal(t, limit, p.Take)
				assert.GreaterOrEqual(t, p.CurrentPage, 1)
				if wantPages > 0 {
					assert.LessOrEqual(t, p.CurrentPage, wantPages)
				}
			}
		}
	}
}

func TestPaginateEmpty(t *testing.T) {
	p := Paginate(1, 20, 0)
	assert.Equal(t, Pagination{Skip: 0, Take: 20, Total: 0, TotalPages: 0, CurrentPage: 1}, p)
}

func TestPaginateClampsCurrentPage(t *testing.T) {
	p := Paginate(9, 10, 25)
	assert.Equal(t, 3, p.TotalPages)
	assert.Equal(t, 3, p.CurrentPage)
	assert.Equal(t, 80, p.Skip)

	p = Paginate(4, 10, 0)
	assert.Equal(t, 1, p.CurrentPage)
}

func TestWindow(t *testing.T) {
	skip, take := Window(3, 10)
	assert.Equal(t, 20, skip)
	assert.Equal(t, 10, take)

	skip, _ = Window(0, 10)
	assert.Equal(t, 0, skip)
}

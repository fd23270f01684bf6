package catalog

type Pagination struct {
	Skip        int
	Take        int
	Total       int64
	TotalPages  int
	CurrentPage int
}

// Window returns the offset and size of the requested page. It does not
// depend on the total, so the fetch can run alongside the count.
func Window(page, limit int) (skip, take int) {
	if page < 1 {
		page = 1
	}
	return (page - 1) * limit, limit
}

// Paginate combines the requested window with the matching row count.
// TotalPages is 0 when nothing matches; CurrentPage stays within [1, TotalPages].
func Paginate(page, limit int, total int64) Pagination {
	skip, take := Window(page, limit)

	totalPages := 0
	if limit > 0 && total > 0 {
		totalPages = int((total + int64(limit) - 1) / int64(limit))
	}

	upper := totalPages
	if upper == 0 {
		upper = 1
	}
	current := page
	if current > upper {
		current = upper
	}
	if current < 1 {
		current = 1
	}

	return Pagination{
		Skip:        skip,
		Take:        take,
		Total:       total,
		TotalPages:  totalPages,
		CurrentPage: current,
	}
}

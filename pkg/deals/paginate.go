package deals

// DefaultPageSize is how many product cards fit on one page.
const DefaultPageSize = 9

// Page is one display page of a sorted product collection.
type Page struct {
	Items      []Product
	TotalPages int
}

// Paginate slices products into the requested 1-based page. TotalPages is
// at least 1 even for empty input. An out-of-range page yields empty Items;
// no clamping is performed, callers must only offer valid pages.
func Paginate(products []Product, page, pageSize int) Page {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}

	total := (len(products) + pageSize - 1) / pageSize
	if total < 1 {
		total = 1
	}

	start := (page - 1) * pageSize
	if start < 0 || start >= len(products) {
		return Page{Items: []Product{}, TotalPages: total}
	}
	end := start + pageSize
	if end > len(products) {
		end = len(products)
	}
	return Page{Items: products[start:end], TotalPages: total}
}

// PageWindow describes which page numbers the pagination controls show.
type PageWindow struct {
	Pages        []int
	LeadingFirst bool // show "1 …" before the window
	TrailingLast bool // show "… last" after the window
}

// Window computes at most 5 consecutive page numbers centered on current,
// clamped to [1, total].
func Window(current, total int) PageWindow {
	if total < 1 {
		total = 1
	}

	start := current - 2
	if start < 1 {
		start = 1
	}
	end := current + 2
	if end > total {
		end = total
	}

	w := PageWindow{
		LeadingFirst: start > 2,
		TrailingLast: end < total-1,
	}
	for p := start; p <= end; p++ {
		w.Pages = append(w.Pages, p)
	}
	return w
}

package posts

import (
	"math"
	"strconv"
	"strings"
)

// PageConfig carries the listing page size. PostPerPage must be positive;
// configuration loading rejects anything else.
type PageConfig struct {
	PostPerPage int
}

// Pagination is the page-scoped view of a listing. CurrentPage is 0 when the
// requested page does not exist.
type Pagination[T any] struct {
	TotalPages  int
	CurrentPage int
	Items       []T
}

// Found reports whether the requested page resolved to a real page.
func (p Pagination[T]) Found() bool {
	return p.CurrentPage > 0
}

// HasPrev reports whether a page precedes the current one.
func (p Pagination[T]) HasPrev() bool {
	return p.CurrentPage > 1
}

// HasNext reports whether a page follows the current one.
func (p Pagination[T]) HasNext() bool {
	return p.CurrentPage > 0 && p.CurrentPage < p.TotalPages
}

// PageNumbers returns 1..ceil(numberOfPosts/PostPerPage). It is empty when
// there are no posts or the page size is not positive.
func PageNumbers(numberOfPosts int, cfg PageConfig) []int {
	if numberOfPosts <= 0 || cfg.PostPerPage <= 0 {
		return []int{}
	}
	total := (numberOfPosts + cfg.PostPerPage - 1) / cfg.PostPerPage
	pages := make([]int, total)
	for i := range pages {
		pages[i] = i + 1
	}
	return pages
}

// Paginate selects the items of the requested page. The landing page
// (isIndex) always shows the first page whatever page says. Any other page
// value that does not name an existing page yields CurrentPage 0 and no items.
func Paginate[T any](cfg PageConfig, items []T, page string, isIndex bool) Pagination[T] {
	totalPages := len(PageNumbers(len(items), cfg))

	current := 1
	if !isIndex {
		current = resolvePage(page, totalPages)
	}

	result := Pagination[T]{
		TotalPages:  totalPages,
		CurrentPage: current,
		Items:       []T{},
	}
	if current == 0 || cfg.PostPerPage <= 0 {
		return result
	}

	start := (current - 1) * cfg.PostPerPage
	end := min(start+cfg.PostPerPage, len(items))
	if start < end {
		result.Items = items[start:end:end]
	}
	return result
}

// PaginateNumber is Paginate for callers that already hold a numeric page.
func PaginateNumber[T any](cfg PageConfig, items []T, page int, isIndex bool) Pagination[T] {
	return Paginate(cfg, items, strconv.Itoa(page), isIndex)
}

// resolvePage parses page and returns it when it lies within 1..totalPages,
// 0 otherwise. Integral decimal forms such as "2.0" are accepted.
func resolvePage(page string, totalPages int) int {
	page = strings.TrimSpace(page)
	if page == "" {
		return 0
	}
	n, err := strconv.Atoi(page)
	if err != nil {
		f, ferr := strconv.ParseFloat(page, 64)
		if ferr != nil || math.IsInf(f, 0) || f != math.Trunc(f) || math.Abs(f) > math.MaxInt32 {
			return 0
		}
		n = int(f)
	}
	if n < 1 || n > totalPages {
		return 0
	}
	return n
}

package posts

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func seq(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i
	}
	return out
}

func TestPageNumbers(t *testing.T) {
	cfg := PageConfig{PostPerPage: 5}

	assert.Equal(t, []int{}, PageNumbers(0, cfg))
	assert.Equal(t, []int{1}, PageNumbers(1, cfg))
	assert.Equal(t, []int{1}, PageNumbers(5, cfg))
	assert.Equal(t, []int{1, 2}, PageNumbers(6, cfg))
	assert.Equal(t, []int{1, 2, 3}, PageNumbers(11, cfg))
}

func TestPageNumbersInvalidPageSize(t *testing.T) {
	assert.Empty(t, PageNumbers(10, PageConfig{}))
	assert.Empty(t, PageNumbers(10, PageConfig{PostPerPage: -1}))
}

func TestPaginateRequestedPage(t *testing.T) {
	cfg := PageConfig{PostPerPage: 5}

	got := Paginate(cfg, seq(12), "2", false)

	assert.Equal(t, 3, got.TotalPages)
	assert.Equal(t, 2, got.CurrentPage)
	assert.Equal(t, []int{5, 6, 7, 8, 9}, got.Items)
	assert.True(t, got.Found())
	assert.True(t, got.HasPrev())
	assert.True(t, got.HasNext())
}

func TestPaginateLastPageIsPartial(t *testing.T) {
	got := Paginate(PageConfig{PostPerPage: 5}, seq(12), "3", false)

	assert.Equal(t, 3, got.CurrentPage)
	assert.Equal(t, []int{10, 11}, got.Items)
	assert.False(t, got.HasNext())
}

func TestPaginateIndexIgnoresPage(t *testing.T) {
	cfg := PageConfig{PostPerPage: 5}

	for _, page := range []string{"", "1", "3", "abc", "-4", "99"} {
		got := Paginate(cfg, seq(12), page, true)
		assert.Equal(t, 1, got.CurrentPage, "page %q", page)
		assert.Equal(t, []int{0, 1, 2, 3, 4}, got.Items, "page %q", page)
		assert.Equal(t, 3, got.TotalPages)
	}
}

func TestPaginateIndexWithFewPosts(t *testing.T) {
	got := Paginate(PageConfig{PostPerPage: 5}, seq(2), "", true)

	assert.Equal(t, 1, got.CurrentPage)
	assert.Equal(t, []int{0, 1}, got.Items)
}

func TestPaginateInvalidPageIsEmpty(t *testing.T) {
	cfg := PageConfig{PostPerPage: 5}

	for _, page := range []string{"abc", "", "0", "-1", "4", "1.5", "NaN", "Inf"} {
		t.Run(page, func(t *testing.T) {
			got := Paginate(cfg, seq(12), page, false)
			assert.Equal(t, 0, got.CurrentPage)
			assert.Empty(t, got.Items, "invalid page must not fall back to the tail page")
			assert.Equal(t, 3, got.TotalPages)
			assert.False(t, got.Found())
		})
	}
}

func TestPaginateAcceptsNumericForms(t *testing.T) {
	cfg := PageConfig{PostPerPage: 5}

	for _, page := range []string{"2", " 2 ", "2.0", "02"} {
		got := Paginate(cfg, seq(12), page, false)
		assert.Equal(t, 2, got.CurrentPage, "page %q", page)
	}
}

func TestPaginateNumber(t *testing.T) {
	got := PaginateNumber(PageConfig{PostPerPage: 4}, seq(10), 3, false)

	assert.Equal(t, 3, got.CurrentPage)
	assert.Equal(t, []int{8, 9}, got.Items)
}

func TestPaginateEmpty(t *testing.T) {
	got := Paginate(PageConfig{PostPerPage: 5}, []int{}, "1", false)

	assert.Equal(t, 0, got.TotalPages)
	assert.Equal(t, 0, got.CurrentPage)
	assert.Empty(t, got.Items)
}

func TestPaginateDoesNotAliasAppends(t *testing.T) {
	items := seq(10)
	got := Paginate(PageConfig{PostPerPage: 5}, items, "1", false)

	_ = append(got.Items, 100)

	assert.Equal(t, 5, items[5])
}

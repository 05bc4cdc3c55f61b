// internal/app/system/paging/paging.go
package paging

import (
	"net/http"
	"strconv"

	"github.com/dalemusser/waffle/pantry/query"
)

// PageSize is the default number of rows in a paged listing.
const PageSize = 50

// ParsePage extracts the 1-based "page" query parameter.
// Returns 1 if not present or invalid.
func ParsePage(r *http.Request) int {
	s := query.Get(r, "page")
	if s == "" {
		return 1
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return 1
	}
	return n
}

// Offset returns the number of rows to skip for page.
func Offset(page, size int) int64 {
	if page < 1 {
		page = 1
	}
	return int64((page - 1) * size)
}

// TotalPages returns how many pages of size hold total rows. An empty
// result still has one page.
func TotalPages(total int64, size int) int {
	if size < 1 {
		return 1
	}
	n := int((total + int64(size) - 1) / int64(size))
	if n < 1 {
		return 1
	}
	return n
}

package httpserver

import "strconv"

const (
	defaultPageSize = 10
	maxPageSize     = 100
)

// pageWindow turns page/size query values into an offset and limit for
// the search index, clamping out-of-range values instead of rejecting them.
func pageWindow(pageStr, sizeStr string) (offset, limit int) {
	page, _ := strconv.Atoi(pageStr)
	size, _ := strconv.Atoi(sizeStr)
	if page < 1 {
		page = 1
	}
	if size <= 0 || size > maxPageSize {
		size = defaultPageSize
	}
	return (page - 1) * size, size
}

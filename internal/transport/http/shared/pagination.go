package shared

import (
	"net/http"
	"strconv"
)

// Pagination bounds the evaluation overview listing. Handlers supply the
// defaults; maxLimit keeps one page from dragging the whole evaluations
// table across the wire.
type Pagination struct {
	Limit  int
	Offset int
}

// ParsePagination reads limit/offset from the query string, ignoring
// anything non-numeric or out of range.
func ParsePagination(r *http.Request, defaultLimit, maxLimit int) Pagination {
	query := r.URL.Query()
	page := Pagination{Limit: defaultLimit}
	if v, err := strconv.Atoi(query.Get("limit")); err == nil && v > 0 {
		page.Limit = v
	}
	if v, err := strconv.Atoi(query.Get("offset")); err == nil && v >= 0 {
		page.Offset = v
	}
	if maxLimit > 0 && page.Limit > maxLimit {
		page.Limit = maxLimit
	}
	return page
}

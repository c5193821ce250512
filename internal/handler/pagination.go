package handler

import (
	"net/http"
	"strconv"
)

// parsePage reads the 1-indexed "page" query parameter. Missing or
// unparseable values default to page 1; values below 1 clamp to 1.
func parsePage(r *http.Request) int {
	pageStr := r.URL.Query().Get("page")
	if pageStr == "" {
		return 1
	}

	page, err := strconv.Atoi(pageStr)
	if err != nil || page < 1 {
		return 1
	}
	return page
}

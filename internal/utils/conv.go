package utils

import (
	"strconv"
)

// StringToInt converts string to int, returns 0 if error
func StringToInt(s string) int {
	i, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return i
}

// Pagination clamps page/limit query values. limit falls back to def and is capped at max.
func Pagination(pageStr, limitStr string, def, max int) (page, limit, offset int) {
	page = StringToInt(pageStr)
	if page < 1 {
		page = 1
	}
	limit = StringToInt(limitStr)
	if limit < 1 {
		limit = def
	}
	if limit > max {
		limit = max
	}
	return page, limit, (page - 1) * limit
}

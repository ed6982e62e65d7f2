package utils

import "strconv"

// maxLimit caps event listings; 0 means "no limit" downstream.
const maxLimit = 500

func ParseLimit(s string) int {
	limit, err := strconv.Atoi(s)
	if err != nil || limit <= 0 {
		return 0
	}

	if limit > maxLimit {
		return maxLimit
	}

	return limit
}

package utils

import "strings"

// Truncate shortens s for log previews.
func Truncate(s string, n int) string {
	if n <= 0 || len(s) <= n {
		return s
	}
	return strings.TrimSpace(s[:n]) + "..."
}

package utils

import (
	"fmt"
	"strings"
)

// TruncateForLog shortens the provided string to the specified limit, appending an ellipsis when truncated.
func TruncateForLog(s string, limit int) string {
	s = strings.TrimSpace(s)
	if limit <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit]) + "..."
}

// TruncateList keeps the first limit items and appends a marker counting the rest.
func TruncateList(items []string, limit int) []string {
	if limit < 0 {
		limit = 0
	}
	if len(items) <= limit {
		return items
	}
	result := make([]string, 0, limit+1)
	result = append(result, items[:limit]...)
	return append(result, fmt.Sprintf("... and %d more", len(items)-limit))
}

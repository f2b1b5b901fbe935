package utils

import "strings"

// SplitList splits a comma separated value, trimming blanks and dropping empty items
func SplitList(s string) []string {
	items := make([]string, 0)
	for _, item := range strings.Split(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}

// JoinList is the inverse of SplitList
func JoinList(items []string) string {
	return strings.Join(items, ",")
}

// Ptr is used for optional fields in partial updates
func Ptr[T any](v T) *T {
	return &v
}

// Value dereferences v, returning the zero value for nil
func Value[T any](v *T) T {
	var zero T
	if v != nil {
		zero = *v
	}
	return zero
}

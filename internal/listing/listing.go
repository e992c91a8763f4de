// Package listing filters and paginates lists that are already in memory.
// Order is always the order the server returned.
package listing

import "strings"

const DefaultPageSize = 5

// Page is one window of a filtered list.
type Page[T any] struct {
	Items          []T  `json:"items"`
	Page           int  `json:"page"`
	PageCount      int  `json:"pageCount"`
	Total          int  `json:"total"`
	ShowPagination bool `json:"showPagination"`
}

// Filter keeps the items for which keep returns true, preserving order.
func Filter[T any](items []T, keep func(T) bool) []T {
	out := make([]T, 0, len(items))
	for _, it := range items {
		if keep(it) {
			out = append(out, it)
		}
	}
	return out
}

// MatchFold reports whether needle occurs in haystack ignoring case.
// An empty needle matches everything; whitespace in needle is significant.
func MatchFold(haystack, needle string) bool {
	if needle == "" {
		return true
	}
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}

// PageCount is ceil(n/size).
func PageCount(n, size int) int {
	if size <= 0 || n <= 0 {
		return 0
	}
	return (n + size - 1) / size
}

// Paginate returns the 1-based page of items. Out of range pages are clamped
// into [1, max(pageCount, 1)].
func Paginate[T any](items []T, page, size int) Page[T] {
	if size <= 0 {
		size = DefaultPageSize
	}
	n := len(items)
	count := PageCount(n, size)

	last := count
	if last < 1 {
		last = 1
	}
	if page < 1 {
		page = 1
	}
	if page > last {
		page = last
	}

	start := (page - 1) * size
	end := start + size
	if end > n {
		end = n
	}
	if start > n {
		start = n
	}

	window := make([]T, end-start)
	copy(window, items[start:end])

	return Page[T]{
		Items:          window,
		Page:           page,
		PageCount:      count,
		Total:          n,
		ShowPagination: count > 1,
	}
}

// Package collection provides the generic slice helpers the console's list
// views are built on: client-side filtering, sorting and paging of records
// already fetched from the backend.
package collection

import "sort"

// Filter returns elements of s for which fn returns true.
func Filter[T any](s []T, fn func(T) bool) []T {
	var out []T
	for _, v := range s {
		if fn(v) {
			out = append(out, v)
		}
	}
	return out
}

// First returns the first element matching fn, or (zero, false).
func First[T any](s []T, fn func(T) bool) (T, bool) {
	for _, v := range s {
		if fn(v) {
			return v, true
		}
	}
	var zero T
	return zero, false
}

// Contains reports whether any element of s satisfies fn.
func Contains[T any](s []T, fn func(T) bool) bool {
	_, ok := First(s, fn)
	return ok
}

// SortBy sorts s in place using less and returns it for chaining.
func SortBy[T any](s []T, less func(a, b T) bool) []T {
	sort.Slice(s, func(i, j int) bool { return less(s[i], s[j]) })
	return s
}

// Page is one rendered page of a larger result set.
type Page[T any] struct {
	Items      []T
	Number     int
	PerPage    int
	Total      int
	TotalPages int
}

// Paginate slices one page out of s. Pages are 1-indexed; out-of-range
// pages clamp to the nearest valid page so a filter that shrinks the set
// never strands the viewer on an empty page.
func Paginate[T any](s []T, page, perPage int) Page[T] {
	if perPage < 1 {
		perPage = 1
	}
	totalPages := (len(s) + perPage - 1) / perPage
	if totalPages < 1 {
		totalPages = 1
	}
	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}
	start := (page - 1) * perPage
	end := start + perPage
	if start > len(s) {
		start = len(s)
	}
	if end > len(s) {
		end = len(s)
	}
	return Page[T]{
		Items:      s[start:end],
		Number:     page,
		PerPage:    perPage,
		Total:      len(s),
		TotalPages: totalPages,
	}
}

// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package slice complements the standard [slices] package with the generic
Map and Filter helpers used by the in-memory catalog views.
*/
package slice

// Map maps a slice of type T to a slice of type U using the provided transformation function.
func Map[T any, U any](input []T, transform func(T) U) []U {
	if input == nil {
		return nil
	}

	result := make([]U, len(input))
	for i, v := range input {
		result[i] = transform(v)
	}

	return result
}

// Filter returns the elements for which predicate is true, preserving order.
// The input is never modified.
func Filter[T any](input []T, predicate func(T) bool) []T {
	if input == nil {
		return nil
	}

	var result []T
	for _, v := range input {
		if predicate(v) {
			result = append(result, v)
		}
	}

	return result
}

// Window returns the sub-slice [offset, offset+limit) clamped to the bounds of input.
// It returns an empty, non-nil slice when the window lies past the end.
func Window[T any](input []T, offset, limit int) []T {
	if offset < 0 {
		offset = 0
	}
	if offset >= len(input) || limit <= 0 {
		return []T{}
	}

	end := offset + limit
	if end > len(input) {
		end = len(input)
	}

	return input[offset:end]
}

package sort

import "slices"

// Baseline delegates to the standard library sort. It is the reference the
// other algorithms are measured against and makes no stability promise.
func Baseline[T any](s []T, less Less[T]) {
	slices.SortFunc(s, func(a, b T) int {
		switch {
		case less(a, b):
			return -1
		case less(b, a):
			return 1
		}
		return 0
	})
}

package sort

// Less is a strict weak ordering over T; every algorithm in this package
// takes its ordering decisions from it and nothing else.
type Less[T any] func(a, b T) bool

// IsSorted reports whether s is non-decreasing per less.
func IsSorted[T any](s []T, less Less[T]) bool {
	for i := len(s) - 1; i > 0; i-- {
		if less(s[i], s[i-1]) {
			return false
		}
	}
	return true
}

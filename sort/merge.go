package sort

// Merge merges the adjacent sorted runs s[:mid] and s[mid:] into a single
// sorted run occupying s. The left run is staged in buf, which is grown when
// shorter than mid and returned so callers can reuse it. On ties the element
// of the left run goes first.
func Merge[T any](s []T, mid int, less Less[T], buf []T) []T {
	if mid <= 0 || mid >= len(s) {
		return buf
	}
	if cap(buf) < mid {
		buf = make([]T, mid)
	}
	left := buf[:mid]
	copy(left, s[:mid])

	i, j, k := 0, mid, 0
	for i < len(left) && j < len(s) {
		if less(s[j], left[i]) {
			s[k] = s[j]
			j++
		} else {
			s[k] = left[i]
			i++
		}
		k++
	}
	// Whatever remains of the right run is already in place.
	copy(s[k:], left[i:])

	return buf
}

// MergeSort sorts s by recursively halving it at len/2 and merging the sorted
// halves. A single scratch buffer of len(s)/2 elements is shared by every merge.
func MergeSort[T any](s []T, less Less[T]) {
	if len(s) < 2 {
		return
	}
	buf := make([]T, len(s)/2)
	mergeSort(s, less, buf)
}

func mergeSort[T any](s []T, less Less[T], buf []T) {
	if len(s) < 2 {
		return
	}
	mid := len(s) / 2
	mergeSort(s[:mid], less, buf)
	mergeSort(s[mid:], less, buf)
	// Runs already in order, nothing to merge
	if !less(s[mid], s[mid-1]) {
		return
	}
	Merge(s, mid, less, buf)
}

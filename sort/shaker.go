package sort

// Shaker is a bidirectional bubble sort. The forward pass moves the largest
// unsorted element to the right bound, the backward pass moves the smallest
// one to the left bound and both bounds shrink by one. A forward pass
// without swaps means the whole window is ordered and ends the sort.
func Shaker[T any](s []T, less Less[T]) {
	left, right := 0, len(s)-1
	for left < right {
		swapped := false
		for i := left; i < right; i++ {
			if less(s[i+1], s[i]) {
				s[i], s[i+1] = s[i+1], s[i]
				swapped = true
			}
		}
		right--
		if !swapped {
			return
		}
		for i := right; i > left; i-- {
			if less(s[i], s[i-1]) {
				s[i], s[i-1] = s[i-1], s[i]
			}
		}
		left++
	}
}

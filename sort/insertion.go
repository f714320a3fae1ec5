package sort

// Insertion sorts s in place. For each position the key is swapped leftward
// past every element strictly greater than it, so equal elements keep their
// relative order.
func Insertion[T any](s []T, less Less[T]) {
	for i := 1; i < len(s); i++ {
		for j := i; j > 0 && less(s[j], s[j-1]); j-- {
			s[j], s[j-1] = s[j-1], s[j]
		}
	}
}

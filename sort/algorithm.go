package sort

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownAlgorithm is returned when a name does not match any sorting algorithm
	ErrUnknownAlgorithm = errors.New("unknown sorting algorithm")
)

type Algorithm string

const (
	AlgInsertionSort Algorithm = "insertion_sort"
	AlgShakerSort    Algorithm = "shaker_sort"
	AlgMergeSort     Algorithm = "merge_sort"
	AlgStdSort       Algorithm = "std_sort"
)

// Func is the common shape of every algorithm in the package.
type Func[T any] func(s []T, less Less[T])

var outputDirs = map[Algorithm]string{
	AlgInsertionSort: "insertion",
	AlgShakerSort:    "shaker",
	AlgMergeSort:     "merge",
	AlgStdSort:       "sort",
}

// Names returns all known algorithms in reporting order.
func Names() []Algorithm {
	return []Algorithm{AlgInsertionSort, AlgShakerSort, AlgMergeSort, AlgStdSort}
}

// Parse validates name and returns the matching Algorithm.
func Parse(name string) (Algorithm, error) {
	a := Algorithm(name)
	if _, ok := outputDirs[a]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownAlgorithm, name)
	}
	return a, nil
}

// OutputDir returns the directory name sorted datasets of the algorithm are written to.
func (a Algorithm) OutputDir() string {
	return outputDirs[a]
}

func (a Algorithm) String() string {
	return string(a)
}

// Lookup returns the sorting function registered under name.
func Lookup[T any](name string) (Func[T], error) {
	a, err := Parse(name)
	if err != nil {
		return nil, err
	}
	switch a {
	case AlgInsertionSort:
		return Insertion[T], nil
	case AlgShakerSort:
		return Shaker[T], nil
	case AlgMergeSort:
		return MergeSort[T], nil
	default:
		return Baseline[T], nil
	}
}

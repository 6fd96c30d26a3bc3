// Package sorts provides the reference sorting algorithms used as
// baselines by the benchmark harness. Every function returns a
// non-decreasing permutation of its input.
package sorts

import "golang.org/x/exp/constraints"

// Func is the signature shared by all baselines.
type Func[T constraints.Ordered] func([]T) []T

// Named pairs a baseline with its display name.
type Named[T constraints.Ordered] struct {
	Name string
	Sort Func[T]
}

// Baselines returns the baselines in report order.
func Baselines[T constraints.Ordered]() []Named[T] {
	return []Named[T]{
		{"HeapSort", HeapSort[T]},
		{"QuickSort", QuickSort[T]},
		{"MergeSort", MergeSort[T]},
	}
}

// HeapSort sorts s in place using a max-heap and returns it.
func HeapSort[T constraints.Ordered](s []T) []T {
	n := len(s)
	for i := n/2 - 1; i >= 0; i-- {
		siftDown(s, i, n)
	}
	for end := n - 1; end > 0; end-- {
		s[0], s[end] = s[end], s[0]
		siftDown(s, 0, end)
	}
	return s
}

// siftDown restores the max-heap property for the subtree rooted at i
// within s[:n].
func siftDown[T constraints.Ordered](s []T, i, n int) {
	for {
		largest := i
		if l := 2*i + 1; l < n && s[l] > s[largest] {
			largest = l
		}
		if r := 2*i + 2; r < n && s[r] > s[largest] {
			largest = r
		}
		if largest == i {
			return
		}
		s[i], s[largest] = s[largest], s[i]
		i = largest
	}
}

// QuickSort returns a sorted copy of s. It partitions around the middle
// element into smaller, equal and larger values and recurses on the
// outer two.
func QuickSort[T constraints.Ordered](s []T) []T {
	if len(s) <= 1 {
		return append([]T(nil), s...)
	}
	pivot := s[len(s)/2]
	var less, equal, greater []T
	for _, v := range s {
		switch {
		case v < pivot:
			less = append(less, v)
		case v > pivot:
			greater = append(greater, v)
		default:
			equal = append(equal, v)
		}
	}
	out := make([]T, 0, len(s))
	out = append(out, QuickSort(less)...)
	out = append(out, equal...)
	return append(out, QuickSort(greater)...)
}

// MergeSort returns a sorted copy of s. Equal elements keep their
// relative order.
func MergeSort[T constraints.Ordered](s []T) []T {
	if len(s) <= 1 {
		return append([]T(nil), s...)
	}
	mid := len(s) / 2
	return merge(MergeSort(s[:mid]), MergeSort(s[mid:]))
}

func merge[T constraints.Ordered](a, b []T) []T {
	out := make([]T, 0, len(a)+len(b))
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		if b[j] < a[i] {
			out = append(out, b[j])
			j++
		} else {
			out = append(out, a[i])
			i++
		}
	}
	out = append(out, a[i:]...)
	return append(out, b[j:]...)
}

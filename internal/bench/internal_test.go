package bench

import (
	"context"
	"errors"
	"slices"
	"strings"
	"testing"

	"taskheap/internal/sorts"
)

func identity(s []int) []int { return s }

func TestRunReportsUnsorted(t *testing.T) {
	baselines := []sorts.Named[int]{
		{Name: "HeapSort", Sort: sorts.HeapSort[int]},
		{Name: "Identity", Sort: identity},
		{Name: "MergeSort", Sort: sorts.MergeSort[int]},
	}
	cfg := Config{Sizes: []int{1, 200}, MaxValue: 1000, Seed: 3, Repeats: 2}
	results, err := run(context.Background(), cfg, baselines)
	if err == nil {
		t.Fatal("expected an error for the unsorted baseline")
	}
	if !errors.Is(err, ErrUnsorted) {
		t.Errorf("got %v, want %v", err, ErrUnsorted)
	}
	if !strings.Contains(err.Error(), "Identity: size 200") {
		t.Errorf("%q does not name the failing baseline and size", err)
	}
	// A single element input is sorted whatever the baseline does.
	if strings.Contains(err.Error(), "size 1:") || strings.Contains(err.Error(), "HeapSort") {
		t.Errorf("%q reports a baseline that sorted correctly", err)
	}
	m, ok := err.(interface{ Unwrap() []error })
	if !ok {
		t.Fatalf("%T does not unwrap to a list of errors", err)
	}
	if got, want := len(m.Unwrap()), 1; got != want {
		t.Errorf("got %v, want %v", got, want)
	}
	if got, want := len(results), 6; got != want {
		t.Fatalf("got %v, want %v", got, want)
	}
	var names []string
	for _, r := range results[3:] {
		names = append(names, r.Algorithm)
	}
	if got, want := names, []string{"HeapSort", "Identity", "MergeSort"}; !slices.Equal(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestRunCancelledBetweenMeasurements(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	cancelling := func(s []int) []int {
		cancel()
		return sorts.MergeSort(s)
	}
	baselines := []sorts.Named[int]{
		{Name: "HeapSort", Sort: sorts.HeapSort[int]},
		{Name: "Cancelling", Sort: cancelling},
		{Name: "QuickSort", Sort: sorts.QuickSort[int]},
	}
	cfg := Config{Sizes: []int{10, 20}, MaxValue: 100, Seed: 1, Repeats: 1}
	results, err := run(ctx, cfg, baselines)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("got %v, want %v", err, context.Canceled)
	}
	var names []string
	for _, r := range results {
		names = append(names, r.Algorithm)
		if r.Size != 10 {
			t.Errorf("got size %v, want 10", r.Size)
		}
	}
	if got, want := names, []string{"HeapSort", "Cancelling"}; !slices.Equal(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

// Package bench times the sort baselines on random integer inputs.
package bench

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"math/rand"
	"slices"
	"strconv"
	"time"

	"cloudeng.io/errors"

	"taskheap/internal/sorts"
)

// Result is the best observed time of one baseline on one input size.
type Result struct {
	Size      int
	Algorithm string
	Elapsed   time.Duration
}

// ErrInvalidConfig is returned by Run for sizes or value ranges that
// cannot produce an input.
var ErrInvalidConfig = errors.New("invalid benchmark configuration")

// ErrUnsorted is reported for a baseline whose output is not a sorted
// permutation of its input.
var ErrUnsorted = errors.New("output is not a sorted permutation of the input")

// Generate returns n values drawn uniformly from [0, maxValue].
// n and maxValue must not be negative.
func Generate(rnd *rand.Rand, n, maxValue int) ([]int, error) {
	if n < 0 || maxValue < 0 {
		return nil, fmt.Errorf("%w: size %d, max value %d", ErrInvalidConfig, n, maxValue)
	}
	data := make([]int, n)
	for i := range data {
		data[i] = rnd.Intn(maxValue + 1)
	}
	return data, nil
}

func validate(cfg Config) error {
	errs := &errors.M{}
	for _, n := range cfg.Sizes {
		if n < 0 {
			errs.Append(fmt.Errorf("%w: negative size %d", ErrInvalidConfig, n))
		}
	}
	if cfg.MaxValue < 0 {
		errs.Append(fmt.Errorf("%w: negative max value %d", ErrInvalidConfig, cfg.MaxValue))
	}
	return errs.Err()
}

// Run times every baseline on one random input per configured size.
// Each baseline works on its own copy of the input. Outputs that are not
// a sorted permutation of the input are reported in the returned error,
// after all measurements have been taken. If ctx is done between
// measurements the results gathered so far are returned with ctx.Err().
func Run(ctx context.Context, cfg Config) ([]Result, error) {
	return run(ctx, cfg, sorts.Baselines[int]())
}

func run(ctx context.Context, cfg Config, baselines []sorts.Named[int]) ([]Result, error) {
	if err := validate(cfg); err != nil {
		return nil, err
	}
	rnd := rand.New(rand.NewSource(cfg.Seed))
	repeats := max(cfg.Repeats, 1)
	results := make([]Result, 0, len(cfg.Sizes)*len(baselines))
	errs := &errors.M{}

	for _, n := range cfg.Sizes {
		data, err := Generate(rnd, n, cfg.MaxValue)
		if err != nil {
			return results, err
		}
		want := slices.Clone(data)
		slices.Sort(want)
		for _, b := range baselines {
			best := time.Duration(-1)
			for r := 0; r < repeats; r++ {
				if err := ctx.Err(); err != nil {
					return results, err
				}
				in := slices.Clone(data)
				start := time.Now()
				out := b.Sort(in)
				elapsed := time.Since(start)
				if best < 0 || elapsed < best {
					best = elapsed
				}
				if r == 0 && !slices.Equal(out, want) {
					errs.Append(fmt.Errorf("%v: size %v: %w", b.Name, n, ErrUnsorted))
				}
			}
			results = append(results, Result{Size: n, Algorithm: b.Name, Elapsed: best})
		}
	}
	return results, errs.Err()
}

// Print writes the results grouped by input size.
func Print(w io.Writer, results []Result) {
	size := -1
	for _, r := range results {
		if r.Size != size {
			size = r.Size
			fmt.Fprintf(w, "\nData Size: %d\n", size)
		}
		fmt.Fprintf(w, "%s: %.6f\n", r.Algorithm, r.Elapsed.Seconds())
	}
}

// WriteCSV writes the results as size,algorithm,seconds records with a
// header row.
func WriteCSV(w io.Writer, results []Result) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"size", "algorithm", "seconds"}); err != nil {
		return err
	}
	for _, r := range results {
		rec := []string{
			strconv.Itoa(r.Size),
			r.Algorithm,
			strconv.FormatFloat(r.Elapsed.Seconds(), 'f', 9, 64),
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

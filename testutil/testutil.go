package testutil

import (
	"fmt"
	"math"
	"math/rand"
	"sync"

	"github.com/hupe1980/lingmatch/dtm"
)

// RNG struct encapsulates the random number generator and seed.
// It is thread-safe.
type RNG struct {
	rand *rand.Rand
	seed int64
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)),
		seed: seed,
	}
}

// Reset resets the RNG to its initial seed.
func (r *RNG) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rand.Seed(r.seed)
}

// Seed returns the initial seed.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Intn returns a non-negative pseudo-random number in [0,n).
func (r *RNG) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Intn(n)
}

// UniformRow returns a row of n values drawn uniformly from [0, 1).
func (r *RNG) UniformRow(n int) []float64 {
	r.mu.Lock()
	defer r.mu.Unlock()

	row := make([]float64, n)
	for i := range row {
		row[i] = r.rand.Float64()
	}
	return row
}

// CountRows returns num rows of dim small non-negative integer counts in
// [0, maxCount], the shape of word-count features.
func (r *RNG) CountRows(num, dim, maxCount int) [][]float64 {
	r.mu.Lock()
	defer r.mu.Unlock()

	rows := make([][]float64, num)
	for i := range rows {
		row := make([]float64, dim)
		for j := range row {
			row[j] = float64(r.rand.Intn(maxCount + 1))
		}
		rows[i] = row
	}
	return rows
}

// CountMatrix builds a feature matrix of num rows over dim generated
// column names ("f0", "f1", ...) with counts in [0, 9].
func (r *RNG) CountMatrix(num, dim int) *dtm.Matrix {
	cols := make([]string, dim)
	for j := range cols {
		cols[j] = fmt.Sprintf("f%d", j)
	}

	m, err := dtm.New(cols, r.CountRows(num, dim, 9))
	if err != nil {
		panic(err)
	}
	return m
}

// Cycle returns n values cycling through the given labels in order, the
// shape of a balanced grouping vector.
func Cycle(labels []string, n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = labels[i%len(labels)]
	}
	return out
}

// Blocks returns n values holding each label for a contiguous run, outer
// blocks first, the shape of a sorted grouping vector.
func Blocks(labels []string, n int) []string {
	out := make([]string, n)
	per := (n + len(labels) - 1) / len(labels)
	for i := range out {
		idx := i / per
		if idx >= len(labels) {
			idx = len(labels) - 1
		}
		out[i] = labels[idx]
	}
	return out
}

// NaiveCosine computes cosine similarity directly, as a reference value.
func NaiveCosine(a, b []float64) float64 {
	var dot, na, nb float64
	for i := range a {
		dot += a[i] * b[i]
		na += a[i] * a[i]
		nb += b[i] * b[i]
	}
	if na == 0 || nb == 0 {
		if equalRows(a, b) {
			return 1
		}
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}

// NaiveMean computes per-column means directly, as a reference value.
func NaiveMean(rows [][]float64) []float64 {
	if len(rows) == 0 {
		return nil
	}
	out := make([]float64, len(rows[0]))
	for _, row := range rows {
		for j, v := range row {
			out[j] += v
		}
	}
	for j := range out {
		out[j] /= float64(len(rows))
	}
	return out
}

func equalRows(a, b []float64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

package core

import (
	"fmt"
	"sort"
)

// Distribution1D is a piecewise-constant distribution over a finite index set.
// It is built incrementally with Add, frozen by Normalize and read-only after.
type Distribution1D struct {
	cdf        []float64
	normalized bool
}

// NewDistribution1D creates an empty distribution
func NewDistribution1D() *Distribution1D {
	return &Distribution1D{cdf: []float64{0}}
}

// Add appends a bucket with the given non-negative weight
func (d *Distribution1D) Add(weight float64) {
	if weight < 0 {
		panic(fmt.Sprintf("distribution weight must be non-negative, got %f", weight))
	}
	if d.normalized {
		panic("cannot add to a normalized distribution")
	}
	d.cdf = append(d.cdf, d.cdf[len(d.cdf)-1]+weight)
}

// Len returns the number of buckets
func (d *Distribution1D) Len() int {
	return len(d.cdf) - 1
}

// Normalize scales the cumulative array so the last entry is 1 and returns
// the sum of the weights before normalization (for example a total area).
// A distribution whose weights are all zero becomes uniform.
func (d *Distribution1D) Normalize() float64 {
	sum := d.cdf[len(d.cdf)-1]
	n := d.Len()
	switch {
	case n == 0:
	case sum > 0:
		for i := range d.cdf {
			d.cdf[i] /= sum
		}
		d.cdf[n] = 1
	default:
		for i := range d.cdf {
			d.cdf[i] = float64(i) / float64(n)
		}
	}
	d.normalized = true
	return sum
}

// IsNormalized reports whether Normalize has been called
func (d *Distribution1D) IsNormalized() bool {
	return d.normalized
}

// PDF returns the probability mass of bucket i
func (d *Distribution1D) PDF(i int) float64 {
	d.mustBeNormalized()
	if i < 0 || i >= d.Len() {
		return 0
	}
	return d.cdf[i+1] - d.cdf[i]
}

// Sample returns the bucket i with cdf[i] <= u < cdf[i+1], clamped to the
// valid index range
func (d *Distribution1D) Sample(u float64) int {
	d.mustBeNormalized()
	// first index whose cdf entry is strictly greater than u
	upper := sort.Search(len(d.cdf), func(i int) bool { return d.cdf[i] > u })
	return max(0, min(upper-1, d.Len()-1))
}

// CDF returns a copy of the cumulative array (Len()+1 entries)
func (d *Distribution1D) CDF() []float64 {
	out := make([]float64, len(d.cdf))
	copy(out, d.cdf)
	return out
}

func (d *Distribution1D) mustBeNormalized() {
	if !d.normalized {
		panic("distribution used before Normalize")
	}
}

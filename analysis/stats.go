// Package analysis compares flip-count samples from different War variants.
package analysis

import (
	"math"
	"slices"
)

// Summary describes one sample.
type Summary struct {
	N        int     `json:"n"`
	Mean     float64 `json:"mean"`
	Variance float64 `json:"variance"`
	StdDev   float64 `json:"std_dev"`
	Min      int     `json:"min"`
	Max      int     `json:"max"`
	Median   float64 `json:"median"`
}

// Bin is one histogram bucket covering [Lo, Hi).
type Bin struct {
	Lo    float64
	Hi    float64
	Count int
}

// moments returns the mean and population variance. The running update
// stays accurate for large flip counts where summing squares would not.
func moments(xs []int) (float64, float64) {
	var w welford
	for _, x := range xs {
		w.add(x)
	}
	return w.result()
}

type welford struct {
	n    int
	mean float64
	m2   float64
}

func (w *welford) add(x int) {
	v := float64(x)
	w.n++
	d := v - w.mean
	w.mean += d / float64(w.n)
	w.m2 += d * (v - w.mean)
}

func (w *welford) result() (float64, float64) {
	if w.n == 0 {
		return 0, 0
	}
	variance := w.m2 / float64(w.n)
	if variance < 0 {
		variance = 0
	}
	return w.mean, variance
}

// Mean returns the arithmetic mean, 0 for an empty sample.
func Mean(xs []int) float64 {
	m, _ := moments(xs)
	return m
}

// Variance returns the population (biased) variance.
func Variance(xs []int) float64 {
	_, v := moments(xs)
	return v
}

// Summarize computes descriptive statistics.
func Summarize(xs []int) Summary {
	if len(xs) == 0 {
		return Summary{}
	}
	mean, variance := moments(xs)

	sorted := slices.Clone(xs)
	slices.Sort(sorted)
	mid := len(sorted) / 2
	med := float64(sorted[mid])
	if len(sorted)%2 == 0 {
		med = float64(sorted[mid-1]+sorted[mid]) / 2
	}

	return Summary{
		N:        len(xs),
		Mean:     mean,
		Variance: variance,
		StdDev:   math.Sqrt(variance),
		Min:      sorted[0],
		Max:      sorted[len(sorted)-1],
		Median:   med,
	}
}

// Histogram splits the sample range into equal-width bins. The maximum
// value falls in the last bin.
func Histogram(xs []int, bins int) []Bin {
	if len(xs) == 0 || bins <= 0 {
		return nil
	}
	lo, hi := float64(slices.Min(xs)), float64(slices.Max(xs))
	width := (hi - lo) / float64(bins)
	if width == 0 {
		width = 1
	}

	out := make([]Bin, bins)
	for i := range out {
		out[i].Lo = lo + float64(i)*width
		out[i].Hi = lo + float64(i+1)*width
	}
	for _, x := range xs {
		i := int((float64(x) - lo) / width)
		if i >= bins {
			i = bins - 1
		}
		out[i].Count++
	}
	return out
}

package analysis

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/rand"
	"runtime"
	"sync"

	"golang.org/x/sync/errgroup"
)

var (
	// ErrMismatchedSampleLength is returned when samples differ in size.
	ErrMismatchedSampleLength = errors.New("samples have different lengths")
	// ErrEmptySample is returned for a sample with no values.
	ErrEmptySample = errors.New("sample is empty")
	// ErrTooFewSamples is returned when there is no pair to compare.
	ErrTooFewSamples = errors.New("at least two samples are required")
)

// chunkSize is the number of resample trials sharing one random stream.
// Chunks are the unit of parallel work.
const chunkSize = 64

// Config controls the bootstrap test
type Config struct {
	Resamples int    // Trials per pair, 0 = sample size
	Seed      uint64 // Master seed
	Workers   int    // Concurrent chunks, 0 = NumCPU
	Progress  func(done, total int)
}

// PairResult is the outcome of comparing two consecutive samples
type PairResult struct {
	MeanA      float64 `json:"mean_a"`
	MeanB      float64 `json:"mean_b"`
	VarA       float64 `json:"var_a"`
	VarB       float64 `json:"var_b"`
	MeanDiff   float64 `json:"mean_diff"`
	VarDiff    float64 `json:"var_diff"`
	MeanExceed int     `json:"mean_exceed"`
	VarExceed  int     `json:"var_exceed"`
	Resamples  int     `json:"resamples"`
	MeanPValue float64 `json:"mean_p_value"`
	VarPValue  float64 `json:"var_p_value"`
}

// Result holds one PairResult per adjacent pair of samples
type Result struct {
	Pairs       []PairResult `json:"pairs"`
	MeanPValues []float64    `json:"mean_p_values"`
	VarPValues  []float64    `json:"var_p_values"`
}

func checkSamples(samples [][]int) error {
	if len(samples) < 2 {
		return fmt.Errorf("%w: got %d", ErrTooFewSamples, len(samples))
	}
	for i, s := range samples {
		if len(s) == 0 {
			return fmt.Errorf("%w: sample %d", ErrEmptySample, i)
		}
		if len(s) != len(samples[0]) {
			return fmt.Errorf("%w: sample %d has %d values, sample 0 has %d",
				ErrMismatchedSampleLength, i, len(s), len(samples[0]))
		}
	}
	return nil
}

// ComparePair runs the bootstrap test on a single pair. It gives the same
// answer as the first pair of CompareSuccessive with the same config.
func ComparePair(ctx context.Context, a, b []int, cfg Config) (PairResult, error) {
	res, err := CompareSuccessive(ctx, [][]int{a, b}, cfg)
	if err != nil {
		return PairResult{}, err
	}
	return res.Pairs[0], nil
}

// CompareSuccessive tests each sample against the next one for equal mean
// and equal variance. Under the null hypothesis both samples come from the
// pooled distribution, so each trial draws two samples of the same size
// from the pool with replacement and counts how often their difference is
// at least the observed one. p = count / trials.
func CompareSuccessive(ctx context.Context, samples [][]int, cfg Config) (*Result, error) {
	if err := checkSamples(samples); err != nil {
		return nil, err
	}

	trials := cfg.Resamples
	if trials <= 0 {
		trials = len(samples[0])
	}
	workers := cfg.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	pairs := len(samples) - 1
	total := pairs * trials
	var (
		mu   sync.Mutex
		done int
	)
	report := func(n int) {
		if cfg.Progress == nil {
			return
		}
		mu.Lock()
		defer mu.Unlock()
		done += n
		cfg.Progress(done, total)
	}

	rng := rand.New(rand.NewSource(int64(cfg.Seed)))
	result := &Result{
		Pairs:       make([]PairResult, pairs),
		MeanPValues: make([]float64, pairs),
		VarPValues:  make([]float64, pairs),
	}
	for i := 0; i < pairs; i++ {
		pr, err := comparePair(ctx, samples[i], samples[i+1], trials, workers, rng.Uint64(), report)
		if err != nil {
			return nil, fmt.Errorf("pair %d: %w", i+1, err)
		}
		result.Pairs[i] = pr
		result.MeanPValues[i] = pr.MeanPValue
		result.VarPValues[i] = pr.VarPValue
	}

	return result, nil
}

func comparePair(ctx context.Context, a, b []int, trials, workers int, seed uint64, report func(int)) (PairResult, error) {
	meanA, varA := moments(a)
	meanB, varB := moments(b)
	res := PairResult{
		MeanA:     meanA,
		MeanB:     meanB,
		VarA:      varA,
		VarB:      varB,
		MeanDiff:  math.Abs(meanA - meanB),
		VarDiff:   math.Abs(varA - varB),
		Resamples: trials,
	}

	pool := make([]int, 0, len(a)+len(b))
	pool = append(pool, a...)
	pool = append(pool, b...)
	n := len(a)

	// Chunk seeds come from one stream, so counts do not depend on scheduling.
	numChunks := (trials + chunkSize - 1) / chunkSize
	seedRng := rand.New(rand.NewSource(int64(seed)))
	chunkSeeds := make([]int64, numChunks)
	for i := range chunkSeeds {
		chunkSeeds[i] = seedRng.Int63()
	}
	meanCounts := make([]int, numChunks)
	varCounts := make([]int, numChunks)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for c := 0; c < numChunks; c++ {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			lo := c * chunkSize
			hi := min(lo+chunkSize, trials)
			rng := rand.New(rand.NewSource(chunkSeeds[c]))

			for t := lo; t < hi; t++ {
				meanX, varX := resampleMoments(rng, pool, n)
				meanY, varY := resampleMoments(rng, pool, n)
				if math.Abs(meanX-meanY) >= res.MeanDiff {
					meanCounts[c]++
				}
				if math.Abs(varX-varY) >= res.VarDiff {
					varCounts[c]++
				}
			}
			report(hi - lo)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return PairResult{}, err
	}

	for c := 0; c < numChunks; c++ {
		res.MeanExceed += meanCounts[c]
		res.VarExceed += varCounts[c]
	}
	res.MeanPValue = float64(res.MeanExceed) / float64(trials)
	res.VarPValue = float64(res.VarExceed) / float64(trials)
	return res, nil
}

// resampleMoments draws n values from pool with replacement and returns
// their mean and population variance.
func resampleMoments(rng *rand.Rand, pool []int, n int) (float64, float64) {
	var w welford
	for i := 0; i < n; i++ {
		w.add(pool[rng.Intn(len(pool))])
	}
	return w.result()
}

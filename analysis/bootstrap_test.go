package analysis

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func alternating(n int, values ...int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = values[i%len(values)]
	}
	return out
}

func TestCompareSuccessive_IdenticalSamples(t *testing.T) {
	s := alternating(250, 180, 240, 300, 410, 95)
	res, err := CompareSuccessive(context.Background(), [][]int{s, s}, Config{Seed: 1})
	require.NoError(t, err)
	require.Len(t, res.Pairs, 1)

	pr := res.Pairs[0]
	assert.Zero(t, pr.MeanDiff)
	assert.Zero(t, pr.VarDiff)
	assert.Equal(t, 1.0, pr.MeanPValue)
	assert.Equal(t, 1.0, pr.VarPValue)
	assert.Equal(t, 250, pr.Resamples)
}

func TestCompareSuccessive_WildlyDifferentSamples(t *testing.T) {
	a := alternating(250, 10, 20)
	b := alternating(250, 1000, 3000)
	pr, err := ComparePair(context.Background(), a, b, Config{Seed: 7})
	require.NoError(t, err)

	assert.InDelta(t, 1985.0, pr.MeanDiff, 1e-9)
	assert.Less(t, pr.MeanPValue, 0.01)
	assert.Less(t, pr.VarPValue, 0.01)
}

func TestCompareSuccessive_ConstantSamples(t *testing.T) {
	// Zero variance on both sides: the mean differs, the variance does not.
	a := alternating(100, 10)
	b := alternating(100, 1000)
	pr, err := ComparePair(context.Background(), a, b, Config{Seed: 3})
	require.NoError(t, err)

	assert.Less(t, pr.MeanPValue, 0.01)
	assert.Equal(t, 1.0, pr.VarPValue)
}

func TestCompareSuccessive_FiveSamples(t *testing.T) {
	samples := [][]int{
		alternating(200, 200, 260, 310),
		alternating(200, 150, 210, 240),
		alternating(200, 140, 205, 250),
		alternating(200, 90, 120, 130),
		alternating(200, 60, 70, 95),
	}
	res, err := CompareSuccessive(context.Background(), samples, Config{Seed: 11, Resamples: 500})
	require.NoError(t, err)

	require.Len(t, res.MeanPValues, 4)
	require.Len(t, res.VarPValues, 4)
	for i, pr := range res.Pairs {
		assert.Equal(t, 500, pr.Resamples)
		assert.Equal(t, pr.MeanPValue, res.MeanPValues[i])
		assert.Equal(t, pr.VarPValue, res.VarPValues[i])
		assert.GreaterOrEqual(t, pr.MeanPValue, 0.0)
		assert.LessOrEqual(t, pr.MeanPValue, 1.0)
		assert.GreaterOrEqual(t, pr.VarPValue, 0.0)
		assert.LessOrEqual(t, pr.VarPValue, 1.0)
	}
}

func TestCompareSuccessive_Deterministic(t *testing.T) {
	samples := [][]int{
		alternating(300, 120, 180, 260, 400),
		alternating(300, 110, 190, 250, 500),
		alternating(300, 100, 170, 240, 420),
	}
	ctx := context.Background()

	first, err := CompareSuccessive(ctx, samples, Config{Seed: 2022, Workers: 1})
	require.NoError(t, err)
	second, err := CompareSuccessive(ctx, samples, Config{Seed: 2022, Workers: 8})
	require.NoError(t, err)

	assert.Equal(t, first, second)

	pr, err := ComparePair(ctx, samples[0], samples[1], Config{Seed: 2022})
	require.NoError(t, err)
	assert.Equal(t, first.Pairs[0], pr)
}

func TestCompareSuccessive_Errors(t *testing.T) {
	ctx := context.Background()

	_, err := CompareSuccessive(ctx, [][]int{{1, 2, 3}, {1, 2}}, Config{})
	assert.ErrorIs(t, err, ErrMismatchedSampleLength)

	_, err = CompareSuccessive(ctx, [][]int{{1, 2, 3}}, Config{})
	assert.ErrorIs(t, err, ErrTooFewSamples)

	_, err = CompareSuccessive(ctx, [][]int{{}, {}}, Config{})
	assert.ErrorIs(t, err, ErrEmptySample)

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	_, err = CompareSuccessive(cancelled, [][]int{{1, 2}, {3, 4}}, Config{})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestCompareSuccessive_Progress(t *testing.T) {
	samples := [][]int{alternating(130, 1, 2), alternating(130, 2, 3), alternating(130, 3, 4)}
	var last, total int
	_, err := CompareSuccessive(context.Background(), samples, Config{
		Seed:    5,
		Workers: 4,
		Progress: func(done, n int) {
			assert.Greater(t, done, last)
			last, total = done, n
		},
	})
	require.NoError(t, err)
	assert.Equal(t, 260, total)
	assert.Equal(t, total, last)
}

func BenchmarkCompareSuccessive(b *testing.B) {
	samples := [][]int{
		alternating(250, 120, 180, 260, 400),
		alternating(250, 110, 190, 250, 500),
	}
	for i := 0; i < b.N; i++ {
		CompareSuccessive(context.Background(), samples, Config{Seed: uint64(i)})
	}
}

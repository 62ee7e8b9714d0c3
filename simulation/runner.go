package simulation

import (
	"fmt"
	"iter"
	"math/rand"
	"slices"
	"time"

	"github.com/signalnine/wartime/gosim/game"
)

// Sample is the flip count of each game in a batch, in game order.
type Sample []int

// Variant is a named rule set with the file its sample is stored in
type Variant struct {
	Name  string
	File  string
	Rules game.Rules
}

// StandardVariants returns the five rule sets compared by the analyzer,
// in the order their samples are tested.
func StandardVariants() []Variant {
	return []Variant{
		{Name: "stock war", File: "default_times.csv", Rules: game.Rules{WarDeposit: 1}},
		{Name: "3-card war", File: "3card_times.csv", Rules: game.Rules{WarDeposit: 2}},
		{Name: "5-card war", File: "5card_times.csv", Rules: game.Rules{WarDeposit: 4}},
		{Name: "reduction war", File: "reduction_times.csv", Rules: game.Rules{WarDeposit: 1, Reduction: true}},
		{Name: "5-card reduction war", File: "reduction_5card_times.csv", Rules: game.Rules{WarDeposit: 4, Reduction: true}},
	}
}

// GameResult holds the outcome of a single game
type GameResult struct {
	SimID       int
	Seed        uint64
	Winner      int
	Flips       int
	Rounds      int
	Wars        int
	MaxWarDepth int
	Removed     int
	Capped      bool
	DurationNs  uint64
}

// AggregatedStats summarizes multiple game results
type AggregatedStats struct {
	TotalGames    int
	Player1Wins   int
	Player2Wins   int
	AvgFlips      float64
	MedianFlips   int
	MinFlips      int
	MaxFlips      int
	TotalWars     int
	MaxWarDepth   int
	TotalRemoved  int
	CappedGames   int
	AvgDurationNs uint64
}

// BatchResult is a flip-count sample plus its summary
type BatchResult struct {
	Seed   uint64
	Sample Sample
	Stats  AggregatedStats
}

// ProgressFunc is told how many games of a batch have finished.
type ProgressFunc func(done, total int)

// RunSingleGame plays one complete game to termination
func RunSingleGame(rules game.Rules, seed uint64) GameResult {
	start := time.Now()
	result := game.PlayWarGame(rules, int64(seed))

	return GameResult{
		Seed:        seed,
		Winner:      result.Winner,
		Flips:       result.Flips,
		Rounds:      result.Rounds,
		Wars:        result.Wars,
		MaxWarDepth: result.MaxWarDepth,
		Removed:     result.Removed,
		Capped:      result.Capped,
		DurationNs:  uint64(time.Since(start).Nanoseconds()),
	}
}

// gameSeeds derives one seed per game from the batch seed.
func gameSeeds(numGames int, seed uint64) []uint64 {
	rng := rand.New(rand.NewSource(int64(seed)))
	seeds := make([]uint64, numGames)
	for i := range seeds {
		seeds[i] = rng.Uint64()
	}
	return seeds
}

func checkBatch(rules game.Rules, numGames int) error {
	if err := rules.Validate(); err != nil {
		return err
	}
	if numGames < 0 {
		return fmt.Errorf("number of games must not be negative, got %d", numGames)
	}
	return nil
}

// Games streams game results one at a time. Invalid rules yield nothing.
func Games(rules game.Rules, numGames int, seed uint64) iter.Seq2[int, GameResult] {
	return func(yield func(int, GameResult) bool) {
		if checkBatch(rules, numGames) != nil {
			return
		}
		rng := rand.New(rand.NewSource(int64(seed)))
		for i := 0; i < numGames; i++ {
			result := RunSingleGame(rules, rng.Uint64())
			result.SimID = i
			if !yield(i, result) {
				return
			}
		}
	}
}

// RunBatch simulates numGames independent games one after another
func RunBatch(rules game.Rules, numGames int, seed uint64, progress ProgressFunc) (BatchResult, error) {
	if err := checkBatch(rules, numGames); err != nil {
		return BatchResult{}, err
	}

	results := make([]GameResult, 0, numGames)
	for i, result := range Games(rules, numGames, seed) {
		results = append(results, result)
		if progress != nil {
			progress(i+1, numGames)
		}
	}

	res := aggregateResults(results)
	res.Seed = seed
	return res, nil
}

// RunVariants runs one batch per variant, each seeded from the master seed.
// numWorkers of 1 runs serially.
func RunVariants(variants []Variant, numGames int, seed uint64, numWorkers int, progress func(v Variant, done, total int)) ([]BatchResult, error) {
	rng := rand.New(rand.NewSource(int64(seed)))
	out := make([]BatchResult, len(variants))

	for i, v := range variants {
		var onGame ProgressFunc
		if progress != nil {
			onGame = func(done, total int) { progress(v, done, total) }
		}

		variantSeed := rng.Uint64()
		var (
			res BatchResult
			err error
		)
		if numWorkers == 1 {
			res, err = RunBatch(v.Rules, numGames, variantSeed, onGame)
		} else {
			res, err = RunBatchParallelN(v.Rules, numGames, variantSeed, numWorkers, onGame)
		}
		if err != nil {
			return nil, fmt.Errorf("variant %q: %w", v.Name, err)
		}
		out[i] = res
	}

	return out, nil
}

// aggregateResults computes summary statistics
func aggregateResults(results []GameResult) BatchResult {
	stats := AggregatedStats{
		TotalGames: len(results),
	}
	sample := make(Sample, len(results))

	totalDuration := uint64(0)
	sum := 0
	for i, result := range results {
		sample[i] = result.Flips
		sum += result.Flips

		switch result.Winner {
		case 1:
			stats.Player1Wins++
		case 2:
			stats.Player2Wins++
		}
		if result.Capped {
			stats.CappedGames++
		}

		stats.TotalWars += result.Wars
		stats.TotalRemoved += result.Removed
		if result.MaxWarDepth > stats.MaxWarDepth {
			stats.MaxWarDepth = result.MaxWarDepth
		}
		totalDuration += result.DurationNs
	}

	if len(results) > 0 {
		stats.AvgFlips = float64(sum) / float64(len(results))
		stats.MedianFlips = median(sample)
		stats.MinFlips = slices.Min(sample)
		stats.MaxFlips = slices.Max(sample)
		stats.AvgDurationNs = totalDuration / uint64(len(results))
	}

	return BatchResult{Sample: sample, Stats: stats}
}

// median calculates the median of a slice
func median(values []int) int {
	if len(values) == 0 {
		return 0
	}

	sorted := slices.Clone(values)
	slices.Sort(sorted)

	mid := len(sorted) / 2
	if len(sorted)%2 == 0 {
		return (sorted[mid-1] + sorted[mid]) / 2
	}
	return sorted[mid]
}

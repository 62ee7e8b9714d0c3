package simulation

import (
	"testing"
	"time"

	"github.com/signalnine/wartime/gosim/game"
)

// TestRunBatchParallel_ProducesSameResultsAsSerial verifies correctness.
// Seeds are assigned per game, so the samples must match exactly.
func TestRunBatchParallel_ProducesSameResultsAsSerial(t *testing.T) {
	rules := game.Rules{WarDeposit: 2, Reduction: true}
	numGames := 300
	seed := uint64(42)

	serial, err := RunBatch(rules, numGames, seed, nil)
	if err != nil {
		t.Fatal(err)
	}
	parallel, err := RunBatchParallelN(rules, numGames, seed, 4, nil)
	if err != nil {
		t.Fatal(err)
	}

	if serial.Stats.TotalGames != parallel.Stats.TotalGames {
		t.Errorf("TotalGames mismatch: serial=%d, parallel=%d",
			serial.Stats.TotalGames, parallel.Stats.TotalGames)
	}
	for i := range serial.Sample {
		if serial.Sample[i] != parallel.Sample[i] {
			t.Fatalf("game %d: serial=%d parallel=%d", i, serial.Sample[i], parallel.Sample[i])
		}
	}
	if serial.Stats.AvgFlips != parallel.Stats.AvgFlips {
		t.Errorf("AvgFlips mismatch: serial=%.2f, parallel=%.2f",
			serial.Stats.AvgFlips, parallel.Stats.AvgFlips)
	}
	if serial.Stats.TotalRemoved != parallel.Stats.TotalRemoved {
		t.Errorf("TotalRemoved mismatch: serial=%d, parallel=%d",
			serial.Stats.TotalRemoved, parallel.Stats.TotalRemoved)
	}
}

// TestRunBatchParallel_HandlesSmallBatches tests edge case
func TestRunBatchParallel_HandlesSmallBatches(t *testing.T) {
	for _, numGames := range []int{0, 1, 3} {
		res, err := RunBatchParallelN(game.DefaultRules(), numGames, 99, 8, nil)
		if err != nil {
			t.Fatal(err)
		}
		if res.Stats.TotalGames != numGames || len(res.Sample) != numGames {
			t.Errorf("Expected %d total games, got %d", numGames, res.Stats.TotalGames)
		}
	}
}

func TestRunBatchParallel_Progress(t *testing.T) {
	last := 0
	_, err := RunBatchParallelN(game.DefaultRules(), 50, 5, 4, func(done, total int) {
		if done != last+1 {
			t.Errorf("progress jumped from %d to %d", last, done)
		}
		last = done
	})
	if err != nil {
		t.Fatal(err)
	}
	if last != 50 {
		t.Errorf("final progress = %d, want 50", last)
	}
}

// TestRunBatchParallel_HandlesLargeBatches tests scalability
func TestRunBatchParallel_HandlesLargeBatches(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping large batch test in short mode")
	}

	numGames := 5000
	start := time.Now()
	res, err := RunBatchParallel(game.DefaultRules(), numGames, 7777)
	if err != nil {
		t.Fatal(err)
	}
	duration := time.Since(start)

	t.Logf("Completed %d games in %v (%.0f games/sec)",
		numGames, duration, float64(numGames)/duration.Seconds())

	if res.Stats.TotalGames != numGames {
		t.Errorf("Expected %d total games, got %d", numGames, res.Stats.TotalGames)
	}
	if res.Stats.Player1Wins+res.Stats.Player2Wins != numGames {
		t.Errorf("Outcome count mismatch: %d != %d",
			res.Stats.Player1Wins+res.Stats.Player2Wins, numGames)
	}
}

// BenchmarkRunBatchSerial benchmarks serial execution
func BenchmarkRunBatchSerial(b *testing.B) {
	rules := game.DefaultRules()
	for i := 0; i < b.N; i++ {
		RunBatch(rules, 100, 42, nil)
	}
}

// BenchmarkRunBatchParallel benchmarks parallel execution
func BenchmarkRunBatchParallel(b *testing.B) {
	rules := game.DefaultRules()
	for i := 0; i < b.N; i++ {
		RunBatchParallel(rules, 100, 42)
	}
}

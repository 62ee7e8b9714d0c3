package simulation

import (
	"runtime"
	"sync"

	"github.com/signalnine/wartime/gosim/game"
)

// GameJob represents a single simulation job
type GameJob struct {
	SimID int
	Seed  uint64
}

// RunBatchParallelN executes a batch using a specified number of workers.
// Per-game seeds are drawn exactly as in RunBatch and results are stored
// by game index, so the sample matches the serial run for the same seed.
func RunBatchParallelN(rules game.Rules, numGames int, seed uint64, numWorkers int, progress ProgressFunc) (BatchResult, error) {
	if err := checkBatch(rules, numGames); err != nil {
		return BatchResult{}, err
	}
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}

	jobs := make(chan GameJob, numGames)
	results := make(chan GameResult, numGames)

	var wg sync.WaitGroup

	// Start workers
	for w := 0; w < numWorkers; w++ {
		wg.Add(1)
		go worker(&wg, jobs, results, rules)
	}

	for i, gameSeed := range gameSeeds(numGames, seed) {
		jobs <- GameJob{
			SimID: i,
			Seed:  gameSeed,
		}
	}
	close(jobs)

	// Wait for all workers to complete, then close results
	go func() {
		wg.Wait()
		close(results)
	}()

	res := aggregateParallelResults(results, numGames, progress)
	res.Seed = seed
	return res, nil
}

// RunBatchParallel executes a batch using one worker per CPU
func RunBatchParallel(rules game.Rules, numGames int, seed uint64) (BatchResult, error) {
	return RunBatchParallelN(rules, numGames, seed, runtime.NumCPU(), nil)
}

// worker processes simulation jobs from the jobs channel
func worker(wg *sync.WaitGroup, jobs <-chan GameJob, results chan<- GameResult, rules game.Rules) {
	defer wg.Done()

	for job := range jobs {
		result := RunSingleGame(rules, job.Seed)
		result.SimID = job.SimID
		results <- result
	}
}

// aggregateParallelResults collects results in game order
func aggregateParallelResults(results <-chan GameResult, numGames int, progress ProgressFunc) BatchResult {
	ordered := make([]GameResult, numGames)

	done := 0
	for result := range results {
		ordered[result.SimID] = result
		done++
		if progress != nil {
			progress(done, numGames)
		}
	}

	return aggregateResults(ordered)
}

package solver

import (
	"context"
	"math/rand"
	"sync"
)

// RunParallel runs workers independent Pipeline.Run calls concurrently,
// each with its own rng derived from seed plus its worker index so runs
// stay reproducible, and keeps the highest-scoring feasible result under
// a mutex. Generalizes the teacher's cli.go CommandGen worker pool from
// repeated course-swap search to repeated whole-pipeline restarts.
// Pipeline.Run itself remains single-threaded; this is purely additive.
func (pl *Pipeline) RunParallel(ctx context.Context, runID string, seed int64, workers int) (*Result, error) {
	if workers < 1 {
		workers = 1
	}

	var (
		wg      sync.WaitGroup
		mutex   sync.Mutex
		best    *Result
		lastErr error
	)

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(worker int) {
			defer wg.Done()
			rng := rand.New(rand.NewSource(seed + int64(worker)))
			result, err := pl.Run(ctx, runID, rng)

			mutex.Lock()
			defer mutex.Unlock()
			if err != nil {
				lastErr = err
				return
			}
			if best == nil || result.Score.Score > best.Score.Score {
				best = result
			}
		}(w)
	}
	wg.Wait()

	if best == nil {
		return nil, lastErr
	}
	return best, nil
}

package search

import (
	"fmt"
	"runtime"
	"sync"
)

// DefaultBatchSize is the default number of trials grouped into one unit
// of work submitted to the worker pool.
const DefaultBatchSize = 75

// ParallelOption configures Parallel.
type ParallelOption func(*parallelOptions)

type parallelOptions struct {
	workers   int
	batchSize int
}

// WithWorkers overrides the worker pool size. It defaults to
// runtime.NumCPU().
func WithWorkers(n int) ParallelOption {
	return func(o *parallelOptions) { o.workers = n }
}

// WithBatchSize overrides DefaultBatchSize. Too small amplifies
// scheduling overhead; too large loses load balance across workers
//.
func WithBatchSize(n int) ParallelOption {
	return func(o *parallelOptions) { o.batchSize = n }
}

// batch is a fixed-size slice of trials dispatched as one unit of work.
type batch struct {
	trials []Trial
}

type batchResult struct {
	matches []Match
	err     error
}

// Parallel partitions trials into fixed-size batches and evaluates them
// across a pool of worker goroutines sized to available cores, then
// concatenates every worker's matches.
// Workers share no mutable state beyond the read-only ciphertext/crib and
// their own result slice; the caller goroutine is the sole consumer of
// the results channel.
func Parallel(ciphertext, crib string, trials []Trial, opts ...ParallelOption) ([]Match, error) {
	o := &parallelOptions{workers: runtime.NumCPU(), batchSize: DefaultBatchSize}
	for _, opt := range opts {
		opt(o)
	}
	if o.workers < 1 {
		o.workers = 1
	}
	if o.batchSize < 1 {
		o.batchSize = 1
	}

	batches := partitionBatches(trials, o.batchSize)
	if len(batches) == 0 {
		return nil, nil
	}

	jobs := make(chan batch, len(batches))
	results := make(chan batchResult, len(batches))

	var wg sync.WaitGroup
	for w := 0; w < o.workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for b := range jobs {
				results <- runBatch(ciphertext, crib, b)
			}
		}()
	}

	for _, b := range batches {
		jobs <- b
	}
	close(jobs)

	go func() {
		wg.Wait()
		close(results)
	}()

	var matches []Match
	for res := range results {
		if res.err != nil {
			return nil, res.err
		}
		matches = append(matches, res.matches...)
	}
	return matches, nil
}

func partitionBatches(trials []Trial, size int) []batch {
	var batches []batch
	for i := 0; i < len(trials); i += size {
		end := i + size
		if end > len(trials) {
			end = len(trials)
		}
		batches = append(batches, batch{trials: trials[i:end]})
	}
	return batches
}

func runBatch(ciphertext, crib string, b batch) batchResult {
	var matches []Match
	for _, t := range b.trials {
		m, ok, err := Evaluate(ciphertext, crib, t)
		if err != nil {
			return batchResult{err: fmt.Errorf("search: evaluating batch: %w", err)}
		}
		if ok {
			matches = append(matches, m)
		}
	}
	return batchResult{matches: matches}
}

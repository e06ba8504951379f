// Package coordinate implements the parallel analysis coordinator:
// worker goroutines draw file indices from a single atomic counter,
// analyze independently, and report back to be reassembled in
// original (filename-sorted) order.
//
// Deliberately NOT grounded on the donor's cmd/hau-report/report.go,
// which uses a semaphore-channel pool with a pre-sized results slice;
// that is a different scheduling model than the atomic-counter,
// worker-accumulates-locally-and-returns-at-exit model this package
// implements, per spec.
package coordinate

import (
	"runtime"
	"sort"
	"sync"
	"sync/atomic"
)

// WorkerCount coerces a requested worker count to a legal value: at
// least 1, and never more than the number of files to process (so 0
// when there are no files).
func WorkerCount(requested, fileCount int) int {
	if requested < 1 {
		requested = 1
	}

	if fileCount < requested {
		return fileCount
	}

	return requested
}

// DefaultJobs is the default worker count when the caller does not
// specify one: the machine's reported hardware parallelism, floored
// at 1 (runtime.NumCPU already guarantees at least 1).
func DefaultJobs() int { return runtime.NumCPU() }

// Work analyzes the file at path (originally at the given index in
// the sorted file list), reporting fractional progress via report as
// it goes. report may be called zero or more times and must be safe
// to call from the goroutine performing the analysis.
type Work[T any] func(index int, path string, report func(percent float64)) (T, error)

// Hooks lets a caller observe per-track lifecycle events as the async
// variant runs. Every field is optional; a nil
// hook is simply not called. Hooks may be invoked concurrently from
// different worker goroutines and must tolerate that.
type Hooks[T any] struct {
	OnStart    func(index int)
	OnProgress func(index int, percent float64)
	OnComplete func(index int, value T)
	OnError    func(index int, err error)
}

type indexedResult[T any] struct {
	index int
	value T
	err   error
}

// Run drives work over files with the given worker count and, after
// every worker has joined, returns the results ordered by original
// index. If any file failed, it returns nil results and the error of
// the failed file with the lowest index.
func Run[T any](files []string, workers int, work Work[T]) ([]T, error) {
	results := run(files, workers, work, Hooks[T]{})

	sort.Slice(results, func(i, j int) bool { return results[i].index < results[j].index })

	var firstErr error

	values := make([]T, 0, len(results))

	for _, r := range results {
		if r.err != nil && firstErr == nil {
			firstErr = r.err

			continue
		}

		if r.err == nil {
			values = append(values, r.value)
		}
	}

	if firstErr != nil {
		return nil, firstErr
	}

	return values, nil
}

// RunAsync drives work over files with the given worker count, never
// returning a terminal error for an individual file: instead hooks are
// invoked, mirroring spec's tolerant-of-isolated-failures async model.
// It blocks until every worker has joined.
func RunAsync[T any](files []string, workers int, work Work[T], hooks Hooks[T]) {
	run(files, workers, work, hooks)
}

func run[T any](files []string, workers int, work Work[T], hooks Hooks[T]) []indexedResult[T] {
	n := len(files)
	workerCount := WorkerCount(workers, n)

	if workerCount == 0 {
		return nil
	}

	var (
		next    atomic.Int64
		wg      sync.WaitGroup
		mu      sync.Mutex
		overall []indexedResult[T]
	)

	wg.Add(workerCount)

	for w := 0; w < workerCount; w++ {
		go func() {
			defer wg.Done()

			var local []indexedResult[T]

			for {
				idx := int(next.Add(1)) - 1
				if idx >= n {
					break
				}

				if hooks.OnStart != nil {
					hooks.OnStart(idx)
				}

				report := func(percent float64) {
					if hooks.OnProgress != nil {
						hooks.OnProgress(idx, percent)
					}
				}

				value, err := work(idx, files[idx], report)

				if err != nil {
					if hooks.OnError != nil {
						hooks.OnError(idx, err)
					}
				} else if hooks.OnComplete != nil {
					hooks.OnComplete(idx, value)
				}

				local = append(local, indexedResult[T]{index: idx, value: value, err: err})
			}

			mu.Lock()
			overall = append(overall, local...)
			mu.Unlock()
		}()
	}

	wg.Wait()

	return overall
}

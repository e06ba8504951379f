package coordinate_test

import (
	"fmt"
	"sort"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/farcloser/dr/internal/coordinate"
)

func TestRunOrdersResultsByIndex(t *testing.T) {
	t.Parallel()

	files := make([]string, 50)
	for i := range files {
		files[i] = fmt.Sprintf("file-%02d", i)
	}

	got, err := coordinate.Run(files, 8, func(index int, path string, report func(float64)) (string, error) {
		report(1.0)

		return path, nil
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if len(got) != len(files) {
		t.Fatalf("Run() returned %d results, want %d", len(got), len(files))
	}

	for i, want := range files {
		if got[i] != want {
			t.Errorf("result[%d] = %s, want %s", i, got[i], want)
		}
	}
}

func TestRunEveryIndexClaimedExactlyOnce(t *testing.T) {
	t.Parallel()

	const n = 200

	files := make([]string, n)
	for i := range files {
		files[i] = fmt.Sprintf("f%d", i)
	}

	var mu sync.Mutex

	seen := make(map[int]int)

	_, err := coordinate.Run(files, 16, func(index int, _ string, _ func(float64)) (struct{}, error) {
		mu.Lock()
		seen[index]++
		mu.Unlock()

		return struct{}{}, nil
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if len(seen) != n {
		t.Fatalf("claimed %d distinct indices, want %d", len(seen), n)
	}

	for idx, count := range seen {
		if count != 1 {
			t.Errorf("index %d claimed %d times, want 1", idx, count)
		}
	}
}

func TestRunAsyncEventOrderingPerTrack(t *testing.T) {
	t.Parallel()

	files := []string{"a", "b", "c", "d"}

	var (
		mu                  sync.Mutex
		starts              = map[int]bool{}
		errs                int
		completeBeforeStart int
	)

	var completes int64

	hooks := coordinate.Hooks[int]{
		OnStart: func(index int) {
			mu.Lock()
			starts[index] = true
			mu.Unlock()
		},
		OnComplete: func(index int, _ int) {
			mu.Lock()
			if !starts[index] {
				completeBeforeStart++
			}
			mu.Unlock()

			atomic.AddInt64(&completes, 1)
		},
		OnError: func(index int, _ error) {
			mu.Lock()
			errs++
			mu.Unlock()
		},
	}

	coordinate.RunAsync(files, 4, func(index int, _ string, _ func(float64)) (int, error) {
		return index, nil
	}, hooks)

	if len(starts) != len(files) {
		t.Fatalf("OnStart called for %d tracks, want %d", len(starts), len(files))
	}

	if got := atomic.LoadInt64(&completes); got != int64(len(files)) {
		t.Fatalf("OnComplete called %d times, want %d", got, len(files))
	}

	if errs != 0 {
		t.Fatalf("OnError called %d times, want 0", errs)
	}

	if completeBeforeStart != 0 {
		t.Fatalf("OnComplete fired before OnStart for %d tracks, want 0", completeBeforeStart)
	}
}

func TestWorkerCountCoercion(t *testing.T) {
	t.Parallel()

	cases := []struct {
		requested, files, want int
	}{
		{requested: 0, files: 5, want: 1},
		{requested: -3, files: 5, want: 1},
		{requested: 8, files: 3, want: 3},
		{requested: 2, files: 10, want: 2},
	}

	for _, c := range cases {
		if got := coordinate.WorkerCount(c.requested, c.files); got != c.want {
			t.Errorf("WorkerCount(%d, %d) = %d, want %d", c.requested, c.files, got, c.want)
		}
	}
}

func TestRunSortsDespiteUnorderedCompletion(t *testing.T) {
	t.Parallel()

	files := make([]string, 30)
	for i := range files {
		files[i] = fmt.Sprintf("%d", i)
	}

	got, err := coordinate.Run(files, 6, func(index int, path string, _ func(float64)) (int, error) {
		return index, nil
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if !sort.IntsAreSorted(got) {
		t.Fatalf("Run() result not sorted by index: %v", got)
	}
}

package utils

import (
	"context"
	"sync"

	"github.com/CPU-commits/Intranet_BCourseStats/res"
	"golang.org/x/sync/semaphore"
)

// Concurrency runs do for every index in [0, count) with at most semWeight
// calls in flight. The first error reported through setError cancels the
// remaining work and is returned. do receives a context that is cancelled
// once an error is set.
func Concurrency(
	ctx context.Context,
	semWeight int64,
	count int,
	do func(ctx context.Context, index int, setError func(errRes *res.ErrorRes)),
) *res.ErrorRes {
	var wg sync.WaitGroup
	var once sync.Once
	var firstErr *res.ErrorRes

	sem := semaphore.NewWeighted(semWeight)
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	setError := func(errRes *res.ErrorRes) {
		once.Do(func() {
			firstErr = errRes
			cancel()
		})
	}

	for i := 0; i < count; i++ {
		if err := sem.Acquire(ctx, 1); err != nil {
			// No-op when a failed call already cancelled ctx
			setError(res.NewStoreError(err))
			break
		}
		wg.Add(1)
		go func(index int) {
			defer wg.Done()
			defer sem.Release(1)

			do(ctx, index, setError)
		}(i)
	}
	wg.Wait()
	return firstErr
}

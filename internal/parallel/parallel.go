// Package parallel fans independent block computations out across goroutines.
package parallel

import (
	"runtime"
	"sync"
)

// MinBlocksPerWorker is the smallest number of blocks handed to a single goroutine. Inputs with fewer than twice this
// many blocks are processed on the calling goroutine.
const MinBlocksPerWorker = 64

// Blocks calls fn over the half-open block ranges [lo, hi) which together cover [0, n) exactly once. Ranges are
// contiguous and processed concurrently when n is large enough to be worth it; fn must only write output belonging to
// its own range. Blocks returns after every call to fn has returned.
func Blocks(n int, fn func(lo, hi int)) {
	workers := min(runtime.GOMAXPROCS(0), n/MinBlocksPerWorker)
	if workers < 2 {
		if n > 0 {
			fn(0, n)
		}
		return
	}

	var wg sync.WaitGroup
	per := (n + workers - 1) / workers
	for lo := 0; lo < n; lo += per {
		hi := min(lo+per, n)
		wg.Go(func() {
			fn(lo, hi)
		})
	}
	wg.Wait()
}

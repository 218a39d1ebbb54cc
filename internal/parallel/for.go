package parallel

import "sync/atomic"

// For calls fn(i) for every i in [0, n).
//
// Indices are handed out through a shared atomic counter, one at a time, to
// at most threads jobs on the pool. With a nil pool, threads <= 1 or n <= 1
// the loop runs on the calling goroutine in index order. fn must be safe to
// call concurrently for distinct indices.
func For(pool *WorkerPool, threads, n int, fn func(i int)) {
	if n <= 0 {
		return
	}
	if pool == nil || threads <= 1 || n == 1 {
		for i := range n {
			fn(i)
		}
		return
	}

	threads = min(threads, n, pool.Workers())
	var next atomic.Int64
	jobs := make([]func(), threads)
	for t := range jobs {
		jobs[t] = func() {
			for {
				i := int(next.Add(1) - 1)
				if i >= n {
					return
				}
				fn(i)
			}
		}
	}
	pool.ExecuteAll(jobs)
}

// Package workerpool implements the TaskManager described in spec.md
// §4.8: a fixed-size pool of goroutines draining one-shot jobs from a
// shared channel, with a graceful shutdown that drains in-flight work
// before returning. Grounded on
// _examples/Reinis-FTM-go-http-server/internal/server/server.go's
// per-connection-goroutine + sync.WaitGroup shutdown pattern. Queued jobs
// are bounded by a buffered channel; no sync.Pool is used. No pack repo
// implements a worker-pool abstraction directly,
// so this stays on stdlib concurrency primitives by necessity, same as
// the teacher's own connection-handling code.
package workerpool

import (
	"sync"
)

// Job is one unit of work submitted to a TaskManager.
type Job func()

// TaskManager runs a fixed number of worker goroutines consuming Jobs
// from a shared, bounded channel until Shutdown is called. It does not
// support per-job timeouts or cancellation — spec.md §4.8 scopes that
// out, matching the teacher's own unbounded per-connection goroutines.
type TaskManager struct {
	jobs    chan Job
	wg      sync.WaitGroup
	metrics *metrics
}

// New creates a TaskManager with the given number of workers, each
// consuming from a channel buffered to queueSize.
func New(workers, queueSize int) *TaskManager {
	if workers < 1 {
		workers = 1
	}
	if queueSize < 0 {
		queueSize = 0
	}
	tm := &TaskManager{
		jobs:    make(chan Job, queueSize),
		metrics: newMetrics(),
	}
	tm.wg.Add(workers)
	for i := 0; i < workers; i++ {
		go tm.runWorker()
	}
	return tm
}

func (tm *TaskManager) runWorker() {
	defer tm.wg.Done()
	for job := range tm.jobs {
		tm.metrics.activeInc()
		job()
		tm.metrics.activeDec()
	}
}

// Submit enqueues job for execution by the next free worker. It blocks
// if the queue is full, applying natural backpressure to the accept
// loop rather than spawning unbounded goroutines.
func (tm *TaskManager) Submit(job Job) {
	tm.metrics.queuedInc()
	tm.jobs <- job
}

// Shutdown closes the job channel and blocks until every worker has
// drained its remaining queued jobs and exited.
func (tm *TaskManager) Shutdown() {
	close(tm.jobs)
	tm.wg.Wait()
}

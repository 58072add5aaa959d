// worker/pool.go
package worker

import "context"

// Job is one unit of background work.
type Job[T any] func(ctx context.Context) T

type Result[T any] struct {
	JobID  string
	Output T
}

// Pool runs jobs on a fixed set of background workers so long-running
// operations (catalog sync, bulk store work) never block the caller.
type Pool[T any] struct {
	jobs    chan jobWrapper[T]
	results chan Result[T]
}

type jobWrapper[T any] struct {
	id  string
	ctx context.Context
	fn  Job[T]
}

func NewPool[T any](workerCount int, bufferSize int) *Pool[T] {
	p := &Pool[T]{
		jobs:    make(chan jobWrapper[T], bufferSize),
		results: make(chan Result[T], bufferSize),
	}

	for i := 0; i < workerCount; i++ {
		go p.worker()
	}

	return p
}

func (p *Pool[T]) worker() {
	for job := range p.jobs {
		output := job.fn(job.ctx)
		p.results <- Result[T]{
			JobID:  job.id,
			Output: output,
		}
	}
}

// Submit enqueues a job. It blocks once the buffer is full.
func (p *Pool[T]) Submit(ctx context.Context, id string, fn Job[T]) {
	p.jobs <- jobWrapper[T]{id: id, ctx: ctx, fn: fn}
}

func (p *Pool[T]) Results() <-chan Result[T] {
	return p.results
}

// Close stops the workers after the queued jobs drain. Submitting after
// Close panics.
func (p *Pool[T]) Close() {
	close(p.jobs)
}

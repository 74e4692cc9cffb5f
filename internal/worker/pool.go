// Package worker provides a worker pool for validating PGN games in
// parallel.
package worker

import (
	"context"
	"runtime"
	"sync/atomic"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Spyabo/CLI-Chess/internal/chess"
	"github.com/Spyabo/CLI-Chess/internal/errors"
	"github.com/Spyabo/CLI-Chess/internal/game"
	"github.com/Spyabo/CLI-Chess/internal/pgn"
)

// Job is one parsed game to be replayed.
type Job struct {
	Game   *pgn.Game
	Source string // File the game was read from
	Index  int    // Original index for tracking
}

// Result is the outcome of replaying one game.
type Result struct {
	Source   string
	Index    int
	Record   chess.Record
	Warnings []error
	Err      error
}

// ProcessFunc replays a single job.
type ProcessFunc func(ctx context.Context, job Job) Result

// Pool runs a ProcessFunc over submitted jobs with a fixed number of
// workers.
type Pool struct {
	numWorkers  int
	bufferSize  int
	stopOnError bool
	logger      *zap.Logger
	jobs        chan Job
	results     chan Result
	process     ProcessFunc
	group       *errgroup.Group
	ctx         context.Context
	stopFlag    atomic.Bool
}

// PoolOption configures a Pool.
type PoolOption func(*Pool)

// WithWorkers sets the number of worker goroutines.
func WithWorkers(n int) PoolOption {
	return func(p *Pool) {
		if n >= 1 {
			p.numWorkers = n
		}
	}
}

// WithBufferSize sets the channel buffer size.
func WithBufferSize(size int) PoolOption {
	return func(p *Pool) {
		if size >= 1 {
			p.bufferSize = size
		}
	}
}

// WithStopOnError stops the pool after the first failed job.
func WithStopOnError() PoolOption {
	return func(p *Pool) {
		p.stopOnError = true
	}
}

// WithLogger sets the logger.
func WithLogger(logger *zap.Logger) PoolOption {
	return func(p *Pool) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// NewPool creates a pool. Default: one worker per CPU, buffer size of 10.
func NewPool(process ProcessFunc, opts ...PoolOption) *Pool {
	p := &Pool{
		numWorkers: runtime.NumCPU(),
		bufferSize: 10,
		logger:     zap.NewNop(),
		process:    process,
	}
	for _, opt := range opts {
		opt(p)
	}
	p.jobs = make(chan Job, p.bufferSize)
	p.results = make(chan Result, p.bufferSize)
	return p
}

// Start starts the worker goroutines. Cancelling ctx stops them.
func (p *Pool) Start(ctx context.Context) {
	p.group, p.ctx = errgroup.WithContext(ctx)
	for i := 0; i < p.numWorkers; i++ {
		p.group.Go(p.worker)
	}
}

// worker processes jobs until the job channel is closed or the context is
// done. Jobs taken after Stop are reported with errors.ErrStopped.
func (p *Pool) worker() error {
	for job := range p.jobs {
		if err := p.ctx.Err(); err != nil {
			return err
		}
		var res Result
		if p.IsStopped() {
			res = Result{Source: job.Source, Index: job.Index, Err: errors.ErrStopped}
		} else {
			res = p.process(p.ctx, job)
			if res.Err != nil {
				p.logger.Debug("job failed",
					zap.String("source", job.Source),
					zap.Int("index", job.Index),
					zap.Error(res.Err))
				if p.stopOnError {
					p.Stop()
				}
			}
		}

		select {
		case p.results <- res:
		case <-p.ctx.Done():
			return p.ctx.Err()
		}
	}
	return nil
}

// Submit queues a job, blocking while the buffer is full. It fails once the
// pool's context is done.
func (p *Pool) Submit(job Job) error {
	select {
	case p.jobs <- job:
		return nil
	case <-p.ctx.Done():
		return p.ctx.Err()
	}
}

// TrySubmit attempts to queue a job without blocking.
// Returns false if the buffer is full or the pool is stopped.
func (p *Pool) TrySubmit(job Job) bool {
	if p.IsStopped() {
		return false
	}
	select {
	case p.jobs <- job:
		return true
	default:
		return false
	}
}

// Stop makes workers skip the remaining jobs.
func (p *Pool) Stop() {
	p.stopFlag.Store(true)
}

// IsStopped returns true if the pool has been stopped.
func (p *Pool) IsStopped() bool {
	return p.stopFlag.Load()
}

// Close closes the job channel, waits for the workers and closes the result
// channel. It returns the context error if the workers were cancelled.
func (p *Pool) Close() error {
	close(p.jobs)
	err := p.group.Wait()
	close(p.results)
	return err
}

// Results returns the result channel for reading processed results.
func (p *Pool) Results() <-chan Result {
	return p.results
}

// NumWorkers returns the number of workers in the pool.
func (p *Pool) NumWorkers() int {
	return p.numWorkers
}

// Run processes jobs and returns one result per job in input order. Each
// job's Index is set to its position.
func (p *Pool) Run(ctx context.Context, jobs []Job) ([]Result, error) {
	p.Start(ctx)

	errc := make(chan error, 1)
	go func() {
		for i, job := range jobs {
			job.Index = i
			if err := p.Submit(job); err != nil {
				break
			}
		}
		errc <- p.Close()
	}()

	out := make([]Result, len(jobs))
	for res := range p.results {
		out[res.Index] = res
	}
	if err := <-errc; err != nil {
		return out, err
	}
	return out, ctx.Err()
}

// Replayer returns a ProcessFunc replaying each game through the state
// machine with opts.
func Replayer(opts ...game.Option) ProcessFunc {
	return func(_ context.Context, job Job) Result {
		record, warnings, err := game.Replay(job.Game, opts...)
		return Result{
			Source:   job.Source,
			Index:    job.Index,
			Record:   record,
			Warnings: warnings,
			Err:      err,
		}
	}
}

// Jobs makes one job per parsed game from source.
func Jobs(source string, games []*pgn.Game) []Job {
	jobs := make([]Job, len(games))
	for i, g := range games {
		jobs[i] = Job{Game: g, Source: source, Index: i}
	}
	return jobs
}

package mine

import (
	"context"
	"runtime"
	"sync/atomic"
	"time"

	"github.com/oneconcern/gitzero/pkg/digest"
	"github.com/oneconcern/gitzero/pkg/errors"
	"github.com/oneconcern/gitzero/pkg/gitobj"
	"github.com/oneconcern/gitzero/pkg/mine/status"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const defaultBatchSize = 4096

// Miner runs proof-of-work searches. A Miner is safe for sequential
// reuse; its attempt counter accumulates across searches.
type Miner struct {
	workers     int
	batchSize   int
	statusEvery time.Duration
	l           *zap.Logger

	attempts uint64 // atomic
}

// New creates a miner with the given options
func New(opts ...Option) *Miner {
	m := &Miner{
		workers:     runtime.NumCPU(),
		batchSize:   defaultBatchSize,
		statusEvery: 10 * time.Second,
		l:           zap.NewNop(),
	}
	for _, apply := range opts {
		apply(m)
	}
	return m
}

// Attempts reports the number of candidate evaluations performed so
// far, counted at batch granularity. Progress information only, it
// carries no correctness contract.
func (m *Miner) Attempts() uint64 {
	return atomic.LoadUint64(&m.attempts)
}

// searchState is the only state shared between workers: an atomic found
// flag and the single result slot guarded by it. It is created per
// Search call and torn down when the call returns.
type searchState struct {
	found uint32 // atomic; 1 once a result is installed
	res   Result // written once, by the worker whose compare-and-set won
}

// Search looks for a nonce whose candidate digest has at least target
// leading zero bits, using the configured number of parallel workers.
//
// It returns the first qualifying result any worker installs, or
// status.ErrCancelled when ctx is cancelled first. Validation failures
// surface before any worker is started.
func (m *Miner) Search(ctx context.Context, tpl *gitobj.Template, target int) (Result, error) {
	if target < 0 || target > digest.MaxBits {
		return Result{}, status.ErrInvalidTarget
	}
	if m.workers <= 0 {
		return Result{}, status.ErrInvalidWorkerCount
	}

	// pre-flight: evaluate nonce 0 once. This catches templates that
	// already satisfy the target and makes target 0 return without
	// spawning any worker.
	first := digest.Sum(tpl.Bytes(0))
	atomic.AddUint64(&m.attempts, 1)
	if first.Matches(target) {
		return Result{Nonce: 0, ID: first, Bits: first.LeadingZeroBits()}, nil
	}

	m.l.Info("starting search",
		zap.Int("target_bits", target),
		zap.Int("workers", m.workers),
		zap.Int("candidate_size", tpl.Len()),
	)

	start := time.Now()
	state := &searchState{}
	monitorDone := make(chan struct{})
	if m.statusEvery > 0 {
		go m.monitor(monitorDone, start)
	}

	g, gctx := errgroup.WithContext(ctx)
	for w := 0; w < m.workers; w++ {
		offset := gitobj.Nonce(w)
		if w == 0 {
			// nonce 0 was consumed by the pre-flight; worker 0 picks up
			// its subsequence at the next element
			offset = gitobj.Nonce(m.workers)
		}
		g.Go(func() error {
			return m.runWorker(gctx, tpl, target, offset, gitobj.Nonce(m.workers), state)
		})
	}
	err := g.Wait()
	close(monitorDone)

	if atomic.LoadUint32(&state.found) == 1 {
		m.l.Info("search succeeded",
			zap.Uint64("nonce", uint64(state.res.Nonce)),
			zap.Stringer("id", state.res.ID),
			zap.Int("bits", state.res.Bits),
			zap.Duration("elapsed", time.Since(start)),
		)
		return state.res, nil
	}
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return Result{}, status.ErrCancelled.Wrap(err)
		}
		// internal failure inside a worker: abort the whole search
		return Result{}, err
	}
	return Result{}, status.ErrCancelled
}

// runWorker scans the striding subsequence offset, offset+stride, ...
// until it finds a match, another worker wins, or ctx is cancelled.
// Cancellation is observed every batchSize attempts, the found flag on
// every attempt.
func (m *Miner) runWorker(ctx context.Context, tpl *gitobj.Template, target int, offset, stride gitobj.Nonce, state *searchState) error {
	prefix, err := digest.Prepare(tpl.Prefix())
	if err != nil {
		return err
	}
	tail := tpl.Tail()

	inBatch := 0
	for n := offset; ; n += stride {
		if atomic.LoadUint32(&state.found) == 1 {
			atomic.AddUint64(&m.attempts, uint64(inBatch))
			return nil
		}
		if inBatch >= m.batchSize {
			atomic.AddUint64(&m.attempts, uint64(inBatch))
			inBatch = 0
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}
		}

		n.PutToken(tail[:gitobj.TokenLen])
		d, err := prefix.Sum(tail)
		if err != nil {
			return err
		}
		inBatch++

		if d.Matches(target) {
			atomic.AddUint64(&m.attempts, uint64(inBatch))
			if atomic.CompareAndSwapUint32(&state.found, 0, 1) {
				state.res = Result{Nonce: n, ID: d, Bits: d.LeadingZeroBits()}
				m.l.Debug("worker installed result",
					zap.Uint64("offset", uint64(offset)),
					zap.Uint64("nonce", uint64(n)),
				)
			}
			return nil
		}
	}
}

func (m *Miner) monitor(done <-chan struct{}, start time.Time) {
	tick := time.NewTicker(m.statusEvery)
	defer tick.Stop()
	for {
		select {
		case <-done:
			return
		case <-tick.C:
			attempts := m.Attempts()
			elapsed := time.Since(start).Seconds()
			m.l.Info("mining",
				zap.Uint64("attempts", attempts),
				zap.Float64("attempts_per_sec", float64(attempts)/elapsed),
			)
		}
	}
}

package miner

import (
	"context"
	"fmt"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/vanityforge/create2-miner/internal/logger"
	"github.com/vanityforge/create2-miner/internal/metrics"
	"github.com/vanityforge/create2-miner/pkg/difficulty"
	"github.com/vanityforge/create2-miner/pkg/types"
	"github.com/vanityforge/create2-miner/pkg/worker"
)

// DefaultBatchSize is the attempt budget a worker claims at a time. It bounds
// the interval between cancellation checks.
const DefaultBatchSize = 1000

// Options configures a Miner. The zero value picks sensible defaults.
type Options struct {
	Workers     int           // worker goroutines; defaults to runtime.NumCPU()
	BatchSize   int64         // attempts per budget slice; defaults to DefaultBatchSize
	LogInterval time.Duration // progress logging period; 0 disables
}

// Miner coordinates cancellable vanity-suffix salt searches. A Miner is
// stateless between calls and safe for concurrent use; each Mine invocation
// owns its attempt counters and workers.
type Miner struct {
	opts   Options
	logger *logger.Logger
}

// NewMiner creates a miner with the given options.
func NewMiner(opts Options, log *logger.Logger) *Miner {
	if opts.Workers <= 0 {
		opts.Workers = runtime.NumCPU()
	}
	if opts.BatchSize <= 0 {
		opts.BatchSize = DefaultBatchSize
	}
	if log == nil {
		log = logger.New()
	}
	return &Miner{opts: opts, logger: log}
}

// Mine searches for a salt whose CREATE2 address ends with the termination.
// The first match wins. Fails with SearchExhausted once AttemptCap attempts
// have run without a match, or Cancelled if ctx is done first. The cap is a
// hard ceiling: the workers share an atomic attempt budget, so the total
// never exceeds it and pure exhaustion performs exactly AttemptCap attempts.
func (m *Miner) Mine(ctx context.Context, spec types.SearchSpec) (*types.MiningResult, error) {
	termination := difficulty.Normalize(spec.Termination)
	if err := difficulty.Validate(termination); err != nil {
		return nil, err
	}
	if spec.AttemptCap < 1 {
		return nil, fmt.Errorf("%w: attempt cap must be at least 1, got %d",
			types.ErrInvalidInput, spec.AttemptCap)
	}

	metrics.SearchesStarted.Inc()
	metrics.ActiveSearches.Inc()
	defer metrics.ActiveSearches.Dec()

	start := time.Now()
	searchCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	var (
		remaining = spec.AttemptCap // shared attempt budget
		performed int64
		wg        sync.WaitGroup
	)
	matchCh := make(chan *types.MiningResult, 1)
	errCh := make(chan error, 1)

	m.logger.Debugf("search started: termination=%q cap=%d workers=%d",
		termination, spec.AttemptCap, m.opts.Workers)

	for i := 0; i < m.opts.Workers; i++ {
		w := worker.New(spec.Deployer, spec.InitCodeHash, termination)
		wg.Add(1)
		go func() {
			defer wg.Done()
			m.runWorker(searchCtx, cancel, w, &remaining, &performed, matchCh, errCh)
		}()
	}

	if m.opts.LogInterval > 0 {
		ticker := time.NewTicker(m.opts.LogInterval)
		progressDone := make(chan struct{})
		go m.logProgress(ticker, progressDone, start, &performed)
		defer func() {
			ticker.Stop()
			close(progressDone)
		}()
	}

	wg.Wait()

	duration := time.Since(start)
	attempts := atomic.LoadInt64(&performed)
	metrics.AttemptsTotal.Add(float64(attempts))
	metrics.SearchDuration.Observe(duration.Seconds())

	select {
	case result := <-matchCh:
		result.Duration = duration
		metrics.SearchesSucceeded.Inc()
		m.logger.Debugf("search succeeded: address=%s attempts=%d duration=%v",
			result.Address, result.Attempts, duration)
		return result, nil
	default:
	}
	if ctx.Err() != nil {
		metrics.SearchesCancelled.Inc()
		return nil, &types.CancelledError{Attempts: attempts}
	}
	select {
	case err := <-errCh:
		return nil, err
	default:
	}
	metrics.SearchesExhausted.Inc()
	return nil, &types.ExhaustedError{Attempts: attempts}
}

// runWorker claims budget slices and executes them until the budget runs out,
// a match is found, or the search context is cancelled.
func (m *Miner) runWorker(ctx context.Context, cancel context.CancelFunc, w *worker.Worker,
	remaining, performed *int64, matchCh chan<- *types.MiningResult, errCh chan<- error) {
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		batch := claim(remaining, m.opts.BatchSize)
		if batch == 0 {
			return
		}

		for i := int64(0); i < batch; i++ {
			match, err := w.Attempt()
			attempts := atomic.AddInt64(performed, 1)
			if err != nil {
				select {
				case errCh <- fmt.Errorf("random source failed: %w", err):
				default:
				}
				cancel()
				return
			}
			if match != nil {
				select {
				case matchCh <- &types.MiningResult{
					Salt:     match.Salt,
					Address:  match.Address,
					Attempts: attempts,
				}:
					cancel()
				default:
					// another worker already won
				}
				return
			}
		}
	}
}

// claim carves up to max attempts out of the shared budget. Returns 0 once
// the budget is spent.
func claim(remaining *int64, max int64) int64 {
	for {
		n := atomic.LoadInt64(remaining)
		if n <= 0 {
			return 0
		}
		take := max
		if n < take {
			take = n
		}
		if atomic.CompareAndSwapInt64(remaining, n, n-take) {
			return take
		}
	}
}

// logProgress logs attempt throughput at regular intervals while a search runs
func (m *Miner) logProgress(ticker *time.Ticker, done chan struct{}, start time.Time, performed *int64) {
	for {
		select {
		case <-ticker.C:
			attempts := atomic.LoadInt64(performed)
			elapsed := time.Since(start)
			rate := 0.0
			if elapsed.Seconds() > 0 {
				rate = float64(attempts) / elapsed.Seconds()
			}
			m.logger.Printf("Progress: %d attempts, %.2f hashes/sec", attempts, rate)
		case <-done:
			return
		}
	}
}

// Package cpu runs vanity address searches on goroutines.
package cpu

import (
	"bufio"
	"context"
	"crypto/rand"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"go.uber.org/atomic"

	"github.com/Amr-9/pumpvanity/pkg/generator"
)

// randBufferSize is the per-worker read-ahead over crypto/rand; one
// syscall feeds 128 Ed25519 seeds.
const randBufferSize = 4096

// Search outcomes reported to a Recorder.
const (
	OutcomeFound     = "found"
	OutcomeCancelled = "cancelled"
	OutcomeFailed    = "failed"
)

// Recorder receives search lifecycle events.
type Recorder interface {
	SearchStarted(network generator.Network, workers int)
	SearchFinished(network generator.Network, outcome string, workers int, attempts uint64, elapsed time.Duration)
}

type nopRecorder struct{}

func (nopRecorder) SearchStarted(generator.Network, int) {}

func (nopRecorder) SearchFinished(generator.Network, string, int, uint64, time.Duration) {}

// CPUGenerator fans a search out over a fixed number of goroutines.
// It holds no per-search state and may run several searches at once.
type CPUGenerator struct {
	log      zerolog.Logger
	recorder Recorder
	newRand  func(worker int) io.Reader
}

// Option configures a CPUGenerator.
type Option func(*CPUGenerator)

// WithLogger sets the logger used for search lifecycle events.
func WithLogger(log zerolog.Logger) Option {
	return func(g *CPUGenerator) {
		g.log = log
	}
}

// WithRecorder sets the metrics recorder.
func WithRecorder(r Recorder) Option {
	return func(g *CPUGenerator) {
		if r != nil {
			g.recorder = r
		}
	}
}

// WithRandSource overrides how each worker's private entropy stream is built.
func WithRandSource(fn func(worker int) io.Reader) Option {
	return func(g *CPUGenerator) {
		if fn != nil {
			g.newRand = fn
		}
	}
}

// NewCPUGenerator creates a new CPU-based generator.
func NewCPUGenerator(opts ...Option) *CPUGenerator {
	g := &CPUGenerator{
		log:      zerolog.Nop(),
		recorder: nopRecorder{},
		newRand: func(int) io.Reader {
			return bufio.NewReaderSize(rand.Reader, randBufferSize)
		},
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Search runs a search to completion. It blocks until a worker finds a match
// or ctx is done; in the latter case the error wraps generator.ErrCancelled.
func (g *CPUGenerator) Search(ctx context.Context, scheme generator.Scheme, spec generator.MatchSpec, workers int) (*generator.SearchResult, error) {
	s, err := g.Start(ctx, scheme, spec, workers)
	if err != nil {
		return nil, err
	}
	return s.Wait()
}

// Start validates the request and launches workers goroutines. It returns
// immediately; use the returned Search to watch progress and collect the result.
// Cancelling ctx stops the search.
func (g *CPUGenerator) Start(ctx context.Context, scheme generator.Scheme, spec generator.MatchSpec, workers int) (*Search, error) {
	if workers < 1 {
		return nil, fmt.Errorf("%w: got %d", generator.ErrNoWorkers, workers)
	}
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	if v, ok := scheme.(generator.PatternValidator); ok {
		if err := v.ValidatePattern(spec); err != nil {
			return nil, err
		}
	}

	s := g.newSearch(scheme, spec, workers)
	s.launch(ctx)
	return s, nil
}

func (g *CPUGenerator) newSearch(scheme generator.Scheme, spec generator.MatchSpec, workers int) *Search {
	id := uuid.NewString()
	s := &Search{
		ID:       id,
		network:  scheme.Network(),
		spec:     spec,
		counters: make([]counter, workers),
		found:    make([]*generator.Candidate, workers),
		workers:  make([]*worker, workers),
		done:     make(chan struct{}),
		recorder: g.recorder,
		log: g.log.With().
			Str("search_id", id).
			Str("network", scheme.Network().String()).
			Logger(),
	}
	for i := range s.workers {
		s.workers[i] = &worker{
			scheme:   scheme,
			spec:     spec,
			signal:   &s.signal,
			rand:     g.newRand(i),
			attempts: &s.counters[i],
			failures: &s.failures,
		}
	}
	return s
}

// Search is one running search. All workers share its Signal; no worker
// outlives it, since Wait only returns after every worker has stopped.
type Search struct {
	ID string

	network  generator.Network
	spec     generator.MatchSpec
	signal   Signal
	workers  []*worker
	counters []counter
	failures atomic.Uint64
	found    []*generator.Candidate // slot i is written only by worker i

	start   time.Time
	elapsed atomic.Duration
	done    chan struct{}
	result  *generator.SearchResult
	err     error

	log      zerolog.Logger
	recorder Recorder
}

func (s *Search) launch(ctx context.Context) {
	s.log.Info().
		Str("pattern", s.spec.String()).
		Int("workers", len(s.workers)).
		Msg("search started")
	s.recorder.SearchStarted(s.network, len(s.workers))

	s.start = time.Now()

	var wg sync.WaitGroup
	wg.Add(len(s.workers))
	for i, w := range s.workers {
		go func(i int, w *worker) {
			defer wg.Done()
			s.found[i] = w.run()
		}(i, w)
	}

	go func() {
		select {
		case <-ctx.Done():
			s.signal.Cancel()
		case <-s.done:
		}
	}()

	go func() {
		wg.Wait()
		s.finish(ctx)
	}()
}

// finish runs once every worker has returned.
func (s *Search) finish(ctx context.Context) {
	elapsed := time.Since(s.start)
	s.elapsed.Store(elapsed)
	attempts := s.attempts()

	var winner *generator.Candidate
	for _, c := range s.found {
		if c != nil {
			winner = c
			break
		}
	}

	genErr := s.generationErr()
	outcome := OutcomeFound
	switch {
	case winner != nil:
		s.result = &generator.SearchResult{
			Network:  s.network,
			Keypair:  winner.Keypair,
			Address:  winner.Address,
			Elapsed:  elapsed,
			Attempts: attempts,
		}
		s.log.Info().
			Str("address", winner.Address).
			Uint64("attempts", attempts).
			Dur("elapsed", elapsed).
			Msg("search found match")
	case genErr != nil:
		outcome = OutcomeFailed
		s.err = fmt.Errorf("%w: %w", generator.ErrKeyGeneration, genErr)
		s.log.Error().
			Err(genErr).
			Uint64("attempts", attempts).
			Uint64("failures", s.failures.Load()).
			Msg("search aborted, key source keeps failing")
	default:
		outcome = OutcomeCancelled
		s.err = generator.ErrCancelled
		if err := ctx.Err(); err != nil {
			s.err = fmt.Errorf("%w: %w", generator.ErrCancelled, err)
		}
		s.log.Info().
			Uint64("attempts", attempts).
			Dur("elapsed", elapsed).
			Msg("search cancelled")
	}
	if n := s.failures.Load(); n > 0 {
		s.log.Warn().Uint64("failures", n).Msg("key generation failures during search")
	}

	s.recorder.SearchFinished(s.network, outcome, len(s.workers), attempts, elapsed)
	close(s.done)
}

// generationErr returns the error of the first worker that gave up, if any.
func (s *Search) generationErr() error {
	for _, w := range s.workers {
		if w.err != nil {
			return w.err
		}
	}
	return nil
}

func (s *Search) attempts() uint64 {
	var total uint64
	for i := range s.counters {
		total += s.counters[i].Load()
	}
	return total
}

// Cancel stops the search. Workers finish their current iteration and exit.
func (s *Search) Cancel() {
	s.signal.Cancel()
}

// Network returns the key system being searched.
func (s *Search) Network() generator.Network {
	return s.network
}

// Done is closed once every worker has stopped and the result is final.
func (s *Search) Done() <-chan struct{} {
	return s.done
}

// Wait blocks until every worker has stopped and returns the winning result.
func (s *Search) Wait() (*generator.SearchResult, error) {
	<-s.done
	return s.result, s.err
}

// Elapsed returns the time since start, frozen once the search is done.
func (s *Search) Elapsed() time.Duration {
	select {
	case <-s.done:
		return s.elapsed.Load()
	default:
		return time.Since(s.start)
	}
}

// Stats returns the current performance statistics.
// This method is safe to call concurrently from any goroutine.
func (s *Search) Stats() generator.Stats {
	attempts := s.attempts()
	elapsed := s.Elapsed().Seconds()

	var hashRate float64
	if elapsed > 0 {
		hashRate = float64(attempts) / elapsed
	}

	return generator.Stats{
		Attempts:    attempts,
		HashRate:    hashRate,
		ElapsedSecs: elapsed,
	}
}

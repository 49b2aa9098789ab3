package cpu

import (
	"context"
	"errors"
	"io"
	"math"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/atomic"

	"github.com/Amr-9/pumpvanity/pkg/generator"
	"github.com/Amr-9/pumpvanity/pkg/generator/solana"
	"github.com/Amr-9/pumpvanity/pkg/generator/tron"
)

var errFakeEntropy = errors.New("fake entropy failure")

// fakeScheme hands out the address "Dev" on every matchEvery-th call and
// "miss" otherwise. With matchEvery == 0 nothing ever matches.
type fakeScheme struct {
	matchEvery uint64
	failFirst  uint64

	calls     atomic.Uint64
	lateCalls atomic.Uint64
	signal    *Signal
}

func (f *fakeScheme) Network() generator.Network { return generator.Solana }

func (f *fakeScheme) GenerateKey(io.Reader) (generator.Keypair, error) {
	if f.signal != nil && f.signal.Cancelled() {
		f.lateCalls.Inc()
	}
	n := f.calls.Inc()
	if n <= f.failFirst {
		return generator.Keypair{}, errFakeEntropy
	}
	pub := []byte("miss")
	if f.matchEvery > 0 && n%f.matchEvery == 0 {
		pub = []byte("Dev")
	}
	return generator.Keypair{PublicKey: pub, SecretKey: []byte{byte(n)}}, nil
}

func (f *fakeScheme) Address(pub []byte) string { return string(pub) }

func (f *fakeScheme) EncodeSecret(kp generator.Keypair) string { return string(kp.SecretKey) }

type recordedFinish struct {
	outcome  string
	workers  int
	attempts uint64
}

type fakeRecorder struct {
	mu       sync.Mutex
	started  []int
	finished []recordedFinish
}

func (r *fakeRecorder) SearchStarted(_ generator.Network, workers int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.started = append(r.started, workers)
}

func (r *fakeRecorder) SearchFinished(_ generator.Network, outcome string, workers int, attempts uint64, _ time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.finished = append(r.finished, recordedFinish{outcome, workers, attempts})
}

func TestSearchRejectsNoWorkers(t *testing.T) {
	g := NewCPUGenerator()
	for _, n := range []int{0, -1} {
		_, err := g.Search(context.Background(), &fakeScheme{matchEvery: 1}, generator.Prefix("Dev"), n)
		require.ErrorIs(t, err, generator.ErrNoWorkers)
	}
}

func TestSearchRejectsInvalidPattern(t *testing.T) {
	g := NewCPUGenerator()

	_, err := g.Search(context.Background(), &fakeScheme{matchEvery: 1}, generator.Prefix("0x"), 2)
	var invalid *generator.InvalidBase58Error
	require.ErrorAs(t, err, &invalid)

	_, err = g.Search(context.Background(), tron.New(), generator.Prefix("Abc"), 2)
	require.Error(t, err)
}

func TestSearchFindsMatch(t *testing.T) {
	tests := []struct {
		name    string
		workers int
	}{
		{"single worker", 1},
		{"two workers", 2},
		{"eight workers", 8},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			scheme := &fakeScheme{matchEvery: 1000}
			before := time.Now()
			res, err := NewCPUGenerator().Search(context.Background(), scheme, generator.Prefix("Dev"), tc.workers)
			wall := time.Since(before)
			require.NoError(t, err)

			assert.Equal(t, "Dev", res.Address)
			assert.Equal(t, generator.Solana, res.Network)
			assert.GreaterOrEqual(t, res.Attempts, uint64(1000))
			// every generation finished before the result was built
			assert.Equal(t, scheme.calls.Load(), res.Attempts)
			assert.Positive(t, res.Elapsed)
			assert.LessOrEqual(t, res.Elapsed, wall)
		})
	}
}

func TestAttemptsAtLeastWorkers(t *testing.T) {
	const workers = 8
	g := NewCPUGenerator()

	for round := 0; round < 50; round++ {
		res, err := g.Search(context.Background(), &fakeScheme{matchEvery: 1}, generator.Prefix("Dev"), workers)
		require.NoError(t, err)
		require.GreaterOrEqual(t, res.Attempts, uint64(workers), "round %d", round)
	}

	// an empty pattern lets the very first key win
	for round := 0; round < 50; round++ {
		res, err := g.Search(context.Background(), solana.New(), generator.Prefix(""), workers)
		require.NoError(t, err)
		require.GreaterOrEqual(t, res.Attempts, uint64(workers), "round %d", round)
	}
}

func TestFailingKeySourceEndsSearch(t *testing.T) {
	rec := &fakeRecorder{}
	scheme := &fakeScheme{matchEvery: 1, failFirst: math.MaxUint64}
	s, err := NewCPUGenerator(WithRecorder(rec)).Start(context.Background(), scheme, generator.Prefix("Dev"), 4)
	require.NoError(t, err)

	select {
	case <-s.Done():
	case <-time.After(5 * time.Second):
		t.Fatal("search kept spinning on a failing key source")
	}

	res, err := s.Wait()
	require.Nil(t, res)
	require.ErrorIs(t, err, generator.ErrKeyGeneration)
	require.ErrorIs(t, err, errFakeEntropy)
	require.NotErrorIs(t, err, generator.ErrCancelled)

	assert.Zero(t, s.Stats().Attempts)
	assert.LessOrEqual(t, s.failures.Load(), uint64(4*maxConsecutiveFailures))

	require.Len(t, rec.finished, 1)
	assert.Equal(t, OutcomeFailed, rec.finished[0].outcome)
}

func TestSingleWorkerIsExact(t *testing.T) {
	res, err := NewCPUGenerator().Search(context.Background(), &fakeScheme{matchEvery: 10}, generator.Suffix("Dev"), 1)
	require.NoError(t, err)
	assert.Equal(t, uint64(10), res.Attempts)
}

func TestWorkersStopWithinOneIteration(t *testing.T) {
	const workers = 8
	g := NewCPUGenerator()

	for round := 0; round < 20; round++ {
		scheme := &fakeScheme{matchEvery: 500}
		s := g.newSearch(scheme, generator.Prefix("Dev"), workers)
		scheme.signal = &s.signal
		s.launch(context.Background())

		_, err := s.Wait()
		require.NoError(t, err)
		require.LessOrEqual(t, scheme.lateCalls.Load(), uint64(workers))
	}
}

func TestGenerationFailuresAreSkipped(t *testing.T) {
	scheme := &fakeScheme{matchEvery: 50, failFirst: 20}
	g := NewCPUGenerator()
	s := g.newSearch(scheme, generator.Prefix("Dev"), 1)
	s.launch(context.Background())

	res, err := s.Wait()
	require.NoError(t, err)
	assert.Equal(t, uint64(20), s.failures.Load())
	assert.Equal(t, uint64(30), res.Attempts)
}

func TestSearchContextTimeout(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	rec := &fakeRecorder{}
	g := NewCPUGenerator(WithRecorder(rec))
	s, err := g.Start(ctx, &fakeScheme{}, generator.Prefix("Dev"), 4)
	require.NoError(t, err)

	res, err := s.Wait()
	require.Nil(t, res)
	require.ErrorIs(t, err, generator.ErrCancelled)
	require.ErrorIs(t, err, context.DeadlineExceeded)

	stats := s.Stats()
	assert.Positive(t, stats.Attempts)
	assert.GreaterOrEqual(t, stats.ElapsedSecs, 0.05)

	require.Len(t, rec.finished, 1)
	assert.Equal(t, OutcomeCancelled, rec.finished[0].outcome)
	assert.Equal(t, stats.Attempts, rec.finished[0].attempts)
}

func TestSearchCancel(t *testing.T) {
	s, err := NewCPUGenerator().Start(context.Background(), &fakeScheme{}, generator.Prefix("Dev"), 3)
	require.NoError(t, err)

	time.Sleep(10 * time.Millisecond)
	s.Cancel()

	_, err = s.Wait()
	require.ErrorIs(t, err, generator.ErrCancelled)
	require.NotErrorIs(t, err, context.Canceled)

	frozen := s.Elapsed()
	time.Sleep(5 * time.Millisecond)
	assert.Equal(t, frozen, s.Elapsed())
}

func TestRecorderSeesLifecycle(t *testing.T) {
	rec := &fakeRecorder{}
	res, err := NewCPUGenerator(WithRecorder(rec)).
		Search(context.Background(), &fakeScheme{matchEvery: 100}, generator.Prefix("Dev"), 4)
	require.NoError(t, err)

	rec.mu.Lock()
	defer rec.mu.Unlock()
	assert.Equal(t, []int{4}, rec.started)
	require.Len(t, rec.finished, 1)
	assert.Equal(t, recordedFinish{OutcomeFound, 4, res.Attempts}, rec.finished[0])
}

func TestEachWorkerGetsItsOwnRand(t *testing.T) {
	var (
		mu   sync.Mutex
		seen = map[int]bool{}
	)
	g := NewCPUGenerator(WithRandSource(func(i int) io.Reader {
		mu.Lock()
		defer mu.Unlock()
		seen[i] = true
		return nil
	}))

	_, err := g.Search(context.Background(), &fakeScheme{matchEvery: 10}, generator.Prefix("Dev"), 6)
	require.NoError(t, err)
	assert.Equal(t, map[int]bool{0: true, 1: true, 2: true, 3: true, 4: true, 5: true}, seen)
}

func TestConcurrentSearchesAreIndependent(t *testing.T) {
	g := NewCPUGenerator()

	ctx, cancel := context.WithCancel(context.Background())
	stuck, err := g.Start(ctx, &fakeScheme{}, generator.Prefix("Dev"), 2)
	require.NoError(t, err)

	res, err := g.Search(context.Background(), &fakeScheme{matchEvery: 20}, generator.Prefix("Dev"), 2)
	require.NoError(t, err)
	assert.Equal(t, "Dev", res.Address)

	select {
	case <-stuck.Done():
		t.Fatal("unrelated search stopped")
	default:
	}
	cancel()
	_, err = stuck.Wait()
	require.ErrorIs(t, err, context.Canceled)
	assert.NotEqual(t, stuck.ID, "")
}

func TestStepHonorsSignal(t *testing.T) {
	scheme := &fakeScheme{matchEvery: 1}
	w := &worker{
		scheme:   scheme,
		spec:     generator.Prefix("Dev"),
		signal:   &Signal{},
		attempts: &counter{},
		failures: atomic.NewUint64(0),
	}
	w.attempts.Store(1)
	w.signal.Cancel()

	state, found := w.step()
	assert.Equal(t, stopped, state)
	assert.Nil(t, found)
	assert.Zero(t, scheme.calls.Load())
}

func TestFirstStepIgnoresSignal(t *testing.T) {
	scheme := &fakeScheme{}
	w := &worker{
		scheme:   scheme,
		spec:     generator.Prefix("Dev"),
		signal:   &Signal{},
		attempts: &counter{},
		failures: atomic.NewUint64(0),
	}
	w.signal.Cancel()

	assert.Nil(t, w.run())
	assert.Equal(t, uint64(1), scheme.calls.Load())
	assert.Equal(t, uint64(1), w.attempts.Load())
}

func TestWorkerGivesUpAfterConsecutiveFailures(t *testing.T) {
	w := &worker{
		scheme:   &fakeScheme{failFirst: maxConsecutiveFailures - 1, matchEvery: 1},
		spec:     generator.Prefix("Dev"),
		signal:   &Signal{},
		attempts: &counter{},
		failures: atomic.NewUint64(0),
	}

	// one short of the limit, then a success resets the streak
	found := w.run()
	require.NotNil(t, found)
	assert.NoError(t, w.err)
	assert.Equal(t, uint64(maxConsecutiveFailures-1), w.failures.Load())

	w = &worker{
		scheme:   &fakeScheme{failFirst: maxConsecutiveFailures},
		spec:     generator.Prefix("Dev"),
		signal:   &Signal{},
		attempts: &counter{},
		failures: atomic.NewUint64(0),
	}
	assert.Nil(t, w.run())
	assert.ErrorIs(t, w.err, errFakeEntropy)
	assert.True(t, w.signal.Cancelled())
}

// racingScheme sets the signal during generation, as if another worker
// matched between this worker's check and its own match.
type racingScheme struct {
	fakeScheme
}

func (r *racingScheme) GenerateKey(rand io.Reader) (generator.Keypair, error) {
	r.signal.Cancel()
	return r.fakeScheme.GenerateKey(rand)
}

func TestStepLoserDropsMatch(t *testing.T) {
	signal := &Signal{}
	w := &worker{
		scheme:   &racingScheme{fakeScheme{matchEvery: 1, signal: signal}},
		spec:     generator.Prefix("Dev"),
		signal:   signal,
		attempts: &counter{},
		failures: atomic.NewUint64(0),
	}

	state, found := w.step()
	assert.Equal(t, stopped, state)
	assert.Nil(t, found)
	assert.Equal(t, uint64(1), w.attempts.Load())
}

package cpu

import (
	"io"

	"go.uber.org/atomic"

	"github.com/Amr-9/pumpvanity/pkg/generator"
)

type workerState int

const (
	searching workerState = iota
	stopped
)

// counter is a per-worker attempt count padded to its own cache line so that
// workers incrementing side by side do not contend.
type counter struct {
	atomic.Uint64
	_ [56]byte
}

// maxConsecutiveFailures is how many key generations in a row may fail before
// a worker gives up on its entropy source.
const maxConsecutiveFailures = 64

// worker runs the generate-and-test loop on one goroutine.
// rand is owned by this worker alone.
type worker struct {
	scheme   generator.Scheme
	spec     generator.MatchSpec
	signal   *Signal
	rand     io.Reader
	attempts *counter
	failures *atomic.Uint64

	consecutive int
	err         error // last generation error once the worker gave up
}

// run loops until the worker finds a match or observes the signal.
// It returns the candidate only if this worker won the signal.
func (w *worker) run() *generator.Candidate {
	var found *generator.Candidate
	for state := searching; state == searching; {
		state, found = w.step()
	}
	return found
}

// step performs one iteration. The signal is checked before generating, so a
// worker does at most one more generation after another worker wins. Until
// the worker has one counted attempt the check is skipped.
func (w *worker) step() (workerState, *generator.Candidate) {
	if w.attempts.Load() > 0 && w.signal.Cancelled() {
		return stopped, nil
	}

	candidate, err := generator.Generate(w.scheme, w.rand)
	if err != nil {
		w.failures.Inc()
		w.consecutive++
		if w.consecutive >= maxConsecutiveFailures {
			w.err = err
			w.signal.Cancel()
			return stopped, nil
		}
		return searching, nil
	}
	w.consecutive = 0
	w.attempts.Inc()

	if !w.spec.Matches(candidate.Address) {
		return searching, nil
	}
	if !w.signal.Cancel() {
		// another worker matched first
		return stopped, nil
	}
	return stopped, &candidate
}

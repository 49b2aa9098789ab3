package cpu

import "go.uber.org/atomic"

// Signal is the stop flag shared by the workers of one search.
// It starts unset and, once set, stays set.
type Signal struct {
	stopped atomic.Bool
}

// Cancel sets the signal. It reports true only for the call that moved it from
// unset to set, which is how the winning worker is chosen.
func (s *Signal) Cancel() bool {
	return s.stopped.CompareAndSwap(false, true)
}

// Cancelled reports whether the signal has been set.
func (s *Signal) Cancelled() bool {
	return s.stopped.Load()
}

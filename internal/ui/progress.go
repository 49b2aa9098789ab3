package ui

import (
	"fmt"
	"io"
	"time"

	"github.com/schollz/progressbar/v3"

	"github.com/Amr-9/pumpvanity/pkg/generator"
)

// Progress is a live spinner showing attempts, rate and the odds of having
// found a match by now.
type Progress struct {
	bar        *progressbar.ProgressBar
	difficulty uint64
}

// NewProgress creates a spinner writing to w.
func NewProgress(w io.Writer, difficulty uint64) *Progress {
	bar := progressbar.NewOptions64(-1,
		progressbar.OptionSetWriter(w),
		progressbar.OptionSetDescription("searching"),
		progressbar.OptionShowCount(),
		progressbar.OptionShowIts(),
		progressbar.OptionSetItsString("keys"),
		progressbar.OptionSpinnerType(14),
		progressbar.OptionThrottle(65*time.Millisecond),
		progressbar.OptionFullWidth(),
	)
	return &Progress{bar: bar, difficulty: difficulty}
}

// Update redraws the spinner from the latest stats.
func (p *Progress) Update(stats generator.Stats) {
	p.bar.Describe(fmt.Sprintf("searching %5.1f%%", 100*FoundProbability(stats.Attempts, p.difficulty)))
	_ = p.bar.Set64(int64(stats.Attempts))
}

// Clear removes the spinner line so results print cleanly.
func (p *Progress) Clear() {
	_ = p.bar.Clear()
}

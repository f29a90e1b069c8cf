package output

import (
	"os"

	"github.com/cheggaaa/pb/v3"
	"golang.org/x/term"
)

// Progress tracks diff rendering over the differing pairs. It stays
// silent when disabled or when stderr is not a terminal, so piped and
// scripted runs never see control sequences.
type Progress struct {
	bar *pb.ProgressBar
}

// NewProgress starts a progress bar over total pairs
func NewProgress(total int, enabled bool) *Progress {
	if !enabled || total == 0 || !term.IsTerminal(int(os.Stderr.Fd())) {
		return &Progress{}
	}
	bar := pb.New(total)
	bar.SetWriter(os.Stderr)
	bar.Start()
	return &Progress{bar: bar}
}

// Increment records one rendered pair
func (p *Progress) Increment() {
	if p.bar != nil {
		p.bar.Increment()
	}
}

// Finish stops the bar and clears it from the terminal
func (p *Progress) Finish() {
	if p.bar != nil {
		p.bar.Finish()
	}
}

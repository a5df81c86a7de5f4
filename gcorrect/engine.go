package gcorrect

import (
	"fmt"
	"math"

	"github.com/vertgenlab/gonomics/dna"
)

// Engine is the single-pass correction scan for one strand. It carries only
// the previous record's context, so a full chromosome streams through in
// O(1) memory. Records must arrive in 5' to 3' reading order: ascending
// coordinates on the plus strand (dir +1), descending on the normalized
// minus strand (dir -1).
type Engine struct {
	p   float64
	dir int

	hasPrev   bool
	prevChrom string
	prevStart int
	prevNuc   dna.Base
	prevF     float64 // truncated before storage
}

// NewEngine validates p and returns a fresh engine. p outside (0,1] is a
// configuration error and is rejected before any record is scanned.
func NewEngine(p float64, dir int) (*Engine, error) {
	if p <= 0 || p > 1 {
		return nil, fmt.Errorf("g correction probability must be in (0,1], got %v", p)
	}
	if dir != 1 && dir != -1 {
		return nil, fmt.Errorf("scan direction must be +1 or -1, got %d", dir)
	}
	return &Engine{p: p, dir: dir}, nil
}

// Reset drops the carried context, as at the start of a strand's scan.
func (e *Engine) Reset() {
	e.hasPrev = false
	e.prevChrom = ""
	e.prevStart = 0
	e.prevNuc = 0
	e.prevF = 0
}

// adjacent reports whether r directly follows the carried record in
// reading order. For dir +1 this is prev.End == r.Start.
func (e *Engine) adjacent(r Record) bool {
	return e.hasPrev && r.Chrom == e.prevChrom && r.Start == e.prevStart+e.dir
}

func (e *Engine) classify(r Record) State {
	if !e.adjacent(r) {
		return StateOther
	}
	switch {
	case e.prevNuc != dna.G && r.Nuc != dna.G:
		return StateOther
	case e.prevNuc != dna.G && r.Nuc == dna.G:
		return StateStart
	case e.prevNuc == dna.G && r.Nuc == dna.G:
		return StateRun
	default:
		return StateEnd
	}
}

// Next consumes one record and emits its corrected counterpart, updating
// the carried context unconditionally so a following adjacent record can
// classify against it even after a state O.
func (e *Engine) Next(r Record) Corrected {
	c := Corrected{
		Chrom: r.Chrom,
		Start: r.Start,
		End:   r.End,
		X:     r.X,
		A0:    r.A0,
		Nuc:   r.Nuc,
		State: e.classify(r),
	}

	switch c.State {
	case StateOther:
		c.A = r.A0
		c.N = r.X
		c.U = c.N - c.A
		c.F = 0
	case StateStart:
		c.A = r.A0
		c.N = math.Min(r.X, c.A/e.p)
		c.U = (c.A / e.p) * (1 - e.p)
		c.F = clamp(r.X-c.A-c.U, 0, r.X)
	case StateRun:
		c.A = e.prevF
		c.N = math.Min(c.A+r.X, c.A/e.p)
		c.U = (c.A / e.p) * (1 - e.p)
		c.F = clamp(r.X-c.U, 0, r.X)
	case StateEnd:
		c.A = e.prevF
		c.N = c.A + r.X
		c.U = r.X
		c.F = 0
	}
	// The carry is integral: truncate before storing, so the next record's
	// A consumes the truncated value, not the fractional one.
	c.F = math.Trunc(c.F)

	e.hasPrev = true
	e.prevChrom = r.Chrom
	e.prevStart = r.Start
	e.prevNuc = r.Nuc
	e.prevF = c.F
	return c
}

// Correct runs a fresh engine over one strand's ordered records.
func Correct(p float64, dir int, recs []Record) ([]Corrected, error) {
	e, err := NewEngine(p, dir)
	if err != nil {
		return nil, err
	}
	ans := make([]Corrected, len(recs))
	for i := range recs {
		ans[i] = e.Next(recs[i])
	}
	return ans, nil
}

// GoCorrect streams records through a fresh engine. The output channel is
// closed once the input channel is drained.
func GoCorrect(recs <-chan Record, p float64, dir int) (<-chan Corrected, error) {
	e, err := NewEngine(p, dir)
	if err != nil {
		return nil, err
	}
	out := make(chan Corrected, 1000)
	go func() {
		for r := range recs {
			out <- e.Next(r)
		}
		close(out)
	}()
	return out, nil
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(v, hi))
}

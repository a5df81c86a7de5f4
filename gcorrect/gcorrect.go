// Package gcorrect reassigns CAGE 5' read-start counts that carry a
// non-templated extra guanine back to their true upstream start site.
package gcorrect

import (
	"fmt"

	"github.com/vertgenlab/gonomics/bed"
	"github.com/vertgenlab/gonomics/dna"
)

// DefaultP is the empirical probability that a read starting at a true
// start site acquires an extra mismatching G during reverse transcription.
const DefaultP float64 = 0.8935878

// Record is one base of one strand: the total count of reads whose 5' end
// maps here (X), the subset carrying the extra mismatching G (A0), and the
// reference base. Start/End are 0-based half-open with End == Start+1.
// For the minus strand Nuc is the complemented (read-orientation) base and
// records iterate in descending coordinate order after NormalizeMinus.
type Record struct {
	Chrom string
	Start int
	End   int
	X     float64
	A0    float64
	Nuc   dna.Base
}

// State classifies a record by its position relative to a run of reference Gs.
type State byte

const (
	StateOther State = 'O' // no G-run context, or no adjacent predecessor
	StateStart State = 'S' // first G of a run
	StateRun   State = 'G' // interior G of a run
	StateEnd   State = 'E' // first non-G after a run
)

// Corrected is the per-base output of the engine. N is the corrected count
// at this CTSS, U the count without the extra base, F the count expected to
// belong to the next position in reading order. F is truncated toward zero
// before it is carried; N keeps full precision here and is truncated only
// when emitted as the BED score.
type Corrected struct {
	Chrom  string
	Start  int
	End    int
	Strand bed.Strand
	State  State
	X      float64
	A0     float64
	Nuc    dna.Base
	A      float64
	N      float64
	U      float64
	F      float64
}

// Annotation renders the raw inputs, the classified state, and the derived
// quantities at 2-decimal precision.
func (c Corrected) Annotation() string {
	return fmt.Sprintf("X:%.2f,A0:%.2f,Nuc:%s,State:%c,A:%.2f,N:%.2f,U:%.2f,F:%.2f",
		c.X, c.A0, dna.BaseToString(c.Nuc), c.State, c.A, c.N, c.U, c.F)
}

// Bed converts to a six-field bed record with the annotation as name and
// the truncated corrected count as score.
func (c Corrected) Bed() bed.Bed {
	return bed.Bed{
		Chrom:             c.Chrom,
		ChromStart:        c.Start,
		ChromEnd:          c.End,
		Name:              c.Annotation(),
		Score:             int(c.N),
		Strand:            c.Strand,
		FieldsInitialized: 6,
	}
}

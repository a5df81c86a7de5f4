package gcorrect

import (
	"math"

	"github.com/vertgenlab/gonomics/dna"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// PEstimate accumulates evidence for the extra-G probability from bases
// where a G run begins: at such sites every artifact-bearing read is still
// attributed to its true start, so A0/X observes P directly.
type PEstimate struct {
	K      float64   // artifact-bearing starts over qualifying sites
	N      float64   // total starts over qualifying sites
	Ratios []float64 // per-site A0/X, for diagnostics
}

// EstimateP pools qualifying sites from both strands. Inputs are ascending
// per-strand records as consumed by CorrectBoth.
func EstimateP(plus, minus []Record) PEstimate {
	var e PEstimate
	e.add(plus, 1)
	e.add(NormalizeMinus(minus), -1)
	return e
}

// add walks one strand in reading order and accumulates sites that would
// classify as the start of a G run, or as an isolated G with no adjacent
// predecessor. Interior run bases are excluded: their A0 mixes spillover
// from upstream with locally acquired Gs.
func (e *PEstimate) add(recs []Record, dir int) {
	var prev Record
	var hasPrev bool
	for _, r := range recs {
		adjacent := hasPrev && r.Chrom == prev.Chrom && r.Start == prev.Start+dir
		if r.Nuc == dna.G && r.X > 0 && (!adjacent || prev.Nuc != dna.G) {
			e.K += r.A0
			e.N += r.X
			e.Ratios = append(e.Ratios, r.A0/r.X)
		}
		prev = r
		hasPrev = true
	}
}

// P is the pooled estimate, total A0 over total X. NaN when no site qualified.
func (e PEstimate) P() float64 {
	if e.N == 0 {
		return math.NaN()
	}
	return e.K / e.N
}

// MeanRatio is the unweighted mean of the per-site ratios.
func (e PEstimate) MeanRatio() float64 {
	if len(e.Ratios) == 0 {
		return math.NaN()
	}
	return stat.Mean(e.Ratios, nil)
}

// JeffreysInterval returns the 95% Jeffreys interval for the pooled
// estimate, the 0.025 and 0.975 quantiles of Beta(K+1/2, N-K+1/2).
func (e PEstimate) JeffreysInterval() (lo, hi float64) {
	if e.N == 0 {
		return math.NaN(), math.NaN()
	}
	d := distuv.Beta{Alpha: e.K + 0.5, Beta: (e.N - e.K) + 0.5}
	return d.Quantile(0.025), d.Quantile(0.975)
}

package gcorrect

import (
	"strings"
	"sync"

	"github.com/vertgenlab/gonomics/bed"
	"golang.org/x/exp/slices"
)

// CorrectBoth runs the correction independently on each strand and merges
// the two outputs into one stream sorted ascending by (chrom, start).
// Plus and minus input records must both be in ascending coordinate order
// with minus-strand Nuc taken from the forward reference; minus records
// are normalized here before scanning. The two scans share no state and
// run concurrently; the sort is the only join point. Records at the same
// position on both strands are kept, plus before minus.
func CorrectBoth(p float64, plus, minus []Record) ([]Corrected, error) {
	// Validate before spawning either scan so a bad p never produces
	// partial output.
	if _, err := NewEngine(p, 1); err != nil {
		return nil, err
	}

	var plusOut, minusOut []Corrected
	wg := new(sync.WaitGroup)
	wg.Add(2)
	go func() {
		defer wg.Done()
		plusOut, _ = Correct(p, 1, plus)
		for i := range plusOut {
			plusOut[i].Strand = bed.Positive
		}
	}()
	go func() {
		defer wg.Done()
		minusOut, _ = Correct(p, -1, NormalizeMinus(minus))
		for i := range minusOut {
			minusOut[i].Strand = bed.Negative
		}
	}()
	wg.Wait()

	ans := make([]Corrected, 0, len(plusOut)+len(minusOut))
	ans = append(ans, plusOut...)
	ans = append(ans, minusOut...)
	slices.SortStableFunc(ans, compareCorrected)
	return ans, nil
}

func compareCorrected(a, b Corrected) int {
	if c := strings.Compare(a.Chrom, b.Chrom); c != 0 {
		return c
	}
	if a.Start != b.Start {
		return a.Start - b.Start
	}
	return int(a.Strand) - int(b.Strand)
}

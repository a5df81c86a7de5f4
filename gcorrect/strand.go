package gcorrect

import "github.com/vertgenlab/gonomics/dna"

// NormalizeMinus reorders ascending minus-strand records into the strand's
// own 5' to 3' reading order (descending coordinate) and complements each
// reference base so the engine sees read-orientation nucleotides. The
// input slice is not modified. Bases without a complement (N) pass through
// unchanged.
func NormalizeMinus(recs []Record) []Record {
	ans := make([]Record, len(recs))
	for i := range recs {
		r := recs[len(recs)-1-i]
		r.Nuc = complementBase(r.Nuc)
		ans[i] = r
	}
	return ans
}

func complementBase(b dna.Base) dna.Base {
	switch b {
	case dna.A, dna.C, dna.G, dna.T:
		return dna.ComplementSingleBase(b)
	default:
		return b
	}
}

package ctss

import (
	"log"

	"github.com/hkawaji/ctssTools/gcorrect"
	"github.com/vertgenlab/gonomics/dna"
	"github.com/vertgenlab/gonomics/exception"
	"github.com/vertgenlab/gonomics/fasta"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// Records assembles one strand's counts into the engine's input: ascending
// per-base records covering every observed base, with a synthetic zero
// record at the single base adjacent to each run boundary so the engine
// always sees a true neighbor. Runs separated by exactly one base share the
// zero record at that base and stay adjacent. Padding is clamped to
// [0, chrom size); a chromosome missing from sizes is a fatal upstream
// error. Reference bases are filled from ref and uppercased.
func Records(counts StrandCounts, ref *fasta.Seeker, sizes map[string]int) []gcorrect.Record {
	chroms := maps.Keys(counts)
	slices.Sort(chroms)

	var ans []gcorrect.Record
	for _, chrom := range chroms {
		size, found := sizes[chrom]
		if !found {
			log.Fatalf("ERROR: chromosome %s not present in the fasta index\n", chrom)
		}
		ans = append(ans, chromRecords(chrom, counts[chrom], ref, size)...)
	}
	return ans
}

func chromRecords(chrom string, sites map[int]*Site, ref *fasta.Seeker, size int) []gcorrect.Record {
	padded := make(map[int]bool, len(sites)*3)
	for pos := range sites {
		padded[pos] = true
		if pos-1 >= 0 {
			padded[pos-1] = true
		}
		if pos+1 < size {
			padded[pos+1] = true
		}
	}
	positions := maps.Keys(padded)
	slices.Sort(positions)

	ans := make([]gcorrect.Record, 0, len(positions))
	// One reference fetch per contiguous block.
	for i := 0; i < len(positions); {
		j := i
		for j+1 < len(positions) && positions[j+1] == positions[j]+1 {
			j++
		}
		seq, err := fasta.SeekByName(ref, chrom, positions[i], positions[j]+1)
		exception.PanicOnErr(err)
		dna.AllToUpper(seq)

		for k := i; k <= j; k++ {
			pos := positions[k]
			r := gcorrect.Record{Chrom: chrom, Start: pos, End: pos + 1, Nuc: seq[pos-positions[i]]}
			if s, found := sites[pos]; found {
				r.X = s.X
				r.A0 = s.A0
			}
			ans = append(ans, r)
		}
		i = j + 1
	}
	return ans
}

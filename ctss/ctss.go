// Package ctss turns alignments into the per-base, per-strand 5' read-start
// observations consumed by the correction engine: total starts (X), starts
// carrying an extra mismatching G (A0), and the reference base.
package ctss

import (
	"github.com/vertgenlab/gonomics/dna"
	"github.com/vertgenlab/gonomics/exception"
	"github.com/vertgenlab/gonomics/fasta"
	"github.com/vertgenlab/gonomics/sam"
)

// Site is one observed 5'-end base.
type Site struct {
	X  float64 // reads whose 5' end maps here
	A0 float64 // subset with the extra mismatching G
}

// StrandCounts maps chrom name to 0-based position to observed counts for
// one strand.
type StrandCounts map[string]map[int]*Site

func (c StrandCounts) add(chrom string, pos int, extraG bool) {
	m, found := c[chrom]
	if !found {
		m = make(map[int]*Site)
		c[chrom] = m
	}
	s, found := m[pos]
	if !found {
		s = new(Site)
		m[pos] = s
	}
	s.X++
	if extraG {
		s.A0++
	}
}

// CountFivePrime drains an alignment stream and tallies 5' read starts per
// strand. Unmapped reads, secondary/supplementary alignments, and reads
// below minMapQ are skipped. The reference seeker resolves mismatch checks
// for reads without 5' soft-clips.
func CountFivePrime(reads <-chan sam.Sam, ref *fasta.Seeker, minMapQ uint8) (plus, minus StrandCounts) {
	plus = make(StrandCounts)
	minus = make(StrandCounts)
	for r := range reads {
		if sam.IsUnmapped(r) || r.MapQ < minMapQ || r.Flag&0x900 != 0 {
			continue
		}
		if sam.IsPosStrand(r) {
			pos := r.GetChromStart()
			plus.add(r.RName, pos, hasExtraGPlus(r, ref, pos))
		} else {
			pos := r.GetChromEnd() - 1
			minus.add(r.RName, pos, hasExtraGMinus(r, ref, pos))
		}
	}
	return plus, minus
}

// hasExtraGPlus reports whether a plus-strand read carries the artifact:
// a 5' soft-clip ending in G, or a first aligned base that is a read-G
// mismatching the reference.
func hasExtraGPlus(r sam.Sam, ref *fasta.Seeker, pos int) bool {
	clip := leadingClip(r)
	if clip > 0 {
		return dna.ToUpper(r.Seq[clip-1]) == dna.G
	}
	if clip >= len(r.Seq) || dna.ToUpper(r.Seq[clip]) != dna.G {
		return false
	}
	return refBase(ref, r.RName, pos) != dna.G
}

// hasExtraGMinus is the reverse-complement case: the stored sequence is
// reference oriented, so the read's 5' G appears as a C at the
// high-coordinate end.
func hasExtraGMinus(r sam.Sam, ref *fasta.Seeker, pos int) bool {
	clip := trailingClip(r)
	last := len(r.Seq) - 1 - clip
	if last < 0 {
		return false
	}
	if clip > 0 {
		return dna.ToUpper(r.Seq[last+1]) == dna.C
	}
	if dna.ToUpper(r.Seq[last]) != dna.C {
		return false
	}
	return refBase(ref, r.RName, pos) != dna.C
}

// leadingClip returns the number of soft-clipped bases at the start of the
// stored sequence. Hard clips carry no sequence and are skipped over.
func leadingClip(r sam.Sam) int {
	for i := 0; i < len(r.Cigar); i++ {
		switch r.Cigar[i].Op {
		case 'H':
			continue
		case 'S':
			return r.Cigar[i].RunLength
		default:
			return 0
		}
	}
	return 0
}

func trailingClip(r sam.Sam) int {
	for i := len(r.Cigar) - 1; i >= 0; i-- {
		switch r.Cigar[i].Op {
		case 'H':
			continue
		case 'S':
			return r.Cigar[i].RunLength
		default:
			return 0
		}
	}
	return 0
}

func refBase(ref *fasta.Seeker, chrom string, pos int) dna.Base {
	seq, err := fasta.SeekByName(ref, chrom, pos, pos+1)
	exception.PanicOnErr(err)
	dna.AllToUpper(seq)
	return seq[0]
}

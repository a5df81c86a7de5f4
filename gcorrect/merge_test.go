package gcorrect

import (
	"testing"

	"github.com/vertgenlab/gonomics/bed"
)

func TestCorrectBoth(t *testing.T) {
	plus := []Record{
		rec("chr1", 100, 4, 0, "A"),
		rec("chr1", 101, 10, 8, "G"),
		rec("chr2", 50, 2, 0, "T"),
	}
	minus := []Record{
		rec("chr1", 100, 3, 1, "C"),
		rec("chr1", 101, 6, 0, "T"),
	}

	merged, err := CorrectBoth(0.5, plus, minus)
	if err != nil {
		t.Fatal(err)
	}
	if len(merged) != len(plus)+len(minus) {
		t.Fatal("merge must keep every record from both strands")
	}

	// Ascending by (chrom, start), plus before minus on ties.
	for i := 1; i < len(merged); i++ {
		a, b := merged[i-1], merged[i]
		if a.Chrom > b.Chrom {
			t.Error("chromosomes out of order:", a.Chrom, b.Chrom)
		}
		if a.Chrom == b.Chrom && a.Start > b.Start {
			t.Error("starts out of order:", a.Start, b.Start)
		}
		if a.Chrom == b.Chrom && a.Start == b.Start && !(a.Strand == bed.Positive && b.Strand == bed.Negative) {
			t.Error("tie at same position must keep plus before minus")
		}
	}

	// Merged output is exactly the union of the independent scans.
	plusOnly, err := Correct(0.5, 1, plus)
	if err != nil {
		t.Fatal(err)
	}
	minusOnly, err := Correct(0.5, -1, NormalizeMinus(minus))
	if err != nil {
		t.Fatal(err)
	}
	var pi, mi int
	for _, c := range merged {
		switch c.Strand {
		case bed.Positive:
			c.Strand = 0
			if c != plusOnly[pi] {
				t.Error("plus-strand record altered by merge:", c)
			}
			pi++
		case bed.Negative:
			c.Strand = 0
			if c != minusOnly[mi] {
				t.Error("minus-strand record altered by merge:", c)
			}
			mi++
		}
	}
	if pi != len(plusOnly) || mi != len(minusOnly) {
		t.Error("merge lost strand records")
	}
}

func TestStrandIndependence(t *testing.T) {
	plus := []Record{
		rec("chr1", 100, 4, 0, "A"),
		rec("chr1", 101, 10, 8, "G"),
	}
	minus := []Record{
		rec("chr1", 100, 3, 1, "C"),
		rec("chr1", 101, 6, 0, "T"),
	}

	both, err := CorrectBoth(0.5, plus, minus)
	if err != nil {
		t.Fatal(err)
	}
	plusAlone, err := CorrectBoth(0.5, plus, nil)
	if err != nil {
		t.Fatal(err)
	}

	var fromBoth []Corrected
	for _, c := range both {
		if c.Strand == bed.Positive {
			fromBoth = append(fromBoth, c)
		}
	}
	if len(fromBoth) != len(plusAlone) {
		t.Fatal("removing the minus strand changed the plus-strand output size")
	}
	for i := range plusAlone {
		if plusAlone[i] != fromBoth[i] {
			t.Error("minus-strand input influenced plus-strand correction:", plusAlone[i], fromBoth[i])
		}
	}
}

func TestCorrectBothBadP(t *testing.T) {
	if _, err := CorrectBoth(0, nil, nil); err == nil {
		t.Error("p == 0 should be rejected before any scan")
	}
}

package ctss

import (
	"testing"

	"github.com/hkawaji/ctssTools/gcorrect"
	"github.com/vertgenlab/gonomics/dna"
	"github.com/vertgenlab/gonomics/fasta"
)

var testSizes = map[string]int{"chr1": 20, "chr2": 10}

func buildRecords(t *testing.T, counts StrandCounts) []gcorrect.Record {
	t.Helper()
	ref := fasta.NewSeeker("testdata/test.fa", "")
	defer ref.Close()
	return Records(counts, ref, testSizes)
}

func site(x, a0 float64) *Site {
	return &Site{X: x, A0: a0}
}

func TestRecordsPadding(t *testing.T) {
	counts := StrandCounts{"chr1": {7: site(5, 4)}}
	recs := buildRecords(t, counts)

	if len(recs) != 3 {
		t.Fatal("single site should pad to 3 records:", recs)
	}
	want := []gcorrect.Record{
		{Chrom: "chr1", Start: 6, End: 7, X: 0, A0: 0, Nuc: dna.G},
		{Chrom: "chr1", Start: 7, End: 8, X: 5, A0: 4, Nuc: dna.G},
		{Chrom: "chr1", Start: 8, End: 9, X: 0, A0: 0, Nuc: dna.G},
	}
	for i := range want {
		if recs[i] != want[i] {
			t.Errorf("record %d: got %v want %v", i, recs[i], want[i])
		}
	}
}

func TestRecordsBridgeOneBaseGap(t *testing.T) {
	// Sites at 12 and 14 are separated by exactly one base; the padding
	// at 13 is shared, keeping the whole block contiguous.
	counts := StrandCounts{"chr1": {12: site(2, 0), 14: site(3, 1)}}
	recs := buildRecords(t, counts)

	if len(recs) != 5 {
		t.Fatal("bridged runs should form one block of 5:", recs)
	}
	for i := 1; i < len(recs); i++ {
		if recs[i].Start != recs[i-1].Start+1 {
			t.Error("bridged block must be contiguous:", recs[i-1], recs[i])
		}
	}
	if recs[0].Start != 11 || recs[4].Start != 15 {
		t.Error("unexpected block bounds:", recs[0], recs[4])
	}
	if recs[2].Start != 13 || recs[2].X != 0 {
		t.Error("gap base should be a zero record:", recs[2])
	}
	// chr1[11:16] is TACGG.
	if recs[0].Nuc != dna.T || recs[2].Nuc != dna.C || recs[3].Nuc != dna.G {
		t.Error("unexpected reference bases:", recs)
	}
}

func TestRecordsSeparateRuns(t *testing.T) {
	counts := StrandCounts{"chr1": {2: site(1, 0), 12: site(1, 0)}}
	recs := buildRecords(t, counts)

	if len(recs) != 6 {
		t.Fatal("two isolated sites should pad to 6 records:", recs)
	}
	// Blocks [1,3] and [11,13] with a real hole between them.
	if recs[2].Start != 3 || recs[3].Start != 11 {
		t.Error("distant runs must stay non-adjacent:", recs[2], recs[3])
	}
}

func TestRecordsClampAtContigEdges(t *testing.T) {
	counts := StrandCounts{"chr2": {0: site(4, 0), 9: site(2, 2)}}
	recs := buildRecords(t, counts)

	if len(recs) != 4 {
		t.Fatal("edge sites should clamp padding:", recs)
	}
	if recs[0].Start != 0 || recs[1].Start != 1 {
		t.Error("no padding below position 0:", recs[0], recs[1])
	}
	if recs[2].Start != 8 || recs[3].Start != 9 {
		t.Error("no padding at or beyond the contig size:", recs[2], recs[3])
	}
}

func TestRecordsChromOrder(t *testing.T) {
	counts := StrandCounts{
		"chr2": {5: site(1, 0)},
		"chr1": {5: site(1, 0)},
	}
	recs := buildRecords(t, counts)
	if recs[0].Chrom != "chr1" || recs[len(recs)-1].Chrom != "chr2" {
		t.Error("chromosomes should be emitted in sorted order:", recs)
	}
}

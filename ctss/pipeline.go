package ctss

import (
	"fmt"
	"io"
	"log"
	"strconv"
	"strings"

	"github.com/hkawaji/ctssTools/fai"
	"github.com/hkawaji/ctssTools/gcorrect"
	"github.com/vertgenlab/gonomics/bed"
	"github.com/vertgenlab/gonomics/dna"
	"github.com/vertgenlab/gonomics/exception"
	"github.com/vertgenlab/gonomics/fasta"
	"github.com/vertgenlab/gonomics/fileio"
	"github.com/vertgenlab/gonomics/sam"
)

// BuildRecords runs the full preparation stage: stream the bam, tally 5'
// starts per strand, and assemble padded per-base records with reference
// nucleotides. The reference fasta must have a .fai alongside.
func BuildRecords(input, refFile string, minMapQ uint8, verbose int) (plus, minus []gcorrect.Record) {
	ref := fasta.NewSeeker(refFile, refFile+".fai")
	defer cleanup(ref)
	sizes := fai.ReadIndex(refFile + ".fai").Sizes()

	reads, _ := sam.GoReadToChan(input)
	plusCounts, minusCounts := CountFivePrime(reads, ref, minMapQ)
	if verbose > 0 {
		log.Printf("counted 5' ends on %d chroms (+) and %d chroms (-)\n", len(plusCounts), len(minusCounts))
	}

	plus = Records(plusCounts, ref, sizes)
	minus = Records(minusCounts, ref, sizes)
	if verbose > 0 {
		log.Printf("assembled %d plus-strand and %d minus-strand records\n", len(plus), len(minus))
	}
	return plus, minus
}

// GCorrect is the whole pipeline: bam in, G-corrected CTSS bed out.
func GCorrect(input, refFile, output string, minMapQ uint8, p float64, verbose int) {
	plus, minus := BuildRecords(input, refFile, minMapQ, verbose)
	correctAndWrite(plus, minus, output, p)
}

// GCorrectFromCounts replays a counts file written by WriteCounts through
// the correction without touching bam or fasta.
func GCorrectFromCounts(countsFile, output string, p float64, verbose int) {
	plus, minus := ReadCounts(countsFile)
	if verbose > 0 {
		log.Printf("read %d plus-strand and %d minus-strand records\n", len(plus), len(minus))
	}
	correctAndWrite(plus, minus, output, p)
}

func correctAndWrite(plus, minus []gcorrect.Record, output string, p float64) {
	corrected, err := gcorrect.CorrectBoth(p, plus, minus)
	exception.PanicOnErr(err)

	out := fileio.EasyCreate(output)
	for i := range corrected {
		bed.WriteBed(out, corrected[i].Bed())
	}
	err = out.Close()
	exception.PanicOnErr(err)
}

// WriteCounts emits both strands' assembled records as a tab separated
// table: chrom, start, end, strand, X, A0, nuc. This is byte-for-byte the
// stream the engine consumes and can be replayed with GCorrectFromCounts.
func WriteCounts(plus, minus []gcorrect.Record, output string) {
	out := fileio.EasyCreate(output)
	writeStrandCounts(out, plus, '+')
	writeStrandCounts(out, minus, '-')
	err := out.Close()
	exception.PanicOnErr(err)
}

func writeStrandCounts(out io.Writer, recs []gcorrect.Record, strand byte) {
	for i := range recs {
		fmt.Fprintf(out, "%s\t%d\t%d\t%c\t%g\t%g\t%s\n",
			recs[i].Chrom, recs[i].Start, recs[i].End, strand, recs[i].X, recs[i].A0, dna.BaseToString(recs[i].Nuc))
	}
}

// ReadCounts parses a WriteCounts table back into ascending per-strand
// records. Malformed or unsorted input is fatal: correctness downstream
// depends on complete, ordered coverage.
func ReadCounts(filename string) (plus, minus []gcorrect.Record) {
	file := fileio.EasyOpen(filename)
	var line string
	var done bool
	var col []string
	var err error
	var prevPlus, prevMinus gcorrect.Record
	for line, done = fileio.EasyNextRealLine(file); !done; line, done = fileio.EasyNextRealLine(file) {
		col = strings.Split(line, "\t")
		if len(col) != 7 {
			log.Fatalf("ERROR: malformed counts line, expected 7 fields:\n%s\n", line)
		}
		var r gcorrect.Record
		r.Chrom = col[0]
		r.Start, err = strconv.Atoi(col[1])
		exception.PanicOnErr(err)
		r.End, err = strconv.Atoi(col[2])
		exception.PanicOnErr(err)
		r.X, err = strconv.ParseFloat(col[4], 64)
		exception.PanicOnErr(err)
		r.A0, err = strconv.ParseFloat(col[5], 64)
		exception.PanicOnErr(err)
		r.Nuc = dna.StringToBase(col[6])
		if r.End != r.Start+1 {
			log.Fatalf("ERROR: counts record must span one base:\n%s\n", line)
		}
		if r.A0 < 0 || r.A0 > r.X {
			log.Fatalf("ERROR: counts record must satisfy 0 <= A0 <= X:\n%s\n", line)
		}

		switch col[3] {
		case "+":
			checkSorted(prevPlus, r, line)
			prevPlus = r
			plus = append(plus, r)
		case "-":
			checkSorted(prevMinus, r, line)
			prevMinus = r
			minus = append(minus, r)
		default:
			log.Fatalf("ERROR: counts strand must be + or -:\n%s\n", line)
		}
	}
	err = file.Close()
	exception.PanicOnErr(err)
	return plus, minus
}

func checkSorted(prev, curr gcorrect.Record, line string) {
	if prev.Chrom == curr.Chrom && prev.End > curr.Start {
		log.Fatalf("ERROR: counts file is not coordinate sorted:\n%s\n", line)
	}
}

func cleanup(c io.Closer) {
	exception.PanicOnErr(c.Close())
}

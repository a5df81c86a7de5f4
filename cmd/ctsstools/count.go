package main

import (
	"flag"
	"fmt"
	"math"

	"github.com/hkawaji/ctssTools/ctss"
	"github.com/vertgenlab/gonomics/exception"
)

func countUsage(countFlags *flag.FlagSet) {
	fmt.Print(
		"count - tally per-base 5' read starts and extra-G starts from bam\n\n" +
			"Usage:\n" +
			"  ctsstools count [options] -i input.bam -r reference.fasta > counts.tsv\n\n" +
			"Output columns: chrom, start, end, strand, X (5' starts), A0 (extra-G starts), reference base.\n" +
			"Run boundaries carry one zero-count neighbor so the table replays cleanly with 'correct -fromCounts'.\n\n" +
			"Options:\n")
	countFlags.PrintDefaults()
}

func runCount(args []string) {
	var err error
	countFlags := flag.NewFlagSet("count", flag.ExitOnError)
	input := countFlags.String("i", "", "Input bam file.")
	ref := countFlags.String("r", "", "Reference fasta file. Must be indexed (.fai).")
	output := countFlags.String("o", "stdout", "Output counts file.")
	minMapQ := countFlags.Int("minMapQ", 20, "Minimum mapping quality.")
	verbose := countFlags.Int("v", 0, "Verbose output by setting to >0.")
	err = countFlags.Parse(args)
	exception.PanicOnErr(err)
	countFlags.Usage = func() { countUsage(countFlags) }

	if *input == "" || *ref == "" {
		countFlags.Usage()
		errExit("\nERROR: must specify bam (-i) and fasta (-r)")
	}
	if *minMapQ < 0 || *minMapQ > math.MaxUint8 {
		countFlags.Usage()
		errExit("\nERROR: -minMapQ out of range")
	}

	plus, minus := ctss.BuildRecords(*input, *ref, uint8(*minMapQ), *verbose)
	ctss.WriteCounts(plus, minus, *output)
}

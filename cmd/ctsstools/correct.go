package main

import (
	"flag"
	"fmt"
	"math"

	"github.com/hkawaji/ctssTools/ctss"
	"github.com/hkawaji/ctssTools/gcorrect"
	"github.com/vertgenlab/gonomics/exception"
)

func correctUsage(correctFlags *flag.FlagSet) {
	fmt.Print(
		"correct - reassign extra-G read starts to their true upstream CTSS\n\n" +
			"Usage:\n" +
			"  ctsstools correct [options] -i input.bam -r reference.fasta > output.bed\n\n" +
			"Options:\n")
	correctFlags.PrintDefaults()
}

func runCorrect(args []string) {
	var err error
	correctFlags := flag.NewFlagSet("correct", flag.ExitOnError)
	input := correctFlags.String("i", "", "Input bam file.")
	ref := correctFlags.String("r", "", "Reference fasta file. Must be indexed (.fai).")
	output := correctFlags.String("o", "stdout", "Output bed file.")
	fromCounts := correctFlags.String("fromCounts", "", "Read per-base counts from a table written by 'ctsstools count' instead of bam and fasta.")
	minMapQ := correctFlags.Int("minMapQ", 20, "Minimum mapping quality.")
	p := correctFlags.Float64("p", gcorrect.DefaultP, "Probability that a true start site read acquires an extra mismatching G.")
	verbose := correctFlags.Int("v", 0, "Verbose output by setting to >0.")
	err = correctFlags.Parse(args)
	exception.PanicOnErr(err)
	correctFlags.Usage = func() { correctUsage(correctFlags) }

	if *p <= 0 || *p > 1 {
		correctFlags.Usage()
		errExit("\nERROR: -p must be in (0,1]")
	}
	if *minMapQ < 0 || *minMapQ > math.MaxUint8 {
		correctFlags.Usage()
		errExit("\nERROR: -minMapQ out of range")
	}

	if *fromCounts != "" {
		ctss.GCorrectFromCounts(*fromCounts, *output, *p, *verbose)
		return
	}
	if *input == "" || *ref == "" {
		correctFlags.Usage()
		errExit("\nERROR: must specify bam (-i) and fasta (-r), or -fromCounts")
	}
	ctss.GCorrect(*input, *ref, *output, uint8(*minMapQ), *p, *verbose)
}

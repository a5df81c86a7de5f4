package main

import (
	"flag"
	"fmt"
	"log"
	"math"

	"github.com/hkawaji/ctssTools/ctss"
	"github.com/hkawaji/ctssTools/gcorrect"
)

func usage() {
	fmt.Print(
		"bamToGcorrectedCtss - G-corrected CTSS counts from 5' (CAGE) sequencing alignments.\n" +
			"Reads whose 5' end carries a non-templated extra G are reassigned to their true\n" +
			"upstream start site.\n" +
			"Usage:\n" +
			"bamToGcorrectedCtss [options] -i input.bam -r reference.fasta > output.bed\n\n")
	flag.PrintDefaults()
}

func main() {
	input := flag.String("i", "", "Input bam file.")
	ref := flag.String("r", "", "Reference fasta file. Must be indexed (.fai).")
	output := flag.String("o", "stdout", "Output bed file.")
	minMapQ := flag.Int("minMapQ", 20, "Minimum mapping quality.")
	p := flag.Float64("p", gcorrect.DefaultP, "Probability that a true start site read acquires an extra mismatching G.")
	verbose := flag.Int("v", 0, "Verbose output by setting to >0.")
	flag.Parse()

	if *input == "" || *ref == "" {
		usage()
		log.Fatal("ERROR: must input a bam file (-i) and an indexed reference fasta (-r).")
	}
	if *p <= 0 || *p > 1 {
		usage()
		log.Fatal("ERROR: -p must be in (0,1].")
	}
	if *minMapQ < 0 || *minMapQ > math.MaxUint8 {
		usage()
		log.Fatal("ERROR: -minMapQ out of range.")
	}

	ctss.GCorrect(*input, *ref, *output, uint8(*minMapQ), *p, *verbose)
}

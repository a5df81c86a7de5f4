package main

import (
	"flag"
	"fmt"
	"math"

	"github.com/guptarohit/asciigraph"
	"github.com/hkawaji/ctssTools/ctss"
	"github.com/hkawaji/ctssTools/gcorrect"
	"github.com/vertgenlab/gonomics/exception"
)

func estimateUsage(estimateFlags *flag.FlagSet) {
	fmt.Print(
		"estimateP - estimate the extra-G probability from the data\n\n" +
			"Pools A0/X over bases that begin a reference G run, where every artifact read\n" +
			"is still attributed to its true start. The estimate is advisory: 'correct'\n" +
			"always uses its own -p value.\n\n" +
			"Usage:\n" +
			"  ctsstools estimateP [options] -i input.bam -r reference.fasta\n\n" +
			"Options:\n")
	estimateFlags.PrintDefaults()
}

func runEstimateP(args []string) {
	var err error
	estimateFlags := flag.NewFlagSet("estimateP", flag.ExitOnError)
	input := estimateFlags.String("i", "", "Input bam file.")
	ref := estimateFlags.String("r", "", "Reference fasta file. Must be indexed (.fai).")
	fromCounts := estimateFlags.String("fromCounts", "", "Read per-base counts from a table written by 'ctsstools count' instead of bam and fasta.")
	minMapQ := estimateFlags.Int("minMapQ", 20, "Minimum mapping quality.")
	verbose := estimateFlags.Int("v", 0, "Verbose output by setting to >0. At >0 plots the per-site A0/X distribution.")
	err = estimateFlags.Parse(args)
	exception.PanicOnErr(err)
	estimateFlags.Usage = func() { estimateUsage(estimateFlags) }

	if *minMapQ < 0 || *minMapQ > math.MaxUint8 {
		estimateFlags.Usage()
		errExit("\nERROR: -minMapQ out of range")
	}

	var plus, minus []gcorrect.Record
	switch {
	case *fromCounts != "":
		plus, minus = ctss.ReadCounts(*fromCounts)
	case *input != "" && *ref != "":
		plus, minus = ctss.BuildRecords(*input, *ref, uint8(*minMapQ), *verbose)
	default:
		estimateFlags.Usage()
		errExit("\nERROR: must specify bam (-i) and fasta (-r), or -fromCounts")
	}

	e := gcorrect.EstimateP(plus, minus)
	if len(e.Ratios) == 0 {
		errExit("ERROR: no qualifying G-run start sites found")
	}
	lo, hi := e.JeffreysInterval()
	fmt.Printf("sites\t%d\n", len(e.Ratios))
	fmt.Printf("starts\t%.0f\n", e.N)
	fmt.Printf("extraG\t%.0f\n", e.K)
	fmt.Printf("p\t%.7f\n", e.P())
	fmt.Printf("p95low\t%.7f\n", lo)
	fmt.Printf("p95high\t%.7f\n", hi)
	fmt.Printf("siteMean\t%.7f\n", e.MeanRatio())

	if *verbose > 0 {
		fmt.Println("\nper-site A0/X distribution (20 bins from 0 to 1):")
		fmt.Println(asciigraph.Plot(ratioHistogram(e.Ratios, 20), asciigraph.Height(10), asciigraph.Precision(0)))
	}
}

func ratioHistogram(ratios []float64, bins int) []float64 {
	hist := make([]float64, bins)
	for _, r := range ratios {
		i := int(r * float64(bins))
		if i >= bins { // r == 1 falls in the last bin
			i = bins - 1
		}
		hist[i]++
	}
	return hist
}

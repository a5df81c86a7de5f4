// Package fai reads fasta index (.fai) files. The index doubles as the
// chromosome-size table: sequence lengths bound the per-base scan and clamp
// boundary padding at contig edges.
package fai

import (
	"log"
	"strconv"
	"strings"

	"github.com/vertgenlab/gonomics/chromInfo"
	"github.com/vertgenlab/gonomics/exception"
	"github.com/vertgenlab/gonomics/fileio"
)

// Index holds the sequence lengths of a .fai file in file order.
type Index struct {
	chroms  []chromInfo.ChromInfo
	nameMap map[string]int // chr name to index in chroms
}

// ReadIndex parses a .fai file. Only the name and length columns are kept;
// byte offsets are the fasta seeker's concern.
func ReadIndex(filename string) Index {
	file := fileio.EasyOpen(filename)
	var ans Index
	var line string
	var col []string
	var done bool
	var size int
	var err error
	for line, done = fileio.EasyNextRealLine(file); !done; line, done = fileio.EasyNextRealLine(file) {
		col = strings.Split(line, "\t")
		if len(col) != 5 {
			log.Fatalf("ERROR: malformed index file: %s\nerror on line:\n%s\n", filename, line)
		}
		size, err = strconv.Atoi(col[1])
		exception.PanicOnErr(err)
		ans.chroms = append(ans.chroms, chromInfo.ChromInfo{Name: col[0], Size: size, Order: len(ans.chroms)})
	}
	err = file.Close()
	exception.PanicOnErr(err)

	ans.nameMap = make(map[string]int)
	for i := range ans.chroms {
		ans.nameMap[ans.chroms[i].Name] = i
	}
	return ans
}

// Size returns the length of chr, and whether chr is present in the index.
func (idx Index) Size(chr string) (int, bool) {
	i, found := idx.nameMap[chr]
	if !found {
		return 0, false
	}
	return idx.chroms[i].Size, true
}

// Sizes returns the index as a chrom name to length map.
func (idx Index) Sizes() map[string]int {
	ans := make(map[string]int, len(idx.chroms))
	for i := range idx.chroms {
		ans[idx.chroms[i].Name] = idx.chroms[i].Size
	}
	return ans
}

// Chroms returns the chromosome names in file order.
func (idx Index) Chroms() []string {
	ans := make([]string, len(idx.chroms))
	for i := range idx.chroms {
		ans[i] = idx.chroms[i].Name
	}
	return ans
}

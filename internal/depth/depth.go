// internal/depth/depth.go

// Package depth computes the per-(community,taxon) simulation effort from
// relative abundance and target sequencing depth. Abundances are taken as
// given; they are not normalized, so coverage scales linearly with whatever
// the table says.
package depth

import (
	"math"

	"simreads/internal/simerr"
)

// Fold returns the fold coverage handed to a coverage-driven simulator:
//
//	perc/100 * seqDepth * (readLen*mates) / genomeSize
//
// mates is 2 for paired-end runs and 1 otherwise. A non-positive genome
// size is an error carrying the taxon so the failure names its record.
func Fold(taxon string, percRelAbund, seqDepth float64, readLen, mates int, genomeSize int64) (float64, error) {
	if genomeSize <= 0 {
		return 0, &simerr.InvalidGenomeError{Taxon: taxon, SizeBP: genomeSize}
	}
	return percRelAbund / 100 * seqDepth * float64(readLen*mates) / float64(genomeSize), nil
}

// ReadCount returns the whole number of reads handed to a count-driven
// simulator: floor(perc/100 * seqDepth).
func ReadCount(percRelAbund, seqDepth float64) int64 {
	return int64(math.Floor(percRelAbund / 100 * seqDepth))
}

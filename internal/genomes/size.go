// internal/genomes/size.go

// Package genomes measures genome FASTA files so coverage can be derived
// from relative abundance.
package genomes

import (
	"context"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"simreads/internal/fastx"
	"simreads/internal/simtable"
)

// Size returns the summed sequence length of every record in a FASTA
// file, plain or gzipped.
func Size(path string) (int64, error) {
	rc, err := fastx.Open(path)
	if err != nil {
		return 0, err
	}
	defer func() { _ = rc.Close() }()

	var total int64
	sc := fastx.NewScanner(fastx.FASTA, rc)
	for sc.Next() {
		total += int64(sc.Seq().Len())
	}
	if err := sc.Error(); err != nil {
		return 0, errors.Wrapf(err, "measure %s", path)
	}
	return total, nil
}

// MeasureSizes fills SizeBP for every entry in place, reading up to
// threads FASTA files concurrently. The first failure cancels the rest.
func MeasureSizes(ctx context.Context, entries []simtable.GenomeEntry, threads int) error {
	if threads < 1 {
		threads = 1
	}
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(threads)
	for i := range entries {
		if gctx.Err() != nil {
			break
		}
		i := i
		g.Go(func() error {
			size, err := Size(entries[i].Fasta)
			if err != nil {
				return errors.Wrapf(err, "genome %s", entries[i].Taxon)
			}
			entries[i].SizeBP = size
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	return ctx.Err()
}

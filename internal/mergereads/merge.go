// internal/mergereads/merge.go

// Package mergereads combines per-(community,taxon) simulator output into
// per-sample mate files. Each destination is written to a staging path
// and renamed into place only when every source merged cleanly; sources
// are deleted only after that commit, so a failed merge leaves the
// scratch tree intact and no partial destination visible.
package mergereads

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"simreads/internal/fastx"
	"simreads/internal/simulate"
)

// Options control one family's merge.
type Options struct {
	OutputDir string // family output root, e.g. <out>/illumina
	Format    fastx.Format
	Gzip      bool
	Threads   int
}

type source struct {
	path  string
	taxon string
}

// MergeAll merges every community's results, up to Threads communities at
// a time, and returns the destination files written in community order
// (R1 before R2).
func MergeAll(ctx context.Context, opt Options, communities []string, results []simulate.Result) ([]string, error) {
	threads := opt.Threads
	if threads < 1 {
		threads = 1
	}
	written := make([][]string, len(communities))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(threads)
	for i, comm := range communities {
		if gctx.Err() != nil {
			break
		}
		i, comm := i, comm
		g.Go(func() error {
			files, err := mergeSample(gctx, opt, comm, results)
			if err != nil {
				return errors.Wrapf(err, "merge community %s", comm)
			}
			written[i] = files
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var flat []string
	for _, files := range written {
		flat = append(flat, files...)
	}
	return flat, nil
}

// mergeSample writes R1 (and R2 when every result for the community is
// paired) for one community. A community with any unpaired result gets no
// R2 file; those mate files stay behind for scratch cleanup.
func mergeSample(ctx context.Context, opt Options, community string, results []simulate.Result) ([]string, error) {
	var (
		r1, r2 []source
		paired = true
	)
	for _, res := range results {
		if res.Community != community {
			continue
		}
		r1 = append(r1, source{path: res.Mate1, taxon: res.Taxon})
		if res.Paired() {
			r2 = append(r2, source{path: res.Mate2, taxon: res.Taxon})
		} else {
			paired = false
		}
	}
	if len(r1) == 0 {
		return nil, nil
	}

	dir := filepath.Join(opt.OutputDir, community)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	ext := opt.Format.Ext()
	if opt.Gzip {
		ext += ".gz"
	}

	files := []string{filepath.Join(dir, "R1"+ext)}
	if err := mergeFile(ctx, files[0], r1, opt.Format, opt.Gzip); err != nil {
		return nil, err
	}
	if paired && len(r2) > 0 {
		dest := filepath.Join(dir, "R2"+ext)
		if err := mergeFile(ctx, dest, r2, opt.Format, opt.Gzip); err != nil {
			return nil, err
		}
		files = append(files, dest)
	}
	return files, nil
}

// mergeFile is the per-destination transaction: staging write, rename,
// then source deletion.
func mergeFile(ctx context.Context, dest string, srcs []source, format fastx.Format, gzipped bool) error {
	staging := dest + ".partial"
	w, err := fastx.Create(staging, gzipped)
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			_ = w.Close()
			_ = os.Remove(staging)
		}
	}()

	rw := fastx.NewRecordWriter(format, w)
	for _, s := range srcs {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := copyRecords(rw, s, format); err != nil {
			return err
		}
	}
	if err := w.Close(); err != nil {
		return err
	}
	if err := os.Rename(staging, dest); err != nil {
		return err
	}
	committed = true

	for _, s := range srcs {
		if err := os.Remove(s.path); err != nil {
			return err
		}
	}
	return nil
}

// copyRecords streams one source file into the destination, renaming each
// record to <taxon>__SEQ<i>. The index restarts per source file; the
// taxon prefix keeps identifiers unique across the destination.
func copyRecords(rw fastx.RecordWriter, s source, format fastx.Format) error {
	rc, err := fastx.Open(s.path)
	if err != nil {
		return err
	}
	defer func() { _ = rc.Close() }()

	sc := fastx.NewScanner(format, rc)
	i := 0
	for sc.Next() {
		rec := sc.Seq()
		if err := fastx.SetIdent(rec, fmt.Sprintf("%s__SEQ%d", s.taxon, i)); err != nil {
			return err
		}
		if _, err := rw.Write(rec); err != nil {
			return errors.Wrapf(err, "write record %d of %s", i, s.path)
		}
		i++
	}
	if err := sc.Error(); err != nil {
		return errors.Wrapf(err, "read %s", s.path)
	}
	return nil
}

// internal/app/app.go

// Package app wires the stages of one simulation run: load and join the
// tables, size the genomes, compute per-record effort, dispatch the
// external simulator, merge per-sample reads, clean up scratch space.
package app

import (
	"context"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"simreads/internal/config"
	"simreads/internal/depth"
	"simreads/internal/genomes"
	"simreads/internal/mergereads"
	"simreads/internal/pipeline"
	"simreads/internal/scratch"
	"simreads/internal/simerr"
	"simreads/internal/simtable"
	"simreads/internal/simulate"
	"simreads/internal/version"
)

// snapshot is the provenance document written into the family output
// directory before simulation starts.
type snapshot struct {
	Command string        `yaml:"command"`
	Version string        `yaml:"version"`
	Inputs  config.Inputs `yaml:"inputs"`
	Config  interface{}   `yaml:"config"`
}

// familyRun bundles what execute needs to run one simulator family.
type familyRun struct {
	fam    simulate.Family
	run    config.Run
	cfg    interface{} // full family config, recorded in the snapshot
	assign func(recs []simtable.SampleTaxon) ([]simulate.Task, error)
}

// Illumina runs the art_illumina family.
func Illumina(ctx context.Context, in config.Inputs, cfg config.Illumina) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	mates := cfg.Mates()
	return execute(ctx, in, familyRun{
		fam: simulate.IlluminaFamily(cfg),
		run: cfg.Run,
		cfg: cfg,
		assign: func(recs []simtable.SampleTaxon) ([]simulate.Task, error) {
			tasks := make([]simulate.Task, len(recs))
			for i, r := range recs {
				fold, err := depth.Fold(r.Taxon, r.PercRelAbund, cfg.SeqDepth, cfg.ReadLen, mates, r.SizeBP)
				if err != nil {
					return nil, err
				}
				tasks[i] = simulate.Task{SampleTaxon: r, Fold: fold}
			}
			return tasks, nil
		},
	})
}

// PacBio runs the simlord family.
func PacBio(ctx context.Context, in config.Inputs, cfg config.PacBio) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	return execute(ctx, in, familyRun{
		fam:    simulate.PacBioFamily(cfg),
		run:    cfg.Run,
		cfg:    cfg,
		assign: countAssign(cfg.SeqDepth),
	})
}

// Nanopore runs the nanosim-h family.
func Nanopore(ctx context.Context, in config.Inputs, cfg config.Nanopore) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	return execute(ctx, in, familyRun{
		fam:    simulate.NanoporeFamily(cfg),
		run:    cfg.Run,
		cfg:    cfg,
		assign: countAssign(cfg.SeqDepth),
	})
}

// countAssign computes read counts for the count-driven families. A
// non-positive genome size still fails the record: it means the FASTA was
// empty or unreadable, and the simulator would only fail later and worse.
func countAssign(seqDepth float64) func([]simtable.SampleTaxon) ([]simulate.Task, error) {
	return func(recs []simtable.SampleTaxon) ([]simulate.Task, error) {
		tasks := make([]simulate.Task, len(recs))
		for i, r := range recs {
			if r.SizeBP <= 0 {
				return nil, &simerr.InvalidGenomeError{Taxon: r.Taxon, SizeBP: r.SizeBP}
			}
			tasks[i] = simulate.Task{SampleTaxon: r, Reads: depth.ReadCount(r.PercRelAbund, seqDepth)}
		}
		return tasks, nil
	}
}

func execute(ctx context.Context, in config.Inputs, fr familyRun) error {
	joined, err := loadRecords(ctx, in, fr.run)
	if err != nil {
		return err
	}

	// Resolve the binary before creating any directory.
	if _, err := fr.fam.LookPath(); err != nil {
		return err
	}

	tasks, err := fr.assign(joined)
	if err != nil {
		return err
	}

	outDir := filepath.Join(in.OutputDir, fr.fam.Name)
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return errors.Wrap(err, "output dir")
	}
	snap := snapshot{Command: fr.fam.Name, Version: version.Version, Inputs: in, Config: fr.cfg}
	if err := config.WriteSnapshot(filepath.Join(outDir, "config.yaml"), snap); err != nil {
		return err
	}

	scr, err := scratch.New(fr.run.TempDir, fr.run.KeepTemp)
	if err != nil {
		return err
	}
	failed := true
	defer func() {
		if cerr := scr.Cleanup(failed); cerr != nil {
			log.Warnf("Scratch cleanup: %v", cerr)
		}
	}()

	log.Infof("Simulating %s reads...", fr.fam.Name)
	runner := &simulate.Runner{Fam: fr.fam, Scratch: scr.Root, Timeout: fr.run.Timeout}
	results, err := pipeline.Run(ctx, pipeline.Options{Threads: fr.run.Threads, Debug: fr.run.Debug}, runner, tasks)
	if err != nil {
		return err
	}

	log.Info("Combining simulated reads by sample...")
	files, err := mergereads.MergeAll(ctx, mergereads.Options{
		OutputDir: outDir,
		Format:    fr.fam.Format,
		Gzip:      fr.run.Gzip,
		Threads:   fr.run.Threads,
	}, simtable.Communities(joined), results)
	if err != nil {
		return err
	}
	failed = false

	for _, f := range files {
		log.Infof("File written: %s", f)
	}
	return nil
}

// loadRecords performs the table stage: parse both tables, size the
// genomes, join, and police dropped taxa.
func loadRecords(ctx context.Context, in config.Inputs, run config.Run) ([]simtable.SampleTaxon, error) {
	log.Debugf("Loading genome table %s", in.GenomeTable)
	genomeEntries, err := simtable.LoadGenomeTable(in.GenomeTable)
	if err != nil {
		return nil, err
	}
	log.Debugf("Measuring %d genomes with %d threads", len(genomeEntries), run.Threads)
	if err := genomes.MeasureSizes(ctx, genomeEntries, run.Threads); err != nil {
		return nil, err
	}

	log.Debugf("Loading abundance table %s", in.AbundanceTable)
	abunds, err := simtable.LoadAbundanceTable(in.AbundanceTable)
	if err != nil {
		return nil, err
	}

	joined, drops := simtable.Join(genomeEntries, abunds)
	for _, taxon := range drops.AbundanceOnly {
		log.Warnf("Taxon %q has abundance entries but no genome; dropped from the join", taxon)
	}
	for _, taxon := range drops.GenomeOnly {
		log.Warnf("Taxon %q has a genome but no abundance entries; dropped from the join", taxon)
	}
	if run.StrictTaxa && !drops.Empty() {
		return nil, errors.Errorf("genome and abundance tables disagree on %d taxa",
			len(drops.AbundanceOnly)+len(drops.GenomeOnly))
	}
	if len(joined) == 0 {
		return nil, errors.New("no (community,taxon) records survive the join")
	}
	return joined, nil
}

// internal/simulate/family.go

// Package simulate builds and executes one external simulator invocation
// per (community,taxon) record. Commands are argument vectors handed to
// the OS directly; nothing here passes through a shell.
package simulate

import (
	"strconv"

	"simreads/internal/config"
	"simreads/internal/fastx"
	"simreads/internal/simtable"
)

// Task is one unit of simulation work: a joined record plus the effort
// computed for it (fold coverage or read count, depending on family).
type Task struct {
	simtable.SampleTaxon
	Fold  float64
	Reads int64
}

// Family describes one external simulator: the binary, how to render its
// command line, what it leaves behind, and how its reads merge.
type Family struct {
	Name   string       // output subdirectory and scratch file prefix
	Exe    string       // binary name resolved on PATH
	Format fastx.Format // record format of the simulator's output

	// Args renders the full argument vector for one task. prefix is the
	// scratch output prefix (scratch/<community>/<taxon>/<Name>).
	Args func(t Task, prefix string) []string

	// Outputs lists candidate output layouts in preference order; the
	// first layout whose files all exist is the invocation's result.
	Outputs func(prefix string) [][]string
}

func ffmt(f float64) string { return strconv.FormatFloat(f, 'g', -1, 64) }

// IlluminaFamily wires art_illumina: fold-coverage driven, fastq output,
// paired mates when configured. The optional seed rides the command line
// and nowhere else.
func IlluminaFamily(cfg config.Illumina) Family {
	return Family{
		Name:   "illumina",
		Exe:    "art_illumina",
		Format: fastx.FASTQ,
		Args: func(t Task, prefix string) []string {
			var args []string
			if cfg.Paired {
				args = append(args, "--paired")
			}
			args = append(args, "--len", strconv.Itoa(cfg.ReadLen))
			if cfg.MFLen > 0 {
				args = append(args, "--mflen", ffmt(cfg.MFLen))
			}
			args = append(args, "--sdev", ffmt(cfg.SDev), "--seqSys", cfg.SeqSys)
			args = append(args, config.ExtrasArgs(cfg.Params)...)
			args = append(args, "--noALN", "-f", ffmt(t.Fold), "-i", t.Fasta, "-o", prefix)
			if cfg.SeedSet() {
				args = append(args, "--rndSeed", strconv.FormatInt(cfg.Seed, 10))
			}
			return args
		},
		Outputs: func(prefix string) [][]string {
			return [][]string{
				{prefix + "1.fq", prefix + "2.fq"},
				{prefix + ".fq"},
			}
		},
	}
}

// PacBioFamily wires simlord: read-count driven, fastq output.
func PacBioFamily(cfg config.PacBio) Family {
	return Family{
		Name:   "pacbio",
		Exe:    "simlord",
		Format: fastx.FASTQ,
		Args: func(t Task, prefix string) []string {
			args := config.ExtrasArgs(cfg.Params)
			args = append(args, "--num-reads", strconv.FormatInt(t.Reads, 10))
			args = append(args, "--read-reference", t.Fasta, prefix)
			return args
		},
		Outputs: func(prefix string) [][]string {
			return [][]string{{prefix + ".fastq"}}
		},
	}
}

// NanoporeFamily wires nanosim-h: read-count driven, fasta output.
func NanoporeFamily(cfg config.Nanopore) Family {
	return Family{
		Name:   "nanopore",
		Exe:    "nanosim-h",
		Format: fastx.FASTA,
		Args: func(t Task, prefix string) []string {
			args := config.ExtrasArgs(cfg.Params)
			if cfg.Circular {
				args = append(args, "--circular")
			}
			args = append(args, "--number", strconv.FormatInt(t.Reads, 10))
			args = append(args, "--out-pref", prefix, t.Fasta)
			return args
		},
		Outputs: func(prefix string) [][]string {
			return [][]string{{prefix + ".fa"}}
		},
	}
}

// internal/simerr/errors.go

// Package simerr contains the error types returned by the simulation
// stages. Callers should use errors.As to recover the typed error from a
// wrapped chain; every type here is fatal to the run that produced it.
package simerr

import (
	"fmt"
	"strings"
)

// MissingColumnsError reports required columns absent from an input table
// header. Columns holds every missing name, not just the first.
type MissingColumnsError struct {
	Table   string   // logical table name, e.g. "genome" or "abundance"
	Path    string   // file the header came from
	Columns []string // missing column names, input order
}

func (err *MissingColumnsError) Error() string {
	return fmt.Sprintf("%s table %s: missing required column(s): %s",
		err.Table, err.Path, strings.Join(err.Columns, ", "))
}

// ExecutableNotFoundError reports a simulator binary that could not be
// resolved on PATH. Raised before any scratch directory is created.
type ExecutableNotFoundError struct {
	Name string // binary name as searched
	Err  error  // underlying exec.LookPath error
}

func (err *ExecutableNotFoundError) Error() string {
	return fmt.Sprintf("executable %q not found on PATH: %v", err.Name, err.Err)
}

func (err *ExecutableNotFoundError) Unwrap() error { return err.Err }

// InvalidGenomeError reports a genome whose summed sequence length is not
// positive, which would make the coverage arithmetic divide by zero.
type InvalidGenomeError struct {
	Taxon  string
	SizeBP int64
}

func (err *InvalidGenomeError) Error() string {
	return fmt.Sprintf("taxon %q: genome size %d bp is not positive", err.Taxon, err.SizeBP)
}

// StageFailureError reports a simulator invocation that exited non-zero.
// Stderr carries the child's captured standard error for diagnosis.
type StageFailureError struct {
	Community string
	Taxon     string
	Stage     string // executable name
	Err       error  // underlying exec error (usually *exec.ExitError)
	Stderr    string
}

func (err *StageFailureError) Error() (s string) {
	s = fmt.Sprintf("%s failed for community %q taxon %q: %v", err.Stage, err.Community, err.Taxon, err.Err)
	if t := strings.TrimSpace(err.Stderr); t != "" {
		s += "; stderr: " + t
	}
	return s
}

func (err *StageFailureError) Unwrap() error { return err.Err }

// OutputMissingError reports an invocation that exited zero but did not
// leave the declared output file(s) behind.
type OutputMissingError struct {
	Community string
	Taxon     string
	Stage     string
	Want      []string // paths that were expected and absent
}

func (err *OutputMissingError) Error() string {
	return fmt.Sprintf("%s produced no output for community %q taxon %q: expected %s",
		err.Stage, err.Community, err.Taxon, strings.Join(err.Want, " or "))
}

// UnsupportedFormatError reports a read-file format this tool cannot merge.
type UnsupportedFormatError struct {
	Format string
}

func (err *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("unsupported read format %q (want fastq or fasta)", err.Format)
}

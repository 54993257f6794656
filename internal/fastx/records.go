// internal/fastx/records.go

// Package fastx reads and writes FASTA/FASTQ records through biogo,
// hiding the template plumbing its readers need.
package fastx

import (
	"fmt"
	"io"

	"github.com/biogo/biogo/alphabet"
	"github.com/biogo/biogo/io/seqio"
	"github.com/biogo/biogo/io/seqio/fasta"
	"github.com/biogo/biogo/io/seqio/fastq"
	"github.com/biogo/biogo/seq"
	"github.com/biogo/biogo/seq/linear"

	"simreads/internal/simerr"
)

// Format names a read-record file format.
type Format string

const (
	FASTA Format = "fasta"
	FASTQ Format = "fastq"
)

// Ext returns the file extension used for merged read files.
func (f Format) Ext() string {
	if f == FASTA {
		return ".fa"
	}
	return ".fq"
}

// ParseFormat validates a format label from configuration.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FASTA, FASTQ:
		return Format(s), nil
	default:
		return "", &simerr.UnsupportedFormatError{Format: s}
	}
}

const fastaWidth = 60

// NewScanner returns a record scanner for the given format.
func NewScanner(f Format, r io.Reader) *seqio.Scanner {
	if f == FASTQ {
		return seqio.NewScanner(fastq.NewReader(r, linear.NewQSeq("", nil, alphabet.DNA, alphabet.Sanger)))
	}
	return seqio.NewScanner(fasta.NewReader(r, linear.NewSeq("", nil, alphabet.DNA)))
}

// RecordWriter is satisfied by biogo's fasta and fastq writers.
type RecordWriter interface {
	Write(seq.Sequence) (int, error)
}

// NewRecordWriter returns a writer for the given format.
func NewRecordWriter(f Format, w io.Writer) RecordWriter {
	if f == FASTQ {
		return fastq.NewWriter(w)
	}
	return fasta.NewWriter(w, fastaWidth)
}

// SetIdent renames a scanned record in place. Description is cleared so
// the emitted header carries the identifier alone.
func SetIdent(s seq.Sequence, id string) error {
	switch v := s.(type) {
	case *linear.Seq:
		v.ID = id
		v.Desc = ""
	case *linear.QSeq:
		v.ID = id
		v.Desc = ""
	default:
		return fmt.Errorf("unexpected record type %T", s)
	}
	return nil
}

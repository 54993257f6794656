// internal/simtable/tables.go

// Package simtable loads the genome and abundance tables and joins them
// into the per-(community,taxon) records the simulation stages consume.
package simtable

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"simreads/internal/simerr"
)

// GenomeEntry is one row of the genome table. SizeBP is filled later by
// genome measurement; the loader only parses.
type GenomeEntry struct {
	Taxon  string
	Fasta  string
	SizeBP int64
}

// AbundanceEntry is one row of the abundance table.
type AbundanceEntry struct {
	Community    string
	Taxon        string
	PercRelAbund float64
}

// header maps column names to field indexes and reports every required
// column that is absent, not just the first.
func header(table, path string, fields, required []string) (map[string]int, error) {
	idx := make(map[string]int, len(fields))
	for i, name := range fields {
		idx[strings.TrimSpace(name)] = i
	}
	var missing []string
	for _, name := range required {
		if _, ok := idx[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return nil, &simerr.MissingColumnsError{Table: table, Path: path, Columns: missing}
	}
	return idx, nil
}

// forEachRow streams non-empty TSV data rows to visit after resolving the
// required columns. Extra columns are ignored; column order is free.
func forEachRow(table, path string, required []string, visit func(ln int, get func(string) string) error) error {
	fh, err := os.Open(path)
	if err != nil {
		return err
	}
	defer func() { _ = fh.Close() }()

	sc := bufio.NewScanner(fh)
	sc.Buffer(make([]byte, 0, 64*1024), 1<<20)
	ln := 0
	var idx map[string]int
	for sc.Scan() {
		ln++
		line := strings.TrimRight(sc.Text(), "\r\n")
		if strings.TrimSpace(line) == "" {
			continue
		}
		f := strings.Split(line, "\t")
		if idx == nil {
			if idx, err = header(table, path, f, required); err != nil {
				return err
			}
			continue
		}
		n := 0
		for _, name := range required {
			if idx[name] > n {
				n = idx[name]
			}
		}
		if len(f) <= n {
			return fmt.Errorf("%s:%d bad field count", path, ln)
		}
		get := func(name string) string { return strings.TrimSpace(f[idx[name]]) }
		if err := visit(ln, get); err != nil {
			return err
		}
	}
	if err := sc.Err(); err != nil {
		return err
	}
	if idx == nil {
		return &simerr.MissingColumnsError{Table: table, Path: path, Columns: required}
	}
	return nil
}

// LoadGenomeTable parses the genome table (columns Taxon, Fasta).
// Taxon names are tidied on the way in.
func LoadGenomeTable(path string) ([]GenomeEntry, error) {
	var list []GenomeEntry
	err := forEachRow("genome", path, []string{"Taxon", "Fasta"}, func(ln int, get func(string) string) error {
		list = append(list, GenomeEntry{
			Taxon: TidyTaxon(get("Taxon")),
			Fasta: get("Fasta"),
		})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return list, nil
}

// LoadAbundanceTable parses the abundance table (columns Community, Taxon,
// Perc_rel_abund). Abundances are not required to sum to 100.
func LoadAbundanceTable(path string) ([]AbundanceEntry, error) {
	var list []AbundanceEntry
	err := forEachRow("abundance", path, []string{"Community", "Taxon", "Perc_rel_abund"}, func(ln int, get func(string) string) error {
		perc, err := strconv.ParseFloat(get("Perc_rel_abund"), 64)
		if err != nil {
			return fmt.Errorf("%s:%d bad Perc_rel_abund: %v", path, ln, err)
		}
		list = append(list, AbundanceEntry{
			Community:    get("Community"),
			Taxon:        TidyTaxon(get("Taxon")),
			PercRelAbund: perc,
		})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return list, nil
}

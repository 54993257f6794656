// internal/simtable/join.go
package simtable

// SampleTaxon is one joined record: a community row enriched with the
// genome needed to simulate it.
type SampleTaxon struct {
	Community    string
	Taxon        string
	Fasta        string
	SizeBP       int64
	PercRelAbund float64
}

// JoinDrops lists the taxa an inner join discarded from each side.
type JoinDrops struct {
	GenomeOnly    []string // in the genome table, never referenced by any community
	AbundanceOnly []string // requested by a community, absent from the genome table
}

func (d JoinDrops) Empty() bool {
	return len(d.GenomeOnly) == 0 && len(d.AbundanceOnly) == 0
}

// Join inner-joins abundances with genomes on Taxon, preserving abundance
// row order. Discarded taxa are reported, deduplicated, in first-seen
// order; the caller decides whether dropping is a warning or fatal.
func Join(genomes []GenomeEntry, abunds []AbundanceEntry) ([]SampleTaxon, JoinDrops) {
	byTaxon := make(map[string]GenomeEntry, len(genomes))
	for _, g := range genomes {
		byTaxon[g.Taxon] = g
	}

	var (
		joined     []SampleTaxon
		drops      JoinDrops
		referenced = make(map[string]bool, len(abunds))
		reported   = make(map[string]bool)
	)
	for _, a := range abunds {
		g, ok := byTaxon[a.Taxon]
		if !ok {
			if !reported[a.Taxon] {
				reported[a.Taxon] = true
				drops.AbundanceOnly = append(drops.AbundanceOnly, a.Taxon)
			}
			continue
		}
		referenced[a.Taxon] = true
		joined = append(joined, SampleTaxon{
			Community:    a.Community,
			Taxon:        a.Taxon,
			Fasta:        g.Fasta,
			SizeBP:       g.SizeBP,
			PercRelAbund: a.PercRelAbund,
		})
	}
	for _, g := range genomes {
		if !referenced[g.Taxon] && !reported[g.Taxon] {
			reported[g.Taxon] = true
			drops.GenomeOnly = append(drops.GenomeOnly, g.Taxon)
		}
	}
	return joined, drops
}

// Communities returns the distinct community names in first-seen order.
func Communities(records []SampleTaxon) []string {
	var out []string
	seen := make(map[string]bool)
	for _, r := range records {
		if !seen[r.Community] {
			seen[r.Community] = true
			out = append(out, r.Community)
		}
	}
	return out
}

// internal/simtable/tidy.go
package simtable

import "regexp"

var taxonSpecials = regexp.MustCompile(`[()/:;, ]+`)

// TidyTaxon collapses every run of characters that are awkward in file
// names and shell output into a single underscore. Applied to taxon names
// from both tables, so the join key and all derived paths agree.
func TidyTaxon(name string) string {
	return taxonSpecials.ReplaceAllString(name, "_")
}

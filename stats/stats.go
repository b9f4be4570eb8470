// Package stats computes translation-progress figures for catalogs.
package stats

import (
	"fmt"
	"sort"

	"github.com/c360studio/docloc/catalog"
)

// Stats holds the progress counts for one catalog.
type Stats struct {
	// Language is the catalog's header language, when declared.
	Language string `json:"language,omitempty"`

	// Translated counts active entries with a translation.
	Translated int `json:"translated"`

	// Untranslated counts active entries still empty. Consumers fall
	// back to the source string for these.
	Untranslated int `json:"untranslated"`

	// Fuzzy counts translated entries flagged for review.
	Fuzzy int `json:"fuzzy"`

	// Obsolete counts retained entries no longer referenced upstream.
	Obsolete int `json:"obsolete"`
}

// Total returns the number of active entries.
func (s Stats) Total() int {
	return s.Translated + s.Untranslated
}

// Percent returns the translated share of active entries, 0-100.
func (s Stats) Percent() float64 {
	if s.Total() == 0 {
		return 100
	}
	return float64(s.Translated) / float64(s.Total()) * 100
}

// String renders a msgfmt-style progress summary.
func (s Stats) String() string {
	return fmt.Sprintf("%d translated, %d fuzzy, %d untranslated, %d obsolete (%.1f%%)",
		s.Translated, s.Fuzzy, s.Untranslated, s.Obsolete, s.Percent())
}

// Collect computes progress figures for a catalog.
func Collect(f *catalog.File) Stats {
	s := Stats{}
	if h := f.Header(); h != nil {
		s.Language = h.Language()
	}
	for _, m := range f.Active() {
		if m.Translated() {
			s.Translated++
			if m.Fuzzy() {
				s.Fuzzy++
			}
		} else {
			s.Untranslated++
		}
	}
	s.Obsolete = len(f.Obsolete())
	return s
}

// Summary aggregates stats across catalogs, keyed by path.
type Summary struct {
	// PerFile maps catalog path to its stats.
	PerFile map[string]Stats
}

// NewSummary creates an empty summary.
func NewSummary() *Summary {
	return &Summary{PerFile: make(map[string]Stats)}
}

// Add records the stats for one catalog.
func (s *Summary) Add(path string, st Stats) {
	s.PerFile[path] = st
}

// Paths returns the recorded catalog paths in sorted order.
func (s *Summary) Paths() []string {
	paths := make([]string, 0, len(s.PerFile))
	for p := range s.PerFile {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

// Totals sums the per-file stats.
func (s *Summary) Totals() Stats {
	var total Stats
	for _, st := range s.PerFile {
		total.Translated += st.Translated
		total.Untranslated += st.Untranslated
		total.Fuzzy += st.Fuzzy
		total.Obsolete += st.Obsolete
	}
	return total
}

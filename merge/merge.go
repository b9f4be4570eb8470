// Package merge updates a translation catalog against a freshly
// extracted template, preserving the entry lifecycle: new source
// strings are appended untranslated, existing translations are kept,
// and strings that disappeared upstream are flagged obsolete rather
// than deleted.
package merge

import (
	"github.com/c360studio/docloc/catalog"
)

// Options controls merge behavior.
type Options struct {
	// MarkFuzzy adds the fuzzy flag to revived entries so a
	// translator reviews the restored translation.
	MarkFuzzy bool
}

// Report summarizes what a merge changed.
type Report struct {
	// New counts template entries appended untranslated.
	New int

	// Updated counts entries whose references or extracted comments
	// were refreshed from the template.
	Updated int

	// Obsoleted counts entries flagged obsolete because their source
	// string no longer appears upstream.
	Obsoleted int

	// Revived counts obsolete entries restored because their source
	// string reappeared.
	Revived int

	// Kept counts entries carried over unchanged.
	Kept int
}

// Merge applies the template tmpl to the translation catalog def and
// returns the merged catalog with a change report. def and tmpl are
// not modified.
func Merge(def, tmpl *catalog.File, opts Options) (*catalog.File, *Report, error) {
	out := catalog.NewFile()
	report := &Report{}

	// The header survives the merge untouched; translators own it.
	if hm := def.HeaderMessage(); hm != nil {
		if err := out.Add(cloneMessage(hm)); err != nil {
			return nil, nil, err
		}
	} else if hm := tmpl.HeaderMessage(); hm != nil {
		if err := out.Add(cloneMessage(hm)); err != nil {
			return nil, nil, err
		}
	}

	claimed := make(map[catalog.Key]bool)
	revivedFrom := make(map[*catalog.Message]bool)

	// Template order drives the output: this is the order the
	// documentation build reads entries in.
	for _, tm := range tmpl.Active() {
		key := tm.Key()
		claimed[key] = true

		if existing := def.Lookup(tm.Ctxt, tm.ID); existing != nil {
			merged := cloneMessage(existing)
			if refreshProvenance(merged, tm) {
				report.Updated++
			} else {
				report.Kept++
			}
			if err := out.Add(merged); err != nil {
				return nil, nil, err
			}
			continue
		}

		if old := def.LookupObsolete(tm.Ctxt, tm.ID); old != nil {
			revivedFrom[old] = true
			revived := cloneMessage(old)
			revived.Obsolete = false
			refreshProvenance(revived, tm)
			if opts.MarkFuzzy && revived.Translated() {
				revived.SetFlag(catalog.FlagFuzzy)
			}
			report.Revived++
			if err := out.Add(revived); err != nil {
				return nil, nil, err
			}
			continue
		}

		fresh := cloneMessage(tm)
		if len(fresh.Str) == 0 {
			fresh.Str = []string{""}
		}
		report.New++
		if err := out.Add(fresh); err != nil {
			return nil, nil, err
		}
	}

	// Whatever the template no longer mentions is retained as
	// obsolete, translated history included. Obsolete duplicates
	// sharing a revived key stay obsolete; only the instance that was
	// revived leaves the obsolete set.
	for _, m := range def.Messages {
		if m.IsHeader() && !m.Obsolete {
			continue
		}
		if m.Obsolete {
			if revivedFrom[m] {
				continue
			}
		} else if claimed[m.Key()] {
			continue
		}
		kept := cloneMessage(m)
		if !kept.Obsolete {
			kept.Obsolete = true
			report.Obsoleted++
		}
		if err := out.Add(kept); err != nil {
			return nil, nil, err
		}
	}

	return out, report, nil
}

// refreshProvenance copies template references and extracted
// comments onto m. It reports whether anything changed.
func refreshProvenance(m, tmpl *catalog.Message) bool {
	changed := !equalRefs(m.References, tmpl.References) ||
		!equalStrings(m.ExtractedComments, tmpl.ExtractedComments)
	m.References = append([]catalog.Reference(nil), tmpl.References...)
	m.ExtractedComments = append([]string(nil), tmpl.ExtractedComments...)
	return changed
}

func cloneMessage(m *catalog.Message) *catalog.Message {
	c := *m
	c.Comments = append([]string(nil), m.Comments...)
	c.ExtractedComments = append([]string(nil), m.ExtractedComments...)
	c.References = append([]catalog.Reference(nil), m.References...)
	c.Flags = append([]string(nil), m.Flags...)
	c.Previous = append([]string(nil), m.Previous...)
	c.Str = append([]string(nil), m.Str...)
	return &c
}

func equalRefs(a, b []catalog.Reference) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

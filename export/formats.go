// Package export renders the active view of a catalog in formats
// consumed by review tooling. Obsolete entries never appear in an
// export; they exist for translators, not for consumers.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/c360studio/docloc/catalog"
)

// Format identifies an export format.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatCSV  Format = "csv"
)

// FormatInfo provides metadata about an export format.
type FormatInfo struct {
	// Name is the format identifier.
	Name Format

	// MIMEType is the standard MIME type.
	MIMEType string

	// Extension is the file extension (with dot).
	Extension string

	// Description describes the format.
	Description string
}

// FormatRegistry contains metadata for all supported formats.
var FormatRegistry = map[Format]FormatInfo{
	FormatJSON: {
		Name:        FormatJSON,
		MIMEType:    "application/json",
		Extension:   ".json",
		Description: "JSON - machine-readable catalog dump",
	},
	FormatYAML: {
		Name:        FormatYAML,
		MIMEType:    "application/yaml",
		Extension:   ".yaml",
		Description: "YAML - human-reviewable catalog dump",
	},
	FormatCSV: {
		Name:        FormatCSV,
		MIMEType:    "text/csv",
		Extension:   ".csv",
		Description: "CSV - spreadsheet review sheet",
	},
}

// GetFormatInfo returns metadata for a format.
func GetFormatInfo(format Format) (FormatInfo, bool) {
	info, ok := FormatRegistry[format]
	return info, ok
}

// Formats returns the supported format names in sorted order.
func Formats() []Format {
	names := make([]Format, 0, len(FormatRegistry))
	for f := range FormatRegistry {
		names = append(names, f)
	}
	sort.Slice(names, func(i, j int) bool { return names[i] < names[j] })
	return names
}

// Entry is one exported message.
type Entry struct {
	Context     string   `json:"context,omitempty" yaml:"context,omitempty"`
	Source      string   `json:"source" yaml:"source"`
	Translation string   `json:"translation" yaml:"translation"`
	References  []string `json:"references,omitempty" yaml:"references,omitempty"`
	Flags       []string `json:"flags,omitempty" yaml:"flags,omitempty"`
}

// Document is the exported form of a catalog.
type Document struct {
	Project  string  `json:"project,omitempty" yaml:"project,omitempty"`
	Language string  `json:"language,omitempty" yaml:"language,omitempty"`
	Entries  []Entry `json:"entries" yaml:"entries"`
}

// Build assembles the exported document for a catalog.
func Build(f *catalog.File) Document {
	doc := Document{Entries: []Entry{}}
	if h := f.Header(); h != nil {
		doc.Project = h.ProjectIDVersion()
		doc.Language = h.Language()
	}
	for _, m := range f.Active() {
		entry := Entry{
			Context:     m.Ctxt,
			Source:      m.ID,
			Translation: m.Translation(),
			Flags:       m.Flags,
		}
		for _, r := range m.References {
			entry.References = append(entry.References, r.String())
		}
		doc.Entries = append(doc.Entries, entry)
	}
	return doc
}

// Export writes the active view of f to w in the given format.
func Export(w io.Writer, f *catalog.File, format Format) error {
	doc := Build(f)
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(doc)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		defer enc.Close()
		return enc.Encode(doc)
	case FormatCSV:
		return exportCSV(w, doc)
	default:
		return fmt.Errorf("unsupported export format: %s", format)
	}
}

func exportCSV(w io.Writer, doc Document) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"context", "source", "translation", "references"}); err != nil {
		return err
	}
	for _, e := range doc.Entries {
		refs := ""
		for i, r := range e.References {
			if i > 0 {
				refs += " "
			}
			refs += r
		}
		if err := cw.Write([]string{e.Context, e.Source, e.Translation, refs}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

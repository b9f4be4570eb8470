package catalog

import (
	"fmt"
	"strconv"
	"strings"
)

// FlagFuzzy marks a translation that needs review after a merge.
const FlagFuzzy = "fuzzy"

// Reference is a provenance locator for a message: the originating
// file path or fully-qualified symbol name, with an optional line.
// References are advisory and are never resolved against a tree.
type Reference struct {
	// Path is a file path or dotted symbol name
	// (e.g. "internlm.core.trainer.Trainer.train").
	Path string

	// Line is the source line, or 0 when the reference carries none.
	Line int
}

// String renders the reference in "path:line" form.
func (r Reference) String() string {
	if r.Line <= 0 {
		return r.Path
	}
	return r.Path + ":" + strconv.Itoa(r.Line)
}

// ParseReference splits a "path:line" token into a Reference.
// A token without a trailing numeric component is a bare path.
func ParseReference(token string) Reference {
	idx := strings.LastIndex(token, ":")
	if idx <= 0 || idx == len(token)-1 {
		return Reference{Path: token}
	}
	line, err := strconv.Atoi(token[idx+1:])
	if err != nil || line < 0 {
		return Reference{Path: token}
	}
	return Reference{Path: token[:idx], Line: line}
}

// Key identifies a message uniquely within a catalog.
type Key struct {
	// Ctxt is the msgctxt disambiguator, empty for most entries.
	Ctxt string

	// ID is the source text.
	ID string
}

// String renders the key for error messages.
func (k Key) String() string {
	if k.Ctxt == "" {
		return fmt.Sprintf("%q", k.ID)
	}
	return fmt.Sprintf("%q (context %q)", k.ID, k.Ctxt)
}

// Message is one catalog entry: a source string, its translation(s),
// and the comment metadata accumulated around it.
type Message struct {
	// Comments holds translator comments ("# ...").
	Comments []string

	// ExtractedComments holds comments added by the extraction tool ("#. ...").
	ExtractedComments []string

	// References holds provenance locators ("#: ..."), zero or more.
	References []Reference

	// Flags holds entry flags such as "fuzzy" ("#, ...").
	Flags []string

	// Previous holds previous-source comment lines ("#| ...").
	Previous []string

	// Ctxt is the optional msgctxt disambiguation string.
	Ctxt string

	// ID is the source text. Empty only on the header entry.
	ID string

	// IDPlural is the plural source text, empty for singular entries.
	IDPlural string

	// Str holds the translation: index 0 for singular entries, one
	// element per plural form otherwise. Empty strings signal "not
	// yet translated".
	Str []string

	// Obsolete marks an entry no longer referenced by current
	// documentation. Obsolete entries are retained, never deleted.
	Obsolete bool
}

// Key returns the (context, source) pair identifying this message.
func (m *Message) Key() Key {
	return Key{Ctxt: m.Ctxt, ID: m.ID}
}

// IsHeader reports whether this is the metadata header entry.
func (m *Message) IsHeader() bool {
	return m.ID == "" && m.Ctxt == ""
}

// Plural reports whether the entry carries plural forms.
func (m *Message) Plural() bool {
	return m.IDPlural != ""
}

// Translated reports whether the entry has any non-empty translation.
func (m *Message) Translated() bool {
	for _, s := range m.Str {
		if s != "" {
			return true
		}
	}
	return false
}

// Translation returns the singular translation, or the empty string
// when untranslated.
func (m *Message) Translation() string {
	if len(m.Str) == 0 {
		return ""
	}
	return m.Str[0]
}

// Get returns the translation for consumers, falling back to the
// source text when the entry is untranslated. An untranslated entry
// is a fallback signal, not an error.
func (m *Message) Get() string {
	if !m.Translated() {
		return m.ID
	}
	return m.Str[0]
}

// Fuzzy reports whether the entry carries the fuzzy flag.
func (m *Message) Fuzzy() bool {
	return m.HasFlag(FlagFuzzy)
}

// HasFlag reports whether the entry carries the named flag.
func (m *Message) HasFlag(flag string) bool {
	for _, f := range m.Flags {
		if f == flag {
			return true
		}
	}
	return false
}

// SetFlag adds the named flag if not already present.
func (m *Message) SetFlag(flag string) {
	if !m.HasFlag(flag) {
		m.Flags = append(m.Flags, flag)
	}
}

// ClearFlag removes the named flag.
func (m *Message) ClearFlag(flag string) {
	out := m.Flags[:0]
	for _, f := range m.Flags {
		if f != flag {
			out = append(out, f)
		}
	}
	m.Flags = out
	if len(m.Flags) == 0 {
		m.Flags = nil
	}
}

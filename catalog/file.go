package catalog

import (
	"fmt"
)

// File is an ordered message catalog. Entry order is preserved so
// that serialization reproduces the source layout; the header entry,
// when present, is Messages[0].
type File struct {
	// Messages holds all entries in file order, header included.
	Messages []*Message

	index map[Key]*Message
}

// NewFile creates an empty catalog.
func NewFile() *File {
	return &File{index: make(map[Key]*Message)}
}

// Add appends a message, enforcing that the source text is unique
// within its context. Obsolete entries are exempt from the
// uniqueness check and excluded from lookup.
func (f *File) Add(m *Message) error {
	if f.index == nil {
		f.index = make(map[Key]*Message)
	}
	if !m.Obsolete {
		key := m.Key()
		if _, exists := f.index[key]; exists {
			return fmt.Errorf("duplicate message %s", key)
		}
		f.index[key] = m
	}
	f.Messages = append(f.Messages, m)
	return nil
}

// Lookup returns the active message for the given context and source
// text, or nil when absent. The header entry is addressed by the
// empty key; use Header for a parsed view.
func (f *File) Lookup(ctxt, id string) *Message {
	if f.index == nil {
		return nil
	}
	return f.index[Key{Ctxt: ctxt, ID: id}]
}

// LookupObsolete returns the first obsolete message matching the
// given context and source text, or nil.
func (f *File) LookupObsolete(ctxt, id string) *Message {
	for _, m := range f.Messages {
		if m.Obsolete && m.Ctxt == ctxt && m.ID == id {
			return m
		}
	}
	return nil
}

// HeaderMessage returns the raw header entry, or nil when the
// catalog has none.
func (f *File) HeaderMessage() *Message {
	for _, m := range f.Messages {
		if !m.Obsolete && m.IsHeader() {
			return m
		}
	}
	return nil
}

// Header returns the parsed header metadata, or nil when the catalog
// has no header entry.
func (f *File) Header() *Header {
	hm := f.HeaderMessage()
	if hm == nil {
		return nil
	}
	return ParseHeader(hm.Translation())
}

// SetHeader replaces the header entry's metadata block, creating the
// entry if the catalog has none.
func (f *File) SetHeader(h *Header) {
	hm := f.HeaderMessage()
	if hm == nil {
		hm = &Message{Str: []string{h.String()}}
		f.Messages = append([]*Message{hm}, f.Messages...)
		if f.index == nil {
			f.index = make(map[Key]*Message)
		}
		f.index[hm.Key()] = hm
		return
	}
	hm.Str = []string{h.String()}
}

// Active returns all non-obsolete entries, header excluded. This is
// the view documentation consumers read from.
func (f *File) Active() []*Message {
	var out []*Message
	for _, m := range f.Messages {
		if !m.Obsolete && !m.IsHeader() {
			out = append(out, m)
		}
	}
	return out
}

// Untranslated returns active entries with no translation supplied.
func (f *File) Untranslated() []*Message {
	var out []*Message
	for _, m := range f.Active() {
		if !m.Translated() {
			out = append(out, m)
		}
	}
	return out
}

// Obsolete returns all entries flagged obsolete, retained for
// translators' historical reference.
func (f *File) Obsolete() []*Message {
	var out []*Message
	for _, m := range f.Messages {
		if m.Obsolete {
			out = append(out, m)
		}
	}
	return out
}

// MarkObsolete flags the active entry for the given key and removes
// it from lookup. It reports whether an entry was flagged.
func (f *File) MarkObsolete(ctxt, id string) bool {
	m := f.Lookup(ctxt, id)
	if m == nil || m.IsHeader() {
		return false
	}
	m.Obsolete = true
	delete(f.index, m.Key())
	return true
}

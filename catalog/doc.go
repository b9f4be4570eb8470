// Package catalog defines the in-memory model for gettext message
// catalogs: messages with provenance references, disambiguation
// contexts, plural forms, and obsolete markers, plus the header
// metadata block carried by the empty-msgid entry.
//
// A File preserves entry order so codecs can reproduce their input
// exactly. Uniqueness is enforced on the (context, source) pair for
// active entries; obsolete entries are retained for translators but
// excluded from lookup.
package catalog

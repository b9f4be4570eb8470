package catalog

import (
	"strings"

	"golang.org/x/text/language"

	"github.com/c360studio/docloc/plural"
)

// Well-known header field names.
const (
	HeaderProjectIDVersion        = "Project-Id-Version"
	HeaderReportMsgidBugsTo       = "Report-Msgid-Bugs-To"
	HeaderPOTCreationDate         = "POT-Creation-Date"
	HeaderPORevisionDate          = "PO-Revision-Date"
	HeaderLastTranslator          = "Last-Translator"
	HeaderLanguageTeam            = "Language-Team"
	HeaderLanguage                = "Language"
	HeaderMIMEVersion             = "MIME-Version"
	HeaderContentType             = "Content-Type"
	HeaderContentTransferEncoding = "Content-Transfer-Encoding"
	HeaderPluralForms             = "Plural-Forms"
	HeaderGeneratedBy             = "Generated-By"
	HeaderXGenerator              = "X-Generator"
)

// HeaderField is one "Name: value" pair from the catalog header.
type HeaderField struct {
	Name  string
	Value string
}

// Header is the parsed metadata block carried by the empty-msgid
// entry. Field order is preserved so the header re-serializes
// exactly, unknown fields included.
type Header struct {
	fields []HeaderField
}

// ParseHeader parses the msgstr text of a header entry. Lines
// without a colon are skipped; a continuation of RFC 822 folding is
// not part of the PO header convention and is not supported.
func ParseHeader(text string) *Header {
	h := &Header{}
	for _, line := range strings.Split(text, "\n") {
		if line == "" {
			continue
		}
		name, value, ok := strings.Cut(line, ":")
		if !ok || name == "" {
			continue
		}
		h.fields = append(h.fields, HeaderField{
			Name:  name,
			Value: strings.TrimPrefix(value, " "),
		})
	}
	return h
}

// Fields returns the header fields in file order.
func (h *Header) Fields() []HeaderField {
	return h.fields
}

// Get returns the value of the named field, or the empty string.
// Field names match case-insensitively, as translation editors vary
// in the casing they emit.
func (h *Header) Get(name string) string {
	for _, f := range h.fields {
		if strings.EqualFold(f.Name, name) {
			return f.Value
		}
	}
	return ""
}

// Set replaces the named field's value, appending the field when it
// is not yet present.
func (h *Header) Set(name, value string) {
	for i, f := range h.fields {
		if strings.EqualFold(f.Name, name) {
			h.fields[i].Value = value
			return
		}
	}
	h.fields = append(h.fields, HeaderField{Name: name, Value: value})
}

// String renders the header back into msgstr text. Every field keeps
// its original spelling and value, one "Name: value\n" per field.
func (h *Header) String() string {
	var sb strings.Builder
	for _, f := range h.fields {
		sb.WriteString(f.Name)
		sb.WriteString(": ")
		sb.WriteString(f.Value)
		sb.WriteString("\n")
	}
	return sb.String()
}

// ProjectIDVersion returns the Project-Id-Version field.
func (h *Header) ProjectIDVersion() string {
	return strings.TrimSpace(h.Get(HeaderProjectIDVersion))
}

// Language returns the raw Language field value.
func (h *Header) Language() string {
	return strings.TrimSpace(h.Get(HeaderLanguage))
}

// LanguageTag parses the Language field as a BCP 47 tag. PO files
// use underscore separators ("zh_CN"); these are normalized before
// parsing.
func (h *Header) LanguageTag() (language.Tag, error) {
	raw := strings.ReplaceAll(h.Language(), "_", "-")
	return language.Parse(raw)
}

// Charset returns the charset parameter of the Content-Type field,
// or the empty string.
func (h *Header) Charset() string {
	ct := h.Get(HeaderContentType)
	for _, part := range strings.Split(ct, ";") {
		part = strings.TrimSpace(part)
		if rest, ok := strings.CutPrefix(part, "charset="); ok {
			return strings.TrimSpace(rest)
		}
	}
	return ""
}

// PluralRule parses the Plural-Forms field. A missing field yields
// the germanic default (nplurals=2; plural=n != 1), which is what
// gettext assumes for catalogs that omit the rule.
func (h *Header) PluralRule() (*plural.Rule, error) {
	forms := strings.TrimSpace(h.Get(HeaderPluralForms))
	if forms == "" {
		return plural.Default(), nil
	}
	return plural.Parse(forms)
}

package po

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/c360studio/docloc/catalog"
)

const (
	// DefaultWrapWidth is the content budget inside the quotes of a
	// wrapped string line, matching msgcat's default output width.
	DefaultWrapWidth = 77

	// lineBudget is the full-line budget used to decide between the
	// single-line and multi-chunk string forms.
	lineBudget = 79
)

// Writer serializes catalogs in canonical gettext formatting.
type Writer struct {
	// WrapWidth is the per-chunk content budget. Zero means
	// DefaultWrapWidth; negative disables wrapping.
	WrapWidth int
}

// NewWriter creates a writer with default wrapping.
func NewWriter() *Writer {
	return &Writer{WrapWidth: DefaultWrapWidth}
}

// Write serializes f using a default writer.
func Write(out io.Writer, f *catalog.File) error {
	return NewWriter().Write(out, f)
}

// Marshal serializes f to bytes using a default writer.
func Marshal(f *catalog.File) ([]byte, error) {
	var buf bytes.Buffer
	if err := Write(&buf, f); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteFile serializes f to the file at path.
func WriteFile(path string, f *catalog.File) error {
	data, err := Marshal(f)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write catalog: %w", err)
	}
	return nil
}

// Write serializes f to out. Entries keep their order and are
// separated by single blank lines; string layout follows the
// canonical rules described on writeString.
func (w *Writer) Write(out io.Writer, f *catalog.File) error {
	var buf bytes.Buffer
	for i, m := range f.Messages {
		if i > 0 {
			buf.WriteByte('\n')
		}
		w.writeMessage(&buf, m)
	}
	_, err := out.Write(buf.Bytes())
	return err
}

func (w *Writer) writeMessage(buf *bytes.Buffer, m *catalog.Message) {
	for _, c := range m.Comments {
		writeComment(buf, "#", c)
	}
	for _, c := range m.ExtractedComments {
		writeComment(buf, "#.", c)
	}
	w.writeReferences(buf, m.References)
	if len(m.Flags) > 0 {
		buf.WriteString("#, ")
		buf.WriteString(strings.Join(m.Flags, ", "))
		buf.WriteByte('\n')
	}
	for _, prev := range m.Previous {
		writeComment(buf, "#|", prev)
	}

	prefix := ""
	if m.Obsolete {
		prefix = "#~ "
	}
	if m.Ctxt != "" {
		w.writeString(buf, prefix, "msgctxt", m.Ctxt)
	}
	w.writeString(buf, prefix, "msgid", m.ID)
	if m.Plural() {
		w.writeString(buf, prefix, "msgid_plural", m.IDPlural)
		for i, s := range m.Str {
			w.writeString(buf, prefix, fmt.Sprintf("msgstr[%d]", i), s)
		}
		return
	}
	w.writeString(buf, prefix, "msgstr", m.Translation())
}

func writeComment(buf *bytes.Buffer, marker, text string) {
	buf.WriteString(marker)
	if text != "" {
		buf.WriteByte(' ')
		buf.WriteString(text)
	}
	buf.WriteByte('\n')
}

// writeReferences packs reference tokens into "#:" lines within the
// line budget.
func (w *Writer) writeReferences(buf *bytes.Buffer, refs []catalog.Reference) {
	line := ""
	for _, r := range refs {
		token := r.String()
		switch {
		case line == "":
			line = "#: " + token
		case len(line)+1+len(token) <= lineBudget:
			line += " " + token
		default:
			buf.WriteString(line)
			buf.WriteByte('\n')
			line = "#: " + token
		}
	}
	if line != "" {
		buf.WriteString(line)
		buf.WriteByte('\n')
	}
}

// writeString emits a keyword and its string. A string that fits a
// single line is written inline; otherwise an empty opener chunk is
// followed by one chunk per source line, long chunks broken after
// the last space within the wrap width.
func (w *Writer) writeString(buf *bytes.Buffer, prefix, keyword, s string) {
	pieces := escapedPieces(s)

	if len(pieces) <= 1 {
		single := ""
		if len(pieces) == 1 {
			single = pieces[0]
		}
		if len(prefix)+len(keyword)+len(single)+3 <= lineBudget {
			fmt.Fprintf(buf, "%s%s \"%s\"\n", prefix, keyword, single)
			return
		}
	}

	fmt.Fprintf(buf, "%s%s \"\"\n", prefix, keyword)
	for _, piece := range pieces {
		for _, chunk := range w.wrapPiece(piece) {
			fmt.Fprintf(buf, "%s\"%s\"\n", prefix, chunk)
		}
	}
}

// escapedPieces splits s after each newline and escapes every piece,
// so each piece maps to one output chunk before wrapping.
func escapedPieces(s string) []string {
	if s == "" {
		return nil
	}
	raw := strings.SplitAfter(s, "\n")
	if raw[len(raw)-1] == "" {
		raw = raw[:len(raw)-1]
	}
	pieces := make([]string, len(raw))
	for i, r := range raw {
		pieces[i] = escapeString(r)
	}
	return pieces
}

// wrapPiece breaks an escaped chunk after the last space that keeps
// the content within the wrap width. Chunks without a usable break
// point are emitted whole.
func (w *Writer) wrapPiece(piece string) []string {
	width := w.WrapWidth
	if width == 0 {
		width = DefaultWrapWidth
	}
	if width < 0 {
		return []string{piece}
	}

	var chunks []string
	for len(piece) > width {
		cut := strings.LastIndexByte(piece[:width], ' ')
		if cut < 0 {
			break
		}
		chunks = append(chunks, piece[:cut+1])
		piece = piece[cut+1:]
	}
	return append(chunks, piece)
}

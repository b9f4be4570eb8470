// Package po implements the gettext PO catalog format: a
// line-oriented UTF-8 text format of comment-annotated
// source/translation string pairs. The writer emits canonical
// formatting, so parsing a canonically formatted catalog and writing
// it back reproduces the input byte for byte.
package po

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/c360studio/docloc/catalog"
)

// section tracks which string block a continuation line extends.
type section int

const (
	sectionNone section = iota
	sectionCtxt
	sectionID
	sectionIDPlural
	sectionStr
)

// ParseFile parses the PO catalog at path.
func ParseFile(path string) (*catalog.File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open catalog: %w", err)
	}
	defer f.Close()

	parsed, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return parsed, nil
}

// Parse parses a PO catalog from r.
func Parse(r io.Reader) (*catalog.File, error) {
	p := &parser{
		file:    catalog.NewFile(),
		scanner: bufio.NewScanner(r),
	}
	p.scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	return p.run()
}

type parser struct {
	file    *catalog.File
	scanner *bufio.Scanner
	line    int

	// Entry under construction.
	cur       *catalog.Message
	curStart  int
	curStrIdx int
	section   section
}

func (p *parser) run() (*catalog.File, error) {
	for p.scanner.Scan() {
		p.line++
		line := strings.TrimRight(p.scanner.Text(), " \t")
		if err := p.consume(line); err != nil {
			return nil, err
		}
	}
	if err := p.scanner.Err(); err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	if err := p.finish(); err != nil {
		return nil, err
	}
	return p.file, nil
}

func (p *parser) errorf(format string, args ...any) error {
	return fmt.Errorf("line %d: %s", p.line, fmt.Sprintf(format, args...))
}

func (p *parser) consume(line string) error {
	if line == "" {
		return p.finish()
	}

	obsolete := false
	if rest, ok := strings.CutPrefix(line, "#~"); ok {
		obsolete = true
		line = strings.TrimPrefix(rest, " ")
		if line == "" {
			return nil
		}
	}

	if strings.HasPrefix(line, "#") && !obsolete {
		return p.comment(line)
	}

	// A keyword or continuation line. Comments and msgctxt/msgid
	// keywords seen after a translation block start the next entry
	// even without a separating blank line.
	switch {
	case strings.HasPrefix(line, "msgctxt"):
		if p.section >= sectionStr {
			if err := p.finish(); err != nil {
				return err
			}
		}
		return p.keyword(line, "msgctxt", sectionCtxt, obsolete)

	case strings.HasPrefix(line, "msgid_plural"):
		return p.keyword(line, "msgid_plural", sectionIDPlural, obsolete)

	case strings.HasPrefix(line, "msgid"):
		if p.section >= sectionStr {
			if err := p.finish(); err != nil {
				return err
			}
		}
		return p.keyword(line, "msgid", sectionID, obsolete)

	case strings.HasPrefix(line, "msgstr["):
		return p.pluralStr(line, obsolete)

	case strings.HasPrefix(line, "msgstr"):
		return p.keyword(line, "msgstr", sectionStr, obsolete)

	case strings.HasPrefix(line, `"`):
		return p.continuation(line)

	default:
		return p.errorf("unexpected input %q", line)
	}
}

// comment dispatches a "#"-prefixed line onto the entry under
// construction.
func (p *parser) comment(line string) error {
	if p.section >= sectionStr {
		if err := p.finish(); err != nil {
			return err
		}
	}
	p.start(false)

	switch {
	case strings.HasPrefix(line, "#:"):
		for _, token := range strings.Fields(line[2:]) {
			p.cur.References = append(p.cur.References, catalog.ParseReference(token))
		}
	case strings.HasPrefix(line, "#,"):
		for _, flag := range strings.Split(line[2:], ",") {
			if flag = strings.TrimSpace(flag); flag != "" {
				p.cur.Flags = append(p.cur.Flags, flag)
			}
		}
	case strings.HasPrefix(line, "#."):
		p.cur.ExtractedComments = append(p.cur.ExtractedComments, strings.TrimPrefix(line[2:], " "))
	case strings.HasPrefix(line, "#|"):
		p.cur.Previous = append(p.cur.Previous, strings.TrimPrefix(line[2:], " "))
	default:
		p.cur.Comments = append(p.cur.Comments, strings.TrimPrefix(strings.TrimPrefix(line, "#"), " "))
	}
	return nil
}

// keyword handles a "keyword "chunk"" line.
func (p *parser) keyword(line, kw string, sec section, obsolete bool) error {
	p.start(obsolete)

	if sec <= p.section && p.section != sectionNone {
		return p.errorf("unexpected %s", kw)
	}
	if sec != sectionCtxt && sec != sectionID && p.section < sectionID {
		return p.errorf("%s before msgid", kw)
	}

	chunk, err := parseQuoted(line[len(kw):])
	if err != nil {
		return p.errorf("%s: %v", kw, err)
	}

	p.section = sec
	switch sec {
	case sectionCtxt:
		p.cur.Ctxt = chunk
	case sectionID:
		p.cur.ID = chunk
	case sectionIDPlural:
		p.cur.IDPlural = chunk
	case sectionStr:
		p.cur.Str = []string{chunk}
		p.curStrIdx = 0
	}
	return nil
}

// pluralStr handles a "msgstr[N] "chunk"" line.
func (p *parser) pluralStr(line string, obsolete bool) error {
	p.start(obsolete)
	if p.section < sectionID {
		return p.errorf("msgstr before msgid")
	}

	end := strings.IndexByte(line, ']')
	if end < 0 {
		return p.errorf("malformed msgstr index in %q", line)
	}
	idx, err := strconv.Atoi(line[len("msgstr["):end])
	if err != nil || idx < 0 {
		return p.errorf("malformed msgstr index in %q", line)
	}

	chunk, perr := parseQuoted(line[end+1:])
	if perr != nil {
		return p.errorf("msgstr[%d]: %v", idx, perr)
	}

	for len(p.cur.Str) <= idx {
		p.cur.Str = append(p.cur.Str, "")
	}
	p.cur.Str[idx] = chunk
	p.curStrIdx = idx
	p.section = sectionStr
	return nil
}

// continuation appends a bare quoted chunk to the current section.
func (p *parser) continuation(line string) error {
	if p.cur == nil || p.section == sectionNone {
		return p.errorf("string continuation outside an entry")
	}
	chunk, err := parseQuoted(line)
	if err != nil {
		return p.errorf("%v", err)
	}
	switch p.section {
	case sectionCtxt:
		p.cur.Ctxt += chunk
	case sectionID:
		p.cur.ID += chunk
	case sectionIDPlural:
		p.cur.IDPlural += chunk
	case sectionStr:
		p.cur.Str[p.curStrIdx] += chunk
	}
	return nil
}

// start ensures an entry is under construction.
func (p *parser) start(obsolete bool) {
	if p.cur == nil {
		p.cur = &catalog.Message{}
		p.curStart = p.line
		p.section = sectionNone
	}
	if obsolete {
		p.cur.Obsolete = true
	}
}

// finish validates and appends the entry under construction.
func (p *parser) finish() error {
	if p.cur == nil {
		return nil
	}
	m := p.cur
	start := p.curStart
	p.cur = nil
	p.section = sectionNone

	if len(m.Str) == 0 && m.ID == "" && m.Ctxt == "" && m.IDPlural == "" {
		// Comment-only block (e.g. a detached file comment); gettext
		// attaches these to the following entry, but a trailing one
		// has nowhere to go and is dropped.
		return nil
	}
	if len(m.Str) == 0 {
		return fmt.Errorf("line %d: entry %s has no msgstr", start, m.Key())
	}
	if m.Plural() && len(m.Str) < 2 {
		return fmt.Errorf("line %d: plural entry %s needs msgstr[0] and msgstr[1]", start, m.Key())
	}
	if err := p.file.Add(m); err != nil {
		return fmt.Errorf("line %d: %w", start, err)
	}
	return nil
}

package po

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360studio/docloc/catalog"
)

// Parsing a canonically formatted catalog and writing it back must
// reproduce the input byte for byte.
func TestRoundTrip_Trainer(t *testing.T) {
	path := filepath.Join("testdata", "trainer.po")
	want, err := os.ReadFile(path)
	require.NoError(t, err)

	f, err := ParseFile(path)
	require.NoError(t, err)

	got, err := Marshal(f)
	require.NoError(t, err)
	assert.Equal(t, string(want), string(got))
}

func TestRoundTrip_ReparseStable(t *testing.T) {
	f, err := ParseFile(filepath.Join("testdata", "trainer.po"))
	require.NoError(t, err)

	data, err := Marshal(f)
	require.NoError(t, err)

	f2, err := Parse(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Len(t, f2.Messages, len(f.Messages))

	data2, err := Marshal(f2)
	require.NoError(t, err)
	assert.Equal(t, data, data2)
}

func marshalOne(t *testing.T, m *catalog.Message) string {
	t.Helper()
	f := catalog.NewFile()
	require.NoError(t, f.Add(m))
	data, err := Marshal(f)
	require.NoError(t, err)
	return string(data)
}

func TestWrite_SimpleEntry(t *testing.T) {
	got := marshalOne(t, &catalog.Message{
		ID:         "训练 API",
		Str:        []string{"Training API"},
		References: []catalog.Reference{{Path: "../../source/trainer.rst", Line: 2}},
	})
	want := `#: ../../source/trainer.rst:2
msgid "训练 API"
msgstr "Training API"
`
	assert.Equal(t, want, got)
}

func TestWrite_WrapsAtLastSpace(t *testing.T) {
	a := strings.Repeat("a", 40)
	b := strings.Repeat("b", 40)
	got := marshalOne(t, &catalog.Message{
		ID:  a + " " + b,
		Str: []string{""},
	})
	want := "msgid \"\"\n" +
		"\"" + a + " \"\n" +
		"\"" + b + "\"\n" +
		"msgstr \"\"\n"
	assert.Equal(t, want, got)
}

func TestWrite_NoBreakPointEmitsWhole(t *testing.T) {
	long := strings.Repeat("x", 100)
	got := marshalOne(t, &catalog.Message{ID: long, Str: []string{""}})
	want := "msgid \"\"\n\"" + long + "\"\nmsgstr \"\"\n"
	assert.Equal(t, want, got)
}

func TestWrite_SplitsAfterNewlines(t *testing.T) {
	got := marshalOne(t, &catalog.Message{
		ID:  "one\ntwo",
		Str: []string{"eins\nzwei"},
	})
	want := `msgid ""
"one\n"
"two"
msgstr ""
"eins\n"
"zwei"
`
	assert.Equal(t, want, got)
}

func TestWrite_ObsoletePrefixesKeywordLines(t *testing.T) {
	got := marshalOne(t, &catalog.Message{
		Comments: []string{"kept for reference"},
		ID:       "初始化训练器。",
		Str:      []string{"Initialize the trainer."},
		Obsolete: true,
	})
	want := `# kept for reference
#~ msgid "初始化训练器。"
#~ msgstr "Initialize the trainer."
`
	assert.Equal(t, want, got)
}

func TestWrite_Plural(t *testing.T) {
	got := marshalOne(t, &catalog.Message{
		ID:       "%d error",
		IDPlural: "%d errors",
		Str:      []string{"%d Fehler", "%d Fehler"},
	})
	want := `msgid "%d error"
msgid_plural "%d errors"
msgstr[0] "%d Fehler"
msgstr[1] "%d Fehler"
`
	assert.Equal(t, want, got)
}

func TestWrite_ContextAndFlags(t *testing.T) {
	got := marshalOne(t, &catalog.Message{
		Ctxt:  "menu",
		ID:    "返回",
		Str:   []string{"Back"},
		Flags: []string{"fuzzy", "python-format"},
	})
	want := `#, fuzzy, python-format
msgctxt "menu"
msgid "返回"
msgstr "Back"
`
	assert.Equal(t, want, got)
}

func TestWrite_PacksReferences(t *testing.T) {
	ref := catalog.Reference{Path: "aaaa/bbbb/cccc/dddd/eeee.rst", Line: 12}
	got := marshalOne(t, &catalog.Message{
		ID:         "x",
		Str:        []string{""},
		References: []catalog.Reference{ref, ref, ref},
	})
	want := `#: aaaa/bbbb/cccc/dddd/eeee.rst:12 aaaa/bbbb/cccc/dddd/eeee.rst:12
#: aaaa/bbbb/cccc/dddd/eeee.rst:12
msgid "x"
msgstr ""
`
	assert.Equal(t, want, got)
}

func TestWrite_WrapDisabled(t *testing.T) {
	a := strings.Repeat("a", 40)
	b := strings.Repeat("b", 40)
	f := catalog.NewFile()
	require.NoError(t, f.Add(&catalog.Message{ID: a + " " + b, Str: []string{""}}))

	var buf bytes.Buffer
	w := &Writer{WrapWidth: -1}
	require.NoError(t, w.Write(&buf, f))

	want := "msgid \"\"\n\"" + a + " " + b + "\"\nmsgstr \"\"\n"
	assert.Equal(t, want, buf.String())
}

func TestWriteFile(t *testing.T) {
	f := catalog.NewFile()
	require.NoError(t, f.Add(&catalog.Message{ID: "x", Str: []string{"y"}}))

	path := filepath.Join(t.TempDir(), "out.po")
	require.NoError(t, WriteFile(path, f))

	back, err := ParseFile(path)
	require.NoError(t, err)
	m := back.Lookup("", "x")
	require.NotNil(t, m)
	assert.Equal(t, "y", m.Translation())
}

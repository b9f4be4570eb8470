package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const trainerHeader = "Project-Id-Version: InternLM \n" +
	"Report-Msgid-Bugs-To: \n" +
	"POT-Creation-Date: 2023-09-07 10:56+0800\n" +
	"PO-Revision-Date: YEAR-MO-DA HO:MI+ZONE\n" +
	"Last-Translator: FULL NAME <EMAIL@ADDRESS>\n" +
	"Language: en\n" +
	"Language-Team: en <LL@li.org>\n" +
	"Plural-Forms: nplurals=2; plural=(n != 1);\n" +
	"MIME-Version: 1.0\n" +
	"Content-Type: text/plain; charset=utf-8\n" +
	"Content-Transfer-Encoding: 8bit\n" +
	"Generated-By: Babel 2.12.1\n"

func TestHeaderRoundTrip(t *testing.T) {
	h := ParseHeader(trainerHeader)
	assert.Equal(t, trainerHeader, h.String(), "field order and unknown fields survive")
}

func TestHeaderGetIsCaseInsensitive(t *testing.T) {
	h := ParseHeader(trainerHeader)
	assert.Equal(t, "en", h.Get("Language"))
	assert.Equal(t, "en", h.Get("language"))
	assert.Equal(t, "", h.Get("X-Missing"))
}

func TestHeaderSet(t *testing.T) {
	h := ParseHeader("Language: en\n")
	h.Set("language", "zh_CN")
	assert.Equal(t, "zh_CN", h.Get("Language"))
	assert.Len(t, h.Fields(), 1, "case-insensitive update, not append")

	h.Set("X-Generator", "docloc")
	assert.Equal(t, "Language: zh_CN\nX-Generator: docloc\n", h.String())
}

func TestHeaderAccessors(t *testing.T) {
	h := ParseHeader(trainerHeader)
	assert.Equal(t, "InternLM", h.ProjectIDVersion())
	assert.Equal(t, "en", h.Language())
	assert.Equal(t, "utf-8", h.Charset())
}

func TestHeaderLanguageTag(t *testing.T) {
	h := ParseHeader("Language: zh_CN\n")
	tag, err := h.LanguageTag()
	require.NoError(t, err)
	assert.Equal(t, "zh-CN", tag.String())

	h = ParseHeader("Language: not a tag\n")
	_, err = h.LanguageTag()
	assert.Error(t, err)
}

func TestHeaderPluralRule(t *testing.T) {
	h := ParseHeader(trainerHeader)
	rule, err := h.PluralRule()
	require.NoError(t, err)
	assert.Equal(t, 2, rule.NPlurals)
	assert.Equal(t, 1, rule.Index(0))
	assert.Equal(t, 0, rule.Index(1))
	assert.Equal(t, 1, rule.Index(5))

	// Catalogs without the field get the germanic default.
	rule, err = ParseHeader("Language: en\n").PluralRule()
	require.NoError(t, err)
	assert.Equal(t, 2, rule.NPlurals)
	assert.Equal(t, 0, rule.Index(1))
}

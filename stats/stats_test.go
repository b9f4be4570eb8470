package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360studio/docloc/catalog"
)

func buildCatalog(t *testing.T) *catalog.File {
	t.Helper()
	f := catalog.NewFile()
	msgs := []*catalog.Message{
		{Str: []string{"Language: en\n"}},
		{ID: "训练 API", Str: []string{"Training API"}},
		{ID: "训练器构建", Str: []string{"Trainer Builder"}, Flags: []string{"fuzzy"}},
		{ID: "Sets the model to training mode.", Str: []string{""}},
		{ID: "返回", Str: []string{""}},
		{ID: "初始化训练器。", Str: []string{"Initialize the trainer."}, Obsolete: true},
	}
	for _, m := range msgs {
		require.NoError(t, f.Add(m))
	}
	return f
}

func TestCollect(t *testing.T) {
	s := Collect(buildCatalog(t))

	assert.Equal(t, "en", s.Language)
	assert.Equal(t, 2, s.Translated)
	assert.Equal(t, 2, s.Untranslated)
	assert.Equal(t, 1, s.Fuzzy)
	assert.Equal(t, 1, s.Obsolete)
	assert.Equal(t, 4, s.Total())
	assert.InDelta(t, 50.0, s.Percent(), 0.01)
}

func TestCollectEmptyCatalog(t *testing.T) {
	s := Collect(catalog.NewFile())
	assert.Zero(t, s.Total())
	assert.Equal(t, 100.0, s.Percent(), "an empty catalog is complete")
}

func TestStatsString(t *testing.T) {
	s := Stats{Translated: 2, Fuzzy: 1, Untranslated: 2, Obsolete: 1}
	assert.Equal(t, "2 translated, 1 fuzzy, 2 untranslated, 1 obsolete (50.0%)", s.String())
}

func TestSummary(t *testing.T) {
	sum := NewSummary()
	sum.Add("locales/en/trainer.po", Stats{Translated: 3, Untranslated: 1})
	sum.Add("locales/ja/trainer.po", Stats{Translated: 1, Untranslated: 3, Fuzzy: 1, Obsolete: 2})

	assert.Equal(t, []string{"locales/en/trainer.po", "locales/ja/trainer.po"}, sum.Paths())

	total := sum.Totals()
	assert.Equal(t, 4, total.Translated)
	assert.Equal(t, 4, total.Untranslated)
	assert.Equal(t, 1, total.Fuzzy)
	assert.Equal(t, 2, total.Obsolete)
	assert.InDelta(t, 50.0, total.Percent(), 0.01)
}

package merge

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360studio/docloc/catalog"
)

func mustAdd(t *testing.T, f *catalog.File, msgs ...*catalog.Message) {
	t.Helper()
	for _, m := range msgs {
		require.NoError(t, f.Add(m))
	}
}

func header() *catalog.Message {
	return &catalog.Message{Str: []string{"Language: en\nPlural-Forms: nplurals=2; plural=(n != 1);\n"}}
}

func TestMerge_AppendsNewUntranslated(t *testing.T) {
	def := catalog.NewFile()
	mustAdd(t, def, header())

	tmpl := catalog.NewFile()
	mustAdd(t, tmpl,
		&catalog.Message{ID: "Sets the model to training mode.",
			References: []catalog.Reference{{Path: "internlm.core.trainer.Trainer.train", Line: 1}},
			Str:        []string{""}},
	)

	merged, report, err := Merge(def, tmpl, Options{})
	require.NoError(t, err)
	assert.Equal(t, 1, report.New)

	m := merged.Lookup("", "Sets the model to training mode.")
	require.NotNil(t, m)
	assert.False(t, m.Translated())
	assert.Equal(t, "internlm.core.trainer.Trainer.train", m.References[0].Path)
}

func TestMerge_KeepsExistingTranslations(t *testing.T) {
	def := catalog.NewFile()
	mustAdd(t, def, header(),
		&catalog.Message{ID: "训练 API", Str: []string{"Training API"},
			References: []catalog.Reference{{Path: "../../source/trainer.rst", Line: 2}}},
	)

	tmpl := catalog.NewFile()
	mustAdd(t, tmpl,
		&catalog.Message{ID: "训练 API", Str: []string{""},
			References: []catalog.Reference{{Path: "../../source/trainer.rst", Line: 2}}},
	)

	merged, report, err := Merge(def, tmpl, Options{})
	require.NoError(t, err)
	assert.Equal(t, 1, report.Kept)
	assert.Zero(t, report.New)
	assert.Zero(t, report.Updated)
	assert.Equal(t, "Training API", merged.Lookup("", "训练 API").Translation())
}

func TestMerge_RefreshesProvenance(t *testing.T) {
	def := catalog.NewFile()
	mustAdd(t, def,
		&catalog.Message{ID: "参数", Str: []string{"Parameters"},
			References: []catalog.Reference{{Path: "internlm.core.trainer.Trainer", Line: 3}}},
	)

	tmpl := catalog.NewFile()
	mustAdd(t, tmpl,
		&catalog.Message{ID: "参数", Str: []string{""},
			References: []catalog.Reference{
				{Path: "internlm.core.trainer.Trainer", Line: 3},
				{Path: "internlm.core.trainer.Trainer.fit", Line: 4},
			}},
	)

	merged, report, err := Merge(def, tmpl, Options{})
	require.NoError(t, err)
	assert.Equal(t, 1, report.Updated)
	assert.Zero(t, report.Kept)

	m := merged.Lookup("", "参数")
	require.Len(t, m.References, 2)
	assert.Equal(t, "Parameters", m.Translation(), "translation survives a reference refresh")
}

func TestMerge_ObsoletesRemovedEntries(t *testing.T) {
	def := catalog.NewFile()
	mustAdd(t, def, header(),
		&catalog.Message{ID: "初始化训练器。", Str: []string{"Initialize the trainer."}},
		&catalog.Message{ID: "训练 API", Str: []string{"Training API"}},
	)

	tmpl := catalog.NewFile()
	mustAdd(t, tmpl, &catalog.Message{ID: "训练 API", Str: []string{""}})

	merged, report, err := Merge(def, tmpl, Options{})
	require.NoError(t, err)
	assert.Equal(t, 1, report.Obsoleted)

	assert.Nil(t, merged.Lookup("", "初始化训练器。"))
	old := merged.LookupObsolete("", "初始化训练器。")
	require.NotNil(t, old)
	assert.Equal(t, "Initialize the trainer.", old.Translation(), "obsoleted entries keep their translation")
}

func TestMerge_RevivesObsoleteEntries(t *testing.T) {
	def := catalog.NewFile()
	mustAdd(t, def,
		&catalog.Message{ID: "初始化训练器。", Str: []string{"Initialize the trainer."}, Obsolete: true},
	)

	tmpl := catalog.NewFile()
	mustAdd(t, tmpl,
		&catalog.Message{ID: "初始化训练器。", Str: []string{""},
			References: []catalog.Reference{{Path: "internlm.core.trainer.Trainer", Line: 2}}},
	)

	merged, report, err := Merge(def, tmpl, Options{MarkFuzzy: true})
	require.NoError(t, err)
	assert.Equal(t, 1, report.Revived)

	m := merged.Lookup("", "初始化训练器。")
	require.NotNil(t, m)
	assert.False(t, m.Obsolete)
	assert.Equal(t, "Initialize the trainer.", m.Translation())
	assert.True(t, m.Fuzzy(), "revived translations need review")
	assert.Len(t, m.References, 1)
}

func TestMerge_ReviveKeepsObsoleteDuplicates(t *testing.T) {
	def := catalog.NewFile()
	mustAdd(t, def,
		&catalog.Message{ID: "初始化训练器。", Str: []string{"Initialize the trainer."}, Obsolete: true},
		&catalog.Message{ID: "初始化训练器。", Str: []string{"Set up the trainer."}, Obsolete: true},
	)

	tmpl := catalog.NewFile()
	mustAdd(t, tmpl, &catalog.Message{ID: "初始化训练器。", Str: []string{""}})

	merged, report, err := Merge(def, tmpl, Options{})
	require.NoError(t, err)
	assert.Equal(t, 1, report.Revived)

	m := merged.Lookup("", "初始化训练器。")
	require.NotNil(t, m)
	assert.Equal(t, "Initialize the trainer.", m.Translation(), "the first obsolete entry is the one revived")

	obsolete := merged.Obsolete()
	require.Len(t, obsolete, 1, "the duplicate survives as obsolete history")
	assert.Equal(t, "Set up the trainer.", obsolete[0].Translation())
}

func TestMerge_ReviveWithoutFuzzy(t *testing.T) {
	def := catalog.NewFile()
	mustAdd(t, def,
		&catalog.Message{ID: "a", Str: []string{"A"}, Obsolete: true},
		&catalog.Message{ID: "b", Str: []string{""}, Obsolete: true},
	)

	tmpl := catalog.NewFile()
	mustAdd(t, tmpl,
		&catalog.Message{ID: "a", Str: []string{""}},
		&catalog.Message{ID: "b", Str: []string{""}},
	)

	merged, report, err := Merge(def, tmpl, Options{MarkFuzzy: false})
	require.NoError(t, err)
	assert.Equal(t, 2, report.Revived)
	assert.False(t, merged.Lookup("", "a").Fuzzy())
	assert.False(t, merged.Lookup("", "b").Fuzzy(), "untranslated revivals are never fuzzy")
}

func TestMerge_TemplateOrderDrivesOutput(t *testing.T) {
	def := catalog.NewFile()
	mustAdd(t, def, header(),
		&catalog.Message{ID: "b", Str: []string{"B"}},
		&catalog.Message{ID: "a", Str: []string{"A"}},
		&catalog.Message{ID: "stale", Str: []string{"S"}},
	)

	tmpl := catalog.NewFile()
	mustAdd(t, tmpl,
		&catalog.Message{ID: "a", Str: []string{""}},
		&catalog.Message{ID: "b", Str: []string{""}},
		&catalog.Message{ID: "c", Str: []string{""}},
	)

	merged, _, err := Merge(def, tmpl, Options{})
	require.NoError(t, err)

	var ids []string
	for _, m := range merged.Messages {
		if !m.IsHeader() {
			ids = append(ids, m.ID)
		}
	}
	assert.Equal(t, []string{"a", "b", "c", "stale"}, ids, "template order, obsolete entries trailing")
	assert.True(t, merged.Messages[len(merged.Messages)-1].Obsolete)
}

func TestMerge_HeaderFromTemplateWhenCatalogHasNone(t *testing.T) {
	def := catalog.NewFile()

	tmpl := catalog.NewFile()
	mustAdd(t, tmpl, header(), &catalog.Message{ID: "a", Str: []string{""}})

	merged, _, err := Merge(def, tmpl, Options{})
	require.NoError(t, err)
	require.NotNil(t, merged.Header())
	assert.Equal(t, "en", merged.Header().Language())
}

func TestMerge_DoesNotModifyInputs(t *testing.T) {
	def := catalog.NewFile()
	mustAdd(t, def, &catalog.Message{ID: "stale", Str: []string{"S"}})

	tmpl := catalog.NewFile()
	mustAdd(t, tmpl, &catalog.Message{ID: "fresh", Str: []string{""}})

	_, _, err := Merge(def, tmpl, Options{})
	require.NoError(t, err)

	assert.False(t, def.Messages[0].Obsolete, "inputs are cloned, not mutated")
	require.NotNil(t, def.Lookup("", "stale"))
}

func TestMerge_ContextDisambiguates(t *testing.T) {
	def := catalog.NewFile()
	mustAdd(t, def,
		&catalog.Message{Ctxt: "menu", ID: "返回", Str: []string{"Back"}},
	)

	tmpl := catalog.NewFile()
	mustAdd(t, tmpl,
		&catalog.Message{Ctxt: "menu", ID: "返回", Str: []string{""}},
		&catalog.Message{ID: "返回", Str: []string{""}},
	)

	merged, report, err := Merge(def, tmpl, Options{})
	require.NoError(t, err)
	assert.Equal(t, 1, report.Kept)
	assert.Equal(t, 1, report.New)
	assert.Equal(t, "Back", merged.Lookup("menu", "返回").Translation())
	assert.False(t, merged.Lookup("", "返回").Translated())
}

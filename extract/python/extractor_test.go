package python

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360studio/docloc/catalog"
)

const trainerSource = `"""InternLM 训练 API."""

class Trainer:
    """This is a class tying together components for training.

    参数
    """

    def train(self):
        """Sets the model to training mode."""
        self._trainer.train()

    def eval(self):
        """Sets the model to evaluation mode."""
        self._trainer.eval()

    @property
    def stopped(self):
        """Whether training has stopped."""
        return self._stopped
`

func writeTrainer(t *testing.T) (root, path string) {
	t.Helper()
	root = t.TempDir()
	dir := filepath.Join(root, "internlm", "core")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	path = filepath.Join(dir, "trainer.py")
	require.NoError(t, os.WriteFile(path, []byte(trainerSource), 0o644))
	return root, path
}

func refsOf(messages []*catalog.Message) map[string]catalog.Reference {
	out := make(map[string]catalog.Reference)
	for _, m := range messages {
		if len(m.References) > 0 {
			out[m.ID] = m.References[0]
		}
	}
	return out
}

func TestExtractFile(t *testing.T) {
	root, path := writeTrainer(t)
	messages, err := NewExtractor(root).ExtractFile(context.Background(), path)
	require.NoError(t, err)

	refs := refsOf(messages)
	assert.Equal(t, catalog.Reference{Path: "internlm.core.trainer", Line: 1},
		refs["InternLM 训练 API."])
	assert.Equal(t, catalog.Reference{Path: "internlm.core.trainer.Trainer", Line: 1},
		refs["This is a class tying together components for training."])
	assert.Equal(t, catalog.Reference{Path: "internlm.core.trainer.Trainer", Line: 2},
		refs["参数"])
	assert.Equal(t, catalog.Reference{Path: "internlm.core.trainer.Trainer.train", Line: 1},
		refs["Sets the model to training mode."])
	assert.Equal(t, catalog.Reference{Path: "internlm.core.trainer.Trainer.eval", Line: 1},
		refs["Sets the model to evaluation mode."])
	assert.Equal(t, catalog.Reference{Path: "internlm.core.trainer.Trainer.stopped", Line: 1},
		refs["Whether training has stopped."], "decorated definitions are walked")

	for _, m := range messages {
		assert.False(t, m.Translated(), "extracted messages carry no translation")
	}
}

func TestExtractFileNoDocstrings(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "util.py")
	require.NoError(t, os.WriteFile(path, []byte("x = 1\n\ndef f():\n    return x\n"), 0o644))

	messages, err := NewExtractor(root).ExtractFile(context.Background(), path)
	require.NoError(t, err)
	assert.Empty(t, messages)
}

func TestExtractFileMissing(t *testing.T) {
	root := t.TempDir()
	_, err := NewExtractor(root).ExtractFile(context.Background(), filepath.Join(root, "nope.py"))
	assert.Error(t, err)
}

func TestModuleName(t *testing.T) {
	cases := []struct {
		rel  string
		want string
	}{
		{filepath.Join("internlm", "core", "trainer.py"), "internlm.core.trainer"},
		{filepath.Join("internlm", "__init__.py"), "internlm"},
		{"setup.py", "setup"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, moduleName(tc.rel), tc.rel)
	}
}

func TestParagraphs(t *testing.T) {
	doc := "First line\n    continues here.\n\n    Second paragraph.\n    "
	assert.Equal(t, []string{"First line continues here.", "Second paragraph."}, paragraphs(doc))

	assert.Empty(t, paragraphs(""))
	assert.Equal(t, []string{"one"}, paragraphs("one"))
}

func TestExtractFileSingleQuotedDocstring(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "single.py")
	require.NoError(t, os.WriteFile(path, []byte("'''短文档。'''\n"), 0o644))

	messages, err := NewExtractor(root).ExtractFile(context.Background(), path)
	require.NoError(t, err)
	require.Len(t, messages, 1)
	assert.Equal(t, "短文档。", messages[0].ID)
	assert.Equal(t, catalog.Reference{Path: "single", Line: 1}, messages[0].References[0])
}
